package optimizer

import (
	"math"
	"testing"

	"github.com/cwbudde/steel/internal/nodes"
	"github.com/cwbudde/steel/internal/parser"
	"github.com/cwbudde/steel/internal/store/ecsstore"
	"github.com/cwbudde/steel/internal/store/treestore"
)

func TestFoldsSingleAddition(t *testing.T) {
	s := treestore.New()
	root, err := parser.Parse("12+23", s)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	newRoot, err := Optimize(s, All(), root)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	v, err := s.GetInteger(newRoot)
	if err != nil || v != 35 {
		t.Fatalf("GetInteger(root) = %v, %v; want 35, nil", v, err)
	}
}

func TestFoldsToFixedPointAcrossNesting(t *testing.T) {
	s := treestore.New()
	root, err := parser.Parse("12*23+34", s)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	newRoot, err := Optimize(s, All(), root)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	v, err := s.GetInteger(newRoot)
	if err != nil || v != 310 {
		t.Fatalf("GetInteger(root) = %v, %v; want 310, nil", v, err)
	}
}

func TestNoneDisablesFolding(t *testing.T) {
	s := treestore.New()
	root, err := parser.Parse("12+23", s)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	newRoot, err := Optimize(s, None(), root)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if _, err := s.GetCall(newRoot); err != nil {
		t.Fatalf("expected root to remain a Call when folding disabled: %v", err)
	}
}

func TestDoesNotFoldCallsWithNonConstantArgs(t *testing.T) {
	s := treestore.New()
	root, err := parser.Parse("putchar(65)+1", s)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	newRoot, err := Optimize(s, All(), root)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if _, err := s.GetCall(newRoot); err != nil {
		t.Fatalf("expected root to remain a Call (putchar result is not constant): %v", err)
	}
}

func TestDivisionByZeroDoesNotPanic(t *testing.T) {
	s := treestore.New()
	callee := s.AddOperator(nodes.Div)
	a := s.AddInteger(5)
	b := s.AddInteger(0)
	root := s.AddCall(nodes.Call{Callee: callee, Args: []nodes.Arg{{Name: "arg_0", Value: a}, {Name: "arg_1", Value: b}}})

	newRoot, err := Optimize(s, All(), root)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	v, err := s.GetInteger(newRoot)
	if err != nil || v != 0 {
		t.Fatalf("GetInteger(root) = %v, %v; want 0, nil", v, err)
	}
}

func TestMinInt64DividedByNegativeOneDoesNotOverflow(t *testing.T) {
	s := treestore.New()
	callee := s.AddOperator(nodes.Div)
	a := s.AddInteger(nodes.Integer(math.MinInt64))
	b := s.AddInteger(-1)
	root := s.AddCall(nodes.Call{Callee: callee, Args: []nodes.Arg{{Name: "arg_0", Value: a}, {Name: "arg_1", Value: b}}})

	newRoot, err := Optimize(s, All(), root)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	v, err := s.GetInteger(newRoot)
	if err != nil || v != math.MinInt64 {
		t.Fatalf("GetInteger(root) = %v, %v; want MinInt64, nil", v, err)
	}
}

func TestFoldingIsIdempotent(t *testing.T) {
	s := treestore.New()
	root, err := parser.Parse("1+2+3", s)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	first, err := Optimize(s, All(), root)
	if err != nil {
		t.Fatalf("first Optimize: %v", err)
	}
	second, err := Optimize(s, All(), first)
	if err != nil {
		t.Fatalf("second Optimize: %v", err)
	}
	v1, _ := s.GetInteger(first)
	v2, _ := s.GetInteger(second)
	if v1 != v2 {
		t.Fatalf("optimize(optimize(p)) != optimize(p): %v vs %v", v2, v1)
	}
}

func TestFoldsEquallyOnComponentBackend(t *testing.T) {
	s := ecsstore.New()
	root, err := parser.Parse("12*23+34", s)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	newRoot, err := Optimize(s, All(), root)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	v, err := s.GetInteger(newRoot)
	if err != nil || v != 310 {
		t.Fatalf("GetInteger(root) = %v, %v; want 310, nil", v, err)
	}
}
