package parser

import (
	"testing"

	"github.com/cwbudde/steel/internal/nodes"
	"github.com/cwbudde/steel/internal/store/treestore"
)

func TestParsesIntegerLiteral(t *testing.T) {
	s := treestore.New()
	root, err := Parse("123", s)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	v, err := s.GetInteger(root)
	if err != nil || v != 123 {
		t.Fatalf("GetInteger(root) = %v, %v; want 123, nil", v, err)
	}
}

func TestParsesLeftAssociativeAddition(t *testing.T) {
	s := treestore.New()
	root, err := Parse("1+2+3", s)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	outer, err := s.GetCall(root)
	if err != nil {
		t.Fatalf("GetCall(root): %v", err)
	}
	op, err := s.GetOperator(outer.Callee)
	if err != nil || op != nodes.Add {
		t.Fatalf("outer callee = %v, %v; want Add", op, err)
	}
	left, _ := outer.Arg0()
	right, _ := outer.Arg1()
	if v, err := s.GetInteger(right); err != nil || v != 3 {
		t.Fatalf("outer right = %v, %v; want 3 ((1+2)+3 shape)", v, err)
	}
	innerCall, err := s.GetCall(left)
	if err != nil {
		t.Fatalf("expected outer left to be a Call (1+2): %v", err)
	}
	l2, _ := innerCall.Arg0()
	r2, _ := innerCall.Arg1()
	if v, err := s.GetInteger(l2); err != nil || v != 1 {
		t.Fatalf("inner left = %v, %v; want 1", v, err)
	}
	if v, err := s.GetInteger(r2); err != nil || v != 2 {
		t.Fatalf("inner right = %v, %v; want 2", v, err)
	}
}

func TestMulBindsTighterThanAdd(t *testing.T) {
	s := treestore.New()
	root, err := Parse("12*23+34", s)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	outer, err := s.GetCall(root)
	if err != nil {
		t.Fatalf("GetCall(root): %v", err)
	}
	op, _ := s.GetOperator(outer.Callee)
	if op != nodes.Add {
		t.Fatalf("root operator = %v, want Add", op)
	}
	left, _ := outer.Arg0()
	innerCall, err := s.GetCall(left)
	if err != nil {
		t.Fatalf("expected left operand to be the Mul call: %v", err)
	}
	innerOp, _ := s.GetOperator(innerCall.Callee)
	if innerOp != nodes.Mul {
		t.Fatalf("inner operator = %v, want Mul", innerOp)
	}
}

func TestParenthesesOverridePrecedence(t *testing.T) {
	s := treestore.New()
	root, err := Parse("(12+23)*34", s)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	outer, err := s.GetCall(root)
	if err != nil {
		t.Fatalf("GetCall(root): %v", err)
	}
	op, _ := s.GetOperator(outer.Callee)
	if op != nodes.Mul {
		t.Fatalf("root operator = %v, want Mul", op)
	}
}

func TestPrefixMinusRewritesToBinaryCall(t *testing.T) {
	s := treestore.New()
	root, err := Parse("-123", s)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c, err := s.GetCall(root)
	if err != nil {
		t.Fatalf("GetCall(root): %v", err)
	}
	op, _ := s.GetOperator(c.Callee)
	if op != nodes.Sub {
		t.Fatalf("operator = %v, want Sub", op)
	}
	arg0, ok := c.Arg0()
	if !ok {
		t.Fatal("expected arg_0")
	}
	if v, err := s.GetInteger(arg0); err != nil || v != 0 {
		t.Fatalf("arg_0 = %v, %v; want 0, nil", v, err)
	}
	arg1, ok := c.Arg1()
	if !ok {
		t.Fatal("expected arg_1")
	}
	if v, err := s.GetInteger(arg1); err != nil || v != 123 {
		t.Fatalf("arg_1 = %v, %v; want 123, nil", v, err)
	}
}

func TestUnifiedCallSyntax(t *testing.T) {
	s := treestore.New()
	root, err := Parse("putchar(65)", s)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c, err := s.GetCall(root)
	if err != nil {
		t.Fatalf("GetCall(root): %v", err)
	}
	sym, err := s.GetSymbol(c.Callee)
	if err != nil || sym.Name != "putchar" {
		t.Fatalf("callee = %v, %v; want putchar", sym, err)
	}
	if len(c.Args) != 1 || c.Args[0].Name != "arg_0" {
		t.Fatalf("args = %v, want single arg_0", c.Args)
	}
}

func TestNamedArgDoesNotAdvancePositionalCounter(t *testing.T) {
	s := treestore.New()
	root, err := Parse("f(x=1,2)", s)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c, err := s.GetCall(root)
	if err != nil {
		t.Fatalf("GetCall(root): %v", err)
	}
	if len(c.Args) != 2 {
		t.Fatalf("args = %v, want 2 entries", c.Args)
	}
	if c.Args[0].Name != "x" {
		t.Fatalf("first arg name = %q, want x", c.Args[0].Name)
	}
	if c.Args[1].Name != "arg_0" {
		t.Fatalf("second arg name = %q, want arg_0 (named arg must not advance counter)", c.Args[1].Name)
	}
}

func TestMalformedExpressionMentionsOffendingText(t *testing.T) {
	s := treestore.New()
	_, err := Parse("#lol", s)
	if err == nil {
		t.Fatal("expected error")
	}
	me, ok := err.(*MalformedExpressionError)
	if !ok {
		t.Fatalf("got %T, want *MalformedExpressionError", err)
	}
	if me.Got.Literal != "#lol" {
		t.Fatalf("error does not mention offending text: %v", me)
	}
}

func TestLeftoverInputIsAnError(t *testing.T) {
	s := treestore.New()
	_, err := Parse("12 34", s)
	if err == nil {
		t.Fatal("expected LeftoverInputError")
	}
	if _, ok := err.(*LeftoverInputError); !ok {
		t.Fatalf("got %T, want *LeftoverInputError", err)
	}
}

func TestUnexpectedEndOfInput(t *testing.T) {
	s := treestore.New()
	_, err := Parse("1+", s)
	if err == nil {
		t.Fatal("expected UnexpectedEndOfInputError")
	}
	if _, ok := err.(*UnexpectedEndOfInputError); !ok {
		t.Fatalf("got %T, want *UnexpectedEndOfInputError", err)
	}
}
