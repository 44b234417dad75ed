package treestore

import (
	"testing"

	"github.com/cwbudde/steel/internal/nodes"
	"github.com/cwbudde/steel/internal/store"
)

func TestAddGetRoundTrip(t *testing.T) {
	s := New()
	id := s.AddInteger(42)
	got, err := s.GetInteger(id)
	if err != nil || got != 42 {
		t.Fatalf("GetInteger() = %v, %v; want 42, nil", got, err)
	}
}

func TestGetWrongKind(t *testing.T) {
	s := New()
	id := s.AddInteger(1)
	if _, err := s.GetSymbol(id); err == nil {
		t.Fatal("expected WrongKindError")
	} else if _, ok := err.(*store.WrongKindError); !ok {
		t.Fatalf("got %T, want *store.WrongKindError", err)
	}
}

func TestGetOutOfBounds(t *testing.T) {
	s := New()
	if _, err := s.GetInteger(99); err == nil {
		t.Fatal("expected OutOfBoundsError")
	} else if _, ok := err.(*store.OutOfBoundsError); !ok {
		t.Fatalf("got %T, want *store.OutOfBoundsError", err)
	}
}

func TestRemoveThenEmpty(t *testing.T) {
	s := New()
	id := s.AddInteger(7)
	v, ok, err := s.RemoveInteger(id)
	if err != nil || !ok || v != 7 {
		t.Fatalf("RemoveInteger() = %v, %v, %v", v, ok, err)
	}
	if _, err := s.GetInteger(id); err == nil {
		t.Fatal("expected EmptyError after remove")
	} else if _, ok := err.(*store.EmptyError); !ok {
		t.Fatalf("got %T, want *store.EmptyError", err)
	}
}

func TestReplaceChangesKind(t *testing.T) {
	s := New()
	id := s.AddCall(nodes.Call{Callee: 0})
	if err := s.ReplaceInteger(id, 5); err != nil {
		t.Fatalf("ReplaceInteger: %v", err)
	}
	if _, err := s.GetCall(id); err == nil {
		t.Fatal("expected Call accessor to fail after replace")
	}
	got, err := s.GetInteger(id)
	if err != nil || got != 5 {
		t.Fatalf("GetInteger() = %v, %v; want 5, nil", got, err)
	}
}

func TestReplaceOnRemovedIdIsEmptyErrorNotRevival(t *testing.T) {
	s := New()
	id := s.AddInteger(1)
	if _, _, err := s.RemoveInteger(id); err != nil {
		t.Fatalf("RemoveInteger: %v", err)
	}
	if err := s.ReplaceInteger(id, 9); err == nil {
		t.Fatal("expected EmptyError, Replace must not implicitly revive a removed id")
	} else if _, ok := err.(*store.EmptyError); !ok {
		t.Fatalf("got %T, want *store.EmptyError", err)
	}
}

func TestForEachVisitsOnlyMatchingKind(t *testing.T) {
	s := New()
	s.AddInteger(1)
	s.AddSymbol(nodes.Symbol{Name: "x"})
	s.AddInteger(2)

	var sum nodes.Integer
	err := s.ForEachInteger(func(_ store.Store, _ nodes.Id, v *nodes.Integer) error {
		sum += *v
		return nil
	})
	if err != nil || sum != 3 {
		t.Fatalf("sum = %v, %v; want 3, nil", sum, err)
	}
}

func TestForEachCanReplaceCurrentNode(t *testing.T) {
	s := New()
	callId := s.AddCall(nodes.Call{Callee: 0})

	err := s.ForEachCall(func(st store.Store, id nodes.Id, c *nodes.Call) error {
		return st.(*Store).ReplaceInteger(id, 99)
	})
	if err != nil {
		t.Fatalf("ForEachCall: %v", err)
	}
	got, err := s.GetInteger(callId)
	if err != nil || got != 99 {
		t.Fatalf("GetInteger() = %v, %v; want 99, nil", got, err)
	}
}

func TestAddAfterForEachCompletes(t *testing.T) {
	s := New()
	s.AddInteger(1)

	err := s.ForEachInteger(func(_ store.Store, _ nodes.Id, _ *nodes.Integer) error {
		return nil
	})
	if err != nil {
		t.Fatalf("ForEachInteger: %v", err)
	}
	// iterating flag must be cleared after the pass completes
	s.AddInteger(2)
}

func TestCompositeForEachOrder(t *testing.T) {
	s := New()
	s.AddCall(nodes.Call{Callee: 0})
	s.AddSymbol(nodes.Symbol{Name: "x"})
	s.AddOperator(nodes.Add)
	s.AddInteger(1)

	var order []string
	err := store.ForEach(s,
		func(_ store.Store, _ nodes.Id, _ *nodes.Integer) error { order = append(order, "int"); return nil },
		func(_ store.Store, _ nodes.Id, _ *nodes.Operator) error { order = append(order, "op"); return nil },
		func(_ store.Store, _ nodes.Id, _ *nodes.Symbol) error { order = append(order, "sym"); return nil },
		func(_ store.Store, _ nodes.Id, _ *nodes.Call) error { order = append(order, "call"); return nil },
	)
	if err != nil {
		t.Fatalf("ForEach: %v", err)
	}
	want := []string{"int", "op", "sym", "call"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}
