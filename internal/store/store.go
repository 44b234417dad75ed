// Package store defines the program-store contract: the typed
// add/get/replace/remove/iterate operations that the parser, optimizer,
// printer, and evaluator are written against, independent of whether the
// concrete representation is the tree backend (internal/store/treestore)
// or the component backend (internal/store/ecsstore).
package store

import (
	"fmt"

	"github.com/cwbudde/steel/internal/nodes"
)

// Id re-exports nodes.Id so callers of this package rarely need to
// import internal/nodes directly.
type Id = nodes.Id

// WrongKindError reports that an Id was read through an accessor for a
// kind other than the one it currently holds.
type WrongKindError struct {
	Id       Id
	Expected string
}

func (e *WrongKindError) Error() string {
	return fmt.Sprintf("store: %s is not a %s", e.Id, e.Expected)
}

// OutOfBoundsError reports an Id that never named a node in this store.
type OutOfBoundsError struct {
	Id Id
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("store: %s is out of bounds", e.Id)
}

// EmptyError reports an Id that named a node which has since been
// removed.
type EmptyError struct {
	Id Id
}

func (e *EmptyError) Error() string {
	return fmt.Sprintf("store: %s has been removed", e.Id)
}

// BusyError reports a Remove call, or a nested kind-selective ForEach,
// made while a ForEach pass over that same store is in progress.
// Callbacks may Replace nodes (including the one currently visited) but
// must not Add or Remove while iterating; Add has no error return, so
// an Add during a pass is not reported.
type BusyError struct {
	Op string
}

func (e *BusyError) Error() string {
	return fmt.Sprintf("store: %s called while iterating", e.Op)
}

// ForEachFunc is the shape of a kind-selective iteration callback: it
// receives the store itself (so it may replace other nodes), the id of
// the node being visited, and a mutable pointer to its current value.
type ForEachFunc[T any] func(s Store, id Id, value *T) error

// Store is the program-store contract. Both backends (treestore,
// ecsstore) implement it; the parser, optimizer, printer, and evaluator
// are written only against this interface.
type Store interface {
	AddInteger(nodes.Integer) Id
	AddOperator(nodes.Operator) Id
	AddSymbol(nodes.Symbol) Id
	AddCall(nodes.Call) Id

	GetInteger(Id) (nodes.Integer, error)
	GetOperator(Id) (nodes.Operator, error)
	GetSymbol(Id) (nodes.Symbol, error)
	GetCall(Id) (nodes.Call, error)

	ReplaceInteger(Id, nodes.Integer) error
	ReplaceOperator(Id, nodes.Operator) error
	ReplaceSymbol(Id, nodes.Symbol) error
	ReplaceCall(Id, nodes.Call) error

	RemoveInteger(Id) (nodes.Integer, bool, error)
	RemoveOperator(Id) (nodes.Operator, bool, error)
	RemoveSymbol(Id) (nodes.Symbol, bool, error)
	RemoveCall(Id) (nodes.Call, bool, error)

	ForEachInteger(ForEachFunc[nodes.Integer]) error
	ForEachOperator(ForEachFunc[nodes.Operator]) error
	ForEachSymbol(ForEachFunc[nodes.Symbol]) error
	ForEachCall(ForEachFunc[nodes.Call]) error

	ActiveMemUsage() int
	MemUsage() int
}

// ForEach is the composite iterator: it runs the four kind-selective
// iterators in the fixed order integers, operators, symbols, calls,
// skipping any callback left nil. It is defined once, here, for any
// Store implementation — this is the "same code for both backends"
// the contract promises.
func ForEach(
	s Store,
	intFn ForEachFunc[nodes.Integer],
	opFn ForEachFunc[nodes.Operator],
	symFn ForEachFunc[nodes.Symbol],
	callFn ForEachFunc[nodes.Call],
) error {
	if intFn != nil {
		if err := s.ForEachInteger(intFn); err != nil {
			return err
		}
	}
	if opFn != nil {
		if err := s.ForEachOperator(opFn); err != nil {
			return err
		}
	}
	if symFn != nil {
		if err := s.ForEachSymbol(symFn); err != nil {
			return err
		}
	}
	if callFn != nil {
		if err := s.ForEachCall(callFn); err != nil {
			return err
		}
	}
	return nil
}
