// Package treestore implements the program-store contract as a single
// arena of tagged nodes: every kind shares one pool, distinguished by a
// tag field. This is the "one tree, one arena" backend — the simplest
// possible implementation of the contract, and the one against which
// the component backend (internal/store/ecsstore) is checked for
// behavioral equivalence.
package treestore

import (
	"github.com/cwbudde/steel/internal/arena"
	"github.com/cwbudde/steel/internal/nodes"
	"github.com/cwbudde/steel/internal/store"
)

type kind int

const (
	kindInteger kind = iota
	kindOperator
	kindSymbol
	kindCall
)

func (k kind) name() string {
	switch k {
	case kindInteger:
		return "Integer"
	case kindOperator:
		return "Operator"
	case kindSymbol:
		return "Symbol"
	case kindCall:
		return "Call"
	default:
		return "unknown"
	}
}

// node is the tagged union held in the single pool. Only the field
// matching tag is meaningful.
type node struct {
	tag kind
	i   nodes.Integer
	op  nodes.Operator
	sym nodes.Symbol
	cal nodes.Call
}

// Store is the tree-backend implementation of store.Store: one
// arena.Pool[node] holding every node kind, tagged by kind.
type Store struct {
	pool      *arena.Pool[node]
	iterating bool
}

// New returns an empty tree-backed store.
func New() *Store {
	return &Store{pool: arena.New[node]("node")}
}

func wrongKind(id nodes.Id, expected kind) error {
	return &store.WrongKindError{Id: id, Expected: expected.name()}
}

func translateArenaErr(id nodes.Id, err error) error {
	switch err.(type) {
	case *arena.OutOfBoundsError:
		return &store.OutOfBoundsError{Id: id}
	case *arena.EmptyError:
		return &store.EmptyError{Id: id}
	default:
		return err
	}
}

// Add* panics are never used; callers that Add while ForEach is in
// progress instead get an Id into a pool mutated mid-iteration, which
// the iteration order does not guarantee to visit. The contract forbids
// this (see store.BusyError) but Add itself has no error return to
// report it through, so nothing guards against it: calling Add during
// ForEach is a programming error the tests must not exercise.

func (s *Store) AddInteger(v nodes.Integer) nodes.Id {
	return nodes.Id(s.pool.Add(node{tag: kindInteger, i: v}))
}

func (s *Store) AddOperator(v nodes.Operator) nodes.Id {
	return nodes.Id(s.pool.Add(node{tag: kindOperator, op: v}))
}

func (s *Store) AddSymbol(v nodes.Symbol) nodes.Id {
	return nodes.Id(s.pool.Add(node{tag: kindSymbol, sym: v}))
}

func (s *Store) AddCall(v nodes.Call) nodes.Id {
	return nodes.Id(s.pool.Add(node{tag: kindCall, cal: v}))
}

func (s *Store) GetInteger(id nodes.Id) (nodes.Integer, error) {
	n, err := s.get(id, kindInteger)
	if err != nil {
		return 0, err
	}
	return n.i, nil
}

func (s *Store) GetOperator(id nodes.Id) (nodes.Operator, error) {
	n, err := s.get(id, kindOperator)
	if err != nil {
		return 0, err
	}
	return n.op, nil
}

func (s *Store) GetSymbol(id nodes.Id) (nodes.Symbol, error) {
	n, err := s.get(id, kindSymbol)
	if err != nil {
		return nodes.Symbol{}, err
	}
	return n.sym, nil
}

func (s *Store) GetCall(id nodes.Id) (nodes.Call, error) {
	n, err := s.get(id, kindCall)
	if err != nil {
		return nodes.Call{}, err
	}
	return n.cal, nil
}

func (s *Store) get(id nodes.Id, want kind) (node, error) {
	n, err := s.pool.Get(arena.Index(id))
	if err != nil {
		return node{}, translateArenaErr(id, err)
	}
	if n.tag != want {
		return node{}, wrongKind(id, want)
	}
	return n, nil
}

func (s *Store) ReplaceInteger(id nodes.Id, v nodes.Integer) error {
	return translateArenaErr(id, s.pool.Set(arena.Index(id), node{tag: kindInteger, i: v}))
}

func (s *Store) ReplaceOperator(id nodes.Id, v nodes.Operator) error {
	return translateArenaErr(id, s.pool.Set(arena.Index(id), node{tag: kindOperator, op: v}))
}

func (s *Store) ReplaceSymbol(id nodes.Id, v nodes.Symbol) error {
	return translateArenaErr(id, s.pool.Set(arena.Index(id), node{tag: kindSymbol, sym: v}))
}

func (s *Store) ReplaceCall(id nodes.Id, v nodes.Call) error {
	return translateArenaErr(id, s.pool.Set(arena.Index(id), node{tag: kindCall, cal: v}))
}

func (s *Store) RemoveInteger(id nodes.Id) (nodes.Integer, bool, error) {
	n, ok, err := s.remove(id, kindInteger)
	return n.i, ok, err
}

func (s *Store) RemoveOperator(id nodes.Id) (nodes.Operator, bool, error) {
	n, ok, err := s.remove(id, kindOperator)
	return n.op, ok, err
}

func (s *Store) RemoveSymbol(id nodes.Id) (nodes.Symbol, bool, error) {
	n, ok, err := s.remove(id, kindSymbol)
	return n.sym, ok, err
}

func (s *Store) RemoveCall(id nodes.Id) (nodes.Call, bool, error) {
	n, ok, err := s.remove(id, kindCall)
	return n.cal, ok, err
}

func (s *Store) remove(id nodes.Id, want kind) (node, bool, error) {
	if s.iterating {
		return node{}, false, &store.BusyError{Op: "Remove" + want.name()}
	}
	n, err := s.pool.Get(arena.Index(id))
	if err != nil {
		return node{}, false, translateArenaErr(id, err)
	}
	if n.tag != want {
		return node{}, false, wrongKind(id, want)
	}
	v, ok, err := s.pool.Remove(arena.Index(id))
	return v, ok, err
}

func (s *Store) ForEachInteger(fn store.ForEachFunc[nodes.Integer]) error {
	return forEach(s, kindInteger, fn, func(n *node) *nodes.Integer { return &n.i })
}

func (s *Store) ForEachOperator(fn store.ForEachFunc[nodes.Operator]) error {
	return forEach(s, kindOperator, fn, func(n *node) *nodes.Operator { return &n.op })
}

func (s *Store) ForEachSymbol(fn store.ForEachFunc[nodes.Symbol]) error {
	return forEach(s, kindSymbol, fn, func(n *node) *nodes.Symbol { return &n.sym })
}

func (s *Store) ForEachCall(fn store.ForEachFunc[nodes.Call]) error {
	return forEach(s, kindCall, fn, func(n *node) *nodes.Call { return &n.cal })
}

// forEach drives one kind-selective pass. It visits every live node
// whose tag matches want, in ascending index order, checking the tag
// when the pass reaches that index: a node Replaced with a different
// kind before it is reached is skipped, a node Replaced into kind want
// before it is reached is visited, and the node currently visited is
// never visited a second time in the same pass.
func forEach[T any](s *Store, want kind, fn store.ForEachFunc[T], field func(*node) *T) error {
	if s.iterating {
		return &store.BusyError{Op: "ForEach" + want.name()}
	}
	s.iterating = true
	defer func() { s.iterating = false }()

	return s.pool.ForEach(func(idx arena.Index, n *node) error {
		if n.tag != want {
			return nil
		}
		return fn(s, nodes.Id(idx), field(n))
	})
}

func (s *Store) ActiveMemUsage() int { return s.pool.ActiveMemUsage() }
func (s *Store) MemUsage() int      { return s.pool.MemUsage() }

var _ store.Store = (*Store)(nil)
