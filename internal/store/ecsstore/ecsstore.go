// Package ecsstore implements the program-store contract as an entity
// table plus one compact component pool per node kind: an "entity" is
// just an index that owns at most one component, in one of the four
// per-kind pools. Removing a component swaps the pool's last element
// into the removed slot (internal/arena.CompactPool), so component
// indices are not stable across removals — the entity's slot is kept
// in lockstep by fixing up the moved component's owner back-pointer.
package ecsstore

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

// slot names which component pool (if any) of a given kind an entity
// currently owns, and at what index within that pool.
type slot struct {
	has bool
	idx arena.Index
}

// entity is the row in the entity table. A node has exactly one live
// slot at a time (an Id always names exactly one kind), but the slot
// set is modeled literally as one optional slot per kind rather than a
// single (kind, idx) pair, matching the per-kind-pool shape of the
// backend.
type entity struct {
	integers  slot
	operators slot
	symbols   slot
	calls     slot
}

func (e *entity) slotFor(k kind) *slot {
	switch k {
	case kindInteger:
		return &e.integers
	case kindOperator:
		return &e.operators
	case kindSymbol:
		return &e.symbols
	default:
		return &e.calls
	}
}

// component wraps a pool value with a back-pointer to the entity that
// owns it, so that a swap-remove in the compact pool can find and fix
// up the displaced owner's slot index.
type component[T any] struct {
	owner nodes.Id
	value T
}

// Store is the component-backend implementation of store.Store.
type Store struct {
	entities  *arena.Pool[entity]
	integers  *arena.CompactPool[component[nodes.Integer]]
	operators *arena.CompactPool[component[nodes.Operator]]
	symbols   *arena.CompactPool[component[nodes.Symbol]]
	calls     *arena.CompactPool[component[nodes.Call]]
	iterating bool
}

// New returns an empty component-backed store.
func New() *Store {
	return &Store{
		entities:  arena.New[entity]("entity"),
		integers:  arena.NewCompact[component[nodes.Integer]](),
		operators: arena.NewCompact[component[nodes.Operator]](),
		symbols:   arena.NewCompact[component[nodes.Symbol]](),
		calls:     arena.NewCompact[component[nodes.Call]](),
	}
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

func wrongKind(id nodes.Id, k kind) error {
	return &store.WrongKindError{Id: id, Expected: k.name()}
}

func addInto[T any](s *Store, k kind, pool *arena.CompactPool[component[T]], v T) nodes.Id {
	eid := s.entities.Add(entity{})
	idx := pool.Add(component[T]{owner: nodes.Id(eid), value: v})
	e, _ := s.entities.GetPtr(eid)
	e.slotFor(k).has = true
	e.slotFor(k).idx = idx
	return nodes.Id(eid)
}

func (s *Store) AddInteger(v nodes.Integer) nodes.Id { return addInto(s, kindInteger, s.integers, v) }
func (s *Store) AddOperator(v nodes.Operator) nodes.Id {
	return addInto(s, kindOperator, s.operators, v)
}
func (s *Store) AddSymbol(v nodes.Symbol) nodes.Id { return addInto(s, kindSymbol, s.symbols, v) }
func (s *Store) AddCall(v nodes.Call) nodes.Id     { return addInto(s, kindCall, s.calls, v) }

func getFrom[T any](s *Store, id nodes.Id, k kind, pool *arena.CompactPool[component[T]]) (T, error) {
	var zero T
	e, err := s.entities.Get(arena.Index(id))
	if err != nil {
		return zero, translateArenaErr(id, err)
	}
	sl := e.slotFor(k)
	if !sl.has {
		return zero, wrongKind(id, k)
	}
	c, err := pool.Get(sl.idx)
	if err != nil {
		return zero, err
	}
	return c.value, nil
}

func (s *Store) GetInteger(id nodes.Id) (nodes.Integer, error) {
	return getFrom(s, id, kindInteger, s.integers)
}
func (s *Store) GetOperator(id nodes.Id) (nodes.Operator, error) {
	return getFrom(s, id, kindOperator, s.operators)
}
func (s *Store) GetSymbol(id nodes.Id) (nodes.Symbol, error) {
	return getFrom(s, id, kindSymbol, s.symbols)
}
func (s *Store) GetCall(id nodes.Id) (nodes.Call, error) {
	return getFrom(s, id, kindCall, s.calls)
}

// replaceInto moves an entity's component from one kind's pool to
// another: it removes any existing component the entity owns — across
// all four kinds, since Replace may change an entity's kind — then adds
// the new one under k. This holds even when the entity is already of
// kind k; the value is re-added at the end of k's pool, not overwritten
// in place.
func replaceInto[T any](s *Store, id nodes.Id, k kind, pool *arena.CompactPool[component[T]], v T) error {
	e, err := s.entities.GetPtr(arena.Index(id))
	if err != nil {
		return translateArenaErr(id, err)
	}
	s.clearSlots(e)
	idx := pool.Add(component[T]{owner: id, value: v})
	e.slotFor(k).has = true
	e.slotFor(k).idx = idx
	return nil
}

// clearSlots removes every component the entity currently owns, fixing
// up whichever sibling entity's slot moves as a result of the
// swap-remove, for all four kinds.
func (s *Store) clearSlots(e *entity) {
	if e.integers.has {
		removeAndFixup(s, s.integers, e.integers.idx, kindInteger)
		e.integers.has = false
	}
	if e.operators.has {
		removeAndFixup(s, s.operators, e.operators.idx, kindOperator)
		e.operators.has = false
	}
	if e.symbols.has {
		removeAndFixup(s, s.symbols, e.symbols.idx, kindSymbol)
		e.symbols.has = false
	}
	if e.calls.has {
		removeAndFixup(s, s.calls, e.calls.idx, kindCall)
		e.calls.has = false
	}
}

func (s *Store) ReplaceInteger(id nodes.Id, v nodes.Integer) error {
	return replaceInto(s, id, kindInteger, s.integers, v)
}
func (s *Store) ReplaceOperator(id nodes.Id, v nodes.Operator) error {
	return replaceInto(s, id, kindOperator, s.operators, v)
}
func (s *Store) ReplaceSymbol(id nodes.Id, v nodes.Symbol) error {
	return replaceInto(s, id, kindSymbol, s.symbols, v)
}
func (s *Store) ReplaceCall(id nodes.Id, v nodes.Call) error {
	return replaceInto(s, id, kindCall, s.calls, v)
}

// removeAndFixup performs the pool's swap-remove and, if another
// component moved into the removed slot, updates that component's
// owner entity to point at its new index.
func removeAndFixup[T any](s *Store, pool *arena.CompactPool[component[T]], idx arena.Index, k kind) (T, bool) {
	removed, movedFrom, moved, err := pool.RemoveBySwap(idx)
	if err != nil {
		var zero T
		return zero, false
	}
	if moved {
		movedComp, _ := pool.Get(idx)
		movedOwner, oerr := s.entities.GetPtr(arena.Index(movedComp.owner))
		if oerr == nil {
			movedOwner.slotFor(k).idx = idx
		}
		_ = movedFrom
	}
	return removed.value, true
}

func removeOf[T any](s *Store, id nodes.Id, k kind, pool *arena.CompactPool[component[T]]) (T, bool, error) {
	var zero T
	if s.iterating {
		return zero, false, &store.BusyError{Op: "Remove" + k.name()}
	}
	e, err := s.entities.GetPtr(arena.Index(id))
	if err != nil {
		return zero, false, translateArenaErr(id, err)
	}
	sl := e.slotFor(k)
	if !sl.has {
		return zero, false, wrongKind(id, k)
	}
	v, ok := removeAndFixup(s, pool, sl.idx, k)
	sl.has = false
	s.entities.Remove(arena.Index(id))
	return v, ok, nil
}

func (s *Store) RemoveInteger(id nodes.Id) (nodes.Integer, bool, error) {
	return removeOf(s, id, kindInteger, s.integers)
}
func (s *Store) RemoveOperator(id nodes.Id) (nodes.Operator, bool, error) {
	return removeOf(s, id, kindOperator, s.operators)
}
func (s *Store) RemoveSymbol(id nodes.Id) (nodes.Symbol, bool, error) {
	return removeOf(s, id, kindSymbol, s.symbols)
}
func (s *Store) RemoveCall(id nodes.Id) (nodes.Call, bool, error) {
	return removeOf(s, id, kindCall, s.calls)
}

// forEachComponent drives one kind-selective pass in the component
// pool's storage order (not the entity table's). The owners are
// collected first and then visited by handle, so a callback that
// Replaces nodes (which swap-removes components) neither skips nor
// revisits an entity; an entity that no longer holds a component of
// kind k when it is reached is skipped.
func forEachComponent[T any](s *Store, k kind, pool *arena.CompactPool[component[T]], fn store.ForEachFunc[T]) error {
	if s.iterating {
		return &store.BusyError{Op: "ForEach" + k.name()}
	}
	s.iterating = true
	defer func() { s.iterating = false }()

	owners := make([]nodes.Id, 0, pool.Len())
	_ = pool.ForEach(func(_ arena.Index, c *component[T]) error { owners = append(owners, c.owner); return nil })
	for _, owner := range owners {
		if e, err := s.entities.GetPtr(arena.Index(owner)); err == nil && e.slotFor(k).has {
			c, _ := pool.Get(e.slotFor(k).idx)
			if err := fn(s, owner, &c.value); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Store) ForEachInteger(fn store.ForEachFunc[nodes.Integer]) error {
	return forEachComponent(s, kindInteger, s.integers, fn)
}
func (s *Store) ForEachOperator(fn store.ForEachFunc[nodes.Operator]) error {
	return forEachComponent(s, kindOperator, s.operators, fn)
}
func (s *Store) ForEachSymbol(fn store.ForEachFunc[nodes.Symbol]) error {
	return forEachComponent(s, kindSymbol, s.symbols, fn)
}
func (s *Store) ForEachCall(fn store.ForEachFunc[nodes.Call]) error {
	return forEachComponent(s, kindCall, s.calls, fn)
}

func (s *Store) ActiveMemUsage() int {
	return s.entities.ActiveMemUsage() + s.integers.Len()*8 + s.operators.Len()*8 +
		s.symbols.Len()*24 + s.calls.Len()*24
}

func (s *Store) MemUsage() int {
	return s.entities.MemUsage() + s.integers.Len()*8 + s.operators.Len()*8 +
		s.symbols.Len()*24 + s.calls.Len()*24
}

var _ store.Store = (*Store)(nil)
