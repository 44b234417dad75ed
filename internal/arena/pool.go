// Package arena provides index-addressed containers that hand out stable
// indices and allow deletion without invalidating other indices.
//
// Pool is the tombstoning variant used by the tree backend's single node
// table: once an index is handed out it is never reused, even after the
// slot it names has been removed. CompactPool (compact.go) is the
// swap-remove variant used by the component backend's per-kind pools,
// where compactness matters more than index stability of removed slots.
package arena

import "fmt"

// Index names a slot in a Pool or CompactPool.
type Index = int

// OutOfBoundsError reports an index outside the pool's current length.
type OutOfBoundsError struct {
	Index Index
	Len   int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("arena: index %d out of bounds (len %d)", e.Index, e.Len)
}

// EmptyError reports a read of a tombstoned slot.
type EmptyError struct {
	TypeName string
	Index    Index
}

func (e *EmptyError) Error() string {
	return fmt.Sprintf("arena: index %d (%s) is empty", e.Index, e.TypeName)
}

type item[T any] struct {
	tombstone bool
	value     T
}

// Pool holds values of one type behind stable, never-reused indices.
type Pool[T any] struct {
	members  []item[T]
	typeName string
}

// New creates an empty pool. typeName is used only to annotate EmptyError
// messages, mirroring the type-name diagnostics of the source this pool is
// based on.
func New[T any](typeName string) *Pool[T] {
	p := &Pool[T]{typeName: typeName}
	p.members = make([]item[T], 0, 1000)
	return p
}

// Len returns the pool's capacity, i.e. one past the highest index ever
// handed out (including tombstoned ones).
func (p *Pool[T]) Len() int { return len(p.members) }

// ActiveMemUsage estimates the bytes occupied by live entries.
func (p *Pool[T]) ActiveMemUsage() int {
	var zero T
	live := 0
	for i := range p.members {
		if !p.members[i].tombstone {
			live++
		}
	}
	return live * sizeOf(zero)
}

// MemUsage estimates the bytes occupied by the pool's total capacity.
func (p *Pool[T]) MemUsage() int {
	var zero T
	return cap(p.members) * sizeOf(zero)
}

// AddWithID reserves the next index, computes the value from it (so a
// value can refer to its own index), and stores it.
func (p *Pool[T]) AddWithID(fn func(Index) T) Index {
	id := len(p.members)
	p.members = append(p.members, item[T]{value: fn(id)})
	return id
}

// Add appends value and returns its new index.
func (p *Pool[T]) Add(value T) Index {
	return p.AddWithID(func(Index) T { return value })
}

// Get returns a copy of the value at id.
func (p *Pool[T]) Get(id Index) (T, error) {
	var zero T
	if id < 0 || id >= len(p.members) {
		return zero, &OutOfBoundsError{Index: id, Len: len(p.members)}
	}
	m := p.members[id]
	if m.tombstone {
		return zero, &EmptyError{TypeName: p.typeName, Index: id}
	}
	return m.value, nil
}

// GetPtr returns a pointer to the live value at id, for in-place mutation.
func (p *Pool[T]) GetPtr(id Index) (*T, error) {
	if id < 0 || id >= len(p.members) {
		return nil, &OutOfBoundsError{Index: id, Len: len(p.members)}
	}
	if p.members[id].tombstone {
		return nil, &EmptyError{TypeName: p.typeName, Index: id}
	}
	return &p.members[id].value, nil
}

// Set overwrites a live slot in place. It does not revive a tombstone: per
// this design's Open Question resolution (see DESIGN.md), reviving a
// removed index is never implicit. Use SetRevive for that.
func (p *Pool[T]) Set(id Index, value T) error {
	if id < 0 || id >= len(p.members) {
		return &OutOfBoundsError{Index: id, Len: len(p.members)}
	}
	if p.members[id].tombstone {
		return &EmptyError{TypeName: p.typeName, Index: id}
	}
	p.members[id] = item[T]{value: value}
	return nil
}

// SetRevive overwrites the slot at id unconditionally, reviving it if it
// was tombstoned. No caller in this package needs it; it exists only as
// the explicit escape hatch the spec reserves for bookkeeping that wants
// revival.
func (p *Pool[T]) SetRevive(id Index, value T) error {
	if id < 0 || id >= len(p.members) {
		return &OutOfBoundsError{Index: id, Len: len(p.members)}
	}
	p.members[id] = item[T]{value: value}
	return nil
}

// Remove tombstones the slot at id and returns its former value. ok is
// false if the slot was already tombstoned.
func (p *Pool[T]) Remove(id Index) (value T, ok bool, err error) {
	if id < 0 || id >= len(p.members) {
		return value, false, &OutOfBoundsError{Index: id, Len: len(p.members)}
	}
	m := p.members[id]
	if m.tombstone {
		return value, false, nil
	}
	p.members[id] = item[T]{tombstone: true}
	return m.value, true, nil
}

// ForEach visits every live value in index order, skipping tombstones.
// fn may mutate the value in place; it must not call Add or Remove on
// this pool before ForEach returns.
func (p *Pool[T]) ForEach(fn func(Index, *T) error) error {
	for i := range p.members {
		if p.members[i].tombstone {
			continue
		}
		if err := fn(i, &p.members[i].value); err != nil {
			return err
		}
	}
	return nil
}

func sizeOf(v any) int {
	switch v.(type) {
	case int64, float64:
		return 8
	case int32, float32:
		return 4
	default:
		return 16 // conservative default for struct/interface-shaped values
	}
}
