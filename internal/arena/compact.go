package arena

// CompactPool holds values of one type behind indices that ARE reused: a
// removal swaps the last live element into the removed slot and shrinks,
// so the set of occupied indices is always a dense prefix [0, Len()).
// This is the container the component backend uses for each per-kind
// component pool; it needs no tombstoning because the entity table is the
// canonical record of what is live (see ecsstore).
type CompactPool[T any] struct {
	members []T
}

// NewCompact creates an empty compact pool.
func NewCompact[T any]() *CompactPool[T] {
	p := &CompactPool[T]{}
	p.members = make([]T, 0, 1000)
	return p
}

// Len returns the number of live elements.
func (p *CompactPool[T]) Len() int { return len(p.members) }

// Add appends value and returns its index.
func (p *CompactPool[T]) Add(value T) Index {
	id := len(p.members)
	p.members = append(p.members, value)
	return id
}

// Get returns a pointer to the value at id.
func (p *CompactPool[T]) Get(id Index) (*T, error) {
	if id < 0 || id >= len(p.members) {
		return nil, &OutOfBoundsError{Index: id, Len: len(p.members)}
	}
	return &p.members[id], nil
}

// RemoveBySwap removes the element at id by moving the last element into
// its place (unless id was already last). It reports whether a move
// happened and, if so, the index the moved element used to occupy — the
// caller is responsible for updating whatever refers to the moved
// element's old position to point at id instead.
func (p *CompactPool[T]) RemoveBySwap(id Index) (removed T, movedFrom Index, moved bool, err error) {
	n := len(p.members)
	if id < 0 || id >= n {
		err = &OutOfBoundsError{Index: id, Len: n}
		return
	}
	lastIdx := n - 1
	removed = p.members[id]
	if id != lastIdx {
		p.members[id] = p.members[lastIdx]
		movedFrom = lastIdx
		moved = true
	}
	var zero T
	p.members[lastIdx] = zero
	p.members = p.members[:lastIdx]
	return
}

// ForEach visits every live element in storage order. fn receives the
// element's current index; it must not call Add or RemoveBySwap on this
// pool before ForEach returns.
func (p *CompactPool[T]) ForEach(fn func(Index, *T) error) error {
	for i := range p.members {
		if err := fn(i, &p.members[i]); err != nil {
			return err
		}
	}
	return nil
}
