package eval

import (
	"fmt"

	"github.com/cwbudde/steel/internal/nodes"
)

// ReliedOnUninitializedMemoryError reports a Memory frame whose slot
// was never written before being read — an evaluator bug, not a user
// error, since every slot the driver allocates is filled before its
// owning frame can read it, unless the frame graph itself is wrong.
type ReliedOnUninitializedMemoryError struct {
	Slot int
}

func (e *ReliedOnUninitializedMemoryError) Error() string {
	return fmt.Sprintf("eval: relied on uninitialized memory at slot %d", e.Slot)
}

// OutOfBoundsMemoryError reports a Memory frame naming a slot beyond
// the allocated vector.
type OutOfBoundsMemoryError struct {
	Slot int
	Len  int
}

func (e *OutOfBoundsMemoryError) Error() string {
	return fmt.Sprintf("eval: memory slot %d out of bounds (len %d)", e.Slot, e.Len)
}

// MissingValueForBindingError reports a Symbol with no live binding in
// scope.
type MissingValueForBindingError struct {
	Name string
}

func (e *MissingValueForBindingError) Error() string {
	return fmt.Sprintf("eval: missing value for binding %q", e.Name)
}

// MissingArgumentError reports a built-in invoked without an argument
// it requires.
type MissingArgumentError struct {
	Extern string
	Name   string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("eval: %s missing argument %q", e.Extern, e.Name)
}

// MalformedExpressionError reports a Code target whose Id names none
// of the four node kinds — a store-consistency bug.
type MalformedExpressionError struct {
	Id nodes.Id
}

func (e *MalformedExpressionError) Error() string {
	return fmt.Sprintf("eval: malformed expression at %s", e.Id)
}
