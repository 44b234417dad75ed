// Package optimizer implements the one required optimization pass:
// fixed-point constant folding over Call nodes whose callee is an
// Operator and whose first two positional arguments are themselves
// constant integers.
package optimizer

import (
	"math"

	"github.com/cwbudde/steel/internal/nodes"
	"github.com/cwbudde/steel/internal/store"
)

// Opts enumerates which passes to run. constant_folding is the only
// flag this language defines; the zero value runs nothing.
type Opts struct {
	ConstantFolding bool
}

// None returns the empty pass set.
func None() Opts { return Opts{} }

// AndConstantFolding enables constant folding.
func (o Opts) AndConstantFolding() Opts {
	o.ConstantFolding = true
	return o
}

// All returns every available pass enabled.
func All() Opts { return None().AndConstantFolding() }

// Optimize runs the enabled passes to a fixed point and returns the
// (possibly unchanged) root. The only rewrite a pass may perform is
// Replace, which changes a node's kind in place but never its Id, so
// root is always still valid afterward.
func Optimize(s store.Store, opts Opts, root nodes.Id) (nodes.Id, error) {
	for {
		fixedPoint := true
		if opts.ConstantFolding {
			changed, err := constantFoldingPass(s)
			if err != nil {
				return 0, err
			}
			if changed {
				fixedPoint = false
			}
		}
		if fixedPoint {
			break
		}
	}
	return root, nil
}

type fold struct {
	id    nodes.Id
	value int64
}

// constantFoldingPass makes one sweep over every Call node, computing
// folded results for operator calls over constant arguments. Rewrites
// are collected in pending and applied only after the sweep completes,
// so that a call folded earlier in the pass is not itself read as a
// constant until the next pass — this keeps one sweep's visitation
// order irrelevant to the result.
func constantFoldingPass(s store.Store) (bool, error) {
	var pending []fold

	err := s.ForEachCall(func(st store.Store, id nodes.Id, c *nodes.Call) error {
		op, err := st.GetOperator(c.Callee)
		if err != nil {
			return nil // callee isn't an Operator; nothing to fold
		}
		arg0, ok := c.Arg0()
		if !ok {
			return nil
		}
		arg1, ok := c.Arg1()
		if !ok {
			return nil
		}
		left, ok := constInt(st, arg0)
		if !ok {
			return nil
		}
		right, ok := constInt(st, arg1)
		if !ok {
			return nil
		}
		pending = append(pending, fold{id: id, value: apply(op, left, right)})
		return nil
	})
	if err != nil {
		return false, err
	}

	for _, f := range pending {
		if err := s.ReplaceInteger(f.id, nodes.Integer(f.value)); err != nil {
			return false, err
		}
	}
	return len(pending) > 0, nil
}

func constInt(s store.Store, id nodes.Id) (int64, bool) {
	v, err := s.GetInteger(id)
	if err != nil {
		return 0, false
	}
	return int64(v), true
}

// apply computes the folded value. Add/Sub/Mul rely on Go's defined
// two's-complement wraparound for signed overflow on these operators.
// Div special-cases the two ways integer division is not simply
// "divide": INT64_MIN / -1 would overflow the representable range, and
// division by zero would panic; both cases return a defined wrapping
// result instead of propagating a fatal error, per the no-panic
// requirement on this pass. The evaluator's runtime "/0 is 0" policy is
// separate and is not reused here beyond sharing the same zero result.
func apply(op nodes.Operator, left, right int64) int64 {
	switch op {
	case nodes.Add:
		return left + right
	case nodes.Sub:
		return left - right
	case nodes.Mul:
		return left * right
	case nodes.Div:
		return wrappingDiv(left, right)
	default:
		return 0
	}
}

func wrappingDiv(left, right int64) int64 {
	if right == 0 {
		return 0
	}
	if left == math.MinInt64 && right == -1 {
		return math.MinInt64
	}
	return left / right
}
