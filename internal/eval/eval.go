// Package eval implements the three-stack evaluator: an explicit stack
// of frames drives evaluation so that host recursion never grows with
// program recursion, a scope maps names to a stack of memory slots
// (supporting shadowing), and a monotonically growing memory vector
// holds every value a program allocates during one run.
package eval

import (
	"io"

	"github.com/cwbudde/steel/internal/nodes"
	"github.com/cwbudde/steel/internal/store"
)

// Evaluator holds the three stacks for one run over one store. It
// borrows the store immutably (reading nodes only) and owns its own
// frames/scope/memory, so two Evaluators can share a store safely as
// long as neither store call mutates while the other iterates — the
// store contract's own reentrancy rule, not a rule this package adds.
type Evaluator struct {
	store  store.Store
	out    io.Writer
	frames []Frame
	scope  map[string][]int
	memory []Value
}

// New returns an evaluator over s that writes putchar output to out.
func New(s store.Store, out io.Writer) *Evaluator {
	return &Evaluator{store: s, out: out, scope: make(map[string][]int)}
}

func (ev *Evaluator) allocSlot() int {
	ev.memory = append(ev.memory, Value{Kind: Uninitialized})
	return len(ev.memory) - 1
}

func (ev *Evaluator) bind(name string, slot int) {
	ev.scope[name] = append(ev.scope[name], slot)
}

func (ev *Evaluator) registerBuiltin(name string, call func(ev *Evaluator) (Value, error)) {
	slot := ev.allocSlot()
	ev.memory[slot] = Value{Kind: ExternValue, Extern: &Extern{Name: name, Call: call}}
	ev.bind(name, slot)
}

// Run evaluates root to completion and returns its integer result.
func (ev *Evaluator) Run(root nodes.Id) (int64, error) {
	resultSlot := ev.allocSlot()

	ev.registerBuiltin("+", builtinAdd)
	ev.registerBuiltin("-", builtinSub)
	ev.registerBuiltin("*", builtinMul)
	ev.registerBuiltin("/", builtinDiv)
	ev.registerBuiltin("putchar", builtinPutchar)

	ev.frames = append(ev.frames, Frame{
		Target:     Target{Kind: TargetCode, Id: root},
		ReturnSlot: resultSlot,
	})

	for len(ev.frames) > 0 {
		f := ev.frames[len(ev.frames)-1]
		ev.frames = ev.frames[:len(ev.frames)-1]
		for _, b := range f.Bindings {
			ev.bind(b.Name, b.Slot)
		}
		if err := ev.execute(f); err != nil {
			return 0, err
		}
	}

	if resultSlot >= len(ev.memory) {
		return 0, &OutOfBoundsMemoryError{Slot: resultSlot, Len: len(ev.memory)}
	}
	result := ev.memory[resultSlot]
	if result.Kind != IntegerValue {
		return 0, &ReliedOnUninitializedMemoryError{Slot: resultSlot}
	}
	return result.Int, nil
}

func (ev *Evaluator) execute(f Frame) error {
	switch f.Target.Kind {
	case TargetMemory:
		return ev.executeMemory(f.Target.Slot, f.ReturnSlot)
	default:
		return ev.executeCode(f.Target.Id, f.ReturnSlot)
	}
}

func (ev *Evaluator) executeMemory(slot, returnSlot int) error {
	if slot >= len(ev.memory) {
		return &OutOfBoundsMemoryError{Slot: slot, Len: len(ev.memory)}
	}
	v := ev.memory[slot]
	switch v.Kind {
	case Uninitialized:
		return &ReliedOnUninitializedMemoryError{Slot: slot}
	case ExternValue:
		result, err := v.Extern.Call(ev)
		if err != nil {
			return err
		}
		ev.memory[returnSlot] = result
		return nil
	default:
		ev.memory[returnSlot] = v
		return nil
	}
}

func (ev *Evaluator) executeCode(id nodes.Id, returnSlot int) error {
	if v, err := ev.store.GetInteger(id); err == nil {
		ev.memory[returnSlot] = Value{Kind: IntegerValue, Int: int64(v)}
		return nil
	}
	if op, err := ev.store.GetOperator(id); err == nil {
		return ev.resolveSymbol(op.Token(), returnSlot)
	}
	if sym, err := ev.store.GetSymbol(id); err == nil {
		return ev.resolveSymbol(sym.Name, returnSlot)
	}
	if c, err := ev.store.GetCall(id); err == nil {
		return ev.executeCall(c, returnSlot)
	}
	return &MalformedExpressionError{Id: id}
}

func (ev *Evaluator) resolveSymbol(name string, returnSlot int) error {
	slots, ok := ev.scope[name]
	if !ok || len(slots) == 0 {
		return &MissingValueForBindingError{Name: name}
	}
	ev.memory[returnSlot] = ev.memory[slots[len(slots)-1]]
	return nil
}

func (ev *Evaluator) executeCall(c nodes.Call, returnSlot int) error {
	argSlots := make([]int, len(c.Args))
	bindings := make([]Binding, 0, len(c.Args)+1)
	for i, a := range c.Args {
		argSlots[i] = ev.allocSlot()
		bindings = append(bindings, Binding{Name: a.Name, Slot: argSlots[i]})
	}
	calleeSlot := ev.allocSlot()
	bindings = append(bindings, Binding{Name: "self", Slot: calleeSlot})

	// Pushed in this order so the stack pops args (in declaration
	// order), then the callee, then this closure frame last — the
	// closure frame is what actually invokes, once everything it
	// needs has already been evaluated into memory.
	ev.frames = append(ev.frames, Frame{
		Target:     Target{Kind: TargetMemory, Slot: calleeSlot},
		ReturnSlot: returnSlot,
		Bindings:   bindings,
	})
	ev.frames = append(ev.frames, Frame{
		Target:     Target{Kind: TargetCode, Id: c.Callee},
		ReturnSlot: calleeSlot,
	})
	for i := len(c.Args) - 1; i >= 0; i-- {
		ev.frames = append(ev.frames, Frame{
			Target:     Target{Kind: TargetCode, Id: c.Args[i].Value},
			ReturnSlot: argSlots[i],
		})
	}
	return nil
}
