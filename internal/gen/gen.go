// Package gen generates random well-formed programs directly into a
// program store. It exercises the same store.Store contract the
// parser does, so a generated tree is usable anywhere a parsed one
// is: backend-equivalence tests, optimizer soundness tests, and the
// "steel bench" CLI corpus.
package gen

import (
	"math/rand/v2"

	"github.com/cwbudde/steel/internal/nodes"
	"github.com/cwbudde/steel/internal/store"
)

// chanceOfLargeConstant is the probability an integer leaf draws from
// the full int64 range instead of the small [-5,5] band.
const chanceOfLargeConstant = 0.05

// chanceOfSymbol is the probability a size-1 leaf resolves to a bound
// symbol (when the spec's symbol table has an entry for the current
// arity) instead of an integer literal.
const chanceOfSymbol = 0.25

// namedSymbol is one entry of a Spec's per-arity symbol table: a name
// usable as a Symbol leaf or Call callee, and whether it should be
// marked as an operator (IsOperator) the printer should reconstruct
// as infix.
type namedSymbol struct {
	name       string
	isOperator bool
}

// Spec configures one call to Program: how large the generated tree
// should be, how many positional arguments the root call (if any)
// should accept, and which named symbols are available at each arity.
// Spec is immutable; every With* method returns a modified copy, so a
// base Spec can be reused as a template for nested sub-programs.
type Spec struct {
	size    int
	arity   int
	symbols map[int][]namedSymbol
}

// NewSpec returns a Spec of size 1 (a single leaf) with the four
// arithmetic operators registered as arity-2 symbols, matching the
// default symbol table a bare expression sees.
func NewSpec() Spec {
	return Spec{
		size: 1,
		symbols: map[int][]namedSymbol{
			2: {
				{nodes.Add.Token(), true},
				{nodes.Sub.Token(), true},
				{nodes.Mul.Token(), true},
				{nodes.Div.Token(), true},
			},
		},
	}
}

// WithMaxDepth sets the node budget: Program spends roughly this many
// nodes building the tree (calls recurse until the budget is spent
// down to leaves).
func (s Spec) WithMaxDepth(size int) Spec {
	s.size = size
	return s
}

// WithArity restricts leaf-symbol resolution to symbols registered at
// exactly this arity. Used internally when recursing into a call's
// callee; callers building a top-level Spec normally leave this at 0.
func (s Spec) WithArity(arity int) Spec {
	s.arity = arity
	return s
}

// WithOperator registers name as a callable, infix-renderable symbol
// at the given arity.
func (s Spec) WithOperator(name string, arity int) Spec {
	return s.withSymbol(name, true, arity)
}

// WithSymbol registers name as a callable, non-operator symbol at the
// given arity (e.g. a bound argument name).
func (s Spec) WithSymbol(name string, arity int) Spec {
	return s.withSymbol(name, false, arity)
}

func (s Spec) withSymbol(name string, isOperator bool, arity int) Spec {
	cp := make(map[int][]namedSymbol, len(s.symbols))
	for k, v := range s.symbols {
		cp[k] = append([]namedSymbol(nil), v...)
	}
	cp[arity] = append(cp[arity], namedSymbol{name, isOperator})
	s.symbols = cp
	return s
}

// Program emits one random well-formed tree into store and returns
// its root Id. With spec.size > 1, it splits the budget between a
// callee and one or more arguments and emits a Call; otherwise it
// emits a leaf (a registered symbol, weighted by chanceOfSymbol, or
// an Integer literal otherwise).
func Program(spec Spec, s store.Store, rng *rand.Rand) nodes.Id {
	if spec.size > 1 {
		return programCall(spec, s, rng)
	}
	if syms := spec.symbols[spec.arity]; len(syms) > 0 && weightedBool(rng, chanceOfSymbol) {
		sym := syms[rng.IntN(len(syms))]
		return s.AddSymbol(nodes.Symbol{Name: sym.name, IsOperator: sym.isOperator})
	}
	return s.AddInteger(nodes.Integer(randomIntValue(rng)))
}

func programCall(spec Spec, s store.Store, rng *rand.Rand) nodes.Id {
	argsBudget := 1 + rng.IntN(spec.size-1) // 1..size-1, inclusive-exclusive per Rust's gen_range(1..size)
	innerSize := spec.size - argsBudget - 1
	innerSpec := NewSpec().WithMaxDepth(max(innerSize, 1))

	var args []nodes.Arg
	if argsBudget > 0 {
		numArgs := 1 + rng.IntN(argsBudget)
		argsBudget -= numArgs // at least one node spent per argument
		argIndex := 0
		for i := 0; i < numArgs; i++ {
			argSize := 1 + rng.IntN(argsBudget+1)
			argsBudget -= argSize - 1
			argSpec := NewSpec().WithMaxDepth(max(argSize, 1))
			argID := Program(argSpec, s, rng)

			var argName string
			if rng.IntN(2) == 0 {
				argName = randomIdent(rng)
			} else {
				argName = nodes.PositionalName(argIndex)
				argIndex++
			}
			innerSpec = innerSpec.WithSymbol(argName, 0)
			args = append(args, nodes.Arg{Name: argName, Value: argID})
		}
	}
	innerSpec = innerSpec.WithArity(len(args))
	callee := Program(innerSpec, s, rng)
	return s.AddCall(nodes.Call{Callee: callee, Args: args})
}

func weightedBool(rng *rand.Rand, chance float64) bool {
	return rng.Float64() < chance
}

func randomIntValue(rng *rand.Rand) int64 {
	if weightedBool(rng, chanceOfLargeConstant) {
		return rng.Int64()
	}
	return -5 + rng.Int64N(11) // small value in [-5, 5]
}

const identTailAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// randomIdent produces a single lowercase letter followed by three
// alphanumeric characters, matching the shape of a generated bound
// argument name that must also lex as a valid Ident token.
func randomIdent(rng *rand.Rand) string {
	b := make([]byte, 4)
	b[0] = byte('a' + rng.IntN(26))
	for i := 1; i < len(b); i++ {
		b[i] = identTailAlphabet[rng.IntN(len(identTailAlphabet))]
	}
	return string(b)
}
