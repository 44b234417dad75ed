// Package printer renders a store-held tree back to source text. It
// reconstructs infix notation for operator calls with positional
// arguments and falls back to callee(args...) notation otherwise; it
// does not attempt minimal parenthesization, only correct round-trip.
package printer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/steel/internal/nodes"
	"github.com/cwbudde/steel/internal/store"
)

// Pretty renders id and everything reachable from it.
func Pretty(s store.Store, id nodes.Id) string {
	res, _ := prettyImpl(s, id)
	return res
}

// prettyInner renders a sub-expression, parenthesizing it if its own
// rendering might otherwise be mis-parsed in its new position (a
// negative integer literal, or any operator call used as an operand).
func prettyInner(s store.Store, id nodes.Id) string {
	res, mightNeedParens := prettyImpl(s, id)
	if mightNeedParens {
		return "(" + res + ")"
	}
	return res
}

// prettyImpl returns the rendered text and whether the caller should
// parenthesize it when nesting it inside another expression.
func prettyImpl(s store.Store, id nodes.Id) (string, bool) {
	if v, err := s.GetInteger(id); err == nil {
		return strconv.FormatInt(int64(v), 10), v < 0
	}
	if op, err := s.GetOperator(id); err == nil {
		return op.Token(), false
	}
	if sym, err := s.GetSymbol(id); err == nil {
		return sym.Name, false
	}
	if c, err := s.GetCall(id); err == nil {
		return prettyCall(s, c)
	}
	return fmt.Sprintf("{node? %s}", id), false
}

func isOperatorCallee(s store.Store, id nodes.Id) bool {
	if _, err := s.GetOperator(id); err == nil {
		return true
	}
	if sym, err := s.GetSymbol(id); err == nil {
		return sym.IsOperator
	}
	return false
}

func prettyCall(s store.Store, c nodes.Call) (string, bool) {
	calleeStr := prettyInner(s, c.Callee)
	isOperatorCall := isOperatorCallee(s, c.Callee)

	argNum := 0
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		if a.Name == nodes.PositionalName(argNum) {
			argNum++
			args[i] = prettyInner(s, a.Value)
		} else {
			isOperatorCall = false
			args[i] = a.Name + "=" + Pretty(s, a.Value)
		}
	}

	if isOperatorCall {
		joined := strings.Join(args, calleeStr)
		prefix := ""
		if len(c.Args) < 2 {
			prefix = calleeStr
		}
		return prefix + joined, true
	}
	return calleeStr + "(" + strings.Join(args, ", ") + ")", false
}
