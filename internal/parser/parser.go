// Package parser implements the top-down operator precedence (Pratt)
// parser for the expression language: identifiers, signed integers by
// prefix-operator rewrite, unified call syntax, and positional/named
// call arguments.
package parser

import (
	"strconv"

	"github.com/cwbudde/steel/internal/lexer"
	"github.com/cwbudde/steel/internal/nodes"
	"github.com/cwbudde/steel/internal/store"
)

// minPrecedence is the precedence floor every top-level expression
// parses at; a led only continues when its binding power is strictly
// greater than the precedence passed in, which is what makes operators
// of equal precedence left-associative (a+b+c parses as (a+b)+c).
const minPrecedence = 0

// callPrecedence is the binding power of juxtaposition-call syntax.
// It outranks every arithmetic operator so that f(x)+1 parses as
// Call(+, [f(x), 1]) rather than f applied to (x)+1.
const callPrecedence = 3

// Parser holds one-token lookahead (plus a second buffered token for
// disambiguating "name = expr" from a bare identifier argument) over a
// lexer, and the store new nodes are added to.
type Parser struct {
	src    string
	lx     *lexer.Lexer
	store  store.Store
	cur    lexer.Token
	peeked *lexer.Token
}

// Parse tokenizes and parses src as a single expression, adding nodes
// to st, and returns the root node's Id. It fails if any input is left
// over after the expression — a fully consumed line is part of the
// program's syntax, not an implementation convenience.
func Parse(src string, st store.Store) (nodes.Id, error) {
	p := &Parser{src: src, lx: lexer.New(src), store: st}
	if err := p.advance(); err != nil {
		return 0, err
	}
	root, err := p.parseExpr(minPrecedence)
	if err != nil {
		return 0, err
	}
	if p.cur.Type != lexer.EOF {
		return 0, &LeftoverInputError{Pos: p.cur.Pos}
	}
	return root, nil
}

func (p *Parser) advance() error {
	if p.peeked != nil {
		p.cur = *p.peeked
		p.peeked = nil
		return nil
	}
	tok, err := p.lx.Next()
	if err != nil {
		return p.wrapLexErr(err)
	}
	p.cur = tok
	return nil
}

func (p *Parser) peekAhead() (lexer.Token, error) {
	if p.peeked == nil {
		tok, err := p.lx.Next()
		if err != nil {
			return lexer.Token{}, p.wrapLexErr(err)
		}
		p.peeked = &tok
	}
	return *p.peeked, nil
}

func (p *Parser) wrapLexErr(err error) error {
	if ube, ok := err.(*lexer.UnrecognizedByteError); ok {
		return &MalformedExpressionError{
			Where:    "expression",
			Expected: "a valid token",
			Got:      lexer.Token{Literal: p.src, Pos: ube.Pos},
		}
	}
	return err
}

func (p *Parser) parseExpr(prec int) (nodes.Id, error) {
	left, err := p.parseNud()
	if err != nil {
		return 0, err
	}
	for {
		// A led that can't bind at prec ends the loop rather than
		// signaling an error: unlike a backtracking parser, there is
		// nothing here to unwind.
		ledPrec, ok := p.ledPrecedence()
		if !ok || ledPrec <= prec {
			return left, nil
		}
		if p.cur.Type == lexer.LParen {
			left, err = p.parseCallTail(left)
		} else {
			left, err = p.parseBinaryLed(left, ledPrec)
		}
		if err != nil {
			return 0, err
		}
	}
}

func (p *Parser) ledPrecedence() (int, bool) {
	switch p.cur.Type {
	case lexer.LParen:
		return callPrecedence, true
	case lexer.Operator:
		op, ok := nodes.OperatorFromToken(p.cur.Literal)
		if !ok {
			return 0, false
		}
		return op.Precedence(), true
	default:
		return 0, false
	}
}

func (p *Parser) parseNud() (nodes.Id, error) {
	switch p.cur.Type {
	case lexer.LParen:
		if err := p.advance(); err != nil {
			return 0, err
		}
		inner, err := p.parseExpr(minPrecedence)
		if err != nil {
			return 0, err
		}
		if p.cur.Type != lexer.RParen {
			return 0, &MalformedExpressionError{Where: "grouping", Expected: ")", Got: p.cur}
		}
		if err := p.advance(); err != nil {
			return 0, err
		}
		return inner, nil

	case lexer.Ident:
		name := p.cur.Literal
		if err := p.advance(); err != nil {
			return 0, err
		}
		return p.store.AddSymbol(nodes.Symbol{Name: name}), nil

	case lexer.Integer:
		lit := p.cur.Literal
		pos := p.cur.Pos
		if err := p.advance(); err != nil {
			return 0, err
		}
		v, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			return 0, &MalformedIntegerError{Literal: lit, Pos: pos, Cause: err}
		}
		return p.store.AddInteger(nodes.Integer(v)), nil

	case lexer.Operator:
		return p.parsePrefixOperator()

	case lexer.EOF:
		return 0, &UnexpectedEndOfInputError{Where: "expression"}

	default:
		return 0, &MalformedExpressionError{Where: "expression", Expected: "an expression", Got: p.cur}
	}
}

// parsePrefixOperator handles an operator appearing where a nud is
// expected: either a bare operator used as a callee ("+(1,2)") or a
// prefix application ("-123"), which is rewritten to a binary call
// against a literal zero so the optimizer always sees a uniform
// two-argument operator call.
func (p *Parser) parsePrefixOperator() (nodes.Id, error) {
	tok := p.cur.Literal
	op, _ := nodes.OperatorFromToken(tok)
	if err := p.advance(); err != nil {
		return 0, err
	}

	if p.cur.Type == lexer.LParen {
		calleeId := p.store.AddOperator(op)
		return p.parseCallTail(calleeId)
	}

	rhs, err := p.parseExpr(minPrecedence)
	if err != nil {
		return 0, err
	}
	calleeId := p.store.AddOperator(op)
	zero := p.store.AddInteger(0)
	return p.store.AddCall(nodes.Call{
		Callee: calleeId,
		Args: []nodes.Arg{
			{Name: "arg_0", Value: zero},
			{Name: "arg_1", Value: rhs},
		},
	}), nil
}

func (p *Parser) parseBinaryLed(lhs nodes.Id, opPrec int) (nodes.Id, error) {
	tok := p.cur.Literal
	op, _ := nodes.OperatorFromToken(tok)
	if err := p.advance(); err != nil {
		return 0, err
	}
	rhs, err := p.parseExpr(opPrec)
	if err != nil {
		return 0, err
	}
	calleeId := p.store.AddOperator(op)
	return p.store.AddCall(nodes.Call{
		Callee: calleeId,
		Args: []nodes.Arg{
			{Name: "arg_0", Value: lhs},
			{Name: "arg_1", Value: rhs},
		},
	}), nil
}

func (p *Parser) parseCallTail(calleeId nodes.Id) (nodes.Id, error) {
	if err := p.advance(); err != nil { // consume '('
		return 0, err
	}
	var args []nodes.Arg
	positional := 0
	if p.cur.Type != lexer.RParen {
		for {
			arg, err := p.parseArg(&positional)
			if err != nil {
				return 0, err
			}
			args = append(args, arg)
			if p.cur.Type != lexer.Comma {
				break
			}
			if err := p.advance(); err != nil { // consume ','
				return 0, err
			}
		}
	}
	if p.cur.Type != lexer.RParen {
		return 0, &MalformedExpressionError{Where: "call arguments", Expected: ")", Got: p.cur}
	}
	if err := p.advance(); err != nil { // consume ')'
		return 0, err
	}
	return p.store.AddCall(nodes.Call{Callee: calleeId, Args: args}), nil
}

// parseArg parses one call argument: "name = expr" if the current
// identifier is immediately followed by '=', otherwise a positional
// expr whose synthesized name advances the positional counter.
func (p *Parser) parseArg(positional *int) (nodes.Arg, error) {
	if p.cur.Type == lexer.Ident {
		name := p.cur.Literal
		next, err := p.peekAhead()
		if err != nil {
			return nodes.Arg{}, err
		}
		if next.Type == lexer.Equals {
			if err := p.advance(); err != nil { // consume identifier
				return nodes.Arg{}, err
			}
			if err := p.advance(); err != nil { // consume '='
				return nodes.Arg{}, err
			}
			value, err := p.parseExpr(minPrecedence)
			if err != nil {
				return nodes.Arg{}, err
			}
			return nodes.Arg{Name: name, Value: value}, nil
		}
	}

	value, err := p.parseExpr(minPrecedence)
	if err != nil {
		return nodes.Arg{}, err
	}
	name := nodes.PositionalName(*positional)
	*positional++
	return nodes.Arg{Name: name, Value: value}, nil
}
