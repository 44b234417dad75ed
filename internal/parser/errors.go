package parser

import (
	"fmt"

	"github.com/cwbudde/steel/internal/lexer"
)

// UnexpectedEndOfInputError reports that a token was required but the
// input ran out.
type UnexpectedEndOfInputError struct {
	Where string
}

func (e *UnexpectedEndOfInputError) Error() string {
	return fmt.Sprintf("unexpected end of input while parsing %s", e.Where)
}

// MalformedExpressionError reports a token that cannot start or
// continue an expression in the given position.
type MalformedExpressionError struct {
	Where    string
	Expected string
	Got      lexer.Token
}

func (e *MalformedExpressionError) Error() string {
	return fmt.Sprintf("malformed expression in %s: expected %s, got %s at %s",
		e.Where, e.Expected, e.Got.Literal, e.Got.Pos)
}

// MalformedIntegerError reports an integer literal that does not fit
// in the target representation.
type MalformedIntegerError struct {
	Literal string
	Pos     lexer.Position
	Cause   error
}

func (e *MalformedIntegerError) Error() string {
	return fmt.Sprintf("malformed integer %q at %s: %v", e.Literal, e.Pos, e.Cause)
}

// LeftoverInputError reports that the parser stopped before consuming
// the entire input; the driver treats this as a parse failure, not a
// partial success.
type LeftoverInputError struct {
	Pos lexer.Position
}

func (e *LeftoverInputError) Error() string {
	return fmt.Sprintf("leftover input starting at %s", e.Pos)
}
