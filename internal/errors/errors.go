// Package errors renders a user-visible diagnostic for a single
// position in source: a file:line:column header, the offending source
// line, a caret pointing at the column, and the message. Lexer, parser,
// store, optimizer, and evaluator errors all carry their own typed Go
// error values; only parse errors that carry a source position are
// wrapped into a SourceError (by steel.HandleSteps), and the others are
// returned as they are.
package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/steel/internal/lexer"
)

// SourceError pairs an underlying error with the source text and
// position needed to render it with context.
type SourceError struct {
	Message string
	Source  string
	File    string
	Pos     lexer.Position
}

// NewSourceError wraps err's message with the source and position it
// occurred at.
func NewSourceError(pos lexer.Position, message, source, file string) *SourceError {
	return &SourceError{Pos: pos, Message: message, Source: source, File: file}
}

// Error implements the error interface using the uncolored, single-line-context format.
func (e *SourceError) Error() string {
	return e.Format(false)
}

// Format renders the header, source line, and caret. If color is
// true, ANSI codes highlight the caret and message for a terminal.
func (e *SourceError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "Error at %d:%d\n", e.Pos.Line, e.Pos.Column)
	}

	sourceLine := e.getSourceLine(e.Pos.Line)
	if sourceLine != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(sourceLine)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (e *SourceError) getSourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

