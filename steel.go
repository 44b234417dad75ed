// Package steel is the library entry point: it composes the parser,
// optimizer, printer, and evaluator into the single driver spec.md §6
// calls handle_steps, the one function both "steel run" and "steel
// bench" are built on top of.
package steel

import (
	"fmt"
	"io"

	internalerrors "github.com/cwbudde/steel/internal/errors"
	"github.com/cwbudde/steel/internal/eval"
	"github.com/cwbudde/steel/internal/lexer"
	"github.com/cwbudde/steel/internal/nodes"
	"github.com/cwbudde/steel/internal/optimizer"
	"github.com/cwbudde/steel/internal/parser"
	"github.com/cwbudde/steel/internal/printer"
	"github.com/cwbudde/steel/internal/store"
)

// TaskKind selects one step of a HandleSteps pipeline.
type TaskKind int

const (
	// Parse lexes and parses Task.Source into the store, replacing the
	// current root.
	Parse TaskKind = iota
	// UseRoot adopts Task.Root as the current root without touching
	// the store; for driving a pipeline over an already-built or
	// generated tree (internal/gen).
	UseRoot
	// Print renders the current root with internal/printer and writes
	// it, newline-terminated, to HandleSteps' out writer.
	Print
	// Optimize runs internal/optimizer with Task.OptimizerOpts over the
	// current root, replacing it with the optimized root.
	Optimize
	// PrintOptimized is Print, named separately so a caller's task list
	// can request the pre- and post-optimization renderings distinctly
	// (spec.md §6's print / print_optimized pair).
	PrintOptimized
	// Evaluate runs internal/eval over the current root and records its
	// result.
	Evaluate
)

// Task is one step of a HandleSteps pipeline. Only the fields the
// step's Kind reads are meaningful; the zero value of the rest is
// ignored.
type Task struct {
	Kind TaskKind

	// Source is read by Parse.
	Source string
	// File names Source for diagnostics; optional.
	File string

	// Root is read by UseRoot.
	Root nodes.Id

	// OptimizerOpts is read by Optimize.
	OptimizerOpts optimizer.Opts
}

// HandleSteps runs tasks in sequence against s, threading a "current
// root" through Parse/UseRoot/Optimize and rendering Print/
// PrintOptimized to out. It returns the final root (hasRoot is false
// if no Parse/UseRoot task ran), the Evaluate result (0 if no Evaluate
// task ran), and the first error encountered, which aborts the
// remaining tasks.
//
// Parse errors that carry a source position are wrapped into
// *errors.SourceError so the caller can render a caret-pointing
// diagnostic without needing to know which stage produced the error;
// store, optimizer, and evaluator errors carry no position and are
// returned as-is.
func HandleSteps(s store.Store, tasks []Task, out io.Writer) (root nodes.Id, hasRoot bool, result int64, err error) {
	for _, t := range tasks {
		switch t.Kind {
		case Parse:
			root, err = parser.Parse(t.Source, s)
			if err != nil {
				return root, hasRoot, result, wrapParseError(err, t.Source, t.File)
			}
			hasRoot = true

		case UseRoot:
			root = t.Root
			hasRoot = true

		case Print, PrintOptimized:
			if !hasRoot {
				return root, hasRoot, result, fmt.Errorf("steel: %s requires a root from Parse or UseRoot", taskName(t.Kind))
			}
			if _, werr := fmt.Fprintln(out, printer.Pretty(s, root)); werr != nil {
				return root, hasRoot, result, werr
			}

		case Optimize:
			if !hasRoot {
				return root, hasRoot, result, fmt.Errorf("steel: Optimize requires a root from Parse or UseRoot")
			}
			root, err = optimizer.Optimize(s, t.OptimizerOpts, root)
			if err != nil {
				return root, hasRoot, result, err
			}

		case Evaluate:
			if !hasRoot {
				return root, hasRoot, result, fmt.Errorf("steel: Evaluate requires a root from Parse or UseRoot")
			}
			ev := eval.New(s, out)
			result, err = ev.Run(root)
			if err != nil {
				return root, hasRoot, result, err
			}
		}
	}
	return root, hasRoot, result, nil
}

func taskName(k TaskKind) string {
	switch k {
	case Parse:
		return "Parse"
	case UseRoot:
		return "UseRoot"
	case Print:
		return "Print"
	case Optimize:
		return "Optimize"
	case PrintOptimized:
		return "PrintOptimized"
	case Evaluate:
		return "Evaluate"
	default:
		return "unknown task"
	}
}

func wrapParseError(err error, source, file string) error {
	pos, ok := positionOf(err)
	if !ok {
		return err
	}
	return internalerrors.NewSourceError(pos, err.Error(), source, file)
}

func positionOf(err error) (lexer.Position, bool) {
	switch e := err.(type) {
	case *parser.MalformedExpressionError:
		return e.Got.Pos, true
	case *parser.MalformedIntegerError:
		return e.Pos, true
	case *parser.LeftoverInputError:
		return e.Pos, true
	case *lexer.UnrecognizedByteError:
		return e.Pos, true
	default:
		return lexer.Position{}, false
	}
}
