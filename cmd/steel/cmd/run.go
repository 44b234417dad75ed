package cmd

import (
	"bufio"
	"fmt"
	"os"

	steel "github.com/cwbudde/steel"
	"github.com/cwbudde/steel/internal/optimizer"
	"github.com/cwbudde/steel/internal/printer"
	"github.com/spf13/cobra"
)

var (
	runEvalExpr string
	runOptimize bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Parse, optimize, and evaluate a program",
	Long: `Run one program (from -e, a file, or stdin) through
parse | optimize | evaluate and print the integer result.

With neither -e nor a file argument, each line of stdin is treated as
a complete, independent program: its result is printed to stdout and
any diagnostic to stderr, and the command exits 0 on clean EOF.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runEvalExpr, "eval", "e", "", "evaluate inline source instead of reading a file")
	runCmd.Flags().BoolVar(&runOptimize, "optimize", false, "constant-fold before evaluating")
}

func runRun(_ *cobra.Command, args []string) error {
	switch {
	case runEvalExpr != "":
		return runOne(runEvalExpr, "<eval>", os.Stdout, os.Stderr)
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return runOne(string(content), args[0], os.Stdout, os.Stderr)
	default:
		return runStdin(os.Stdin, os.Stdout, os.Stderr)
	}
}

func runStdin(in *os.File, out, diag *os.File) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if err := runOne(line, "<stdin>", out, diag); err != nil {
			fmt.Fprintln(diag, err)
		}
	}
	return scanner.Err()
}

func runOne(source, file string, out, diag *os.File) error {
	s, err := newStore()
	if err != nil {
		return err
	}

	root, _, _, err := steel.HandleSteps(s, []steel.Task{
		{Kind: steel.Parse, Source: source, File: file},
	}, out)
	if err != nil {
		fmt.Fprintln(diag, err)
		return nil
	}
	if log != nil {
		log.Debugf("expr (%s): %s", file, printer.Pretty(s, root))
	}

	tasks := []steel.Task{{Kind: steel.UseRoot, Root: root}}
	if runOptimize {
		tasks = append(tasks, steel.Task{Kind: steel.Optimize, OptimizerOpts: optimizer.All()})
	}
	tasks = append(tasks, steel.Task{Kind: steel.Evaluate})

	_, _, result, err := steel.HandleSteps(s, tasks, out)
	if err != nil {
		fmt.Fprintln(diag, err)
		return nil
	}
	fmt.Fprintln(out, result)
	return nil
}
