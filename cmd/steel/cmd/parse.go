package cmd

import (
	"fmt"
	"io"
	"os"

	steel "github.com/cwbudde/steel"
	"github.com/spf13/cobra"
)

var parseDumpIds bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a program and print its pretty-printed tree",
	Long: `Parse source (from a file or stdin) and print the
reconstructed, infix-normalized form internal/printer produces.

--dump-ids additionally prints the raw store entity identifier of the
root node, for debugging which backend produced which Id layout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseDumpIds, "dump-ids", false, "also print the root node's raw entity id")
}

func runParse(_ *cobra.Command, args []string) error {
	var input string
	file := "<stdin>"
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("error reading file: %w", err)
		}
		input = string(data)
		file = args[0]
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("error reading stdin: %w", err)
		}
		input = string(data)
	}

	s, err := newStore()
	if err != nil {
		return err
	}

	root, hasRoot, _, err := steel.HandleSteps(s, []steel.Task{
		{Kind: steel.Parse, Source: input, File: file},
		{Kind: steel.Print},
	}, os.Stdout)
	if err != nil {
		return err
	}
	if hasRoot && parseDumpIds {
		fmt.Fprintf(os.Stdout, "root id: %s\n", root)
	}
	return nil
}
