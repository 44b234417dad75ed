package cmd

import (
	"fmt"

	"github.com/cwbudde/steel/internal/steellog"
	"github.com/cwbudde/steel/internal/store"
	"github.com/cwbudde/steel/internal/store/ecsstore"
	"github.com/cwbudde/steel/internal/store/treestore"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	verbose bool
	backend string

	log *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "steel",
	Short: "A tiny pluggable-backend expression language",
	Long: `steel parses, optimizes, and evaluates a minimal expression
language (integer literals, the four arithmetic operators, and unified
call syntax) over either of two interchangeable program stores: a
tagged-union tree and an entity/component table.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := steellog.New(verbose)
		if err != nil {
			return err
		}
		log = l
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging (overrides STEEL_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "tree", `program store backend: "tree" or "component"`)
}

// newStore builds the store backend named by --backend.
func newStore() (store.Store, error) {
	switch backend {
	case "tree", "":
		return treestore.New(), nil
	case "component":
		return ecsstore.New(), nil
	default:
		return nil, fmt.Errorf(`unknown --backend %q, want "tree" or "component"`, backend)
	}
}

