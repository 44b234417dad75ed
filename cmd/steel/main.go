// Command steel is the CLI front end for the expression-language
// core: run/parse/bench subcommands over the tree and component
// store backends.
package main

import (
	"os"

	"github.com/cwbudde/steel/cmd/steel/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
