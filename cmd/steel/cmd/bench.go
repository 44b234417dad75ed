package cmd

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	steel "github.com/cwbudde/steel"
	"github.com/cwbudde/steel/internal/gen"
	"github.com/cwbudde/steel/internal/optimizer"
	"github.com/spf13/cobra"
)

var (
	benchCount int
	benchSize  int
	benchSeed  int64
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Evaluate a generated corpus for manual profiling",
	Long: `Generate --count random programs of --size nodes each
(internal/gen) and run each through parse-equivalent-to-generate,
optimize, evaluate — discarding their stdout so the only observable
cost is the core pipeline itself. Prints wall-clock time and a simple
per-program rate.`,
	RunE: runBench,
}

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.Flags().IntVar(&benchCount, "count", 1000, "number of programs to generate and run")
	benchCmd.Flags().IntVar(&benchSize, "size", 50, "node budget per generated program")
	benchCmd.Flags().Int64Var(&benchSeed, "seed", 1, "PRNG seed, for reproducible corpora")
}

func runBench(_ *cobra.Command, _ []string) error {
	rng := rand.New(rand.NewPCG(uint64(benchSeed), uint64(benchSeed)>>1|1))
	spec := gen.NewSpec().WithMaxDepth(benchSize)

	start := time.Now()
	var evaluated, failed int
	for i := 0; i < benchCount; i++ {
		s, err := newStore()
		if err != nil {
			return err
		}
		root := gen.Program(spec, s, rng)

		_, _, _, err = steel.HandleSteps(s, []steel.Task{
			{Kind: steel.UseRoot, Root: root},
			{Kind: steel.Optimize, OptimizerOpts: optimizer.All()},
			{Kind: steel.Evaluate},
		}, io.Discard)
		if err != nil {
			failed++
			continue
		}
		evaluated++
	}
	elapsed := time.Since(start)

	fmt.Fprintf(os.Stdout, "backend=%s count=%d evaluated=%d failed=%d elapsed=%s (%.1f programs/s)\n",
		backend, benchCount, evaluated, failed, elapsed, float64(benchCount)/elapsed.Seconds())
	return nil
}
