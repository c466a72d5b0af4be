package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-flip/internal/games/neonflip"
)

var (
	flagTicks int
	flagRuns  int
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless autopilot simulation",
	Long: `Run the game without a screen, steered by the autopilot, and print the
result. The same seed and config always give the same result, which makes
this useful for tuning difficulty.

Examples:
  neonflip sim --seed 42
  neonflip sim --seed 1 --runs 20 --ticks 100000
  neonflip sim --difficulty hard --runs 50`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagTicks, "ticks", 60_000, "Maximum physics ticks per run")
	simCmd.Flags().IntVar(&flagRuns, "runs", 1, "Number of runs, seeded seed, seed+1, ...")
}

func runSim(_ *cobra.Command, _ []string) {
	cfg, err := loadGameConfig()
	if err != nil {
		fail("%v", err)
	}
	logger, err := newLogger(os.Stderr, "neonflip-sim")
	if err != nil {
		fail("%v", err)
	}
	if flagTicks <= 0 || flagRuns <= 0 {
		fail("--ticks and --runs must be positive")
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	tick := cfg.Timing.TickInterval()
	fmt.Printf("  %-20s  %-8s  %-8s  %s\n", "Seed", "Score", "Ticks", "Result")
	fmt.Printf("  %-20s  %-8s  %-8s  %s\n", "----", "-----", "-----", "------")

	var total, best int
	for i := 0; i < flagRuns; i++ {
		s := seed + int64(i)
		st := neonflip.Simulate(cfg, s, flagTicks)

		result := "survived"
		if st.GameOver {
			result = "crashed"
		}
		fmt.Printf("  %-20d  %-8d  %-8d  %s\n", s, st.Score, st.Tick, result)
		logger.Debug("run finished", "seed", s, "score", st.Score, "ticks", st.Tick,
			"game_time", time.Duration(st.Tick)*tick)

		total += st.Score
		best = max(best, st.Score)
	}

	if flagRuns > 1 {
		fmt.Println()
		fmt.Printf("Best: %d  Average: %.1f\n", best, float64(total)/float64(flagRuns))
	}
}
