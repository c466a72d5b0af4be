// neonflip is a gravity-flip arcade game for the terminal.
//
// Usage:
//
//	neonflip play            - Play in this terminal
//	neonflip sim             - Run a headless autopilot simulation
//	neonflip scores          - Show the leaderboard or a player's stats
//	neonflip board           - Browse the leaderboard interactively
//	neonflip serve           - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>      - Game config YAML
//	--difficulty <name>  - easy, normal, hard, fixed
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.neonflip/scores.db)
//	--player <name>      - Name scores are recorded under
//	--log-level <level>  - debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-flip/internal/config"
	"github.com/vovakirdan/neon-flip/internal/leaderboard"
	"github.com/vovakirdan/neon-flip/internal/storage"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagSeed       int64
	flagDBPath     string
	flagPlayer     string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "neonflip",
	Short: "Neon Flip - flip gravity, dodge the walls",
	Long: `Neon Flip is a one-button arcade game: a glowing ball falls toward the
floor or the ceiling, and every tap flips gravity. Thread the gaps in the
walls scrolling in from the right. The gaps shrink as your score grows.

Available commands:
  play     - Play in this terminal
  sim      - Run a headless autopilot simulation
  scores   - Show the leaderboard or a player's stats
  board    - Browse the leaderboard interactively
  serve    - Start SSH server for remote play

Examples:
  neonflip play
  neonflip play --difficulty hard
  neonflip sim --seed 42 --ticks 10000
  neonflip scores --player neo
  neonflip serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.neonflip/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", defaultPlayer(), "Name scores are recorded under")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(serveCmd)
}

func defaultPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}

// loadGameConfig loads the config file and applies the difficulty preset.
func loadGameConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.Config{}, err
	}
	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// openBoard opens the scores database behind a leaderboard.
func openBoard(cfg config.Config, logger *log.Logger) (*storage.Store, *leaderboard.Service, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, nil, err
	}
	board := leaderboard.New(store, cfg.Autopilot.MaxPlays, leaderboard.WithLogger(logger))
	return store, board, nil
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
