package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/neon-flip/internal/core"
	"github.com/vovakirdan/neon-flip/internal/platform/tui"
	"github.com/vovakirdan/neon-flip/internal/storage"
)

var (
	flagBell       bool
	flagAutoSubmit bool
	flagLogFile    string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Neon Flip",
	Long: `Start a game in this terminal.

Controls:
  Space/Up/W/Enter - Start, then flip gravity
  A                - Autoplay run (limited per player)
  P                - Pause/resume
  S                - Submit score after game over
  R                - Back to the start screen
  L                - Leaderboard
  Q/Ctrl+C         - Quit
  Ctrl+S           - Save a screenshot to ~/.neonflip/screenshots

Difficulty options:
  easy   - Gaps shrink at half speed
  normal - Configured values
  hard   - Narrower starting gap, faster walls
  fixed  - Gaps never shrink

Examples:
  neonflip play
  neonflip play --difficulty easy
  neonflip play --player neo --auto-submit
  neonflip play --config ./my-neonflip.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagBell, "bell", false, "Ring the terminal bell on score and game over")
	playCmd.Flags().BoolVar(&flagAutoSubmit, "auto-submit", false, "Submit manual runs as soon as they end")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "~/.neonflip/neonflip.log", "Log file used during play")
}

func runPlay(cmd *cobra.Command, _ []string) {
	cfg, err := loadGameConfig()
	if err != nil {
		fail("%v", err)
	}

	// The alternate screen owns stdout, so logs go to a file
	logPath, err := storage.ExpandHome(flagLogFile)
	if err != nil {
		fail("%v", err)
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		fail("cannot create log directory: %v", err)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fail("cannot open log file: %v", err)
	}
	defer logFile.Close()

	logger, err := newLogger(logFile, "neonflip")
	if err != nil {
		fail("%v", err)
	}

	store, board, err := openBoard(cfg, logger)
	if err != nil {
		fail("could not open scores database: %v", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	if ok, err := board.FlushPending(ctx, flagPlayer); err != nil {
		logger.Warn("pending score still unsent", "player", flagPlayer, "err", err)
	} else if ok {
		logger.Info("submitted pending score", "player", flagPlayer)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := tui.Options{
		Config: cfg,
		Board:  board,
		Logger: logger,
		Runtime: core.RuntimeConfig{
			ScreenW: width,
			ScreenH: height,
			Seed:    flagSeed,
			Player:  flagPlayer,
		},
		AutoSubmit: flagAutoSubmit,
	}
	if flagBell {
		opts.Bell = os.Stderr
	}

	if err := tui.Run(ctx, opts); err != nil {
		store.Close()
		fail("running game: %v", err)
	}
}
