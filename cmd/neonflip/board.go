package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/neon-flip/internal/platform/tui"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Browse the leaderboard interactively",
	Long: `Open the leaderboard table. Runs by --player are marked.

Keys:
  Up/Down  - Scroll
  R        - Refresh
  Esc/Q    - Close`,
	Args: cobra.NoArgs,
	Run:  runBoard,
}

func runBoard(cmd *cobra.Command, _ []string) {
	cfg, err := loadGameConfig()
	if err != nil {
		fail("%v", err)
	}

	store, board, err := openBoard(cfg, log.New(io.Discard))
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	if err := tui.RunScoreboard(cmd.Context(), board, flagPlayer, width, height); err != nil {
		store.Close()
		fail("%v", err)
	}
}
