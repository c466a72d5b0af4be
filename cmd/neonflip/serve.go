package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-flip/internal/config"
	"github.com/vovakirdan/neon-flip/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagEnvFile     string
	flagNoAutoSend  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Neon Flip SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game, named after the SSH user.
Scores are stored per-server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.neonflip/host_key

Environment (also read from --env-file):
  NEONFLIP_SSH_ADDR, NEONFLIP_HOST_KEY, NEONFLIP_DB,
  NEONFLIP_IDLE_TIMEOUT, NEONFLIP_LOG_LEVEL

Examples:
  neonflip serve                           # Listen on :23234 with auto-generated key
  neonflip serve --ssh :2222               # Listen on port 2222
  neonflip serve --host-key ./my_host_key  # Use specific host key
  neonflip serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh neo@localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagEnvFile, "env-file", ".env", "Optional dotenv file with NEONFLIP_* settings")
	serveCmd.Flags().BoolVar(&flagNoAutoSend, "no-auto-submit", false, "Require players to press S to submit")
}

func runServe(_ *cobra.Command, _ []string) {
	if err := config.LoadDotEnv(flagEnvFile); err != nil {
		fail("%v", err)
	}
	var env config.ServerEnv
	if err := config.ParseEnv(&env); err != nil {
		fail("%v", err)
	}
	if env.LogLevel != "" {
		flagLogLevel = env.LogLevel
	}

	game, err := loadGameConfig()
	if err != nil {
		fail("%v", err)
	}
	logger, err := newLogger(os.Stderr, "neonflip-ssh")
	if err != nil {
		fail("%v", err)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		AutoSubmit:  !flagNoAutoSend,
	}.ApplyEnv(env)

	server, err := tui.NewSSHServer(cfg, game, logger)
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting Neon Flip SSH server on %s\n", server.Addr())
	fmt.Println("Connect with: ssh <name>@localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}
