package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/neon-flip/internal/config"
	"github.com/vovakirdan/neon-flip/internal/core"
	"github.com/vovakirdan/neon-flip/internal/leaderboard"
	"github.com/vovakirdan/neon-flip/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.neonflip/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// AutoSubmit submits manual runs as soon as they end.
	AutoSubmit bool
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.neonflip/scores.db",
		IdleTimeout: 30 * time.Minute,
		AutoSubmit:  true,
	}
}

// ApplyEnv overrides fields set in env.
func (c SSHServerConfig) ApplyEnv(env config.ServerEnv) SSHServerConfig {
	if env.Address != "" {
		c.Address = env.Address
	}
	if env.HostKeyPath != "" {
		c.HostKeyPath = env.HostKeyPath
	}
	if env.DBPath != "" {
		c.DBPath = env.DBPath
	}
	if env.IdleTimeout > 0 {
		c.IdleTimeout = env.IdleTimeout
	}
	return c
}

// SSHServer serves one Neon Flip session per SSH connection. All players
// share one leaderboard.
type SSHServer struct {
	config SSHServerConfig
	game   config.Config
	server *ssh.Server
	store  *storage.Store
	board  *leaderboard.Service
	logger *log.Logger

	// ctx outlives individual connections so submissions can finish
	ctx    context.Context
	cancel context.CancelFunc
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, game config.Config, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "neonflip-ssh",
		})
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open scores database: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	srv := &SSHServer{
		config: cfg,
		game:   game,
		store:  store,
		board:  leaderboard.New(store, game.Autopilot.MaxPlays, leaderboard.WithLogger(logger)),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}

	if n, err := srv.board.FlushAllPending(ctx); err != nil {
		logger.Warn("could not flush pending scores", "error", err)
	} else if n > 0 {
		logger.Info("flushed pending scores", "count", n)
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			srv.close()
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".neonflip", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		srv.close()
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		srv.close()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a game session for each SSH connection. The engine
// stops when the connection closes.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	player := sshSession.User()
	logger := s.logger.With("user", player)

	sess := NewSession(sshSession.Context(), Options{
		Config: s.game,
		Board:  s.board,
		Logger: logger,
		Runtime: core.RuntimeConfig{
			ScreenW: pty.Window.Width,
			ScreenH: pty.Window.Height,
			Seed:    time.Now().UnixNano(),
			Player:  player,
		},
		AutoSubmit:    s.config.AutoSubmit,
		Bell:          sshSession.Stderr(),
		SubmitContext: s.ctx,
	})

	model := NewGameModel(sshSession.Context(), sess, s.board, logger, pty.Window.Width, pty.Window.Height)
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
	case err := <-errCh:
		s.logger.Error("server error", "error", err)
		s.close()
		return err
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.close()
	return err
}

func (s *SSHServer) close() {
	s.cancel()
	if s.store != nil {
		//nolint:errcheck // Closing on shutdown
		s.store.Close()
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
