package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"

	"github.com/codekriti/deepsea/internal/core"
	"github.com/codekriti/deepsea/internal/frame"
	"github.com/codekriti/deepsea/internal/storage"
)

// shutdownGrace bounds how long Shutdown waits for open sessions.
const shutdownGrace = 10 * time.Second

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	Address     string        // host:port to listen on
	HostKeyPath string        // Generated on first start if missing
	DBPath      string        // Scores database shared by every session
	IdleTimeout time.Duration // Idle sessions are closed after this long
	TickRate    int
	Timestep    frame.Mode
}

// DefaultSSHServerConfig returns the defaults the serve command starts from.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		HostKeyPath: "~/.codekriti/host_key",
		DBPath:      "~/.codekriti/scores.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
		Timestep:    frame.Coupled,
	}
}

// SSHServer gives every SSH connection its own session over a shared store.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer prepares the server without listening. A nil logger logs to
// stderr. The server runs without scores if the database cannot be opened.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "codekriti-ssh",
		})
	}

	keyPath, err := expandHome(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(keyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("playing without scores", "db", cfg.DBPath, "err", err)
		store = nil
	}

	s := &SSHServer{config: cfg, store: store, logger: logger}
	s.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.session),
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
	)
	if err != nil {
		if store != nil {
			store.Close() //nolint:errcheck
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	return s, nil
}

// expandHome resolves a leading ~/ and falls back to ~/.codekriti/host_key
// for an empty path.
func expandHome(path string) (string, error) {
	if path != "" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	if path == "" {
		return filepath.Join(home, ".codekriti", "host_key"), nil
	}
	return filepath.Join(home, path[2:]), nil
}

// session builds the program for one connection, sized to its PTY.
// activeterm has already turned away connections without one.
func (s *SSHServer) session(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	model := NewSessionModel(cfg, Options{
		Store:    s.store,
		Logger:   s.logger.With("user", sess.User()),
		Timestep: s.config.Timestep,
	})
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	}
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("listening", "address", s.config.Address)

	served := make(chan error, 1)
	go func() { served <- s.server.ListenAndServe() }()

	select {
	case err := <-served:
		s.closeStore()
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	return s.Shutdown()
}

// Shutdown waits up to shutdownGrace for sessions to end, then closes the store.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("closing scores database", "err", err)
	}
	s.store = nil
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
