package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/genesis/internal/config"
	"github.com/vovakirdan/genesis/internal/core"
	"github.com/vovakirdan/genesis/internal/persist"
	"github.com/vovakirdan/genesis/internal/session"
	"github.com/vovakirdan/genesis/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.genesis/host_key.
	HostKeyPath string

	// DBPath is the path to the state database shared by all users.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Genesis is the engine tuning used for every canvas.
	Genesis config.Config
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.genesis/genesis.db",
		IdleTimeout: 30 * time.Minute,
		Genesis:     config.DefaultConfig(),
	}
}

// SSHServer serves one canvas per SSH user. Each user's state is saved under
// its own profile in the shared database, and a user may hold only one
// connection at a time.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
	active *profileLocks
}

// profileLocks tracks the profiles with a live canvas.
type profileLocks struct {
	mu   sync.Mutex
	held map[string]bool
}

func newProfileLocks() *profileLocks {
	return &profileLocks{held: make(map[string]bool)}
}

// acquire claims profile. Returns false if it is already in use.
func (l *profileLocks) acquire(profile string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[profile] {
		return false
	}
	l.held[profile] = true
	return true
}

func (l *profileLocks) release(profile string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, profile)
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "genesis-ssh",
	})

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		// Canvases still work, they just forget everything on disconnect.
		logger.Warn("could not open state database", "error", err)
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
		active: newProfileLocks(),
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".genesis", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// StateKey returns the store key holding profile's canvas.
func StateKey(base, profile string) string {
	return base + "/" + profile
}

// SSHProfile returns the profile name for an SSH user. The prefix keeps
// remote users apart from local profiles of the same name.
func SSHProfile(user string) string {
	return "ssh:" + user
}

// teaHandler creates a canvas session and Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.DefaultConfig()
	cfg.ScreenW = pty.Window.Width
	cfg.ScreenH = pty.Window.Height

	user := sshSession.User()
	profile := SSHProfile(user)
	logger := s.logger.With("user", user)

	// Two canvases on one profile would overwrite each other's saves.
	if !s.active.acquire(profile) {
		logger.Warn("rejected second connection")
		wish.Fatalln(sshSession, "genesis: you already have a canvas open in another session")
		return nil, nil
	}

	var store persist.Store = persist.NewMemoryStore()
	opts := []session.Option{
		session.WithLogger(logger),
		session.WithKey(StateKey(s.config.Genesis.Persistence.Key, profile)),
	}
	if s.store != nil {
		store = s.store
		opts = append(opts, session.WithJournal(s.store.Journal(profile)))
	}

	w, h := CanvasConfig(cfg).CanvasSize()
	sess := session.New(s.config.Genesis, store, w, h, opts...)

	ctx := sshSession.Context()
	if err := sess.Start(ctx); err != nil {
		s.active.release(profile)
		logger.Warn("session not started", "error", err)
		return nil, nil
	}

	// The program may end by quit or by disconnect; either way the
	// connection context is done afterwards.
	go func() {
		defer s.active.release(profile)
		<-ctx.Done()
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := sess.Close(closeCtx); err != nil {
			logger.Error("failed to save canvas", "error", err)
		}
	}()

	return NewModel(sess, cfg), []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
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

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server, then releases the database.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
