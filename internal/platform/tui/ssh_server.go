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

	"github.com/vovakirdan/tiltcart/internal/config"
	"github.com/vovakirdan/tiltcart/internal/core"
	"github.com/vovakirdan/tiltcart/internal/course"
	"github.com/vovakirdan/tiltcart/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.tiltcart/host_key.
	HostKeyPath string

	// DBPath is the path to the runs database.
	DBPath string

	// CourseDir optionally adds courses from disk to the built-ins.
	CourseDir string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.tiltcart/runs.db",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer wraps a Wish SSH server that serves tiltcart sessions.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	store   *storage.Store
	courses []*course.Course
	game    config.Config
	logger  *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, game config.Config) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tiltcart-ssh",
	})

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		// Continue without storage
	}

	courses := course.List()
	if cfg.CourseDir != "" {
		loaded, loadErr := (&course.Loader{Root: cfg.CourseDir}).LoadAll()
		if loadErr != nil {
			logger.Warn("could not load course directory", "dir", cfg.CourseDir, "error", loadErr)
		} else {
			courses = append(courses, loaded...)
		}
	}

	srv := &SSHServer{
		config:  cfg,
		store:   store,
		courses: courses,
		game:    game,
		logger:  logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".tiltcart", "host_key")
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

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	rt := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: 60,
		Seed:     time.Now().UnixNano(),
	}

	model := NewFlowModel(s.courses, s.game, s.store, rt)

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
	s.logger.Info("starting SSH server", "address", s.config.Address, "courses", len(s.courses))

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

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// flowScreen identifies which screen the flow is showing.
type flowScreen int

const (
	screenMenu flowScreen = iota
	screenPlaying
	screenScores
)

// FlowModel manages the full session flow: menu -> game -> menu, with the
// scoreboard as a side screen. This is the top-level model for SSH
// sessions and for local play without an explicit course.
type FlowModel struct {
	courses []*course.Course
	game    config.Config
	store   *storage.Store
	rt      core.RuntimeConfig

	screen flowScreen
	menu   MenuModel
	play   Model
	scores ScoreboardModel
}

// NewFlowModel creates the menu-first flow.
func NewFlowModel(courses []*course.Course, game config.Config, store *storage.Store, rt core.RuntimeConfig) FlowModel {
	return FlowModel{
		courses: courses,
		game:    game,
		store:   store,
		rt:      rt,
		screen:  screenMenu,
		menu:    NewMenuModel(courses, store, rt.ScreenW, rt.ScreenH),
	}
}

// Init implements tea.Model.
func (m FlowModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen and handles transitions.
func (m FlowModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case courseChosenMsg:
		m.screen = screenPlaying
		m.play = NewModel(msg.course, m.game, m.store, m.rt)
		m.play.embedded = true
		return m, m.play.Init()

	case playDoneMsg:
		m.screen = screenMenu
		// Rebuild so personal bests reflect the run that just ended
		m.menu = NewMenuModel(m.courses, m.store, m.rt.ScreenW, m.rt.ScreenH)
		return m, nil

	case showScoresMsg:
		m.screen = screenScores
		m.scores = NewScoreboardModel(m.courses, m.store, m.rt.ScreenW, m.rt.ScreenH)
		return m, m.scores.Init()

	case scoreboardBackMsg:
		m.screen = screenMenu
		return m, nil

	case tea.WindowSizeMsg:
		m.rt.ScreenW = msg.Width
		m.rt.ScreenH = msg.Height
	}

	switch m.screen {
	case screenPlaying:
		next, cmd := m.play.Update(msg)
		if play, ok := next.(Model); ok {
			m.play = play
		}
		return m, cmd
	case screenScores:
		next, cmd := m.scores.Update(msg)
		if scores, ok := next.(ScoreboardModel); ok {
			m.scores = scores
		}
		return m, cmd
	default:
		next, cmd := m.menu.Update(msg)
		if menu, ok := next.(MenuModel); ok {
			m.menu = menu
		}
		return m, cmd
	}
}

// RunFlow starts the menu-first flow in the local terminal.
func RunFlow(courses []*course.Course, game config.Config, store *storage.Store, rt core.RuntimeConfig) error {
	model := NewFlowModel(courses, game, store, rt)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// View renders the active screen.
func (m FlowModel) View() string {
	switch m.screen {
	case screenPlaying:
		return m.play.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}
