package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tiltcart/internal/config"
	"github.com/vovakirdan/tiltcart/internal/core"
	"github.com/vovakirdan/tiltcart/internal/course"
	"github.com/vovakirdan/tiltcart/internal/sim"
	"github.com/vovakirdan/tiltcart/internal/storage"
)

// Model is the Bubble Tea model for one course run.
type Model struct {
	session *sim.Session
	screen  *core.Screen
	store   *storage.Store
	pilot   *KeyboardPilot
	rt      core.RuntimeConfig

	quitting bool
	runSaved bool // Whether the run row was written for this game over
	embedded bool // Embedded in a flow: leave with playDoneMsg, not tea.Quit
}

// playDoneMsg is emitted by an embedded play model when the player leaves
// the course, so the parent flow can return to its menu.
type playDoneMsg struct{}

// NewModel creates a playing model for the given course.
func NewModel(cr *course.Course, cfg config.Config, store *storage.Store, rt core.RuntimeConfig) Model {
	return Model{
		session: sim.NewSession(cr, cfg, rt),
		screen:  core.NewScreen(rt.ScreenW, rt.ScreenH),
		store:   store,
		pilot:   NewKeyboardPilot(DefaultPlayKeyMap()),
		rt:      rt,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.rt.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.pilot.HandleKey(msg) {
			m.quitting = true
			m.session.Close()
			if m.embedded {
				return m, func() tea.Msg { return playDoneMsg{} }
			}
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.rt.ScreenW = msg.Width
		m.rt.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleTick advances the simulation by one tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		// A tick can still be in flight after the session closed
		return m, nil
	}

	result := m.session.Step(m.pilot.Snapshot())

	finished := result.State.GameOver || result.State.Complete
	if finished && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}
	if !finished {
		m.runSaved = false
	}

	return m, tickCmd(m.rt.TickRate)
}

// saveRun writes the finished session to storage, best effort.
func (m *Model) saveRun() {
	if m.store == nil {
		return
	}
	//nolint:errcheck // Best-effort save, play continues regardless
	m.store.SaveRun(storage.RunEntry{
		CourseID:    m.session.Course().ID,
		Completed:   m.session.Complete(),
		Ticks:       m.session.Tick(),
		Deaths:      m.session.Lives().Deaths,
		Checkpoints: m.session.Checkpoints().Count(),
		Score:       m.session.Score(),
	})
}

// View renders the current state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	drawSession(m.session, m.screen, m.pilot)
	return RenderScreen(m.screen)
}

// Run starts a full-screen play session for one course.
func Run(cr *course.Course, cfg config.Config, store *storage.Store, rt core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(cr, cfg, store, rt),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
