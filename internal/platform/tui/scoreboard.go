package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tiltcart/internal/course"
	"github.com/vovakirdan/tiltcart/internal/storage"
)

const maxRuns = 100

var (
	scoreTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	scoreHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	backMsgStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).MarginTop(1)
)

// scoreboardBackMsg asks the parent flow to return to the menu.
type scoreboardBackMsg struct{}

// ScoreboardModel shows the best recorded runs per course.
type ScoreboardModel struct {
	courses []*course.Course
	cursor  int
	store   *storage.Store
	table   table.Model
	keys    MenuKeyMap
	help    help.Model
	width   int
	height  int
}

// NewScoreboardModel creates a scoreboard over the given courses.
func NewScoreboardModel(courses []*course.Course, store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		courses: courses,
		store:   store,
		keys:    DefaultMenuKeyMap(),
		help:    help.New(),
		width:   width,
		height:  height,
	}
	m.table = m.buildTable()
	return m
}

func (m *ScoreboardModel) buildTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Score", Width: 7},
		{Title: "Result", Width: 10},
		{Title: "Time", Width: 8},
		{Title: "Deaths", Width: 6},
		{Title: "Flags", Width: 5},
		{Title: "When", Width: 16},
	}

	var rows []table.Row
	if m.store != nil && len(m.courses) > 0 {
		runs, err := m.store.BestRuns(m.courses[m.cursor].ID, maxRuns)
		if err == nil {
			for i, r := range runs {
				result := "wipeout"
				if r.Completed {
					result = "complete"
				}
				rows = append(rows, table.Row{
					fmt.Sprintf("%d", i+1),
					fmt.Sprintf("%d", r.Score),
					result,
					formatTicks(r.Ticks),
					fmt.Sprintf("%d", r.Deaths),
					fmt.Sprintf("%d", r.Checkpoints),
					r.CreatedAt.Format("2006-01-02 15:04"),
				})
			}
		}
	}

	height := m.height - 8
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(lipgloss.Color("12"))
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("11")).Bold(true)
	t.SetStyles(styles)
	return t
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles scoreboard navigation: up/down scrolls runs, tab cycles
// courses, esc returns to the menu.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.buildTable()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return scoreboardBackMsg{} }
		case key.Matches(msg, m.keys.Scores):
			if len(m.courses) > 0 {
				m.cursor = (m.cursor + 1) % len(m.courses)
				m.table = m.buildTable()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the runs table for the selected course.
func (m ScoreboardModel) View() string {
	var sb strings.Builder

	title := "BEST RUNS"
	if len(m.courses) > 0 {
		title = fmt.Sprintf("BEST RUNS · %s", m.courses[m.cursor].Name)
	}
	sb.WriteString(scoreTitleStyle.Render(title))
	sb.WriteString("\n")
	sb.WriteString(scoreHeaderStyle.Render("tab: next course"))
	sb.WriteString("\n\n")
	sb.WriteString(m.table.View())
	sb.WriteString("\n")
	sb.WriteString(backMsgStyle.Render(m.help.View(m.keys)))
	return sb.String()
}

// formatTicks renders a tick count as a mm:ss duration at 60 ticks per
// second.
func formatTicks(ticks uint64) string {
	d := time.Duration(ticks) * time.Second / 60
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
