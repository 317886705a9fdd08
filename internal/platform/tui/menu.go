package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tiltcart/internal/course"
	"github.com/vovakirdan/tiltcart/internal/storage"
)

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginBottom(1)
	menuItemStyle     = lipgloss.NewStyle().PaddingLeft(2)
	menuSelectedStyle = lipgloss.NewStyle().PaddingLeft(0).Bold(true).Foreground(lipgloss.Color("11"))
	menuMetaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// courseChosenMsg is emitted by the menu when a course is selected.
type courseChosenMsg struct {
	course *course.Course
}

// showScoresMsg asks the parent flow to open the scoreboard.
type showScoresMsg struct{}

// MenuModel is the course selection screen.
type MenuModel struct {
	courses []*course.Course
	cursor  int
	store   *storage.Store
	keys    MenuKeyMap
	help    help.Model
	width   int
	height  int
}

// NewMenuModel creates the course menu over the given course list.
func NewMenuModel(courses []*course.Course, store *storage.Store, width, height int) MenuModel {
	h := help.New()
	return MenuModel{
		courses: courses,
		store:   store,
		keys:    DefaultMenuKeyMap(),
		help:    h,
		width:   width,
		height:  height,
	}
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles menu navigation.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.courses)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			if len(m.courses) > 0 {
				chosen := m.courses[m.cursor]
				return m, func() tea.Msg { return courseChosenMsg{course: chosen} }
			}
		case key.Matches(msg, m.keys.Scores):
			return m, func() tea.Msg { return showScoresMsg{} }
		}
	}
	return m, nil
}

// View renders the course list.
func (m MenuModel) View() string {
	var sb strings.Builder
	sb.WriteString(menuTitleStyle.Render("TILTCART"))
	sb.WriteString("\n")

	if len(m.courses) == 0 {
		sb.WriteString(menuMetaStyle.Render("no courses found"))
		sb.WriteString("\n")
	}

	for i, c := range m.courses {
		line := fmt.Sprintf("%-24s %s", c.Name, menuMetaStyle.Render(m.courseMeta(c)))
		if i == m.cursor {
			sb.WriteString(menuSelectedStyle.Render("▸ " + line))
		} else {
			sb.WriteString(menuItemStyle.Render(line))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

// courseMeta summarizes one course row: area count and personal best.
func (m MenuModel) courseMeta(c *course.Course) string {
	meta := fmt.Sprintf("%d areas", len(c.Areas))
	if m.store != nil {
		if best, err := m.store.BestScore(c.ID); err == nil && best > 0 {
			meta += fmt.Sprintf(" · best %d", best)
		}
	}
	return meta
}
