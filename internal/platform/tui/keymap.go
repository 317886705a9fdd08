package tui

import "github.com/charmbracelet/bubbles/key"

// PlayKeyMap defines the gameplay key bindings.
type PlayKeyMap struct {
	TiltLeft   key.Binding
	TiltRight  key.Binding
	ButtonA    key.Binding
	ButtonB    key.Binding
	StickLeft  key.Binding
	StickRight key.Binding
	Blow       key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PlayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.TiltLeft, k.TiltRight, k.ButtonA, k.Blow, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k PlayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.TiltLeft, k.TiltRight, k.ButtonA, k.ButtonB},
		{k.StickLeft, k.StickRight, k.Blow},
		{k.Pause, k.Restart, k.Quit},
	}
}

// DefaultPlayKeyMap returns the default gameplay bindings.
func DefaultPlayKeyMap() PlayKeyMap {
	return PlayKeyMap{
		TiltLeft: key.NewBinding(
			key.WithKeys("a", "left"),
			key.WithHelp("a/←", "tilt left"),
		),
		TiltRight: key.NewBinding(
			key.WithKeys("d", "right"),
			key.WithHelp("d/→", "tilt right"),
		),
		ButtonA: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "button A"),
		),
		ButtonB: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "button B"),
		),
		StickLeft: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "stick left"),
		),
		StickRight: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "stick right"),
		),
		Blow: key.NewBinding(
			key.WithKeys("w", "up"),
			key.WithHelp("w/↑", "blow"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MenuKeyMap defines the bindings for the course menu and scoreboard.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Scores key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Scores, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Scores, k.Back, k.Quit},
	}
}

// DefaultMenuKeyMap returns the default menu bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
