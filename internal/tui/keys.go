package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Tab       key.Binding
	Quit      key.Binding
	Up        key.Binding
	Down      key.Binding
	Help      key.Binding
	Habit1    key.Binding
	Habit2    key.Binding
	Habit3    key.Binding
	Mood      key.Binding
	ClearMood key.Binding
	Spin      key.Binding
	Save      key.Binding
	Delete    key.Binding
	Edit      key.Binding
	Export    key.Binding
	Reset     key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Quit, k.Help}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Quit, k.Help},
		{k.Habit1, k.Habit2, k.Habit3, k.Mood, k.ClearMood, k.Spin, k.Save},
		{k.Up, k.Down, k.Delete, k.Edit, k.Export, k.Reset},
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "switch view"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Habit1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "toggle habit 1"),
		),
		Habit2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "toggle habit 2"),
		),
		Habit3: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "toggle habit 3"),
		),
		Mood: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "next mood"),
		),
		ClearMood: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "clear mood"),
		),
		Spin: key.NewBinding(
			key.WithKeys("s", " "),
			key.WithHelp("s", "spin"),
		),
		Save: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "save favorite"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "x"),
			key.WithHelp("d", "remove favorite"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit habits"),
		),
		Export: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "export"),
		),
		Reset: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset"),
		),
	}
}
