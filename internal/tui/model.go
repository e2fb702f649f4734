package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/softstreaks/internal/constants"
	"github.com/julianstephens/softstreaks/internal/models"
	"github.com/julianstephens/softstreaks/internal/tracker"
)

// dayCheckInterval is how often an idle TUI re-reads the state so a
// session left open past midnight rolls over on its own.
const dayCheckInterval = time.Minute

// HabitFormModel backs the edit habits form
type HabitFormModel struct {
	Names [constants.HabitSlots]string
}

// ConfirmFormModel backs yes/no prompts
type ConfirmFormModel struct {
	Confirmed bool
}

type tickMsg time.Time

type Model struct {
	tracker       *tracker.Tracker
	exportDir     string
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	snapshot      models.AppState
	cursor        int
	form          *huh.Form
	habitForm     *HabitFormModel
	confirmForm   *ConfirmFormModel
	status        string
	err           error
	quitting      bool
	width         int
	height        int
}

// NewModel builds the TUI over an open tracker. Exports are written to exportDir.
func NewModel(tr *tracker.Tracker, exportDir string) (Model, error) {
	state, err := tr.State()
	if err != nil {
		return Model{}, err
	}
	return Model{
		tracker:   tr,
		exportDir: exportDir,
		state:     constants.StateToday,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		snapshot:  state,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(dayCheckInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateToday:
		keys = append(keys, m.keys.Habit1, m.keys.Mood, m.keys.Spin, m.keys.Save)
	case constants.StateFavorites:
		keys = append(keys, m.keys.Up, m.keys.Down, m.keys.Delete)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help, m.keys.Edit, m.keys.Export, m.keys.Reset}
	switch m.state {
	case constants.StateFavorites:
		return [][]key.Binding{global, {m.keys.Up, m.keys.Down, m.keys.Delete}}
	default:
		return [][]key.Binding{
			global,
			{m.keys.Habit1, m.keys.Habit2, m.keys.Habit3},
			{m.keys.Mood, m.keys.ClearMood, m.keys.Spin, m.keys.Save},
		}
	}
}

// setState adopts a state returned by the tracker and keeps the
// favorites cursor in range.
func (m *Model) setState(s models.AppState) {
	m.snapshot = s
	if m.cursor >= len(s.Favorites) {
		m.cursor = len(s.Favorites) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) fail(err error) {
	m.err = err
	m.status = ""
}

func (m *Model) report(status string) {
	m.err = nil
	m.status = status
}
