package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/softstreaks/internal/constants"
	apperrors "github.com/julianstephens/softstreaks/internal/errors"
	"github.com/julianstephens/softstreaks/internal/models"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Ticks keep running while a form is open
	if _, ok := msg.(tickMsg); ok {
		m.reload()
		return m, tick()
	}

	switch m.state {
	case constants.StateEditHabits:
		return m.updateEditHabits(msg)
	case constants.StateConfirmReset:
		return m.updateConfirmReset(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Tab):
			if m.state == constants.StateToday {
				m.state = constants.StateFavorites
			} else {
				m.state = constants.StateToday
			}
		case key.Matches(msg, m.keys.Edit):
			return m.openEditHabits()
		case key.Matches(msg, m.keys.Reset):
			return m.openConfirmReset()
		case key.Matches(msg, m.keys.Export):
			m.export()
		default:
			if m.state == constants.StateFavorites {
				m.handleFavoritesKeys(msg)
			} else {
				m.handleTodayKeys(msg)
			}
		}
	}

	return m, nil
}

func (m *Model) handleTodayKeys(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Habit1):
		m.toggleHabit(0)
	case key.Matches(msg, m.keys.Habit2):
		m.toggleHabit(1)
	case key.Matches(msg, m.keys.Habit3):
		m.toggleHabit(2)
	case key.Matches(msg, m.keys.Mood):
		m.cycleMood()
	case key.Matches(msg, m.keys.ClearMood):
		state, err := m.tracker.ClearMood()
		if err != nil {
			m.fail(err)
			return
		}
		m.setState(state)
		m.report("Mood cleared")
	case key.Matches(msg, m.keys.Spin):
		pick, state, err := m.tracker.Spin()
		if err != nil {
			m.fail(err)
			return
		}
		m.setState(state)
		if pick == "" {
			m.report("Nothing to suggest right now")
			return
		}
		m.report("")
	case key.Matches(msg, m.keys.Save):
		changed, state, err := m.tracker.SaveFavorite()
		if err != nil {
			if apperrors.Is(err, apperrors.ErrNoPick) {
				m.report("Spin first, then save what you like")
				return
			}
			m.fail(err)
			return
		}
		m.setState(state)
		if changed {
			m.report("Saved to favorites ⭐")
		} else {
			m.report("Already in favorites")
		}
	}
}

func (m *Model) handleFavoritesKeys(msg tea.KeyMsg) {
	favorites := m.snapshot.FavoritesNewestFirst()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(favorites)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Delete):
		if len(favorites) == 0 {
			return
		}
		text := favorites[m.cursor]
		_, state, err := m.tracker.RemoveFavorite(text)
		if err != nil {
			m.fail(err)
			return
		}
		m.setState(state)
		m.report(fmt.Sprintf("Removed %q", text))
	}
}

func (m *Model) toggleHabit(idx int) {
	state, err := m.tracker.ToggleHabit(idx)
	if err != nil {
		m.fail(err)
		return
	}
	m.setState(state)
	if state.AllDone() {
		m.report("All done today! 🎉")
	} else {
		m.report("")
	}
}

// cycleMood steps through the moods in display order and clears the
// selection after the last one.
func (m *Model) cycleMood() {
	next := nextMood(m.snapshot.Mood)
	var (
		state models.AppState
		err   error
	)
	if next == "" {
		state, err = m.tracker.ClearMood()
	} else {
		state, err = m.tracker.SelectMood(next)
	}
	if err != nil {
		m.fail(err)
		return
	}
	m.setState(state)
	m.report("")
}

func nextMood(current *models.Mood) models.Mood {
	if current == nil {
		return models.Moods[0]
	}
	for i, mood := range models.Moods {
		if mood == *current && i+1 < len(models.Moods) {
			return models.Moods[i+1]
		}
	}
	return ""
}

func (m *Model) export() {
	path, err := m.tracker.ExportFile(m.exportDir)
	if err != nil {
		m.fail(err)
		return
	}
	m.report("Exported to " + path)
}

// reload picks up writes made by other processes and any pending rollover.
func (m *Model) reload() {
	if _, err := m.tracker.Refresh(); err != nil {
		m.fail(err)
		return
	}
	state, err := m.tracker.State()
	if err != nil {
		m.fail(err)
		return
	}
	m.setState(state)
}

func (m Model) openEditHabits() (tea.Model, tea.Cmd) {
	m.habitForm = &HabitFormModel{}
	for i, habit := range m.snapshot.Habits {
		m.habitForm.Names[i] = habit.Name
	}
	m.form = NewHabitForm(m.habitForm)
	m.previousState = m.state
	m.state = constants.StateEditHabits
	return m, m.form.Init()
}

func (m Model) openConfirmReset() (tea.Model, tea.Cmd) {
	m.confirmForm = &ConfirmFormModel{}
	m.form = NewConfirmResetForm(m.confirmForm)
	m.previousState = m.state
	m.state = constants.StateConfirmReset
	return m, m.form.Init()
}

func (m Model) updateEditHabits(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.completeEditHabits()
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, cmd
}

func (m *Model) completeEditHabits() {
	m.state = m.previousState
	state, err := m.tracker.EditHabits(m.habitForm.Names[:]...)
	if err != nil {
		m.fail(err)
		return
	}
	m.setState(state)
	m.report("Habits updated")
}

func (m Model) updateConfirmReset(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.completeConfirmReset()
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, cmd
}

func (m *Model) completeConfirmReset() {
	m.state = constants.StateToday
	if !m.confirmForm.Confirmed {
		return
	}
	state, err := m.tracker.Reset()
	if err != nil {
		m.fail(err)
		return
	}
	m.cursor = 0
	m.setState(state)
	m.report("Fresh start 🌱")
}

// NewHabitForm creates the form for renaming the habit slots
func NewHabitForm(fm *HabitFormModel) *huh.Form {
	fields := make([]huh.Field, 0, len(fm.Names))
	for i := range fm.Names {
		fields = append(fields, huh.NewInput().
			Title(fmt.Sprintf("Habit %d", i+1)).
			Placeholder(models.PlaceholderName(i+1)).
			Value(&fm.Names[i]))
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeDracula())
}

// NewConfirmResetForm creates the reset confirmation prompt
func NewConfirmResetForm(fm *ConfirmFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Reset everything?").
				Description("Habits, mood, favorites and your streak go back to a fresh start.").
				Affirmative("Reset").
				Negative("Cancel").
				Value(&fm.Confirmed),
		),
	).WithTheme(huh.ThemeDracula())
}
