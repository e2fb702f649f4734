package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/softstreaks/internal/constants"
	"github.com/julianstephens/softstreaks/internal/models"
	"github.com/julianstephens/softstreaks/internal/picker"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateToday:
		content = m.viewToday()
	case constants.StateFavorites:
		content = m.viewFavorites()
	case constants.StateEditHabits, constants.StateConfirmReset:
		content = docStyle.Render(m.form.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	titles := []struct {
		title string
		state constants.SessionState
	}{
		{"Today", constants.StateToday},
		{fmt.Sprintf("Favorites (%d)", len(m.snapshot.Favorites)), constants.StateFavorites},
	}

	current := m.state
	if current == constants.StateEditHabits || current == constants.StateConfirmReset {
		current = m.previousState
	}

	var tabs []string
	for _, t := range titles {
		if t.state == current {
			tabs = append(tabs, activeTabStyle.Render(t.title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(t.title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewToday() string {
	s := m.snapshot
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.tracker.Today()))
	b.WriteString("  ")
	b.WriteString(streakStyle.Render(fmt.Sprintf("🔥 %d day streak", s.Streak)))
	b.WriteString("\n\n")

	for i, habit := range s.Habits {
		box := "[ ]"
		name := habit.Name
		if habit.Done {
			box = "[x]"
			name = doneStyle.Render(name)
		}
		fmt.Fprintf(&b, "%d %s %s\n", i+1, box, name)
	}
	fmt.Fprintf(&b, "%s\n\n", mutedStyle.Render(fmt.Sprintf("%d/%d done", s.Habits.DoneCount(), len(s.Habits))))

	b.WriteString("Mood: ")
	for _, mood := range models.Moods {
		glyph := " " + mood.Emoji() + " "
		if s.Mood != nil && *s.Mood == mood {
			glyph = selectedStyle.Render(glyph)
		}
		b.WriteString(glyph)
	}
	b.WriteString("\n\n")

	if pick := s.LastPickString(); pick != "" {
		label := "Try this"
		if picker.IsBonus(pick) {
			label = "Bonus round"
		}
		b.WriteString(mutedStyle.Render(label) + "\n")
		b.WriteString(pickStyle.Render(pick))
	} else {
		b.WriteString(mutedStyle.Render("Press s for a self-care idea"))
	}

	return docStyle.Render(b.String())
}

func (m Model) viewFavorites() string {
	favorites := m.snapshot.FavoritesNewestFirst()
	if len(favorites) == 0 {
		return docStyle.Render(mutedStyle.Render("No favorites yet. Spin and press f to save one."))
	}

	var b strings.Builder
	for i, fav := range favorites {
		line := "  " + fav
		if i == m.cursor {
			line = selectedStyle.Render("> " + fav)
		}
		b.WriteString(line + "\n")
	}
	fmt.Fprintf(&b, "\n%s", mutedStyle.Render(fmt.Sprintf("%d/%d saved", len(favorites), constants.MaxFavorites)))
	return docStyle.Render(b.String())
}

func (m Model) viewStatus() string {
	if m.err != nil {
		return dangerStyle.Render("Error: " + m.err.Error())
	}
	if m.status == "" {
		return ""
	}
	return warningStyle.Render(m.status)
}
