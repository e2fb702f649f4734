package models

import (
	"fmt"
	"strings"

	"github.com/julianstephens/softstreaks/internal/constants"
	apperrors "github.com/julianstephens/softstreaks/internal/errors"
)

// Habit is one of the three daily checklist slots
type Habit struct {
	Name string `json:"name"`
	Done bool   `json:"done"`
}

// Habits is the fixed set of daily habit slots
type Habits [constants.HabitSlots]Habit

// DefaultHabits returns the habits a fresh state starts with
func DefaultHabits() Habits {
	return Habits{
		{Name: "Drink water 💧"},
		{Name: "2-minute tidy 🧺"},
		{Name: "Move your body (5 min) 🌱"},
	}
}

// AllDone reports whether every slot is marked done
func (h Habits) AllDone() bool {
	for _, habit := range h {
		if !habit.Done {
			return false
		}
	}
	return true
}

// DoneCount returns how many slots are marked done
func (h Habits) DoneCount() int {
	n := 0
	for _, habit := range h {
		if habit.Done {
			n++
		}
	}
	return n
}

// Cleared returns a copy with every slot marked not done; names are kept.
func (h Habits) Cleared() Habits {
	for i := range h {
		h[i].Done = false
	}
	return h
}

// PlaceholderName is the generated name for an unnamed slot (1-based).
func PlaceholderName(slot int) string {
	return fmt.Sprintf(constants.PlaceholderFormat, slot)
}

// ToggleHabit flips the done flag of the slot at a 0-based index.
func (s *AppState) ToggleHabit(idx int) error {
	if idx < 0 || idx >= len(s.Habits) {
		return fmt.Errorf("%w: %d", apperrors.ErrHabitIndex, idx+1)
	}
	s.Habits[idx].Done = !s.Habits[idx].Done
	return nil
}

// EditHabits renames the habit slots. Blank names are discarded, the
// remaining ones fill slots in order and leftover slots get a placeholder.
// Done flags stay with their slot position.
func (s *AppState) EditHabits(names ...string) {
	var kept []string
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		kept = append(kept, name)
		if len(kept) == len(s.Habits) {
			break
		}
	}

	for i := range s.Habits {
		if i < len(kept) {
			s.Habits[i].Name = kept[i]
		} else {
			s.Habits[i].Name = PlaceholderName(i + 1)
		}
	}
}
