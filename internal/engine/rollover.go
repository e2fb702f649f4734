package engine

import (
	"github.com/julianstephens/softstreaks/internal/models"
	"github.com/julianstephens/softstreaks/internal/utils"
)

// Rollover closes out the day recorded in prev and opens today.
//
// prev must be the snapshot from before anything touched today's habits:
// whether yesterday counts is read from the habits as they were left.
// It returns prev unchanged and false when prev already belongs to today.
func Rollover(prev models.AppState, today string) (models.AppState, bool) {
	if prev.LastDate != nil && *prev.LastDate == today {
		return prev, false
	}

	next := prev.Clone()
	next.Streak = nextStreak(prev, today)

	// Step 2: open the new day
	next.LastDate = &today
	next.Mood = nil
	next.LastPick = nil
	next.Habits = prev.Habits.Cleared()

	return next, true
}

func nextStreak(prev models.AppState, today string) int {
	if prev.LastDate == nil {
		return 0
	}

	allDone := prev.AllDone()
	diff, err := DaysBetween(*prev.LastDate, today)
	if err == nil && diff == 1 {
		if allDone {
			return prev.Streak + 1
		}
		return 0
	}

	// Gap, clock moved backwards, or a stored date we can't read
	if allDone {
		return 1
	}
	return 0
}

// DaysBetween returns the whole calendar days from one YYYY-MM-DD date to another
func DaysBetween(from, to string) (int, error) {
	return utils.DaysBetween(from, to)
}
