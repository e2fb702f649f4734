package models

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/julianstephens/softstreaks/internal/constants"
	apperrors "github.com/julianstephens/softstreaks/internal/errors"
)

// AppState is the single persisted document. Field names on the wire match
// the browser app's storage layout so exports stay interchangeable.
type AppState struct {
	LastDate  *string  `json:"lastDate"` // YYYY-MM-DD, nil before the first rollover
	Streak    int      `json:"streak"`
	Mood      *Mood    `json:"mood"`
	Habits    Habits   `json:"habits"`
	Favorites []string `json:"favorites"`
	LastPick  *string  `json:"lastPick"`
}

// DefaultState returns a fresh first-run state
func DefaultState() AppState {
	return AppState{
		Habits:    DefaultHabits(),
		Favorites: []string{},
	}
}

// ResetToDefaults returns a fresh state already closed out for today
func ResetToDefaults(today string) AppState {
	s := DefaultState()
	s.LastDate = &today
	return s
}

// Clone returns a deep copy
func (s AppState) Clone() AppState {
	out := s
	out.LastDate = clonePtr(s.LastDate)
	out.Mood = clonePtr(s.Mood)
	out.LastPick = clonePtr(s.LastPick)
	out.Favorites = slices.Clone(s.Favorites)
	if out.Favorites == nil {
		out.Favorites = []string{}
	}
	return out
}

// AllDone reports whether all habits are done
func (s AppState) AllDone() bool {
	return s.Habits.AllDone()
}

// LastDateString returns lastDate or "" when unset
func (s AppState) LastDateString() string {
	if s.LastDate == nil {
		return ""
	}
	return *s.LastDate
}

// LastPickString returns lastPick or "" when unset
func (s AppState) LastPickString() string {
	if s.LastPick == nil {
		return ""
	}
	return *s.LastPick
}

// SetLastPick records the most recent suggestion
func (s *AppState) SetLastPick(pick string) {
	s.LastPick = &pick
}

// AddFavorite appends text unless it is already saved, keeping only the
// most recent MaxFavorites entries. It reports whether the list changed.
func (s *AppState) AddFavorite(text string) (bool, error) {
	if strings.TrimSpace(text) == "" {
		return false, apperrors.ErrEmptyFavorite
	}
	if slices.Contains(s.Favorites, text) {
		return false, nil
	}
	s.Favorites = append(s.Favorites, text)
	if over := len(s.Favorites) - constants.MaxFavorites; over > 0 {
		s.Favorites = slices.Clone(s.Favorites[over:])
	}
	return true, nil
}

// RemoveFavorite drops every entry equal to text and reports whether any matched
func (s *AppState) RemoveFavorite(text string) bool {
	before := len(s.Favorites)
	s.Favorites = slices.DeleteFunc(s.Favorites, func(f string) bool { return f == text })
	return len(s.Favorites) != before
}

// FavoritesNewestFirst returns the favorites in display order, most recently
// saved first. The stored list stays in insertion order.
func (s AppState) FavoritesNewestFirst() []string {
	favorites := slices.Clone(s.Favorites)
	slices.Reverse(favorites)
	return favorites
}

// MarshalJSON keeps an empty favorites list as [] rather than null
func (s AppState) MarshalJSON() ([]byte, error) {
	type wire AppState
	w := wire(s)
	if w.Favorites == nil {
		w.Favorites = []string{}
	}
	return json.Marshal(w)
}

// Encode renders the state as the pretty-printed document used for both
// persistence and export.
func (s AppState) Encode() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
