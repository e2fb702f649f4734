package models

import (
	"fmt"
	"strings"

	apperrors "github.com/julianstephens/softstreaks/internal/errors"
)

// Mood is the optional feeling selected for the day
type Mood string

const (
	MoodGreat Mood = "great"
	MoodGood  Mood = "good"
	MoodOkay  Mood = "okay"
	MoodLow   Mood = "low"
	MoodRough Mood = "rough"
)

// Moods lists the selectable moods in display order
var Moods = []Mood{MoodGreat, MoodGood, MoodOkay, MoodLow, MoodRough}

var moodEmoji = map[Mood]string{
	MoodGreat: "🤩",
	MoodGood:  "🙂",
	MoodOkay:  "😐",
	MoodLow:   "😔",
	MoodRough: "😣",
}

// Valid reports whether m is one of the known moods
func (m Mood) Valid() bool {
	_, ok := moodEmoji[m]
	return ok
}

// Emoji returns the display glyph for the mood
func (m Mood) Emoji() string {
	return moodEmoji[m]
}

// ParseMood parses a mood name case-insensitively
func ParseMood(s string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidMood, s)
	}
	return m, nil
}

// SelectMood sets today's mood, or clears it when m is already selected.
func (s *AppState) SelectMood(m Mood) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidMood, string(m))
	}
	if s.Mood != nil && *s.Mood == m {
		s.Mood = nil
		return nil
	}
	s.Mood = &m
	return nil
}

// ClearMood unsets today's mood
func (s *AppState) ClearMood() {
	s.Mood = nil
}
