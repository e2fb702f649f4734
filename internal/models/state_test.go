package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	apperrors "github.com/julianstephens/softstreaks/internal/errors"
)

func TestDefaultState(t *testing.T) {
	s := DefaultState()
	if s.LastDate != nil || s.Mood != nil || s.LastPick != nil {
		t.Error("optional fields should be unset on a fresh state")
	}
	if s.Streak != 0 {
		t.Errorf("expected streak 0, got %d", s.Streak)
	}
	if s.Favorites == nil || len(s.Favorites) != 0 {
		t.Errorf("expected empty favorites, got %v", s.Favorites)
	}
	if s.Habits[0].Name != "Drink water 💧" || s.Habits[2].Name != "Move your body (5 min) 🌱" {
		t.Errorf("unexpected default habits: %+v", s.Habits)
	}
	if s.AllDone() {
		t.Error("default habits should not be done")
	}
}

func TestResetToDefaults(t *testing.T) {
	s := ResetToDefaults("2024-05-01")
	if s.LastDateString() != "2024-05-01" {
		t.Errorf("expected lastDate 2024-05-01, got %q", s.LastDateString())
	}
	if s.Streak != 0 || len(s.Favorites) != 0 {
		t.Errorf("reset should clear streak and favorites: %+v", s)
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := DefaultState()
	s.SetLastPick("Ramen")
	s.Favorites = []string{"a"}
	c := s.Clone()

	c.Favorites[0] = "changed"
	*c.LastPick = "Smoothie"
	c.Habits[0].Done = true

	if s.Favorites[0] != "a" || s.LastPickString() != "Ramen" || s.Habits[0].Done {
		t.Error("mutating the clone leaked into the original")
	}
}

func TestToggleHabit(t *testing.T) {
	s := DefaultState()
	if err := s.ToggleHabit(1); err != nil {
		t.Fatalf("ToggleHabit: %v", err)
	}
	if !s.Habits[1].Done {
		t.Error("expected habit 2 done")
	}
	if err := s.ToggleHabit(1); err != nil {
		t.Fatalf("ToggleHabit: %v", err)
	}
	if s.Habits[1].Done {
		t.Error("second toggle should undo")
	}

	for _, idx := range []int{-1, 3} {
		if err := s.ToggleHabit(idx); !apperrors.Is(err, apperrors.ErrHabitIndex) {
			t.Errorf("ToggleHabit(%d) error = %v, want ErrHabitIndex", idx, err)
		}
	}
}

func TestSelectMood(t *testing.T) {
	s := DefaultState()
	if err := s.SelectMood(MoodGood); err != nil {
		t.Fatalf("SelectMood: %v", err)
	}
	if s.Mood == nil || *s.Mood != MoodGood {
		t.Fatalf("expected mood good, got %v", s.Mood)
	}
	if err := s.SelectMood(MoodLow); err != nil {
		t.Fatalf("SelectMood: %v", err)
	}
	if *s.Mood != MoodLow {
		t.Errorf("expected mood low, got %s", *s.Mood)
	}
	// selecting the active mood again clears it
	if err := s.SelectMood(MoodLow); err != nil {
		t.Fatalf("SelectMood: %v", err)
	}
	if s.Mood != nil {
		t.Errorf("expected mood cleared, got %s", *s.Mood)
	}
	if err := s.SelectMood(Mood("sleepy")); !apperrors.Is(err, apperrors.ErrInvalidMood) {
		t.Errorf("expected ErrInvalidMood, got %v", err)
	}
}

func TestParseMood(t *testing.T) {
	m, err := ParseMood("  GREAT ")
	if err != nil || m != MoodGreat {
		t.Errorf("ParseMood() = %q, %v", m, err)
	}
	if _, err := ParseMood("meh"); err == nil {
		t.Error("expected error for unknown mood")
	}
	for _, mood := range Moods {
		if mood.Emoji() == "" {
			t.Errorf("mood %s has no emoji", mood)
		}
	}
}

func TestAddFavoriteDedup(t *testing.T) {
	s := DefaultState()
	added, err := s.AddFavorite("Ramen")
	if err != nil || !added {
		t.Fatalf("AddFavorite() = %v, %v", added, err)
	}
	added, err = s.AddFavorite("Ramen")
	if err != nil {
		t.Fatalf("AddFavorite: %v", err)
	}
	if added {
		t.Error("duplicate favorite should not be added")
	}
	if len(s.Favorites) != 1 {
		t.Errorf("expected 1 favorite, got %d", len(s.Favorites))
	}
	if _, err := s.AddFavorite("   "); !apperrors.Is(err, apperrors.ErrEmptyFavorite) {
		t.Errorf("expected ErrEmptyFavorite, got %v", err)
	}
}

func TestAddFavoriteCap(t *testing.T) {
	s := DefaultState()
	for i := 1; i <= 51; i++ {
		if _, err := s.AddFavorite(fmt.Sprintf("item %d", i)); err != nil {
			t.Fatalf("AddFavorite: %v", err)
		}
	}
	if len(s.Favorites) != 50 {
		t.Fatalf("expected 50 favorites, got %d", len(s.Favorites))
	}
	if s.Favorites[0] != "item 2" {
		t.Errorf("oldest entry should be dropped, first is %q", s.Favorites[0])
	}
	if s.Favorites[49] != "item 51" {
		t.Errorf("newest entry should be last, got %q", s.Favorites[49])
	}
}

func TestRemoveFavorite(t *testing.T) {
	s := DefaultState()
	s.Favorites = []string{"a", "b", "a"}
	if !s.RemoveFavorite("a") {
		t.Fatal("expected removal")
	}
	if len(s.Favorites) != 1 || s.Favorites[0] != "b" {
		t.Errorf("unexpected favorites: %v", s.Favorites)
	}
	if s.RemoveFavorite("missing") {
		t.Error("removing a missing favorite should report false")
	}
}

func TestFavoritesNewestFirst(t *testing.T) {
	s := DefaultState()
	for _, f := range []string{"a", "b", "c"} {
		if _, err := s.AddFavorite(f); err != nil {
			t.Fatal(err)
		}
	}

	got := s.FavoritesNewestFirst()
	if strings.Join(got, ",") != "c,b,a" {
		t.Errorf("display order = %v, want [c b a]", got)
	}
	if strings.Join(s.Favorites, ",") != "a,b,c" {
		t.Errorf("stored order changed: %v", s.Favorites)
	}
}

func TestEditHabits(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  [3]string
	}{
		{
			name:  "all provided",
			names: []string{"Read", "Walk", "Stretch"},
			want:  [3]string{"Read", "Walk", "Stretch"},
		},
		{
			name:  "blanks are dropped and padded",
			names: []string{"  ", "Walk ", ""},
			want:  [3]string{"Walk", "Tiny win 2 ✨", "Tiny win 3 ✨"},
		},
		{
			name:  "nothing provided",
			names: nil,
			want:  [3]string{"Tiny win 1 ✨", "Tiny win 2 ✨", "Tiny win 3 ✨"},
		},
		{
			name:  "extra names ignored",
			names: []string{"a", "b", "c", "d"},
			want:  [3]string{"a", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultState()
			s.Habits[0].Done = true
			s.Habits[2].Done = true
			s.EditHabits(tt.names...)
			for i, want := range tt.want {
				if s.Habits[i].Name != want {
					t.Errorf("slot %d name = %q, want %q", i+1, s.Habits[i].Name, want)
				}
			}
			if !s.Habits[0].Done || s.Habits[1].Done || !s.Habits[2].Done {
				t.Errorf("done flags should stay with slot positions: %+v", s.Habits)
			}
		})
	}
}

func TestEncodeShape(t *testing.T) {
	s := DefaultState()
	s.Favorites = nil
	data, err := s.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for _, key := range []string{"lastDate", "streak", "mood", "habits", "favorites", "lastPick"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing key %q in %s", key, data)
		}
	}
	if string(raw["lastDate"]) != "null" || string(raw["favorites"]) != "[]" {
		t.Errorf("unexpected encoding: %s", data)
	}
	if !strings.Contains(string(data), "\n  \"streak\": 0") {
		t.Errorf("expected two-space indentation, got %s", data)
	}
}
