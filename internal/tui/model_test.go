package tui

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/softstreaks/internal/constants"
	"github.com/julianstephens/softstreaks/internal/models"
	"github.com/julianstephens/softstreaks/internal/picker"
	"github.com/julianstephens/softstreaks/internal/storage"
	"github.com/julianstephens/softstreaks/internal/tracker"
)

func setupModel(t *testing.T) Model {
	t.Helper()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	store := storage.NewStore(storage.NewJSONSlot(filepath.Join(t.TempDir(), "state.json")))
	tr, err := tracker.Open(store,
		tracker.WithClock(func() time.Time { return now }),
		tracker.WithLocation(time.UTC),
		tracker.WithPicker(picker.New(picker.DefaultCatalog(), rand.New(rand.NewPCG(7, 7)))),
	)
	if err != nil {
		t.Fatalf("tracker.Open: %v", err)
	}
	m, err := NewModel(tr, t.TempDir())
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("Update returned %T, want Model", next)
		}
	}
	return m
}

func TestToggleHabitKeys(t *testing.T) {
	m := setupModel(t)

	m = send(t, m, runes("1"), runes("3"))
	if !m.snapshot.Habits[0].Done || m.snapshot.Habits[1].Done || !m.snapshot.Habits[2].Done {
		t.Fatalf("habits = %+v", m.snapshot.Habits)
	}

	m = send(t, m, runes("2"))
	if !m.snapshot.AllDone() {
		t.Fatal("expected all habits done")
	}
	if !strings.Contains(m.status, "All done") {
		t.Errorf("status = %q", m.status)
	}

	m = send(t, m, runes("2"))
	if m.snapshot.Habits[1].Done {
		t.Error("second press should untoggle")
	}
}

func TestTogglePersists(t *testing.T) {
	m := setupModel(t)
	m = send(t, m, runes("1"))

	state, err := m.tracker.Store().Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !state.Habits[0].Done {
		t.Error("toggle was not saved")
	}
}

func TestMoodCycle(t *testing.T) {
	m := setupModel(t)

	for _, want := range models.Moods {
		m = send(t, m, runes("m"))
		if m.snapshot.Mood == nil || *m.snapshot.Mood != want {
			t.Fatalf("mood = %v, want %s", m.snapshot.Mood, want)
		}
	}

	m = send(t, m, runes("m"))
	if m.snapshot.Mood != nil {
		t.Errorf("mood after last = %v, want nil", *m.snapshot.Mood)
	}

	m = send(t, m, runes("m"), runes("M"))
	if m.snapshot.Mood != nil {
		t.Error("M should clear the mood")
	}
}

func TestNextMood(t *testing.T) {
	last := models.Moods[len(models.Moods)-1]
	first := models.Moods[0]

	if got := nextMood(nil); got != first {
		t.Errorf("nextMood(nil) = %q, want %q", got, first)
	}
	if got := nextMood(&first); got != models.Moods[1] {
		t.Errorf("nextMood(first) = %q", got)
	}
	if got := nextMood(&last); got != "" {
		t.Errorf("nextMood(last) = %q, want empty", got)
	}
}

func TestSpinAndSaveFavorite(t *testing.T) {
	m := setupModel(t)

	m = send(t, m, runes("f"))
	if !strings.Contains(m.status, "Spin first") {
		t.Errorf("status without pick = %q", m.status)
	}
	if m.err != nil {
		t.Errorf("no-pick save should not be an error: %v", m.err)
	}

	m = send(t, m, runes("s"))
	pick := m.snapshot.LastPickString()
	if pick == "" {
		t.Fatal("spin did not record a pick")
	}
	if !picker.DefaultCatalog().Contains(pick) {
		t.Errorf("pick %q not in catalog", pick)
	}

	m = send(t, m, runes("f"))
	if len(m.snapshot.Favorites) != 1 || m.snapshot.Favorites[0] != pick {
		t.Fatalf("favorites = %v", m.snapshot.Favorites)
	}

	m = send(t, m, runes("f"))
	if len(m.snapshot.Favorites) != 1 {
		t.Errorf("duplicate save changed favorites: %v", m.snapshot.Favorites)
	}
	if !strings.Contains(m.status, "Already") {
		t.Errorf("status = %q", m.status)
	}
}

func TestFavoritesNavigationAndRemove(t *testing.T) {
	m := setupModel(t)

	// Spin until three distinct picks are saved.
	for i := 0; i < 50 && len(m.snapshot.Favorites) < 3; i++ {
		m = send(t, m, runes("s"), runes("f"))
	}
	if len(m.snapshot.Favorites) < 3 {
		t.Fatalf("could not collect favorites: %v", m.snapshot.Favorites)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != constants.StateFavorites {
		t.Fatalf("state = %v, want favorites", m.state)
	}

	m = send(t, m, runes("j"), runes("j"), runes("j"))
	if m.cursor != len(m.snapshot.Favorites)-1 {
		t.Errorf("cursor = %d, want clamp at %d", m.cursor, len(m.snapshot.Favorites)-1)
	}

	// Newest first, so the bottom row is the oldest favorite
	target := m.snapshot.FavoritesNewestFirst()[m.cursor]
	if target != m.snapshot.Favorites[0] {
		t.Errorf("bottom row = %q, want oldest %q", target, m.snapshot.Favorites[0])
	}
	before := len(m.snapshot.Favorites)
	m = send(t, m, runes("d"))
	if len(m.snapshot.Favorites) != before-1 {
		t.Fatalf("favorites after delete = %v", m.snapshot.Favorites)
	}
	for _, f := range m.snapshot.Favorites {
		if f == target {
			t.Errorf("%q still present", target)
		}
	}
	if m.cursor != len(m.snapshot.Favorites)-1 {
		t.Errorf("cursor = %d after removing last row", m.cursor)
	}

	m = send(t, m, runes("k"), runes("k"), runes("k"))
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != constants.StateToday {
		t.Errorf("state = %v, want today", m.state)
	}
}

func TestHabitKeysIgnoredOnFavorites(t *testing.T) {
	m := setupModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab}, runes("1"))
	if m.snapshot.Habits[0].Done {
		t.Error("habit toggled from favorites view")
	}
}

func TestEditHabitsFlow(t *testing.T) {
	m := setupModel(t)

	m = send(t, m, runes("e"))
	if m.state != constants.StateEditHabits {
		t.Fatalf("state = %v, want edit habits", m.state)
	}
	if m.habitForm.Names[0] != models.DefaultHabits()[0].Name {
		t.Errorf("form not prefilled: %q", m.habitForm.Names[0])
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != constants.StateToday {
		t.Fatalf("esc should return to today, got %v", m.state)
	}
	if m.snapshot.Habits[0].Name != models.DefaultHabits()[0].Name {
		t.Error("cancel changed habits")
	}

	m = send(t, m, runes("e"))
	m.habitForm.Names = [constants.HabitSlots]string{"Stretch", "  ", "Read"}
	m.completeEditHabits()
	if m.state != constants.StateToday {
		t.Errorf("state = %v after completion", m.state)
	}
	want := []string{"Stretch", "Read", models.PlaceholderName(3)}
	for i, name := range want {
		if m.snapshot.Habits[i].Name != name {
			t.Errorf("habit %d = %q, want %q", i, m.snapshot.Habits[i].Name, name)
		}
	}
}

func TestConfirmResetFlow(t *testing.T) {
	m := setupModel(t)
	m = send(t, m, runes("1"), runes("s"), runes("f"))
	if len(m.snapshot.Favorites) == 0 {
		t.Fatal("setup: expected a favorite")
	}

	m = send(t, m, runes("R"))
	if m.state != constants.StateConfirmReset {
		t.Fatalf("state = %v, want confirm reset", m.state)
	}

	m.confirmForm.Confirmed = false
	m.completeConfirmReset()
	if len(m.snapshot.Favorites) == 0 || !m.snapshot.Habits[0].Done {
		t.Fatal("declined reset changed state")
	}

	m = send(t, m, runes("R"))
	m.confirmForm.Confirmed = true
	m.completeConfirmReset()
	if m.state != constants.StateToday {
		t.Errorf("state = %v after reset", m.state)
	}
	if len(m.snapshot.Favorites) != 0 || m.snapshot.Habits[0].Done || m.snapshot.LastPick != nil {
		t.Errorf("state not reset: %+v", m.snapshot)
	}
	if m.snapshot.LastDateString() != "2024-03-10" {
		t.Errorf("lastDate = %q", m.snapshot.LastDateString())
	}
}

func TestExportKey(t *testing.T) {
	m := setupModel(t)
	m = send(t, m, runes("E"))
	if m.err != nil {
		t.Fatalf("export failed: %v", m.err)
	}

	path := filepath.Join(m.exportDir, constants.ExportFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if !strings.Contains(string(data), `"streak"`) {
		t.Errorf("export content = %s", data)
	}
}

func TestViewRendersState(t *testing.T) {
	m := setupModel(t)
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40}, runes("1"))

	view := m.View()
	for _, want := range []string{"2024-03-10", "day streak", models.DefaultHabits()[1].Name, "1/3 done", "Favorites (0)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !strings.Contains(m.View(), "No favorites yet") {
		t.Error("empty favorites view missing hint")
	}
}

func TestQuit(t *testing.T) {
	m := setupModel(t)
	next, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if !next.(Model).quitting {
		t.Error("model not marked quitting")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quit")
	}
}
