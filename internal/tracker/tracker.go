package tracker

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/julianstephens/softstreaks/internal/constants"
	"github.com/julianstephens/softstreaks/internal/engine"
	apperrors "github.com/julianstephens/softstreaks/internal/errors"
	"github.com/julianstephens/softstreaks/internal/logger"
	"github.com/julianstephens/softstreaks/internal/models"
	"github.com/julianstephens/softstreaks/internal/picker"
	"github.com/julianstephens/softstreaks/internal/storage"
	"github.com/julianstephens/softstreaks/internal/utils"
)

// Listener is called with a copy of the state after every change
type Listener func(models.AppState)

// Option configures a Tracker
type Option func(*Tracker)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLocation sets the timezone that decides where a day ends
func WithLocation(loc *time.Location) Option {
	return func(t *Tracker) { t.loc = loc }
}

// WithPicker overrides the suggestion picker
func WithPicker(p *picker.Picker) Option {
	return func(t *Tracker) { t.picker = p }
}

// WithListener registers a change listener
func WithListener(l Listener) Option {
	return func(t *Tracker) { t.listeners = append(t.listeners, l) }
}

// Tracker owns the live state and is the only thing that mutates it.
// Every operation first closes out a stale day, so habits from an earlier
// date are never edited after the fact.
type Tracker struct {
	mu        sync.Mutex
	store     *storage.Store
	state     models.AppState
	now       func() time.Time
	loc       *time.Location
	picker    *picker.Picker
	listeners []Listener
	session   string
	log       *log.Logger
}

// Open loads the stored state and rolls it over to today if needed.
func Open(store *storage.Store, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		store:   store,
		now:     time.Now,
		loc:     time.Local,
		session: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.picker == nil {
		t.picker = picker.Default()
	}
	t.log = logger.With("session", t.session)

	state, err := store.Load()
	if err != nil {
		return nil, err
	}
	t.state = state
	t.debug("Tracker opened", "location", store.Location(), "lastDate", state.LastDateString())

	if _, err := t.ensureToday(); err != nil {
		return nil, err
	}
	return t, nil
}

// Session returns the id tagging this tracker's log lines
func (t *Tracker) Session() string {
	return t.session
}

// Store returns the backing store
func (t *Tracker) Store() *storage.Store {
	return t.store
}

// Picker returns the suggestion picker
func (t *Tracker) Picker() *picker.Picker {
	return t.picker
}

// OnChange registers a listener after construction
func (t *Tracker) OnChange(l Listener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, l)
}

// Today returns the current date in the tracker's timezone
func (t *Tracker) Today() string {
	return utils.FormatDate(t.now(), t.loc)
}

// State returns a copy of the current state
func (t *Tracker) State() (models.AppState, error) {
	t.mu.Lock()
	rolled, err := t.ensureToday()
	state := t.state.Clone()
	t.mu.Unlock()

	if err != nil {
		return models.AppState{}, err
	}
	if rolled {
		t.notify(state)
	}
	return state.Clone(), nil
}

// ToggleHabit flips the habit at a 0-based index
func (t *Tracker) ToggleHabit(idx int) (models.AppState, error) {
	return t.mutate("toggle habit", func(s *models.AppState) error {
		return s.ToggleHabit(idx)
	})
}

// SelectMood sets the mood, or clears it when it is already selected
func (t *Tracker) SelectMood(m models.Mood) (models.AppState, error) {
	return t.mutate("select mood", func(s *models.AppState) error {
		return s.SelectMood(m)
	})
}

// ClearMood unsets today's mood
func (t *Tracker) ClearMood() (models.AppState, error) {
	return t.mutate("clear mood", func(s *models.AppState) error {
		s.ClearMood()
		return nil
	})
}

// Spin picks a suggestion and records it as lastPick
func (t *Tracker) Spin() (string, models.AppState, error) {
	var pick string
	state, err := t.mutate("spin", func(s *models.AppState) error {
		pick = t.picker.Pick(*s)
		s.SetLastPick(pick)
		return nil
	})
	if err != nil {
		return "", models.AppState{}, err
	}
	return pick, state, nil
}

// SaveFavorite saves lastPick as a favorite. It reports whether the list
// changed; saving an existing favorite is not an error.
func (t *Tracker) SaveFavorite() (bool, models.AppState, error) {
	var added bool
	state, err := t.mutate("save favorite", func(s *models.AppState) error {
		if s.LastPick == nil {
			return apperrors.ErrNoPick
		}
		var err error
		added, err = s.AddFavorite(*s.LastPick)
		return err
	})
	return added, state, err
}

// RemoveFavorite drops every favorite equal to text
func (t *Tracker) RemoveFavorite(text string) (bool, models.AppState, error) {
	var removed bool
	state, err := t.mutate("remove favorite", func(s *models.AppState) error {
		removed = s.RemoveFavorite(text)
		return nil
	})
	return removed, state, err
}

// EditHabits renames the habit slots
func (t *Tracker) EditHabits(names ...string) (models.AppState, error) {
	return t.mutate("edit habits", func(s *models.AppState) error {
		s.EditHabits(names...)
		return nil
	})
}

// Reset replaces everything with a fresh state dated today
func (t *Tracker) Reset() (models.AppState, error) {
	return t.mutate("reset", func(s *models.AppState) error {
		*s = models.ResetToDefaults(t.Today())
		return nil
	})
}

// Export writes the current state as pretty JSON, the same bytes Save stores
func (t *Tracker) Export(w io.Writer) error {
	state, err := t.State()
	if err != nil {
		return err
	}
	data, err := state.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// ExportFile writes the export into dir and returns the file path
func (t *Tracker) ExportFile(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Export(&buf); err != nil {
		return "", err
	}

	path := filepath.Join(dir, constants.ExportFileName)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	t.debug("State exported", "path", path)
	return path, nil
}

// Refresh reloads the state from storage, picking up writes from other
// processes. It reports whether the in-memory state changed.
func (t *Tracker) Refresh() (bool, error) {
	t.mu.Lock()
	loaded, err := t.store.Load()
	if err != nil {
		t.mu.Unlock()
		return false, err
	}

	changed := !sameState(t.state, loaded)
	t.state = loaded
	rolled, err := t.ensureToday()
	state := t.state.Clone()
	t.mu.Unlock()

	if err != nil {
		return false, err
	}
	if changed || rolled {
		t.debug("State refreshed from storage")
		t.notify(state)
		return true, nil
	}
	return false, nil
}

// mutate runs the rollover gate, applies fn to a copy and persists it.
// The live state only changes once the save succeeded.
func (t *Tracker) mutate(op string, fn func(*models.AppState) error) (models.AppState, error) {
	t.mu.Lock()
	if _, err := t.ensureToday(); err != nil {
		t.mu.Unlock()
		return models.AppState{}, err
	}

	next := t.state.Clone()
	if err := fn(&next); err != nil {
		t.mu.Unlock()
		return models.AppState{}, err
	}
	if err := t.store.Save(next); err != nil {
		t.mu.Unlock()
		return models.AppState{}, fmt.Errorf("%s: %w", op, err)
	}
	t.state = next
	state := next.Clone()
	t.mu.Unlock()

	t.debug("State updated", "op", op)
	t.notify(state)
	return state.Clone(), nil
}

// ensureToday rolls the state over when the stored day is not today.
// Callers must hold t.mu.
func (t *Tracker) ensureToday() (bool, error) {
	today := t.Today()
	next, rolled := engine.Rollover(t.state, today)
	if !rolled {
		return false, nil
	}
	if err := t.store.Save(next); err != nil {
		return false, fmt.Errorf("failed to save rollover: %w", err)
	}
	t.debug("Day rolled over", "from", t.state.LastDateString(), "to", today, "streak", next.Streak)
	t.state = next
	return true, nil
}

func (t *Tracker) notify(state models.AppState) {
	t.mu.Lock()
	listeners := append([]Listener(nil), t.listeners...)
	t.mu.Unlock()

	for _, l := range listeners {
		l(state.Clone())
	}
}

func (t *Tracker) debug(msg string, keyvals ...interface{}) {
	if t.log != nil {
		t.log.Debug(msg, keyvals...)
	}
}

func sameState(a, b models.AppState) bool {
	x, errA := a.Encode()
	y, errB := b.Encode()
	return errA == nil && errB == nil && bytes.Equal(x, y)
}
