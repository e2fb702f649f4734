package storage

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/julianstephens/softstreaks/internal/constants"
	"github.com/julianstephens/softstreaks/internal/models"
)

var errNullHabit = errors.New("habit entry is null")

// Decode turns a stored document into a state. Anything unreadable falls back
// to defaults; individual fields are backfilled or coerced independently.
// The returned bool is false when the whole document was discarded.
func Decode(doc string) (models.AppState, bool) {
	if strings.TrimSpace(doc) == "" {
		return models.DefaultState(), false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(doc), &fields); err != nil || fields == nil {
		return models.DefaultState(), false
	}

	state := models.DefaultState()

	state.LastDate = decodeLastDate(fields["lastDate"])
	state.Streak = decodeStreak(fields["streak"])
	if s, ok := decodeString(fields["mood"]); ok {
		if m := models.Mood(s); m.Valid() {
			state.Mood = &m
		}
	}
	if s, ok := decodeString(fields["lastPick"]); ok && s != "" {
		state.LastPick = &s
	}

	habits, err := decodeHabits(fields["habits"])
	if err != nil {
		return models.DefaultState(), false
	}
	state.Habits = habits
	state.Favorites = decodeFavorites(fields["favorites"])

	return state, true
}

func decodeString(raw json.RawMessage) (string, bool) {
	if raw == nil {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// decodeLastDate keeps any truthy value as a string. Values that are not
// dates are left for the rollover to treat as a gap.
func decodeLastDate(raw json.RawMessage) *string {
	if raw == nil {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil || !truthy(v) {
		return nil
	}
	s := jsString(v)
	if s == "" {
		return nil
	}
	return &s
}

func decodeStreak(raw json.RawMessage) int {
	if raw == nil {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil || math.IsNaN(f) || f < 0 {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

func decodeHabits(raw json.RawMessage) (models.Habits, error) {
	defaults := models.DefaultHabits()
	var items []any
	if raw == nil || json.Unmarshal(raw, &items) != nil || len(items) == 0 {
		return defaults, nil
	}

	habits := defaults
	for i, item := range items {
		if item == nil {
			return defaults, errNullHabit
		}
		if i >= len(habits) {
			continue
		}
		habit := models.Habit{Name: constants.DefaultHabitName}
		if obj, ok := item.(map[string]any); ok {
			if name := jsString(obj["name"]); truthy(obj["name"]) && name != "" {
				habit.Name = name
			}
			habit.Done = truthy(obj["done"])
		}
		habits[i] = habit
	}
	return habits, nil
}

func decodeFavorites(raw json.RawMessage) []string {
	var items []any
	if raw == nil || json.Unmarshal(raw, &items) != nil || items == nil {
		return []string{}
	}
	if len(items) > constants.MaxFavorites {
		items = items[:constants.MaxFavorites]
	}
	favorites := make([]string, 0, len(items))
	for _, item := range items {
		favorites = append(favorites, jsString(item))
	}
	return favorites
}

// jsString stringifies a decoded JSON value the way a browser's String() would.
func jsString(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case []any:
		parts := make([]string, len(x))
		for i, el := range x {
			if el != nil {
				parts[i] = jsString(el)
			}
		}
		return strings.Join(parts, ",")
	default:
		return "[object Object]"
	}
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0 && !math.IsNaN(x)
	default:
		return true
	}
}
