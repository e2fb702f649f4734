package api

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/julianstephens/softstreaks/internal/constants"
	apperrors "github.com/julianstephens/softstreaks/internal/errors"
	"github.com/julianstephens/softstreaks/internal/logger"
	"github.com/julianstephens/softstreaks/internal/models"
	"github.com/julianstephens/softstreaks/internal/picker"
	"github.com/julianstephens/softstreaks/internal/tracker"
)

// Handler holds API route handlers.
type Handler struct {
	tr *tracker.Tracker
}

// NewHandler creates a new Handler.
func NewHandler(tr *tracker.Tracker) *Handler {
	return &Handler{tr: tr}
}

type stateResponse struct {
	Today     string          `json:"today"`
	DoneCount int             `json:"doneCount"`
	AllDone   bool            `json:"allDone"`
	State     models.AppState `json:"state"`
}

type editHabitsRequest struct {
	Names []string `json:"names"`
}

type moodRequest struct {
	// Mood is a mood name; null or "" clears it
	Mood *string `json:"mood"`
}

type spinResponse struct {
	Pick  string          `json:"pick"`
	Bonus bool            `json:"bonus"`
	State models.AppState `json:"state"`
}

type favoriteResponse struct {
	Changed bool            `json:"changed"`
	State   models.AppState `json:"state"`
}

type resetRequest struct {
	Confirm bool `json:"confirm"`
}

func (h *Handler) respondState(w http.ResponseWriter, state models.AppState) {
	writeJSON(w, http.StatusOK, stateResponse{
		Today:     h.tr.Today(),
		DoneCount: state.Habits.DoneCount(),
		AllDone:   state.AllDone(),
		State:     state,
	})
}

// respondError maps domain errors to HTTP statuses.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrHabitIndex),
		errors.Is(err, apperrors.ErrInvalidMood),
		errors.Is(err, apperrors.ErrEmptyFavorite):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, apperrors.ErrNoPick):
		writeJSON(w, http.StatusConflict, errorBody(err.Error()))
	default:
		logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// GetState handles GET /api/state.
func (h *Handler) GetState(w http.ResponseWriter, _ *http.Request) {
	state, err := h.tr.State()
	if err != nil {
		respondError(w, err)
		return
	}
	h.respondState(w, state)
}

// ToggleHabit handles POST /api/habits/{idx}/toggle. idx is 1-based.
func (h *Handler) ToggleHabit(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(chi.URLParam(r, "idx"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("habit index must be a number"))
		return
	}
	state, err := h.tr.ToggleHabit(idx - 1)
	if err != nil {
		respondError(w, err)
		return
	}
	h.respondState(w, state)
}

// EditHabits handles PUT /api/habits.
func (h *Handler) EditHabits(w http.ResponseWriter, r *http.Request) {
	var req editHabitsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	state, err := h.tr.EditHabits(req.Names...)
	if err != nil {
		respondError(w, err)
		return
	}
	h.respondState(w, state)
}

// SetMood handles PUT /api/mood. Selecting the current mood clears it.
func (h *Handler) SetMood(w http.ResponseWriter, r *http.Request) {
	var req moodRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	var (
		state models.AppState
		err   error
	)
	if req.Mood == nil || *req.Mood == "" {
		state, err = h.tr.ClearMood()
	} else {
		var mood models.Mood
		mood, err = models.ParseMood(*req.Mood)
		if err == nil {
			state, err = h.tr.SelectMood(mood)
		}
	}
	if err != nil {
		respondError(w, err)
		return
	}
	h.respondState(w, state)
}

// Spin handles POST /api/spin.
func (h *Handler) Spin(w http.ResponseWriter, _ *http.Request) {
	pick, state, err := h.tr.Spin()
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, spinResponse{Pick: pick, Bonus: picker.IsBonus(pick), State: state})
}

// SaveFavorite handles POST /api/favorites, saving the last pick.
func (h *Handler) SaveFavorite(w http.ResponseWriter, _ *http.Request) {
	added, state, err := h.tr.SaveFavorite()
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, favoriteResponse{Changed: added, State: state})
}

// RemoveFavorite handles DELETE /api/favorites?text=...
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if text == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("text query parameter is required"))
		return
	}
	removed, state, err := h.tr.RemoveFavorite(text)
	if err != nil {
		respondError(w, err)
		return
	}
	if !removed {
		writeJSON(w, http.StatusNotFound, errorBody("favorite not found"))
		return
	}
	writeJSON(w, http.StatusOK, favoriteResponse{Changed: true, State: state})
}

// Catalog handles GET /api/catalog.
func (h *Handler) Catalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"packs": h.tr.Picker().Catalog().Packs(),
	})
}

// Export handles GET /api/export as a file download.
func (h *Handler) Export(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := h.tr.Export(&buf); err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+constants.ExportFileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// Reset handles POST /api/reset. The body must be {"confirm": true}.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := decodeJSON(r, &req); err != nil || !req.Confirm {
		writeJSON(w, http.StatusBadRequest, errorBody(`reset requires {"confirm": true}`))
		return
	}
	state, err := h.tr.Reset()
	if err != nil {
		respondError(w, err)
		return
	}
	h.respondState(w, state)
}
