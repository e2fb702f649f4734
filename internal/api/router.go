package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/julianstephens/softstreaks/internal/tracker"
)

// NewRouter creates the chi router with all routes mounted.
// token enables Bearer auth on /api when non-empty.
// sseHandler, if non-nil, is mounted at GET /api/events inside the auth group.
func NewRouter(tr *tracker.Tracker, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(tr)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(AuthMiddleware(token))

		r.Get("/state", h.GetState)
		r.Post("/habits/{idx}/toggle", h.ToggleHabit)
		r.Put("/habits", h.EditHabits)
		r.Put("/mood", h.SetMood)
		r.Post("/spin", h.Spin)
		r.Post("/favorites", h.SaveFavorite)
		r.Delete("/favorites", h.RemoveFavorite)
		r.Get("/catalog", h.Catalog)
		r.Get("/export", h.Export)
		r.Post("/reset", h.Reset)

		if sseHandler != nil {
			r.Get("/events", sseHandler.ServeHTTP)
		}
	})

	return r
}
