package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/launchpad/internal/httpserver/deps"
	"github.com/MrSnakeDoc/launchpad/internal/httpserver/handlers"
)

func init() { Register(registerHistory) }

func registerHistory(r chi.Router, d deps.Deps) {
	r.Route("/history", func(r chi.Router) {
		r.Use(guarded(d)...)

		r.Get("/", handlers.RecentHistory(d))
		r.Delete("/", handlers.DeleteHistory(d))
		r.Get("/top", handlers.TopHistory(d))
		r.Get("/search", handlers.SearchHistory(d))
		r.Get("/stats", handlers.HistoryStats(d))
	})
	// Triggers skip the lock: the janitor takes it when it runs.
	r.With(access(d)...).Post("/history/prune", handlers.Trigger(d, "history_janitor", d.PruneTrigger))
}
