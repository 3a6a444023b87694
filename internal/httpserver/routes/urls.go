package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/launchpad/internal/httpserver/deps"
	"github.com/MrSnakeDoc/launchpad/internal/httpserver/handlers"
)

func init() { Register(registerURLs) }

func registerURLs(r chi.Router, d deps.Deps) {
	r.Route("/urls", func(r chi.Router) {
		r.Use(guarded(d)...)

		r.Get("/", handlers.ListURLs(d))
		r.Post("/", handlers.SaveURL(d))
		r.Delete("/", handlers.DeleteAllURLs(d))
		r.Get("/search", handlers.SearchURLs(d))
		r.Get("/top", handlers.TopURLs(d))
		r.Get("/stats", handlers.URLStats(d))

		r.Get("/{id}", handlers.GetURL(d))
		r.Patch("/{id}", handlers.UpdateURL(d))
		r.Delete("/{id}", handlers.DeleteURL(d))
		r.With(launches(d)).Post("/{id}/open", handlers.OpenURL(d))
	})
}
