package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/launchpad/internal/httpserver/deps"
	"github.com/MrSnakeDoc/launchpad/internal/httpserver/handlers"
)

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	r.With(access(d)...).Get("/bookmarks", handlers.ListBookmarks(d))
	r.With(guarded(d)...).Post("/bookmarks/import", handlers.ImportBookmarks(d))
}
