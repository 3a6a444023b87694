package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/launchpad/internal/httpserver/deps"
	"github.com/MrSnakeDoc/launchpad/internal/httpserver/handlers"
)

func init() { Register(registerBrowsers) }

func registerBrowsers(r chi.Router, d deps.Deps) {
	r.With(access(d)...).Get("/browsers", handlers.ListBrowsers(d))
	r.With(access(d)...).Get("/browsers/default", handlers.DefaultBrowser(d))
	r.With(append(guarded(d), launches(d))...).Post("/launch", handlers.Launch(d))
}
