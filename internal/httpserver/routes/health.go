package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/launchpad/internal/httpserver/deps"
	"github.com/MrSnakeDoc/launchpad/internal/httpserver/handlers"
)

func init() { Register(registerHealth) }

func registerHealth(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))
	r.With(access(d)...).Get("/readyz", handlers.Readyz(d))
	if d.Metrics != nil {
		r.With(access(d)...).Method("GET", "/metrics", d.Metrics.Handler())
	}
}
