package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/launchpad/internal/httpserver/deps"
	"github.com/MrSnakeDoc/launchpad/internal/httpserver/handlers"
)

func init() { Register(registerBackups) }

func registerBackups(r chi.Router, d deps.Deps) {
	r.Route("/backups", func(r chi.Router) {
		r.With(guarded(d)...).Get("/", handlers.ListBackups(d))
		r.With(guarded(d)...).Post("/", handlers.CreateBackup(d))
		r.With(guarded(d)...).Post("/cleanup", handlers.CleanupBackups(d))
		r.With(access(d)...).Post("/auto", handlers.Trigger(d, "auto_backup", d.BackupTrigger))

		r.With(guarded(d)...).Get("/{name}", handlers.InspectBackup(d))
		r.With(guarded(d)...).Delete("/{name}", handlers.DeleteBackup(d))
		r.With(guarded(d)...).Post("/{name}/restore", handlers.RestoreBackup(d))
	})
}
