package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/launchpad/internal/domain"
	"github.com/MrSnakeDoc/launchpad/internal/httpserver/deps"
)

type createBackupRequest struct {
	IncludeSettings *bool `json:"include_settings"` // default true
}

type createBackupResponse struct {
	Path     string `json:"path"`
	Filename string `json:"filename"`
}

type restoreBackupRequest struct {
	RestoreSettings bool `json:"restore_settings"`
}

type cleanupRequest struct {
	MaxKeep int `json:"max_keep"` // <= 0 keeps the configured maximum
}

type cleanupResponse struct {
	Deleted int `json:"deleted"`
}

// backupPath resolves the {name} parameter inside the backup directory.
// Anything that is not a plain file name is rejected.
func backupPath(d deps.Deps, r *http.Request) (string, error) {
	name := chi.URLParam(r, "name")
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("backup %q: %w", name, domain.ErrNotFound)
	}
	return filepath.Join(d.Backups.Dir(), name), nil
}

func ListBackups(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Backups.ListBackups())
	}
}

func CreateBackup(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createBackupRequest
		if err := decode(r, &req); err != nil {
			badBody(w, err)
			return
		}
		include := req.IncludeSettings == nil || *req.IncludeSettings

		path, err := d.Backups.CreateBackup(r.Context(), include)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		d.Metrics.RecordBackup("manual")
		writeJSON(w, http.StatusCreated, createBackupResponse{Path: path, Filename: filepath.Base(path)})
	}
}

func InspectBackup(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path, err := backupPath(d, r)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		detail, err := d.Backups.Inspect(path)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, detail)
	}
}

func DeleteBackup(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path, err := backupPath(d, r)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		if err := d.Backups.DeleteBackup(path); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func RestoreBackup(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req restoreBackupRequest
		if err := decode(r, &req); err != nil {
			badBody(w, err)
			return
		}
		path, err := backupPath(d, r)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		res, err := d.Backups.RestoreBackup(r.Context(), path, req.RestoreSettings)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func CleanupBackups(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req cleanupRequest
		if err := decode(r, &req); err != nil {
			badBody(w, err)
			return
		}
		n, err := d.Backups.CleanupOldBackups(req.MaxKeep)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, cleanupResponse{Deleted: n})
	}
}
