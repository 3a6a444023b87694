package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/launchpad/internal/domain"
	"github.com/MrSnakeDoc/launchpad/internal/httpserver/deps"
	"github.com/MrSnakeDoc/launchpad/internal/logger"
	"github.com/MrSnakeDoc/launchpad/internal/urls"
)

type saveURLRequest struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

type updateURLRequest struct {
	Name        *string `json:"name"`
	URL         *string `json:"url"`
	Description *string `json:"description"`
}

type openRequest struct {
	Executable string `json:"executable"`
}

type deletedResponse struct {
	Deleted int `json:"deleted"`
}

func ListURLs(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.URLs.All())
	}
}

func SearchURLs(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.TrimSpace(r.URL.Query().Get("q"))
		if q == "" {
			badRequest(w, "missing query parameter q")
			return
		}
		writeJSON(w, http.StatusOK, d.URLs.Search(q))
	}
}

func TopURLs(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.URLs.MostAccessed(intQuery(r, "limit", urls.DefaultTopLimit)))
	}
}

func URLStats(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.URLs.Stats())
	}
}

func GetURL(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := d.URLs.Get(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

// SaveURL creates a saved URL. The address goes through the same
// normalisation as a URL typed in the launcher.
func SaveURL(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req saveURLRequest
		if err := decode(r, &req); err != nil {
			badBody(w, err)
			return
		}
		name := strings.TrimSpace(req.Name)
		if name == "" {
			badRequest(w, "name is required")
			return
		}
		url, err := d.Launcher.NormalizeURL(req.URL)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}

		u, err := d.URLs.Save(name, url, strings.TrimSpace(req.Description))
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, u)
	}
}

func UpdateURL(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateURLRequest
		if err := decode(r, &req); err != nil {
			badBody(w, err)
			return
		}
		patch := domain.URLPatch{Name: req.Name, Description: req.Description}
		if req.URL != nil {
			url, err := d.Launcher.NormalizeURL(*req.URL)
			if err != nil {
				writeError(w, d.Logger, err)
				return
			}
			patch.URL = &url
		}

		u, err := d.URLs.Update(chi.URLParam(r, "id"), patch)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

func DeleteURL(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.URLs.Delete(chi.URLParam(r, "id")); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func DeleteAllURLs(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := d.URLs.DeleteAll()
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, deletedResponse{Deleted: n})
	}
}

func OpenURL(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req openRequest
		if err := decode(r, &req); err != nil {
			badBody(w, err)
			return
		}
		if req.Executable == "" {
			badRequest(w, "executable is required")
			return
		}
		if _, ok := knownBrowser(r.Context(), d, req.Executable); !ok {
			d.Logger.Warn("launch of unknown executable refused", logger.String("executable", req.Executable))
			badRequest(w, "executable is not a detected browser")
			return
		}
		u, err := d.Launcher.OpenSaved(r.Context(), chi.URLParam(r, "id"), req.Executable)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}
