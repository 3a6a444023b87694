package handlers

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/launchpad/internal/browser"
	"github.com/MrSnakeDoc/launchpad/internal/domain"
	"github.com/MrSnakeDoc/launchpad/internal/httpserver/deps"
	"github.com/MrSnakeDoc/launchpad/internal/logger"
)

type defaultBrowserResponse struct {
	ID      string              `json:"id"`
	Browser *domain.BrowserInfo `json:"browser"`
}

type launchRequest struct {
	Executable string `json:"executable"` // empty opens the default browser
	URL        string `json:"url"`
	Custom     bool   `json:"custom"` // normalise url as typed by the user
}

type launchResponse struct {
	Browser string `json:"browser"`
	URL     string `json:"url"`
}

func ListBrowsers(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		found := d.Browsers.Installed(r.Context())
		if found == nil {
			found = []domain.BrowserInfo{}
		}
		writeJSON(w, http.StatusOK, found)
	}
}

func DefaultBrowser(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := d.Browsers.DefaultBrowser(r.Context())
		resp := defaultBrowserResponse{ID: id}
		if b, ok := browser.MatchDefault(d.Browsers.Installed(r.Context()), id); ok {
			resp.Browser = &b
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func Launch(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req launchRequest
		if err := decode(r, &req); err != nil {
			badBody(w, err)
			return
		}
		url := strings.TrimSpace(req.URL)

		var target domain.BrowserInfo
		if req.Executable != "" {
			b, ok := knownBrowser(r.Context(), d, req.Executable)
			if !ok {
				d.Logger.Warn("launch of unknown executable refused", logger.String("executable", req.Executable))
				badRequest(w, "executable is not a detected browser")
				return
			}
			target = b
		}

		switch {
		case req.Executable == "":
			if url == "" {
				badRequest(w, "url is required without an executable")
				return
			}
			if req.Custom {
				normalized, err := d.Launcher.NormalizeURL(url)
				if err != nil {
					writeError(w, d.Logger, err)
					return
				}
				url = normalized
			}
			used, err := d.Launcher.OpenDefault(r.Context(), url)
			if err != nil {
				writeError(w, d.Logger, err)
				return
			}
			writeJSON(w, http.StatusOK, launchResponse{Browser: used.Name, URL: url})

		case req.Custom:
			opened, err := d.Launcher.OpenCustom(r.Context(), url, req.Executable)
			if err != nil {
				writeError(w, d.Logger, err)
				return
			}
			writeJSON(w, http.StatusOK, launchResponse{Browser: target.Name, URL: opened})

		default:
			if err := d.Launcher.Open(r.Context(), req.Executable, url); err != nil {
				writeError(w, d.Logger, err)
				return
			}
			writeJSON(w, http.StatusOK, launchResponse{Browser: target.Name, URL: url})
		}
	}
}
