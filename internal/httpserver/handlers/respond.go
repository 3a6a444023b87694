package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/MrSnakeDoc/launchpad/internal/domain"
	"github.com/MrSnakeDoc/launchpad/internal/httpserver/deps"
	"github.com/MrSnakeDoc/launchpad/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps domain errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrSourceUnavailable):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateName):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidURL), errors.Is(err, domain.ErrInvalidBackup):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrLaunchFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, log logger.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", logger.Error(err))
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// badBody answers a decode failure.
func badBody(w http.ResponseWriter, err error) {
	if errors.Is(err, errNotJSON) {
		writeJSON(w, http.StatusUnsupportedMediaType, errorResponse{Error: err.Error()})
		return
	}
	badRequest(w, err.Error())
}

// knownBrowser returns the detected browser whose executable is exe.
// Only these may be launched from the API.
func knownBrowser(ctx context.Context, d deps.Deps, exe string) (domain.BrowserInfo, bool) {
	for _, b := range d.Browsers.Installed(ctx) {
		if b.Executable == exe {
			return b, true
		}
	}
	return domain.BrowserInfo{}, false
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

var errNotJSON = errors.New("content type must be application/json")

// decode reads a JSON body into v. An empty body leaves v untouched. A body
// sent with any other content type is refused, so a cross-site form or
// text/plain request cannot drive the API.
func decode(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mt != "application/json" {
		return errNotJSON
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// intQuery returns the integer query parameter key, def when absent or invalid.
func intQuery(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
