package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/launchpad/internal/httpserver/deps"
	"github.com/MrSnakeDoc/launchpad/internal/logger"
)

type triggerResponse struct {
	Triggered bool   `json:"triggered"`
	Job       string `json:"job"`
}

// Trigger wakes a background job without waiting for it. A job that has
// not picked up its previous trigger answers 429.
func Trigger(d deps.Deps, job string, ch chan struct{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ch == nil {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: job + " is not running"})
			return
		}

		select {
		case ch <- struct{}{}:
			d.Logger.Info("manual job triggered via endpoint",
				logger.String("job", job),
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, triggerResponse{Triggered: true, Job: job})
		default:
			d.Logger.Warn("job already in progress",
				logger.String("job", job),
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusTooManyRequests, triggerResponse{Triggered: false, Job: job})
		}
	}
}
