package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/launchpad/internal/httpserver/deps"
)

type componentStatus struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type readyzResponse struct {
	Ready      bool                       `json:"ready"`
	Components map[string]componentStatus `json:"components"`
}

// Readyz reports whether the settings backend answers. Redis is pinged
// only when it backs the settings.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		components := map[string]componentStatus{
			"settings": checkSettings(ctx, d),
		}
		if d.RedisClient != nil {
			components["redis"] = checkRedis(ctx, d)
		}

		ready := true
		for _, c := range components {
			ready = ready && c.OK
		}

		status := http.StatusOK
		if !ready {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, readyzResponse{Ready: ready, Components: components})
	}
}

func checkSettings(ctx context.Context, d deps.Deps) componentStatus {
	if d.Settings == nil {
		return componentStatus{OK: false, Error: "not initialized"}
	}
	if _, err := d.Settings.All(ctx); err != nil {
		return componentStatus{OK: false, Error: err.Error()}
	}
	return componentStatus{OK: true}
}

func checkRedis(ctx context.Context, d deps.Deps) componentStatus {
	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{OK: false, Error: "timeout"}
	}
	return componentStatus{OK: true}
}
