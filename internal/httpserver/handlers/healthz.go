package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/MrSnakeDoc/launchpad/internal/httpserver/deps"
)

// healthzResponse answers liveness probes. It touches no file, so it stays
// cheap while a restore holds the lock.
type healthzResponse struct {
	Status    string  `json:"status"`
	Started   string  `json:"started"` // ex: "3 minutes ago"
	Uptime    float64 `json:"uptime_seconds"`
	Platform  string  `json:"platform"`
	Version   string  `json:"version,omitempty"`
	Commit    string  `json:"commit,omitempty"`
	BuildDate string  `json:"build_date,omitempty"`
	GoVersion string  `json:"go_version,omitempty"`
}

func Healthz(d deps.Deps) http.HandlerFunc {
	start := d.StartTime
	if start.IsZero() {
		start = time.Now()
	}
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, healthzResponse{
			Status:    "ok",
			Started:   humanize.Time(start),
			Uptime:    time.Since(start).Seconds(),
			Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			Version:   d.Version,
			Commit:    d.Commit,
			BuildDate: d.BuildDate,
			GoVersion: d.GoVersion,
		})
	}
}
