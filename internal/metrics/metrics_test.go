package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorders(t *testing.T) {
	m := New()

	m.RecordLaunch(LaunchSaved, nil)
	m.RecordLaunch(LaunchSaved, nil)
	m.RecordLaunch(LaunchDirect, errors.New("boom"))
	m.RecordBackup("auto")
	m.AddHistoryPruned(3)
	m.AddHistoryPruned(0)
	m.RecordJob("history_janitor", nil)
	m.RecordHTTPRequest("GET", "/urls", "200", 5*time.Millisecond)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"saved ok", testutil.ToFloat64(m.Launches.WithLabelValues(LaunchSaved, "ok")), 2},
		{"direct failed", testutil.ToFloat64(m.Launches.WithLabelValues(LaunchDirect, "failed")), 1},
		{"auto backups", testutil.ToFloat64(m.BackupsCreated.WithLabelValues("auto")), 1},
		{"pruned", testutil.ToFloat64(m.HistoryPruned), 3},
		{"job runs", testutil.ToFloat64(m.JobRuns.WithLabelValues("history_janitor", "ok")), 1},
		{"requests", testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/urls", "200")), 1},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.RecordLaunch(LaunchDefault, nil)
	m.RecordBackup("manual")
	m.AddHistoryPruned(1)
	m.RecordJob("x", nil)
	m.RecordHTTPRequest("GET", "/", "200", time.Second)
}

func TestIndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.RecordBackup("manual")
	if got := testutil.ToFloat64(b.BackupsCreated.WithLabelValues("manual")); got != 0 {
		t.Errorf("registries share state: %v", got)
	}
}

func TestHandler(t *testing.T) {
	m := New()
	m.RecordLaunch(LaunchCustom, nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `launchpad_browser_launches_total{kind="custom",result="ok"} 1`) {
		t.Errorf("launch counter missing from exposition:\n%s", body)
	}
}
