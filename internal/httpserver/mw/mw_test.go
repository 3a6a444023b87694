package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MrSnakeDoc/launchpad/internal/logger"
)

func TestMatchHost(t *testing.T) {
	tests := []struct {
		host, pattern string
		want          bool
	}{
		{"localhost", "localhost", true},
		{"box.lan", "*.lan", true},
		{"lan", "*.lan", false},
		{"evil.test", "localhost", false},
	}
	for _, tt := range tests {
		if got := matchHost(tt.host, tt.pattern); got != tt.want {
			t.Errorf("matchHost(%q, %q) = %v, want %v", tt.host, tt.pattern, got, tt.want)
		}
	}
}

func TestEnforceHost(t *testing.T) {
	h := EnforceHost([]string{"localhost", "::1"}, logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	tests := []struct {
		host string
		want int
	}{
		{"localhost:8787", http.StatusOK},
		{"LOCALHOST", http.StatusOK},
		{"[::1]:8787", http.StatusOK},
		{"127.0.0.1.nip.io:8787", http.StatusForbidden},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Host = tt.host
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Errorf("Host %q: status = %d, want %d", tt.host, rec.Code, tt.want)
		}
	}
}

func TestLimiterRefill(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	l := newLimiter(RateLimitConfig{Burst: 2, RefillPerIPPerMin: 60, Now: func() time.Time { return now }})

	if ok, rem, _ := l.allow("a", now); !ok || rem != 1 {
		t.Fatalf("first allow = %v, %d", ok, rem)
	}
	if ok, _, _ := l.allow("a", now); !ok {
		t.Fatal("second allow rejected within burst")
	}
	ok, _, retry := l.allow("a", now)
	if ok || retry != 1 {
		t.Fatalf("third allow = %v, retry %d", ok, retry)
	}
	if ok, _, _ := l.allow("b", now); !ok {
		t.Error("buckets are not per client")
	}

	now = now.Add(time.Second)
	if ok, _, _ := l.allow("a", now); !ok {
		t.Error("token not refilled after one second")
	}
}

func TestLimiterSweepsIdleClients(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	l := newLimiter(RateLimitConfig{Burst: 1, IdleTTL: time.Minute, SweepInterval: time.Minute, Now: func() time.Time { return now }})

	l.allow("a", now)
	l.allow("b", now.Add(2*time.Minute))
	if _, ok := l.buckets["a"]; ok {
		t.Error("idle bucket survived the sweep")
	}
	if len(l.buckets) != 1 {
		t.Errorf("buckets = %d", len(l.buckets))
	}
}

func TestSerialize(t *testing.T) {
	var lock testLock
	h := Serialize(&lock)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !lock.held {
			t.Error("handler ran without the lock")
		}
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if lock.held {
		t.Error("lock not released")
	}
}

type testLock struct{ held bool }

func (l *testLock) Lock()   { l.held = true }
func (l *testLock) Unlock() { l.held = false }

func TestRejectForeignOrigin(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		host    string
		want    int
	}{
		{"no origin", []string{"localhost"}, "", "localhost:8787", http.StatusOK},
		{"allowed origin", []string{"localhost"}, "http://localhost:8787", "localhost:8787", http.StatusOK},
		{"ipv6 origin", []string{"::1"}, "http://[::1]:8787", "[::1]:8787", http.StatusOK},
		{"foreign origin", []string{"localhost"}, "https://evil.example", "localhost:8787", http.StatusForbidden},
		{"null origin", []string{"localhost"}, "null", "localhost:8787", http.StatusForbidden},
		{"same host without list", nil, "http://box.lan:8787", "box.lan:8787", http.StatusOK},
		{"other host without list", nil, "http://evil.example", "box.lan:8787", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := RejectForeignOrigin(tt.allowed, logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
			req := httptest.NewRequest(http.MethodPost, "/launch", nil)
			req.Host = tt.host
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
