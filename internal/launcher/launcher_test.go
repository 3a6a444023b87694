package launcher

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/MrSnakeDoc/launchpad/internal/domain"
	"github.com/MrSnakeDoc/launchpad/internal/history"
	"github.com/MrSnakeDoc/launchpad/internal/logger"
	"github.com/MrSnakeDoc/launchpad/internal/metrics"
	"github.com/MrSnakeDoc/launchpad/internal/urls"
)

type fakeBrowsers struct {
	installed []domain.BrowserInfo
	def       string
}

func (f fakeBrowsers) Installed(context.Context) []domain.BrowserInfo { return f.installed }
func (f fakeBrowsers) DefaultBrowser(context.Context) string          { return f.def }

type call struct {
	exe  string
	url  string
	args []string
}

type fixture struct {
	l       *Launcher
	urls    *urls.Manager
	history *history.Manager
	metrics *metrics.Metrics
	calls   []call
	opened  []string
	fail    error
}

var (
	firefox  = domain.BrowserInfo{Name: "Mozilla Firefox", Executable: "/usr/bin/firefox"}
	chromium = domain.BrowserInfo{Name: "Chromium", Executable: "/usr/bin/chromium", Args: []string{"--incognito"}}
)

func newFixture(t *testing.T, browsers fakeBrowsers, opts Options) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{
		urls:    urls.New(urls.Options{Path: filepath.Join(dir, "saved_urls.json")}, logger.NewNop()),
		history: history.New(history.Options{Path: filepath.Join(dir, "history.json"), Enabled: true, MaxEntries: 100}, logger.NewNop()),
		metrics: metrics.New(),
	}
	opts.Launch = func(exe, url string, args ...string) error {
		if f.fail != nil {
			return f.fail
		}
		f.calls = append(f.calls, call{exe: exe, url: url, args: args})
		return nil
	}
	opts.OpenURL = func(url string) error {
		if f.fail != nil {
			return f.fail
		}
		f.opened = append(f.opened, url)
		return nil
	}
	f.l = New(opts, browsers, f.urls, f.history, f.metrics, logger.NewNop())
	return f
}

func TestOpenRecordsHistory(t *testing.T) {
	f := newFixture(t, fakeBrowsers{installed: []domain.BrowserInfo{firefox, chromium}}, Options{})

	if err := f.l.Open(context.Background(), chromium.Executable, "https://go.dev"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if len(f.calls) != 1 || f.calls[0].url != "https://go.dev" || len(f.calls[0].args) != 1 {
		t.Fatalf("launch calls = %+v", f.calls)
	}

	entries := f.history.Load()
	if len(entries) != 1 || entries[0].Browser != "Chromium" {
		t.Errorf("history = %+v", entries)
	}
	if got := testutil.ToFloat64(f.metrics.Launches.WithLabelValues(metrics.LaunchDirect, "ok")); got != 1 {
		t.Errorf("direct launches = %v", got)
	}
}

func TestOpenUnknownBrowserAndNoURL(t *testing.T) {
	f := newFixture(t, fakeBrowsers{installed: []domain.BrowserInfo{firefox}}, Options{})

	if err := f.l.Open(context.Background(), "/opt/other/browser", ""); err != nil {
		t.Fatal(err)
	}
	if len(f.history.Load()) != 0 {
		t.Error("history recorded for a launch without url")
	}

	_ = f.l.Open(context.Background(), "/opt/other/browser", "https://kodi.tv")
	entries := f.history.Load()
	if len(entries) != 1 || entries[0].Browser != domain.UnknownBrowser {
		t.Errorf("history = %+v", entries)
	}
}

func TestOpenLaunchFailure(t *testing.T) {
	f := newFixture(t, fakeBrowsers{installed: []domain.BrowserInfo{firefox}}, Options{})
	f.fail = domain.ErrLaunchFailed

	err := f.l.Open(context.Background(), firefox.Executable, "https://go.dev")
	if !errors.Is(err, domain.ErrLaunchFailed) {
		t.Fatalf("Open() error = %v", err)
	}
	if len(f.history.Load()) != 0 {
		t.Error("failed launch recorded in history")
	}
	if got := testutil.ToFloat64(f.metrics.Launches.WithLabelValues(metrics.LaunchDirect, "failed")); got != 1 {
		t.Errorf("failed launches = %v", got)
	}
}

func TestOpenSaved(t *testing.T) {
	f := newFixture(t, fakeBrowsers{installed: []domain.BrowserInfo{firefox}}, Options{})
	saved, err := f.urls.Save("Go", "https://go.dev", "")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := f.l.OpenSaved(context.Background(), saved.ID, firefox.Executable); err != nil {
		t.Fatalf("OpenSaved() error = %v", err)
	}

	got, _ := f.urls.Get(saved.ID)
	if got.AccessCount != 1 {
		t.Errorf("access count = %d, want 1", got.AccessCount)
	}
	entries := f.history.Load()
	if len(entries) != 1 || entries[0].Title != "Go" || entries[0].Browser != firefox.Name {
		t.Errorf("history = %+v", entries)
	}

	if _, err := f.l.OpenSaved(context.Background(), "missing", firefox.Executable); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("OpenSaved(missing) error = %v", err)
	}
}

func TestOpenSavedFailureKeepsCount(t *testing.T) {
	f := newFixture(t, fakeBrowsers{installed: []domain.BrowserInfo{firefox}}, Options{})
	saved, _ := f.urls.Save("Go", "https://go.dev", "")
	f.fail = domain.ErrLaunchFailed

	if _, err := f.l.OpenSaved(context.Background(), saved.ID, firefox.Executable); err == nil {
		t.Fatal("OpenSaved() succeeded with a failing launch")
	}
	got, _ := f.urls.Get(saved.ID)
	if got.AccessCount != 0 {
		t.Errorf("access count = %d after failed launch", got.AccessCount)
	}
}

func TestOpenDefault(t *testing.T) {
	tests := []struct {
		name       string
		browsers   fakeBrowsers
		wantName   string
		wantSystem bool
	}{
		{"os default detected", fakeBrowsers{installed: []domain.BrowserInfo{chromium, firefox}, def: "firefox.desktop"}, firefox.Name, false},
		{"os default not detected", fakeBrowsers{installed: []domain.BrowserInfo{chromium, firefox}, def: "opera.desktop"}, chromium.Name, false},
		{"no default reported", fakeBrowsers{installed: []domain.BrowserInfo{firefox}}, firefox.Name, false},
		{"nothing detected", fakeBrowsers{}, SystemDefault, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.browsers, Options{})
			used, err := f.l.OpenDefault(context.Background(), "https://go.dev")
			if err != nil {
				t.Fatalf("OpenDefault() error = %v", err)
			}
			if used.Name != tt.wantName {
				t.Errorf("browser = %q, want %q", used.Name, tt.wantName)
			}
			if tt.wantSystem != (len(f.opened) == 1) {
				t.Errorf("system handler calls = %v", f.opened)
			}
			if len(f.history.Load()) != 1 {
				t.Error("visit not recorded")
			}
		})
	}
}

func TestOpenDefaultSystemHandlerFailure(t *testing.T) {
	f := newFixture(t, fakeBrowsers{}, Options{})
	f.fail = errors.New("no handler")

	if _, err := f.l.OpenDefault(context.Background(), "https://go.dev"); !errors.Is(err, domain.ErrLaunchFailed) {
		t.Errorf("OpenDefault() error = %v, want ErrLaunchFailed", err)
	}
}

func TestOpenCustom(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		raw     string
		want    string
		wantErr bool
	}{
		{"adds scheme", Options{AutoAddHTTP: true}, "kodi.tv", "http://kodi.tv", false},
		{"keeps scheme", Options{AutoAddHTTP: true}, "https://kodi.tv", "https://kodi.tv", false},
		{"no auto scheme", Options{}, "kodi.tv", "kodi.tv", false},
		{"validation rejects", Options{AutoAddHTTP: true, ValidateURLs: true}, "not a url", "", true},
		{"validation accepts", Options{AutoAddHTTP: true, ValidateURLs: true}, "localhost:8080/x", "http://localhost:8080/x", false},
		{"empty", Options{AutoAddHTTP: true}, "   ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, fakeBrowsers{installed: []domain.BrowserInfo{firefox}}, tt.opts)
			got, err := f.l.OpenCustom(context.Background(), tt.raw, firefox.Executable)
			if (err != nil) != tt.wantErr {
				t.Fatalf("OpenCustom() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidURL) {
					t.Errorf("error = %v, want ErrInvalidURL", err)
				}
				if len(f.calls) != 0 {
					t.Error("browser launched for an invalid url")
				}
				return
			}
			if got != tt.want || f.calls[0].url != tt.want {
				t.Errorf("opened %q (launched %q), want %q", got, f.calls[0].url, tt.want)
			}
		})
	}
}

func TestNormalizeURLFollowsRulesFunc(t *testing.T) {
	rules := URLRules{}
	f := newFixture(t, fakeBrowsers{}, Options{
		AutoAddHTTP: true,
		RulesFunc:   func() URLRules { return rules },
	})

	if got, err := f.l.NormalizeURL("kodi.tv"); err != nil || got != "kodi.tv" {
		t.Fatalf("NormalizeURL() = %q, %v, want unchanged", got, err)
	}
	rules.AutoAddHTTP = true
	if got, err := f.l.NormalizeURL("kodi.tv"); err != nil || got != "http://kodi.tv" {
		t.Errorf("NormalizeURL() after change = %q, %v", got, err)
	}
}
