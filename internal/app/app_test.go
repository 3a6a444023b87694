package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MrSnakeDoc/launchpad/internal/config"
	"github.com/MrSnakeDoc/launchpad/internal/domain"
	"github.com/MrSnakeDoc/launchpad/internal/logger"
	"github.com/MrSnakeDoc/launchpad/internal/settings"
	"github.com/MrSnakeDoc/launchpad/internal/sources"
)

type fakeBrowsers struct{ list []domain.BrowserInfo }

func (f fakeBrowsers) Installed(context.Context) []domain.BrowserInfo { return f.list }
func (f fakeBrowsers) DefaultBrowser(context.Context) string          { return "" }

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		ProfileDir:           filepath.Join(t.TempDir(), "profile"),
		ListenAddr:           "127.0.0.1:0",
		ShutdownTimeout:      time.Second,
		AutoBackupInterval:   time.Hour,
		HistoryPruneInterval: time.Hour,
		MaxBackups:           3,
		LookupTimeout:        time.Second,
		SettingsBackend:      config.SettingsBackendFile,
	}
}

func newTestApp(t *testing.T, cfg *config.Config, launched *[]string) *App {
	t.Helper()
	a, err := New(context.Background(), cfg, logger.NewNop(), Options{
		Browsers: fakeBrowsers{list: []domain.BrowserInfo{{Name: "Firefox", Executable: "/usr/bin/firefox"}}},
		Launch: func(exe, url string, _ ...string) error {
			*launched = append(*launched, exe+" "+url)
			return nil
		},
		OpenURL: func(string) error { return nil },
		Sources: sources.NewManager(logger.NewNop()),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(a.Close)
	return a
}

func TestNewCreatesProfileDir(t *testing.T) {
	cfg := testConfig(t)
	var launched []string
	a := newTestApp(t, cfg, &launched)

	if _, err := os.Stat(cfg.ProfileDir); err != nil {
		t.Fatalf("profile dir not created: %v", err)
	}
	if !a.History.Enabled() {
		t.Error("history should be enabled by default")
	}
	if a.Config() != cfg {
		t.Error("Config() should return the config passed to New")
	}
}

func TestNewAppliesStoredPreferences(t *testing.T) {
	cfg := testConfig(t)
	if err := os.MkdirAll(cfg.ProfileDir, 0o755); err != nil {
		t.Fatal(err)
	}
	store := settings.NewFileStore(cfg.SettingsFile())
	if err := store.Set(context.Background(), settings.KeyEnableHistory, "false"); err != nil {
		t.Fatal(err)
	}

	var launched []string
	a := newTestApp(t, cfg, &launched)
	if a.History.Enabled() {
		t.Error("history should follow enable_history=false")
	}

	if err := a.Launcher.Open(context.Background(), "/usr/bin/firefox", "https://example.com"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if len(launched) != 1 || launched[0] != "/usr/bin/firefox https://example.com" {
		t.Errorf("launched = %v", launched)
	}
	if got := a.History.Load(); len(got) != 0 {
		t.Errorf("history recorded %d entries while disabled", len(got))
	}
}

func TestPreferenceChangesApplyWithoutRestart(t *testing.T) {
	cfg := testConfig(t)
	var launched []string
	a := newTestApp(t, cfg, &launched)
	ctx := context.Background()

	if err := a.Settings.Set(ctx, settings.KeyEnableHistory, "false"); err != nil {
		t.Fatal(err)
	}
	if err := a.Launcher.Open(ctx, "/usr/bin/firefox", "https://example.com"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if got := a.History.Load(); len(got) != 0 {
		t.Fatalf("history recorded %d entries after disabling", len(got))
	}

	if err := a.Settings.Set(ctx, settings.KeyEnableHistory, "true"); err != nil {
		t.Fatal(err)
	}
	if err := a.Launcher.Open(ctx, "/usr/bin/firefox", "https://example.com"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if got := a.History.Load(); len(got) != 1 {
		t.Errorf("history entries after enabling = %d, want 1", len(got))
	}
}

func TestAutoBackup(t *testing.T) {
	tests := []struct {
		name    string
		enabled string
		want    bool
	}{
		{name: "disabled by default", enabled: "", want: false},
		{name: "enabled and never run", enabled: "true", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			var launched []string
			a := newTestApp(t, cfg, &launched)
			if tt.enabled != "" {
				if err := a.Settings.Set(context.Background(), settings.KeyAutoBackup, tt.enabled); err != nil {
					t.Fatal(err)
				}
			}

			if got := a.AutoBackup(context.Background()); got != tt.want {
				t.Fatalf("AutoBackup() = %v, want %v", got, tt.want)
			}
			if n := len(a.Backups.ListBackups()); (n == 1) != tt.want {
				t.Errorf("backups on disk = %d", n)
			}
		})
	}
}

func TestRunStopsWithContext(t *testing.T) {
	cfg := testConfig(t)
	var launched []string
	a := newTestApp(t, cfg, &launched)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}
