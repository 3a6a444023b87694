package settings

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/MrSnakeDoc/launchpad/internal/logger"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "profile", "settings.yaml")
	store := NewFileStore(path)

	v, err := store.Get(ctx, KeyBackupFrequency)
	if err != nil || v != "" {
		t.Fatalf("Get on missing file = %q, %v", v, err)
	}

	if err := store.Set(ctx, KeyBackupFrequency, "2"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Set(ctx, KeyCustomBrowserName, "Navegador Ñ"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	reopened := NewFileStore(path)
	all, err := reopened.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if all[KeyBackupFrequency] != "2" || all[KeyCustomBrowserName] != "Navegador Ñ" {
		t.Errorf("All() = %v", all)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("key: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileStore(path).All(context.Background()); err == nil {
		t.Error("expected parse error")
	}
}

func TestDecodePreferences(t *testing.T) {
	tests := []struct {
		name  string
		raw   map[string]string
		check func(t *testing.T, p Preferences)
	}{
		{
			name: "defaults on empty input",
			raw:  nil,
			check: func(t *testing.T, p Preferences) {
				if p != DefaultPreferences() {
					t.Errorf("got %+v, want defaults", p)
				}
			},
		},
		{
			name: "string values are weakly typed",
			raw: map[string]string{
				KeyEnableHistory:        "false",
				KeyMaxHistoryEntries:    "25",
				KeyHistoryRetentionDays: "0",
				KeyAutoBackup:           "true",
				KeyBackupFrequency:      "0",
			},
			check: func(t *testing.T, p Preferences) {
				if p.EnableHistory || p.MaxHistoryEntries != 25 || p.HistoryRetentionDays != 0 ||
					!p.AutoBackup || p.BackupFrequency != "0" {
					t.Errorf("unexpected preferences %+v", p)
				}
			},
		},
		{
			name: "empty strings keep defaults",
			raw:  map[string]string{KeyMaxHistoryEntries: "", KeyEnableHistory: ""},
			check: func(t *testing.T, p Preferences) {
				if !p.EnableHistory || p.MaxHistoryEntries != 100 {
					t.Errorf("unexpected preferences %+v", p)
				}
			},
		},
		{
			name: "unknown keys ignored",
			raw:  map[string]string{"show_notifications": "true"},
			check: func(t *testing.T, p Preferences) {
				if p != DefaultPreferences() {
					t.Errorf("got %+v, want defaults", p)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := DecodePreferences(tt.raw)
			if err != nil {
				t.Fatalf("DecodePreferences() error = %v", err)
			}
			tt.check(t, p)
		})
	}
}

func TestDecodePreferencesInvalidNumber(t *testing.T) {
	_, err := DecodePreferences(map[string]string{KeyMaxHistoryEntries: "lots"})
	if err == nil {
		t.Error("expected decode error for non-numeric max_history_entries")
	}
}

func TestSnapshot(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "settings.yaml"))
	_ = store.Set(ctx, "auto_backup_urls", "true")
	_ = store.Set(ctx, "not_whitelisted", "x")

	snap, err := Snapshot(ctx, store, BackupKeys)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if len(snap) != len(BackupKeys) {
		t.Errorf("Snapshot() has %d keys, want %d", len(snap), len(BackupKeys))
	}
	if snap["auto_backup_urls"] != "true" {
		t.Errorf("auto_backup_urls = %q", snap["auto_backup_urls"])
	}
	if _, ok := snap["not_whitelisted"]; ok {
		t.Error("non-whitelisted key leaked into snapshot")
	}
}

type flakyStore struct {
	*FileStore
	failKey string
}

func (f *flakyStore) Set(ctx context.Context, key, value string) error {
	if key == f.failKey {
		return errors.New("read-only key")
	}
	return f.FileStore.Set(ctx, key, value)
}

func TestRestoreContinuesOnFailure(t *testing.T) {
	ctx := context.Background()
	store := &flakyStore{
		FileStore: NewFileStore(filepath.Join(t.TempDir(), "settings.yaml")),
		failKey:   "log_level",
	}

	restored, failed := Restore(ctx, store, map[string]string{
		"log_level":        "debug",
		"auto_backup_urls": "true",
		"backup_frequency": "2",
	}, logger.NewNop())

	if restored != 2 || failed != 1 {
		t.Errorf("Restore() = (%d, %d), want (2, 1)", restored, failed)
	}
	if v, _ := store.Get(ctx, "backup_frequency"); v != "2" {
		t.Errorf("backup_frequency = %q", v)
	}
}
