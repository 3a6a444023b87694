package scheduler

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/MrSnakeDoc/launchpad/internal/logger"
	"github.com/MrSnakeDoc/launchpad/internal/settings"
)

type memoryStore struct {
	*settings.FileStore
	imports int
}

func (m *memoryStore) Import(ctx context.Context, values map[string]string) error {
	m.imports++
	for k, v := range values {
		if err := m.Set(ctx, k, v); err != nil {
			return err
		}
	}
	return nil
}

func TestSettingsSyncer(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	local := settings.NewFileStore(filepath.Join(dir, "local.yaml"))
	_ = local.Set(ctx, settings.KeyEnableHistory, "false")
	_ = local.Set(ctx, settings.KeyMaxHistoryEntries, "20")

	shared := &memoryStore{FileStore: settings.NewFileStore(filepath.Join(dir, "shared.yaml"))}
	syncer := NewSettingsSyncer(local, shared, logger.NewNop())

	n, err := syncer.Sync(ctx)
	if err != nil || n != 2 {
		t.Fatalf("first Sync() = %d, %v", n, err)
	}
	if v, _ := shared.Get(ctx, settings.KeyMaxHistoryEntries); v != "20" {
		t.Errorf("seeded value = %q", v)
	}

	_ = local.Set(ctx, settings.KeyMaxHistoryEntries, "50")
	n, err = syncer.Sync(ctx)
	if err != nil || n != 0 {
		t.Fatalf("second Sync() = %d, %v", n, err)
	}
	if v, _ := shared.Get(ctx, settings.KeyMaxHistoryEntries); v != "20" {
		t.Errorf("populated store was overwritten: %q", v)
	}
	if shared.imports != 1 {
		t.Errorf("imports = %d, want 1", shared.imports)
	}
}

func TestSettingsSyncerEmptyLocal(t *testing.T) {
	dir := t.TempDir()
	local := settings.NewFileStore(filepath.Join(dir, "missing.yaml"))
	shared := &memoryStore{FileStore: settings.NewFileStore(filepath.Join(dir, "shared.yaml"))}

	n, err := NewSettingsSyncer(local, shared, logger.NewNop()).Sync(context.Background())
	if err != nil || n != 0 || shared.imports != 0 {
		t.Errorf("Sync() = %d, %v, imports %d", n, err, shared.imports)
	}
}
