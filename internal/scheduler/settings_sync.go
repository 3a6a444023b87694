package scheduler

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/launchpad/internal/logger"
	"github.com/MrSnakeDoc/launchpad/internal/settings"
)

// ImportableStore is a settings store that accepts a bulk import.
type ImportableStore interface {
	settings.Store
	Import(ctx context.Context, values map[string]string) error
}

// SettingsSyncer seeds an empty shared settings store from the local
// settings file on startup.
type SettingsSyncer struct {
	local  settings.Store
	shared ImportableStore
	logger logger.Logger
}

// NewSettingsSyncer creates a new settings syncer
func NewSettingsSyncer(local settings.Store, shared ImportableStore, log logger.Logger) *SettingsSyncer {
	return &SettingsSyncer{
		local:  local,
		shared: shared,
		logger: log,
	}
}

// Sync copies the local settings into the shared store when the shared
// store holds nothing yet. It returns the number of keys copied.
func (ss *SettingsSyncer) Sync(ctx context.Context) (int, error) {
	existing, err := ss.shared.All(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		ss.logger.Debug("shared settings already populated",
			logger.Int("count", len(existing)))
		return 0, nil
	}

	values, err := ss.local.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read local settings: %w", err)
	}
	if len(values) == 0 {
		ss.logger.Info("no local settings to seed")
		return 0, nil
	}

	if err := ss.shared.Import(ctx, values); err != nil {
		return 0, err
	}

	ss.logger.Info("seeded shared settings from local file",
		logger.Int("count", len(values)))
	return len(values), nil
}
