package backup

import (
	"context"
	"fmt"
	"os"

	"github.com/MrSnakeDoc/launchpad/internal/domain"
	"github.com/MrSnakeDoc/launchpad/internal/logger"
	"github.com/MrSnakeDoc/launchpad/internal/settings"
	"github.com/MrSnakeDoc/launchpad/internal/utils"
)

// RestoreResult reports what a restore changed.
type RestoreResult struct {
	URLsRestored     int  `json:"urls_restored"`
	URLsSkipped      int  `json:"urls_skipped"`
	URLsReplaced     bool `json:"urls_replaced"`
	SettingsRestored int  `json:"settings_restored"`
	SettingsFailed   int  `json:"settings_failed"`
}

// RestoreBackup applies the backup at path.
//
// When the document carries urls, every current saved URL is deleted and
// each backed-up entry is saved again, so ids are regenerated and entries
// sharing a name keep only the first. Settings are written back only when
// restoreSettings is set and the document has them; a key that fails to
// write is logged and skipped.
func (m *Manager) RestoreBackup(ctx context.Context, path string, restoreSettings bool) (RestoreResult, error) {
	var res RestoreResult

	doc, err := m.read(path)
	if err != nil {
		m.log.Error("failed to read backup", logger.String("path", path), logger.Error(err))
		return res, err
	}

	if doc.HasURLs() {
		if _, err := m.urls.DeleteAll(); err != nil {
			return res, fmt.Errorf("failed to clear saved urls: %w", err)
		}
		res.URLsReplaced = true
		for _, u := range doc.URLs {
			if _, err := m.urls.Save(u.Name, u.URL, u.Description); err != nil {
				m.log.Warn("backup entry not restored", logger.String("name", u.Name), logger.Error(err))
				res.URLsSkipped++
				continue
			}
			res.URLsRestored++
		}
	}

	if restoreSettings && doc.HasSettings() {
		res.SettingsRestored, res.SettingsFailed = settings.Restore(ctx, m.settings, doc.Settings, m.log)
	}

	m.log.Info("backup restored",
		logger.String("path", path),
		logger.Int("urls", res.URLsRestored),
		logger.Int("settings", res.SettingsRestored))
	return res, nil
}

// Validate reads path and checks that it holds urls or settings.
func (m *Manager) Validate(path string) (domain.BackupDocument, error) {
	doc, err := m.read(path)
	if err != nil {
		return doc, err
	}
	if !doc.HasURLs() && !doc.HasSettings() {
		return doc, fmt.Errorf("%w: %s has neither urls nor settings", domain.ErrInvalidBackup, path)
	}
	return doc, nil
}

// ImportFromExternal copies a backup from anywhere on disk into the
// backups directory and returns the new path.
func (m *Manager) ImportFromExternal(path string) (string, error) {
	if _, err := m.Validate(path); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read backup: %w", err)
	}
	if err := os.MkdirAll(m.opts.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backups directory: %w", err)
	}

	dst := m.newPath(utils.NowISO(m.opts.Now()))
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		m.log.Error("failed to import backup", logger.String("path", path), logger.Error(err))
		return "", fmt.Errorf("failed to import backup: %w", err)
	}
	m.log.Info("backup imported", logger.String("from", path), logger.String("to", dst))
	return dst, nil
}

// RestoreFromFile imports an external backup, then restores it.
func (m *Manager) RestoreFromFile(ctx context.Context, path string, restoreSettings bool) (RestoreResult, error) {
	imported, err := m.ImportFromExternal(path)
	if err != nil {
		return RestoreResult{}, err
	}
	return m.RestoreBackup(ctx, imported, restoreSettings)
}

// EmergencyRestore restores the newest backup. It fails with ErrNotFound
// when there is none.
func (m *Manager) EmergencyRestore(ctx context.Context, restoreSettings bool) (domain.BackupInfo, RestoreResult, error) {
	backups := m.ListBackups()
	if len(backups) == 0 {
		return domain.BackupInfo{}, RestoreResult{}, fmt.Errorf("no backups available: %w", domain.ErrNotFound)
	}
	latest := backups[0]
	res, err := m.RestoreBackup(ctx, latest.Path, restoreSettings && latest.HasSettings)
	return latest, res, err
}
