package backup

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/launchpad/internal/logger"
	"github.com/MrSnakeDoc/launchpad/internal/settings"
	"github.com/MrSnakeDoc/launchpad/internal/utils"
)

const day = 24 * time.Hour

// frequencies maps the backup_frequency setting to the minimum age of the
// previous automatic backup.
var frequencies = map[string]time.Duration{
	"0": day,      // daily
	"1": 7 * day,  // weekly
	"2": 30 * day, // monthly
}

// Due reports whether an automatic backup should run at now. An empty or
// unparsable marker is always due; an unknown frequency never is otherwise.
func Due(frequency, lastRun string, now time.Time) bool {
	if lastRun == "" {
		return true
	}
	last, err := utils.ParseISO(lastRun)
	if err != nil {
		return true
	}
	interval, ok := frequencies[frequency]
	if !ok {
		return false
	}
	return now.Sub(last) >= interval
}

// AutoBackup creates a backup without settings when auto_backup_urls is on
// and the configured frequency has elapsed, then records the run and
// trims old backups. It reports whether a backup was made.
func (m *Manager) AutoBackup(ctx context.Context) (bool, error) {
	prefs := settings.LoadPreferences(ctx, m.settings, m.log)
	if !prefs.AutoBackup {
		return false, nil
	}

	now := m.opts.Now()
	if !Due(prefs.BackupFrequency, prefs.LastAutoBackup, now) {
		m.log.Debug("auto backup not due",
			logger.String("frequency", prefs.BackupFrequency),
			logger.String("last", prefs.LastAutoBackup))
		return false, nil
	}

	if _, err := m.CreateBackup(ctx, false); err != nil {
		return false, err
	}
	if err := m.settings.Set(ctx, settings.KeyLastAutoBackup, utils.NowISO(now)); err != nil {
		m.log.Warn("failed to record auto backup time", logger.Error(err))
	}
	if _, err := m.CleanupOldBackups(m.opts.MaxBackups); err != nil {
		m.log.Warn("failed to clean up old backups", logger.Error(err))
	}
	m.log.Info("auto backup completed")
	return true, nil
}
