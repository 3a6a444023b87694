// Package settings is the host key/value settings store and its typed view.
package settings

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/MrSnakeDoc/launchpad/internal/logger"
)

// Store is a flat string key/value settings store.
// Get returns "" and no error for unknown keys.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	All(ctx context.Context) (map[string]string, error)
}

// Setting keys read by the managers.
const (
	KeyEnableHistory        = "enable_history"
	KeyMaxHistoryEntries    = "max_history_entries"
	KeyHistoryRetentionDays = "history_retention_days"
	KeyAutoBackup           = "auto_backup_urls"
	KeyBackupFrequency      = "backup_frequency"
	KeyLastAutoBackup       = "last_auto_backup"
	KeyEnableCustomBrowsers = "enable_custom_browsers"
	KeyCustomBrowserName    = "custom_browser_name"
	KeyCustomBrowserPath    = "custom_browser_path"
	KeyCustomBrowserArgs    = "custom_browser_args"
	KeyEnableURLValidation  = "enable_url_validation"
	KeyAutoAddHTTP          = "auto_add_http"
)

// BackupKeys is the whitelist of settings copied into backups.
var BackupKeys = []string{
	"auto_detect_browsers", "show_browser_descriptions", "show_notifications",
	"default_browser", "remember_last_browser", "enable_url_history",
	"max_saved_urls", "auto_backup_urls", "backup_frequency",
	"enable_debug_logging", "log_level", "show_system_info",
	"enable_custom_browsers", "custom_browser_name", "custom_browser_path",
	"custom_browser_args", "enable_url_validation", "auto_add_http",
	"warn_external_urls", "url_open_mode", "enable_incognito_mode",
}

// Preferences is the typed view of the settings the managers consume.
type Preferences struct {
	EnableHistory        bool   `mapstructure:"enable_history"`
	MaxHistoryEntries    int    `mapstructure:"max_history_entries"`
	HistoryRetentionDays int    `mapstructure:"history_retention_days"`
	AutoBackup           bool   `mapstructure:"auto_backup_urls"`
	BackupFrequency      string `mapstructure:"backup_frequency"` // "0" daily, "1" weekly, "2" monthly
	LastAutoBackup       string `mapstructure:"last_auto_backup"`
	EnableCustomBrowsers bool   `mapstructure:"enable_custom_browsers"`
	CustomBrowserName    string `mapstructure:"custom_browser_name"`
	CustomBrowserPath    string `mapstructure:"custom_browser_path"`
	CustomBrowserArgs    string `mapstructure:"custom_browser_args"`
	EnableURLValidation  bool   `mapstructure:"enable_url_validation"`
	AutoAddHTTP          bool   `mapstructure:"auto_add_http"`
}

// DefaultPreferences matches the defaults shipped with the plugin settings.
func DefaultPreferences() Preferences {
	return Preferences{
		EnableHistory:        true,
		MaxHistoryEntries:    100,
		HistoryRetentionDays: 30,
		BackupFrequency:      "0",
		EnableURLValidation:  true,
		AutoAddHTTP:          true,
	}
}

// DecodePreferences overlays raw string settings on the defaults.
// Empty values keep their default.
func DecodePreferences(raw map[string]string) (Preferences, error) {
	prefs := DefaultPreferences()

	input := make(map[string]interface{}, len(raw))
	for k, v := range raw {
		if v != "" {
			input[k] = v
		}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &prefs,
	})
	if err != nil {
		return DefaultPreferences(), fmt.Errorf("failed to build settings decoder: %w", err)
	}
	if err := dec.Decode(input); err != nil {
		return DefaultPreferences(), fmt.Errorf("failed to decode settings: %w", err)
	}
	return prefs, nil
}

// LoadPreferences reads every setting from s and decodes it. Read or decode
// failures are logged and the defaults returned.
func LoadPreferences(ctx context.Context, s Store, log logger.Logger) Preferences {
	raw, err := s.All(ctx)
	if err != nil {
		log.Error("failed to read settings, using defaults", logger.Error(err))
		return DefaultPreferences()
	}
	prefs, err := DecodePreferences(raw)
	if err != nil {
		log.Error("failed to decode settings, using defaults", logger.Error(err))
	}
	return prefs
}

// Snapshot returns the values of keys. Unset keys map to "".
func Snapshot(ctx context.Context, s Store, keys []string) (map[string]string, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		out[k] = all[k]
	}
	return out, nil
}

// Restore writes every value back to s. A failing key is logged and skipped.
// It returns how many keys were written and how many failed.
func Restore(ctx context.Context, s Store, values map[string]string, log logger.Logger) (restored, failed int) {
	for k, v := range values {
		if err := s.Set(ctx, k, v); err != nil {
			log.Warn("failed to restore setting",
				logger.String("key", k),
				logger.Error(err))
			failed++
			continue
		}
		restored++
	}
	return restored, failed
}
