// Package backup snapshots the saved URLs and settings to timestamped JSON
// files and restores them.
package backup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/MrSnakeDoc/launchpad/internal/domain"
	"github.com/MrSnakeDoc/launchpad/internal/logger"
	"github.com/MrSnakeDoc/launchpad/internal/settings"
	"github.com/MrSnakeDoc/launchpad/internal/utils"
	"github.com/MrSnakeDoc/launchpad/internal/version"
)

const (
	filePrefix = "plugin_backup_"
	fileSuffix = ".json"

	// DefaultMaxBackups is kept by cleanup when no limit is given.
	DefaultMaxBackups = 10

	unknown = "Unknown"
)

// URLStore is the part of the URL manager a backup reads and replaces.
type URLStore interface {
	All() []domain.SavedURL
	DeleteAll() (int, error)
	Save(name, rawURL, description string) (domain.SavedURL, error)
}

// Options configures a Manager.
type Options struct {
	Dir          string // backups directory
	AddonVersion string
	HostVersion  string // recorded as kodi_version
	MaxBackups   int    // kept by auto backup cleanup
	Now          func() time.Time
	SystemInfo   func() domain.SystemInfo
}

// Manager is the BackupManager and RestoreManager.
type Manager struct {
	opts     Options
	urls     URLStore
	settings settings.Store
	log      logger.Logger
}

// Detail is the full description of one backup file.
type Detail struct {
	domain.BackupInfo
	KodiVersion string            `json:"kodi_version"`
	SystemInfo  domain.SystemInfo `json:"system_info"`
}

// New creates a Manager.
func New(opts Options, urls URLStore, store settings.Store, log logger.Logger) *Manager {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.SystemInfo == nil {
		opts.SystemInfo = utils.SystemInfo
	}
	if opts.AddonVersion == "" {
		opts.AddonVersion = version.Version
	}
	if opts.HostVersion == "" {
		opts.HostVersion = unknown
	}
	if opts.MaxBackups <= 0 {
		opts.MaxBackups = DefaultMaxBackups
	}
	return &Manager{opts: opts, urls: urls, settings: store, log: log}
}

// Dir returns the backups directory.
func (m *Manager) Dir() string { return m.opts.Dir }

func (m *Manager) newPath(created string) string {
	return filepath.Join(m.opts.Dir, filePrefix+utils.BackupTimestamp(created)+fileSuffix)
}

func isBackupFile(name string) bool {
	return strings.HasPrefix(name, filePrefix) && strings.HasSuffix(name, fileSuffix)
}

// CreateBackup writes a snapshot of the saved URLs and, when
// includeSettings is set, of the whitelisted settings. It returns the
// path of the new file.
func (m *Manager) CreateBackup(ctx context.Context, includeSettings bool) (string, error) {
	created := utils.NowISO(m.opts.Now())
	doc := domain.BackupDocument{
		CreatedDate:  created,
		AddonVersion: m.opts.AddonVersion,
		KodiVersion:  m.opts.HostVersion,
		SystemInfo:   m.opts.SystemInfo(),
		URLs:         m.urls.All(),
	}

	if includeSettings {
		values, err := settings.Snapshot(ctx, m.settings, settings.BackupKeys)
		if err != nil {
			m.log.Error("failed to snapshot settings", logger.Error(err))
			return "", err
		}
		doc.Settings = values
	}

	path := m.newPath(created)
	if err := utils.WriteJSONFile(path, doc); err != nil {
		m.log.Error("failed to create backup", logger.String("path", path), logger.Error(err))
		return "", err
	}
	m.log.Info("backup created",
		logger.String("path", path),
		logger.Int("urls", len(doc.URLs)),
		logger.Bool("settings", includeSettings))
	return path, nil
}

func (m *Manager) read(path string) (domain.BackupDocument, error) {
	var doc domain.BackupDocument
	if err := utils.ReadJSONFile(path, &doc); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return doc, fmt.Errorf("backup %s: %w", path, domain.ErrNotFound)
		}
		return doc, fmt.Errorf("%w: %v", domain.ErrInvalidBackup, err)
	}
	return doc, nil
}

func summarize(path string, doc domain.BackupDocument) domain.BackupInfo {
	info := domain.BackupInfo{
		Filename:     filepath.Base(path),
		Path:         path,
		CreatedDate:  doc.CreatedDate,
		AddonVersion: doc.AddonVersion,
		URLCount:     len(doc.URLs),
		HasSettings:  doc.HasSettings(),
		FileSize:     utils.FormatFileSize(utils.FileSize(path)),
	}
	if info.CreatedDate == "" {
		info.CreatedDate = unknown
	}
	if info.AddonVersion == "" {
		info.AddonVersion = unknown
	}
	return info
}

// ListBackups returns the readable backups, newest first. Files that fail
// to parse are left out.
func (m *Manager) ListBackups() []domain.BackupInfo {
	out := []domain.BackupInfo{}

	entries, err := os.ReadDir(m.opts.Dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			m.log.Error("failed to list backups", logger.String("dir", m.opts.Dir), logger.Error(err))
		}
		return out
	}

	for _, e := range entries {
		if e.IsDir() || !isBackupFile(e.Name()) {
			continue
		}
		path := filepath.Join(m.opts.Dir, e.Name())
		doc, err := m.read(path)
		if err != nil {
			m.log.Debug("skipping unreadable backup", logger.String("path", path), logger.Error(err))
			continue
		}
		out = append(out, summarize(path, doc))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedDate > out[j].CreatedDate
	})
	return out
}

// Inspect returns the details of the backup at path.
func (m *Manager) Inspect(path string) (Detail, error) {
	doc, err := m.read(path)
	if err != nil {
		return Detail{}, err
	}
	return Detail{
		BackupInfo:  summarize(path, doc),
		KodiVersion: doc.KodiVersion,
		SystemInfo:  doc.SystemInfo,
	}, nil
}

// DeleteBackup removes the file at path.
func (m *Manager) DeleteBackup(path string) error {
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("backup %s: %w", path, domain.ErrNotFound)
		}
		m.log.Error("failed to delete backup", logger.String("path", path), logger.Error(err))
		return fmt.Errorf("failed to delete backup: %w", err)
	}
	m.log.Info("backup deleted", logger.String("path", path))
	return nil
}

// CleanupOldBackups deletes all but the maxKeep newest backups and returns
// how many were removed. maxKeep <= 0 uses the configured MaxBackups.
func (m *Manager) CleanupOldBackups(maxKeep int) (int, error) {
	if maxKeep <= 0 {
		maxKeep = m.opts.MaxBackups
	}
	backups := m.ListBackups()
	if len(backups) <= maxKeep {
		return 0, nil
	}

	var errs []error
	deleted := 0
	for _, b := range backups[maxKeep:] {
		if err := m.DeleteBackup(b.Path); err != nil {
			errs = append(errs, err)
			continue
		}
		deleted++
	}
	m.log.Info("old backups removed", logger.Int("deleted", deleted))
	return deleted, errors.Join(errs...)
}
