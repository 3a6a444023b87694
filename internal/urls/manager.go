// Package urls manages the saved URL collection persisted in saved_urls.json.
//
// Every call loads the file, works on the in-memory copy and rewrites the
// whole document. A Manager is not safe for concurrent use.
package urls

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/launchpad/internal/domain"
	"github.com/MrSnakeDoc/launchpad/internal/logger"
	"github.com/MrSnakeDoc/launchpad/internal/utils"
	"github.com/MrSnakeDoc/launchpad/internal/version"
)

// DefaultTopLimit is the MostAccessed limit used by the CLI and the API.
const DefaultTopLimit = 10

// Options configures a Manager.
type Options struct {
	Path         string           // saved_urls.json
	AddonVersion string           // written to exports
	Now          func() time.Time // defaults to time.Now
	NewID        func() string    // defaults to uuid v4
}

// Manager is the URLManager.
type Manager struct {
	path         string
	addonVersion string
	now          func() time.Time
	newID        func() string
	log          logger.Logger
}

// document is the on-disk layout of saved_urls.json.
type document struct {
	URLs    []domain.SavedURL `json:"urls"`
	Version string            `json:"version"`
}

// New creates a Manager.
func New(opts Options, log logger.Logger) *Manager {
	m := &Manager{
		path:         opts.Path,
		addonVersion: opts.AddonVersion,
		now:          opts.Now,
		newID:        opts.NewID,
		log:          log,
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.newID == nil {
		m.newID = uuid.NewString
	}
	if m.addonVersion == "" {
		m.addonVersion = version.Version
	}
	return m
}

// Path returns the file backing the collection.
func (m *Manager) Path() string { return m.path }

// load returns the stored collection. Missing or unreadable files degrade
// to an empty collection.
func (m *Manager) load() []domain.SavedURL {
	var doc document
	if err := utils.ReadJSONFile(m.path, &doc); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			m.log.Error("failed to load saved urls", logger.String("path", m.path), logger.Error(err))
		}
		return []domain.SavedURL{}
	}
	if doc.URLs == nil {
		return []domain.SavedURL{}
	}
	return doc.URLs
}

func (m *Manager) store(list []domain.SavedURL) error {
	if list == nil {
		list = []domain.SavedURL{}
	}
	if err := utils.WriteJSONFile(m.path, document{URLs: list, Version: version.SchemaVersion}); err != nil {
		m.log.Error("failed to save urls", logger.String("path", m.path), logger.Error(err))
		return err
	}
	return nil
}

func (m *Manager) stamp() string { return utils.NowISO(m.now()) }

// Save appends a new entry. It fails with ErrDuplicateName when another
// entry already uses name (case-insensitive), leaving the file untouched.
func (m *Manager) Save(name, rawURL, description string) (domain.SavedURL, error) {
	list := m.load()
	for _, u := range list {
		if u.SameName(name) {
			return domain.SavedURL{}, fmt.Errorf("%w: %s", domain.ErrDuplicateName, name)
		}
	}

	entry := domain.SavedURL{
		ID:          m.newID(),
		Name:        name,
		URL:         rawURL,
		Description: description,
		CreatedDate: m.stamp(),
	}
	list = append(list, entry)

	if err := m.store(list); err != nil {
		return domain.SavedURL{}, err
	}
	m.log.Info("url saved", logger.String("id", entry.ID), logger.String("name", name))
	return entry, nil
}

// All returns the collection sorted by created_date, newest first.
func (m *Manager) All() []domain.SavedURL {
	list := m.load()
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedDate > list[j].CreatedDate
	})
	return list
}

// Get returns the entry with id or ErrNotFound.
func (m *Manager) Get(id string) (domain.SavedURL, error) {
	for _, u := range m.load() {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.SavedURL{}, fmt.Errorf("url %s: %w", id, domain.ErrNotFound)
}

// Update applies the non-nil fields of patch and stamps modified_date.
// Renaming onto the name of a different entry fails with ErrDuplicateName.
func (m *Manager) Update(id string, patch domain.URLPatch) (domain.SavedURL, error) {
	list := m.load()

	idx := indexOf(list, id)
	if idx < 0 {
		return domain.SavedURL{}, fmt.Errorf("url %s: %w", id, domain.ErrNotFound)
	}

	if patch.Name != nil {
		for i, u := range list {
			if i != idx && u.SameName(*patch.Name) {
				return domain.SavedURL{}, fmt.Errorf("%w: %s", domain.ErrDuplicateName, *patch.Name)
			}
		}
		list[idx].Name = *patch.Name
	}
	if patch.URL != nil {
		list[idx].URL = *patch.URL
	}
	if patch.Description != nil {
		list[idx].Description = *patch.Description
	}
	modified := m.stamp()
	list[idx].ModifiedDate = &modified

	if err := m.store(list); err != nil {
		return domain.SavedURL{}, err
	}
	return list[idx], nil
}

// Delete removes the entry with id.
func (m *Manager) Delete(id string) error {
	list := m.load()
	idx := indexOf(list, id)
	if idx < 0 {
		return fmt.Errorf("url %s: %w", id, domain.ErrNotFound)
	}
	list = append(list[:idx], list[idx+1:]...)
	if err := m.store(list); err != nil {
		return err
	}
	m.log.Info("url deleted", logger.String("id", id))
	return nil
}

// DeleteAll empties the collection and returns how many entries were removed.
func (m *Manager) DeleteAll() (int, error) {
	n := len(m.load())
	if err := m.store(nil); err != nil {
		return 0, err
	}
	return n, nil
}

// IncrementAccess bumps access_count and stamps last_accessed.
func (m *Manager) IncrementAccess(id string) error {
	list := m.load()
	idx := indexOf(list, id)
	if idx < 0 {
		return fmt.Errorf("url %s: %w", id, domain.ErrNotFound)
	}
	list[idx].AccessCount++
	accessed := m.stamp()
	list[idx].LastAccessed = &accessed
	return m.store(list)
}

// MostAccessed returns up to limit entries by access_count, highest first.
// Ties keep their stored order.
func (m *Manager) MostAccessed(limit int) []domain.SavedURL {
	list := m.load()
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].AccessCount > list[j].AccessCount
	})
	return head(list, limit)
}

// Search returns entries whose name, url or description contain query.
func (m *Manager) Search(query string) []domain.SavedURL {
	query = strings.TrimSpace(query)
	out := []domain.SavedURL{}
	for _, u := range m.load() {
		if u.Matches(query) {
			out = append(out, u)
		}
	}
	return out
}

func indexOf(list []domain.SavedURL, id string) int {
	for i, u := range list {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func head[T any](list []T, limit int) []T {
	if limit > 0 && len(list) > limit {
		return list[:limit]
	}
	return list
}
