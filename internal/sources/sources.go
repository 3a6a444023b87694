// Package sources imports bookmarks from desktop browsers into the saved
// URL collection.
package sources

import (
	"context"
	"errors"
	"runtime"

	"github.com/MrSnakeDoc/launchpad/internal/domain"
	"github.com/MrSnakeDoc/launchpad/internal/logger"
	"github.com/MrSnakeDoc/launchpad/internal/sources/chrome"
	"github.com/MrSnakeDoc/launchpad/internal/sources/firefox"
)

// Loader reads the bookmarks of one browser family.
type Loader interface {
	Name() string
	Load(ctx context.Context) ([]domain.ImportedBookmark, error)
}

// Saver is the part of the URL manager used by Import.
type Saver interface {
	Save(name, rawURL, description string) (domain.SavedURL, error)
}

// ImportResult reports what Import did.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// Manager is the BookmarkManager.
type Manager struct {
	loaders []Loader
	log     logger.Logger
}

// NewManager creates a Manager over loaders, queried in order.
func NewManager(log logger.Logger, loaders ...Loader) *Manager {
	return &Manager{loaders: loaders, log: log}
}

// Default returns a Manager reading Chrome then Firefox from their usual
// locations on this OS.
func Default(log logger.Logger) *Manager {
	return NewManager(log,
		chrome.NewLoader(chrome.DefaultPaths(runtime.GOOS)...),
		firefox.NewLoader(firefox.DefaultRoots(runtime.GOOS)...),
	)
}

// All returns the bookmarks of every source. A failing source contributes
// nothing and does not affect the others.
func (m *Manager) All(ctx context.Context) []domain.ImportedBookmark {
	out := []domain.ImportedBookmark{}
	for _, l := range m.loaders {
		bookmarks, err := l.Load(ctx)
		switch {
		case errors.Is(err, domain.ErrSourceUnavailable):
			m.log.Debug("bookmark source not found", logger.String("source", l.Name()))
			continue
		case err != nil:
			m.log.Error("failed to read bookmarks", logger.String("source", l.Name()), logger.Error(err))
			continue
		}
		m.log.Info("bookmarks read", logger.String("source", l.Name()), logger.Int("count", len(bookmarks)))
		out = append(out, bookmarks...)
	}
	return out
}

// Import saves each selected bookmark as "<name> (<source>)". Entries the
// saver rejects, duplicates included, are counted as skipped.
func (m *Manager) Import(urls Saver, selection []domain.ImportedBookmark) ImportResult {
	var res ImportResult
	for _, b := range selection {
		if _, err := urls.Save(b.DisplayName(), b.URL, ""); err != nil {
			m.log.Debug("bookmark not imported", logger.String("name", b.DisplayName()), logger.Error(err))
			res.Skipped++
			continue
		}
		res.Imported++
	}
	m.log.Info("bookmarks imported", logger.Int("imported", res.Imported), logger.Int("skipped", res.Skipped))
	return res
}
