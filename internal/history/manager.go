// Package history records visited URLs in history.json, most recent first.
package history

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"time"

	"github.com/MrSnakeDoc/launchpad/internal/domain"
	"github.com/MrSnakeDoc/launchpad/internal/logger"
	"github.com/MrSnakeDoc/launchpad/internal/utils"
)

const (
	DefaultMaxEntries    = 100
	DefaultRetentionDays = 30
	DefaultRecentLimit   = 20
	DefaultTopLimit      = 10
)

// Policy is the user controlled part of the history behaviour.
type Policy struct {
	Enabled       bool
	MaxEntries    int // <= 0 disables truncation
	RetentionDays int // <= 0 disables age based purging
}

// Options configures a Manager. When PolicyFunc is set it is called on
// every operation and Enabled, MaxEntries and RetentionDays are ignored.
type Options struct {
	Path          string
	Enabled       bool
	MaxEntries    int
	RetentionDays int
	PolicyFunc    func() Policy
	Now           func() time.Time
}

// Manager is the HistoryManager. It is not safe for concurrent use.
type Manager struct {
	opts Options
	log  logger.Logger
}

// Stats aggregates the history.
type Stats struct {
	TotalEntries     int     `json:"total_entries"`
	TotalVisits      int     `json:"total_visits"`
	MostVisitedURL   *string `json:"most_visited_url"`
	MostVisitedCount int     `json:"most_visited_count"`
	MostUsedBrowser  *string `json:"most_used_browser"`
	OldestEntry      *string `json:"oldest_entry"`
	NewestEntry      *string `json:"newest_entry"`
}

// New creates a Manager.
func New(opts Options, log logger.Logger) *Manager {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Manager{opts: opts, log: log}
}

func (m *Manager) policy() Policy {
	if m.opts.PolicyFunc != nil {
		return m.opts.PolicyFunc()
	}
	return Policy{Enabled: m.opts.Enabled, MaxEntries: m.opts.MaxEntries, RetentionDays: m.opts.RetentionDays}
}

// Enabled reports whether Add records anything.
func (m *Manager) Enabled() bool { return m.policy().Enabled }

// Path returns history.json.
func (m *Manager) Path() string { return m.opts.Path }

// Load returns the stored entries. Missing or unreadable files degrade to
// an empty history.
func (m *Manager) Load() []domain.HistoryEntry {
	var entries []domain.HistoryEntry
	if err := utils.ReadJSONFile(m.opts.Path, &entries); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			m.log.Error("failed to load history", logger.String("path", m.opts.Path), logger.Error(err))
		}
		return []domain.HistoryEntry{}
	}
	if entries == nil {
		return []domain.HistoryEntry{}
	}
	return entries
}

func (m *Manager) save(entries []domain.HistoryEntry) error {
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	if err := utils.WriteJSONFile(m.opts.Path, entries); err != nil {
		m.log.Error("failed to save history", logger.String("path", m.opts.Path), logger.Error(err))
		return err
	}
	return nil
}

// Add records a visit. It is a no-op when history is disabled.
//
// A URL already present is updated where it stands: access_count grows by
// one and timestamp, date and browser are refreshed, but the entry is not
// moved. A new URL goes to the front. Retention purge and truncation run
// afterwards.
func (m *Manager) Add(url, title, browser string) error {
	p := m.policy()
	if !p.Enabled {
		m.log.Debug("history disabled, visit not recorded", logger.String("url", url))
		return nil
	}
	if title == "" {
		title = url
	}
	if browser == "" {
		browser = domain.UnknownBrowser
	}

	now := m.opts.Now()
	ts := float64(now.UnixNano()) / float64(time.Second)
	date := utils.HistoryDate(now)

	entries := m.Load()

	found := false
	for i := range entries {
		if entries[i].URL == url {
			entries[i].Timestamp = ts
			entries[i].Date = date
			entries[i].Browser = browser
			entries[i].AccessCount++
			found = true
			break
		}
	}
	if !found {
		entry := domain.HistoryEntry{
			URL:         url,
			Title:       title,
			Browser:     browser,
			Timestamp:   ts,
			Date:        date,
			AccessCount: 1,
		}
		entries = append([]domain.HistoryEntry{entry}, entries...)
	}

	entries = trim(entries, p, now)

	if err := m.save(entries); err != nil {
		return err
	}
	m.log.Debug("history entry recorded", logger.String("url", url), logger.Bool("existing", found))
	return nil
}

// Prune applies the retention window and the size limit without recording
// a visit. It returns how many entries were dropped.
func (m *Manager) Prune() (int, error) {
	entries := m.Load()
	kept := trim(entries, m.policy(), m.opts.Now())
	removed := len(entries) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := m.save(kept); err != nil {
		return 0, err
	}
	m.log.Info("history pruned", logger.Int("removed", removed))
	return removed, nil
}

// trim drops entries at or beyond the retention window, then keeps the
// first MaxEntries.
func trim(entries []domain.HistoryEntry, p Policy, now time.Time) []domain.HistoryEntry {
	if p.RetentionDays > 0 {
		cutoff := float64(now.Add(-time.Duration(p.RetentionDays)*24*time.Hour).UnixNano()) / float64(time.Second)
		kept := entries[:0]
		for _, e := range entries {
			if e.Timestamp > cutoff {
				kept = append(kept, e)
			}
		}
		entries = kept
	}
	if p.MaxEntries > 0 && len(entries) > p.MaxEntries {
		entries = entries[:p.MaxEntries]
	}
	return entries
}

// Recent returns the first limit entries in stored order.
func (m *Manager) Recent(limit int) []domain.HistoryEntry {
	return head(m.Load(), limit)
}

// MostVisited returns entries by access_count, highest first. Ties keep
// their stored order.
func (m *Manager) MostVisited(limit int) []domain.HistoryEntry {
	entries := m.Load()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].AccessCount > entries[j].AccessCount
	})
	return head(entries, limit)
}

// Search returns entries whose url or title contain query.
func (m *Manager) Search(query string) []domain.HistoryEntry {
	out := []domain.HistoryEntry{}
	for _, e := range m.Load() {
		if e.Matches(query) {
			out = append(out, e)
		}
	}
	return out
}

// Remove deletes the entry for url.
func (m *Manager) Remove(url string) error {
	entries := m.Load()
	kept := make([]domain.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		if e.URL != url {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return fmt.Errorf("history entry %s: %w", url, domain.ErrNotFound)
	}
	if err := m.save(kept); err != nil {
		return err
	}
	m.log.Info("history entry removed", logger.String("url", url))
	return nil
}

// Clear deletes history.json.
func (m *Manager) Clear() error {
	if err := os.Remove(m.opts.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		m.log.Error("failed to clear history", logger.Error(err))
		return fmt.Errorf("failed to clear history: %w", err)
	}
	m.log.Info("history cleared")
	return nil
}

// Stats scans the history once. An empty history yields zero counts and
// nil fields.
func (m *Manager) Stats() Stats {
	entries := m.Load()
	stats := Stats{TotalEntries: len(entries)}
	if len(entries) == 0 {
		return stats
	}

	mostVisited, oldest, newest := 0, 0, 0
	perBrowser := map[string]int{}
	var browsers []string

	for i, e := range entries {
		stats.TotalVisits += e.AccessCount
		if e.AccessCount > entries[mostVisited].AccessCount {
			mostVisited = i
		}
		if e.Timestamp < entries[oldest].Timestamp {
			oldest = i
		}
		if e.Timestamp > entries[newest].Timestamp {
			newest = i
		}
		if _, seen := perBrowser[e.Browser]; !seen {
			browsers = append(browsers, e.Browser)
		}
		perBrowser[e.Browser] += e.AccessCount
	}

	topBrowser := browsers[0]
	for _, b := range browsers[1:] {
		if perBrowser[b] > perBrowser[topBrowser] {
			topBrowser = b
		}
	}

	stats.MostVisitedURL = &entries[mostVisited].URL
	stats.MostVisitedCount = entries[mostVisited].AccessCount
	stats.MostUsedBrowser = &topBrowser
	stats.OldestEntry = &entries[oldest].Date
	stats.NewestEntry = &entries[newest].Date
	return stats
}

// Export writes the history as a bare JSON array to path.
func (m *Manager) Export(path string) error {
	if err := utils.WriteJSONFile(path, m.Load()); err != nil {
		m.log.Error("failed to export history", logger.String("path", path), logger.Error(err))
		return err
	}
	return nil
}

func head[T any](list []T, limit int) []T {
	if limit > 0 && len(list) > limit {
		return list[:limit]
	}
	return list
}
