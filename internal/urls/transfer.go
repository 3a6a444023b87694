package urls

import (
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/launchpad/internal/domain"
	"github.com/MrSnakeDoc/launchpad/internal/logger"
	"github.com/MrSnakeDoc/launchpad/internal/utils"
)

// exportDocument is written by Export. Import reads only its urls key, so
// both this layout and saved_urls.json itself are accepted.
type exportDocument struct {
	ExportDate   string            `json:"export_date"`
	AddonVersion string            `json:"addon_version"`
	URLs         []domain.SavedURL `json:"urls"`
}

// ImportResult reports what Import did.
type ImportResult struct {
	Total    int `json:"total"`    // entries found in the file
	Imported int `json:"imported"` // entries written
	Skipped  int `json:"skipped"`  // entries dropped because the name existed
}

// Stats aggregates the collection.
type Stats struct {
	TotalURLs       int              `json:"total_urls"`
	TotalAccesses   int              `json:"total_accesses"`
	MostAccessed    *domain.SavedURL `json:"most_accessed"`
	MostRecent      *domain.SavedURL `json:"most_recent"`
	AverageAccesses float64          `json:"average_accesses"`
}

// Export writes the collection to path.
func (m *Manager) Export(path string) error {
	doc := exportDocument{
		ExportDate:   m.stamp(),
		AddonVersion: m.addonVersion,
		URLs:         m.load(),
	}
	if err := utils.WriteJSONFile(path, doc); err != nil {
		m.log.Error("failed to export urls", logger.String("path", path), logger.Error(err))
		return err
	}
	m.log.Info("urls exported", logger.String("path", path), logger.Int("count", len(doc.URLs)))
	return nil
}

// Import reads the urls of the document at path.
//
// With merge, entries whose name already exists (case-insensitive) are
// skipped and the others get fresh ids. Without merge the collection is
// replaced verbatim.
func (m *Manager) Import(path string, merge bool) (ImportResult, error) {
	var doc exportDocument
	if err := utils.ReadJSONFile(path, &doc); err != nil {
		m.log.Error("failed to import urls", logger.String("path", path), logger.Error(err))
		return ImportResult{}, err
	}

	result := ImportResult{Total: len(doc.URLs)}

	if !merge {
		if err := m.Replace(doc.URLs); err != nil {
			return ImportResult{}, err
		}
		result.Imported = len(doc.URLs)
		return result, nil
	}

	list := m.load()
	names := make(map[string]struct{}, len(list)+len(doc.URLs))
	for _, u := range list {
		names[strings.ToLower(u.Name)] = struct{}{}
	}

	for _, u := range doc.URLs {
		key := strings.ToLower(u.Name)
		if _, taken := names[key]; taken {
			result.Skipped++
			continue
		}
		names[key] = struct{}{}
		u.ID = m.newID()
		list = append(list, u)
		result.Imported++
	}

	if err := m.store(list); err != nil {
		return ImportResult{}, err
	}
	m.log.Info("urls imported",
		logger.String("path", path),
		logger.Int("imported", result.Imported),
		logger.Int("skipped", result.Skipped))
	return result, nil
}

// Replace overwrites the collection with list as-is.
func (m *Manager) Replace(list []domain.SavedURL) error {
	return m.store(list)
}

// Stats computes the collection statistics. Average is 0 when empty.
func (m *Manager) Stats() Stats {
	list := m.load()
	stats := Stats{TotalURLs: len(list)}
	if len(list) == 0 {
		return stats
	}

	mostAccessed, mostRecent := 0, 0
	for i, u := range list {
		stats.TotalAccesses += u.AccessCount
		if u.AccessCount > list[mostAccessed].AccessCount {
			mostAccessed = i
		}
		if u.CreatedDate > list[mostRecent].CreatedDate {
			mostRecent = i
		}
	}

	stats.MostAccessed = &list[mostAccessed]
	stats.MostRecent = &list[mostRecent]
	stats.AverageAccesses = float64(stats.TotalAccesses) / float64(len(list))
	return stats
}

// String renders an ImportResult for logs and CLI output.
func (r ImportResult) String() string {
	return fmt.Sprintf("%d of %d imported, %d skipped", r.Imported, r.Total, r.Skipped)
}
