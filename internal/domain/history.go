package domain

import "strings"

// UnknownBrowser labels history entries recorded without a browser name.
const UnknownBrowser = "Unknown"

// HistoryEntry is an automatically recorded visit, keyed by URL.
type HistoryEntry struct {
	URL         string  `json:"url"`
	Title       string  `json:"title"`
	Browser     string  `json:"browser"`
	Timestamp   float64 `json:"timestamp"` // epoch seconds
	Date        string  `json:"date"`      // 2006-01-02 15:04:05
	AccessCount int     `json:"access_count"`
}

// Matches reports whether query is a case-insensitive substring of the
// url or title.
func (h HistoryEntry) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(h.URL), q) ||
		strings.Contains(strings.ToLower(h.Title), q)
}
