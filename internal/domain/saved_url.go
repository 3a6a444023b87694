package domain

import "strings"

// SavedURL is a user-created bookmark with a stable identity.
//
// Its Name is unique across the collection (case-insensitive). Timestamps
// are fixed-width local ISO-8601 strings, so lexical order is time order.
type SavedURL struct {
	// ─────────────────────────────
	// Identity
	// ─────────────────────────────

	// ID is an opaque unique identifier (uuid v4).
	ID string `json:"id"`

	// Name is the user facing label.
	Name string `json:"name"`

	// ─────────────────────────────
	// Content
	// ─────────────────────────────

	URL         string `json:"url"`
	Description string `json:"description"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	CreatedDate string `json:"created_date"`

	// ModifiedDate is set by the first update and refreshed by later ones.
	ModifiedDate *string `json:"modified_date,omitempty"`

	// ─────────────────────────────
	// Usage
	// ─────────────────────────────

	AccessCount  int     `json:"access_count"`
	LastAccessed *string `json:"last_accessed"`
}

// SameName reports whether name matches the entry name, ignoring case.
func (u SavedURL) SameName(name string) bool {
	return strings.EqualFold(u.Name, name)
}

// Matches reports whether query is a case-insensitive substring of the
// name, url or description.
func (u SavedURL) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(u.Name), q) ||
		strings.Contains(strings.ToLower(u.URL), q) ||
		strings.Contains(strings.ToLower(u.Description), q)
}

// URLPatch carries the fields of an update. Nil fields are left untouched.
type URLPatch struct {
	Name        *string
	URL         *string
	Description *string
}

// IsEmpty is true when the patch changes nothing.
func (p URLPatch) IsEmpty() bool {
	return p.Name == nil && p.URL == nil && p.Description == nil
}
