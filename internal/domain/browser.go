package domain

// DefaultIcon is used when a browser has no icon file on disk.
const DefaultIcon = "DefaultProgram.png"

// BrowserInfo describes an installed browser found by live probing.
// It is never persisted.
type BrowserInfo struct {
	Name        string `json:"name"`
	Executable  string `json:"executable"` // absolute, resolved path
	Description string `json:"description"`
	Icon        string `json:"icon"`

	// Args are placed before the URL on launch. Only the custom browser has them.
	Args []string `json:"args,omitempty"`
}

// ImportedBookmark is one entry read from a desktop browser's native store.
type ImportedBookmark struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Source string `json:"source"` // "Chrome" or "Firefox"
}

// DisplayName is the SavedURL name given to an imported bookmark.
func (b ImportedBookmark) DisplayName() string {
	return b.Name + " (" + b.Source + ")"
}
