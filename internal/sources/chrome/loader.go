// Package chrome reads bookmarks from Chrome and Chromium profiles.
package chrome

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MrSnakeDoc/launchpad/internal/domain"
)

// Source labels bookmarks read by this package.
const Source = "Chrome"

// Loader handles loading of a Chrome Bookmarks file
type Loader struct {
	candidates []string
}

// NewLoader creates a Loader reading the first existing file of candidates.
func NewLoader(candidates ...string) *Loader {
	return &Loader{candidates: candidates}
}

// DefaultPaths lists the Bookmarks files of the default profiles on goos.
func DefaultPaths(goos string) []string {
	home, _ := os.UserHomeDir()
	switch goos {
	case "windows":
		return []string{
			filepath.Join(os.Getenv("LOCALAPPDATA"), "Google", "Chrome", "User Data", "Default", "Bookmarks"),
			filepath.Join(os.Getenv("APPDATA"), "Google", "Chrome", "User Data", "Default", "Bookmarks"),
		}
	case "linux":
		return []string{
			filepath.Join(home, ".config", "google-chrome", "Default", "Bookmarks"),
			filepath.Join(home, ".config", "chromium", "Default", "Bookmarks"),
		}
	case "darwin":
		return []string{
			filepath.Join(home, "Library", "Application Support", "Google", "Chrome", "Default", "Bookmarks"),
			filepath.Join(home, "Library", "Application Support", "Chromium", "Default", "Bookmarks"),
		}
	}
	return nil
}

// Name implements sources.Loader.
func (l *Loader) Name() string { return Source }

// Path returns the first candidate that exists, or "".
func (l *Loader) Path() string {
	for _, p := range l.candidates {
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p
		}
	}
	return ""
}

// Load reads and flattens the bookmark bar and other bookmarks.
func (l *Loader) Load(_ context.Context) ([]domain.ImportedBookmark, error) {
	path := l.Path()
	if path == "" {
		return nil, fmt.Errorf("chrome bookmarks: %w", domain.ErrSourceUnavailable)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("chrome bookmarks: %w", domain.ErrSourceUnavailable)
		}
		return nil, fmt.Errorf("failed to read chrome bookmarks: %w", err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse chrome bookmarks: %w", err)
	}

	out := []domain.ImportedBookmark{}
	for _, root := range importedRoots {
		if n := f.Roots[root]; n != nil {
			out = append(out, walk(n)...)
		}
	}
	return out, nil
}

// walk flattens the url nodes under root in document order.
func walk(root *Node) []domain.ImportedBookmark {
	var out []domain.ImportedBookmark
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == nil {
			continue
		}
		switch n.Type {
		case nodeURL:
			out = append(out, domain.ImportedBookmark{Name: n.Name, URL: n.URL, Source: Source})
		case nodeFolder:
			for i := len(n.Children) - 1; i >= 0; i-- {
				stack = append(stack, n.Children[i])
			}
		}
	}
	return out
}
