// Package firefox reads bookmarks from the places.sqlite database of a
// Firefox profile.
package firefox

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/MrSnakeDoc/launchpad/internal/domain"
	"github.com/MrSnakeDoc/launchpad/internal/utils"
)

// Source labels bookmarks read by this package.
const Source = "Firefox"

const placesFile = "places.sqlite"

// type 1 rows are bookmarks; place: urls are smart folders and queries.
const bookmarksQuery = `
SELECT moz_bookmarks.title, moz_places.url
FROM moz_bookmarks
INNER JOIN moz_places ON moz_bookmarks.fk = moz_places.id
WHERE moz_bookmarks.type = 1 AND moz_places.url IS NOT NULL
AND moz_places.url NOT LIKE 'place:%'`

// Loader handles loading of Firefox bookmarks
type Loader struct {
	roots   []string // directories holding profile folders
	tempDir string   // where the database copy is made, "" for os.TempDir
}

// NewLoader creates a Loader searching the profile directories under roots.
func NewLoader(roots ...string) *Loader {
	return &Loader{roots: roots}
}

// WithTempDir places the temporary database copy in dir.
func (l *Loader) WithTempDir(dir string) *Loader {
	l.tempDir = dir
	return l
}

// DefaultRoots lists the directories holding Firefox profiles on goos.
func DefaultRoots(goos string) []string {
	home, _ := os.UserHomeDir()
	switch goos {
	case "windows":
		return []string{filepath.Join(os.Getenv("APPDATA"), "Mozilla", "Firefox", "Profiles")}
	case "linux":
		return []string{filepath.Join(home, ".mozilla", "firefox")}
	case "darwin":
		return []string{filepath.Join(home, "Library", "Application Support", "Firefox", "Profiles")}
	}
	return nil
}

// Name implements sources.Loader.
func (l *Loader) Name() string { return Source }

// Path returns places.sqlite of the first default profile found, or "".
func (l *Loader) Path() string {
	for _, root := range l.roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !e.IsDir() || !isDefaultProfile(e.Name()) {
				continue
			}
			p := filepath.Join(root, e.Name(), placesFile)
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}
	return ""
}

func isDefaultProfile(name string) bool {
	return strings.HasSuffix(name, ".default") || strings.HasSuffix(name, ".default-release")
}

// Load queries a temporary copy of places.sqlite, so a running Firefox
// holding the lock does not block the read. Rows with an empty title or
// url are skipped.
func (l *Loader) Load(ctx context.Context) ([]domain.ImportedBookmark, error) {
	path := l.Path()
	if path == "" {
		return nil, fmt.Errorf("firefox bookmarks: %w", domain.ErrSourceUnavailable)
	}

	tmp, err := copyToTemp(path, l.tempDir)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp)

	db, err := sql.Open("sqlite", tmp)
	if err != nil {
		return nil, fmt.Errorf("failed to open firefox bookmarks: %w", err)
	}
	defer utils.Close(db)

	rows, err := db.QueryContext(ctx, bookmarksQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query firefox bookmarks: %w", err)
	}
	defer utils.Close(rows)

	out := []domain.ImportedBookmark{}
	for rows.Next() {
		var title, url sql.NullString
		if err := rows.Scan(&title, &url); err != nil {
			return nil, fmt.Errorf("failed to scan firefox bookmark: %w", err)
		}
		if title.String == "" || url.String == "" {
			continue
		}
		out = append(out, domain.ImportedBookmark{Name: title.String, URL: url.String, Source: Source})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read firefox bookmarks: %w", err)
	}
	return out, nil
}

func copyToTemp(src, dir string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("failed to open firefox bookmarks: %w", err)
	}
	defer utils.Close(in)

	out, err := os.CreateTemp(dir, "places-*.sqlite")
	if err != nil {
		return "", fmt.Errorf("failed to create temp copy: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		utils.Close(out)
		_ = os.Remove(out.Name())
		return "", fmt.Errorf("failed to copy firefox bookmarks: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(out.Name())
		return "", fmt.Errorf("failed to copy firefox bookmarks: %w", err)
	}
	return out.Name(), nil
}
