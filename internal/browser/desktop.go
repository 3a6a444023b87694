package browser

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/MrSnakeDoc/launchpad/internal/domain"
	"github.com/MrSnakeDoc/launchpad/internal/logger"
)

var (
	browserKeywords = []string{"browser", "web browser", "internet", "chrome", "firefox", "opera", "safari", "edge"}
	excludeKeywords = []string{"connector", "extension", "plugin", "helper", "manager", "settings", "preferences"}
)

func defaultDesktopDirs() []string {
	dirs := []string{"/usr/share/applications", "/usr/local/share/applications"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local", "share", "applications"))
	}
	return dirs
}

// scanDesktopEntries appends browsers declared by .desktop files whose
// executable is not already in found.
func (d *Detector) scanDesktopEntries(ctx context.Context, found []domain.BrowserInfo) []domain.BrowserInfo {
	seen := make(map[string]struct{}, len(found))
	for _, b := range found {
		seen[b.Executable] = struct{}{}
	}

	for _, dir := range d.opts.DesktopDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".desktop") {
				continue
			}
			b, ok := d.parseDesktopEntry(ctx, filepath.Join(dir, e.Name()))
			if !ok {
				continue
			}
			if _, dup := seen[b.Executable]; dup {
				continue
			}
			seen[b.Executable] = struct{}{}
			found = append(found, b)
		}
	}
	return found
}

// parseDesktopEntry reads the [Desktop Entry] group of path and reports
// whether it describes a runnable browser.
func (d *Detector) parseDesktopEntry(ctx context.Context, path string) (domain.BrowserInfo, bool) {
	f, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
	}, path)
	if err != nil {
		d.log.Debug("unreadable desktop entry", logger.String("path", path), logger.Error(err))
		return domain.BrowserInfo{}, false
	}

	sec := f.Section("Desktop Entry")
	name := strings.TrimSpace(sec.Key("Name").String())
	execLine := strings.TrimSpace(sec.Key("Exec").String())
	if name == "" || execLine == "" || !LooksLikeBrowser(name) {
		return domain.BrowserInfo{}, false
	}

	exe := execTarget(execLine)
	if exe == "" {
		return domain.BrowserInfo{}, false
	}
	if !filepath.IsAbs(exe) {
		exe = d.lookup(ctx, exe)
	}
	if exe == "" || !isExecutable(exe) {
		return domain.BrowserInfo{}, false
	}

	desc := strings.TrimSpace(sec.Key("Comment").String())
	if desc == "" {
		desc = "Web browser " + name
	}
	return domain.BrowserInfo{
		Name:        name,
		Executable:  exe,
		Description: desc,
		Icon:        domain.DefaultIcon,
	}, true
}

// LooksLikeBrowser reports whether a desktop entry name contains a browser
// keyword and no exclusion keyword.
func LooksLikeBrowser(name string) bool {
	lower := strings.ToLower(name)
	for _, k := range excludeKeywords {
		if strings.Contains(lower, k) {
			return false
		}
	}
	for _, k := range browserKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// execTarget returns the program of an Exec line, skipping an env prefix.
func execTarget(line string) string {
	fields := strings.Fields(line)
	if len(fields) > 0 && filepath.Base(fields[0]) == "env" {
		fields = fields[1:]
		for len(fields) > 0 && strings.Contains(fields[0], "=") {
			fields = fields[1:]
		}
	}
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[0], `"'`)
}
