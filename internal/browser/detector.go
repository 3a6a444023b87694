// Package browser finds installed web browsers and launches them.
//
// Nothing is cached: every call to Installed probes the filesystem again.
package browser

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/MrSnakeDoc/launchpad/internal/domain"
	"github.com/MrSnakeDoc/launchpad/internal/logger"
)

const defaultLookupTimeout = 5 * time.Second

// Custom is the user configured browser appended to the detected list.
type Custom struct {
	Name string
	Path string
	Args string // whitespace separated, passed before the URL
}

// Options configures a Detector. Zero values pick the host defaults.
type Options struct {
	GOOS          string
	Table         Table
	AssetsDir     string   // directory holding the browser icons
	DesktopDirs   []string // desktop entry directories scanned on linux
	LookupTimeout time.Duration
	Custom        *Custom
	CustomFunc    func() *Custom // read on every Installed call, replaces Custom
}

// Detector is the BrowserDetector.
type Detector struct {
	opts     Options
	lookPath func(string) (string, error)
	log      logger.Logger
}

// NewDetector creates a Detector.
func NewDetector(opts Options, log logger.Logger) *Detector {
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	if opts.LookupTimeout <= 0 {
		opts.LookupTimeout = defaultLookupTimeout
	}
	if opts.DesktopDirs == nil {
		opts.DesktopDirs = defaultDesktopDirs()
	}
	return &Detector{
		opts:     opts,
		lookPath: exec.LookPath,
		log:      log,
	}
}

// Installed returns the browsers found on this machine: table rows first,
// in table order, then desktop entries, then the custom browser.
func (d *Detector) Installed(ctx context.Context) []domain.BrowserInfo {
	var found []domain.BrowserInfo

	for _, c := range d.opts.Table.ForOS(d.opts.GOOS) {
		exe := d.resolve(ctx, c)
		if exe == "" {
			continue
		}
		found = append(found, domain.BrowserInfo{
			Name:        c.Name,
			Executable:  exe,
			Description: c.Description,
			Icon:        d.iconPath(c.Icon),
		})
	}

	if d.opts.GOOS == "linux" {
		found = d.scanDesktopEntries(ctx, found)
	}

	if b, ok := d.custom(); ok {
		found = append(found, b)
	}

	d.log.Info("browsers detected", logger.Int("count", len(found)))
	return found
}

// resolve returns the first runnable candidate path, then falls back to a
// PATH lookup outside windows. "" means not installed.
func (d *Detector) resolve(ctx context.Context, c Candidate) string {
	for _, p := range c.Paths {
		if d.opts.GOOS == "windows" {
			p = ExpandWindowsVars(p)
		}
		if isExecutable(p) {
			d.log.Debug("browser found", logger.String("name", c.Name), logger.String("path", p))
			return p
		}
	}
	if d.opts.GOOS == "windows" || c.Executable == "" {
		return ""
	}
	if p := d.lookup(ctx, c.Executable); p != "" {
		d.log.Debug("browser found on PATH", logger.String("name", c.Name), logger.String("path", p))
		return p
	}
	return ""
}

// lookup resolves name on PATH within LookupTimeout.
func (d *Detector) lookup(ctx context.Context, name string) string {
	ctx, cancel := context.WithTimeout(ctx, d.opts.LookupTimeout)
	defer cancel()

	ch := make(chan string, 1)
	go func() {
		p, err := d.lookPath(name)
		if err != nil {
			p = ""
		}
		if p != "" && !filepath.IsAbs(p) {
			if abs, err := filepath.Abs(p); err == nil {
				p = abs
			}
		}
		ch <- p
	}()

	select {
	case p := <-ch:
		return p
	case <-ctx.Done():
		d.log.Warn("PATH lookup timed out", logger.String("executable", name))
		return ""
	}
}

func (d *Detector) iconPath(icon string) string {
	if icon == "" {
		return domain.DefaultIcon
	}
	p := filepath.Join(d.opts.AssetsDir, icon)
	if _, err := os.Stat(p); err != nil {
		d.log.Debug("icon not found, using default", logger.String("path", p))
		return domain.DefaultIcon
	}
	return p
}

func (d *Detector) custom() (domain.BrowserInfo, bool) {
	c := d.opts.Custom
	if d.opts.CustomFunc != nil {
		c = d.opts.CustomFunc()
	}
	if c == nil || c.Path == "" {
		return domain.BrowserInfo{}, false
	}
	if !isExecutable(c.Path) {
		d.log.Warn("custom browser is not runnable", logger.String("path", c.Path))
		return domain.BrowserInfo{}, false
	}
	name := c.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(c.Path), filepath.Ext(c.Path))
	}
	return domain.BrowserInfo{
		Name:        name,
		Executable:  c.Path,
		Description: "Custom browser",
		Icon:        domain.DefaultIcon,
		Args:        strings.Fields(c.Args),
	}, true
}

var windowsVar = regexp.MustCompile(`%([^%]+)%`)

// ExpandWindowsVars replaces %NAME% references with their environment
// value. Unset variables are left as written.
func ExpandWindowsVars(s string) string {
	return windowsVar.ReplaceAllStringFunc(s, func(m string) string {
		if v, ok := os.LookupEnv(m[1 : len(m)-1]); ok {
			return v
		}
		return m
	})
}

// MatchDefault picks the browser that an OS default identifier such as
// "firefox.desktop" or "ChromeHTML" refers to.
func MatchDefault(browsers []domain.BrowserInfo, id string) (domain.BrowserInfo, bool) {
	id = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(id), ".desktop"))
	if id == "" {
		return domain.BrowserInfo{}, false
	}
	for _, b := range browsers {
		base := strings.ToLower(filepath.Base(b.Executable))
		base = strings.TrimSuffix(base, ".exe")
		if base != "" && strings.Contains(id, base) {
			return b, true
		}
	}
	for _, b := range browsers {
		if strings.EqualFold(b.Name, id) {
			return b, true
		}
	}
	return domain.BrowserInfo{}, false
}

// NameFor returns the name of the browser whose executable is exe, or
// domain.UnknownBrowser.
func NameFor(browsers []domain.BrowserInfo, exe string) string {
	for _, b := range browsers {
		if b.Executable == exe {
			return b.Name
		}
	}
	return domain.UnknownBrowser
}
