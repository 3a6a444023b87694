// Package launcher opens URLs in browsers and records the visits.
package launcher

import (
	"context"
	"fmt"
	"strings"

	"github.com/skratchdot/open-golang/open"

	"github.com/MrSnakeDoc/launchpad/internal/browser"
	"github.com/MrSnakeDoc/launchpad/internal/domain"
	"github.com/MrSnakeDoc/launchpad/internal/logger"
	"github.com/MrSnakeDoc/launchpad/internal/metrics"
	"github.com/MrSnakeDoc/launchpad/internal/utils"
)

// SystemDefault names the OS URL handler used when no browser is detected.
const SystemDefault = "System default"

// Browsers lists installed browsers and the OS default.
type Browsers interface {
	Installed(ctx context.Context) []domain.BrowserInfo
	DefaultBrowser(ctx context.Context) string
}

// SavedURLs is the part of the URL manager used to open saved entries.
type SavedURLs interface {
	Get(id string) (domain.SavedURL, error)
	IncrementAccess(id string) error
}

// History records visits.
type History interface {
	Add(url, title, browser string) error
}

// URLRules controls how typed URLs are normalised.
type URLRules struct {
	AutoAddHTTP  bool
	ValidateURLs bool
}

// Options configures a Launcher. Launch and OpenURL default to
// browser.Launch and the OS URL handler. RulesFunc, when set, replaces
// AutoAddHTTP and ValidateURLs and is read on every NormalizeURL.
type Options struct {
	AutoAddHTTP  bool
	ValidateURLs bool
	RulesFunc    func() URLRules
	Launch       func(exe, url string, args ...string) error
	OpenURL      func(url string) error
}

// Launcher is the action layer behind the CLI and the API.
type Launcher struct {
	opts     Options
	browsers Browsers
	urls     SavedURLs
	history  History
	metrics  *metrics.Metrics
	log      logger.Logger
}

// New creates a Launcher. m may be nil.
func New(opts Options, browsers Browsers, urls SavedURLs, history History, m *metrics.Metrics, log logger.Logger) *Launcher {
	if opts.Launch == nil {
		opts.Launch = browser.Launch
	}
	if opts.OpenURL == nil {
		opts.OpenURL = open.Start
	}
	return &Launcher{
		opts:     opts,
		browsers: browsers,
		urls:     urls,
		history:  history,
		metrics:  m,
		log:      log,
	}
}

// start launches exe and returns the name it is known under.
func (l *Launcher) start(ctx context.Context, kind, exe, url string) (string, error) {
	installed := l.browsers.Installed(ctx)
	var args []string
	for _, b := range installed {
		if b.Executable == exe {
			args = b.Args
			break
		}
	}

	err := l.opts.Launch(exe, url, args...)
	l.metrics.RecordLaunch(kind, err)
	if err != nil {
		l.log.Error("failed to launch browser", logger.String("executable", exe), logger.Error(err))
		return "", err
	}
	name := browser.NameFor(installed, exe)
	l.log.Info("browser launched", logger.String("browser", name), logger.String("url", url))
	return name, nil
}

func (l *Launcher) record(url, title, browserName string) {
	if url == "" || l.history == nil {
		return
	}
	if err := l.history.Add(url, title, browserName); err != nil {
		l.log.Warn("failed to record history", logger.String("url", url), logger.Error(err))
	}
}

// Open launches exe with url, which may be empty, and records the visit.
func (l *Launcher) Open(ctx context.Context, exe, url string) error {
	name, err := l.start(ctx, metrics.LaunchDirect, exe, url)
	if err != nil {
		return err
	}
	l.record(url, "", name)
	return nil
}

// OpenSaved launches exe with the saved URL id, bumps its access count and
// records the visit under the saved name.
func (l *Launcher) OpenSaved(ctx context.Context, id, exe string) (domain.SavedURL, error) {
	u, err := l.urls.Get(id)
	if err != nil {
		return domain.SavedURL{}, err
	}
	name, err := l.start(ctx, metrics.LaunchSaved, exe, u.URL)
	if err != nil {
		return u, err
	}
	if err := l.urls.IncrementAccess(id); err != nil {
		l.log.Warn("failed to update access count", logger.String("id", id), logger.Error(err))
	}
	l.record(u.URL, u.Name, name)
	return u, nil
}

// OpenDefault opens url with the OS default browser when it was detected,
// else with the first detected browser, else through the OS URL handler.
// It returns the browser used.
func (l *Launcher) OpenDefault(ctx context.Context, url string) (domain.BrowserInfo, error) {
	installed := l.browsers.Installed(ctx)

	target, ok := browser.MatchDefault(installed, l.browsers.DefaultBrowser(ctx))
	if !ok && len(installed) > 0 {
		target, ok = installed[0], true
	}

	if !ok {
		err := l.opts.OpenURL(url)
		l.metrics.RecordLaunch(metrics.LaunchDefault, err)
		if err != nil {
			l.log.Error("failed to open url with system handler", logger.String("url", url), logger.Error(err))
			return domain.BrowserInfo{}, fmt.Errorf("%w: %v", domain.ErrLaunchFailed, err)
		}
		l.record(url, "", domain.UnknownBrowser)
		return domain.BrowserInfo{Name: SystemDefault, Icon: domain.DefaultIcon}, nil
	}

	err := l.opts.Launch(target.Executable, url, target.Args...)
	l.metrics.RecordLaunch(metrics.LaunchDefault, err)
	if err != nil {
		l.log.Error("failed to launch default browser", logger.String("browser", target.Name), logger.Error(err))
		return target, err
	}
	l.record(url, "", target.Name)
	return target, nil
}

// NormalizeURL applies the auto_add_http and enable_url_validation
// preferences to raw.
func (l *Launcher) NormalizeURL(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("%w: empty", domain.ErrInvalidURL)
	}
	rules := URLRules{AutoAddHTTP: l.opts.AutoAddHTTP, ValidateURLs: l.opts.ValidateURLs}
	if l.opts.RulesFunc != nil {
		rules = l.opts.RulesFunc()
	}
	if rules.AutoAddHTTP {
		s = utils.EnsureScheme(s)
	}
	if rules.ValidateURLs {
		if _, err := utils.ValidateURL(s); err != nil {
			return "", err
		}
	}
	return s, nil
}

// OpenCustom normalizes a URL typed by the user and opens it with exe.
func (l *Launcher) OpenCustom(ctx context.Context, raw, exe string) (string, error) {
	url, err := l.NormalizeURL(raw)
	if err != nil {
		l.metrics.RecordLaunch(metrics.LaunchCustom, err)
		return "", err
	}
	name, err := l.start(ctx, metrics.LaunchCustom, exe, url)
	if err != nil {
		return url, err
	}
	l.record(url, "", name)
	return url, nil
}
