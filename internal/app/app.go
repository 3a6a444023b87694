// Package app wires the managers shared by the CLI and serve mode.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/launchpad/internal/backup"
	"github.com/MrSnakeDoc/launchpad/internal/browser"
	"github.com/MrSnakeDoc/launchpad/internal/config"
	"github.com/MrSnakeDoc/launchpad/internal/history"
	"github.com/MrSnakeDoc/launchpad/internal/httpserver"
	"github.com/MrSnakeDoc/launchpad/internal/httpserver/deps"
	"github.com/MrSnakeDoc/launchpad/internal/launcher"
	"github.com/MrSnakeDoc/launchpad/internal/logger"
	"github.com/MrSnakeDoc/launchpad/internal/metrics"
	"github.com/MrSnakeDoc/launchpad/internal/redis"
	"github.com/MrSnakeDoc/launchpad/internal/scheduler"
	"github.com/MrSnakeDoc/launchpad/internal/settings"
	"github.com/MrSnakeDoc/launchpad/internal/sources"
	redisstore "github.com/MrSnakeDoc/launchpad/internal/store/redis"
	"github.com/MrSnakeDoc/launchpad/internal/urls"
	"github.com/MrSnakeDoc/launchpad/internal/utils"
	"github.com/MrSnakeDoc/launchpad/internal/version"
)

// Options overrides the parts of the app that touch the desktop.
// Zero values use the real implementations.
type Options struct {
	Browsers launcher.Browsers
	Launch   func(exe, url string, args ...string) error
	OpenURL  func(url string) error
	Sources  *sources.Manager
}

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	redisClient *goredis.Client

	// lock is shared by API requests and background jobs: every manager
	// rewrites whole files.
	lock sync.Mutex

	Settings settings.Store
	URLs     *urls.Manager
	History  *history.Manager
	Browsers launcher.Browsers
	Launcher *launcher.Launcher
	Sources  *sources.Manager
	Backups  *backup.Manager
	Metrics  *metrics.Metrics
}

// New builds every manager from cfg. With the redis settings backend it
// connects first and fails when Redis stays unreachable.
func New(ctx context.Context, cfg *config.Config, loggerClient logger.Logger, opts Options) (*App, error) {
	if err := os.MkdirAll(cfg.ProfileDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create profile directory: %w", err)
	}

	a := &App{cfg: cfg, logger: loggerClient, Metrics: metrics.New()}

	store, err := a.openSettings(ctx)
	if err != nil {
		return nil, err
	}
	a.Settings = store

	a.URLs = urls.New(urls.Options{
		Path:         cfg.SavedURLsFile(),
		AddonVersion: version.Version,
	}, component(loggerClient, "urls"))
	a.History = history.New(history.Options{
		Path: cfg.HistoryFile(),
		PolicyFunc: func() history.Policy {
			p := a.Preferences(context.Background())
			return history.Policy{
				Enabled:       p.EnableHistory,
				MaxEntries:    p.MaxHistoryEntries,
				RetentionDays: p.HistoryRetentionDays,
			}
		},
	}, component(loggerClient, "history"))

	a.Browsers = opts.Browsers
	if a.Browsers == nil {
		a.Browsers = a.newDetector()
	}

	a.Launcher = launcher.New(launcher.Options{
		RulesFunc: func() launcher.URLRules {
			p := a.Preferences(context.Background())
			return launcher.URLRules{AutoAddHTTP: p.AutoAddHTTP, ValidateURLs: p.EnableURLValidation}
		},
		Launch:  opts.Launch,
		OpenURL: opts.OpenURL,
	}, a.Browsers, a.URLs, a.History, a.Metrics, component(loggerClient, "launcher"))

	a.Sources = opts.Sources
	if a.Sources == nil {
		a.Sources = sources.Default(component(loggerClient, "bookmarks"))
	}

	a.Backups = backup.New(backup.Options{
		Dir:          cfg.BackupDir(),
		AddonVersion: version.Version,
		HostVersion:  cfg.HostVersion,
		MaxBackups:   cfg.MaxBackups,
	}, a.URLs, store, component(loggerClient, "backup"))

	return a, nil
}

// openSettings returns the settings store selected by the config.
func (a *App) openSettings(ctx context.Context) (settings.Store, error) {
	local := settings.NewFileStore(a.cfg.SettingsFile())
	if a.cfg.SettingsBackend != config.SettingsBackendRedis {
		return local, nil
	}

	a.logger.Infof("Connecting to Redis at %s", a.cfg.RedisAddr)
	client, err := redis.New(ctx, redis.ConnectOptions{
		Addr:           a.cfg.RedisAddr,
		User:           a.cfg.RedisUser,
		Password:       a.cfg.RedisPassword,
		RedisDB:        a.cfg.RedisDB,
		DialTimeout:    a.cfg.RedisDT,
		ReadTimeout:    a.cfg.RedisRT,
		WriteTimeout:   a.cfg.RedisWT,
		PoolSize:       a.cfg.RedisPoolSize,
		ConnectTimeout: a.cfg.RedisConnectTimeout,
		RetryInterval:  a.cfg.RedisRetryInterval,
		MaxWait:        a.cfg.RedisMaxWait,
		PingTimeout:    a.cfg.RedisPingTimeout,
		WarnThreshold:  a.cfg.RedisWarnThreshold,
	}, a.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	a.redisClient = client

	shared := redisstore.NewSettingsStore(client, a.cfg.RedisNamespace)
	if _, err := scheduler.NewSettingsSyncer(local, shared, a.logger).Sync(ctx); err != nil {
		a.logger.Warn("failed to seed redis settings from local file", logger.Error(err))
	}
	return shared, nil
}

func (a *App) newDetector() *browser.Detector {
	table, err := browser.LoadTable(a.cfg.BrowserTableFile)
	if err != nil {
		a.logger.Error("failed to load extra browser table, using built-in table",
			logger.String("path", a.cfg.BrowserTableFile),
			logger.Error(err))
		table, _ = browser.LoadTable("")
	}

	return browser.NewDetector(browser.Options{
		Table:         table,
		AssetsDir:     a.cfg.AssetsDir,
		LookupTimeout: a.cfg.LookupTimeout,
		CustomFunc:    a.customBrowser,
	}, component(a.logger, "browser"))
}

// customBrowser returns the configured custom browser, nil when disabled.
func (a *App) customBrowser() *browser.Custom {
	p := a.Preferences(context.Background())
	if !p.EnableCustomBrowsers || p.CustomBrowserPath == "" {
		return nil
	}
	return &browser.Custom{
		Name: p.CustomBrowserName,
		Path: p.CustomBrowserPath,
		Args: p.CustomBrowserArgs,
	}
}

// Preferences reads the current preferences from the settings store.
// Nothing is cached, so a restore or an external edit applies to the next
// operation.
func (a *App) Preferences(ctx context.Context) settings.Preferences {
	return settings.LoadPreferences(ctx, a.Settings, a.logger)
}

func component(log logger.Logger, name string) logger.Logger {
	return log.With(logger.String("component", name))
}

// Config returns the configuration the app was built from.
func (a *App) Config() *config.Config { return a.cfg }

// Logger returns the app logger.
func (a *App) Logger() logger.Logger { return a.logger }

// AutoBackup runs one auto backup check under the shared lock. Failures
// are logged, never returned: they must not stop the invoking command.
func (a *App) AutoBackup(ctx context.Context) bool {
	a.lock.Lock()
	defer a.lock.Unlock()

	created, err := a.Backups.AutoBackup(ctx)
	if err != nil {
		a.logger.Error("auto backup failed", logger.Error(err))
		return false
	}
	if created {
		a.Metrics.RecordBackup("auto")
	}
	return created
}

// Close releases the Redis connection and flushes the logger.
func (a *App) Close() {
	if a.redisClient != nil {
		utils.MustClose(a.redisClient, "redis client", a.logger)
	}
	_ = a.logger.Sync()
}

// Run serves the local API with the background jobs until SIGINT, SIGTERM
// or ctx ends, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	a.logger.Infof("🚀 Starting launchpad v%s on %s", version.Version, a.cfg.ListenAddr)
	a.logger.Infof("launchpad %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	backupTrigger := make(chan struct{}, 1)
	pruneTrigger := make(chan struct{}, 1)

	backups := scheduler.NewAutoBackupScheduler(a.Backups, &a.lock, a.Metrics, a.logger,
		a.cfg.AutoBackupInterval, backupTrigger)
	janitor := scheduler.NewHistoryJanitor(a.History, &a.lock, a.Metrics, a.logger,
		a.cfg.HistoryPruneInterval, pruneTrigger)

	backups.Start(ctx)
	a.logger.Info("auto backup scheduler started",
		logger.Duration("interval", a.cfg.AutoBackupInterval))
	janitor.Start(ctx)
	a.logger.Info("history janitor started",
		logger.Duration("interval", a.cfg.HistoryPruneInterval))

	server := httpserver.New(a.cfg, a.logger, deps.Deps{
		Logger:        a.logger,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		AllowedCIDRS:  a.cfg.AllowedCIDRS,
		AllowedHosts:  a.cfg.AllowedHosts,
		TrustProxy:    a.cfg.TrustProxy,
		LaunchBurst:   a.cfg.LaunchBurst,
		LaunchPerMin:  a.cfg.LaunchPerMin,
		Lock:          &a.lock,
		URLs:          a.URLs,
		History:       a.History,
		Browsers:      a.Browsers,
		Launcher:      a.Launcher,
		Sources:       a.Sources,
		Backups:       a.Backups,
		Settings:      a.Settings,
		Metrics:       a.Metrics,
		RedisClient:   a.redisClient,
		BackupTrigger: backupTrigger,
		PruneTrigger:  pruneTrigger,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case runErr = <-errCh:
	}

	backups.Stop()
	janitor.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to stop server: %w", err)
	}

	if runErr == nil {
		a.logger.Info("✅ launchpad stopped cleanly")
	}
	return runErr
}
