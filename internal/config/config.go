package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SettingsBackendFile  = "file"
	SettingsBackendRedis = "redis"
)

type Config struct {
	ProfileDir       string // writable profile directory (saved_urls.json, history.json, backups/)
	AssetsDir        string // browser icons directory
	BrowserTableFile string // optional yaml file with extra browsers
	HostVersion      string // media-center build string recorded in backups

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	ListenAddr      string        // ex: "127.0.0.1:8787"
	ShutdownTimeout time.Duration // ex: 5s
	AllowedCIDRS    []string      // clients allowed to reach the API
	AllowedHosts    []string      // Host header names accepted by the API, port ignored
	TrustProxy      bool          // true => trust X-Forwarded-For headers
	LaunchBurst     int           // launches allowed per client before throttling
	LaunchPerMin    int           // launch tokens refilled per client per minute

	AutoBackupInterval   time.Duration // how often serve mode checks auto backup (default: 1h)
	HistoryPruneInterval time.Duration // how often serve mode prunes history (default: 6h)
	MaxBackups           int           // backups kept by cleanup (default: 10)

	NetworkProbeAddr    string        // ex: "8.8.8.8:53"
	NetworkProbeTimeout time.Duration // ex: 3s
	LookupTimeout       time.Duration // bound for PATH and default-browser lookups (ex: 5s)

	SettingsBackend string // "file" | "redis"

	// Redis (only when SettingsBackend == "redis")
	RedisAddr           string        // ex: "localhost:6379"
	RedisNamespace      string        // settings hash suffix (default: "default")
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts
}

// Load reads the LAUNCHPAD_* environment, after merging an optional .env file.
func Load() *Config {
	loadEnvFile(getenv("LAUNCHPAD_ENV_FILE", ".env"))

	profileDir := getenv("LAUNCHPAD_PROFILE_DIR", defaultProfileDir())

	cfg := &Config{
		// Paths
		ProfileDir:       profileDir,
		AssetsDir:        getenv("LAUNCHPAD_ASSETS_DIR", filepath.Join(profileDir, "resources", "images")),
		BrowserTableFile: getenv("LAUNCHPAD_BROWSER_TABLE", ""),
		HostVersion:      getenv("LAUNCHPAD_HOST_VERSION", "unknown"),

		// Logging
		LogLevel:  getenv("LAUNCHPAD_LOG_LEVEL", "warn"),
		PrettyLog: mustBool("LAUNCHPAD_PRETTY_LOG", true),

		// Server settings
		ListenAddr:      getenv("LAUNCHPAD_LISTEN_ADDR", "127.0.0.1:8787"),
		ShutdownTimeout: mustDuration("LAUNCHPAD_SHUTDOWN_TIMEOUT", 5*time.Second),
		AllowedCIDRS:    splitAndTrim(getenv("LAUNCHPAD_ALLOWED_CIDRS", "127.0.0.1/32,::1/128")),
		AllowedHosts:    splitAndTrim(getenv("LAUNCHPAD_ALLOWED_HOSTS", "localhost,127.0.0.1,::1")),
		TrustProxy:      mustBool("LAUNCHPAD_TRUST_PROXY", false),
		LaunchBurst:     getenvInt("LAUNCHPAD_LAUNCH_BURST", 10),
		LaunchPerMin:    getenvInt("LAUNCHPAD_LAUNCH_PER_MIN", 30),

		// Schedulers
		AutoBackupInterval:   mustDuration("LAUNCHPAD_AUTO_BACKUP_INTERVAL", time.Hour),
		HistoryPruneInterval: mustDuration("LAUNCHPAD_HISTORY_PRUNE_INTERVAL", 6*time.Hour),
		MaxBackups:           getenvInt("LAUNCHPAD_MAX_BACKUPS", 10),

		// Probes
		NetworkProbeAddr:    getenv("LAUNCHPAD_NETWORK_PROBE_ADDR", "8.8.8.8:53"),
		NetworkProbeTimeout: mustDuration("LAUNCHPAD_NETWORK_PROBE_TIMEOUT", 3*time.Second),
		LookupTimeout:       mustDuration("LAUNCHPAD_LOOKUP_TIMEOUT", 5*time.Second),

		SettingsBackend: strings.ToLower(getenv("LAUNCHPAD_SETTINGS_BACKEND", SettingsBackendFile)),

		// Redis settings
		RedisNamespace:      getenv("LAUNCHPAD_REDIS_NAMESPACE", "default"),
		RedisUser:           getenv("LAUNCHPAD_REDIS_USERNAME", ""),
		RedisPassword:       getenv("LAUNCHPAD_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("LAUNCHPAD_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 4),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),
	}

	switch cfg.SettingsBackend {
	case SettingsBackendFile:
	case SettingsBackendRedis:
		cfg.RedisAddr = requireEnv("LAUNCHPAD_REDIS_ADDR")
	default:
		panic(fmt.Sprintf("❌ FATAL: LAUNCHPAD_SETTINGS_BACKEND must be %q or %q, got %q",
			SettingsBackendFile, SettingsBackendRedis, cfg.SettingsBackend))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// Paths derived from the profile directory.
func (c *Config) SavedURLsFile() string { return filepath.Join(c.ProfileDir, "saved_urls.json") }
func (c *Config) HistoryFile() string   { return filepath.Join(c.ProfileDir, "history.json") }
func (c *Config) SettingsFile() string  { return filepath.Join(c.ProfileDir, "settings.yaml") }
func (c *Config) BackupDir() string     { return filepath.Join(c.ProfileDir, "backups") }

func defaultProfileDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "launchpad")
	}
	return filepath.Join(os.TempDir(), "launchpad")
}

// loadEnvFile merges path into the environment; variables already set win.
func loadEnvFile(path string) {
	if path == "" {
		return
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[WARN] failed to load env file %s: %v\n", path, err)
	}
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
