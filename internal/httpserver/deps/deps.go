package deps

import (
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/launchpad/internal/backup"
	"github.com/MrSnakeDoc/launchpad/internal/history"
	"github.com/MrSnakeDoc/launchpad/internal/launcher"
	"github.com/MrSnakeDoc/launchpad/internal/logger"
	"github.com/MrSnakeDoc/launchpad/internal/metrics"
	"github.com/MrSnakeDoc/launchpad/internal/settings"
	"github.com/MrSnakeDoc/launchpad/internal/sources"
	"github.com/MrSnakeDoc/launchpad/internal/urls"
)

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	AllowedCIDRS []string // clients allowed to reach the API
	AllowedHosts []string // Host headers accepted, port ignored
	TrustProxy   bool     // true if running behind a trusted reverse proxy
	LaunchBurst  int      // per-client launch burst
	LaunchPerMin int      // per-client launch refill rate

	// Lock serialises every request with the schedulers. The managers
	// rewrite whole files and are single-writer.
	Lock *sync.Mutex

	URLs     *urls.Manager
	History  *history.Manager
	Browsers launcher.Browsers
	Launcher *launcher.Launcher
	Sources  *sources.Manager
	Backups  *backup.Manager
	Settings settings.Store
	Metrics  *metrics.Metrics

	RedisClient *redis.Client // nil with the file settings backend

	BackupTrigger chan struct{} // wakes the auto backup scheduler
	PruneTrigger  chan struct{} // wakes the history janitor
}
