package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/launchpad/internal/logger"
	"github.com/MrSnakeDoc/launchpad/internal/metrics"
)

const (
	// DefaultHistoryPruneInterval is the janitor period when none is configured.
	DefaultHistoryPruneInterval = 6 * time.Hour

	jobHistoryJanitor = "history_janitor"
)

// Pruner drops expired and overflowing history entries.
type Pruner interface {
	Prune() (int, error)
}

// HistoryJanitor applies history retention without waiting for the next
// visit to be recorded.
type HistoryJanitor struct {
	pruner        Pruner
	lock          sync.Locker
	metrics       *metrics.Metrics
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewHistoryJanitor creates a janitor.
func NewHistoryJanitor(
	pruner Pruner,
	lock sync.Locker,
	m *metrics.Metrics,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *HistoryJanitor {
	if interval <= 0 {
		interval = DefaultHistoryPruneInterval
	}
	if lock == nil {
		lock = &sync.Mutex{}
	}
	return &HistoryJanitor{
		pruner:        pruner,
		lock:          lock,
		metrics:       m,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start prunes immediately, then on every tick or manual trigger.
func (j *HistoryJanitor) Start(ctx context.Context) {
	j.Collect()

	ticker := time.NewTicker(j.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				j.Collect()
			case <-j.manualTrigger:
				j.logger.Info("manual history prune triggered")
				j.Collect()
			case <-j.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the janitor
func (j *HistoryJanitor) Stop() {
	close(j.stopCh)
}

// Collect runs one prune and returns the number of entries removed.
func (j *HistoryJanitor) Collect() int {
	j.lock.Lock()
	defer j.lock.Unlock()

	removed, err := j.pruner.Prune()
	j.metrics.RecordJob(jobHistoryJanitor, err)
	if err != nil {
		j.logger.Error("history prune failed", logger.Error(err))
		return 0
	}
	j.metrics.AddHistoryPruned(removed)

	if removed > 0 {
		j.logger.Info("history pruned", logger.Int("removed", removed))
	} else {
		j.logger.Debug("no history entries to prune")
	}
	return removed
}
