package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/launchpad/internal/logger"
	"github.com/MrSnakeDoc/launchpad/internal/metrics"
)

const (
	// DefaultAutoBackupInterval is how often the auto backup schedule is checked.
	DefaultAutoBackupInterval = time.Hour

	jobAutoBackup = "auto_backup"
)

// BackupRunner runs one auto backup check.
type BackupRunner interface {
	AutoBackup(ctx context.Context) (bool, error)
}

// AutoBackupScheduler periodically asks the backup manager whether an
// automatic backup is due. The backup_frequency preference decides; the
// interval only sets how often it is asked.
type AutoBackupScheduler struct {
	runner        BackupRunner
	lock          sync.Locker
	metrics       *metrics.Metrics
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewAutoBackupScheduler creates a scheduler. lock is held around every run
// and must be the one guarding the other writers of the profile files.
func NewAutoBackupScheduler(
	runner BackupRunner,
	lock sync.Locker,
	m *metrics.Metrics,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *AutoBackupScheduler {
	if interval <= 0 {
		interval = DefaultAutoBackupInterval
	}
	if lock == nil {
		lock = &sync.Mutex{}
	}
	return &AutoBackupScheduler{
		runner:        runner,
		lock:          lock,
		metrics:       m,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start runs a check immediately, then on every tick or manual trigger.
func (s *AutoBackupScheduler) Start(ctx context.Context) {
	s.Run(ctx)

	ticker := time.NewTicker(s.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Run(ctx)
			case <-s.manualTrigger:
				s.logger.Info("manual auto backup check triggered")
				s.Run(ctx)
			case <-s.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the scheduler
func (s *AutoBackupScheduler) Stop() {
	close(s.stopCh)
}

// Run performs one check and reports whether a backup was written.
func (s *AutoBackupScheduler) Run(ctx context.Context) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	created, err := s.runner.AutoBackup(ctx)
	s.metrics.RecordJob(jobAutoBackup, err)
	if err != nil {
		s.logger.Error("auto backup failed", logger.Error(err))
		return false
	}
	if created {
		s.metrics.RecordBackup("auto")
		s.logger.Info("auto backup created")
	} else {
		s.logger.Debug("auto backup not due")
	}
	return created
}
