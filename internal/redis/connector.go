// Package redis opens the client behind the shared settings store.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/launchpad/internal/logger"
)

// ConnectOptions mirrors the LAUNCHPAD_REDIS_* and REDIS_* settings.
// Zero durations take the defaults below.
type ConnectOptions struct {
	Addr           string
	User           string
	Password       string
	RedisDB        int
	DialTimeout    time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	PoolSize       int
	ConnectTimeout time.Duration // whole retry budget
	RetryInterval  time.Duration // first wait, doubled after each failure
	MaxWait        time.Duration // cap on a single wait
	PingTimeout    time.Duration
	WarnThreshold  int // failures logged at warn before switching to error
}

const (
	defaultConnectTimeout = 30 * time.Second
	defaultRetryInterval  = 2 * time.Second
	defaultMaxWait        = 10 * time.Second
	defaultPingTimeout    = 5 * time.Second
)

func (o ConnectOptions) withDefaults() ConnectOptions {
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = defaultConnectTimeout
	}
	if o.RetryInterval <= 0 {
		o.RetryInterval = defaultRetryInterval
	}
	if o.MaxWait <= 0 {
		o.MaxWait = defaultMaxWait
	}
	if o.MaxWait < o.RetryInterval {
		o.MaxWait = o.RetryInterval
	}
	if o.PingTimeout <= 0 {
		o.PingTimeout = defaultPingTimeout
	}
	if o.WarnThreshold < 0 {
		o.WarnThreshold = 0
	}
	return o
}

// backoff is the wait after the n-th failed ping (1-based).
func (o ConnectOptions) backoff(n int) time.Duration {
	wait := o.RetryInterval
	for i := 1; i < n && wait < o.MaxWait; i++ {
		wait *= 2
	}
	return min(wait, o.MaxWait)
}

// New returns a client once Redis answers a ping. It retries until
// ConnectTimeout or ctx ends, then fails with the last ping error.
func New(ctx context.Context, opts ConnectOptions, log logger.Logger) (*redis.Client, error) {
	if opts.Addr == "" {
		return nil, errors.New("redis address is empty")
	}
	opts = opts.withDefaults()

	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Username:     opts.User,
		Password:     opts.Password,
		DB:           opts.RedisDB,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		PoolSize:     opts.PoolSize,
	})

	if err := waitReady(ctx, client, opts, log); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func waitReady(parent context.Context, client *redis.Client, opts ConnectOptions, log logger.Logger) error {
	ctx, cancel := context.WithTimeout(parent, opts.ConnectTimeout)
	defer cancel()

	start := time.Now()
	for attempt := 1; ; attempt++ {
		pingCtx, pingCancel := context.WithTimeout(ctx, opts.PingTimeout)
		err := client.Ping(pingCtx).Err()
		pingCancel()

		if err == nil {
			if attempt > 1 {
				log.Warn("redis settings store reachable after retries",
					logger.String("addr", opts.Addr),
					logger.Int("attempts", attempt),
					logger.Duration("elapsed", time.Since(start)))
			} else {
				log.Debug("redis settings store reachable", logger.String("addr", opts.Addr))
			}
			return nil
		}

		wait := opts.backoff(attempt)
		fields := []logger.Field{
			logger.String("addr", opts.Addr),
			logger.Int("attempt", attempt),
			logger.Duration("retry_in", wait),
			logger.Error(err),
		}
		if attempt <= opts.WarnThreshold {
			log.Warn("redis ping failed", fields...)
		} else {
			log.Error("redis ping failed", fields...)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("failed to reach redis at %s after %d attempts: %w", opts.Addr, attempt, err)
		case <-timer.C:
		}
	}
}
