package maintenance

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/vitalog/vitalog/internal/notify"
	"github.com/vitalog/vitalog/internal/services"
	"github.com/vitalog/vitalog/pkg/logger"
)

const (
	defaultRetentionDays = 90
	defaultEvictSpec     = "@hourly"
	defaultPruneSpec     = "@daily"
)

// Cleaner coordinates background maintenance: evicting stale entries from the
// deduplication cache and pruning old dismissed notifications. Pruning by
// retention is a system policy; user actions never delete rows.
type Cleaner struct {
	dedup         *notify.DedupCache
	notifications *services.NotificationService
	cron          *cron.Cron
	now           func() time.Time
	log           *zap.Logger
	retention     int

	evictSchedule string
	pruneSchedule string
}

// Option customises the Cleaner.
type Option func(*Cleaner)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(cleaner *Cleaner) {
		if c != nil {
			cleaner.cron = c
		}
	}
}

// WithNow overrides the clock used for cleanup comparisons.
func WithNow(now func() time.Time) Option {
	return func(cleaner *Cleaner) {
		if now != nil {
			cleaner.now = now
		}
	}
}

// WithRetentionDays adjusts how long dismissed notifications are retained.
func WithRetentionDays(days int) Option {
	return func(cleaner *Cleaner) {
		if days > 0 {
			cleaner.retention = days
		}
	}
}

// WithEvictSchedule overrides the cron expression for dedup cache eviction.
func WithEvictSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.evictSchedule = spec
		}
	}
}

// WithPruneSchedule overrides the cron expression for notification pruning.
func WithPruneSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.pruneSchedule = spec
		}
	}
}

// NewCleaner constructs a Cleaner with sensible defaults. A nil dependency
// results in the corresponding job being skipped.
func NewCleaner(dedup *notify.DedupCache, notifications *services.NotificationService, opts ...Option) *Cleaner {
	cleaner := &Cleaner{
		dedup:         dedup,
		notifications: notifications,
		now:           time.Now,
		retention:     defaultRetentionDays,
		evictSchedule: defaultEvictSpec,
		pruneSchedule: defaultPruneSpec,
		log:           logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(cleaner)
	}

	if cleaner.cron == nil {
		cleaner.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	return cleaner
}

// Start registers the cleanup jobs with the cron scheduler and launches it.
func (c *Cleaner) Start() error {
	if c.dedup != nil {
		if _, err := c.cron.AddFunc(c.evictSchedule, func() {
			evicted := c.dedup.Evict(c.now())
			if evicted > 0 {
				c.log.Debug("dedup cache evicted", zap.Int("entries", evicted))
			}
		}); err != nil {
			return err
		}
	}

	if c.notifications != nil && c.retention > 0 {
		if _, err := c.cron.AddFunc(c.pruneSchedule, func() {
			cutoff := c.now().AddDate(0, 0, -c.retention)
			pruned, err := c.notifications.PruneDismissed(context.Background(), cutoff)
			if err != nil {
				c.log.Warn("notification pruning failed", zap.Error(err))
				return
			}
			if pruned > 0 {
				c.log.Info("dismissed notifications pruned", zap.Int64("rows", pruned))
			}
		}); err != nil {
			return err
		}
	}

	c.cron.Start()
	return nil
}

// Stop halts the underlying scheduler, waiting for any running jobs to complete.
func (c *Cleaner) Stop() context.Context {
	if c.cron == nil {
		return context.Background()
	}
	return c.cron.Stop()
}

// RunOnce executes all configured cleanup routines sequentially. Primarily
// used in tests and during graceful shutdown.
func (c *Cleaner) RunOnce(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var errs error

	if c.dedup != nil {
		c.dedup.Evict(c.now())
	}

	if c.notifications != nil && c.retention > 0 {
		cutoff := c.now().AddDate(0, 0, -c.retention)
		if _, err := c.notifications.PruneDismissed(ctx, cutoff); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	return errs
}
