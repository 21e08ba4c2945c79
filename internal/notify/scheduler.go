package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vitalog/vitalog/internal/models"
	"github.com/vitalog/vitalog/pkg/logger"
	"github.com/vitalog/vitalog/pkg/metrics"
)

// UserSource lists the users the scheduler sweeps.
type UserSource interface {
	ListUsers(ctx context.Context) ([]UserProfile, error)
}

// SettingsSource resolves per-user reminder settings with defaults applied.
type SettingsSource interface {
	Resolve(ctx context.Context, userID string) (Settings, error)
}

// SnapshotSource assembles the evaluation context for one user at one instant.
type SnapshotSource interface {
	Snapshot(ctx context.Context, userID string, now time.Time) (ContextSnapshot, error)
}

// Store persists candidates and advances their status after dispatch.
type Store interface {
	Persist(ctx context.Context, userID string, candidate Candidate) (*models.Notification, error)
	MarkSent(ctx context.Context, id string, at time.Time) error
}

const defaultWorkers = 8

// Scheduler periodically sweeps all users through the
// settings -> snapshot -> generate -> persist -> dispatch pipeline.
// States: Stopped -> Running -> Stopped. One instance per process; replicas
// deduplicate independently.
type Scheduler struct {
	users      UserSource
	settings   SettingsSource
	snapshots  SnapshotSource
	store      Store
	generator  *Generator
	dispatcher *Dispatcher

	now     func() time.Time
	workers int
	log     *zap.Logger

	mu       sync.Mutex
	running  bool
	interval time.Duration
	nextRun  time.Time
	stopCh   chan struct{}
}

// SchedulerOption customises the Scheduler.
type SchedulerOption func(*Scheduler)

// WithNow overrides the clock, primarily for tests.
func WithNow(now func() time.Time) SchedulerOption {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

// WithWorkers bounds how many per-user pipelines run concurrently per tick.
func WithWorkers(n int) SchedulerOption {
	return func(s *Scheduler) {
		if n > 0 {
			s.workers = n
		}
	}
}

// NewScheduler constructs a stopped Scheduler.
func NewScheduler(users UserSource, settings SettingsSource, snapshots SnapshotSource, store Store, generator *Generator, dispatcher *Dispatcher, opts ...SchedulerOption) (*Scheduler, error) {
	if users == nil || settings == nil || snapshots == nil || store == nil {
		return nil, errors.New("scheduler: users, settings, snapshots and store are required")
	}
	if generator == nil {
		return nil, errors.New("scheduler: generator is required")
	}
	if dispatcher == nil {
		return nil, errors.New("scheduler: dispatcher is required")
	}

	s := &Scheduler{
		users:      users,
		settings:   settings,
		snapshots:  snapshots,
		store:      store,
		generator:  generator,
		dispatcher: dispatcher,
		now:        time.Now,
		workers:    defaultWorkers,
		log:        logger.WithModule("scheduler"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start transitions to Running, executes one tick immediately, then ticks
// every intervalMinutes. Calling Start while Running is a no-op.
func (s *Scheduler) Start(intervalMinutes int) {
	if intervalMinutes <= 0 {
		intervalMinutes = 1
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.interval = time.Duration(intervalMinutes) * time.Minute
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.mu.Unlock()

	s.RunTick(context.Background())

	// Stop may have raced the synchronous tick; a stopped scheduler keeps a
	// zero nextRun.
	s.mu.Lock()
	if s.running {
		s.nextRun = s.now().Add(s.interval)
	}
	s.mu.Unlock()

	go s.loop(stopCh)
}

func (s *Scheduler) loop(stopCh chan struct{}) {
	ticker := time.NewTicker(s.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			s.mu.Lock()
			if !s.running {
				s.mu.Unlock()
				return
			}
			s.nextRun = s.now().Add(s.interval)
			s.mu.Unlock()

			s.RunTick(context.Background())
		}
	}
}

// Stop prevents future ticks and transitions to Stopped. In-flight per-user
// work is not cancelled. Idempotent.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	close(s.stopCh)
	s.running = false
	s.nextRun = time.Time{}
}

// Running reports whether the scheduler is in the Running state.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Interval returns the configured tick interval.
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// NextRun returns when the next tick is due, zero when stopped.
func (s *Scheduler) NextRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextRun
}

// RunTick sweeps every user once. A failure to list users skips the whole
// tick; it is logged and retried at the next interval. Individual user
// failures are isolated inside RunUser.
func (s *Scheduler) RunTick(ctx context.Context) {
	started := s.now()

	users, err := s.users.ListUsers(ctx)
	if err != nil {
		s.log.Error("tick skipped: list users failed", zap.Error(err))
		return
	}

	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup

	for _, profile := range users {
		profile := profile
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			defer func() {
				if r := recover(); r != nil {
					s.log.Error("user pipeline panic",
						zap.String("user_id", profile.UserID),
						zap.Any("error", r),
					)
				}
			}()

			if err := s.RunUser(ctx, profile); err != nil {
				s.log.Warn("user pipeline failed",
					zap.String("user_id", profile.UserID),
					zap.Error(err),
				)
			}
		}()
	}
	wg.Wait()

	metrics.TickDuration.Observe(time.Since(started).Seconds())
}

// RunUser executes the full pipeline for one user. It is also the entry point
// for the manual "generate now" trigger outside the scheduled tick.
func (s *Scheduler) RunUser(ctx context.Context, profile UserProfile) error {
	now := s.now()

	settings, err := s.settings.Resolve(ctx, profile.UserID)
	if err != nil {
		return err
	}

	snapshot, err := s.snapshots.Snapshot(ctx, profile.UserID, now)
	if err != nil {
		return err
	}

	candidates := s.generator.GenerateAll(profile, snapshot, settings, now)

	for _, candidate := range candidates {
		notification, err := s.store.Persist(ctx, profile.UserID, candidate)
		if err != nil {
			// Persistence is the source of truth; without a row there is
			// nothing to deliver.
			s.log.Warn("persist failed",
				zap.String("user_id", profile.UserID),
				zap.String("type", candidate.Type),
				zap.Error(err),
			)
			continue
		}

		results := s.dispatcher.Dispatch(ctx, profile, notification, settings)
		if allOK(results) {
			if err := s.store.MarkSent(ctx, notification.ID, s.now()); err != nil {
				s.log.Warn("mark sent failed",
					zap.String("notification_id", notification.ID),
					zap.Error(err),
				)
			}
		}
	}

	return nil
}

func allOK(results []ChannelResult) bool {
	if len(results) == 0 {
		return false
	}
	for _, result := range results {
		if !result.OK {
			return false
		}
	}
	return true
}
