package manager

import (
	"context"
	"time"

	"github.com/showsync/showsync/pkg/cache"
	"github.com/showsync/showsync/pkg/logger"
	"go.uber.org/zap"
)

const syncJobKey = "sync"

// RunRecorder receives the report of every completed run.
type RunRecorder interface {
	RecordRun(ctx context.Context, report *RunReport) error
}

// Scheduler triggers periodic sync runs. A tick that arrives while a run is
// still in flight is skipped instead of stacking up.
type Scheduler struct {
	manager  Manager
	interval time.Duration
	recorder RunRecorder
	running  *cache.Cache[string, time.Time]
}

type SchedulerOption func(*Scheduler)

// WithRunRecorder attaches a sink for run reports.
func WithRunRecorder(recorder RunRecorder) SchedulerOption {
	return func(s *Scheduler) {
		s.recorder = recorder
	}
}

func NewScheduler(manager Manager, interval time.Duration, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		manager:  manager,
		interval: interval,
		running:  cache.New[string, time.Time](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run blocks until the context is cancelled, triggering a sync every interval.
func (s *Scheduler) Run(ctx context.Context) error {
	log := logger.FromCtx(ctx)
	log.Info("starting sync scheduler", zap.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("stopping sync scheduler")
			return ctx.Err()
		case <-ticker.C:
			s.trigger(ctx)
		}
	}
}

// Trigger starts a sync now unless one is already in flight. It reports
// whether a run was started.
func (s *Scheduler) Trigger(ctx context.Context) bool {
	return s.trigger(ctx)
}

func (s *Scheduler) trigger(ctx context.Context) bool {
	log := logger.FromCtx(ctx)

	if !s.running.SetIfAbsent(syncJobKey, time.Now()) {
		started, _ := s.running.Get(syncJobKey)
		log.Warn("sync already running, skipping", zap.Time("startedAt", started))
		return false
	}

	go func() {
		defer s.running.Delete(syncJobKey)

		report, err := s.manager.Sync(ctx)
		if err != nil {
			log.Error("scheduled sync failed", zap.Error(err))
		}

		if s.recorder == nil || report == nil {
			return
		}
		if err := s.recorder.RecordRun(ctx, report); err != nil {
			log.Error("failed to record run", zap.Error(err))
		}
	}()

	return true
}
