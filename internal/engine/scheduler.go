package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/donaldgifford/part-price-tracker/internal/metrics"
	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

// Cycler runs one refresh cycle.
type Cycler interface {
	RunCycle(ctx context.Context, trigger domain.CycleTrigger) (*domain.CycleReport, error)
}

// Scheduler runs refresh cycles on a fixed interval.
type Scheduler struct {
	cron       *cron.Cron
	engine     Cycler
	entryID    cron.EntryID
	runOnStart bool
	log        *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithRunOnStart makes Start trigger one cycle immediately.
func WithRunOnStart(b bool) SchedulerOption {
	return func(s *Scheduler) {
		s.runOnStart = b
	}
}

// NewScheduler creates a new Scheduler that runs a refresh cycle every interval.
func NewScheduler(
	eng Cycler,
	interval time.Duration,
	log *slog.Logger,
	opts ...SchedulerOption,
) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("refresh interval must be positive, got %s", interval)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		cron:   cron.New(),
		engine: eng,
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(s)
	}

	id, err := s.cron.AddFunc("@every "+interval.String(), s.runRefresh)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("registering refresh schedule: %w", err)
	}
	s.entryID = id

	return s, nil
}

// Start begins running scheduled cycles.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started", "run_on_start", s.runOnStart)
	s.cron.Start()
	s.syncNextRun()
	if s.runOnStart {
		go s.runRefresh()
	}
}

// Stop cancels the running cycle, so no further items start, and stops the
// scheduler. The returned context is done once running jobs have finished.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	s.cancel()
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// NextRun returns when the next scheduled cycle starts. It is zero until
// the scheduler has been started.
func (s *Scheduler) NextRun() time.Time {
	return s.cron.Entry(s.entryID).Next
}

func (s *Scheduler) runRefresh() {
	defer s.syncNextRun()

	if s.ctx.Err() != nil {
		return
	}

	s.log.Info("scheduled refresh starting")
	_, err := s.engine.RunCycle(s.ctx, domain.TriggerSchedule)
	switch {
	case errors.Is(err, ErrCycleInProgress):
		s.log.Info("scheduled refresh skipped, cycle already running")
	case err != nil:
		s.log.Error("scheduled refresh failed", "error", err)
	}
}

func (s *Scheduler) syncNextRun() {
	if next := s.NextRun(); !next.IsZero() {
		metrics.SchedulerNextRefreshTimestamp.Set(float64(next.Unix()))
	}
}
