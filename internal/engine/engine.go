// Package engine runs refresh cycles: it fetches every active product URL,
// appends the observation to the history, classifies the change and hands
// notifiable changes to the dispatcher.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/donaldgifford/part-price-tracker/internal/detect"
	"github.com/donaldgifford/part-price-tracker/internal/history"
	"github.com/donaldgifford/part-price-tracker/internal/metrics"
	"github.com/donaldgifford/part-price-tracker/internal/notify"
	"github.com/donaldgifford/part-price-tracker/internal/observability"
	"github.com/donaldgifford/part-price-tracker/internal/retailer"
	"github.com/donaldgifford/part-price-tracker/internal/store"
	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

// ErrCycleInProgress is returned by RunCycle while another cycle is running.
var ErrCycleInProgress = errors.New("refresh cycle already in progress")

const defaultConcurrency = 10

// PriceFetcher observes the current price of one work item.
type PriceFetcher interface {
	Fetch(ctx context.Context, item domain.WorkItem, a retailer.Adapter) domain.PriceSample
}

// Dispatcher decides whether a change event is sent to the user.
type Dispatcher interface {
	MaybeNotify(ctx context.Context, settings domain.NotificationSettings, ev domain.ChangeEvent) notify.Outcome
}

// Engine orchestrates refresh cycles.
type Engine struct {
	catalog     store.CatalogStore
	history     *history.Store
	fetcher     PriceFetcher
	dispatcher  Dispatcher
	concurrency int
	log         *slog.Logger
	nowFunc     func() time.Time

	running atomic.Bool

	mu   sync.RWMutex
	last *domain.CycleReport
}

// NewEngine creates a new Engine with injected dependencies.
func NewEngine(
	catalog store.CatalogStore,
	h *history.Store,
	f PriceFetcher,
	d Dispatcher,
	opts ...EngineOption,
) *Engine {
	eng := &Engine{
		catalog:     catalog,
		history:     h,
		fetcher:     f,
		dispatcher:  d,
		concurrency: defaultConcurrency,
		log:         slog.Default(),
		nowFunc:     time.Now,
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithConcurrency sets how many work items are processed at once.
func WithConcurrency(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) EngineOption {
	return func(e *Engine) {
		e.nowFunc = f
	}
}

// Running reports whether a cycle is in flight.
func (eng *Engine) Running() bool {
	return eng.running.Load()
}

// LastReport returns the report of the most recent finished cycle, or nil.
func (eng *Engine) LastReport() *domain.CycleReport {
	eng.mu.RLock()
	defer eng.mu.RUnlock()
	return eng.last
}

// RunCycle refreshes every active product URL of every active retailer.
// Only one cycle runs at a time; a call made while a cycle is running
// returns ErrCycleInProgress without doing anything. Item failures never
// fail the cycle: they are recorded in the report. Canceling ctx stops
// new items from starting while items already started run to completion.
// An error is returned only when the work list cannot be read.
func (eng *Engine) RunCycle(ctx context.Context, trigger domain.CycleTrigger) (*domain.CycleReport, error) {
	if !eng.running.CompareAndSwap(false, true) {
		metrics.CycleSkippedTotal.Inc()
		eng.log.Info("refresh cycle skipped, previous cycle still running", "trigger", trigger)
		return nil, ErrCycleInProgress
	}
	defer eng.running.Store(false)

	metrics.CycleInProgress.Set(1)
	defer metrics.CycleInProgress.Set(0)

	report := &domain.CycleReport{
		ID:        uuid.NewString(),
		Trigger:   trigger,
		StartedAt: eng.nowFunc().UTC(),
	}
	log := eng.log.With("cycle_id", report.ID, "trigger", trigger)

	ctx, span := observability.StartCycleSpan(ctx, report.ID, string(trigger))
	defer span.End()

	items, registry, settings, err := eng.prepare(ctx, log)
	if err != nil {
		span.RecordError(err)
		metrics.CyclesTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.CycleItems.Set(float64(len(items)))
	log.Info("refresh cycle started", "items", len(items), "notifications_enabled", settings.Enabled)

	results := make([]domain.ItemResult, len(items))
	submitted := 0

	var g errgroup.Group
	g.SetLimit(eng.concurrency)

	// Started items must not be aborted halfway through their pipeline.
	itemCtx := context.WithoutCancel(ctx)
	for i := range items {
		if ctx.Err() != nil {
			report.Canceled = true
			log.Warn("refresh cycle canceled, not starting remaining items",
				"started", submitted, "remaining", len(items)-submitted)
			break
		}
		submitted++
		g.Go(func() error {
			results[i] = eng.processItem(itemCtx, settings, registry, items[i])
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // workers never return errors

	report.Results = results[:submitted]
	report.FinishedAt = eng.nowFunc().UTC()
	report.Summarize()

	duration := report.FinishedAt.Sub(report.StartedAt)
	metrics.CycleDuration.Observe(duration.Seconds())
	metrics.CyclesTotal.WithLabelValues(string(report.Outcome)).Inc()
	span.SetAttributes(
		attribute.String("ppt.outcome", string(report.Outcome)),
		attribute.Int("ppt.items", report.Items),
		attribute.Int("ppt.failed", report.Failed),
	)

	log.Info("refresh cycle finished",
		"outcome", report.Outcome,
		"items", report.Items,
		"succeeded", report.Succeeded,
		"failed", report.Failed,
		"stale", report.Stale,
		"notified", report.Notified,
		"duration", duration,
	)

	eng.mu.Lock()
	eng.last = report
	eng.mu.Unlock()

	return report, nil
}

// prepare reads everything a cycle needs up front. Settings changes made
// while a cycle runs take effect on the next cycle.
func (eng *Engine) prepare(
	ctx context.Context,
	log *slog.Logger,
) ([]domain.WorkItem, *retailer.Registry, domain.NotificationSettings, error) {
	var settings domain.NotificationSettings
	ns, err := eng.catalog.GetNotificationSettings(ctx)
	switch {
	case err != nil:
		log.Error("reading notification settings, notifications disabled for this cycle", "error", err)
	case ns != nil:
		settings = *ns
	}

	retailers, err := eng.catalog.ListRetailers(ctx, true)
	if err != nil {
		return nil, nil, settings, fmt.Errorf("listing retailers: %w", err)
	}

	items, err := eng.catalog.ListWorkItems(ctx)
	if err != nil {
		return nil, nil, settings, fmt.Errorf("listing work items: %w", err)
	}

	return items, retailer.NewRegistry(retailers), settings, nil
}

// processItem runs latest, fetch, append, classify and dispatch for one
// item, in that order.
func (eng *Engine) processItem(
	ctx context.Context,
	settings domain.NotificationSettings,
	registry *retailer.Registry,
	item domain.WorkItem,
) domain.ItemResult {
	res := domain.ItemResult{
		ProductURLID: item.ProductURL.ID,
		OEM:          item.ProductURL.OEM,
		Retailer:     item.Retailer.Name,
	}
	log := eng.log.With(
		"product_url_id", item.ProductURL.ID,
		"oem", item.ProductURL.OEM,
		"retailer", item.Retailer.Name,
	)

	prev, err := eng.history.Latest(ctx, item.ProductURL.ID)
	if err != nil {
		log.Error("reading latest sample", "error", err)
		res.Error = err.Error()
		return res
	}

	adapter, err := registry.Lookup(item.Retailer.ID)
	if err != nil {
		log.Warn("no adapter for retailer", "error", err)
	}

	sample := eng.fetcher.Fetch(ctx, item, adapter)
	res.Status = sample.Status
	if sample.Price != nil {
		p := sample.Price.StringFixed(2)
		res.Price = &p
	}
	if sample.Status == domain.StatusFetchError {
		res.Error = sample.Detail
	}

	if err := eng.history.Append(ctx, &sample); err != nil {
		if errors.Is(err, history.ErrStaleSample) {
			log.Warn("dropping stale sample", "error", err)
			res.Stale = true
			return res
		}
		log.Error("appending sample", "error", err)
		res.Error = err.Error()
		return res
	}

	ev := detect.NewEvent(item, prev, sample)
	res.Classification = ev.Classification
	metrics.ClassificationsTotal.WithLabelValues(string(ev.Classification)).Inc()

	if detect.Reportable(ev.Classification) {
		outcome := eng.dispatcher.MaybeNotify(ctx, settings, ev)
		res.Notified = outcome == notify.OutcomeSent
		log.Debug("change dispatched", "classification", ev.Classification, "outcome", outcome)
	}

	return res
}
