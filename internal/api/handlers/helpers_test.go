package handlers_test

import (
	"context"
	"iter"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

// fakeRefresher implements Refresher and CycleState.
type fakeRefresher struct {
	mu       sync.Mutex
	report   *domain.CycleReport
	err      error
	running  bool
	last     *domain.CycleReport
	triggers []domain.CycleTrigger

	// block, when set, holds RunCycle until it is closed and records
	// whether the cycle context was canceled meanwhile.
	started  chan struct{}
	block    chan struct{}
	canceled bool
}

func (f *fakeRefresher) RunCycle(ctx context.Context, trigger domain.CycleTrigger) (*domain.CycleReport, error) {
	if f.block != nil {
		close(f.started)
		select {
		case <-f.block:
		case <-ctx.Done():
		}
		f.mu.Lock()
		f.canceled = ctx.Err() != nil
		f.mu.Unlock()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.triggers = append(f.triggers, trigger)
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

func (f *fakeRefresher) LastReport() *domain.CycleReport { return f.last }

func (f *fakeRefresher) Running() bool { return f.running }

// fakeHistory implements HistoryReader over an in-memory timeline.
type fakeHistory struct {
	samples []domain.PriceSample
	latest  *domain.PriceSample
	err     error
}

func (f *fakeHistory) Latest(context.Context, int64) (*domain.PriceSample, error) {
	return f.latest, f.err
}

func (f *fakeHistory) Range(_ context.Context, _ int64, from, to time.Time) iter.Seq2[domain.PriceSample, error] {
	return func(yield func(domain.PriceSample, error) bool) {
		for _, s := range f.samples {
			if (!from.IsZero() && s.ObservedAt.Before(from)) || (!to.IsZero() && s.ObservedAt.After(to)) {
				continue
			}
			if !yield(s, nil) {
				return
			}
		}
		if f.err != nil {
			yield(domain.PriceSample{}, f.err)
		}
	}
}

var t0 = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func okSample(id int64, at time.Time, p string) domain.PriceSample {
	return domain.PriceSample{
		ID:           id,
		ProductURLID: 7,
		ObservedAt:   at,
		Price:        price(p),
		Currency:     domain.CurrencyCAD,
		Status:       domain.StatusOK,
	}
}
