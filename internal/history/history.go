// Package history is the append-only price timeline of every product URL.
//
// Append is the only mutator. Appends for one product URL are serialized by
// a per-key lock; appends for different product URLs run in parallel. The
// backend enforces the same ordering, so several processes may append to one
// database.
package history

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/donaldgifford/part-price-tracker/internal/keylock"
	"github.com/donaldgifford/part-price-tracker/internal/metrics"
	"github.com/donaldgifford/part-price-tracker/internal/store"
	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

// ErrStaleSample is returned by Append when the sample is older than the
// current latest sample of its product URL.
var ErrStaleSample = errors.New("sample is older than the latest observation")

const defaultPageSize = 500

// Store is the history of all product URLs.
type Store struct {
	backend  store.SampleStore
	locks    *keylock.Map[int64]
	pageSize int
	log      *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithPageSize sets how many samples Range reads per backend query.
func WithPageSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// New creates a Store over backend.
func New(backend store.SampleStore, opts ...Option) *Store {
	s := &Store{
		backend:  backend,
		locks:    keylock.New[int64](),
		pageSize: defaultPageSize,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append persists sample and makes it the latest observation of its product
// URL. ObservedAt is normalized to UTC microseconds. On success sample.ID is
// set. A sample observed before the current latest is rejected with
// ErrStaleSample and nothing is written. The check reads the backend, so
// samples written by another process sharing the database are honored.
func (s *Store) Append(ctx context.Context, sample *domain.PriceSample) error {
	if sample == nil {
		return errors.New("appending nil sample")
	}
	sample.ObservedAt = sample.ObservedAt.UTC().Truncate(time.Microsecond)

	unlock := s.locks.Lock(sample.ProductURLID)
	defer unlock()

	prev, err := s.Latest(ctx, sample.ProductURLID)
	if err != nil {
		return err
	}
	if prev != nil && sample.ObservedAt.Before(prev.ObservedAt) {
		return s.stale(sample, prev.ObservedAt)
	}

	start := time.Now()
	err = s.backend.InsertSample(ctx, sample)
	metrics.HistoryQueryDuration.WithLabelValues("append").Observe(time.Since(start).Seconds())
	switch {
	case errors.Is(err, store.ErrOutOfOrder):
		// Another writer stored a newer sample between the read and the insert.
		return s.stale(sample, time.Time{})
	case err != nil:
		return fmt.Errorf("appending sample for product url %d: %w", sample.ProductURLID, err)
	}
	return nil
}

func (s *Store) stale(sample *domain.PriceSample, latest time.Time) error {
	metrics.StaleSamplesTotal.Inc()
	args := []any{"product_url_id", sample.ProductURLID, "observed_at", sample.ObservedAt}
	if !latest.IsZero() {
		args = append(args, "latest_observed_at", latest)
	}
	s.log.Warn("rejecting stale sample", args...)
	return fmt.Errorf("product url %d: %w", sample.ProductURLID, ErrStaleSample)
}

// Latest returns the newest sample of a product URL, or nil if it has none.
func (s *Store) Latest(ctx context.Context, productURLID int64) (*domain.PriceSample, error) {
	start := time.Now()
	ps, err := s.backend.LatestSample(ctx, productURLID)
	metrics.HistoryQueryDuration.WithLabelValues("latest").Observe(time.Since(start).Seconds())
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading latest sample for product url %d: %w", productURLID, err)
	}
	return ps, nil
}

// Range yields the samples of a product URL observed within [from, to],
// oldest first. A zero from or to leaves that side unbounded. The sequence
// reads the backend lazily one page at a time and can be iterated again.
// Iteration stops at the first error, which is yielded once.
func (s *Store) Range(ctx context.Context, productURLID int64, from, to time.Time) iter.Seq2[domain.PriceSample, error] {
	return func(yield func(domain.PriceSample, error) bool) {
		q := store.SampleQuery{
			ProductURLID: productURLID,
			From:         from,
			To:           to,
			Limit:        s.pageSize,
		}
		for {
			start := time.Now()
			page, err := s.backend.ListSamples(ctx, q)
			metrics.HistoryQueryDuration.WithLabelValues("range").Observe(time.Since(start).Seconds())
			if err != nil {
				yield(domain.PriceSample{}, fmt.Errorf("listing samples for product url %d: %w", productURLID, err))
				return
			}
			for _, ps := range page {
				if !yield(ps, nil) {
					return
				}
			}
			if len(page) < q.EffectiveLimit() {
				return
			}
			last := page[len(page)-1]
			q.AfterObservedAt, q.AfterID = last.ObservedAt, last.ID
		}
	}
}

// Collect drains a Range sequence into a slice.
func Collect(seq iter.Seq2[domain.PriceSample, error]) ([]domain.PriceSample, error) {
	var out []domain.PriceSample
	for ps, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, ps)
	}
	return out, nil
}
