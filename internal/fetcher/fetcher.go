// Package fetcher turns a (retailer, product URL) pair into a price sample,
// applying per-attempt timeouts, retry with exponential backoff, and
// per-retailer rate limiting.
package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/donaldgifford/part-price-tracker/internal/fx"
	"github.com/donaldgifford/part-price-tracker/internal/metrics"
	"github.com/donaldgifford/part-price-tracker/internal/observability"
	"github.com/donaldgifford/part-price-tracker/internal/retailer"
	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultMaxAttempts = 3
	defaultBackoffBase = 500 * time.Millisecond
	defaultBackoffMax  = 8 * time.Second
	defaultMinInterval = 2 * time.Second
)

// Fetcher executes fetches against retailer sources.
type Fetcher struct {
	src         retailer.Source
	conv        fx.Converter
	limiter     *KeyedLimiter
	timeout     time.Duration
	maxAttempts int
	backoffBase time.Duration
	backoffMax  time.Duration
	log         *slog.Logger
	nowFunc     func() time.Time
	sleep       func(ctx context.Context, d time.Duration) error
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout bounds each individual attempt.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithMaxAttempts caps the number of attempts per fetch, including the first.
func WithMaxAttempts(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxAttempts = n
		}
	}
}

// WithBackoff sets the first retry delay and the ceiling it doubles up to.
func WithBackoff(base, maxDelay time.Duration) Option {
	return func(f *Fetcher) {
		f.backoffBase = base
		f.backoffMax = maxDelay
	}
}

// WithLimiter shares a keyed rate limiter between fetchers.
func WithLimiter(l *KeyedLimiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(f *Fetcher) {
		f.log = l
	}
}

// WithNowFunc overrides the clock used to stamp samples.
func WithNowFunc(fn func() time.Time) Option {
	return func(f *Fetcher) {
		f.nowFunc = fn
	}
}

// WithSleepFunc overrides how the fetcher waits between attempts.
func WithSleepFunc(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(f *Fetcher) {
		f.sleep = fn
	}
}

// New creates a Fetcher reading pages from src and converting prices with
// conv.
func New(src retailer.Source, conv fx.Converter, opts ...Option) *Fetcher {
	f := &Fetcher{
		src:         src,
		conv:        conv,
		timeout:     defaultTimeout,
		maxAttempts: defaultMaxAttempts,
		backoffBase: defaultBackoffBase,
		backoffMax:  defaultBackoffMax,
		log:         slog.Default(),
		nowFunc:     time.Now,
		sleep:       sleepCtx,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.limiter == nil {
		f.limiter = NewKeyedLimiter(defaultMinInterval)
	}
	return f
}

// Fetch observes the current price of item. It always returns a sample:
// failures that survive the retry policy become fetch_error samples with a
// nil price and the reason in Detail. A nil adapter means the retailer has
// no registered adapter.
func (f *Fetcher) Fetch(ctx context.Context, item domain.WorkItem, a retailer.Adapter) domain.PriceSample {
	start := time.Now()
	name := item.Retailer.Name

	ctx, span := observability.StartFetchSpan(ctx, name, item.ProductURL.ID)
	defer span.End()

	var (
		q        *retailer.Quote
		attempts int
		err      error
	)
	if a == nil {
		err = fmt.Errorf("%w: retailer %d", retailer.ErrUnsupportedRetailer, item.Retailer.ID)
	} else {
		q, attempts, err = f.fetchWithRetry(ctx, item, a)
	}

	sample := domain.PriceSample{
		ProductURLID: item.ProductURL.ID,
		ObservedAt:   f.nowFunc().UTC(),
		Currency:     domain.CurrencyCAD,
	}

	switch {
	case err != nil:
		sample.Status = domain.StatusFetchError
		sample.Detail = err.Error()
		span.RecordError(err)
		f.log.Warn("fetch failed",
			"product_url_id", item.ProductURL.ID,
			"retailer", name,
			"attempts", attempts,
			"transient", IsTransient(err),
			"error", err,
		)
	case !q.Available:
		sample.Status = domain.StatusUnavailable
		sample.Detail = "out of stock"
	default:
		sample.Status = domain.StatusOK
		sample.Price = q.Price
		f.log.Debug("fetched price",
			"product_url_id", item.ProductURL.ID,
			"retailer", name,
			"price", q.Price.StringFixed(2),
			"currency", q.OriginalCurrency,
			"attempts", attempts,
		)
	}

	span.SetAttributes(
		attribute.String("ppt.status", string(sample.Status)),
		attribute.Int("ppt.attempts", attempts),
	)
	metrics.SamplesTotal.WithLabelValues(name, string(sample.Status)).Inc()
	metrics.FetchDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	return sample
}

func (f *Fetcher) fetchWithRetry(
	ctx context.Context,
	item domain.WorkItem,
	a retailer.Adapter,
) (*retailer.Quote, int, error) {
	key := limiterKey(item)
	name := item.Retailer.Name

	for attempt := 1; ; attempt++ {
		waited, err := f.limiter.Wait(ctx, key)
		metrics.RateLimitWaitDuration.WithLabelValues(name).Observe(waited.Seconds())
		if err != nil {
			return nil, attempt - 1, err
		}

		metrics.FetchAttemptsTotal.WithLabelValues(name).Inc()
		attemptCtx, cancel := context.WithTimeout(ctx, f.timeout)
		q, err := retailer.GetQuote(attemptCtx, f.src, a, f.conv, item.ProductURL)
		cancel()

		if err == nil {
			return q, attempt, nil
		}
		if !IsTransient(err) || attempt >= f.maxAttempts || ctx.Err() != nil {
			return nil, attempt, fmt.Errorf("attempt %d/%d: %w", attempt, f.maxAttempts, err)
		}

		delay := f.backoff(attempt)
		metrics.FetchRetriesTotal.WithLabelValues(name).Inc()
		f.log.Debug("retrying fetch",
			"product_url_id", item.ProductURL.ID,
			"retailer", name,
			"attempt", attempt,
			"delay", delay,
			"error", err,
		)
		if serr := f.sleep(ctx, delay); serr != nil {
			return nil, attempt, fmt.Errorf("attempt %d/%d: %w", attempt, f.maxAttempts, err)
		}
	}
}

// backoff returns the delay after the given failed attempt:
// base * 2^(attempt-1), capped at backoffMax.
func (f *Fetcher) backoff(attempt int) time.Duration {
	d := f.backoffBase
	for i := 1; i < attempt; i++ {
		d *= 2
		if f.backoffMax > 0 && d >= f.backoffMax {
			return f.backoffMax
		}
	}
	if f.backoffMax > 0 && d > f.backoffMax {
		return f.backoffMax
	}
	return d
}

// limiterKey groups requests by retailer domain, falling back to the listing
// host and finally the retailer id.
func limiterKey(item domain.WorkItem) string {
	if d := strings.ToLower(strings.TrimPrefix(item.Retailer.Domain, "www.")); d != "" {
		return d
	}
	if u, err := url.Parse(item.ProductURL.URL); err == nil && u.Hostname() != "" {
		return strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))
	}
	return fmt.Sprintf("retailer:%d", item.Retailer.ID)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
