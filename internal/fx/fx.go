// Package fx converts retailer prices to Canadian dollars.
package fx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

const (
	// DefaultValetURL is the Bank of Canada Valet endpoint for the latest
	// USD/CAD observation.
	DefaultValetURL = "https://www.bankofcanada.ca/valet/observations/FXUSDCAD/json?recent=1"

	defaultCacheTTL     = 24 * time.Hour
	defaultRetryAfter   = 10 * time.Minute
	currencyUSD         = "USD"
	priceDecimalPlaces  = 2
	valetSeriesUSDToCAD = "FXUSDCAD"
)

// DefaultFallbackRate is used when the rate source cannot be reached.
var DefaultFallbackRate = decimal.RequireFromString("1.35")

// ErrUnsupportedCurrency is returned for currencies other than CAD and USD.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// Converter normalizes amounts to CAD.
type Converter interface {
	ToCAD(ctx context.Context, amount decimal.Decimal, currency string) (decimal.Decimal, error)
	// Rate returns the current USD to CAD rate.
	Rate(ctx context.Context) decimal.Decimal
}

// convert applies rate to amount according to currency and rounds to cents.
func convert(amount decimal.Decimal, currency string, rate func() decimal.Decimal) (decimal.Decimal, error) {
	switch strings.ToUpper(strings.TrimSpace(currency)) {
	case domain.CurrencyCAD, "":
		return amount.Round(priceDecimalPlaces), nil
	case currencyUSD:
		return amount.Mul(rate()).Round(priceDecimalPlaces), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnsupportedCurrency, currency)
	}
}

// Fixed converts with a constant rate.
type Fixed struct {
	rate decimal.Decimal
}

// NewFixed returns a Converter that always uses rate.
func NewFixed(rate decimal.Decimal) *Fixed {
	return &Fixed{rate: rate}
}

// ToCAD implements Converter.
func (f *Fixed) ToCAD(_ context.Context, amount decimal.Decimal, currency string) (decimal.Decimal, error) {
	return convert(amount, currency, func() decimal.Decimal { return f.rate })
}

// Rate implements Converter.
func (f *Fixed) Rate(context.Context) decimal.Decimal {
	return f.rate
}

// BankOfCanada reads the daily USD/CAD rate from the Valet API and caches it.
// Failed lookups return the fallback rate and are retried after a short delay.
type BankOfCanada struct {
	url        string
	client     *http.Client
	fallback   decimal.Decimal
	ttl        time.Duration
	retryAfter time.Duration
	log        *slog.Logger

	mu      sync.Mutex
	rate    decimal.Decimal
	expiry  time.Time
	nowFunc func() time.Time // for testing
}

// Option configures a BankOfCanada converter.
type Option func(*BankOfCanada)

// WithURL overrides the Valet endpoint.
func WithURL(u string) Option {
	return func(b *BankOfCanada) {
		b.url = u
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(b *BankOfCanada) {
		b.client = c
	}
}

// WithFallbackRate sets the rate used when the API is unreachable.
func WithFallbackRate(r decimal.Decimal) Option {
	return func(b *BankOfCanada) {
		b.fallback = r
	}
}

// WithCacheTTL sets how long a fetched rate stays valid.
func WithCacheTTL(d time.Duration) Option {
	return func(b *BankOfCanada) {
		b.ttl = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *BankOfCanada) {
		b.log = l
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) Option {
	return func(b *BankOfCanada) {
		b.nowFunc = f
	}
}

// NewBankOfCanada creates a converter backed by the Valet API.
func NewBankOfCanada(opts ...Option) *BankOfCanada {
	b := &BankOfCanada{
		url:        DefaultValetURL,
		client:     &http.Client{Timeout: 10 * time.Second},
		fallback:   DefaultFallbackRate,
		ttl:        defaultCacheTTL,
		retryAfter: defaultRetryAfter,
		log:        slog.Default(),
		nowFunc:    time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ToCAD implements Converter.
func (b *BankOfCanada) ToCAD(ctx context.Context, amount decimal.Decimal, currency string) (decimal.Decimal, error) {
	return convert(amount, currency, func() decimal.Decimal { return b.Rate(ctx) })
}

// Rate returns the cached rate, refreshing it once the cache has expired.
func (b *BankOfCanada) Rate(ctx context.Context) decimal.Decimal {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.nowFunc()
	if !b.rate.IsZero() && now.Before(b.expiry) {
		return b.rate
	}

	rate, err := b.fetchLocked(ctx)
	if err != nil {
		b.log.Warn("usd/cad rate lookup failed, using fallback",
			"fallback", b.fallback.String(), "error", err)
		b.rate = b.fallback
		b.expiry = now.Add(b.retryAfter)
		return b.rate
	}

	b.rate = rate
	b.expiry = now.Add(b.ttl)
	return b.rate
}

type valetResponse struct {
	Observations []map[string]json.RawMessage `json:"observations"`
}

type valetValue struct {
	V string `json:"v"`
}

func (b *BankOfCanada) fetchLocked(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.url, http.NoBody)
	if err != nil {
		return decimal.Zero, fmt.Errorf("creating rate request: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("executing rate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("rate request failed (status %d)", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return decimal.Zero, fmt.Errorf("reading rate response: %w", err)
	}

	var parsed valetResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return decimal.Zero, fmt.Errorf("parsing rate response: %w", err)
	}
	if len(parsed.Observations) == 0 {
		return decimal.Zero, errors.New("rate response has no observations")
	}

	raw, ok := parsed.Observations[0][valetSeriesUSDToCAD]
	if !ok {
		return decimal.Zero, fmt.Errorf("rate response missing %s", valetSeriesUSDToCAD)
	}

	var v valetValue
	if err := json.Unmarshal(raw, &v); err != nil {
		return decimal.Zero, fmt.Errorf("parsing %s value: %w", valetSeriesUSDToCAD, err)
	}

	rate, err := decimal.NewFromString(v.V)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing rate %q: %w", v.V, err)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("rate %s is not positive", rate)
	}
	return rate, nil
}
