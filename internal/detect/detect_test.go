package detect_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/donaldgifford/part-price-tracker/internal/detect"
	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

func ok(price string) domain.PriceSample {
	p := decimal.RequireFromString(price)
	return domain.PriceSample{Status: domain.StatusOK, Price: &p, Currency: domain.CurrencyCAD}
}

func unavailable() domain.PriceSample {
	return domain.PriceSample{Status: domain.StatusUnavailable, Currency: domain.CurrencyCAD}
}

func fetchError() domain.PriceSample {
	return domain.PriceSample{Status: domain.StatusFetchError, Currency: domain.CurrencyCAD, Detail: "status 503"}
}

func ptr(s domain.PriceSample) *domain.PriceSample { return &s }

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		prev *domain.PriceSample
		cur  domain.PriceSample
		want domain.Classification
	}{
		{name: "first ok", prev: nil, cur: ok("10.00"), want: domain.FirstObservation},
		{name: "first unavailable", prev: nil, cur: unavailable(), want: domain.FirstObservation},
		{name: "first fetch error", prev: nil, cur: fetchError(), want: domain.FirstObservation},
		{name: "same price", prev: ptr(ok("10.00")), cur: ok("10.00"), want: domain.Unchanged},
		{name: "same price different scale", prev: ptr(ok("10")), cur: ok("10.00"), want: domain.Unchanged},
		{name: "drop", prev: ptr(ok("10.00")), cur: ok("9.00"), want: domain.PriceDrop},
		{name: "one cent drop", prev: ptr(ok("10.00")), cur: ok("9.99"), want: domain.PriceDrop},
		{name: "rise", prev: ptr(ok("9.00")), cur: ok("10.00"), want: domain.PriceRise},
		{name: "ok to unavailable", prev: ptr(ok("10.00")), cur: unavailable(), want: domain.BecameUnavailable},
		{name: "ok to fetch error", prev: ptr(ok("10.00")), cur: fetchError(), want: domain.BecameUnavailable},
		{name: "unavailable to ok", prev: ptr(unavailable()), cur: ok("10.00"), want: domain.BecameAvailable},
		{name: "fetch error to ok", prev: ptr(fetchError()), cur: ok("10.00"), want: domain.BecameAvailable},
		{name: "fetch error twice", prev: ptr(fetchError()), cur: fetchError(), want: domain.NoSignal},
		{name: "unavailable twice", prev: ptr(unavailable()), cur: unavailable(), want: domain.Unchanged},
		{name: "unavailable to fetch error", prev: ptr(unavailable()), cur: fetchError(), want: domain.NoSignal},
		{name: "fetch error to unavailable", prev: ptr(fetchError()), cur: unavailable(), want: domain.NoSignal},
		{
			name: "ok without price counts as unavailable",
			prev: ptr(ok("10.00")),
			cur:  domain.PriceSample{Status: domain.StatusOK},
			want: domain.BecameUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, detect.Classify(tt.prev, tt.cur))
		})
	}
}

func TestClassify_FirstObservationForAnyCurrent(t *testing.T) {
	t.Parallel()

	for _, cur := range []domain.PriceSample{ok("0.01"), ok("99999.99"), unavailable(), fetchError(), {}} {
		assert.Equal(t, domain.FirstObservation, detect.Classify(nil, cur))
	}
}

func TestNewEvent(t *testing.T) {
	t.Parallel()

	item := domain.WorkItem{
		ProductURL: domain.ProductURL{ID: 4, OEM: "RTX4070"},
		Retailer:   domain.Retailer{ID: 2, Name: "BestBuy"},
	}
	prev := ok("50.00")
	cur := ok("45.00")
	cur.ObservedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	ev := detect.NewEvent(item, &prev, cur)
	assert.Equal(t, domain.PriceDrop, ev.Classification)
	assert.Equal(t, item, ev.Item)
	assert.Same(t, &prev, ev.Previous)
	assert.Equal(t, cur, ev.Current)
}

func TestNotifiableAndReportable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		c          domain.Classification
		notifiable bool
		reportable bool
	}{
		{c: domain.PriceDrop, notifiable: true, reportable: true},
		{c: domain.BecameAvailable, notifiable: true, reportable: true},
		{c: domain.PriceRise, reportable: true},
		{c: domain.BecameUnavailable, reportable: true},
		{c: domain.Unchanged},
		{c: domain.NoSignal},
		{c: domain.FirstObservation},
	}

	for _, tt := range tests {
		t.Run(string(tt.c), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.notifiable, detect.Notifiable(tt.c))
			assert.Equal(t, tt.reportable, detect.Reportable(tt.c))
		})
	}
}
