// Package domain defines the core business types for the part price tracker.
package domain

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyCAD is the currency every stored price is normalized to.
const CurrencyCAD = "CAD"

// Retailer is a store whose listing pages are polled for prices.
type Retailer struct {
	ID              int64     `json:"id"                         db:"id"`
	Name            string    `json:"name"                       db:"name"`
	Domain          string    `json:"domain"                     db:"domain"`
	PriceSelector   string    `json:"price_selector,omitempty"   db:"price_selector"`
	SoldBySelector  string    `json:"sold_by_selector,omitempty" db:"sold_by_selector"`
	SoldByRequired  string    `json:"sold_by_required,omitempty" db:"sold_by_required"`
	DefaultCurrency string    `json:"default_currency"           db:"default_currency"`
	Active          bool      `json:"active"                     db:"active"`
	Builtin         bool      `json:"builtin"                    db:"builtin"`
	CreatedAt       time.Time `json:"created_at"                 db:"created_at"`
}

// ProductURL binds an OEM part number to one retailer's listing page.
type ProductURL struct {
	ID         int64     `json:"id"          db:"id"`
	OEM        string    `json:"oem"         db:"oem"`
	RetailerID int64     `json:"retailer_id" db:"retailer_id"`
	URL        string    `json:"url"         db:"url"`
	Active     bool      `json:"active"      db:"active"`
	CreatedAt  time.Time `json:"created_at"  db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"  db:"updated_at"`
}

// WorkItem is one (retailer, product URL) pair of a refresh cycle.
type WorkItem struct {
	ProductURL ProductURL `json:"product_url"`
	Retailer   Retailer   `json:"retailer"`
}

// SampleStatus describes the outcome of a single price observation.
type SampleStatus string

// Sample status constants.
const (
	StatusOK          SampleStatus = "ok"
	StatusUnavailable SampleStatus = "unavailable"
	StatusFetchError  SampleStatus = "fetch_error"
)

// PriceSample is one immutable observation of a product URL.
// A nil Price means the product had no purchasable price at ObservedAt.
type PriceSample struct {
	ID           int64            `json:"id"                 db:"id"`
	ProductURLID int64            `json:"product_url_id"     db:"product_url_id"`
	ObservedAt   time.Time        `json:"observed_at"        db:"observed_at"`
	Price        *decimal.Decimal `json:"price"              db:"price"`
	Currency     string           `json:"currency"           db:"currency"`
	Status       SampleStatus     `json:"status"             db:"status"`
	Detail       string           `json:"detail,omitempty"   db:"detail"`
}

// Available reports whether the sample carries a usable price.
func (s *PriceSample) Available() bool {
	return s != nil && s.Status == StatusOK && s.Price != nil
}

// PricePoint is a sample joined with the retailer and listing it came from.
type PricePoint struct {
	PriceSample
	OEM          string `json:"oem"           db:"oem"`
	RetailerID   int64  `json:"retailer_id"   db:"retailer_id"`
	RetailerName string `json:"retailer_name" db:"retailer_name"`
	URL          string `json:"url"           db:"url"`
}

// Classification is the verdict on how a new sample relates to the prior one.
type Classification string

// Classification constants.
const (
	Unchanged         Classification = "unchanged"
	PriceDrop         Classification = "price_drop"
	PriceRise         Classification = "price_rise"
	BecameAvailable   Classification = "became_available"
	BecameUnavailable Classification = "became_unavailable"
	FirstObservation  Classification = "first_observation"
	NoSignal          Classification = "no_signal"
)

// ChangeEvent pairs two consecutive samples of a product URL with their
// classification. It is never persisted.
type ChangeEvent struct {
	Item           WorkItem       `json:"item"`
	Previous       *PriceSample   `json:"previous,omitempty"`
	Current        PriceSample    `json:"current"`
	Classification Classification `json:"classification"`
}

// NotificationRecord remembers when a (product URL, classification) key was
// last sent.
type NotificationRecord struct {
	Key            string         `json:"key"            db:"key"`
	ProductURLID   int64          `json:"product_url_id" db:"product_url_id"`
	Classification Classification `json:"classification" db:"classification"`
	LastSentAt     time.Time      `json:"last_sent_at"   db:"last_sent_at"`
}

// NotificationKey returns the dedup key for a product URL and classification.
func NotificationKey(productURLID int64, c Classification) string {
	return strconv.FormatInt(productURLID, 10) + ":" + string(c)
}

// NotificationSettings is the process-wide notification configuration.
type NotificationSettings struct {
	Enabled             bool      `json:"enabled"              db:"enabled"`
	TransportCredential string    `json:"transport_credential" db:"transport_credential"`
	UpdatedAt           time.Time `json:"updated_at"           db:"updated_at"`
}

// CycleTrigger records what started a refresh cycle.
type CycleTrigger string

// Cycle trigger constants.
const (
	TriggerManual   CycleTrigger = "manual"
	TriggerSchedule CycleTrigger = "schedule"
	TriggerCLI      CycleTrigger = "cli"
)

// CycleOutcome aggregates the per-item results of a refresh cycle.
type CycleOutcome string

// Cycle outcome constants.
const (
	OutcomeEmpty          CycleOutcome = "empty"
	OutcomeAllSucceeded   CycleOutcome = "all_succeeded"
	OutcomePartialFailure CycleOutcome = "partial_failure"
	OutcomeTotalFailure   CycleOutcome = "total_failure"
)

// ItemResult is the outcome of one work item within a cycle.
type ItemResult struct {
	ProductURLID   int64          `json:"product_url_id"`
	OEM            string         `json:"oem"`
	Retailer       string         `json:"retailer"`
	Status         SampleStatus   `json:"status"`
	Price          *string        `json:"price,omitempty"`
	Classification Classification `json:"classification,omitempty"`
	Notified       bool           `json:"notified"`
	Stale          bool           `json:"stale,omitempty"`
	Error          string         `json:"error,omitempty"`
}

// Failed reports whether the item produced no usable observation.
func (r ItemResult) Failed() bool {
	return r.Error != "" || r.Status == StatusFetchError
}

// CycleReport summarizes one refresh cycle.
type CycleReport struct {
	ID         string       `json:"id"`
	Trigger    CycleTrigger `json:"trigger"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Items      int          `json:"items"`
	Succeeded  int          `json:"succeeded"`
	Failed     int          `json:"failed"`
	Stale      int          `json:"stale"`
	Notified   int          `json:"notified"`
	Canceled   bool         `json:"canceled,omitempty"`
	Outcome    CycleOutcome `json:"outcome"`
	Results    []ItemResult `json:"results"`
}

// Summarize fills the counters and outcome from Results.
func (r *CycleReport) Summarize() {
	r.Items = len(r.Results)
	r.Succeeded, r.Failed, r.Stale, r.Notified = 0, 0, 0, 0
	for _, res := range r.Results {
		switch {
		case res.Failed():
			r.Failed++
		default:
			r.Succeeded++
		}
		if res.Stale {
			r.Stale++
		}
		if res.Notified {
			r.Notified++
		}
	}

	switch {
	case r.Items == 0:
		r.Outcome = OutcomeEmpty
	case r.Failed == 0:
		r.Outcome = OutcomeAllSucceeded
	case r.Succeeded == 0:
		r.Outcome = OutcomeTotalFailure
	default:
		r.Outcome = OutcomePartialFailure
	}
}
