// Package store defines the datastore abstraction for part-price-tracker.
// All business logic depends on the interfaces in this file, never on
// concrete implementations, so packages can be tested with mocks or an
// in-memory SQLite database.
package store

import (
	"context"
	"errors"
	"time"

	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write would violate a uniqueness constraint.
var ErrConflict = errors.New("already exists")

// ErrOutOfOrder is returned by InsertSample when the product URL already has
// a sample observed after the one being inserted.
var ErrOutOfOrder = errors.New("sample predates the latest stored sample")

const (
	defaultSampleLimit = 500
	maxSampleLimit     = 5000
)

// SampleQuery selects a window of one product URL's timeline. Zero From/To
// leave that side unbounded. After is a keyset cursor: only samples ordered
// strictly after (AfterObservedAt, AfterID) are returned.
type SampleQuery struct {
	ProductURLID    int64
	From            time.Time
	To              time.Time
	AfterObservedAt time.Time
	AfterID         int64
	Limit           int
}

// EffectiveLimit clamps Limit to a sane page size.
func (q SampleQuery) EffectiveLimit() int {
	switch {
	case q.Limit <= 0:
		return defaultSampleLimit
	case q.Limit > maxSampleLimit:
		return maxSampleLimit
	default:
		return q.Limit
	}
}

// CatalogStore holds the reference data the engine reads at the start of a
// cycle and the API layer edits.
type CatalogStore interface {
	ListRetailers(ctx context.Context, activeOnly bool) ([]domain.Retailer, error)
	GetRetailer(ctx context.Context, id int64) (*domain.Retailer, error)
	CreateRetailer(ctx context.Context, r *domain.Retailer) error
	SetRetailerActive(ctx context.Context, id int64, active bool) error

	ListProductURLs(ctx context.Context, oem string) ([]domain.ProductURL, error)
	GetProductURL(ctx context.Context, id int64) (*domain.ProductURL, error)
	UpsertProductURL(ctx context.Context, pu *domain.ProductURL) error
	DeactivateProductURL(ctx context.Context, oem string, retailerID int64) error
	// ListWorkItems returns every active product URL joined with its
	// retailer, restricted to active retailers.
	ListWorkItems(ctx context.Context) ([]domain.WorkItem, error)

	GetNotificationSettings(ctx context.Context) (*domain.NotificationSettings, error)
	UpdateNotificationSettings(ctx context.Context, ns *domain.NotificationSettings) error
}

// SampleStore is the append-only price timeline.
type SampleStore interface {
	InsertSample(ctx context.Context, s *domain.PriceSample) error
	LatestSample(ctx context.Context, productURLID int64) (*domain.PriceSample, error)
	// ListSamples returns samples ordered by (observed_at, id) ascending.
	ListSamples(ctx context.Context, q SampleQuery) ([]domain.PriceSample, error)
	// ListPricePoints returns the newest samples for every listing of an
	// OEM, newest first.
	ListPricePoints(ctx context.Context, oem string, limit int) ([]domain.PricePoint, error)
}

// NotificationStore keeps the dedup records of the notification dispatcher.
type NotificationStore interface {
	GetNotificationRecord(ctx context.Context, key string) (*domain.NotificationRecord, error)
	UpsertNotificationRecord(ctx context.Context, r *domain.NotificationRecord) error
}

// Store defines all data access operations for part-price-tracker.
type Store interface {
	CatalogStore
	SampleStore
	NotificationStore

	// Migrate applies pending schema migrations.
	Migrate(ctx context.Context) error
	// Ping verifies the database connection is alive.
	Ping(ctx context.Context) error
	// Close releases the underlying connections.
	Close() error
}
