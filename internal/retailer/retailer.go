// Package retailer resolves product URLs against retailer listing pages and
// extracts a normalized price, abstracted behind interfaces for testability.
package retailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

// Sentinel errors returned by adapters and Quote.
var (
	ErrUnsupportedRetailer = errors.New("unsupported retailer")
	ErrInvalidURL          = errors.New("invalid product url")
	ErrDomainMismatch      = errors.New("product url does not belong to retailer")
	ErrPriceNotFound       = errors.New("price not found on page")
	ErrPriceUnparseable    = errors.New("price text is not a number")
	ErrNotSoldByRetailer   = errors.New("listing not sold & shipped by retailer")
	ErrInvalidSelector     = errors.New("invalid css selector")
)

// ParseError reports a page that was fetched successfully but could not be
// turned into a price. It is never caused by the network.
type ParseError struct {
	Retailer string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s page: %v", e.Retailer, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StatusError is returned when a retailer answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("retailer returned status %d for %s", e.StatusCode, e.URL)
}

// Transient reports whether the status is worth retrying.
func (e *StatusError) Transient() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

// Page is the raw response for a listing URL.
type Page struct {
	URL        string
	StatusCode int
	Body       []byte
}

// Source fetches raw listing content.
type Source interface {
	Get(ctx context.Context, url string) (*Page, error)
}

// Extraction holds what an adapter found on a listing page, before currency
// normalization.
type Extraction struct {
	RawPrice  string
	Amount    decimal.Decimal
	Currency  string
	Available bool
	Seller    string
}

// Adapter is the per-retailer strategy for locating listings and reading
// prices off their markup.
type Adapter interface {
	Name() string
	Kind() Kind
	// Resolve returns the canonical absolute URL to fetch for pu.
	Resolve(pu domain.ProductURL) (string, error)
	// Extract reads price, availability and seller from a parsed page.
	Extract(doc *goquery.Document) (*Extraction, error)
}
