package handlers

import (
	"context"
	"iter"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

// HistoryReader reads a product URL's timeline.
type HistoryReader interface {
	Latest(ctx context.Context, productURLID int64) (*domain.PriceSample, error)
	Range(ctx context.Context, productURLID int64, from, to time.Time) iter.Seq2[domain.PriceSample, error]
}

// HistoryCatalog is the store subset the history endpoints need.
type HistoryCatalog interface {
	GetProductURL(ctx context.Context, id int64) (*domain.ProductURL, error)
	ListPricePoints(ctx context.Context, oem string, limit int) ([]domain.PricePoint, error)
}

// HistoryHandler serves price history.
type HistoryHandler struct {
	history HistoryReader
	catalog HistoryCatalog
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(h HistoryReader, c HistoryCatalog) *HistoryHandler {
	return &HistoryHandler{history: h, catalog: c}
}

// --- Input/Output types ---

// ProductURLHistoryInput selects a window of one product URL's timeline.
type ProductURLHistoryInput struct {
	ID    int64     `path:"id"     doc:"Product URL id"`
	From  time.Time `query:"from"  doc:"Inclusive lower bound (RFC 3339)"`
	To    time.Time `query:"to"    doc:"Inclusive upper bound (RFC 3339)"`
	Limit int       `query:"limit" doc:"Maximum samples returned (default 1000)" minimum:"1" maximum:"10000"`
}

// ProductURLHistoryOutput is the ascending timeline of a product URL.
type ProductURLHistoryOutput struct {
	Body struct {
		ProductURL domain.ProductURL    `json:"product_url"`
		Samples    []domain.PriceSample `json:"samples"`
		Truncated  bool                 `json:"truncated" doc:"More samples exist past limit"`
	}
}

// ProductURLInput identifies a product URL.
type ProductURLInput struct {
	ID int64 `path:"id" doc:"Product URL id"`
}

// LatestSampleOutput is the newest sample of a product URL.
type LatestSampleOutput struct {
	Body domain.PriceSample
}

// PriceHistoryInput selects all samples for an OEM part number.
type PriceHistoryInput struct {
	OEM   string `path:"oem"    doc:"OEM part number"`
	Limit int    `query:"limit" doc:"Number of samples (default 100)" minimum:"1" maximum:"500"`
}

// PriceHistoryOutput lists samples across retailers, newest first.
type PriceHistoryOutput struct {
	Body struct {
		OEM    string              `json:"oem"`
		Points []domain.PricePoint `json:"points"`
	}
}

const (
	defaultHistoryLimit      = 1000
	defaultPriceHistoryLimit = 100
)

// --- Handlers ---

// ProductURLHistory returns samples in observation order, optionally bounded
// by from/to.
func (h *HistoryHandler) ProductURLHistory(
	ctx context.Context,
	input *ProductURLHistoryInput,
) (*ProductURLHistoryOutput, error) {
	if !input.From.IsZero() && !input.To.IsZero() && input.To.Before(input.From) {
		return nil, huma.Error422UnprocessableEntity("to must not be before from")
	}

	pu, err := h.catalog.GetProductURL(ctx, input.ID)
	if err != nil {
		return nil, storeError("product url", err)
	}

	limit := input.Limit
	if limit == 0 {
		limit = defaultHistoryLimit
	}

	resp := &ProductURLHistoryOutput{}
	resp.Body.ProductURL = *pu
	resp.Body.Samples = []domain.PriceSample{}

	for s, err := range h.history.Range(ctx, input.ID, input.From, input.To) {
		if err != nil {
			return nil, huma.Error500InternalServerError("reading history failed: " + err.Error())
		}
		if len(resp.Body.Samples) == limit {
			resp.Body.Truncated = true
			break
		}
		resp.Body.Samples = append(resp.Body.Samples, s)
	}

	return resp, nil
}

// Latest returns the newest sample of a product URL.
func (h *HistoryHandler) Latest(ctx context.Context, input *ProductURLInput) (*LatestSampleOutput, error) {
	if _, err := h.catalog.GetProductURL(ctx, input.ID); err != nil {
		return nil, storeError("product url", err)
	}

	s, err := h.history.Latest(ctx, input.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("reading latest sample failed: " + err.Error())
	}
	if s == nil {
		return nil, huma.Error404NotFound("product url has no samples yet")
	}

	return &LatestSampleOutput{Body: *s}, nil
}

// PriceHistory returns the most recent samples of an OEM part at every
// retailer.
func (h *HistoryHandler) PriceHistory(ctx context.Context, input *PriceHistoryInput) (*PriceHistoryOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = defaultPriceHistoryLimit
	}

	points, err := h.catalog.ListPricePoints(ctx, input.OEM, limit)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing price history failed: " + err.Error())
	}
	if points == nil {
		points = []domain.PricePoint{}
	}

	resp := &PriceHistoryOutput{}
	resp.Body.OEM = input.OEM
	resp.Body.Points = points
	return resp, nil
}

// RegisterHistoryRoutes registers history endpoints with the Huma API.
func RegisterHistoryRoutes(api huma.API, h *HistoryHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-product-url-history",
		Method:      http.MethodGet,
		Path:        "/api/v1/product-urls/{id}/history",
		Summary:     "Get a product URL's price timeline",
		Description: "Returns samples ordered by observation time, oldest first.",
		Tags:        []string{"history"},
		Errors:      []int{http.StatusNotFound, http.StatusUnprocessableEntity, http.StatusInternalServerError},
	}, h.ProductURLHistory)

	huma.Register(api, huma.Operation{
		OperationID: "get-product-url-latest",
		Method:      http.MethodGet,
		Path:        "/api/v1/product-urls/{id}/latest",
		Summary:     "Get a product URL's latest sample",
		Tags:        []string{"history"},
		Errors:      []int{http.StatusNotFound, http.StatusInternalServerError},
	}, h.Latest)

	huma.Register(api, huma.Operation{
		OperationID: "get-price-history",
		Method:      http.MethodGet,
		Path:        "/api/v1/price-history/{oem}",
		Summary:     "Get price history for an OEM part",
		Description: "Returns samples for the part across all retailers, newest first.",
		Tags:        []string{"history"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.PriceHistory)
}
