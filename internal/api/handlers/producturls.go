package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/part-price-tracker/internal/retailer"
	"github.com/donaldgifford/part-price-tracker/internal/store"
	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

// ProductURLHandler manages the listing URLs tracked for each OEM part.
type ProductURLHandler struct {
	store store.CatalogStore
}

// NewProductURLHandler creates a new ProductURLHandler.
func NewProductURLHandler(s store.CatalogStore) *ProductURLHandler {
	return &ProductURLHandler{store: s}
}

// --- Input/Output types ---

// OEMInput identifies a part.
type OEMInput struct {
	OEM string `path:"oem" doc:"OEM part number"`
}

// ListProductURLsOutput lists a part's listing URLs.
type ListProductURLsOutput struct {
	Body []domain.ProductURL
}

// UpsertProductURLInput sets a part's listing URL at one retailer.
type UpsertProductURLInput struct {
	OEM  string `path:"oem" doc:"OEM part number"`
	Body struct {
		RetailerID int64  `json:"retailer_id" minimum:"1" doc:"Retailer id"`
		URL        string `json:"url"         minLength:"1" format:"uri" doc:"Listing URL on the retailer's site"`
	}
}

// ProductURLOutput is a single product URL.
type ProductURLOutput struct {
	Body domain.ProductURL
}

// DeactivateProductURLInput identifies the URL to stop tracking.
type DeactivateProductURLInput struct {
	OEM        string `path:"oem"         doc:"OEM part number"`
	RetailerID int64  `path:"retailer_id" doc:"Retailer id"`
}

// --- Handlers ---

// List returns every listing URL recorded for a part, active or not.
func (h *ProductURLHandler) List(ctx context.Context, input *OEMInput) (*ListProductURLsOutput, error) {
	urls, err := h.store.ListProductURLs(ctx, input.OEM)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing product urls failed: " + err.Error())
	}
	if urls == nil {
		urls = []domain.ProductURL{}
	}
	return &ListProductURLsOutput{Body: urls}, nil
}

// Upsert validates the URL against the retailer and stores its canonical
// form, replacing (and reactivating) any previous URL for the pair.
func (h *ProductURLHandler) Upsert(ctx context.Context, input *UpsertProductURLInput) (*ProductURLOutput, error) {
	oem := strings.TrimSpace(input.OEM)
	if oem == "" {
		return nil, huma.Error422UnprocessableEntity("oem must not be empty")
	}

	r, err := h.store.GetRetailer(ctx, input.Body.RetailerID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, huma.Error422UnprocessableEntity("retailer does not exist")
	}
	if err != nil {
		return nil, storeError("retailer", err)
	}

	a, ok := retailer.ForRetailer(*r)
	if !ok {
		return nil, huma.Error422UnprocessableEntity(retailer.ErrUnsupportedRetailer.Error() + ": " + r.Name)
	}

	pu := domain.ProductURL{OEM: oem, RetailerID: r.ID, URL: input.Body.URL}
	canonical, err := a.Resolve(pu)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}
	pu.URL = canonical

	if err := h.store.UpsertProductURL(ctx, &pu); err != nil {
		return nil, huma.Error500InternalServerError("saving product url failed: " + err.Error())
	}
	return &ProductURLOutput{Body: pu}, nil
}

// Deactivate stops tracking a part at a retailer. History is kept.
func (h *ProductURLHandler) Deactivate(ctx context.Context, input *DeactivateProductURLInput) (*struct{}, error) {
	if err := h.store.DeactivateProductURL(ctx, input.OEM, input.RetailerID); err != nil {
		return nil, storeError("product url", err)
	}
	return nil, nil
}

// RegisterProductURLRoutes registers product URL endpoints with the Huma API.
func RegisterProductURLRoutes(api huma.API, h *ProductURLHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-product-urls",
		Method:      http.MethodGet,
		Path:        "/api/v1/products/{oem}/urls",
		Summary:     "List a part's listing URLs",
		Tags:        []string{"products"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.List)

	huma.Register(api, huma.Operation{
		OperationID: "upsert-product-url",
		Method:      http.MethodPut,
		Path:        "/api/v1/products/{oem}/urls",
		Summary:     "Set a part's listing URL at a retailer",
		Tags:        []string{"products"},
		Errors:      []int{http.StatusUnprocessableEntity, http.StatusInternalServerError},
	}, h.Upsert)

	huma.Register(api, huma.Operation{
		OperationID:   "deactivate-product-url",
		Method:        http.MethodDelete,
		Path:          "/api/v1/products/{oem}/urls/{retailer_id}",
		Summary:       "Stop tracking a part at a retailer",
		Tags:          []string{"products"},
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusNotFound, http.StatusInternalServerError},
	}, h.Deactivate)
}
