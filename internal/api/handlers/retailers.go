package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/part-price-tracker/internal/retailer"
	"github.com/donaldgifford/part-price-tracker/internal/store"
	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

// RetailerHandler handles retailer listing, creation and activation.
type RetailerHandler struct {
	store store.CatalogStore
}

// NewRetailerHandler creates a new RetailerHandler.
func NewRetailerHandler(s store.CatalogStore) *RetailerHandler {
	return &RetailerHandler{store: s}
}

// --- Input/Output types ---

// ListRetailersInput filters the retailer list.
type ListRetailersInput struct {
	Active bool `query:"active" doc:"Only return active retailers"`
}

// ListRetailersOutput is the retailer list.
type ListRetailersOutput struct {
	Body []domain.Retailer
}

// CreateRetailerInput describes a custom retailer.
type CreateRetailerInput struct {
	Body struct {
		Name            string `json:"name"                       minLength:"1" maxLength:"100" doc:"Display name, unique"`
		Domain          string `json:"domain"                     minLength:"1" doc:"Listing host, e.g. vuugo.com"`
		PriceSelector   string `json:"price_selector"             minLength:"1" doc:"CSS selector of the price element"`
		SoldBySelector  string `json:"sold_by_selector,omitempty" doc:"CSS selector of the seller element"`
		SoldByRequired  string `json:"sold_by_required,omitempty" doc:"Seller text that must appear for the listing to count"`
		DefaultCurrency string `json:"default_currency,omitempty" enum:"CAD,USD" default:"CAD" doc:"Currency of bare $ prices"`
	}
}

// RetailerOutput is a single retailer.
type RetailerOutput struct {
	Body domain.Retailer
}

// UpdateRetailerInput toggles a retailer's activation.
type UpdateRetailerInput struct {
	ID   int64 `path:"id" doc:"Retailer id"`
	Body struct {
		Active bool `json:"active" doc:"Whether the retailer participates in refresh cycles"`
	}
}

// --- Handlers ---

// List returns retailers, optionally only active ones.
func (h *RetailerHandler) List(ctx context.Context, input *ListRetailersInput) (*ListRetailersOutput, error) {
	rs, err := h.store.ListRetailers(ctx, input.Active)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing retailers failed: " + err.Error())
	}
	if rs == nil {
		rs = []domain.Retailer{}
	}
	return &ListRetailersOutput{Body: rs}, nil
}

// Create adds a custom, selector-driven retailer.
func (h *RetailerHandler) Create(ctx context.Context, input *CreateRetailerInput) (*RetailerOutput, error) {
	r := domain.Retailer{
		Name:            strings.TrimSpace(input.Body.Name),
		Domain:          strings.ToLower(strings.TrimSpace(input.Body.Domain)),
		PriceSelector:   strings.TrimSpace(input.Body.PriceSelector),
		SoldBySelector:  strings.TrimSpace(input.Body.SoldBySelector),
		SoldByRequired:  strings.TrimSpace(input.Body.SoldByRequired),
		DefaultCurrency: input.Body.DefaultCurrency,
		Active:          true,
	}
	if r.DefaultCurrency == "" {
		r.DefaultCurrency = domain.CurrencyCAD
	}

	if err := retailer.ValidateSelectors(r); err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}

	if err := h.store.CreateRetailer(ctx, &r); err != nil {
		return nil, storeError("retailer", err)
	}

	return &RetailerOutput{Body: r}, nil
}

// Update sets a retailer's activation and returns the updated retailer.
func (h *RetailerHandler) Update(ctx context.Context, input *UpdateRetailerInput) (*RetailerOutput, error) {
	if err := h.store.SetRetailerActive(ctx, input.ID, input.Body.Active); err != nil {
		return nil, storeError("retailer", err)
	}

	r, err := h.store.GetRetailer(ctx, input.ID)
	if err != nil {
		return nil, storeError("retailer", err)
	}
	return &RetailerOutput{Body: *r}, nil
}

// RegisterRetailerRoutes registers retailer endpoints with the Huma API.
func RegisterRetailerRoutes(api huma.API, h *RetailerHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-retailers",
		Method:      http.MethodGet,
		Path:        "/api/v1/retailers",
		Summary:     "List retailers",
		Tags:        []string{"retailers"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.List)

	huma.Register(api, huma.Operation{
		OperationID:   "create-retailer",
		Method:        http.MethodPost,
		Path:          "/api/v1/retailers",
		Summary:       "Add a custom retailer",
		Description:   "Custom retailers are scraped with their own CSS selectors.",
		Tags:          []string{"retailers"},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusConflict, http.StatusUnprocessableEntity, http.StatusInternalServerError},
	}, h.Create)

	huma.Register(api, huma.Operation{
		OperationID: "update-retailer",
		Method:      http.MethodPatch,
		Path:        "/api/v1/retailers/{id}",
		Summary:     "Activate or deactivate a retailer",
		Description: "Inactive retailers are skipped by refresh cycles; their history is kept.",
		Tags:        []string{"retailers"},
		Errors:      []int{http.StatusNotFound, http.StatusInternalServerError},
	}, h.Update)
}
