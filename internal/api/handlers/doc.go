// Package handlers implements the HTTP handlers of the part-price-tracker API.
package handlers

import (
	"errors"
	"reflect"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/donaldgifford/part-price-tracker/internal/store"
)

// StatusResponse is a generic status response body.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// RegisterSchemaAliases teaches the OpenAPI registry that decimal prices are
// serialized as strings.
func RegisterSchemaAliases(api huma.API) {
	api.OpenAPI().Components.Schemas.RegisterTypeAlias(
		reflect.TypeFor[decimal.Decimal](), reflect.TypeFor[string]())
}

// storeError maps a store error to an HTTP error, keeping 404 and 409 apart
// from internal failures.
func storeError(what string, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return huma.Error404NotFound(what + " not found")
	case errors.Is(err, store.ErrConflict):
		return huma.Error409Conflict(what + " already exists")
	default:
		return huma.Error500InternalServerError(what + " lookup failed: " + err.Error())
	}
}
