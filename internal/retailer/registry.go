package retailer

import (
	"fmt"

	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

// Registry maps retailer ids to their adapters. It is built once per refresh
// cycle from the active retailers and is read-only afterwards.
type Registry struct {
	adapters map[int64]Adapter
}

// NewRegistry builds a registry for retailers. Retailers without an
// applicable adapter are left out and fail Lookup.
func NewRegistry(retailers []domain.Retailer) *Registry {
	r := &Registry{adapters: make(map[int64]Adapter, len(retailers))}
	for _, ret := range retailers {
		if a, ok := ForRetailer(ret); ok {
			r.adapters[ret.ID] = a
		}
	}
	return r
}

// Lookup returns the adapter registered for retailerID.
func (r *Registry) Lookup(retailerID int64) (Adapter, error) {
	a, ok := r.adapters[retailerID]
	if !ok {
		return nil, fmt.Errorf("%w: retailer %d", ErrUnsupportedRetailer, retailerID)
	}
	return a, nil
}

// Len returns the number of registered adapters.
func (r *Registry) Len() int {
	return len(r.adapters)
}
