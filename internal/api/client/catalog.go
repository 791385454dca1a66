package client

import (
	"context"
	"fmt"
	"net/url"

	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

// retailerRequest contains only the fields the API accepts on create.
type retailerRequest struct {
	Name            string `json:"name"`
	Domain          string `json:"domain"`
	PriceSelector   string `json:"price_selector"`
	SoldBySelector  string `json:"sold_by_selector,omitempty"`
	SoldByRequired  string `json:"sold_by_required,omitempty"`
	DefaultCurrency string `json:"default_currency,omitempty"`
}

// ListRetailers returns retailers, optionally only the active ones.
func (c *Client) ListRetailers(ctx context.Context, activeOnly bool) ([]domain.Retailer, error) {
	path := "/api/v1/retailers"
	if activeOnly {
		path += "?active=true"
	}
	var rs []domain.Retailer
	if err := c.get(ctx, path, &rs); err != nil {
		return nil, err
	}
	return rs, nil
}

// CreateRetailer registers a custom selector-driven retailer.
func (c *Client) CreateRetailer(ctx context.Context, r *domain.Retailer) (*domain.Retailer, error) {
	req := retailerRequest{
		Name:            r.Name,
		Domain:          r.Domain,
		PriceSelector:   r.PriceSelector,
		SoldBySelector:  r.SoldBySelector,
		SoldByRequired:  r.SoldByRequired,
		DefaultCurrency: r.DefaultCurrency,
	}
	var created domain.Retailer
	if err := c.post(ctx, "/api/v1/retailers", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// SetRetailerActive enables or disables a retailer.
func (c *Client) SetRetailerActive(ctx context.Context, id int64, active bool) (*domain.Retailer, error) {
	var r domain.Retailer
	body := map[string]bool{"active": active}
	if err := c.patch(ctx, fmt.Sprintf("/api/v1/retailers/%d", id), body, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// ListProductURLs returns every listing URL recorded for a part.
func (c *Client) ListProductURLs(ctx context.Context, oem string) ([]domain.ProductURL, error) {
	var urls []domain.ProductURL
	if err := c.get(ctx, "/api/v1/products/"+url.PathEscape(oem)+"/urls", &urls); err != nil {
		return nil, err
	}
	return urls, nil
}

// SetProductURL tracks a part at a retailer, replacing any earlier URL.
func (c *Client) SetProductURL(ctx context.Context, oem string, retailerID int64, rawURL string) (*domain.ProductURL, error) {
	body := map[string]any{"retailer_id": retailerID, "url": rawURL}
	var pu domain.ProductURL
	if err := c.put(ctx, "/api/v1/products/"+url.PathEscape(oem)+"/urls", body, &pu); err != nil {
		return nil, err
	}
	return &pu, nil
}

// DeactivateProductURL stops tracking a part at a retailer.
func (c *Client) DeactivateProductURL(ctx context.Context, oem string, retailerID int64) error {
	return c.del(ctx, fmt.Sprintf("/api/v1/products/%s/urls/%d", url.PathEscape(oem), retailerID))
}
