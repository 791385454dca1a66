package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

// HistoryQuery bounds a product URL timeline. Zero values are unbounded.
type HistoryQuery struct {
	From  time.Time
	To    time.Time
	Limit int
}

// History is a product URL's timeline in observation order.
type History struct {
	ProductURL domain.ProductURL    `json:"product_url"`
	Samples    []domain.PriceSample `json:"samples"`
	Truncated  bool                 `json:"truncated"`
}

// PriceHistory is the newest samples of a part across retailers.
type PriceHistory struct {
	OEM    string              `json:"oem"`
	Points []domain.PricePoint `json:"points"`
}

// GetHistory returns samples of one product URL, oldest first.
func (c *Client) GetHistory(ctx context.Context, productURLID int64, q HistoryQuery) (*History, error) {
	params := url.Values{}
	if !q.From.IsZero() {
		params.Set("from", q.From.UTC().Format(time.RFC3339Nano))
	}
	if !q.To.IsZero() {
		params.Set("to", q.To.UTC().Format(time.RFC3339Nano))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	path := fmt.Sprintf("/api/v1/product-urls/%d/history", productURLID)
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var h History
	if err := c.get(ctx, path, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// GetLatest returns the newest sample of a product URL.
func (c *Client) GetLatest(ctx context.Context, productURLID int64) (*domain.PriceSample, error) {
	var s domain.PriceSample
	if err := c.get(ctx, fmt.Sprintf("/api/v1/product-urls/%d/latest", productURLID), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetPriceHistory returns the newest samples for an OEM part number.
func (c *Client) GetPriceHistory(ctx context.Context, oem string, limit int) (*PriceHistory, error) {
	path := "/api/v1/price-history/" + url.PathEscape(oem)
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var ph PriceHistory
	if err := c.get(ctx, path, &ph); err != nil {
		return nil, err
	}
	return &ph, nil
}
