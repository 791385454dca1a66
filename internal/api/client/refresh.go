package client

import (
	"context"
	"net/url"

	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

// Refresh runs one refresh cycle on the server and waits for its report.
// trigger is "manual" or "cli".
func (c *Client) Refresh(ctx context.Context, trigger domain.CycleTrigger) (*domain.CycleReport, error) {
	path := "/api/v1/refresh"
	if trigger != "" {
		path += "?" + url.Values{"trigger": {string(trigger)}}.Encode()
	}
	var report domain.CycleReport
	if err := c.post(ctx, path, nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// LastReport returns the report of the most recent finished cycle.
func (c *Client) LastReport(ctx context.Context) (*domain.CycleReport, error) {
	var report domain.CycleReport
	if err := c.get(ctx, "/api/v1/refresh/last", &report); err != nil {
		return nil, err
	}
	return &report, nil
}
