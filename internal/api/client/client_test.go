package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

func newServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/")
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:1") // nothing listening
	_, err := c.ListRetailers(context.Background(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API server not running")
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{
			name:       "problem detail",
			status:     http.StatusConflict,
			body:       `{"title":"Conflict","status":409,"detail":"a refresh cycle is already running"}`,
			wantDetail: "a refresh cycle is already running",
		},
		{
			name:   "validation errors",
			status: http.StatusUnprocessableEntity,
			body: `{"title":"Unprocessable Entity","status":422,"detail":"validation failed",
				"errors":[{"message":"expected length >= 1","location":"body.url"}]}`,
			wantDetail: "validation failed; body.url: expected length >= 1",
		},
		{
			name:       "plain body",
			status:     http.StatusBadGateway,
			body:       "upstream down\n",
			wantDetail: "upstream down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.LastReport(context.Background())
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantDetail, apiErr.Detail)
			assert.True(t, IsStatus(err, tt.status))
			assert.Contains(t, err.Error(), "API error (HTTP")
		})
	}
}

func TestClient_Refresh(t *testing.T) {
	t.Parallel()

	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/refresh", r.URL.Path)
		assert.Equal(t, "cli", r.URL.Query().Get("trigger"))
		writeJSON(t, w, http.StatusOK, domain.CycleReport{
			ID: "c1", Trigger: domain.TriggerCLI, Items: 2, Succeeded: 2, Outcome: domain.OutcomeAllSucceeded,
		})
	})

	report, err := c.Refresh(context.Background(), domain.TriggerCLI)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAllSucceeded, report.Outcome)
	assert.Equal(t, 2, report.Items)
}

func TestClient_GetHistory(t *testing.T) {
	t.Parallel()

	from := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	p := decimal.RequireFromString("149.99")

	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/product-urls/7/history", r.URL.Path)
		assert.Equal(t, "2026-10-01T00:00:00Z", r.URL.Query().Get("from"))
		assert.Empty(t, r.URL.Query().Get("to"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		writeJSON(t, w, http.StatusOK, History{
			ProductURL: domain.ProductURL{ID: 7, OEM: "CMK32GX5M2B6000C36"},
			Samples: []domain.PriceSample{
				{ID: 1, ProductURLID: 7, ObservedAt: from, Price: &p, Currency: "CAD", Status: domain.StatusOK},
			},
		})
	})

	h, err := c.GetHistory(context.Background(), 7, HistoryQuery{From: from, Limit: 50})
	require.NoError(t, err)
	require.Len(t, h.Samples, 1)
	assert.True(t, p.Equal(*h.Samples[0].Price))
	assert.False(t, h.Truncated)
}

func TestClient_GetPriceHistory_EscapesOEM(t *testing.T) {
	t.Parallel()

	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/price-history/F5-6000J3038F16G%2FX2", r.URL.EscapedPath())
		writeJSON(t, w, http.StatusOK, PriceHistory{OEM: "F5-6000J3038F16G/X2"})
	})

	ph, err := c.GetPriceHistory(context.Background(), "F5-6000J3038F16G/X2", 0)
	require.NoError(t, err)
	assert.Equal(t, "F5-6000J3038F16G/X2", ph.OEM)
}

func TestClient_CreateRetailer(t *testing.T) {
	t.Parallel()

	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Vuugo", body["name"])
		assert.NotContains(t, body, "id")
		assert.NotContains(t, body, "sold_by_selector")

		writeJSON(t, w, http.StatusCreated, domain.Retailer{ID: 9, Name: "Vuugo", Active: true})
	})

	r, err := c.CreateRetailer(context.Background(), &domain.Retailer{
		ID: 99, Name: "Vuugo", Domain: "vuugo.com", PriceSelector: ".our-price",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), r.ID)
}

func TestClient_ProductURLs(t *testing.T) {
	t.Parallel()

	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			assert.Equal(t, "/api/v1/products/CT2K16G56C46U5/urls", r.URL.Path)
			var body struct {
				RetailerID int64  `json:"retailer_id"`
				URL        string `json:"url"`
			}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			writeJSON(t, w, http.StatusOK, domain.ProductURL{ID: 3, RetailerID: body.RetailerID, URL: body.URL})
		case http.MethodDelete:
			assert.Equal(t, "/api/v1/products/CT2K16G56C46U5/urls/4", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	})

	pu, err := c.SetProductURL(context.Background(), "CT2K16G56C46U5", 4, "https://www.newegg.ca/p/N82E1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), pu.RetailerID)

	require.NoError(t, c.DeactivateProductURL(context.Background(), "CT2K16G56C46U5", 4))
}

func TestClient_UpdateNotificationSettings_Partial(t *testing.T) {
	t.Parallel()

	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"enabled": false}, body)
		writeJSON(t, w, http.StatusOK, NotificationSettings{Enabled: false, Credential: "****1234", HasCredential: true})
	})

	disabled := false
	ns, err := c.UpdateNotificationSettings(context.Background(), SettingsUpdate{Enabled: &disabled})
	require.NoError(t, err)
	assert.True(t, ns.HasCredential)
	assert.Equal(t, "****1234", ns.Credential)
}
