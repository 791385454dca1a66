package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/part-price-tracker/internal/api/handlers"
	"github.com/donaldgifford/part-price-tracker/internal/store"
	"github.com/donaldgifford/part-price-tracker/internal/store/mocks"
	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

var trackedURL = &domain.ProductURL{ID: 7, OEM: "BX8071514600K", RetailerID: 1, URL: "https://www.canadacomputers.com/p/1", Active: true}

type historyBody struct {
	Samples []struct {
		ID    int64  `json:"id"`
		Price string `json:"price"`
	} `json:"samples"`
	Truncated bool `json:"truncated"`
}

func TestHistoryHandler_ProductURLHistory(t *testing.T) {
	t.Parallel()

	timeline := []domain.PriceSample{
		okSample(1, t0, "329.99"),
		okSample(2, t0.Add(6*time.Hour), "319.99"),
		okSample(3, t0.Add(12*time.Hour), "299.99"),
	}

	tests := []struct {
		name          string
		path          string
		setupMock     func(*mocks.MockStore)
		history       *fakeHistory
		wantStatus    int
		wantIDs       []int64
		wantTruncated bool
	}{
		{
			name: "full timeline in order",
			path: "/api/v1/product-urls/7/history",
			setupMock: func(m *mocks.MockStore) {
				m.EXPECT().GetProductURL(mock.Anything, int64(7)).Return(trackedURL, nil).Once()
			},
			history:    &fakeHistory{samples: timeline},
			wantStatus: http.StatusOK,
			wantIDs:    []int64{1, 2, 3},
		},
		{
			name: "window",
			path: "/api/v1/product-urls/7/history?from=2026-10-01T10:00:00Z&to=2026-10-01T15:00:00Z",
			setupMock: func(m *mocks.MockStore) {
				m.EXPECT().GetProductURL(mock.Anything, int64(7)).Return(trackedURL, nil).Once()
			},
			history:    &fakeHistory{samples: timeline},
			wantStatus: http.StatusOK,
			wantIDs:    []int64{2},
		},
		{
			name: "limit truncates",
			path: "/api/v1/product-urls/7/history?limit=2",
			setupMock: func(m *mocks.MockStore) {
				m.EXPECT().GetProductURL(mock.Anything, int64(7)).Return(trackedURL, nil).Once()
			},
			history:       &fakeHistory{samples: timeline},
			wantStatus:    http.StatusOK,
			wantIDs:       []int64{1, 2},
			wantTruncated: true,
		},
		{
			name: "empty timeline",
			path: "/api/v1/product-urls/7/history",
			setupMock: func(m *mocks.MockStore) {
				m.EXPECT().GetProductURL(mock.Anything, int64(7)).Return(trackedURL, nil).Once()
			},
			history:    &fakeHistory{},
			wantStatus: http.StatusOK,
			wantIDs:    []int64{},
		},
		{
			name:       "inverted window",
			path:       "/api/v1/product-urls/7/history?from=2026-10-02T00:00:00Z&to=2026-10-01T00:00:00Z",
			setupMock:  func(*mocks.MockStore) {},
			history:    &fakeHistory{},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "unknown product url",
			path: "/api/v1/product-urls/99/history",
			setupMock: func(m *mocks.MockStore) {
				m.EXPECT().GetProductURL(mock.Anything, int64(99)).Return(nil, store.ErrNotFound).Once()
			},
			history:    &fakeHistory{},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "backend error mid-stream",
			path: "/api/v1/product-urls/7/history",
			setupMock: func(m *mocks.MockStore) {
				m.EXPECT().GetProductURL(mock.Anything, int64(7)).Return(trackedURL, nil).Once()
			},
			history:    &fakeHistory{samples: timeline[:1], err: errors.New("disk I/O error")},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ms := mocks.NewMockStore(t)
			tt.setupMock(ms)

			_, api := humatest.New(t)
			handlers.RegisterHistoryRoutes(api, handlers.NewHistoryHandler(tt.history, ms))

			resp := api.Get(tt.path)
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}

			var body historyBody
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
			ids := make([]int64, 0, len(body.Samples))
			for _, s := range body.Samples {
				ids = append(ids, s.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantTruncated, body.Truncated)
		})
	}
}

func TestHistoryHandler_Latest(t *testing.T) {
	t.Parallel()

	latest := okSample(3, t0, "299.99")

	tests := []struct {
		name       string
		setupMock  func(*mocks.MockStore)
		history    *fakeHistory
		wantStatus int
		wantBody   string
	}{
		{
			name: "latest sample",
			setupMock: func(m *mocks.MockStore) {
				m.EXPECT().GetProductURL(mock.Anything, int64(7)).Return(trackedURL, nil).Once()
			},
			history:    &fakeHistory{latest: &latest},
			wantStatus: http.StatusOK,
			wantBody:   `"price":"299.99"`,
		},
		{
			name: "no samples yet",
			setupMock: func(m *mocks.MockStore) {
				m.EXPECT().GetProductURL(mock.Anything, int64(7)).Return(trackedURL, nil).Once()
			},
			history:    &fakeHistory{},
			wantStatus: http.StatusNotFound,
			wantBody:   "no samples yet",
		},
		{
			name: "unknown product url",
			setupMock: func(m *mocks.MockStore) {
				m.EXPECT().GetProductURL(mock.Anything, int64(7)).Return(nil, store.ErrNotFound).Once()
			},
			history:    &fakeHistory{},
			wantStatus: http.StatusNotFound,
			wantBody:   "product url not found",
		},
		{
			name: "read error",
			setupMock: func(m *mocks.MockStore) {
				m.EXPECT().GetProductURL(mock.Anything, int64(7)).Return(trackedURL, nil).Once()
			},
			history:    &fakeHistory{err: errors.New("db down")},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ms := mocks.NewMockStore(t)
			tt.setupMock(ms)

			_, api := humatest.New(t)
			handlers.RegisterHistoryRoutes(api, handlers.NewHistoryHandler(tt.history, ms))

			resp := api.Get("/api/v1/product-urls/7/latest")
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			if tt.wantBody != "" {
				assert.Contains(t, resp.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestHistoryHandler_PriceHistory(t *testing.T) {
	t.Parallel()

	point := domain.PricePoint{
		PriceSample:  okSample(3, t0, "299.99"),
		OEM:          "BX8071514600K",
		RetailerID:   1,
		RetailerName: "CanadaComputers",
		URL:          trackedURL.URL,
	}

	tests := []struct {
		name       string
		path       string
		setupMock  func(*mocks.MockStore)
		wantStatus int
		wantBody   string
	}{
		{
			name: "default limit",
			path: "/api/v1/price-history/BX8071514600K",
			setupMock: func(m *mocks.MockStore) {
				m.EXPECT().ListPricePoints(mock.Anything, "BX8071514600K", 100).
					Return([]domain.PricePoint{point}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"retailer_name":"CanadaComputers"`,
		},
		{
			name: "explicit limit",
			path: "/api/v1/price-history/BX8071514600K?limit=500",
			setupMock: func(m *mocks.MockStore) {
				m.EXPECT().ListPricePoints(mock.Anything, "BX8071514600K", 500).Return(nil, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"points":[]`,
		},
		{
			name:       "limit above maximum",
			path:       "/api/v1/price-history/BX8071514600K?limit=501",
			setupMock:  func(*mocks.MockStore) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "store error",
			path: "/api/v1/price-history/BX8071514600K",
			setupMock: func(m *mocks.MockStore) {
				m.EXPECT().ListPricePoints(mock.Anything, "BX8071514600K", 100).
					Return(nil, errors.New("db down")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "listing price history failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ms := mocks.NewMockStore(t)
			tt.setupMock(ms)

			_, api := humatest.New(t)
			handlers.RegisterHistoryRoutes(api, handlers.NewHistoryHandler(&fakeHistory{}, ms))

			resp := api.Get(tt.path)
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			if tt.wantBody != "" {
				assert.Contains(t, resp.Body.String(), tt.wantBody)
			}
		})
	}
}
