package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/part-price-tracker/internal/api/handlers"
	"github.com/donaldgifford/part-price-tracker/internal/fx"
	"github.com/donaldgifford/part-price-tracker/internal/store/mocks"
	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

func TestHealthz(t *testing.T) {
	t.Parallel()

	h := handlers.NewHealthHandler(mocks.NewMockStore(t), fx.NewFixed(decimal.NewFromInt(1)), &fakeRefresher{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Healthz(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestReadyz(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "returns 200 when store ping succeeds",
			pingErr:    nil,
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ready"}`,
		},
		{
			name:       "returns 503 when store ping fails",
			pingErr:    errors.New("connection refused"),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"status":"unavailable"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockStore := mocks.NewMockStore(t)
			mockStore.EXPECT().Ping(mock.Anything).Return(tt.pingErr)

			h := handlers.NewHealthHandler(mockStore, fx.NewFixed(decimal.NewFromInt(1)), &fakeRefresher{})

			e := echo.New()
			_, api := humatest.New(t)
			handlers.RegisterHealthRoutes(e, api, h)

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestSystemHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		setupMock func(*mocks.MockStore)
		cycles    *fakeRefresher
		wantBody  []string
	}{
		{
			name: "healthy idle tracker",
			setupMock: func(m *mocks.MockStore) {
				m.EXPECT().Ping(mock.Anything).Return(nil).Once()
				m.EXPECT().GetNotificationSettings(mock.Anything).
					Return(&domain.NotificationSettings{Enabled: true, TransportCredential: "tok"}, nil).Once()
			},
			cycles: &fakeRefresher{},
			wantBody: []string{
				`"status":"ok"`,
				`"database":"ok"`,
				`"usd_cad_rate":"1.3725"`,
				`"notifications_enabled":true`,
				`"cycle_running":false`,
			},
		},
		{
			name: "running cycle and last outcome",
			setupMock: func(m *mocks.MockStore) {
				m.EXPECT().Ping(mock.Anything).Return(nil).Once()
				m.EXPECT().GetNotificationSettings(mock.Anything).
					Return(&domain.NotificationSettings{}, nil).Once()
			},
			cycles: &fakeRefresher{
				running: true,
				last:    &domain.CycleReport{FinishedAt: t0, Outcome: domain.OutcomePartialFailure},
			},
			wantBody: []string{
				`"cycle_running":true`,
				`"last_cycle_outcome":"partial_failure"`,
				`"last_cycle_at":"2026-10-01T09:00:00Z"`,
				`"notifications_enabled":false`,
			},
		},
		{
			name: "database unreachable is degraded",
			setupMock: func(m *mocks.MockStore) {
				m.EXPECT().Ping(mock.Anything).Return(errors.New("connection refused")).Once()
			},
			cycles: &fakeRefresher{},
			wantBody: []string{
				`"status":"degraded"`,
				`"database":"unreachable"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ms := mocks.NewMockStore(t)
			tt.setupMock(ms)
			h := handlers.NewHealthHandler(ms, fx.NewFixed(decimal.RequireFromString("1.3725")), tt.cycles)

			_, api := humatest.New(t)
			handlers.RegisterHealthRoutes(echo.New(), api, h)

			resp := api.Get("/api/v1/health")
			require.Equal(t, http.StatusOK, resp.Code)
			for _, want := range tt.wantBody {
				assert.Contains(t, resp.Body.String(), want)
			}
		})
	}
}
