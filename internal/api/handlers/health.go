package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

// HealthStore is the store subset the health endpoints need.
type HealthStore interface {
	Ping(ctx context.Context) error
	GetNotificationSettings(ctx context.Context) (*domain.NotificationSettings, error)
}

// RateSource reports the current USD to CAD rate.
type RateSource interface {
	Rate(ctx context.Context) decimal.Decimal
}

// CycleState reports on refresh cycles.
type CycleState interface {
	Running() bool
	LastReport() *domain.CycleReport
}

// HealthHandler provides health and readiness endpoints.
type HealthHandler struct {
	store  HealthStore
	rates  RateSource
	cycles CycleState
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(s HealthStore, rates RateSource, cycles CycleState) *HealthHandler {
	return &HealthHandler{store: s, rates: rates, cycles: cycles}
}

// Healthz returns 200 if the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Readyz returns 200 if the database is reachable, 503 otherwise.
func (h *HealthHandler) Readyz(c echo.Context) error {
	if err := h.store.Ping(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, StatusResponse{Status: "unavailable"})
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "ready"})
}

// SystemHealthOutput summarizes the tracker's state.
type SystemHealthOutput struct {
	Body struct {
		Status               string     `json:"status"                  enum:"ok,degraded"`
		Database             string     `json:"database"                enum:"ok,unreachable"`
		USDToCAD             string     `json:"usd_cad_rate"            example:"1.3725"`
		NotificationsEnabled bool       `json:"notifications_enabled"`
		CycleRunning         bool       `json:"cycle_running"`
		LastCycleAt          *time.Time `json:"last_cycle_at,omitempty"`
		LastCycleOutcome     string     `json:"last_cycle_outcome,omitempty"`
	}
}

// System reports database reachability, the exchange rate in use,
// whether notifications are on and the refresh cycle state. It always
// answers 200; Status is "degraded" when the database is unreachable.
func (h *HealthHandler) System(ctx context.Context, _ *struct{}) (*SystemHealthOutput, error) {
	resp := &SystemHealthOutput{}
	resp.Body.Status = "ok"
	resp.Body.Database = "ok"

	if err := h.store.Ping(ctx); err != nil {
		resp.Body.Status = "degraded"
		resp.Body.Database = "unreachable"
	} else if ns, err := h.store.GetNotificationSettings(ctx); err == nil {
		resp.Body.NotificationsEnabled = ns.Enabled
	}

	resp.Body.USDToCAD = h.rates.Rate(ctx).String()
	resp.Body.CycleRunning = h.cycles.Running()
	if last := h.cycles.LastReport(); last != nil {
		finished := last.FinishedAt
		resp.Body.LastCycleAt = &finished
		resp.Body.LastCycleOutcome = string(last.Outcome)
	}

	return resp, nil
}

// RegisterHealthRoutes registers the probe endpoints on Echo and the system
// health endpoint with the Huma API.
func RegisterHealthRoutes(e *echo.Echo, api huma.API, h *HealthHandler) {
	e.GET("/healthz", h.Healthz)
	e.GET("/readyz", h.Readyz)

	huma.Register(api, huma.Operation{
		OperationID: "get-system-health",
		Method:      http.MethodGet,
		Path:        "/api/v1/health",
		Summary:     "Get system health",
		Tags:        []string{"health"},
	}, h.System)
}
