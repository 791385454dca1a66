package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/part-price-tracker/internal/engine"
	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

// Refresher runs refresh cycles and remembers the last one.
type Refresher interface {
	RunCycle(ctx context.Context, trigger domain.CycleTrigger) (*domain.CycleReport, error)
	LastReport() *domain.CycleReport
}

// RefreshHandler handles manual refresh requests.
type RefreshHandler struct {
	refresher Refresher
	lifetime  context.Context
}

// RefreshOption configures a RefreshHandler.
type RefreshOption func(*RefreshHandler)

// WithLifetime ties manual cycles to ctx instead of the request. A client
// that disconnects does not cancel the cycle; canceling ctx does.
func WithLifetime(ctx context.Context) RefreshOption {
	return func(h *RefreshHandler) {
		h.lifetime = ctx
	}
}

// NewRefreshHandler creates a new RefreshHandler.
func NewRefreshHandler(r Refresher, opts ...RefreshOption) *RefreshHandler {
	h := &RefreshHandler{refresher: r}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// cycleContext keeps the request's values but not its cancellation.
func (h *RefreshHandler) cycleContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	if h.lifetime == nil {
		return ctx, cancel
	}
	stop := context.AfterFunc(h.lifetime, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// RefreshInput selects how the cycle is recorded.
type RefreshInput struct {
	Trigger string `query:"trigger" default:"manual" enum:"manual,cli" doc:"Recorded trigger of the cycle"`
}

// CycleReportOutput wraps a cycle report.
type CycleReportOutput struct {
	Body *domain.CycleReport
}

// Refresh runs one cycle synchronously and returns its report.
func (h *RefreshHandler) Refresh(ctx context.Context, input *RefreshInput) (*CycleReportOutput, error) {
	trigger := domain.TriggerManual
	if input.Trigger == string(domain.TriggerCLI) {
		trigger = domain.TriggerCLI
	}

	ctx, cancel := h.cycleContext(ctx)
	defer cancel()

	report, err := h.refresher.RunCycle(ctx, trigger)
	if errors.Is(err, engine.ErrCycleInProgress) {
		return nil, huma.Error409Conflict("a refresh cycle is already running")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("refresh failed: " + err.Error())
	}

	return &CycleReportOutput{Body: report}, nil
}

// LastReport returns the report of the most recent finished cycle.
func (h *RefreshHandler) LastReport(_ context.Context, _ *struct{}) (*CycleReportOutput, error) {
	report := h.refresher.LastReport()
	if report == nil {
		return nil, huma.Error404NotFound("no refresh cycle has finished yet")
	}
	return &CycleReportOutput{Body: report}, nil
}

// RegisterRefreshRoutes registers refresh endpoints with the Huma API.
func RegisterRefreshRoutes(api huma.API, h *RefreshHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "run-refresh",
		Method:      http.MethodPost,
		Path:        "/api/v1/refresh",
		Summary:     "Run a refresh cycle",
		Description: "Fetches every active product URL at every active retailer, records the samples, " +
			"and sends notifications. Returns 409 if a cycle is already running.",
		Tags:   []string{"refresh"},
		Errors: []int{http.StatusConflict, http.StatusInternalServerError},
	}, h.Refresh)

	huma.Register(api, huma.Operation{
		OperationID: "get-last-refresh",
		Method:      http.MethodGet,
		Path:        "/api/v1/refresh/last",
		Summary:     "Get the last cycle report",
		Tags:        []string{"refresh"},
		Errors:      []int{http.StatusNotFound},
	}, h.LastReport)
}
