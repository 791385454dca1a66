package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

// SettingsStore is the store subset the settings endpoints need.
type SettingsStore interface {
	GetNotificationSettings(ctx context.Context) (*domain.NotificationSettings, error)
	UpdateNotificationSettings(ctx context.Context, ns *domain.NotificationSettings) error
}

// SettingsHandler reads and updates notification settings. Changes apply
// from the next refresh cycle.
type SettingsHandler struct {
	store SettingsStore
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(s SettingsStore) *SettingsHandler {
	return &SettingsHandler{store: s}
}

// NotificationSettingsView is the API form of the settings. The credential
// is never echoed back in full.
type NotificationSettingsView struct {
	Enabled       bool      `json:"enabled"`
	Credential    string    `json:"transport_credential" doc:"Masked transport credential"`
	HasCredential bool      `json:"has_credential"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NotificationSettingsOutput wraps the settings view.
type NotificationSettingsOutput struct {
	Body NotificationSettingsView
}

// UpdateNotificationSettingsInput is a partial update; omitted fields keep
// their current value.
type UpdateNotificationSettingsInput struct {
	Body struct {
		Enabled    *bool   `json:"enabled,omitempty"              doc:"Turn notifications on or off"`
		Credential *string `json:"transport_credential,omitempty" doc:"Pushbullet access token or Discord webhook URL"`
	}
}

// Get returns the current notification settings.
func (h *SettingsHandler) Get(ctx context.Context, _ *struct{}) (*NotificationSettingsOutput, error) {
	ns, err := h.store.GetNotificationSettings(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("reading settings failed: " + err.Error())
	}
	return &NotificationSettingsOutput{Body: settingsView(ns)}, nil
}

// Update applies a partial settings update.
func (h *SettingsHandler) Update(
	ctx context.Context,
	input *UpdateNotificationSettingsInput,
) (*NotificationSettingsOutput, error) {
	ns, err := h.store.GetNotificationSettings(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("reading settings failed: " + err.Error())
	}

	if input.Body.Enabled != nil {
		ns.Enabled = *input.Body.Enabled
	}
	if input.Body.Credential != nil {
		ns.TransportCredential = strings.TrimSpace(*input.Body.Credential)
	}
	if ns.Enabled && ns.TransportCredential == "" {
		return nil, huma.Error422UnprocessableEntity("a transport credential is required to enable notifications")
	}

	if err := h.store.UpdateNotificationSettings(ctx, ns); err != nil {
		return nil, huma.Error500InternalServerError("saving settings failed: " + err.Error())
	}
	return &NotificationSettingsOutput{Body: settingsView(ns)}, nil
}

func settingsView(ns *domain.NotificationSettings) NotificationSettingsView {
	return NotificationSettingsView{
		Enabled:       ns.Enabled,
		Credential:    MaskCredential(ns.TransportCredential),
		HasCredential: ns.TransportCredential != "",
		UpdatedAt:     ns.UpdatedAt,
	}
}

// MaskCredential hides all but the last four characters of long secrets.
func MaskCredential(s string) string {
	switch {
	case s == "":
		return ""
	case len(s) <= 8:
		return "****"
	default:
		return "****" + s[len(s)-4:]
	}
}

// RegisterSettingsRoutes registers settings endpoints with the Huma API.
func RegisterSettingsRoutes(api huma.API, h *SettingsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-notification-settings",
		Method:      http.MethodGet,
		Path:        "/api/v1/settings/notifications",
		Summary:     "Get notification settings",
		Tags:        []string{"settings"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.Get)

	huma.Register(api, huma.Operation{
		OperationID: "update-notification-settings",
		Method:      http.MethodPut,
		Path:        "/api/v1/settings/notifications",
		Summary:     "Update notification settings",
		Description: "Takes effect at the start of the next refresh cycle.",
		Tags:        []string{"settings"},
		Errors:      []int{http.StatusUnprocessableEntity, http.StatusInternalServerError},
	}, h.Update)
}
