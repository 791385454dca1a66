package client

import (
	"context"
	"time"
)

// NotificationSettings is the server's view of the notification settings.
// Credential is masked.
type NotificationSettings struct {
	Enabled       bool      `json:"enabled"`
	Credential    string    `json:"transport_credential"`
	HasCredential bool      `json:"has_credential"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SettingsUpdate is a partial update; nil fields are left unchanged.
type SettingsUpdate struct {
	Enabled    *bool   `json:"enabled,omitempty"`
	Credential *string `json:"transport_credential,omitempty"`
}

// GetNotificationSettings returns the current notification settings.
func (c *Client) GetNotificationSettings(ctx context.Context) (*NotificationSettings, error) {
	var ns NotificationSettings
	if err := c.get(ctx, "/api/v1/settings/notifications", &ns); err != nil {
		return nil, err
	}
	return &ns, nil
}

// UpdateNotificationSettings applies a partial settings update.
func (c *Client) UpdateNotificationSettings(ctx context.Context, u SettingsUpdate) (*NotificationSettings, error) {
	var ns NotificationSettings
	if err := c.put(ctx, "/api/v1/settings/notifications", u, &ns); err != nil {
		return nil, err
	}
	return &ns, nil
}

// Health is the system health summary.
type Health struct {
	Status               string     `json:"status"`
	Database             string     `json:"database"`
	USDToCAD             string     `json:"usd_cad_rate"`
	NotificationsEnabled bool       `json:"notifications_enabled"`
	CycleRunning         bool       `json:"cycle_running"`
	LastCycleAt          *time.Time `json:"last_cycle_at,omitempty"`
	LastCycleOutcome     string     `json:"last_cycle_outcome,omitempty"`
}

// GetHealth returns the system health summary.
func (c *Client) GetHealth(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.get(ctx, "/api/v1/health", &h); err != nil {
		return nil, err
	}
	return &h, nil
}
