package notify

import (
	"context"
	"log/slog"
)

// NoOpTransport logs and discards alerts. It is used when no notification
// backend is configured.
type NoOpTransport struct {
	log *slog.Logger
}

// NewNoOpTransport creates a transport that discards alerts with a log message.
func NewNoOpTransport(log *slog.Logger) *NoOpTransport {
	if log == nil {
		log = slog.Default()
	}
	return &NoOpTransport{log: log}
}

// Name returns "noop".
func (n *NoOpTransport) Name() string { return "noop" }

// Send logs and discards a single alert.
func (n *NoOpTransport) Send(_ context.Context, _ string, p Payload) error {
	n.log.Debug("notification discarded (no backend configured)",
		"product_url_id", p.ProductURLID,
		"oem", p.OEM,
		"classification", p.Classification,
	)
	return nil
}
