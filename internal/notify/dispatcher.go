package notify

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/donaldgifford/part-price-tracker/internal/detect"
	"github.com/donaldgifford/part-price-tracker/internal/keylock"
	"github.com/donaldgifford/part-price-tracker/internal/metrics"
	"github.com/donaldgifford/part-price-tracker/internal/observability"
	"github.com/donaldgifford/part-price-tracker/internal/store"
	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

// DefaultThrottleWindow is the minimum time between two sends for the same
// (product URL, classification) key.
const DefaultThrottleWindow = 24 * time.Hour

// Outcome is what MaybeNotify did with an event.
type Outcome string

// Dispatch outcomes.
const (
	OutcomeDisabled  Outcome = "disabled"
	OutcomeIgnored   Outcome = "ignored"
	OutcomeThrottled Outcome = "throttled"
	OutcomeSent      Outcome = "sent"
	OutcomeFailed    Outcome = "failed"
)

// Dispatcher applies the enabled gate, the notifiable filter and the
// throttle window before handing an alert to its Transport.
type Dispatcher struct {
	records   store.NotificationStore
	transport Transport
	window    time.Duration
	locks     *keylock.Map[string]
	log       *slog.Logger
	nowFunc   func() time.Time
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithThrottleWindow overrides DefaultThrottleWindow.
func WithThrottleWindow(d time.Duration) DispatcherOption {
	return func(disp *Dispatcher) {
		disp.window = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.log = l
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) DispatcherOption {
	return func(d *Dispatcher) {
		d.nowFunc = f
	}
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(records store.NotificationStore, transport Transport, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		records:   records,
		transport: transport,
		window:    DefaultThrottleWindow,
		locks:     keylock.New[string](),
		log:       slog.Default(),
		nowFunc:   time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Transport returns the transport alerts are sent through.
func (d *Dispatcher) Transport() Transport {
	return d.transport
}

// MaybeNotify sends ev if notifications are enabled, its classification is
// notifiable and no send for the same key happened within the throttle
// window. The dedup record is written only after the transport accepted
// the alert, so a failed send is retried by the next qualifying event.
// Errors are logged and reported through the Outcome.
func (d *Dispatcher) MaybeNotify(ctx context.Context, settings domain.NotificationSettings, ev domain.ChangeEvent) Outcome {
	outcome := d.maybeNotify(ctx, settings, ev)
	metrics.NotificationsTotal.WithLabelValues(string(outcome)).Inc()
	return outcome
}

func (d *Dispatcher) maybeNotify(ctx context.Context, settings domain.NotificationSettings, ev domain.ChangeEvent) Outcome {
	if !settings.Enabled {
		return OutcomeDisabled
	}
	if !detect.Notifiable(ev.Classification) {
		return OutcomeIgnored
	}

	id := ev.Item.ProductURL.ID
	key := domain.NotificationKey(id, ev.Classification)
	log := d.log.With("product_url_id", id, "classification", ev.Classification)

	unlock := d.locks.Lock(key)
	defer unlock()

	now := d.nowFunc()
	rec, err := d.records.GetNotificationRecord(ctx, key)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		log.Error("reading notification record", "error", err)
		metrics.NotificationFailuresTotal.Inc()
		return OutcomeFailed
	case now.Sub(rec.LastSentAt) < d.window:
		log.Debug("notification throttled", "last_sent_at", rec.LastSentAt)
		return OutcomeThrottled
	}

	ctx, span := observability.StartNotifySpan(ctx, d.transport.Name(), string(ev.Classification))
	defer span.End()

	if err := d.transport.Send(ctx, settings.TransportCredential, NewPayload(ev)); err != nil {
		span.RecordError(err)
		log.Warn("notification send failed", "transport", d.transport.Name(), "error", err)
		metrics.NotificationFailuresTotal.Inc()
		return OutcomeFailed
	}

	if err := d.records.UpsertNotificationRecord(ctx, &domain.NotificationRecord{
		Key:            key,
		ProductURLID:   id,
		Classification: ev.Classification,
		LastSentAt:     now,
	}); err != nil {
		// The alert went out; only the dedup memory is lost.
		log.Error("recording notification", "error", err)
	}

	log.Info("notification sent", "transport", d.transport.Name())
	return OutcomeSent
}
