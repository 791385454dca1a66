// Package notify delivers price alerts. A Dispatcher decides whether a
// change event is worth sending and hands the payload to a Transport.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

// ErrMissingCredential is returned by transports that need a credential
// when none is configured.
var ErrMissingCredential = errors.New("notification credential is not configured")

// Transport is an opaque delivery channel. Send returns nil only when the
// message was accepted by the remote service.
type Transport interface {
	Name() string
	Send(ctx context.Context, credential string, p Payload) error
}

// Payload is the content of one alert.
type Payload struct {
	ProductURLID   int64
	OEM            string
	Retailer       string
	URL            string
	Classification domain.Classification
	OldPrice       *decimal.Decimal
	NewPrice       *decimal.Decimal
	Currency       string
}

// NewPayload builds the alert content for a change event.
func NewPayload(ev domain.ChangeEvent) Payload {
	p := Payload{
		ProductURLID:   ev.Item.ProductURL.ID,
		OEM:            ev.Item.ProductURL.OEM,
		Retailer:       ev.Item.Retailer.Name,
		URL:            ev.Item.ProductURL.URL,
		Classification: ev.Classification,
		NewPrice:       ev.Current.Price,
		Currency:       ev.Current.Currency,
	}
	if p.Currency == "" {
		p.Currency = domain.CurrencyCAD
	}
	if ev.Previous != nil {
		p.OldPrice = ev.Previous.Price
	}
	return p
}

// Title is the short headline of the alert.
func (p Payload) Title() string {
	return "Price alert: " + p.OEM
}

// Body is the human readable alert text. Only notifiable classifications
// reach a transport, so other kinds get the headline alone.
func (p Payload) Body() string {
	head := fmt.Sprintf("%s at %s: %s %s.", p.OEM, p.Retailer, money(p.NewPrice), p.Currency)

	var reason string
	switch p.Classification {
	case domain.PriceDrop:
		reason = fmt.Sprintf(" Price dropped from %s to %s %s.",
			money(p.OldPrice), money(p.NewPrice), p.Currency)
	case domain.BecameAvailable:
		reason = " Back in stock."
	}

	return head + reason + " " + p.URL
}

func money(d *decimal.Decimal) string {
	if d == nil {
		return "$?"
	}
	return "$" + d.StringFixed(2)
}
