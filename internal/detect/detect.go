// Package detect classifies how a new price sample relates to the previous
// one for the same product URL. Everything here is a pure function of its
// inputs.
package detect

import (
	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

// Classify compares current against previous. A nil previous means the
// product URL has never been observed. Prices compare by exact decimal
// equality. An ok sample without a price counts as unavailable, and a
// fetch error paired with anything but a priced sample carries no signal.
func Classify(previous *domain.PriceSample, current domain.PriceSample) domain.Classification {
	if previous == nil {
		return domain.FirstObservation
	}

	prevAvail, curAvail := previous.Available(), current.Available()
	switch {
	case prevAvail && curAvail:
		switch current.Price.Cmp(*previous.Price) {
		case -1:
			return domain.PriceDrop
		case 1:
			return domain.PriceRise
		default:
			return domain.Unchanged
		}
	case prevAvail:
		return domain.BecameUnavailable
	case curAvail:
		return domain.BecameAvailable
	}

	if previous.Status == domain.StatusFetchError || current.Status == domain.StatusFetchError {
		return domain.NoSignal
	}
	return domain.Unchanged
}

// NewEvent classifies cur against prev and wraps the result for dispatch.
func NewEvent(item domain.WorkItem, prev *domain.PriceSample, cur domain.PriceSample) domain.ChangeEvent {
	return domain.ChangeEvent{
		Item:           item,
		Previous:       prev,
		Current:        cur,
		Classification: Classify(prev, cur),
	}
}

// Notifiable reports whether c is worth alerting a user about.
func Notifiable(c domain.Classification) bool {
	return c == domain.PriceDrop || c == domain.BecameAvailable
}

// Reportable reports whether an event with classification c is handed to
// the dispatcher at all.
func Reportable(c domain.Classification) bool {
	switch c {
	case domain.FirstObservation, domain.Unchanged, domain.NoSignal:
		return false
	default:
		return true
	}
}
