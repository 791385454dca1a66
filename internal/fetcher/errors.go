package fetcher

import (
	"context"
	"errors"
	"io"
	"net"
	"syscall"

	"github.com/donaldgifford/part-price-tracker/internal/retailer"
)

// IsTransient reports whether err is worth another attempt: timeouts, 5xx
// and 429 responses, and dropped connections. Everything else, including
// parse failures and 4xx responses, is permanent.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var pe *retailer.ParseError
	if errors.As(err, &pe) {
		return false
	}

	var se *retailer.StatusError
	if errors.As(err, &se) {
		return se.Transient()
	}

	switch {
	case errors.Is(err, retailer.ErrInvalidURL),
		errors.Is(err, retailer.ErrDomainMismatch),
		errors.Is(err, retailer.ErrUnsupportedRetailer),
		errors.Is(err, context.Canceled):
		return false
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ECONNABORTED),
		errors.Is(err, syscall.EPIPE),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, io.EOF):
		return true
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return false
}
