package retailer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultUserAgent identifies the tracker to retailer sites.
	DefaultUserAgent = "Mozilla/5.0 (compatible; PCPartPriceTracker/1.0)"

	defaultMaxBodyBytes = 4 << 20
)

// HTTPSource implements Source over net/http.
type HTTPSource struct {
	client       *http.Client
	userAgent    string
	maxBodyBytes int64
}

// SourceOption configures an HTTPSource.
type SourceOption func(*HTTPSource)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) SourceOption {
	return func(s *HTTPSource) {
		s.client = c
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) SourceOption {
	return func(s *HTTPSource) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

// WithMaxBodyBytes caps how much of a response body is read.
func WithMaxBodyBytes(n int64) SourceOption {
	return func(s *HTTPSource) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// NewHTTPSource creates an HTTPSource. Timeouts are left to the caller's
// context so each attempt can be bounded independently.
func NewHTTPSource(opts ...SourceOption) *HTTPSource {
	s := &HTTPSource{
		client:       &http.Client{Timeout: 30 * time.Second},
		userAgent:    DefaultUserAgent,
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get implements Source. Non-2xx responses are returned as pages, not errors;
// only transport failures produce an error.
func (s *HTTPSource) Get(ctx context.Context, target string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-CA,en;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &Page{URL: target, StatusCode: resp.StatusCode, Body: body}, nil
}
