package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultPushbulletURL is the Pushbullet v2 API base.
const DefaultPushbulletURL = "https://api.pushbullet.com/v2"

// PushbulletTransport sends alerts as Pushbullet notes. The credential is
// the user's access token.
type PushbulletTransport struct {
	baseURL string
	client  *http.Client
}

// PushbulletOption configures a PushbulletTransport.
type PushbulletOption func(*PushbulletTransport)

// WithPushbulletURL overrides the API base URL.
func WithPushbulletURL(u string) PushbulletOption {
	return func(t *PushbulletTransport) {
		t.baseURL = strings.TrimRight(u, "/")
	}
}

// WithPushbulletHTTPClient sets a custom HTTP client.
func WithPushbulletHTTPClient(c *http.Client) PushbulletOption {
	return func(t *PushbulletTransport) {
		t.client = c
	}
}

// NewPushbulletTransport creates a new PushbulletTransport.
func NewPushbulletTransport(opts ...PushbulletOption) *PushbulletTransport {
	t := &PushbulletTransport{
		baseURL: DefaultPushbulletURL,
		client:  &http.Client{Timeout: 8 * time.Second},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

type pushbulletNote struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Name returns "pushbullet".
func (t *PushbulletTransport) Name() string { return "pushbullet" }

// Send posts p as a note.
func (t *PushbulletTransport) Send(ctx context.Context, credential string, p Payload) error {
	if credential == "" {
		return ErrMissingCredential
	}

	body, err := json.Marshal(pushbulletNote{Type: "note", Title: p.Title(), Body: p.Body()})
	if err != nil {
		return fmt.Errorf("marshaling pushbullet note: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/pushes", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating pushbullet request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Access-Token", credential)

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending pushbullet note: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if readErr != nil {
			return fmt.Errorf("pushbullet returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("pushbullet returned %d: %s", resp.StatusCode, respBody)
	}
	return nil
}
