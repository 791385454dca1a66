package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

const (
	colorGreen  = 0x2ECC71 // price drop
	colorBlue   = 0x3498DB // back in stock
	colorOrange = 0xE67E22 // anything else
)

// DiscordTransport sends alerts through a Discord webhook. The credential
// is the webhook URL; when it is empty the webhook given at construction
// is used.
type DiscordTransport struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordTransport creates a new DiscordTransport.
func NewDiscordTransport(webhookURL string, opts ...DiscordOption) *DiscordTransport {
	d := &DiscordTransport{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 8 * time.Second},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordTransport.
type DiscordOption func(*DiscordTransport)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordTransport) {
		d.client = c
	}
}

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	URL         string              `json:"url,omitempty"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// Name returns "discord".
func (d *DiscordTransport) Name() string { return "discord" }

// Send posts p as a single embed.
func (d *DiscordTransport) Send(ctx context.Context, credential string, p Payload) error {
	webhook := credential
	if webhook == "" {
		webhook = d.webhookURL
	}
	if webhook == "" {
		return ErrMissingCredential
	}

	payload := discordWebhookPayload{Embeds: []discordEmbed{buildEmbed(p)}}
	return d.post(ctx, webhook, payload)
}

func buildEmbed(p Payload) discordEmbed {
	embed := discordEmbed{
		Title:       p.Title(),
		URL:         p.URL,
		Color:       classificationColor(p.Classification),
		Description: p.Body(),
		Fields: []discordEmbedField{
			{Name: "Retailer", Value: p.Retailer, Inline: true},
			{Name: "Price", Value: money(p.NewPrice) + " " + p.Currency, Inline: true},
		},
	}
	if p.OldPrice != nil {
		embed.Fields = append(embed.Fields, discordEmbedField{
			Name: "Previous", Value: money(p.OldPrice) + " " + p.Currency, Inline: true,
		})
	}
	return embed
}

func classificationColor(c domain.Classification) int {
	switch c {
	case domain.PriceDrop:
		return colorGreen
	case domain.BecameAvailable:
		return colorBlue
	default:
		return colorOrange
	}
}

func (d *DiscordTransport) post(ctx context.Context, webhook string, payload discordWebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		webhook,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
