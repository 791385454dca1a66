package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiclient "github.com/donaldgifford/part-price-tracker/internal/api/client"
	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

func strPtr(s string) *string { return &s }

func TestPrintCycleReport(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	r := &domain.CycleReport{
		ID:         "c-42",
		Trigger:    domain.TriggerCLI,
		StartedAt:  start,
		FinishedAt: start.Add(3250 * time.Millisecond),
		Results: []domain.ItemResult{
			{
				ProductURLID: 1, OEM: "CMK32GX5M2B6000C36", Retailer: "Newegg",
				Status: domain.StatusOK, Price: strPtr("174.99"),
				Classification: domain.PriceDrop, Notified: true,
			},
			{
				ProductURLID: 2, OEM: "CMK32GX5M2B6000C36", Retailer: "BestBuy",
				Status: domain.StatusFetchError, Error: "attempt 3/3: status 503",
			},
			{
				ProductURLID: 3, OEM: "CT2K16G56C46U5", Retailer: "Amazon.ca",
				Status: domain.StatusOK, Price: strPtr("99.00"), Stale: true,
			},
		},
	}
	r.Summarize()

	var buf bytes.Buffer
	require.NoError(t, printCycleReport(&buf, r))
	out := buf.String()

	assert.Contains(t, out, "c-42 (cli)")
	assert.Contains(t, out, "partial_failure")
	assert.Contains(t, out, "3.25s")
	assert.Contains(t, out, "Items:     3 (ok 2, failed 1, stale 1, notified 1)")
	assert.Contains(t, out, "$174.99")
	assert.Contains(t, out, "price_drop")
	assert.Contains(t, out, "stale")
	assert.Contains(t, out, "status 503")
}

func TestPrintSamplesTable(t *testing.T) {
	t.Parallel()

	p := decimal.RequireFromString("1099.9")
	samples := []domain.PriceSample{
		{ObservedAt: time.Now(), Status: domain.StatusOK, Price: &p},
		{ObservedAt: time.Now(), Status: domain.StatusUnavailable, Detail: "out of stock"},
	}

	var buf bytes.Buffer
	require.NoError(t, printSamplesTable(&buf, samples))
	assert.Contains(t, buf.String(), "$1099.90")
	assert.Contains(t, buf.String(), "unavailable")
	assert.Contains(t, buf.String(), "out of stock")
}

func TestPrintSettings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ns   apiclient.NotificationSettings
		want string
	}{
		{name: "masked", ns: apiclient.NotificationSettings{Enabled: true, Credential: "****1234", HasCredential: true}, want: "****1234"},
		{name: "unset", ns: apiclient.NotificationSettings{}, want: "(not set)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, printSettings(&buf, &tt.ns))
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestParseID(t *testing.T) {
	t.Parallel()

	id, err := parseID("12")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	for _, bad := range []string{"", "0", "-3", "abc"} {
		_, err := parseID(bad)
		assert.Error(t, err, bad)
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
