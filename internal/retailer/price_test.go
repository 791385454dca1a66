package retailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "plain dollars", input: "$499.99", want: "499.99", wantOK: true},
		{name: "thousands separator", input: "$1,299.99", want: "1299.99", wantOK: true},
		{name: "currency prefix", input: "CA$ 2,049.00", want: "2049", wantOK: true},
		{name: "meta content", input: "849.95", want: "849.95", wantOK: true},
		{name: "first of two prices", input: "Now $899.99 was $999.99", want: "899.99", wantOK: true},
		{name: "no digits", input: "Call for price", wantOK: false},
		{name: "empty", input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := parseAmount(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got.String())
			}
		})
	}
}

func TestDetectCurrency(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		fallback string
		want     string
	}{
		{name: "ca dollar prefix", input: "CA$199.99", fallback: "USD", want: "CAD"},
		{name: "cad suffix", input: "199.99 CAD", fallback: "USD", want: "CAD"},
		{name: "c dollar", input: "C$ 199.99", fallback: "USD", want: "CAD"},
		{name: "us dollar prefix", input: "US$149.00", fallback: "CAD", want: "USD"},
		{name: "usd suffix", input: "149.00 usd", fallback: "CAD", want: "USD"},
		{name: "bare dollar uses fallback", input: "$149.00", fallback: "usd", want: "USD"},
		{name: "bare dollar without fallback", input: "$149.00", fallback: "", want: "CAD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, detectCurrency(tt.input, tt.fallback))
		})
	}
}
