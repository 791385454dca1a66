package retailer

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

const currencyUSD = "USD"

var amountRe = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

// parseAmount returns the first number in s, ignoring thousands separators.
func parseAmount(s string) (decimal.Decimal, bool) {
	m := amountRe.FindString(s)
	if m == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(m, ",", ""))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// detectCurrency reads an explicit currency marker from price text. A bare
// "$" is ambiguous between CAD and USD and resolves to fallback, which
// itself defaults to CAD.
func detectCurrency(s, fallback string) string {
	t := strings.ToUpper(s)
	switch {
	case strings.Contains(t, "CA$"), strings.Contains(t, "CAD"), strings.Contains(t, "C$"):
		return domain.CurrencyCAD
	case strings.Contains(t, "US$"), strings.Contains(t, "USD"):
		return currencyUSD
	}

	if f := strings.ToUpper(strings.TrimSpace(fallback)); f != "" {
		return f
	}
	return domain.CurrencyCAD
}
