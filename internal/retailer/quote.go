package retailer

import (
	"bytes"
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"github.com/donaldgifford/part-price-tracker/internal/fx"
	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

// Quote is a normalized reading of one listing. Price is in CAD and is nil
// when the listing is not purchasable.
type Quote struct {
	URL              string
	Price            *decimal.Decimal
	OriginalCurrency string
	RawPrice         string
	Available        bool
	Seller           string
}

// GetQuote performs a single attempt: resolve the URL, fetch it, extract the
// price and normalize it to CAD.
func GetQuote(
	ctx context.Context,
	src Source,
	a Adapter,
	conv fx.Converter,
	pu domain.ProductURL,
) (*Quote, error) {
	target, err := a.Resolve(pu)
	if err != nil {
		return nil, err
	}

	page, err := src.Get(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", target, err)
	}
	if page.StatusCode < 200 || page.StatusCode > 299 {
		return nil, &StatusError{StatusCode: page.StatusCode, URL: target}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
	if err != nil {
		return nil, &ParseError{Retailer: a.Name(), Err: err}
	}

	ex, err := a.Extract(doc)
	if err != nil {
		return nil, err
	}

	q := &Quote{
		URL:              target,
		OriginalCurrency: ex.Currency,
		RawPrice:         ex.RawPrice,
		Available:        ex.Available,
		Seller:           ex.Seller,
	}
	if !ex.Available {
		return q, nil
	}

	cad, err := conv.ToCAD(ctx, ex.Amount, ex.Currency)
	if err != nil {
		return nil, &ParseError{Retailer: a.Name(), Err: err}
	}
	q.Price = &cad
	return q, nil
}
