package retailer_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/part-price-tracker/internal/retailer"
	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

func mustDoc(t *testing.T, body string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	require.NoError(t, err)
	return doc
}

func builtinRetailer(name, dom, soldBy string) domain.Retailer {
	return domain.Retailer{
		ID:              1,
		Name:            name,
		Domain:          dom,
		SoldByRequired:  soldBy,
		DefaultCurrency: "CAD",
		Active:          true,
		Builtin:         true,
	}
}

func TestForRetailer_Kinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		retailer domain.Retailer
		want     retailer.Kind
		wantOK   bool
	}{
		{
			name:     "match by domain",
			retailer: domain.Retailer{Name: "CC", Domain: "canadacomputers.com"},
			want:     retailer.KindCanadaComputers,
			wantOK:   true,
		},
		{
			name:     "match by name",
			retailer: domain.Retailer{Name: "MemoryExpress"},
			want:     retailer.KindMemoryExpress,
			wantOK:   true,
		},
		{
			name:     "amazon.ca",
			retailer: domain.Retailer{Name: "Amazon.ca", Domain: "amazon.ca"},
			want:     retailer.KindAmazon,
			wantOK:   true,
		},
		{
			name:     "custom with selector",
			retailer: domain.Retailer{Name: "Vuugo", Domain: "vuugo.com", PriceSelector: ".our-price"},
			want:     retailer.KindSelector,
			wantOK:   true,
		},
		{
			name:     "custom without selector",
			retailer: domain.Retailer{Name: "Vuugo", Domain: "vuugo.com"},
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a, ok := retailer.ForRetailer(tt.retailer)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, a.Kind())
				assert.Equal(t, tt.retailer.Name, a.Name())
			}
		})
	}
}

func TestAdapter_Resolve(t *testing.T) {
	t.Parallel()

	a, ok := retailer.ForRetailer(builtinRetailer("BestBuy", "bestbuy.ca", ""))
	require.True(t, ok)

	tests := []struct {
		name    string
		url     string
		want    string
		wantErr error
	}{
		{
			name: "strips fragment",
			url:  "https://www.bestbuy.ca/en-ca/product/17952516#reviews",
			want: "https://www.bestbuy.ca/en-ca/product/17952516",
		},
		{
			name: "keeps query",
			url:  " https://bestbuy.ca/p?sku=1 ",
			want: "https://bestbuy.ca/p?sku=1",
		},
		{name: "relative", url: "/en-ca/product/1", wantErr: retailer.ErrInvalidURL},
		{name: "ftp scheme", url: "ftp://bestbuy.ca/x", wantErr: retailer.ErrInvalidURL},
		{name: "other domain", url: "https://www.newegg.ca/p/1", wantErr: retailer.ErrDomainMismatch},
		{name: "lookalike domain", url: "https://notbestbuy.ca/p/1", wantErr: retailer.ErrDomainMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := a.Resolve(domain.ProductURL{URL: tt.url})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAdapter_Extract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		retailer      domain.Retailer
		body          string
		wantPrice     string
		wantCurrency  string
		wantAvailable bool
		wantErr       error
	}{
		{
			name:     "canada computers itemprop",
			retailer: builtinRetailer("CanadaComputers", "canadacomputers.com", "canada computers"),
			body: `<html><body>
				<span itemprop="price">$1,099.99</span>
				<p>Sold & shipped by Canada Computers</p>
				<p>In stock online</p></body></html>`,
			wantPrice:     "1099.99",
			wantCurrency:  "CAD",
			wantAvailable: true,
		},
		{
			name:     "canada computers text fallback",
			retailer: builtinRetailer("CanadaComputers", "canadacomputers.com", ""),
			body:     `<html><body><div><b>Our price:</b> <em>$ 329.00</em></div></body></html>`,
			wantPrice:     "329",
			wantCurrency:  "CAD",
			wantAvailable: true,
		},
		{
			name:     "memory express og meta",
			retailer: builtinRetailer("MemoryExpress", "memoryexpress.com", ""),
			body: `<html><head><meta property="og:price:amount" content="849.95"></head>
				<body><div class="price">$899.99</div></body></html>`,
			wantPrice:     "849.95",
			wantCurrency:  "CAD",
			wantAvailable: true,
		},
		{
			name:     "memory express without fallback",
			retailer: builtinRetailer("MemoryExpress", "memoryexpress.com", ""),
			body:     `<html><body><p>Only $5 shipping</p></body></html>`,
			wantErr:  retailer.ErrPriceNotFound,
		},
		{
			name:     "best buy seller container",
			retailer: builtinRetailer("BestBuy", "bestbuy.ca", "best buy"),
			body: `<html><body>
				<div class="pricing-price"><span class="sr-only">$579.99</span></div>
				<div class="seller-info">Sold and shipped by Best Buy</div></body></html>`,
			wantPrice:     "579.99",
			wantCurrency:  "CAD",
			wantAvailable: true,
		},
		{
			name:     "newegg marketplace seller rejected",
			retailer: builtinRetailer("Newegg", "newegg.ca", "newegg"),
			body: `<html><body><li class="price-current">$199.99</li>
				<div>Sold by: GamerParts Inc</div></body></html>`,
			wantErr: retailer.ErrNotSoldByRetailer,
		},
		{
			name:     "amazon merchant info and usd marker",
			retailer: builtinRetailer("Amazon.ca", "amazon.ca", "amazon"),
			body: `<html><body><span class="a-price"><span class="a-offscreen">US$129.00</span></span>
				<div id="merchant-info">Ships from and sold by Amazon.ca.</div></body></html>`,
			wantPrice:     "129",
			wantCurrency:  "USD",
			wantAvailable: true,
		},
		{
			name:     "amazon currently unavailable",
			retailer: builtinRetailer("Amazon.ca", "amazon.ca", ""),
			body:     `<html><body><div id="availability"><span>Currently unavailable.</span></div></body></html>`,
			wantAvailable: false,
		},
		{
			name:     "out of stock ignores stale price",
			retailer: builtinRetailer("Newegg", "newegg.ca", ""),
			body: `<html><body><li class="price-current">$199.99</li>
				<p>OUT OF STOCK</p></body></html>`,
			wantAvailable: false,
		},
		{
			name: "custom selector with default usd",
			retailer: domain.Retailer{
				Name:            "PartsDirect",
				Domain:          "partsdirect.example",
				PriceSelector:   "#our-price",
				SoldBySelector:  ".vendor",
				SoldByRequired:  "partsdirect",
				DefaultCurrency: "USD",
			},
			body: `<html><body><span id="our-price">$89.50</span>
				<span class="vendor">PartsDirect</span></body></html>`,
			wantPrice:     "89.5",
			wantCurrency:  "USD",
			wantAvailable: true,
		},
		{
			name: "custom selector missing seller",
			retailer: domain.Retailer{
				Name:           "PartsDirect",
				PriceSelector:  "#our-price",
				SoldBySelector: ".vendor",
				SoldByRequired: "partsdirect",
			},
			body:    `<html><body><span id="our-price">$89.50</span></body></html>`,
			wantErr: retailer.ErrNotSoldByRetailer,
		},
		{
			name:     "unparseable price",
			retailer: domain.Retailer{Name: "PartsDirect", PriceSelector: "#our-price"},
			body:     `<html><body><span id="our-price">Call us</span></body></html>`,
			wantErr:  retailer.ErrPriceUnparseable,
		},
		{
			name:     "script content ignored",
			retailer: builtinRetailer("CanadaComputers", "canadacomputers.com", ""),
			body:     `<html><body><script>var p = "$10";</script><p>No listing</p></body></html>`,
			wantErr:  retailer.ErrPriceNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a, ok := retailer.ForRetailer(tt.retailer)
			require.True(t, ok)

			ex, err := a.Extract(mustDoc(t, tt.body))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				var pe *retailer.ParseError
				assert.ErrorAs(t, err, &pe)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAvailable, ex.Available)
			if tt.wantAvailable {
				assert.Equal(t, tt.wantPrice, ex.Amount.String())
				assert.Equal(t, tt.wantCurrency, ex.Currency)
			}
		})
	}
}

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	reg := retailer.NewRegistry([]domain.Retailer{
		{ID: 1, Name: "CanadaComputers", Domain: "canadacomputers.com"},
		{ID: 2, Name: "Vuugo"},
		{ID: 3, Name: "PartsDirect", PriceSelector: ".price"},
	})
	assert.Equal(t, 2, reg.Len())

	a, err := reg.Lookup(1)
	require.NoError(t, err)
	assert.Equal(t, retailer.KindCanadaComputers, a.Kind())

	_, err = reg.Lookup(2)
	require.ErrorIs(t, err, retailer.ErrUnsupportedRetailer)

	_, err = reg.Lookup(99)
	require.ErrorIs(t, err, retailer.ErrUnsupportedRetailer)
}

func TestValidateSelectors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		retailer domain.Retailer
		wantErr  bool
	}{
		{name: "no selectors", retailer: domain.Retailer{Name: "Vuugo"}},
		{name: "valid", retailer: domain.Retailer{PriceSelector: "#our-price, .price > span", SoldBySelector: ".vendor"}},
		{name: "bad price selector", retailer: domain.Retailer{PriceSelector: "div[price"}, wantErr: true},
		{name: "bad seller selector", retailer: domain.Retailer{PriceSelector: ".p", SoldBySelector: ":nth-child("}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := retailer.ValidateSelectors(tt.retailer)
			if tt.wantErr {
				require.ErrorIs(t, err, retailer.ErrInvalidSelector)
				return
			}
			require.NoError(t, err)
		})
	}
}
