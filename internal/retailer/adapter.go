package retailer

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

// Kind tags the adapter variant used for a retailer.
type Kind string

// Adapter kinds. Every built-in retailer has its own kind; retailers added at
// runtime use KindSelector with their own CSS selectors.
const (
	KindCanadaComputers Kind = "canadacomputers"
	KindMemoryExpress   Kind = "memoryexpress"
	KindBestBuy         Kind = "bestbuy"
	KindNewegg          Kind = "newegg"
	KindAmazon          Kind = "amazon"
	KindSelector        Kind = "selector"
)

var (
	dollarTextRe   = regexp.MustCompile(`\$\s*\d`)
	outOfStockRe   = regexp.MustCompile(`(?i)out of stock`)
	amazonNoBuyRe  = regexp.MustCompile(`(?i)currently unavailable|out of stock`)
	sellerTextRe   = regexp.MustCompile(`(?i)(sold by|ships from|seller|sold & shipped)`)
	neweggSellerRe = regexp.MustCompile(`(?i)(sold by|ships from|seller|sold & shipped|marketplace)`)
)

// priceSource is one place a price may be found. When attr is set the value
// comes from that attribute instead of the element text.
type priceSource struct {
	css  string
	attr string
}

type profile struct {
	prices       []priceSource
	textFallback bool
	sellerCSS    []string
	sellerText   *regexp.Regexp
	unavailable  *regexp.Regexp
}

// builtin lists the markup rules for each supported retailer, keyed by the
// fragment matched against the retailer's name or domain.
var builtin = map[Kind]profile{
	KindCanadaComputers: {
		prices: []priceSource{
			{css: "span[itemprop='price']"},
			{css: ".price"},
			{css: ".product-price span"},
			{css: ".price-big"},
		},
		textFallback: true,
		sellerText:   sellerTextRe,
		unavailable:  outOfStockRe,
	},
	KindMemoryExpress: {
		prices: []priceSource{
			{css: "meta[property='og:price:amount']", attr: "content"},
			{css: ".product-price .price"},
			{css: ".price"},
			{css: "span[itemprop='price']"},
		},
		sellerText:  sellerTextRe,
		unavailable: outOfStockRe,
	},
	KindBestBuy: {
		prices: []priceSource{
			{css: ".pricing-price .sr-only"},
			{css: ".priceView-customer-price span"},
			{css: ".priceBlock"},
		},
		textFallback: true,
		sellerCSS:    []string{".fulfillment-fulfillment-details", ".seller-info", ".productSellerContainer"},
		unavailable:  outOfStockRe,
	},
	KindNewegg: {
		prices: []priceSource{
			{css: ".price-current"},
			{css: ".product-price .price"},
			{css: ".priceView-hero-price span"},
		},
		textFallback: true,
		sellerText:   neweggSellerRe,
		unavailable:  outOfStockRe,
	},
	KindAmazon: {
		prices: []priceSource{
			{css: "#priceblock_ourprice"},
			{css: "#priceblock_dealprice"},
			{css: ".a-price .a-offscreen"},
		},
		sellerCSS:   []string{"#merchant-info"},
		sellerText:  sellerTextRe,
		unavailable: amazonNoBuyRe,
	},
}

// builtinOrder fixes the match order so a retailer never matches two kinds
// nondeterministically.
var builtinOrder = []Kind{KindCanadaComputers, KindMemoryExpress, KindBestBuy, KindNewegg, KindAmazon}

// pageAdapter is the single Adapter implementation; its behavior is fully
// determined by kind and profile.
type pageAdapter struct {
	kind     Kind
	profile  profile
	retailer domain.Retailer
}

// ForRetailer returns the adapter for r. Retailers whose name or domain
// contains a built-in fragment get that built-in variant; other retailers
// need a price selector. The boolean is false when no adapter applies.
func ForRetailer(r domain.Retailer) (Adapter, bool) {
	name := strings.ToLower(r.Name)
	dom := strings.ToLower(r.Domain)
	for _, k := range builtinOrder {
		frag := string(k)
		if strings.Contains(name, frag) || (dom != "" && strings.Contains(dom, frag)) {
			return &pageAdapter{kind: k, profile: builtin[k], retailer: r}, true
		}
	}

	if strings.TrimSpace(r.PriceSelector) == "" {
		return nil, false
	}
	p := profile{
		prices:       []priceSource{{css: r.PriceSelector}},
		textFallback: true,
		unavailable:  outOfStockRe,
	}
	if r.SoldBySelector != "" {
		p.sellerCSS = []string{r.SoldBySelector}
	}
	return &pageAdapter{kind: KindSelector, profile: p, retailer: r}, true
}

// ValidateSelectors checks that the custom selectors of r compile. goquery
// silently matches nothing for a bad selector, so this runs before a
// retailer is stored.
func ValidateSelectors(r domain.Retailer) error {
	for field, sel := range map[string]string{
		"price_selector":   r.PriceSelector,
		"sold_by_selector": r.SoldBySelector,
	} {
		if strings.TrimSpace(sel) == "" {
			continue
		}
		if _, err := cascadia.ParseGroup(sel); err != nil {
			return fmt.Errorf("%w: %s %q: %w", ErrInvalidSelector, field, sel, err)
		}
	}
	return nil
}

func (a *pageAdapter) Name() string { return a.retailer.Name }

func (a *pageAdapter) Kind() Kind { return a.kind }

func (a *pageAdapter) Resolve(pu domain.ProductURL) (string, error) {
	raw := strings.TrimSpace(pu.URL)
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrInvalidURL, raw, err)
	}
	if !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}

	if dom := strings.ToLower(strings.TrimPrefix(a.retailer.Domain, "www.")); dom != "" {
		host := strings.ToLower(u.Hostname())
		if host != dom && !strings.HasSuffix(host, "."+dom) {
			return "", fmt.Errorf("%w: %s is not on %s", ErrDomainMismatch, host, dom)
		}
	}

	u.Fragment = ""
	u.RawFragment = ""
	return u.String(), nil
}

func (a *pageAdapter) Extract(doc *goquery.Document) (*Extraction, error) {
	texts := textNodes(doc)

	seller := a.seller(doc, texts)
	if req := strings.ToLower(strings.TrimSpace(a.retailer.SoldByRequired)); req != "" {
		if !strings.Contains(strings.ToLower(seller), req) {
			return nil, &ParseError{Retailer: a.retailer.Name, Err: ErrNotSoldByRetailer}
		}
	}

	raw := a.priceText(doc, texts)
	ex := &Extraction{RawPrice: raw, Seller: seller, Available: true}

	if a.profile.unavailable != nil && firstMatch(texts, a.profile.unavailable) != "" {
		ex.Available = false
		return ex, nil
	}

	if raw == "" {
		return nil, &ParseError{Retailer: a.retailer.Name, Err: ErrPriceNotFound}
	}

	amount, ok := parseAmount(raw)
	if !ok {
		return nil, &ParseError{
			Retailer: a.retailer.Name,
			Err:      fmt.Errorf("%w: %q", ErrPriceUnparseable, raw),
		}
	}
	ex.Amount = amount
	ex.Currency = detectCurrency(raw, a.retailer.DefaultCurrency)
	return ex, nil
}

func (a *pageAdapter) priceText(doc *goquery.Document, texts []string) string {
	for _, src := range a.profile.prices {
		sel := doc.Find(src.css).First()
		if sel.Length() == 0 {
			continue
		}
		var v string
		if src.attr != "" {
			v = sel.AttrOr(src.attr, "")
		} else {
			v = sel.Text()
		}
		if v = collapse(v); v != "" {
			return v
		}
	}
	if a.profile.textFallback {
		return firstMatch(texts, dollarTextRe)
	}
	return ""
}

func (a *pageAdapter) seller(doc *goquery.Document, texts []string) string {
	for _, css := range a.profile.sellerCSS {
		if v := collapse(doc.Find(css).First().Text()); v != "" {
			return v
		}
	}
	if a.profile.sellerText != nil {
		return firstMatch(texts, a.profile.sellerText)
	}
	return ""
}

// textNodes returns the trimmed, non-empty text nodes of the document body in
// document order, skipping script and style content.
func textNodes(doc *goquery.Document) []string {
	var out []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "noscript") {
			return
		}
		if n.Type == html.TextNode {
			if t := collapse(n.Data); t != "" {
				out = append(out, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return out
}

func firstMatch(texts []string, re *regexp.Regexp) string {
	for _, t := range texts {
		if re.MatchString(t) {
			return t
		}
	}
	return ""
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
