// Package main implements a fake retailer site for local development.
// It serves product pages from a JSON fixture so the tracker can be run
// end to end without hitting real stores. Prices, stock and failures can be
// changed at runtime through the /admin endpoints.
//
// Register it as a custom retailer with:
//
//	ppt retailers add --name "Mock Parts" --domain localhost \
//	  --price-selector "#price" --sold-by-selector ".vendor" --sold-by-required "mock parts"
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

type product struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Price   string `json:"price"`
	InStock bool   `json:"in_stock"`
	Seller  string `json:"seller"`
}

type fixture struct {
	Products []product `json:"products"`
}

// catalog is the mutable product set plus pending injected failures.
type catalog struct {
	mu       sync.Mutex
	products map[string]*product
	failures map[string][]int // slug -> queued status codes
}

func newCatalog(f *fixture) *catalog {
	c := &catalog{
		products: make(map[string]*product, len(f.Products)),
		failures: make(map[string][]int),
	}
	for i := range f.Products {
		p := f.Products[i]
		c.products[p.Slug] = &p
	}
	return c
}

// take returns a copy of the product and the next queued failure, if any.
func (c *catalog) take(slug string) (product, int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.products[slug]
	if !ok {
		return product{}, 0, false
	}
	status := 0
	if q := c.failures[slug]; len(q) > 0 {
		status = q[0]
		c.failures[slug] = q[1:]
	}
	return *p, status, true
}

func main() {
	port := flag.Int("port", 8090, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-retailer/testdata/products.json", "path to products fixture")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	f, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "products", len(f.Products))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock retailer", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, newMux(logger, newCatalog(f))),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newMux(logger *slog.Logger, c *catalog) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /p/{slug}", pageHandler(logger, c))
	mux.HandleFunc("POST /admin/products/{slug}", updateHandler(logger, c))
	mux.HandleFunc("POST /admin/products/{slug}/fail", failHandler(logger, c))
	return mux
}

func loadFixture(path string) (*fixture, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var f fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &f, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

var pageTmpl = template.Must(template.New("page").Funcs(template.FuncMap{
	"isUSD": func(price string) bool { return strings.HasPrefix(price, "US$") },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head><title>{{.Title}} | Mock Parts</title></head>
<body>
  <h1>{{.Title}}</h1>
  {{if .InStock}}
  <div class="buy-box">
    <span id="price">{{if not (isUSD .Price)}}${{end}}{{.Price}}</span>
    <p>In stock online</p>
  </div>
  {{else}}
  <div class="buy-box"><p>Out of stock</p></div>
  {{end}}
  <p>Sold and shipped by <span class="vendor">{{.Seller}}</span></p>
</body>
</html>`))

func pageHandler(logger *slog.Logger, c *catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := r.PathValue("slug")
		p, failStatus, ok := c.take(slug)
		if !ok {
			http.NotFound(w, r)
			return
		}
		if failStatus != 0 {
			logger.Info("injected failure", "slug", slug, "status", failStatus)
			http.Error(w, http.StatusText(failStatus), failStatus)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTmpl.Execute(w, p); err != nil {
			logger.Error("rendering page", "slug", slug, "error", err)
		}
	}
}

// updateHandler changes a product's price or stock:
// POST /admin/products/{slug}?price=139.99&in_stock=false
func updateHandler(logger *slog.Logger, c *catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := r.PathValue("slug")
		q := r.URL.Query()

		c.mu.Lock()
		defer c.mu.Unlock()

		p, ok := c.products[slug]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if v := q.Get("price"); v != "" {
			p.Price = v
		}
		if v := q.Get("in_stock"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				http.Error(w, "in_stock must be a boolean", http.StatusBadRequest)
				return
			}
			p.InStock = b
		}
		if v := q.Get("seller"); v != "" {
			p.Seller = v
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(p)
		logger.Info("product updated", "slug", slug, "price", p.Price, "in_stock", p.InStock)
	}
}

// failHandler queues error responses for the next page requests:
// POST /admin/products/{slug}/fail?status=503&count=2
func failHandler(logger *slog.Logger, c *catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := r.PathValue("slug")

		status, err := strconv.Atoi(r.URL.Query().Get("status"))
		if err != nil || status < 400 || status > 599 {
			http.Error(w, "status must be an HTTP error code", http.StatusBadRequest)
			return
		}
		count := 1
		if v := r.URL.Query().Get("count"); v != "" {
			if count, err = strconv.Atoi(v); err != nil || count < 1 {
				http.Error(w, "count must be a positive integer", http.StatusBadRequest)
				return
			}
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.products[slug]; !ok {
			http.NotFound(w, r)
			return
		}
		for range count {
			c.failures[slug] = append(c.failures[slug], status)
		}

		w.WriteHeader(http.StatusNoContent)
		logger.Info("failures queued", "slug", slug, "status", status, "count", count)
	}
}
