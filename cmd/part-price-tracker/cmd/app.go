package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/donaldgifford/part-price-tracker/api/openapi"
	"github.com/donaldgifford/part-price-tracker/internal/api/handlers"
	"github.com/donaldgifford/part-price-tracker/internal/api/middleware"
	"github.com/donaldgifford/part-price-tracker/internal/config"
	"github.com/donaldgifford/part-price-tracker/internal/engine"
	"github.com/donaldgifford/part-price-tracker/internal/fetcher"
	"github.com/donaldgifford/part-price-tracker/internal/fx"
	"github.com/donaldgifford/part-price-tracker/internal/history"
	"github.com/donaldgifford/part-price-tracker/internal/notify"
	"github.com/donaldgifford/part-price-tracker/internal/retailer"
	"github.com/donaldgifford/part-price-tracker/internal/store"
	"github.com/donaldgifford/part-price-tracker/pkg/logger"
)

// app holds the wired components shared by serve and refresh.
type app struct {
	store   store.Store
	rates   fx.Converter
	history *history.Store
	engine  *engine.Engine

	// lifetime bounds manual cycles started over HTTP.
	lifetime context.Context
}

func openStore(ctx context.Context, cfg *config.DatabaseConfig) (store.Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		st, err := store.NewPostgresStore(ctx, cfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		return st, nil
	default:
		st, err := store.NewSQLiteStore(ctx, cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite database %s: %w", cfg.Path, err)
		}
		return st, nil
	}
}

func newConverter(cfg *config.FXConfig, log *slog.Logger) fx.Converter {
	if cfg.Source == config.FXSourceFixed {
		return fx.NewFixed(cfg.Fixed())
	}
	return fx.NewBankOfCanada(
		fx.WithURL(cfg.ValetURL),
		fx.WithCacheTTL(cfg.CacheTTL),
		fx.WithFallbackRate(cfg.Fallback()),
		fx.WithLogger(logger.Component(log, "fx")),
	)
}

func newTransport(cfg *config.NotificationsConfig, log *slog.Logger) notify.Transport {
	switch cfg.Transport {
	case config.TransportDiscord:
		return notify.NewDiscordTransport(cfg.Discord.WebhookURL)
	case config.TransportNoOp:
		return notify.NewNoOpTransport(logger.Component(log, "notify"))
	default:
		return notify.NewPushbulletTransport(notify.WithPushbulletURL(cfg.Pushbullet.URL))
	}
}

// newApp wires the refresh pipeline on top of an open store.
func newApp(cfg *config.Config, st store.Store, log *slog.Logger) *app {
	rates := newConverter(&cfg.FX, log)

	src := retailer.NewHTTPSource(
		retailer.WithUserAgent(cfg.Fetcher.UserAgent),
		retailer.WithMaxBodyBytes(cfg.Fetcher.MaxBodyBytes),
	)
	f := fetcher.New(src, rates,
		fetcher.WithTimeout(cfg.Fetcher.Timeout),
		fetcher.WithMaxAttempts(cfg.Fetcher.MaxAttempts),
		fetcher.WithBackoff(cfg.Fetcher.BackoffBase, cfg.Fetcher.BackoffMax),
		fetcher.WithLimiter(fetcher.NewKeyedLimiter(cfg.Fetcher.MinInterval)),
		fetcher.WithLogger(logger.Component(log, "fetcher")),
	)

	hist := history.New(st, history.WithLogger(logger.Component(log, "history")))

	dispatcher := notify.NewDispatcher(st, newTransport(&cfg.Notifications, log),
		notify.WithThrottleWindow(cfg.Notifications.ThrottleWindow),
		notify.WithLogger(logger.Component(log, "notify")),
	)

	eng := engine.NewEngine(st, hist, f, dispatcher,
		engine.WithConcurrency(cfg.Refresh.Concurrency),
		engine.WithLogger(logger.Component(log, "engine")),
	)

	return &app{store: st, rates: rates, history: hist, engine: eng}
}

// newRouter builds the Echo instance with middleware, the Huma API, probes,
// metrics and Swagger routes.
func newRouter(a *app, log *slog.Logger) (*echo.Echo, huma.API) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())
	e.Use(middleware.Tracing())

	humaCfg := huma.DefaultConfig("Part Price Tracker API", Version)
	humaCfg.Info.Description = "Tracks PC part prices across retailers and notifies on changes."
	api := humaecho.New(e, humaCfg)
	handlers.RegisterSchemaAliases(api)

	handlers.RegisterHealthRoutes(e, api, handlers.NewHealthHandler(a.store, a.rates, a.engine))
	handlers.RegisterRefreshRoutes(api, handlers.NewRefreshHandler(a.engine, handlers.WithLifetime(a.lifetime)))
	handlers.RegisterHistoryRoutes(api, handlers.NewHistoryHandler(a.history, a.store))
	handlers.RegisterRetailerRoutes(api, handlers.NewRetailerHandler(a.store))
	handlers.RegisterProductURLRoutes(api, handlers.NewProductURLHandler(a.store))
	handlers.RegisterSettingsRoutes(api, handlers.NewSettingsHandler(a.store))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	openapi.RegisterRoutes(e, api)

	return e, api
}

// shutdownTimeout bounds how long in-flight requests and cycles get to finish.
const shutdownTimeout = 30 * time.Second
