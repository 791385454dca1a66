package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/part-price-tracker/internal/engine"
	"github.com/donaldgifford/part-price-tracker/internal/observability"
	"github.com/donaldgifford/part-price-tracker/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and scheduler",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tc := cfg.Observability.Tracing
	shutdownTracing, err := observability.Setup(ctx, log, observability.Config{
		Enabled:       tc.Enabled,
		Endpoint:      tc.Endpoint,
		Insecure:      tc.Insecure,
		Headers:       tc.Headers,
		ServiceName:   tc.ServiceName,
		ServiceVer:    Version,
		SamplingRatio: tc.SamplingRatio,
	})
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}

	st, err := openStore(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	a := newApp(cfg, st, log)
	a.lifetime = ctx

	var sched *engine.Scheduler
	if !cfg.Refresh.ManualOnly {
		sched, err = engine.NewScheduler(a.engine, cfg.Refresh.Interval,
			logger.Component(log, "scheduler"),
			engine.WithRunOnStart(cfg.Refresh.RunOnStart),
		)
		if err != nil {
			return fmt.Errorf("creating scheduler: %w", err)
		}
		sched.Start()
	} else {
		log.Info("scheduler disabled, refresh is manual only")
	}

	e, _ := newRouter(a, log)
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	addr := cfg.Server.Host + ":" + strconv.Itoa(cfg.Server.Port)
	log.Info("starting server", "addr", addr, "database", cfg.Database.Driver)

	serveErr := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			log.Error("server error", "error", err)
		}
	}

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if sched != nil {
		select {
		case <-sched.Stop().Done():
		case <-shutdownCtx.Done():
			log.Warn("refresh cycle did not finish before shutdown")
		}
	}

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Warn("flushing traces failed", "error", err)
	}

	log.Info("server stopped")
	return nil
}
