package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quote-fetcher/internal/adapters/http"
	"github.com/jsamuelsen/quote-fetcher/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-fetcher/internal/platform/telemetry"
	"github.com/jsamuelsen/quote-fetcher/internal/ports"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered quotes over HTTP",
		Long: "serve starts the HTTP service. GET /api/v1/quotes?topic=&count= returns the\n" +
			"rendered list; /-/live, /-/ready, /-/build and /-/metrics are operational.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cmd, root)
		},
	}
}

// runServe blocks until ctx is cancelled or the server fails, then shuts
// down gracefully within the configured timeout.
func runServe(ctx context.Context, cmd *cobra.Command, root *rootOptions) error {
	cfg := root.cfg
	logger := root.newLogger(cmd.OutOrStdout())

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// Telemetry is a noop when disabled.
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		Endpoint:       cfg.Telemetry.Endpoint,
		ServiceName:    cfg.Telemetry.ServiceName,
		Version:        cfg.App.Version,
		Environment:    cfg.App.Environment,
		SamplingRate:   cfg.Telemetry.SamplingRate,
		Insecure:       cfg.Telemetry.Insecure,
		ExportInterval: cfg.Telemetry.ExportInterval,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	metrics, err := telemetry.NewQuoteMetrics(reg)
	if err != nil {
		return fmt.Errorf("registering quote metrics: %w", err)
	}

	st, err := newQuoteStack(cfg, logger, metrics)
	if err != nil {
		return err
	}
	defer st.Close()

	healthRegistry := ports.NewHealthRegistry()
	if err := healthRegistry.Register(st.client); err != nil {
		return fmt.Errorf("registering quote client health check: %w", err)
	}

	healthHandler := handlers.NewHealthHandler(healthRegistry, handlers.NewBuildInfo(Version, Commit, BuildTime), reg).
		WithReadinessTimeout(cfg.Client.Timeout)

	server := http.New(&cfg.Server, logger)
	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:         logger,
		ServiceName:    cfg.Telemetry.ServiceName,
		HealthHandler:  healthHandler,
		QuoteHandler:   handlers.NewQuoteHandler(st.service),
		RequestTimeout: cfg.Server.RequestTimeout,
	})

	serverErr, err := server.Start()
	if err != nil {
		return err
	}

	select {
	case err, ok := <-serverErr:
		if ok && err != nil {
			return err
		}

		return nil
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
