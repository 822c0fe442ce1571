package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-fetcher/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-fetcher/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-fetcher/internal/platform/telemetry"
)

// RouterConfig contains what SetupRouter wires together.
type RouterConfig struct {
	Logger      *slog.Logger
	ServiceName string

	HealthHandler *handlers.HealthHandler
	QuoteHandler  *handlers.QuoteHandler

	// RequestTimeout bounds /api/v1 requests. Zero disables it.
	RequestTimeout time.Duration
}

// SetupRouter installs middleware and routes on engine.
//
// Middleware order: recovery, request ID, correlation ID, tracing, HTTP
// metrics, request logging. Probes under /-/ skip the request timeout.
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(cfg.ServiceName),
		telemetry.Middleware(),
		middleware.Logging(cfg.Logger),
	)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	apiV1 := engine.Group("/api/v1")
	if cfg.RequestTimeout > 0 {
		apiV1.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterQuoteRoutes(apiV1)
	}
}
