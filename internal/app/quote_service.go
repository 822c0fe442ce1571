// Package app contains application services that orchestrate use cases.
// It coordinates domain logic and infrastructure through ports and holds no
// HTTP or CLI specifics.
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quote-fetcher/internal/domain"
	"github.com/jsamuelsen/quote-fetcher/internal/platform/logging"
	"github.com/jsamuelsen/quote-fetcher/internal/platform/telemetry"
	"github.com/jsamuelsen/quote-fetcher/internal/ports"
)

const operationFetchQuotes = "fetch_quotes"

// QuoteService fetches quotes for a topic and turns every outcome into a
// renderable result.
type QuoteService struct {
	quoteClient ports.QuoteClient
	cache       ports.QuoteCache
	cacheTTL    time.Duration
	metrics     *telemetry.QuoteMetrics
	executor    *Executor
	logger      *slog.Logger
}

// QuoteServiceConfig contains the dependencies of the quote service.
// Cache and Metrics are optional.
type QuoteServiceConfig struct {
	QuoteClient ports.QuoteClient
	Cache       ports.QuoteCache
	CacheTTL    time.Duration
	Metrics     *telemetry.QuoteMetrics
	Logger      *slog.Logger
}

// NewQuoteService creates a quote service. It panics without a QuoteClient.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.QuoteClient == nil {
		panic("app: QuoteClient is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(slog.String("component", "app.QuoteService"))

	return &QuoteService{
		quoteClient: cfg.QuoteClient,
		cache:       cfg.Cache,
		cacheTTL:    cfg.CacheTTL,
		metrics:     cfg.Metrics,
		executor:    NewExecutor(logger),
		logger:      logger,
	}
}

// fetched is what the perform step hands to verification.
type fetched struct {
	quotes []domain.Quote
	cached bool
}

// FetchQuotes requests count quotes for topic and returns exactly one
// result. Failures of any kind yield the "not found" fallback; the cause
// is logged, never returned.
func (s *QuoteService) FetchQuotes(ctx context.Context, topic string, count int) domain.QuoteResult {
	start := time.Now()
	query := domain.QuoteQuery{Topic: topic, Count: count}

	logger := logging.FromContextOr(ctx, s.logger).With(
		slog.String("topic", topic),
		slog.Int("count", count),
	)
	ctx = logging.WithContext(ctx, logger)

	outcome := telemetry.OutcomeRendered

	op := Operation[domain.QuoteQuery, fetched, fetched, domain.QuoteResult]{
		Name:    operationFetchQuotes,
		Perform: s.perform,
		Verify: func(ctx context.Context, q domain.QuoteQuery, f fetched) (fetched, error) {
			if len(f.quotes) < q.Count {
				outcome = telemetry.OutcomeTruncated
				logger.DebugContext(ctx, "quote service returned fewer quotes than requested",
					slog.Int("returned", len(f.quotes)),
				)
			}

			if f.cached {
				outcome = telemetry.OutcomeCached
			}

			return fetched{quotes: domain.ClampQuotes(f.quotes, q.Count), cached: f.cached}, nil
		},
		Archive: s.archive,
		Respond: func(_ context.Context, q domain.QuoteQuery, f fetched) (domain.QuoteResult, error) {
			return domain.NewQuoteResult(q.Topic, f.quotes, q.Count), nil
		},
	}

	result, err := Execute(ctx, s.executor, op, query)
	if err != nil {
		outcome = telemetry.OutcomeFailed
		if domain.IsNotFound(err) {
			outcome = telemetry.OutcomeNotFound
		}

		logger.WarnContext(ctx, "quote fetch failed", slog.Any("error", err))
		result = domain.NewFailedResult(topic)
	} else {
		logger.InfoContext(ctx, "quotes fetched", slog.Int("items", len(result.Items)))
	}

	s.metrics.RecordFetch(ctx, outcome, time.Since(start))

	return result
}

func (s *QuoteService) perform(ctx context.Context, q domain.QuoteQuery) (fetched, error) {
	if s.cache != nil {
		if quotes, ok := s.cache.Get(ctx, q); ok {
			return fetched{quotes: quotes, cached: true}, nil
		}
	}

	quotes, err := s.quoteClient.FetchQuotes(ctx, q.Topic, q.Count)
	if err != nil {
		return fetched{}, err
	}

	return fetched{quotes: quotes}, nil
}

// archive stores fresh successful fetches; failures never reach this step.
func (s *QuoteService) archive(ctx context.Context, q domain.QuoteQuery, f fetched) error {
	if s.cache == nil || f.cached || s.cacheTTL <= 0 {
		return nil
	}

	s.cache.Set(ctx, q, f.quotes, s.cacheTTL)

	return nil
}
