package main

import (
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/quote-fetcher/internal/adapters/cache"
	"github.com/jsamuelsen/quote-fetcher/internal/adapters/clients"
	"github.com/jsamuelsen/quote-fetcher/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quote-fetcher/internal/app"
	"github.com/jsamuelsen/quote-fetcher/internal/platform/config"
	"github.com/jsamuelsen/quote-fetcher/internal/platform/telemetry"
)

// quoteStack is the quote service and the adapters behind it.
type quoteStack struct {
	client  *acl.QuoteClient
	cache   *cache.QuoteCache
	service *app.QuoteService
}

// newQuoteStack wires the downstream client, the optional cache and the
// quote service. metrics may be nil.
func newQuoteStack(cfg *config.Config, logger *slog.Logger, metrics *telemetry.QuoteMetrics) (*quoteStack, error) {
	retry := cfg.Client.Retry
	retry.MaxAttempts = cfg.Services.Quote.RetryAttempts

	httpClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Services.Quote.BaseURL,
		ServiceName: cfg.Services.Quote.Name,
		Timeout:     cfg.Client.Timeout,
		Retry:       retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating HTTP client: %w", err)
	}

	st := &quoteStack{
		client: acl.NewQuoteClient(acl.QuoteClientConfig{
			Client:      httpClient,
			ServiceName: cfg.Services.Quote.Name,
			Logger:      logger,
		}),
	}

	svcCfg := app.QuoteServiceConfig{
		QuoteClient: st.client,
		Metrics:     metrics,
		Logger:      logger,
	}

	// Assigned only when enabled so the port never holds a typed nil.
	if cfg.Cache.Enabled {
		st.cache = cache.NewQuoteCache(cfg.Cache.MaxSize)
		svcCfg.Cache = st.cache
		svcCfg.CacheTTL = cfg.Cache.TTL
	}

	st.service = app.NewQuoteService(svcCfg)

	return st, nil
}

// Close releases the cache's background worker.
func (s *quoteStack) Close() {
	if s.cache != nil {
		s.cache.Stop()
	}
}
