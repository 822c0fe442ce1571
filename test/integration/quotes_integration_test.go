//go:build integration

package integration

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-fetcher/internal/adapters/cache"
	"github.com/jsamuelsen/quote-fetcher/internal/adapters/clients"
	"github.com/jsamuelsen/quote-fetcher/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quote-fetcher/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-fetcher/internal/app"
	"github.com/jsamuelsen/quote-fetcher/internal/domain"
	"github.com/jsamuelsen/quote-fetcher/internal/platform/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newQuoteClient wires an ACL quote client the way the binary does, from
// the repository's base configuration pointed at baseURL.
func newQuoteClient(t *testing.T, baseURL string, attempts int) *acl.QuoteClient {
	t.Helper()

	cfg, err := config.LoadFrom("../../configs", "")
	require.NoError(t, err)

	retry := cfg.Client.Retry
	retry.MaxAttempts = attempts
	retry.InitialInterval = time.Millisecond
	retry.MaxInterval = 5 * time.Millisecond

	circuit := cfg.Client.CircuitBreaker
	circuit.MaxFailures = 2
	circuit.Timeout = time.Hour

	client, err := clients.New(&clients.Config{
		ServiceName: cfg.Services.Quote.Name,
		BaseURL:     baseURL,
		Timeout:     time.Second,
		Retry:       retry,
		Circuit:     circuit,
		Transport:   cfg.Client.Transport,
		Logger:      discardLogger(),
	})
	require.NoError(t, err)

	return acl.NewQuoteClient(acl.QuoteClientConfig{Client: client, Logger: discardLogger()})
}

func TestConfig_RepositoryProfilesValidate(t *testing.T) {
	for _, profile := range []string{"", "local", "prod"} {
		t.Run("profile "+profile, func(t *testing.T) {
			cfg, err := config.LoadFrom("../../configs", profile)
			require.NoError(t, err)
			require.NoError(t, cfg.Validate())

			assert.Equal(t, 1, cfg.Services.Quote.RetryAttempts)
			assert.Equal(t, "https://wp.zybooks.com/quotes.php", cfg.Services.Quote.BaseURL)
		})
	}
}

func TestQuoteClient_DecodesArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "science", r.URL.Query().Get("topic"))
		assert.Equal(t, "2", r.URL.Query().Get("count"))

		_, _ = io.WriteString(w, `[{"quote":"A","source":"X","extra":1},{"quote":"B","source":"Y"}]`)
	}))
	defer server.Close()

	quotes, err := newQuoteClient(t, server.URL, 1).FetchQuotes(context.Background(), "science", 2)

	require.NoError(t, err)
	assert.Equal(t, []domain.Quote{{Text: "A", Source: "X"}, {Text: "B", Source: "Y"}}, quotes)
}

func TestQuoteClient_SingleAttemptDoesNotRetry(t *testing.T) {
	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newQuoteClient(t, server.URL, 1).FetchQuotes(context.Background(), "science", 1)

	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))
	assert.Equal(t, int32(1), hits.Load())
}

func TestQuoteClient_RetriesTransientFailures(t *testing.T) {
	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}

		_, _ = io.WriteString(w, `[{"quote":"A","source":"X"}]`)
	}))
	defer server.Close()

	quotes, err := newQuoteClient(t, server.URL, 3).FetchQuotes(context.Background(), "science", 1)

	require.NoError(t, err)
	assert.Len(t, quotes, 1)
	assert.Equal(t, int32(3), hits.Load())
}

func TestQuoteClient_NotFoundIsNotRetried(t *testing.T) {
	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newQuoteClient(t, server.URL, 3).FetchQuotes(context.Background(), "unknown", 1)

	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	assert.Equal(t, int32(1), hits.Load())
}

func TestQuoteClient_CircuitOpensAfterFailures(t *testing.T) {
	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newQuoteClient(t, server.URL, 1)

	for range 2 {
		_, err := client.FetchQuotes(context.Background(), "science", 1)
		require.Error(t, err)
	}

	_, err := client.FetchQuotes(context.Background(), "science", 1)

	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))
	assert.Contains(t, err.Error(), "circuit breaker open")
	assert.Equal(t, int32(2), hits.Load())
	assert.Equal(t, clients.StateOpen, client.Client().CircuitState())
}

func TestQuoteClient_MalformedBodies(t *testing.T) {
	for name, body := range map[string]string{
		"object":    `{"quote":"A","source":"X"}`,
		"null":      `null`,
		"truncated": `[{"quote":"A"`,
	} {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, body)
			}))
			defer server.Close()

			_, err := newQuoteClient(t, server.URL, 1).FetchQuotes(context.Background(), "science", 1)

			require.Error(t, err)
			assert.True(t, domain.IsUnavailable(err))
		})
	}
}

func TestQuoteClient_PropagatesRequestIDs(t *testing.T) {
	var gotRequestID, gotCorrelationID string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get(middleware.HeaderRequestID)
		gotCorrelationID = r.Header.Get(middleware.HeaderCorrelationID)
		_, _ = io.WriteString(w, `[]`)
	}))
	defer server.Close()

	ctx := middleware.ContextWithRequestID(context.Background(), "req-1")
	ctx = middleware.ContextWithCorrelationID(ctx, "corr-1")

	_, err := newQuoteClient(t, server.URL, 1).FetchQuotes(ctx, "science", 1)

	require.NoError(t, err)
	assert.Equal(t, "req-1", gotRequestID)
	assert.Equal(t, "corr-1", gotCorrelationID)
}

func TestQuoteService_FetchAllBoundsConcurrency(t *testing.T) {
	var inFlight, peak atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)

		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}

		time.Sleep(10 * time.Millisecond)

		_, _ = io.WriteString(w, `[{"quote":"`+r.URL.Query().Get("topic")+`","source":"S"}]`)
	}))
	defer server.Close()

	svc := app.NewQuoteService(app.QuoteServiceConfig{
		QuoteClient: newQuoteClient(t, server.URL, 1),
		Logger:      discardLogger(),
	})

	queries := make([]domain.QuoteQuery, 20)
	for i := range queries {
		queries[i] = domain.QuoteQuery{Topic: "t" + strconv.Itoa(i), Count: 1}
	}

	results := svc.FetchAll(context.Background(), queries, 3)

	require.Len(t, results, len(queries))

	for i, result := range results {
		assert.Equal(t, []string{"t" + strconv.Itoa(i) + " - S"}, result.Items)
	}

	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestQuoteService_CacheServesRepeatQueries(t *testing.T) {
	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)

		if r.URL.Query().Get("topic") != "science" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		_, _ = io.WriteString(w, `[{"quote":"A","source":"X"}]`)
	}))
	defer server.Close()

	quoteCache := cache.NewQuoteCache(10)
	defer quoteCache.Stop()

	svc := app.NewQuoteService(app.QuoteServiceConfig{
		QuoteClient: newQuoteClient(t, server.URL, 1),
		Cache:       quoteCache,
		CacheTTL:    time.Minute,
		Logger:      discardLogger(),
	})

	first := svc.FetchQuotes(context.Background(), "science", 1)
	second := svc.FetchQuotes(context.Background(), "science", 1)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), hits.Load())

	svc.FetchQuotes(context.Background(), "unknown", 1)
	svc.FetchQuotes(context.Background(), "unknown", 1)

	assert.Equal(t, int32(3), hits.Load(), "failures are fetched again")
}
