package acl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/jsamuelsen/quote-fetcher/internal/adapters/clients"
	"github.com/jsamuelsen/quote-fetcher/internal/domain"
	"github.com/jsamuelsen/quote-fetcher/internal/platform/logging"
)

// Operation names used in error messages and for not-found mapping.
const (
	OperationFetchQuotes = "fetch quotes"
	OperationHealthCheck = "health check"
)

// healthCheckTopic is a topic the quote service is known to serve.
const healthCheckTopic = "motivational"

// QuoteClientConfig configures a QuoteClient.
type QuoteClientConfig struct {
	// Client must have its BaseURL set to the quote endpoint, for example
	// https://wp.zybooks.com/quotes.php.
	Client *clients.Client

	// ServiceName defaults to the client's service name.
	ServiceName string

	Logger *slog.Logger
}

// QuoteClient implements ports.QuoteClient and ports.HealthChecker against
// the remote quote service:
//
//	GET <base>?topic=<topic>&count=<count>  →  [{"quote": "...", "source": "..."}, ...]
type QuoteClient struct {
	BaseAdapter
	logger *slog.Logger
}

// NewQuoteClient creates a quote service adapter. It panics if Client is nil.
func NewQuoteClient(cfg QuoteClientConfig) *QuoteClient {
	if cfg.Client == nil {
		panic("QuoteClient: Client is required")
	}

	name := cfg.ServiceName
	if name == "" {
		name = cfg.Client.ServiceName()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteClient{
		BaseAdapter: NewBaseAdapter(cfg.Client, name),
		logger:      logger,
	}
}

// quoteRecord is the wire shape of one element of the response array.
type quoteRecord struct {
	Quote  string `json:"quote"`
	Source string `json:"source"`
}

// FetchQuotes requests up to count quotes for topic. The topic and count are
// passed through unvalidated; the records are returned in response order
// without truncation.
func (c *QuoteClient) FetchQuotes(ctx context.Context, topic string, count int) ([]domain.Quote, error) {
	query := url.Values{
		"topic": {topic},
		"count": {strconv.Itoa(count)},
	}

	c.logger.Log(ctx, logging.LevelTrace, "requesting quotes",
		slog.String("topic", topic),
		slog.Int("count", count),
	)

	body, err := c.Get(ctx, "", query, OperationFetchQuotes, topic)
	if err != nil {
		return nil, err
	}

	records, err := DecodeResponse[[]quoteRecord](body)
	if err != nil {
		return nil, domain.NewUnavailableError(c.ServiceName(), fmt.Sprintf("malformed quote response: %v", err))
	}

	quotes, err := TranslateSlice[quoteRecord, domain.Quote](*records, translateQuote)
	if err != nil {
		return nil, domain.NewUnavailableError(c.ServiceName(), err.Error())
	}

	c.logger.Log(ctx, logging.LevelTrace, "decoded quotes",
		slog.String("topic", topic),
		slog.Int("received", len(quotes)),
	)

	return quotes, nil
}

func translateQuote(rec *quoteRecord) (domain.Quote, error) {
	return domain.Quote{Text: rec.Quote, Source: rec.Source}, nil
}

// Name implements ports.HealthChecker.
func (c *QuoteClient) Name() string {
	return c.ServiceName()
}

// Check fetches a single quote for a known topic. A domain error or a body
// that would not decode as a quote list marks the service unhealthy.
func (c *QuoteClient) Check(ctx context.Context) error {
	body, err := c.Get(ctx, "", url.Values{"topic": {healthCheckTopic}, "count": {"1"}}, OperationHealthCheck, healthCheckTopic)
	if err != nil {
		return err
	}

	if _, err := DecodeResponse[[]quoteRecord](body); err != nil {
		return domain.NewUnavailableError(c.ServiceName(), fmt.Sprintf("malformed health check response: %v", err))
	}

	return nil
}
