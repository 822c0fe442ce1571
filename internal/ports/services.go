// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port conventions:
//   - Context as first parameter
//   - Return domain types, never external DTOs
//   - Failures are domain errors (ErrNotFound, ErrUnavailable, ...)
package ports

import (
	"context"
	"time"

	"github.com/jsamuelsen/quote-fetcher/internal/domain"
)

// QuoteClient fetches quote records from the remote quote service.
type QuoteClient interface {
	// FetchQuotes requests up to count quotes for topic.
	// The returned slice is in response order and may be shorter or longer
	// than count; callers clamp it.
	// Returns domain.ErrNotFound when the service reports the topic missing
	// and domain.ErrUnavailable for transport or decoding failures.
	FetchQuotes(ctx context.Context, topic string, count int) ([]domain.Quote, error)
}

// QuoteCache stores successful fetches keyed by query.
// Implementations must be safe for concurrent use.
type QuoteCache interface {
	// Get returns the cached quotes for the query, if present and fresh.
	Get(ctx context.Context, query domain.QuoteQuery) ([]domain.Quote, bool)

	// Set stores quotes for the query for the given TTL.
	Set(ctx context.Context, query domain.QuoteQuery, quotes []domain.Quote, ttl time.Duration)
}
