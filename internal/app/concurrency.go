package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/quote-fetcher/internal/domain"
)

// DefaultFetchConcurrency bounds FetchAll when no limit is given.
const DefaultFetchConcurrency = 4

// collectLimit runs fn for every item with at most limit calls in flight and
// returns the outputs in input order. fn cannot fail, so one slow or failing
// item never cancels the others.
func collectLimit[T, R any](ctx context.Context, limit int, items []T, fn func(context.Context, T) R) []R {
	if limit <= 0 {
		limit = DefaultFetchConcurrency
	}

	results := make([]R, len(items))

	var g errgroup.Group
	g.SetLimit(limit)

	for i, item := range items {
		g.Go(func() error {
			results[i] = fn(ctx, item)
			return nil
		})
	}

	_ = g.Wait()

	return results
}

// FetchAll runs one independent fetch per query, at most limit at a time.
// Results keep the order of queries; each carries its own list or fallback.
func (s *QuoteService) FetchAll(ctx context.Context, queries []domain.QuoteQuery, limit int) []domain.QuoteResult {
	return collectLimit(ctx, limit, queries, func(ctx context.Context, q domain.QuoteQuery) domain.QuoteResult {
		return s.FetchQuotes(ctx, q.Topic, q.Count)
	})
}
