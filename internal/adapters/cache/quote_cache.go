// Package cache provides in-memory implementations of the cache ports.
package cache

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/karlseguin/ccache/v3"

	"github.com/jsamuelsen/quote-fetcher/internal/domain"
	"github.com/jsamuelsen/quote-fetcher/internal/platform/logging"
)

// itemsToPrune is how many entries ccache evicts at once when full.
const itemsToPrune = 100

// QuoteCache implements ports.QuoteCache on a size-bounded LRU with
// per-entry TTLs.
type QuoteCache struct {
	cache *ccache.Cache[[]domain.Quote]
}

// NewQuoteCache creates a cache holding at most maxSize queries.
func NewQuoteCache(maxSize int64) *QuoteCache {
	prune := uint32(itemsToPrune)
	if maxSize < itemsToPrune {
		prune = uint32(max(maxSize/10, 1)) //nolint:gosec // bounded by itemsToPrune
	}

	return &QuoteCache{
		cache: ccache.New(ccache.Configure[[]domain.Quote]().
			MaxSize(maxSize).
			ItemsToPrune(prune)),
	}
}

// Get returns a copy of the cached quotes for query. Expired entries miss.
func (c *QuoteCache) Get(ctx context.Context, query domain.QuoteQuery) ([]domain.Quote, bool) {
	item := c.cache.Get(key(query))
	if item == nil || item.Expired() {
		return nil, false
	}

	logging.FromContext(ctx).Log(ctx, logging.LevelTrace, "quote cache hit",
		slog.String("topic", query.Topic),
		slog.Int("count", query.Count),
	)

	return slices.Clone(item.Value()), true
}

// Set stores a copy of quotes for query.
func (c *QuoteCache) Set(_ context.Context, query domain.QuoteQuery, quotes []domain.Quote, ttl time.Duration) {
	c.cache.Set(key(query), slices.Clone(quotes), ttl)
}

// Len reports the number of cached queries, including expired ones not yet pruned.
func (c *QuoteCache) Len() int {
	return c.cache.ItemCount()
}

// Stop stops the cache's background worker.
func (c *QuoteCache) Stop() {
	c.cache.Stop()
}

// key joins count and topic; the count prefix keeps topics containing the
// separator unambiguous.
func key(q domain.QuoteQuery) string {
	return strconv.Itoa(q.Count) + ":" + q.Topic
}
