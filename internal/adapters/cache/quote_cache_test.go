package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-fetcher/internal/domain"
)

func newTestCache(t *testing.T, maxSize int64) *QuoteCache {
	t.Helper()

	c := NewQuoteCache(maxSize)
	t.Cleanup(c.Stop)

	return c
}

func TestQuoteCache_Miss(t *testing.T) {
	c := newTestCache(t, 10)

	quotes, ok := c.Get(context.Background(), domain.QuoteQuery{Topic: "science", Count: 2})

	assert.False(t, ok)
	assert.Nil(t, quotes)
}

func TestQuoteCache_SetThenGet(t *testing.T) {
	c := newTestCache(t, 10)
	ctx := context.Background()
	query := domain.QuoteQuery{Topic: "science", Count: 2}
	quotes := []domain.Quote{{Text: "A", Source: "X"}, {Text: "B", Source: "Y"}}

	c.Set(ctx, query, quotes, time.Minute)

	got, ok := c.Get(ctx, query)
	require.True(t, ok)
	assert.Equal(t, quotes, got)
	assert.Equal(t, 1, c.Len())
}

func TestQuoteCache_KeyIncludesCount(t *testing.T) {
	c := newTestCache(t, 10)
	ctx := context.Background()

	c.Set(ctx, domain.QuoteQuery{Topic: "science", Count: 2}, []domain.Quote{{Text: "A"}}, time.Minute)

	_, ok := c.Get(ctx, domain.QuoteQuery{Topic: "science", Count: 3})
	assert.False(t, ok)
}

func TestQuoteCache_Expired(t *testing.T) {
	c := newTestCache(t, 10)
	ctx := context.Background()
	query := domain.QuoteQuery{Topic: "science", Count: 1}

	c.Set(ctx, query, []domain.Quote{{Text: "A"}}, time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	_, ok := c.Get(ctx, query)
	assert.False(t, ok)
}

func TestQuoteCache_ReturnsCopies(t *testing.T) {
	c := newTestCache(t, 10)
	ctx := context.Background()
	query := domain.QuoteQuery{Topic: "science", Count: 1}
	quotes := []domain.Quote{{Text: "A", Source: "X"}}

	c.Set(ctx, query, quotes, time.Minute)
	quotes[0].Text = "mutated"

	got, ok := c.Get(ctx, query)
	require.True(t, ok)
	assert.Equal(t, "A", got[0].Text)

	got[0].Text = "mutated again"

	again, _ := c.Get(ctx, query)
	assert.Equal(t, "A", again[0].Text)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "2:science", key(domain.QuoteQuery{Topic: "science", Count: 2}))
	assert.NotEqual(t,
		key(domain.QuoteQuery{Topic: "1:a", Count: 2}),
		key(domain.QuoteQuery{Topic: "a", Count: 21}),
	)
}
