package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-fetcher/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-fetcher/internal/domain"
)

type fetchCall struct {
	topic string
	count int
}

// stubFetcher returns canned results keyed by topic and records calls.
type stubFetcher struct {
	results map[string][]domain.Quote
	calls   []fetchCall
}

func (s *stubFetcher) FetchQuotes(_ context.Context, topic string, count int) domain.QuoteResult {
	s.calls = append(s.calls, fetchCall{topic: topic, count: count})

	quotes, ok := s.results[topic]
	if !ok {
		return domain.NewFailedResult(topic)
	}

	return domain.NewQuoteResult(topic, quotes, count)
}

func quoteRouter(fetcher QuoteFetcher) *gin.Engine {
	engine := gin.New()
	NewQuoteHandler(fetcher).RegisterQuoteRoutes(engine.Group("/api/v1"))

	return engine
}

func newStub() *stubFetcher {
	return &stubFetcher{results: map[string][]domain.Quote{
		"science": {{Text: "A", Source: "X"}, {Text: "B", Source: "Y"}},
		"markup":  {{Text: "<b>bold</b>", Source: "Tom & Jerry"}},
	}}
}

func TestGetQuotesHTML(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		status int
		body   string
	}{
		{name: "two quotes", query: "topic=science&count=2", status: http.StatusOK, body: "<ol><li>A - X</li><li>B - Y</li></ol>"},
		{name: "clamped to count", query: "topic=science&count=1", status: http.StatusOK, body: "<ol><li>A - X</li></ol>"},
		{name: "short response", query: "topic=science&count=5", status: http.StatusOK, body: "<ol><li>A - X</li><li>B - Y</li></ol>"},
		{name: "fallback is still 200", query: "topic=unknown&count=3", status: http.StatusOK, body: "Topic 'unknown' not found"},
		{name: "escaped", query: "topic=markup&count=1", status: http.StatusOK, body: "<ol><li>&lt;b&gt;bold&lt;/b&gt; - Tom &amp; Jerry</li></ol>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(quoteRouter(newStub()), "/api/v1/quotes?"+tt.query)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, htmlContentType, w.Header().Get("Content-Type"))
			assert.Equal(t, tt.body, w.Body.String())
		})
	}
}

func TestGetQuotesHTML_PassesQueryThrough(t *testing.T) {
	stub := newStub()

	get(quoteRouter(stub), "/api/v1/quotes?topic=love+%26+war&count=4")

	require.Len(t, stub.calls, 1)
	assert.Equal(t, fetchCall{topic: "love & war", count: 4}, stub.calls[0])
}

func TestGetQuotes_BadRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
		code  string
		field string
	}{
		{name: "non-integer count", query: "topic=science&count=two", code: dto.ErrorCodeBadRequest},
		{name: "zero count", query: "topic=science&count=0", code: dto.ErrorCodeValidation, field: "count"},
		{name: "negative count", query: "topic=science&count=-1", code: dto.ErrorCodeValidation, field: "count"},
		{name: "missing count", query: "topic=science", code: dto.ErrorCodeValidation, field: "count"},
		{name: "missing topic", query: "count=2", code: dto.ErrorCodeValidation, field: "topic"},
	}

	for _, path := range []string{"/api/v1/quotes", "/api/v1/quotes.json"} {
		for _, tt := range tests {
			t.Run(path+" "+tt.name, func(t *testing.T) {
				stub := newStub()

				w := get(quoteRouter(stub), path+"?"+tt.query)

				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.Empty(t, stub.calls)

				var resp dto.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.code, resp.Error.Code)
				if tt.field != "" {
					assert.Contains(t, resp.Error.Details, tt.field)
				}
			})
		}
	}
}

func TestGetQuotesJSON(t *testing.T) {
	tests := []struct {
		name  string
		query string
		body  string
	}{
		{name: "list", query: "topic=science&count=2", body: `{"topic":"science","items":["A - X","B - Y"]}`},
		{name: "fallback", query: "topic=unknown&count=3", body: `{"topic":"unknown","message":"Topic 'unknown' not found"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(quoteRouter(newStub()), "/api/v1/quotes.json?"+tt.query)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestGetQuotesHTML_Idempotent(t *testing.T) {
	engine := quoteRouter(newStub())

	first := get(engine, "/api/v1/quotes?topic=science&count=2")
	second := get(engine, "/api/v1/quotes?topic=science&count=2")

	assert.Equal(t, first.Body.String(), second.Body.String())
}
