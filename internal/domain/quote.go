// Package domain contains core business entities and rules.
package domain

import "fmt"

// Quote is a single quotation returned by the quote service.
// Quotes are created only from a decoded response and never mutated.
type Quote struct {
	// Text is the quotation itself.
	Text string

	// Source is who said or wrote it.
	Source string
}

// String formats the quote as a list item: "<text> - <source>".
func (q Quote) String() string {
	return q.Text + " - " + q.Source
}

// QuoteQuery holds the parameters of a single fetch.
// Values are passed through to the quote service unchanged.
type QuoteQuery struct {
	Topic string
	Count int
}

// NotFoundMessage is the single user-visible failure text for a topic.
func NotFoundMessage(topic string) string {
	return fmt.Sprintf("Topic '%s' not found", topic)
}

// QuoteResult is the render model of one fetch.
// Exactly one of Items or Message is meaningful: a failed result carries
// only Message, a successful one carries Items (possibly empty).
type QuoteResult struct {
	Topic   string
	Items   []string
	Message string
	failed  bool
}

// NewQuoteResult builds a successful result from the returned quotes,
// keeping at most count items in response order.
func NewQuoteResult(topic string, quotes []Quote, count int) QuoteResult {
	kept := ClampQuotes(quotes, count)

	items := make([]string, 0, len(kept))
	for _, q := range kept {
		items = append(items, q.String())
	}

	return QuoteResult{Topic: topic, Items: items}
}

// NewFailedResult builds the fallback result for a topic.
func NewFailedResult(topic string) QuoteResult {
	return QuoteResult{
		Topic:   topic,
		Message: NotFoundMessage(topic),
		failed:  true,
	}
}

// OK reports whether the fetch produced a list.
func (r QuoteResult) OK() bool {
	return !r.failed
}

// ClampQuotes returns the first min(count, len(quotes)) quotes.
// A non-positive count yields an empty slice.
func ClampQuotes(quotes []Quote, count int) []Quote {
	if count <= 0 {
		return []Quote{}
	}

	if len(quotes) < count {
		count = len(quotes)
	}

	return quotes[:count]
}
