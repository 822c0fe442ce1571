package dto

import "github.com/jsamuelsen/quote-fetcher/internal/domain"

// QuoteRequest is the query of GET /api/v1/quotes.
type QuoteRequest struct {
	Topic string `form:"topic" json:"topic" validate:"required,notblank,max=100"`
	Count int    `form:"count" json:"count" validate:"required,gt=0,lte=100"`
}

// Query converts the request to the domain query.
func (r QuoteRequest) Query() domain.QuoteQuery {
	return domain.QuoteQuery{Topic: r.Topic, Count: r.Count}
}

// QuoteListResponse is the JSON form of a successful fetch.
type QuoteListResponse struct {
	Topic string   `json:"topic"`
	Items []string `json:"items"`
}

// QuoteMessageResponse is the JSON form of the fallback.
type QuoteMessageResponse struct {
	Topic   string `json:"topic"`
	Message string `json:"message"`
}

// NewQuoteResponse returns the JSON shape for a result.
func NewQuoteResponse(r domain.QuoteResult) any {
	if !r.OK() {
		return QuoteMessageResponse{Topic: r.Topic, Message: r.Message}
	}

	items := r.Items
	if items == nil {
		items = []string{}
	}

	return QuoteListResponse{Topic: r.Topic, Items: items}
}
