package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-fetcher/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-fetcher/internal/domain"
)

const htmlContentType = "text/html; charset=utf-8"

// QuoteFetcher produces a renderable result for a topic.
type QuoteFetcher interface {
	FetchQuotes(ctx context.Context, topic string, count int) domain.QuoteResult
}

// QuoteHandler serves quote lists as HTML fragments and JSON.
type QuoteHandler struct {
	fetcher QuoteFetcher
}

// NewQuoteHandler creates a quote handler.
func NewQuoteHandler(fetcher QuoteFetcher) *QuoteHandler {
	return &QuoteHandler{fetcher: fetcher}
}

// GetQuotesHTML handles GET /api/v1/quotes.
//
// The fallback message is a rendering, so any bound request answers 200.
//
// @Summary Render quotes for a topic
// @Tags quotes
// @Produce html
// @Param topic query string true "Topic"
// @Param count query int true "Number of quotes"
// @Success 200 {string} string "<ol><li>quote - source</li></ol>"
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/quotes [get]
func (h *QuoteHandler) GetQuotesHTML(c *gin.Context) {
	result, ok := h.fetch(c)
	if !ok {
		return
	}

	c.Data(http.StatusOK, htmlContentType, []byte(domain.RenderHTML(result)))
}

// GetQuotesJSON handles GET /api/v1/quotes.json.
//
// @Summary Quotes for a topic as JSON
// @Tags quotes
// @Produce json
// @Param topic query string true "Topic"
// @Param count query int true "Number of quotes"
// @Success 200 {object} dto.QuoteListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/quotes.json [get]
func (h *QuoteHandler) GetQuotesJSON(c *gin.Context) {
	result, ok := h.fetch(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(result))
}

func (h *QuoteHandler) fetch(c *gin.Context) (domain.QuoteResult, bool) {
	var req dto.QuoteRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		dto.RespondWithError(c, err)
		return domain.QuoteResult{}, false
	}

	q := req.Query()

	return h.fetcher.FetchQuotes(c.Request.Context(), q.Topic, q.Count), true
}

// RegisterQuoteRoutes registers quote routes on the given router group.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	rg.GET("/quotes", h.GetQuotesHTML)
	rg.GET("/quotes.json", h.GetQuotesJSON)
}
