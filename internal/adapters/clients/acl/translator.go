package acl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/jsamuelsen/quote-fetcher/internal/adapters/clients"
)

// BaseAdapter executes requests through a clients.Client and maps every
// failure to a domain error. Embed it in service adapters.
type BaseAdapter struct {
	client      *clients.Client
	serviceName string
}

// NewBaseAdapter creates a base adapter for serviceName.
func NewBaseAdapter(client *clients.Client, serviceName string) BaseAdapter {
	return BaseAdapter{
		client:      client,
		serviceName: serviceName,
	}
}

// Client returns the underlying HTTP client.
func (a *BaseAdapter) Client() *clients.Client {
	return a.client
}

// ServiceName returns the downstream service name.
func (a *BaseAdapter) ServiceName() string {
	return a.serviceName
}

// Get issues a GET and returns the body of a 2xx response; the caller
// closes it. Any other outcome is returned as a domain error.
func (a *BaseAdapter) Get(ctx context.Context, path string, query url.Values, operation, entityID string) (io.ReadCloser, error) {
	resp, err := a.client.Get(ctx, path, query)
	if err != nil {
		return nil, MapHTTPError(nil, err, a.serviceName, operation, entityID)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		defer func() { _ = resp.Body.Close() }()

		return nil, MapHTTPError(resp, nil, a.serviceName, operation, entityID)
	}

	return resp.Body, nil
}

// ErrEmptyBody is returned by DecodeResponse for a nil body or a JSON null.
var ErrEmptyBody = errors.New("empty response body")

// DecodeResponse decodes a JSON body into T and closes it.
func DecodeResponse[T any](body io.ReadCloser) (*T, error) {
	if body == nil {
		return nil, ErrEmptyBody
	}
	defer func() { _ = body.Close() }()

	var raw json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if string(raw) == "null" {
		return nil, ErrEmptyBody
	}

	var result T
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &result, nil
}

// Translator converts one external DTO into a domain value.
type Translator[External any, Domain any] func(ext *External) (Domain, error)

// TranslateSlice translates items in order, stopping at the first failure.
func TranslateSlice[E any, D any](items []E, translate Translator[E, D]) ([]D, error) {
	result := make([]D, 0, len(items))

	for i := range items {
		translated, err := translate(&items[i])
		if err != nil {
			return nil, fmt.Errorf("translating item %d: %w", i, err)
		}

		result = append(result, translated)
	}

	return result, nil
}
