package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/quote-fetcher/internal/adapters/clients"
	"github.com/jsamuelsen/quote-fetcher/internal/domain"
)

// ErrorResponse is the error body shape most downstreams return, either
// nested ({"error":{"code","message"}}) or flat ({"code","message"}).
// Services that return a bare string ({"error":"..."}) decode into Message.
type ErrorResponse struct {
	Error   json.RawMessage `json:"error,omitempty"`
	Code    string          `json:"code,omitempty"`
	Message string          `json:"message,omitempty"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// GetCode returns the nested code if present, else the flat one.
func (e *ErrorResponse) GetCode() string {
	var detail errorDetail
	if json.Unmarshal(e.Error, &detail) == nil && detail.Code != "" {
		return detail.Code
	}

	return e.Code
}

// GetMessage returns the nested or string-valued error message if present,
// else the flat one.
func (e *ErrorResponse) GetMessage() string {
	var detail errorDetail
	if json.Unmarshal(e.Error, &detail) == nil && detail.Message != "" {
		return detail.Message
	}

	var text string
	if json.Unmarshal(e.Error, &text) == nil && text != "" {
		return text
	}

	return e.Message
}

// ParseErrorResponse decodes an error body. It returns nil for empty or
// unrecognised bodies.
func ParseErrorResponse(body io.Reader) *ErrorResponse {
	if body == nil {
		return nil
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(body).Decode(&errResp); err != nil {
		return nil
	}

	if errResp.GetCode() == "" && errResp.GetMessage() == "" {
		return nil
	}

	return &errResp
}

// MapHTTPError maps a client error or a non-2xx response to a domain error.
// entityID names the thing that was looked up and is used for not-found
// errors. It returns nil for 2xx responses.
func MapHTTPError(resp *http.Response, clientErr error, serviceName, operation, entityID string) error {
	if clientErr != nil {
		return mapClientError(clientErr, serviceName, operation)
	}

	if resp == nil {
		return domain.NewUnavailableError(serviceName, "no response received")
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	var errResp *ErrorResponse
	if resp.Body != nil {
		errResp = ParseErrorResponse(resp.Body)
	}

	return mapStatusCode(resp.StatusCode, errResp, serviceName, operation, entityID)
}

func mapClientError(err error, serviceName, operation string) error {
	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("circuit breaker open during %s", operation))
	default:
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("%s failed: %v", operation, err))
	}
}

func mapStatusCode(status int, errResp *ErrorResponse, serviceName, operation, entityID string) error {
	message := fmt.Sprintf("%s failed with status %d", operation, status)
	if errResp != nil && errResp.GetMessage() != "" {
		message = errResp.GetMessage()
	}

	switch {
	case status == http.StatusNotFound:
		return domain.NewNotFoundError(entityKind(operation), entityID)
	case status == http.StatusTooManyRequests:
		return domain.NewUnavailableError(serviceName, "rate limit exceeded")
	case status >= http.StatusInternalServerError:
		return domain.NewUnavailableError(serviceName, message)
	default:
		return domain.NewValidationError("", message)
	}
}

// entityKind derives the not-found entity from the operation, so that a
// failed "fetch quotes" lookup reports `topic "x" not found`.
func entityKind(operation string) string {
	if kind, ok := operationEntities[operation]; ok {
		return kind
	}

	return "resource"
}

var operationEntities = map[string]string{
	OperationFetchQuotes: "topic",
	OperationHealthCheck: "endpoint",
}
