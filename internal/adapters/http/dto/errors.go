// Package dto provides the request and response shapes of the HTTP API.
package dto

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quote-fetcher/internal/domain"
)

// ErrorResponse is the standard error envelope for non-rendering failures.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail contains the error information.
type ErrorDetail struct {
	// Code is a machine-readable error code (e.g. "VALIDATION_ERROR").
	Code string `json:"code"`

	// Message is a human-readable error message.
	Message string `json:"message"`

	// Details holds field-level messages for validation errors.
	Details map[string]string `json:"details,omitempty"`
}

// Error codes for machine-readable error identification.
const (
	ErrorCodeNotFound    = "NOT_FOUND"
	ErrorCodeValidation  = "VALIDATION_ERROR"
	ErrorCodeBadRequest  = "BAD_REQUEST"
	ErrorCodeUnavailable = "SERVICE_UNAVAILABLE"
	ErrorCodeTimeout     = "TIMEOUT"
	ErrorCodeInternal    = "INTERNAL_ERROR"
)

const internalMessage = "an internal error occurred"

// NewErrorResponse creates an error response with the given code and message.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// WithDetails attaches field-level messages.
func (e *ErrorResponse) WithDetails(details map[string]string) *ErrorResponse {
	if len(details) > 0 {
		e.Error.Details = details
	}

	return e
}

// WithTraceID adds a trace ID to the error response.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

// HTTPStatusFromCode maps error codes to HTTP status codes.
func HTTPStatusFromCode(code string) int {
	switch code {
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeValidation, ErrorCodeBadRequest:
		return http.StatusBadRequest
	case ErrorCodeUnavailable:
		return http.StatusServiceUnavailable
	case ErrorCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// FromError maps an error to an envelope. Binding and validation failures
// become 400s with field details; domain errors keep their kind; anything
// else is reported as internal without leaking its text.
func FromError(err error) *ErrorResponse {
	switch {
	case err == nil:
		return nil

	case IsValidationError(err):
		return NewErrorResponse(ErrorCodeValidation, "request validation failed").
			WithDetails(ValidationErrors(err))

	case errors.Is(err, ErrBinding):
		return NewErrorResponse(ErrorCodeBadRequest, err.Error())

	case domain.IsValidation(err):
		resp := NewErrorResponse(ErrorCodeValidation, err.Error())

		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) && validationErr.Field != "" {
			resp.WithDetails(map[string]string{validationErr.Field: validationErr.Message})
		}

		return resp

	case domain.IsNotFound(err):
		return NewErrorResponse(ErrorCodeNotFound, err.Error())

	case domain.IsUnavailable(err):
		return NewErrorResponse(ErrorCodeUnavailable, err.Error())

	default:
		return NewErrorResponse(ErrorCodeInternal, internalMessage)
	}
}

// TraceID returns the active trace ID of the request, or "".
func TraceID(c *gin.Context) string {
	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		return span.SpanContext().TraceID().String()
	}

	return ""
}

// RespondWithError writes the envelope for err and stops the handler chain.
func RespondWithError(c *gin.Context, err error) {
	Abort(c, FromError(err))
}

// Abort writes resp with the status for its code and stops the handler chain.
// If the response has already started it only aborts.
func Abort(c *gin.Context, resp *ErrorResponse) {
	if c.Writer.Written() {
		c.Abort()
		return
	}

	resp.WithTraceID(TraceID(c))
	c.AbortWithStatusJSON(HTTPStatusFromCode(resp.Error.Code), resp)
}
