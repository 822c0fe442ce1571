package dto

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-fetcher/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)

	return c, w
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(ErrorCodeBadRequest, "count must be a number")

	assert.Equal(t, ErrorCodeBadRequest, resp.Error.Code)
	assert.Equal(t, "count must be a number", resp.Error.Message)
	assert.Nil(t, resp.Error.Details)
	assert.Empty(t, resp.TraceID)
}

func TestErrorResponse_WithDetails(t *testing.T) {
	resp := NewErrorResponse(ErrorCodeValidation, "invalid").WithDetails(nil)
	assert.Nil(t, resp.Error.Details)

	resp.WithDetails(map[string]string{"count": "must be greater than 0"})
	assert.Equal(t, "must be greater than 0", resp.Error.Details["count"])
}

func TestErrorResponse_JSON(t *testing.T) {
	resp := NewErrorResponse(ErrorCodeTimeout, "request timeout exceeded").WithTraceID("abc")

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	assert.JSONEq(t, `{"error":{"code":"TIMEOUT","message":"request timeout exceeded"},"traceId":"abc"}`, string(raw))
}

func TestHTTPStatusFromCode(t *testing.T) {
	tests := map[string]int{
		ErrorCodeNotFound:    http.StatusNotFound,
		ErrorCodeValidation:  http.StatusBadRequest,
		ErrorCodeBadRequest:  http.StatusBadRequest,
		ErrorCodeUnavailable: http.StatusServiceUnavailable,
		ErrorCodeTimeout:     http.StatusGatewayTimeout,
		ErrorCodeInternal:    http.StatusInternalServerError,
		"SOMETHING_ELSE":     http.StatusInternalServerError,
	}

	for code, want := range tests {
		t.Run(code, func(t *testing.T) {
			assert.Equal(t, want, HTTPStatusFromCode(code))
		})
	}
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
		wantMsg  string
		details  map[string]string
	}{
		{
			name:     "binding",
			err:      errors.Join(ErrBinding, errors.New(`strconv.ParseInt: parsing "abc": invalid syntax`)),
			wantCode: ErrorCodeBadRequest,
			wantMsg:  "invalid syntax",
		},
		{
			name:     "domain validation",
			err:      domain.NewValidationError("count", "must be positive"),
			wantCode: ErrorCodeValidation,
			wantMsg:  "must be positive",
			details:  map[string]string{"count": "must be positive"},
		},
		{
			name:     "not found",
			err:      domain.NewNotFoundError("topic", "space"),
			wantCode: ErrorCodeNotFound,
			wantMsg:  `topic "space" not found`,
		},
		{
			name:     "unavailable",
			err:      domain.NewUnavailableError("quote-service", "timeout"),
			wantCode: ErrorCodeUnavailable,
			wantMsg:  "quote-service",
		},
		{
			name:     "unknown",
			err:      errors.New("secret internals"),
			wantCode: ErrorCodeInternal,
			wantMsg:  internalMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := FromError(tt.err)

			require.NotNil(t, resp)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Contains(t, resp.Error.Message, tt.wantMsg)
			assert.Equal(t, tt.details, resp.Error.Details)
		})
	}

	assert.Nil(t, FromError(nil))
}

func TestFromError_ValidatorErrors(t *testing.T) {
	err := Validate(QuoteRequest{Topic: "science", Count: -1})

	resp := FromError(err)

	assert.Equal(t, ErrorCodeValidation, resp.Error.Code)
	assert.Equal(t, "request validation failed", resp.Error.Message)
	assert.Equal(t, "must be greater than 0", resp.Error.Details["count"])
}

func TestTraceID_NoSpan(t *testing.T) {
	c, _ := testContext("/")

	assert.Empty(t, TraceID(c))
}

func TestRespondWithError(t *testing.T) {
	c, w := testContext("/")

	RespondWithError(c, domain.NewUnavailableError("quote-service", "down"))

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, ErrorCodeUnavailable, resp.Error.Code)
}

func TestAbort_AfterWrite(t *testing.T) {
	c, w := testContext("/")
	c.String(http.StatusOK, "partial")

	Abort(c, NewErrorResponse(ErrorCodeTimeout, "late"))

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "partial", w.Body.String())
}

func TestBindQueryAndValidate(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    QuoteRequest
		errIs   error
		details map[string]string
	}{
		{
			name:  "valid",
			query: "?topic=science&count=2",
			want:  QuoteRequest{Topic: "science", Count: 2},
		},
		{
			name:  "encoded topic",
			query: "?topic=love+%26+war&count=1",
			want:  QuoteRequest{Topic: "love & war", Count: 1},
		},
		{
			name:  "non-numeric count",
			query: "?topic=science&count=abc",
			errIs: ErrBinding,
		},
		{
			name:    "zero count",
			query:   "?topic=science&count=0",
			errIs:   ErrValidation,
			details: map[string]string{"count": "this field is required"},
		},
		{
			name:    "negative count",
			query:   "?topic=science&count=-3",
			errIs:   ErrValidation,
			details: map[string]string{"count": "must be greater than 0"},
		},
		{
			name:    "count too large",
			query:   "?topic=science&count=101",
			errIs:   ErrValidation,
			details: map[string]string{"count": "must be less than or equal to 100"},
		},
		{
			name:    "missing topic",
			query:   "?count=2",
			errIs:   ErrValidation,
			details: map[string]string{"topic": "this field is required"},
		},
		{
			name:    "blank topic",
			query:   "?topic=%20%20&count=2",
			errIs:   ErrValidation,
			details: map[string]string{"topic": "must not be blank"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := testContext("/api/v1/quotes" + tt.query)

			var req QuoteRequest
			err := BindQueryAndValidate(c, &req)

			if tt.errIs == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.want, req)
				assert.Equal(t, domain.QuoteQuery{Topic: tt.want.Topic, Count: tt.want.Count}, req.Query())
				return
			}

			require.ErrorIs(t, err, tt.errIs)
			if tt.details != nil {
				assert.Equal(t, tt.details, ValidationErrors(err))
			}
		})
	}
}

func TestValidator_Singleton(t *testing.T) {
	assert.Same(t, Validator(), Validator())
}

func TestValidator_TagNames(t *testing.T) {
	type sample struct {
		FromForm string `form:"from_form" json:"ignored" validate:"required"`
		FromJSON string `json:"from_json,omitempty" validate:"required"`
		Plain    string `validate:"required"`
	}

	fields := ValidationErrors(Validate(sample{}))

	assert.Contains(t, fields, "from_form")
	assert.Contains(t, fields, "from_json")
	assert.Contains(t, fields, "Plain")
}

func TestValidationErrors_NonValidatorError(t *testing.T) {
	assert.Empty(t, ValidationErrors(errors.New("plain")))
	assert.False(t, IsValidationError(errors.New("plain")))
}

func TestMinMaxMessage(t *testing.T) {
	assert.Equal(t, "must be at least 3 characters", minMaxMessage("min", "3", reflect.String))
	assert.Equal(t, "must be at most 100 characters", minMaxMessage("max", "100", reflect.String))
	assert.Equal(t, "must be at least 1", minMaxMessage("min", "1", reflect.Int))
}

func TestNewQuoteResponse(t *testing.T) {
	ok := domain.NewQuoteResult("science", []domain.Quote{{Text: "A", Source: "X"}}, 2)
	raw, err := json.Marshal(NewQuoteResponse(ok))
	require.NoError(t, err)
	assert.JSONEq(t, `{"topic":"science","items":["A - X"]}`, string(raw))

	empty := domain.NewQuoteResult("science", nil, 2)
	raw, err = json.Marshal(NewQuoteResponse(empty))
	require.NoError(t, err)
	assert.JSONEq(t, `{"topic":"science","items":[]}`, string(raw))

	failed := domain.NewFailedResult("unknown")
	raw, err = json.Marshal(NewQuoteResponse(failed))
	require.NoError(t, err)
	assert.JSONEq(t, `{"topic":"unknown","message":"Topic 'unknown' not found"}`, string(raw))
}
