package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{ErrNotFound, ErrValidation, ErrUnavailable}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b,
					"sentinels should be distinct: %v vs %v", a, b)
			}
		}
	}
}

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name        string
		entity      string
		id          string
		expectedMsg string
	}{
		{
			name:        "with entity and ID",
			entity:      "topic",
			id:          "science",
			expectedMsg: `topic "science" not found`,
		},
		{
			name:        "with entity only",
			entity:      "topic",
			expectedMsg: "topic not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewNotFoundError(tt.entity, tt.id)

			assert.Equal(t, tt.expectedMsg, err.Error())
			assert.ErrorIs(t, err, ErrNotFound)
			assert.True(t, IsNotFound(err))
		})
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name        string
		field       string
		message     string
		expectedMsg string
	}{
		{
			name:        "with field",
			field:       "count",
			message:     "must be positive",
			expectedMsg: "validation failed for count: must be positive",
		},
		{
			name:        "without field",
			message:     "bad request",
			expectedMsg: "validation failed: bad request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.field, tt.message)

			assert.Equal(t, tt.expectedMsg, err.Error())
			assert.True(t, IsValidation(err))
			assert.False(t, IsNotFound(err))
		})
	}
}

func TestUnavailableError(t *testing.T) {
	tests := []struct {
		name        string
		service     string
		reason      string
		expectedMsg string
	}{
		{
			name:        "with reason",
			service:     "quote-service",
			reason:      "HTTP 503",
			expectedMsg: `service "quote-service" unavailable: HTTP 503`,
		},
		{
			name:        "without reason",
			service:     "quote-service",
			expectedMsg: `service "quote-service" unavailable`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewUnavailableError(tt.service, tt.reason)

			assert.Equal(t, tt.expectedMsg, err.Error())
			assert.True(t, IsUnavailable(err))
		})
	}
}

func TestErrorWrappingChain(t *testing.T) {
	base := NewUnavailableError("quote-service", "connection refused")
	wrapped := fmt.Errorf("fetching quotes: %w", base)
	double := fmt.Errorf("perform failed: %w", wrapped)

	assert.True(t, IsUnavailable(double))
	assert.False(t, IsNotFound(double))

	var unavailable *UnavailableError
	assert.ErrorAs(t, double, &unavailable)
	assert.Equal(t, "quote-service", unavailable.Service)
}
