package api

import (
	"errors"
	"testing"

	"shopfront/internal/domain"
)

func TestNormalizeMessage(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		transportErr error
		expected     string
	}{
		{
			name:     "envelope_message_wins",
			body:     `{"statusCode":401,"message":"Invalid credentials"}`,
			expected: "Invalid credentials",
		},
		{
			name:     "raw_body_when_no_message_field",
			body:     "upstream exploded",
			expected: "upstream exploded",
		},
		{
			name:         "transport_error_when_no_body",
			transportErr: errors.New("dial tcp: connection refused"),
			expected:     "dial tcp: connection refused",
		},
		{
			name:     "generic_fallback",
			expected: "Something went wrong",
		},
		{
			name:         "body_beats_transport_error",
			body:         `{"message":"server says no"}`,
			transportErr: errors.New("should not be used"),
			expected:     "server says no",
		},
		{
			name:     "whitespace_body_falls_through",
			body:     "   ",
			expected: "Something went wrong",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body []byte
			if tt.body != "" {
				body = []byte(tt.body)
			}

			got := normalizeMessage(body, tt.transportErr)
			if got != tt.expected {
				t.Errorf("normalizeMessage() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{Status: 404, Message: "product not found"}
	if err.Error() != "product not found" {
		t.Errorf("Expected message as error text, got %q", err.Error())
	}
}

func TestSessionExpiredError(t *testing.T) {
	t.Run("nil_cause", func(t *testing.T) {
		err := sessionExpiredError(nil)
		if !errors.Is(err, domain.ErrSessionExpired) {
			t.Error("Expected ErrSessionExpired identity")
		}
	})

	t.Run("wraps_cause", func(t *testing.T) {
		cause := errors.New("refresh endpoint returned 401")
		err := sessionExpiredError(cause)

		if !errors.Is(err, domain.ErrSessionExpired) {
			t.Error("Expected ErrSessionExpired identity")
		}
		if !errors.Is(err, cause) {
			t.Error("Expected cause to remain matchable")
		}
	})

	t.Run("does_not_double_wrap", func(t *testing.T) {
		inner := sessionExpiredError(errors.New("boom"))
		outer := sessionExpiredError(inner)

		if outer != inner {
			t.Error("Expected already-wrapped error returned unchanged")
		}
	})

	t.Run("no_refresh_token_is_matchable", func(t *testing.T) {
		err := sessionExpiredError(domain.ErrNoRefreshToken)

		if !errors.Is(err, domain.ErrNoRefreshToken) {
			t.Error("Expected ErrNoRefreshToken to remain matchable")
		}
		if !errors.Is(err, domain.ErrSessionExpired) {
			t.Error("Expected ErrSessionExpired identity")
		}
	})
}
