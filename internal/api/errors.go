package api

import (
	"encoding/json"
	"errors"
	"strings"

	"shopfront/internal/domain"
)

// genericErrorMessage is the fallback when no more specific failure text exists
const genericErrorMessage = "Something went wrong"

// APIError is a normalized request failure carrying a human-readable
// message. Status is zero for transport-level failures that never produced
// an HTTP response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// normalizeMessage extracts the most specific failure text available, in
// priority order: the response body's message field, the raw body, the
// transport error, then a generic fallback.
func normalizeMessage(body []byte, transportErr error) string {
	if len(body) > 0 {
		var env Envelope
		if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
			return env.Message
		}
		if s := strings.TrimSpace(string(body)); s != "" {
			return s
		}
	}
	if transportErr != nil && transportErr.Error() != "" {
		return transportErr.Error()
	}
	return genericErrorMessage
}

// sessionExpiredError wraps a fatal auth failure so callers can match it
// with errors.Is against domain.ErrSessionExpired and still see the cause
func sessionExpiredError(cause error) error {
	if cause == nil {
		return domain.ErrSessionExpired
	}
	if errors.Is(cause, domain.ErrSessionExpired) {
		return cause
	}
	return errors.Join(domain.ErrSessionExpired, cause)
}
