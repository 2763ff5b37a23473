package api

import "encoding/json"

// Envelope is the backend's uniform response wrapper
type Envelope struct {
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data,omitempty"`
	Timestamp  string          `json:"timestamp,omitempty"`
}

// Unwrap returns the innermost payload of a response body. The backend is
// known to sometimes double-wrap, so a nested data.data shape is unwrapped
// to its innermost value, a single data field to its value, and anything
// else is returned as-is. A body that does not parse as an envelope is also
// returned as-is; the caller gets the most specific shape found.
func Unwrap(raw []byte) json.RawMessage {
	outer := dataField(raw)
	if outer == nil {
		return raw
	}
	if inner := dataField(outer); inner != nil {
		return inner
	}
	return outer
}

// dataField extracts a non-null "data" member from a JSON object, or nil
func dataField(raw []byte) json.RawMessage {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil
	}
	if len(wrapper.Data) == 0 || string(wrapper.Data) == "null" {
		return nil
	}
	return wrapper.Data
}

// parseEnvelope decodes raw into an Envelope, degrading gracefully: a body
// that is not envelope-shaped is carried whole in the Data field so callers
// still see the payload.
func parseEnvelope(status int, raw []byte) *Envelope {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil || (env.StatusCode == 0 && env.Data == nil) {
		return &Envelope{StatusCode: status, Data: raw}
	}
	if env.StatusCode == 0 {
		env.StatusCode = status
	}
	return &env
}
