package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingAPIKey indicates no API key was configured.
var ErrMissingAPIKey = errors.New("Please enter your Anthropic API key")

// ErrEmptyReply indicates the provider answered without any text content.
var ErrEmptyReply = errors.New("model returned no text content")

// ErrorBody is the error object carried by provider and relay error responses.
type ErrorBody struct {
	Type    string `json:"type,omitempty"`
	Message string `json:"message"`
}

// UpstreamError is a non-success answer from the provider or the relay.
type UpstreamError struct {
	StatusCode int
	Type       string
	Message    string
	// Raw is the upstream "error" object as received, for passthrough.
	Raw json.RawMessage
}

func (e *UpstreamError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return "API Error: " + msg
}

// newUpstreamError builds an UpstreamError from a response body shaped like
// {"error": {...}}. Bodies that do not match fall back to the status text.
func newUpstreamError(status int, body []byte) *UpstreamError {
	e := &UpstreamError{StatusCode: status}

	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Error) == 0 {
		return e
	}
	e.Raw = envelope.Error

	var eb ErrorBody
	if err := json.Unmarshal(envelope.Error, &eb); err == nil {
		e.Type = eb.Type
		e.Message = eb.Message
	}
	return e
}

// RawError returns the error object to forward, synthesizing one when none was received.
func (e *UpstreamError) RawError() json.RawMessage {
	if len(e.Raw) > 0 {
		return e.Raw
	}
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	b, err := json.Marshal(ErrorBody{Type: e.Type, Message: msg})
	if err != nil {
		return json.RawMessage(fmt.Sprintf(`{"message":%q}`, msg))
	}
	return b
}
