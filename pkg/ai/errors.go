package ai

import (
	"errors"
	"fmt"
)

var (
	// ErrDisabled indicates the user has not enabled the assistant.
	ErrDisabled = errors.New("ai assistant is disabled")
	// ErrAPIKeyMissing indicates no API key is configured.
	ErrAPIKeyMissing = errors.New("gemini api key missing")
	// ErrNetworkUnavailable indicates the live network probe failed. Callers
	// may offer to queue the request instead of failing outright.
	ErrNetworkUnavailable = errors.New("network unavailable")
)

// TransportError is a failed provider exchange: non-2xx status, or a
// response body without usable text.
type TransportError struct {
	StatusCode int
	Message    string
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gemini api error: %d %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("gemini api error: %s", e.Message)
}
