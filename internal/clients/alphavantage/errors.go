package alphavantage

import (
	"fmt"
)

// ErrRateLimitExceeded is returned when the daily quota is spent locally or the
// provider answers with its throttling notice.
type ErrRateLimitExceeded struct {
	Message string
}

func (e ErrRateLimitExceeded) Error() string {
	if e.Message != "" {
		return "alphavantage: rate limit exceeded: " + e.Message
	}
	return "alphavantage: rate limit exceeded"
}

// ErrInvalidAPIKey is returned when the provider rejects the credential.
type ErrInvalidAPIKey struct{}

func (e ErrInvalidAPIKey) Error() string {
	return "alphavantage: invalid or missing API key"
}

// ErrSymbolNotFound is returned when the provider does not know the symbol.
type ErrSymbolNotFound struct {
	Symbol string
}

func (e ErrSymbolNotFound) Error() string {
	return fmt.Sprintf("alphavantage: symbol not found: %s", e.Symbol)
}

// APIError carries any other "Error Message" or "Information" body.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return "alphavantage: api error: " + e.Message
}

// NetworkError wraps transport failures and non-200 responses.
// StatusCode is zero when no response was received.
type NetworkError struct {
	Function   string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("alphavantage %s: unexpected status %d: %v", e.Function, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("alphavantage %s: network error: %v", e.Function, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// MalformedResponseError is returned when a body does not have the expected shape.
type MalformedResponseError struct {
	Function string
	Reason   string
	Err      error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("alphavantage %s: malformed response: %s: %v", e.Function, e.Reason, e.Err)
	}
	return fmt.Sprintf("alphavantage %s: malformed response: %s", e.Function, e.Reason)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
