package domain

import "fmt"

// ProviderErrorKind classifies why a provider lookup failed. All kinds are
// treated the same by the resolver's fallback logic; the distinction exists
// for logging and metrics.
type ProviderErrorKind string

// Provider failure kinds.
const (
	ProviderErrConfiguration ProviderErrorKind = "configuration"
	ProviderErrNetwork       ProviderErrorKind = "network"
	ProviderErrProtocol      ProviderErrorKind = "protocol"
)

// ProviderError is the only error type a provider adapter returns. Reason is
// the human-readable message surfaced to the caller when every provider fails.
type ProviderError struct {
	Kind   ProviderErrorKind
	Reason string
}

func (e *ProviderError) Error() string {
	return e.Reason
}

// NewConfigurationError reports a missing credential or setting, detected
// before any network call.
func NewConfigurationError(name string) *ProviderError {
	return &ProviderError{Kind: ProviderErrConfiguration, Reason: fmt.Sprintf("missing configuration: %s", name)}
}

// NewNetworkError reports a transport failure reaching the provider.
func NewNetworkError(err error) *ProviderError {
	return &ProviderError{Kind: ProviderErrNetwork, Reason: fmt.Sprintf("network error: %v", err)}
}

// NewProtocolError reports a non-success status or an upstream-supplied
// failure message.
func NewProtocolError(reason string) *ProviderError {
	return &ProviderError{Kind: ProviderErrProtocol, Reason: reason}
}

// NewNonJSONError reports a body that could not be parsed as JSON.
func NewNonJSONError(status int) *ProviderError {
	return &ProviderError{Kind: ProviderErrProtocol, Reason: fmt.Sprintf("non-JSON response (HTTP %d)", status)}
}

// NewShapeError reports a JSON body that failed the expected-shape validation.
func NewShapeError() *ProviderError {
	return &ProviderError{Kind: ProviderErrProtocol, Reason: "unexpected response shape"}
}

// ResolutionError is returned when every provider failed. Reason carries the
// first non-empty provider message, in priority order.
type ResolutionError struct {
	Reason string
}

func (e *ResolutionError) Error() string {
	return e.Reason
}
