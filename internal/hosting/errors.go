package hosting

import (
	"errors"
	"fmt"
)

const (
	authenticationErrorTemplateConstant   = "%s rejected the credential (HTTP %d)"
	networkErrorTemplateConstant          = "%s request failed: %v"
	networkStatusErrorTemplateConstant    = "%s request failed with HTTP %d: %s"
	responseParseErrorTemplateConstant    = "%s response could not be parsed: %v"
	unsupportedCredentialMessageConstant  = "unsupported credential variant"
	transportNotConfiguredMessageConstant = "hosting transport not configured"
)

var (
	// ErrUnsupportedCredential indicates a credential variant without a listing implementation.
	ErrUnsupportedCredential = errors.New(unsupportedCredentialMessageConstant)
	// ErrTransportNotConfigured indicates a nil HTTP client was supplied.
	ErrTransportNotConfigured = errors.New(transportNotConfiguredMessageConstant)
)

// AuthenticationError reports a credential rejected by the provider.
type AuthenticationError struct {
	Provider   Provider
	StatusCode int
}

// Error describes the rejected credential.
func (authenticationError AuthenticationError) Error() string {
	return fmt.Sprintf(authenticationErrorTemplateConstant, authenticationError.Provider, authenticationError.StatusCode)
}

// NetworkError reports a transport failure or an unexpected HTTP status.
type NetworkError struct {
	Provider   Provider
	StatusCode int
	Body       string
	Cause      error
}

// Error describes the transport failure.
func (networkError NetworkError) Error() string {
	if networkError.Cause != nil {
		return fmt.Sprintf(networkErrorTemplateConstant, networkError.Provider, networkError.Cause)
	}
	return fmt.Sprintf(networkStatusErrorTemplateConstant, networkError.Provider, networkError.StatusCode, networkError.Body)
}

// Unwrap exposes the underlying transport error.
func (networkError NetworkError) Unwrap() error {
	return networkError.Cause
}

// ResponseParseError reports a response body that does not match the expected shape.
type ResponseParseError struct {
	Provider Provider
	Cause    error
}

// Error describes the decoding failure.
func (parseError ResponseParseError) Error() string {
	return fmt.Sprintf(responseParseErrorTemplateConstant, parseError.Provider, parseError.Cause)
}

// Unwrap exposes the decoding error.
func (parseError ResponseParseError) Unwrap() error {
	return parseError.Cause
}
