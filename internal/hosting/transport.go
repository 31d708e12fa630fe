package hosting

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/temirov/gitp/internal/version"
)

const (
	// DefaultGitHubAPIURL is the public GitHub REST API root.
	DefaultGitHubAPIURL = "https://api.github.com"

	// DefaultRequestTimeout bounds a single repository listing request.
	DefaultRequestTimeout = 15 * time.Second

	userAgentHeaderConstant              = "User-Agent"
	acceptHeaderConstant                 = "Accept"
	maximumErrorBodyBytesConstant        = 512
	requestCreationErrorTemplateConstant = "failed to create request: %w"
)

// HTTPClient performs HTTP requests. *http.Client satisfies it.
type HTTPClient interface {
	Do(request *http.Request) (*http.Response, error)
}

// TransportConfiguration captures the tunable parts of a Transport.
type TransportConfiguration struct {
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	GitHubAPIURL   string        `mapstructure:"github_api_url"`
}

// Transport carries the HTTP plumbing shared by all credential variants.
type Transport struct {
	HTTPClient     HTTPClient
	UserAgent      string
	GitHubAPIURL   string
	RequestTimeout time.Duration
}

// DefaultTransportConfiguration returns the baseline transport settings.
func DefaultTransportConfiguration() TransportConfiguration {
	return TransportConfiguration{
		RequestTimeout: DefaultRequestTimeout,
		GitHubAPIURL:   DefaultGitHubAPIURL,
	}
}

// NewTransport builds a Transport backed by net/http with the configured timeout.
func NewTransport(configuration TransportConfiguration) Transport {
	requestTimeout := configuration.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}
	return Transport{
		HTTPClient:     &http.Client{Timeout: requestTimeout},
		UserAgent:      version.UserAgent(),
		GitHubAPIURL:   configuration.GitHubAPIURL,
		RequestTimeout: requestTimeout,
	}
}

func (transport Transport) resolvedGitHubAPIURL() string {
	trimmedURL := strings.TrimRight(strings.TrimSpace(transport.GitHubAPIURL), "/")
	if len(trimmedURL) == 0 {
		return DefaultGitHubAPIURL
	}
	return trimmedURL
}

func (transport Transport) resolvedUserAgent() string {
	if len(strings.TrimSpace(transport.UserAgent)) == 0 {
		return version.UserAgent()
	}
	return transport.UserAgent
}

// getJSON issues an authenticated GET and decodes the JSON body into target.
func (transport Transport) getJSON(executionContext context.Context, provider Provider, endpoint string, headers map[string]string, target any) error {
	if transport.HTTPClient == nil {
		return ErrTransportNotConfigured
	}

	requestTimeout := transport.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}
	requestContext, cancel := context.WithTimeout(executionContext, requestTimeout)
	defer cancel()

	request, requestError := http.NewRequestWithContext(requestContext, http.MethodGet, endpoint, nil)
	if requestError != nil {
		return fmt.Errorf(requestCreationErrorTemplateConstant, requestError)
	}

	request.Header.Set(userAgentHeaderConstant, transport.resolvedUserAgent())
	for headerName, headerValue := range headers {
		request.Header.Set(headerName, headerValue)
	}

	response, responseError := transport.HTTPClient.Do(request)
	if responseError != nil {
		return NetworkError{Provider: provider, Cause: responseError}
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode == http.StatusUnauthorized || response.StatusCode == http.StatusForbidden:
		return AuthenticationError{Provider: provider, StatusCode: response.StatusCode}
	case response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices:
		body, _ := io.ReadAll(io.LimitReader(response.Body, maximumErrorBodyBytesConstant))
		return NetworkError{Provider: provider, StatusCode: response.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if decodeError := json.NewDecoder(response.Body).Decode(target); decodeError != nil {
		return ResponseParseError{Provider: provider, Cause: decodeError}
	}

	return nil
}
