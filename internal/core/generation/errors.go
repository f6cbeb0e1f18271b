package generation

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/googleapi"
)

// ErrMissingAPIKey marks a provider that was invoked without credentials.
// Classified as infrastructure so the orchestrator can fall back.
var ErrMissingAPIKey = errors.New("api key not configured")

// ErrEmptyResponse marks a well-formed provider reply with no usable text.
// Classified as content: retrying another provider will not fix a prompt
// that produces nothing.
var ErrEmptyResponse = errors.New("empty response from provider")

// InfrastructureError wraps a provider failure caused by the transport or
// service rather than by the request content.
type InfrastructureError struct {
	Provider string
	Err      error
}

func (e *InfrastructureError) Error() string {
	return fmt.Sprintf("%s infrastructure error: %v", e.Provider, e.Err)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// NewInfrastructureError wraps err as an infrastructure failure for provider.
func NewInfrastructureError(provider string, err error) *InfrastructureError {
	return &InfrastructureError{Provider: provider, Err: err}
}

// infraErrorPatterns are substrings that indicate transport or service level
// failures when no typed error is available. Provider SDKs flatten many of
// these into plain error strings.
var infraErrorPatterns = []string{
	"connection reset by peer",
	"connection refused",
	"broken pipe",
	"no such host",
	"temporary failure in name resolution",
	"tls handshake timeout",
	"i/o timeout",
	"server closed idle connection",
	"transport connection broken",
	"resource exhausted",
	"resource_exhausted",
	"resourceexhausted",
	"service unavailable",
	"deadline exceeded",
	"deadlineexceeded",
	"rate limit",
	"too many requests",
	"overloaded",
}

// IsInfrastructureError decides whether a provider failure justifies a
// fallback attempt. Infrastructure failures are transient and provider-local:
// network errors, timeouts, throttling, 5xx responses, missing credentials.
// Everything else is a content error and must surface to the caller
// unchanged, because a second provider would fail the same way.
func IsInfrastructureError(err error) bool {
	if err == nil {
		return false
	}

	var infraErr *InfrastructureError
	if errors.As(err, &infraErr) {
		return true
	}

	if errors.Is(err, ErrMissingAPIKey) {
		return true
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNABORTED) {
		return true
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return IsInfrastructureHTTPStatus(apiErr.HTTPStatusCode)
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return IsInfrastructureHTTPStatus(gErr.Code)
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range infraErrorPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}

	return false
}

// IsInfrastructureHTTPStatus reports whether an HTTP status code indicates a
// transient provider-side failure. Any 5xx qualifies, including nonstandard
// overload codes some providers emit.
func IsInfrastructureHTTPStatus(status int) bool {
	switch status {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	default:
		return status >= http.StatusInternalServerError
	}
}
