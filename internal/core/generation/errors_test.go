package generation

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/googleapi"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "dial tcp: operation timed out" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestIsInfrastructureError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"wrapped_infrastructure", NewInfrastructureError("openai", errors.New("boom")), true},
		{"missing_api_key", fmt.Errorf("openai: %w", ErrMissingAPIKey), true},
		{"deadline_exceeded", context.DeadlineExceeded, true},
		{"net_timeout", timeoutErr{}, true},
		{"connection_reset", syscall.ECONNRESET, true},
		{"connection_refused", fmt.Errorf("dial: %w", syscall.ECONNREFUSED), true},
		{"openai_429", &openai.APIError{HTTPStatusCode: 429}, true},
		{"openai_503", &openai.APIError{HTTPStatusCode: 503}, true},
		{"openai_400", &openai.APIError{HTTPStatusCode: 400}, false},
		{"openai_401", &openai.APIError{HTTPStatusCode: 401}, false},
		{"google_500", &googleapi.Error{Code: 500}, true},
		{"google_404", &googleapi.Error{Code: 404}, false},
		{"resource_exhausted_text", errors.New("rpc error: ResourceExhausted"), true},
		{"service_unavailable_text", errors.New("503 Service Unavailable"), true},
		{"rate_limit_text", errors.New("openai: rate limit reached for gpt-5.2"), true},
		{"no_such_host", errors.New("dial tcp: lookup api.example.com: no such host"), true},
		{"empty_response", fmt.Errorf("%w: openai", ErrEmptyResponse), false},
		{"json_parse_failure", errors.New("failed to parse response: invalid character 'x'"), false},
		{"plain_api_rejection", errors.New("invalid request: model does not exist"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInfrastructureError(tt.err); got != tt.want {
				t.Errorf("IsInfrastructureError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsInfrastructureHTTPStatus(t *testing.T) {
	infra := []int{408, 429, 500, 502, 503, 504, 507, 508, 529, 599}
	for _, code := range infra {
		if !IsInfrastructureHTTPStatus(code) {
			t.Errorf("status %d should be infrastructure", code)
		}
	}

	content := []int{200, 400, 401, 403, 404, 422}
	for _, code := range content {
		if IsInfrastructureHTTPStatus(code) {
			t.Errorf("status %d should not be infrastructure", code)
		}
	}
}
