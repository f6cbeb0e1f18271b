package generation

import "context"

// ProviderResponse is the raw output of a single provider attempt.
type ProviderResponse struct {
	Content      string
	InputTokens  int
	OutputTokens int
}

// Provider is a single LLM backend. Implementations classify their own
// failures: transport and service problems come back wrapped in
// InfrastructureError, everything else is treated as a content error by the
// orchestrator.
type Provider interface {
	// Name returns the provider identifier used in logs, metrics, and costs.
	Name() string

	// Model returns the model identifier this provider is configured with.
	Model() string

	// Available reports whether the provider has credentials configured.
	Available() bool

	// Generate runs one generation attempt. It must respect ctx cancellation.
	Generate(ctx context.Context, task Task) (*ProviderResponse, error)

	// Ping performs a minimal request to verify the provider responds.
	Ping(ctx context.Context) error
}
