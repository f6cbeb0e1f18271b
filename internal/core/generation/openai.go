package generation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/listing-magic/content-backend/internal/platform/observability"
)

// openaiProvider is the primary generation backend. Photo URLs are passed
// to the API directly without downloading.
type openaiProvider struct {
	apiKey      string
	model       string
	client      *openai.Client
	logger      *zerolog.Logger
	rateLimiter *rate.Limiter

	// Circuit breaker state
	consecutiveFailures int
	circuitOpenUntil    time.Time
	mu                  sync.Mutex
}

// ErrCircuitBreakerOpen indicates the circuit breaker is open.
var ErrCircuitBreakerOpen = errors.New("circuit breaker is open")

func NewOpenAIProvider(apiKey, model string, rps float64, logger *zerolog.Logger) Provider {
	if rps == 0 {
		rps = 1
	}

	return &openaiProvider{
		apiKey:      apiKey,
		model:       model,
		client:      openai.NewClient(apiKey),
		logger:      logger,
		rateLimiter: rate.NewLimiter(rate.Limit(rps), rateLimiterBurst),
	}
}

func (p *openaiProvider) Name() string { return ProviderOpenAI }

func (p *openaiProvider) Model() string { return p.model }

func (p *openaiProvider) Available() bool { return p.apiKey != "" }

func (p *openaiProvider) checkCircuit() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if time.Now().Before(p.circuitOpenUntil) {
		return fmt.Errorf("%w until %v", ErrCircuitBreakerOpen, p.circuitOpenUntil)
	}

	return nil
}

func (p *openaiProvider) recordSuccess() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.consecutiveFailures = 0

	observability.CircuitBreakerState.WithLabelValues(ProviderOpenAI).Set(MetricValueCBClosed)
}

func (p *openaiProvider) recordFailure() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.consecutiveFailures++
	if p.consecutiveFailures >= circuitBreakerThreshold {
		p.circuitOpenUntil = time.Now().Add(circuitBreakerTimeout)

		observability.CircuitBreakerOpens.WithLabelValues(ProviderOpenAI).Inc()
		observability.CircuitBreakerState.WithLabelValues(ProviderOpenAI).Set(MetricValueCBOpen)

		p.logger.Warn().
			Int("consecutive_failures", p.consecutiveFailures).
			Time("open_until", p.circuitOpenUntil).
			Msg("Circuit breaker opened")
	}
}

func (p *openaiProvider) Generate(ctx context.Context, task Task) (*ProviderResponse, error) {
	if p.apiKey == "" {
		return nil, NewInfrastructureError(ProviderOpenAI, ErrMissingAPIKey)
	}

	if err := p.checkCircuit(); err != nil {
		return nil, NewInfrastructureError(ProviderOpenAI, err)
	}

	if err := p.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf(errRateLimiter, err)
	}

	parts := []openai.ChatMessagePart{
		{
			Type: openai.ChatMessagePartTypeText,
			Text: task.UserPrompt,
		},
	}

	for _, url := range task.PhotoURLs {
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL:    url,
				Detail: openai.ImageURLDetailHigh,
			},
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: task.SystemPrompt,
			},
			{
				Role:         openai.ChatMessageRoleUser,
				MultiContent: parts,
			},
		},
		Temperature: task.Temperature,
		MaxTokens:   task.MaxTokens,
	})
	if err != nil {
		p.recordFailure()

		err = fmt.Errorf(errOpenAIChatCompletion, err)
		if IsInfrastructureError(err) {
			return nil, NewInfrastructureError(ProviderOpenAI, err)
		}

		return nil, err
	}

	p.recordSuccess()

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyResponse, ProviderOpenAI)
	}

	return &ProviderResponse{
		Content:      resp.Choices[0].Message.Content,
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}, nil
}

func (p *openaiProvider) Ping(ctx context.Context) error {
	if p.apiKey == "" {
		return ErrMissingAPIKey
	}

	if _, err := p.client.ListModels(ctx); err != nil {
		return fmt.Errorf("openai ping: %w", err)
	}

	return nil
}

var _ Provider = (*openaiProvider)(nil)
