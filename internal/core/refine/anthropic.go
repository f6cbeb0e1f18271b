package refine

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/listing-magic/content-backend/internal/core/generation"
)

const (
	providerAnthropic = "anthropic"
	taskRefine        = "refine"

	refineMaxTokens = 2000

	anthropicRateLimiterBurst = 5

	contentTypeText = "text"
)

// anthropicCompleter backs the refinement gate with Claude.
type anthropicCompleter struct {
	apiKey      string
	model       string
	client      anthropic.Client
	logger      *zerolog.Logger
	rateLimiter *rate.Limiter
	recorder    generation.UsageRecorder
}

func NewAnthropicCompleter(apiKey, model string, rps float64, recorder generation.UsageRecorder, logger *zerolog.Logger) Completer {
	if rps == 0 {
		rps = 1
	}

	if recorder == nil {
		recorder = generation.NoopUsageRecorder()
	}

	return &anthropicCompleter{
		apiKey:      apiKey,
		model:       model,
		client:      anthropic.NewClient(option.WithAPIKey(apiKey)),
		logger:      logger,
		rateLimiter: rate.NewLimiter(rate.Limit(rps), anthropicRateLimiterBurst),
		recorder:    recorder,
	}
}

func (c *anthropicCompleter) Available() bool {
	return c.apiKey != ""
}

func (c *anthropicCompleter) Complete(ctx context.Context, systemPrompt string, messages []Message) (Completion, error) {
	if c.apiKey == "" {
		return Completion{}, generation.ErrMissingAPIKey
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return Completion{}, fmt.Errorf("rate limiter: %w", err)
	}

	params := make([]anthropic.MessageParam, 0, len(messages))

	for _, msg := range messages {
		block := anthropic.NewTextBlock(msg.Content)

		if msg.Role == "assistant" {
			params = append(params, anthropic.NewAssistantMessage(block))
		} else {
			params = append(params, anthropic.NewUserMessage(block))
		}
	}

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: refineMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: params,
	})
	if err != nil {
		c.recorder.RecordTokenUsage(providerAnthropic, c.model, taskRefine, 0, 0, false)

		return Completion{}, fmt.Errorf("anthropic message: %w", err)
	}

	c.recorder.RecordTokenUsage(providerAnthropic, c.model, taskRefine, int(resp.Usage.InputTokens), int(resp.Usage.OutputTokens), true)

	return Completion{
		Text:         extractTextFromResponse(resp),
		InputTokens:  int(resp.Usage.InputTokens),
		OutputTokens: int(resp.Usage.OutputTokens),
	}, nil
}

// extractTextFromResponse concatenates text blocks from a Claude response.
func extractTextFromResponse(resp *anthropic.Message) string {
	if resp == nil {
		return ""
	}

	var result strings.Builder

	for _, block := range resp.Content {
		if block.Type == contentTypeText {
			result.WriteString(block.Text)
		}
	}

	return result.String()
}
