package generation

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// geminiProvider is the fallback generation backend. Gemini does not accept
// image URLs, so photos are downloaded and inlined as raw bytes. A failed
// download skips that image and continues with the rest.
type geminiProvider struct {
	apiKey      string
	model       string
	client      *genai.Client
	fetcher     *ImageFetcher
	logger      *zerolog.Logger
	rateLimiter *rate.Limiter
}

func NewGeminiProvider(ctx context.Context, apiKey, model string, rps float64, fetcher *ImageFetcher, logger *zerolog.Logger) (Provider, error) {
	if rps == 0 {
		rps = 1
	}

	p := &geminiProvider{
		apiKey:      apiKey,
		model:       model,
		fetcher:     fetcher,
		logger:      logger,
		rateLimiter: rate.NewLimiter(rate.Limit(rps), rateLimiterBurst),
	}

	if apiKey == "" {
		return p, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	p.client = client

	return p, nil
}

func (p *geminiProvider) Name() string { return ProviderGemini }

func (p *geminiProvider) Model() string { return p.model }

func (p *geminiProvider) Available() bool { return p.apiKey != "" && p.client != nil }

func (p *geminiProvider) Generate(ctx context.Context, task Task) (*ProviderResponse, error) {
	if !p.Available() {
		return nil, NewInfrastructureError(ProviderGemini, ErrMissingAPIKey)
	}

	if err := p.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf(errRateLimiter, err)
	}

	// Gemini has no separate system role in this API surface, so the system
	// prompt is prepended to the user prompt.
	combined := task.SystemPrompt + "\n\n" + task.UserPrompt

	parts := []genai.Part{genai.Text(sanitizeUTF8(combined))}

	for _, url := range task.PhotoURLs {
		mime, data, err := p.fetcher.Fetch(ctx, url)
		if err != nil {
			p.logger.Warn().Err(err).Str("url", url).Msg("skipping image, download failed")
			continue
		}

		parts = append(parts, genai.Blob{MIMEType: mime, Data: data})
	}

	genModel := p.client.GenerativeModel(p.model)
	genModel.SetTemperature(task.Temperature)
	genModel.SetMaxOutputTokens(int32(task.MaxTokens))

	resp, err := genModel.GenerateContent(ctx, parts...)
	if err != nil {
		err = fmt.Errorf(errGeminiCompletion, err)
		if IsInfrastructureError(err) {
			return nil, NewInfrastructureError(ProviderGemini, err)
		}

		return nil, err
	}

	text := extractGeminiResponseText(resp)
	if text == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyResponse, ProviderGemini)
	}

	var inputTokens, outputTokens int
	if resp.UsageMetadata != nil {
		inputTokens = int(resp.UsageMetadata.PromptTokenCount)
		outputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}

	return &ProviderResponse{
		Content:      text,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
	}, nil
}

func (p *geminiProvider) Ping(ctx context.Context) error {
	if !p.Available() {
		return ErrMissingAPIKey
	}

	it := p.client.ListModels(ctx)

	if _, err := it.Next(); err != nil && err != iterator.Done {
		return fmt.Errorf("gemini ping: %w", err)
	}

	return nil
}

// extractGeminiResponseText concatenates text parts from all candidates.
func extractGeminiResponseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var result strings.Builder

	for _, candidate := range resp.Candidates {
		if candidate.Content != nil {
			for _, part := range candidate.Content.Parts {
				if text, ok := part.(genai.Text); ok {
					result.WriteString(string(text))
				}
			}
		}
	}

	return result.String()
}

// sanitizeUTF8 removes invalid UTF-8 sequences. The Gemini protobuf API
// rejects strings containing invalid bytes.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var builder strings.Builder
	builder.Grow(len(s))

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			builder.WriteRune(utf8.RuneError)

			i++
		} else {
			builder.WriteRune(r)

			i += size
		}
	}

	return builder.String()
}

var _ Provider = (*geminiProvider)(nil)
