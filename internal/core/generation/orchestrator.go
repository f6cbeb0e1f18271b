package generation

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/listing-magic/content-backend/internal/platform/observability"
)

// Orchestrator runs the primary-then-fallback generation flow. Attempts are
// strictly sequential: the fallback provider is never invoked before the
// primary outcome is fully known, and at most once per request.
type Orchestrator struct {
	primary  Provider
	fallback Provider
	recorder UsageRecorder
	logger   *zerolog.Logger
}

func NewOrchestrator(primary, fallback Provider, recorder UsageRecorder, logger *zerolog.Logger) *Orchestrator {
	if recorder == nil {
		recorder = NoopUsageRecorder()
	}

	return &Orchestrator{
		primary:  primary,
		fallback: fallback,
		recorder: recorder,
		logger:   logger,
	}
}

// Generate attempts the task on the primary provider and falls back to the
// secondary only on infrastructure failures. Content errors are returned as
// a non-nil error with no fallback attempt: a second provider would fail the
// same request the same way. When both providers fail on infrastructure the
// returned Result carries Success=false and both error messages, with a nil
// error.
func (o *Orchestrator) Generate(ctx context.Context, task Task) (Result, error) {
	start := time.Now()

	o.logger.Info().
		Str(logKeyTask, task.Type).
		Int("photos", len(task.PhotoURLs)).
		Str(logKeyProvider, o.primary.Name()).
		Msg("starting generation")

	resp, err := o.attempt(ctx, o.primary, task)
	if err == nil {
		return o.successResult(o.primary, task, resp, start, false), nil
	}

	if !IsInfrastructureError(err) {
		o.logger.Error().Err(err).
			Str(logKeyProvider, o.primary.Name()).
			Str(logKeyTask, task.Type).
			Msg("content error, not falling back")

		return Result{}, err
	}

	// A canceled request must not spill into a second provider call.
	if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}

	primaryErr := err

	o.logger.Warn().Err(primaryErr).
		Str("from_provider", o.primary.Name()).
		Str("to_provider", o.fallback.Name()).
		Str(logKeyTask, task.Type).
		Msg("infrastructure error, falling back to secondary provider")

	observability.GenerationFallbacks.WithLabelValues(o.primary.Name(), o.fallback.Name(), task.Type).Inc()

	resp, err = o.attempt(ctx, o.fallback, task)
	if err == nil {
		return o.successResult(o.fallback, task, resp, start, true), nil
	}

	o.logger.Error().
		AnErr("primary_error", primaryErr).
		AnErr("fallback_error", err).
		Str(logKeyTask, task.Type).
		Msg("all providers failed")

	return Result{
		Success:          false,
		Content:          "",
		ProviderUsed:     ProviderNone,
		ModelUsed:        ProviderNone,
		GenerationTimeMS: time.Since(start).Milliseconds(),
		IsFallback:       true,
		Error: fmt.Sprintf("All providers failed. %s: %v. %s: %v",
			o.primary.Name(), primaryErr, o.fallback.Name(), err),
	}, nil
}

// attempt runs one provider call with latency and usage accounting.
func (o *Orchestrator) attempt(ctx context.Context, provider Provider, task Task) (*ProviderResponse, error) {
	attemptStart := time.Now()

	resp, err := provider.Generate(ctx, task)

	observability.GenerationLatency.
		WithLabelValues(provider.Name(), provider.Model(), task.Type).
		Observe(time.Since(attemptStart).Seconds())

	if err != nil {
		o.recorder.RecordTokenUsage(provider.Name(), provider.Model(), task.Type, 0, 0, false)

		return nil, err
	}

	o.recorder.RecordTokenUsage(provider.Name(), provider.Model(), task.Type, resp.InputTokens, resp.OutputTokens, true)

	return resp, nil
}

func (o *Orchestrator) successResult(provider Provider, task Task, resp *ProviderResponse, start time.Time, isFallback bool) Result {
	elapsed := time.Since(start).Milliseconds()

	o.logger.Info().
		Str(logKeyProvider, provider.Name()).
		Str(logKeyModel, provider.Model()).
		Str(logKeyTask, task.Type).
		Int64("generation_time_ms", elapsed).
		Int("input_tokens", resp.InputTokens).
		Int("output_tokens", resp.OutputTokens).
		Bool("is_fallback", isFallback).
		Msg("generation succeeded")

	return Result{
		Success:          true,
		Content:          resp.Content,
		ProviderUsed:     provider.Name(),
		ModelUsed:        provider.Model(),
		GenerationTimeMS: elapsed,
		InputTokens:      resp.InputTokens,
		OutputTokens:     resp.OutputTokens,
		IsFallback:       isFallback,
	}
}

// GeneratePublicRemarks generates a listing description.
func (o *Orchestrator) GeneratePublicRemarks(ctx context.Context, systemPrompt, userPrompt string, photoURLs []string, maxWords int) (Result, error) {
	return o.Generate(ctx, NewPublicRemarksTask(systemPrompt, userPrompt, photoURLs, maxWords))
}

// GenerateFeatures generates a property feature list.
func (o *Orchestrator) GenerateFeatures(ctx context.Context, systemPrompt, userPrompt string, photoURLs []string, maxFeatures int) (Result, error) {
	return o.Generate(ctx, NewFeaturesTask(systemPrompt, userPrompt, photoURLs, maxFeatures))
}

// GenerateMLSData generates a structured MLS record.
func (o *Orchestrator) GenerateMLSData(ctx context.Context, systemPrompt, userPrompt string, photoURLs []string) (Result, error) {
	return o.Generate(ctx, NewMLSDataTask(systemPrompt, userPrompt, photoURLs))
}

// ProviderStatus is the health summary of one provider.
type ProviderStatus struct {
	Status string `json:"status"`
	Model  string `json:"model"`
}

// CheckHealth probes both providers. It never returns an error: failures
// become status strings so callers can always render a health payload.
func (o *Orchestrator) CheckHealth(ctx context.Context) map[string]ProviderStatus {
	statuses := make(map[string]ProviderStatus, 2)

	for _, provider := range []Provider{o.primary, o.fallback} {
		statuses[provider.Name()] = o.probeProvider(ctx, provider)
	}

	return statuses
}

func (o *Orchestrator) probeProvider(ctx context.Context, provider Provider) ProviderStatus {
	status := ProviderStatus{Model: provider.Model()}

	switch {
	case !provider.Available():
		status.Status = HealthStatusNoAPIKey

		observability.ProviderAvailable.WithLabelValues(provider.Name()).Set(MetricValueUnavailable)
	default:
		if err := provider.Ping(ctx); err != nil {
			msg := err.Error()
			if len(msg) > healthErrorMaxLen {
				msg = msg[:healthErrorMaxLen]
			}

			status.Status = "error: " + msg

			observability.ProviderAvailable.WithLabelValues(provider.Name()).Set(MetricValueUnavailable)

			break
		}

		status.Status = HealthStatusHealthy

		observability.ProviderAvailable.WithLabelValues(provider.Name()).Set(MetricValueAvailable)
	}

	return status
}
