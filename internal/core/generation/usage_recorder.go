package generation

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/listing-magic/content-backend/internal/platform/observability"
)

// UsageRecorder records token usage for generation requests.
type UsageRecorder interface {
	RecordTokenUsage(provider, model, task string, promptTokens, completionTokens int, success bool)
}

// CostSink receives per-request usage with its estimated cost. The in-memory
// cost tracker implements this.
type CostSink interface {
	RecordUsage(provider, model, task string, promptTokens, completionTokens int, cost float64)
}

// UsageStore persists aggregated usage counters.
type UsageStore interface {
	IncrementUsage(ctx context.Context, provider, model, task string, promptTokens, completionTokens int, cost float64) error
}

// usageRecorder implements UsageRecorder with metrics, cost tracking, and
// optional persistence.
type usageRecorder struct {
	costSink   CostSink
	usageStore UsageStore
	logger     *zerolog.Logger
}

func NewUsageRecorder(costSink CostSink, usageStore UsageStore, logger *zerolog.Logger) UsageRecorder {
	return &usageRecorder{
		costSink:   costSink,
		usageStore: usageStore,
		logger:     logger,
	}
}

func (r *usageRecorder) RecordTokenUsage(provider, model, task string, promptTokens, completionTokens int, success bool) {
	r.recordTokenMetrics(provider, model, task, promptTokens, completionTokens, success)

	cost := EstimateCost(provider, model, promptTokens, completionTokens)
	r.recordCostMetric(provider, model, task, cost, success)

	if r.costSink != nil && success {
		r.costSink.RecordUsage(provider, model, task, promptTokens, completionTokens, cost)
	}

	r.persistUsage(provider, model, task, promptTokens, completionTokens, cost, success)
}

func (r *usageRecorder) recordTokenMetrics(provider, model, task string, promptTokens, completionTokens int, success bool) {
	status := StatusSuccess
	if !success {
		status = StatusError
	}

	observability.GenerationRequests.WithLabelValues(provider, model, task, status).Inc()

	if promptTokens > 0 {
		observability.GenerationTokensPrompt.WithLabelValues(provider, model, task).Add(float64(promptTokens))
	}

	if completionTokens > 0 {
		observability.GenerationTokensCompletion.WithLabelValues(provider, model, task).Add(float64(completionTokens))
	}
}

func (r *usageRecorder) recordCostMetric(provider, model, task string, cost float64, success bool) {
	if cost > 0 && success {
		observability.GenerationEstimatedCost.WithLabelValues(provider, model, task).Add(cost * usdToMillicents)
	}
}

// persistUsage stores usage asynchronously. Best-effort: a storage failure
// must not fail the generation request.
func (r *usageRecorder) persistUsage(provider, model, task string, promptTokens, completionTokens int, cost float64, success bool) {
	if r.usageStore == nil || !success {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), usageStorageTimeout)
		defer cancel()

		//nolint:errcheck,gosec // fire-and-forget: errors are intentionally ignored
		r.usageStore.IncrementUsage(ctx, provider, model, task, promptTokens, completionTokens, cost)
	}()
}

// noopUsageRecorder is used in tests and when usage tracking is disabled.
type noopUsageRecorder struct{}

func NoopUsageRecorder() UsageRecorder {
	return &noopUsageRecorder{}
}

func (r *noopUsageRecorder) RecordTokenUsage(_, _, _ string, _, _ int, _ bool) {
	// No-op
}
