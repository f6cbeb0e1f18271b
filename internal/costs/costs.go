// Package costs aggregates per-request AI spend in memory and raises alerts
// when request, hourly, or daily thresholds are crossed.
package costs

import (
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/listing-magic/content-backend/internal/core/generation"
	"github.com/listing-magic/content-backend/internal/platform/observability"
)

const (
	AlertPerRequest = "per_request"
	AlertPerHour    = "per_hour"
	AlertPerDay     = "per_day"

	hourKeyFormat = "2006-01-02-15"
	dayKeyFormat  = "2006-01-02"
)

// Thresholds are the spend limits that trigger alerts. A zero threshold
// disables that alert.
type Thresholds struct {
	PerRequest float64
	PerHour    float64
	PerDay     float64
}

// UsageRecord is one priced generation call.
type UsageRecord struct {
	ID               string    `json:"request_id"`
	Timestamp        time.Time `json:"timestamp"`
	Provider         string    `json:"provider"`
	Model            string    `json:"model"`
	Task             string    `json:"task"`
	PromptTokens     int       `json:"input_tokens"`
	CompletionTokens int       `json:"output_tokens"`
	CostUSD          float64   `json:"cost_usd"`
}

// Alert marks a crossed spend threshold. Window identifies the scope key
// (request id, hour, or date).
type Alert struct {
	Type      string    `json:"type"`
	Threshold float64   `json:"threshold"`
	Actual    float64   `json:"actual"`
	Window    string    `json:"window"`
	Timestamp time.Time `json:"timestamp"`
}

// Summary aggregates spend over a period. Cost values are rounded to four
// decimal places.
type Summary struct {
	TotalCostUSD     float64            `json:"total_cost_usd"`
	TotalRequests    int                `json:"total_requests"`
	TotalInputTokens int                `json:"total_input_tokens"`
	TotalOutput      int                `json:"total_output_tokens"`
	ByProvider       map[string]float64 `json:"by_provider"`
	ByTask           map[string]float64 `json:"by_task"`
	ByModel          map[string]float64 `json:"by_model"`
}

// Tracker keeps usage records and aggregations in memory. All methods are
// safe for concurrent use.
type Tracker struct {
	mu          sync.Mutex
	records     []UsageRecord
	hourlyCosts map[string]float64
	dailyCosts  map[string]float64
	alerts      []Alert

	thresholds Thresholds
	logger     *zerolog.Logger
	now        func() time.Time
}

func NewTracker(thresholds Thresholds, logger *zerolog.Logger) *Tracker {
	return &Tracker{
		hourlyCosts: make(map[string]float64),
		dailyCosts:  make(map[string]float64),
		thresholds:  thresholds,
		logger:      logger,
		now:         time.Now,
	}
}

// RecordUsage stores a priced call and evaluates alert thresholds.
func (t *Tracker) RecordUsage(provider, model, task string, promptTokens, completionTokens int, cost float64) {
	now := t.now().UTC()

	record := UsageRecord{
		ID:               uuid.NewString(),
		Timestamp:        now,
		Provider:         provider,
		Model:            model,
		Task:             task,
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		CostUSD:          cost,
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.records = append(t.records, record)

	hourKey := now.Format(hourKeyFormat)
	dayKey := now.Format(dayKeyFormat)

	t.hourlyCosts[hourKey] += cost
	t.dailyCosts[dayKey] += cost

	t.checkThresholds(record, hourKey, dayKey)
}

// checkThresholds must be called with the mutex held. Hourly and daily alerts
// fire once per window.
func (t *Tracker) checkThresholds(record UsageRecord, hourKey, dayKey string) {
	if t.thresholds.PerRequest > 0 && record.CostUSD > t.thresholds.PerRequest {
		t.addAlert(Alert{
			Type:      AlertPerRequest,
			Threshold: t.thresholds.PerRequest,
			Actual:    record.CostUSD,
			Window:    record.ID,
			Timestamp: record.Timestamp,
		})
	}

	if t.thresholds.PerHour > 0 && t.hourlyCosts[hourKey] > t.thresholds.PerHour && !t.alertExists(AlertPerHour, hourKey) {
		t.addAlert(Alert{
			Type:      AlertPerHour,
			Threshold: t.thresholds.PerHour,
			Actual:    t.hourlyCosts[hourKey],
			Window:    hourKey,
			Timestamp: record.Timestamp,
		})
	}

	if t.thresholds.PerDay > 0 && t.dailyCosts[dayKey] > t.thresholds.PerDay && !t.alertExists(AlertPerDay, dayKey) {
		t.addAlert(Alert{
			Type:      AlertPerDay,
			Threshold: t.thresholds.PerDay,
			Actual:    t.dailyCosts[dayKey],
			Window:    dayKey,
			Timestamp: record.Timestamp,
		})
	}
}

func (t *Tracker) addAlert(alert Alert) {
	t.alerts = append(t.alerts, alert)

	observability.CostAlerts.WithLabelValues(alert.Type).Inc()

	t.logger.Warn().
		Str("type", alert.Type).
		Float64("threshold", alert.Threshold).
		Float64("actual", alert.Actual).
		Str("window", alert.Window).
		Msg("cost threshold exceeded")
}

func (t *Tracker) alertExists(alertType, window string) bool {
	for _, a := range t.alerts {
		if a.Type == alertType && a.Window == window {
			return true
		}
	}

	return false
}

// GetSummary aggregates records whose timestamps fall in [start, end]. Zero
// bounds are open ended.
func (t *Tracker) GetSummary(start, end time.Time) Summary {
	summary := Summary{
		ByProvider: make(map[string]float64),
		ByTask:     make(map[string]float64),
		ByModel:    make(map[string]float64),
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, record := range t.records {
		if !start.IsZero() && record.Timestamp.Before(start) {
			continue
		}

		if !end.IsZero() && record.Timestamp.After(end) {
			continue
		}

		summary.TotalCostUSD += record.CostUSD
		summary.TotalRequests++
		summary.TotalInputTokens += record.PromptTokens
		summary.TotalOutput += record.CompletionTokens

		summary.ByProvider[record.Provider] += record.CostUSD
		summary.ByTask[record.Task] += record.CostUSD
		summary.ByModel[record.Model] += record.CostUSD
	}

	summary.TotalCostUSD = round4(summary.TotalCostUSD)
	for k, v := range summary.ByProvider {
		summary.ByProvider[k] = round4(v)
	}

	for k, v := range summary.ByTask {
		summary.ByTask[k] = round4(v)
	}

	for k, v := range summary.ByModel {
		summary.ByModel[k] = round4(v)
	}

	return summary
}

// GetTodaySummary aggregates records from the current UTC day.
func (t *Tracker) GetTodaySummary() Summary {
	now := t.now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	return t.GetSummary(start, start.Add(24*time.Hour))
}

// GetAlerts returns a copy of all triggered alerts.
func (t *Tracker) GetAlerts() []Alert {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Alert, len(t.alerts))
	copy(out, t.alerts)

	return out
}

// EstimateFullGeneration prices a complete listing package with the given
// models, using typical token counts per task.
func EstimateFullGeneration(openaiModel, anthropicModel, geminiModel string) map[string]float64 {
	estimates := map[string]float64{
		"public_remarks":  generation.EstimateCost(generation.ProviderOpenAI, openaiModel, 1500, 400),
		"walkthru_script": generation.EstimateCost("anthropic", anthropicModel, 1000, 800),
		"features":        generation.EstimateCost(generation.ProviderGemini, geminiModel, 800, 600),
		"reso_data":       generation.EstimateCost(generation.ProviderGemini, geminiModel, 800, 1200),
	}

	var total float64
	for _, v := range estimates {
		total += v
	}

	estimates["total"] = total

	for k, v := range estimates {
		estimates[k] = round4(v)
	}

	return estimates
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
