package db

import (
	"context"
	"fmt"
	"time"
)

// AIUsage represents daily usage statistics for an AI provider and task.
type AIUsage struct {
	Date             string  `json:"date"`
	Provider         string  `json:"provider"`
	Model            string  `json:"model"`
	Task             string  `json:"task"`
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	RequestCount     int     `json:"request_count"`
	CostUSD          float64 `json:"cost_usd"`
}

// UsageSummary provides aggregated usage statistics.
type UsageSummary struct {
	TotalPromptTokens     int64                    `json:"total_prompt_tokens"`
	TotalCompletionTokens int64                    `json:"total_completion_tokens"`
	TotalRequests         int64                    `json:"total_requests"`
	TotalCostUSD          float64                  `json:"total_cost_usd"`
	ByProvider            map[string]ProviderUsage `json:"by_provider"`
	ByTask                map[string]TaskUsage     `json:"by_task"`
}

// ProviderUsage holds usage for a single provider.
type ProviderUsage struct {
	Provider         string  `json:"provider"`
	PromptTokens     int64   `json:"prompt_tokens"`
	CompletionTokens int64   `json:"completion_tokens"`
	RequestCount     int64   `json:"request_count"`
	CostUSD          float64 `json:"cost_usd"`
}

// TaskUsage holds usage for a single task type.
type TaskUsage struct {
	Task             string  `json:"task"`
	PromptTokens     int64   `json:"prompt_tokens"`
	CompletionTokens int64   `json:"completion_tokens"`
	RequestCount     int64   `json:"request_count"`
	CostUSD          float64 `json:"cost_usd"`
}

// IncrementUsage increments AI usage counters for the current day.
func (db *DB) IncrementUsage(ctx context.Context, provider, model, task string, promptTokens, completionTokens int, cost float64) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO ai_usage (date, provider, model, task, prompt_tokens, completion_tokens, request_count, cost_usd)
		VALUES (CURRENT_DATE, $1, $2, $3, $4, $5, 1, $6)
		ON CONFLICT (date, provider, model, task)
		DO UPDATE SET
			prompt_tokens = ai_usage.prompt_tokens + EXCLUDED.prompt_tokens,
			completion_tokens = ai_usage.completion_tokens + EXCLUDED.completion_tokens,
			request_count = ai_usage.request_count + 1,
			cost_usd = ai_usage.cost_usd + EXCLUDED.cost_usd,
			updated_at = now()
	`, provider, model, task, promptTokens, completionTokens, cost)
	if err != nil {
		return fmt.Errorf("increment ai usage: %w", err)
	}

	return nil
}

// GetDailyUsage returns AI usage for the current day.
func (db *DB) GetDailyUsage(ctx context.Context) (*UsageSummary, error) {
	return db.getUsageWhere(ctx, "date = CURRENT_DATE")
}

// GetMonthlyUsage returns AI usage for the current month.
func (db *DB) GetMonthlyUsage(ctx context.Context) (*UsageSummary, error) {
	return db.getUsageWhere(ctx, "date >= DATE_TRUNC('month', CURRENT_DATE)")
}

// GetUsageSince returns AI usage since a given time.
func (db *DB) GetUsageSince(ctx context.Context, since time.Time) (*UsageSummary, error) {
	return db.getUsageWhere(ctx, fmt.Sprintf("date >= '%s'", since.Format("2006-01-02")))
}

// getUsageWhere is a helper that fetches and aggregates AI usage.
func (db *DB) getUsageWhere(ctx context.Context, whereClause string) (*UsageSummary, error) {
	query := fmt.Sprintf(`
		SELECT provider, model, task,
			   COALESCE(SUM(prompt_tokens), 0)::bigint,
			   COALESCE(SUM(completion_tokens), 0)::bigint,
			   COALESCE(SUM(request_count), 0)::bigint,
			   COALESCE(SUM(cost_usd), 0)::numeric
		FROM ai_usage
		WHERE %s
		GROUP BY provider, model, task
	`, whereClause)

	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get ai usage: %w", err)
	}
	defer rows.Close()

	summary := &UsageSummary{
		ByProvider: make(map[string]ProviderUsage),
		ByTask:     make(map[string]TaskUsage),
	}

	for rows.Next() {
		var (
			provider         string
			model            string
			task             string
			promptTokens     int64
			completionTokens int64
			requestCount     int64
			costUSD          float64
		)

		if err := rows.Scan(&provider, &model, &task, &promptTokens, &completionTokens, &requestCount, &costUSD); err != nil {
			return nil, fmt.Errorf("scan ai usage row: %w", err)
		}

		summary.TotalPromptTokens += promptTokens
		summary.TotalCompletionTokens += completionTokens
		summary.TotalRequests += requestCount
		summary.TotalCostUSD += costUSD

		provUsage := summary.ByProvider[provider]
		provUsage.Provider = provider
		provUsage.PromptTokens += promptTokens
		provUsage.CompletionTokens += completionTokens
		provUsage.RequestCount += requestCount
		provUsage.CostUSD += costUSD
		summary.ByProvider[provider] = provUsage

		taskUsage := summary.ByTask[task]
		taskUsage.Task = task
		taskUsage.PromptTokens += promptTokens
		taskUsage.CompletionTokens += completionTokens
		taskUsage.RequestCount += requestCount
		taskUsage.CostUSD += costUSD
		summary.ByTask[task] = taskUsage
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate ai usage rows: %w", rows.Err())
	}

	return summary, nil
}

// GetUsageDetails returns detailed AI usage for a date range.
func (db *DB) GetUsageDetails(ctx context.Context, since time.Time) ([]AIUsage, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT date::text, provider, model, task, prompt_tokens, completion_tokens, request_count, cost_usd
		FROM ai_usage
		WHERE date >= $1
		ORDER BY date DESC, provider, model, task
	`, since)
	if err != nil {
		return nil, fmt.Errorf("get ai usage details: %w", err)
	}
	defer rows.Close()

	var usages []AIUsage

	for rows.Next() {
		var u AIUsage

		if err := rows.Scan(&u.Date, &u.Provider, &u.Model, &u.Task, &u.PromptTokens, &u.CompletionTokens, &u.RequestCount, &u.CostUSD); err != nil {
			return nil, fmt.Errorf("scan ai usage detail row: %w", err)
		}

		usages = append(usages, u)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate ai usage detail rows: %w", rows.Err())
	}

	return usages, nil
}
