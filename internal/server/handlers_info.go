package server

import (
	"net/http"
	"time"

	"github.com/listing-magic/content-backend/internal/core/generation"
	"github.com/listing-magic/content-backend/internal/costs"
)

// HealthResponse reports service availability and the models in use.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Services  map[string]bool   `json:"services"`
	Models    map[string]string `json:"models"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	statuses := s.orchestrator.CheckHealth(r.Context())

	services := make(map[string]bool, len(statuses)+1)
	for provider, status := range statuses {
		services[provider] = status.Status == generation.HealthStatusHealthy
	}

	services["anthropic"] = s.refiner.Available()

	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   apiVersion,
		Services:  services,
		Models: map[string]string{
			"public_remarks":  s.models.OpenAI,
			"walkthru_script": s.models.Anthropic,
			"features":        s.models.Gemini,
			"reso_data":       s.models.Gemini,
		},
	})
}

// CostSummaryResponse reports today's spend, per-package estimates, and
// triggered alerts.
type CostSummaryResponse struct {
	Today     TodayCosts         `json:"today"`
	Estimates map[string]float64 `json:"estimates"`
	Alerts    []costs.Alert      `json:"alerts"`
}

// TodayCosts is the current-day aggregation.
type TodayCosts struct {
	TotalCostUSD  float64            `json:"total_cost_usd"`
	TotalRequests int                `json:"total_requests"`
	TotalTokens   int                `json:"total_tokens"`
	ByProvider    map[string]float64 `json:"by_provider"`
	ByTask        map[string]float64 `json:"by_task"`
}

func (s *Server) handleCostSummary(w http.ResponseWriter, _ *http.Request) {
	summary := s.tracker.GetTodaySummary()

	s.writeJSON(w, http.StatusOK, CostSummaryResponse{
		Today: TodayCosts{
			TotalCostUSD:  summary.TotalCostUSD,
			TotalRequests: summary.TotalRequests,
			TotalTokens:   summary.TotalInputTokens + summary.TotalOutput,
			ByProvider:    summary.ByProvider,
			ByTask:        summary.ByTask,
		},
		Estimates: costs.EstimateFullGeneration(s.models.OpenAI, s.models.Anthropic, s.models.Gemini),
		Alerts:    s.tracker.GetAlerts(),
	})
}

// ModelInfo describes one configured model.
type ModelInfo struct {
	Provider       string `json:"provider"`
	ModelID        string `json:"model_id"`
	Task           string `json:"task"`
	SupportsVision bool   `json:"supports_vision"`
	Role           string `json:"role"`
}

func (s *Server) handleModels(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]map[string]ModelInfo{
		"models": {
			"public_remarks": {
				Provider:       "openai",
				ModelID:        s.models.OpenAI,
				Task:           generation.TaskPublicRemarks,
				SupportsVision: true,
				Role:           "primary",
			},
			"walkthru_script": {
				Provider:       "anthropic",
				ModelID:        s.models.Anthropic,
				Task:           "walkthru_script",
				SupportsVision: false,
				Role:           "primary",
			},
			"features": {
				Provider:       "openai",
				ModelID:        s.models.OpenAI,
				Task:           generation.TaskFeatures,
				SupportsVision: true,
				Role:           "primary",
			},
			"reso_data": {
				Provider:       "openai",
				ModelID:        s.models.OpenAI,
				Task:           generation.TaskMLS,
				SupportsVision: true,
				Role:           "primary",
			},
			"fallback": {
				Provider:       "gemini",
				ModelID:        s.models.Gemini,
				Task:           "all",
				SupportsVision: true,
				Role:           "fallback",
			},
			"refinement": {
				Provider:       "anthropic",
				ModelID:        s.models.Anthropic,
				Task:           "refine",
				SupportsVision: false,
				Role:           "refinement",
			},
		},
	})
}
