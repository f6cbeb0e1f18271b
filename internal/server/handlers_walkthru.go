package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/listing-magic/content-backend/internal/core/compliance"
	"github.com/listing-magic/content-backend/internal/core/generation"
	"github.com/listing-magic/content-backend/internal/core/prompts"
	"github.com/listing-magic/content-backend/internal/core/refine"
)

const (
	defaultWalkthruDuration = 120

	// Spoken-word pacing used to estimate playback time.
	walkthruWordsPerSecond = 2.5
)

// handleGenerateWalkthruScript narrates a video tour. Scripts are a
// single-provider Claude path: narration voice matters, so there is no
// fallback model.
func (s *Server) handleGenerateWalkthruScript(w http.ResponseWriter, r *http.Request) {
	var req WalkthruScriptRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())

		return
	}

	if req.DurationSeconds == 0 {
		req.DurationSeconds = defaultWalkthruDuration
	}

	if !s.completer.Available() {
		s.writeError(w, r, http.StatusServiceUnavailable, "Script generation service is not configured")

		return
	}

	userPrompt := prompts.FormatWalkthruPrompt(
		req.PropertyDetails.toPromptProperty(),
		req.PropertyDetails.Features,
		req.PublicRemarks,
		req.DurationSeconds,
		req.Style,
	)

	start := time.Now()

	completion, err := s.completer.Complete(r.Context(), prompts.WalkthruScriptSystem, []refine.Message{
		{Role: "user", Content: userPrompt},
	})
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, "Failed to generate walk-thru script: "+err.Error())

		return
	}

	script := strings.TrimSpace(completion.Text)
	wordCount := len(strings.Fields(script))

	check := compliance.Check(script)

	sanitized := ""
	if !check.IsCompliant {
		s.logger.Warn().Interface("violations", check.Violations).Msg("generated script failed compliance")

		sanitized = compliance.Sanitize(script)
	}

	s.writeJSON(w, http.StatusOK, WalkthruScriptResponse{
		Success:                  true,
		Script:                   script,
		WordCount:                wordCount,
		EstimatedDurationSeconds: int(float64(wordCount) / walkthruWordsPerSecond),
		Compliance:               &check,
		SanitizedScript:          sanitized,
		Usage: UsageMetrics{
			InputTokens:      completion.InputTokens,
			OutputTokens:     completion.OutputTokens,
			TotalTokens:      completion.InputTokens + completion.OutputTokens,
			CostUSD:          generation.EstimateCost("anthropic", s.models.Anthropic, completion.InputTokens, completion.OutputTokens),
			GenerationTimeMS: time.Since(start).Milliseconds(),
			ModelUsed:        s.models.Anthropic,
			Provider:         "anthropic",
		},
		GeneratedAt: time.Now().UTC(),
		RequestID:   requestIDFrom(r.Context()),
	})
}
