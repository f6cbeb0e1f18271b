package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/listing-magic/content-backend/internal/core/compliance"
	"github.com/listing-magic/content-backend/internal/core/generation"
	"github.com/listing-magic/content-backend/internal/core/prompts"
)

const (
	defaultMaxWords      = 250
	defaultMaxFeatures   = 30
	defaultSchemaVersion = "2.0"
)

func usageFrom(result generation.Result) UsageMetrics {
	return UsageMetrics{
		InputTokens:      result.InputTokens,
		OutputTokens:     result.OutputTokens,
		TotalTokens:      result.InputTokens + result.OutputTokens,
		CostUSD:          generation.EstimateCost(result.ProviderUsed, result.ModelUsed, result.InputTokens, result.OutputTokens),
		GenerationTimeMS: result.GenerationTimeMS,
		ModelUsed:        result.ModelUsed,
		Provider:         result.ProviderUsed,
		IsFallback:       result.IsFallback,
	}
}

func (s *Server) handleGeneratePublicRemarks(w http.ResponseWriter, r *http.Request) {
	var req PublicRemarksRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())

		return
	}

	if req.MaxWords == 0 {
		req.MaxWords = defaultMaxWords
	}

	var photoURLs []string
	if req.AnalyzePhotos == nil || *req.AnalyzePhotos {
		photoURLs = req.PropertyDetails.PhotoURLs()
	}

	userPrompt := prompts.FormatPublicRemarksPrompt(req.PropertyDetails.toPromptProperty(), req.MaxWords, req.HighlightFeatures)

	result, err := s.orchestrator.GeneratePublicRemarks(r.Context(), prompts.PublicRemarksSystem, userPrompt, photoURLs, req.MaxWords)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, "Failed to generate public remarks: "+err.Error())

		return
	}

	if !result.Success {
		s.writeError(w, r, http.StatusServiceUnavailable, result.Error)

		return
	}

	text := strings.TrimSpace(result.Content)

	// The check result always reflects the text as generated. A sanitized
	// rewrite is offered separately so violations are never papered over.
	check := compliance.Check(text)

	sanitized := ""
	if !check.IsCompliant {
		s.logger.Warn().Interface("violations", check.Violations).Msg("generated remarks failed compliance")

		sanitized = compliance.Sanitize(text)
	}

	s.writeJSON(w, http.StatusOK, PublicRemarksResponse{
		Success:        true,
		Text:           text,
		WordCount:      len(strings.Fields(text)),
		PhotosAnalyzed: len(photoURLs),
		Compliance:     &check,
		SanitizedText:  sanitized,
		Usage:          usageFrom(result),
		GeneratedAt:    time.Now().UTC(),
		RequestID:      requestIDFrom(r.Context()),
	})
}

func (s *Server) handleGenerateFeatures(w http.ResponseWriter, r *http.Request) {
	var req FeaturesRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())

		return
	}

	if req.MaxFeatures == 0 {
		req.MaxFeatures = defaultMaxFeatures
	}

	userPrompt := prompts.FormatFeaturesPrompt(req.PropertyDetails.toPromptProperty(), req.MaxFeatures)
	photoURLs := req.PropertyDetails.PhotoURLs()

	result, err := s.orchestrator.GenerateFeatures(r.Context(), prompts.FeaturesSystem, userPrompt, photoURLs, req.MaxFeatures)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, "Failed to generate features: "+err.Error())

		return
	}

	if !result.Success {
		s.writeError(w, r, http.StatusServiceUnavailable, result.Error)

		return
	}

	var payload featuresPayload
	if err := json.Unmarshal([]byte(generation.ExtractJSON(result.Content)), &payload); err != nil {
		s.logger.Error().Err(err).Str("model", result.ModelUsed).Msg("features payload is not valid json")

		s.writeError(w, r, http.StatusBadGateway, "Model returned an unparseable features payload")

		return
	}

	s.writeJSON(w, http.StatusOK, FeaturesResponse{
		Success:             true,
		FeaturesList:        payload.AllFeatures,
		CategorizedFeatures: payload.Categories,
		HighlightFeatures:   payload.HighlightFeatures,
		TotalFeatures:       len(payload.AllFeatures),
		Usage:               usageFrom(result),
		GeneratedAt:         time.Now().UTC(),
		RequestID:           requestIDFrom(r.Context()),
	})
}

func (s *Server) handleGenerateRESO(w http.ResponseWriter, r *http.Request) {
	var req RESODataRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())

		return
	}

	if req.SchemaVersion == "" {
		req.SchemaVersion = defaultSchemaVersion
	}

	userPrompt := prompts.FormatRESOPrompt(req.PropertyDetails.toPromptProperty(), req.PublicRemarks, req.FeaturesList, req.SchemaVersion)

	result, err := s.orchestrator.GenerateMLSData(r.Context(), prompts.RESODataSystem, userPrompt, nil)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, "Failed to generate RESO data: "+err.Error())

		return
	}

	if !result.Success {
		s.writeError(w, r, http.StatusServiceUnavailable, result.Error)

		return
	}

	var resoJSON map[string]any

	validationErrors := []string{}

	if err := json.Unmarshal([]byte(generation.ExtractJSON(result.Content)), &resoJSON); err != nil {
		s.logger.Error().Err(err).Str("model", result.ModelUsed).Msg("reso payload is not valid json")

		s.writeError(w, r, http.StatusBadGateway, "Model returned an unparseable RESO payload")

		return
	}

	for _, field := range []string{"StandardStatus", "PublicRemarks", "UnparsedAddress"} {
		if _, ok := resoJSON[field]; !ok {
			validationErrors = append(validationErrors, "missing required field: "+field)
		}
	}

	s.writeJSON(w, http.StatusOK, RESODataResponse{
		Success:          true,
		RESOJSON:         resoJSON,
		SchemaVersion:    req.SchemaVersion,
		ValidationPassed: len(validationErrors) == 0,
		ValidationErrors: validationErrors,
		Usage:            usageFrom(result),
		GeneratedAt:      time.Now().UTC(),
		RequestID:        requestIDFrom(r.Context()),
	})
}
