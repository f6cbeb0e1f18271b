package server

import (
	"net/http"
	"strings"

	"github.com/listing-magic/content-backend/internal/core/documents"
	"github.com/listing-magic/content-backend/internal/core/generation"
)

// Document endpoint generation settings. Creative drafting runs warmer than
// analytical review and summarization.
const (
	draftTemperature      float32 = 0.7
	analyticalTemperature float32 = 0.3

	draftMaxTokens     = 2000
	reviewMaxTokens    = 3000
	summarizeMaxTokens = 2000
	walkthruMaxTokens  = 3000
)

// documentTask describes how one document endpoint maps onto the generation
// pipeline.
type documentTask struct {
	systemPrompt  string
	sectionHeader string
	taskType      string
	temperature   float32
	maxTokens     int
	// requireDocs rejects empty batches with this message when set.
	requireDocs string
}

func (s *Server) handleDraftText(w http.ResponseWriter, r *http.Request) {
	s.handleDocumentGeneration(w, r, documentTask{
		systemPrompt:  documents.DraftTextSystem,
		sectionHeader: "DOCUMENT CONTENT",
		taskType:      generation.TaskPublicRemarks,
		temperature:   draftTemperature,
		maxTokens:     draftMaxTokens,
	})
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	s.handleDocumentGeneration(w, r, documentTask{
		systemPrompt:  documents.ReviewSystem,
		sectionHeader: "DOCUMENTS TO REVIEW",
		taskType:      generation.TaskFeatures,
		temperature:   analyticalTemperature,
		maxTokens:     reviewMaxTokens,
		requireDocs:   "No documents provided to review",
	})
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	s.handleDocumentGeneration(w, r, documentTask{
		systemPrompt:  documents.SummarizeSystem,
		sectionHeader: "DOCUMENTS TO SUMMARIZE",
		taskType:      generation.TaskFeatures,
		temperature:   analyticalTemperature,
		maxTokens:     summarizeMaxTokens,
		requireDocs:   "No documents provided to summarize",
	})
}

func (s *Server) handleWalkthru(w http.ResponseWriter, r *http.Request) {
	s.handleDocumentGeneration(w, r, documentTask{
		systemPrompt:  documents.WalkthruSystem,
		sectionHeader: "PROPERTY DOCUMENTS",
		taskType:      generation.TaskPublicRemarks,
		temperature:   draftTemperature,
		maxTokens:     walkthruMaxTokens,
	})
}

func (s *Server) handleDocumentGeneration(w http.ResponseWriter, r *http.Request, task documentTask) {
	var req DocumentRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())

		return
	}

	if strings.TrimSpace(req.UserPrompt) == "" {
		s.writeError(w, r, http.StatusBadRequest, "user_prompt is required")

		return
	}

	processed := s.processor.Process(r.Context(), req.DocumentURLs)

	if task.requireDocs != "" && processed.Empty() {
		s.writeJSON(w, http.StatusOK, DocumentResponse{
			Success: false,
			Error:   task.requireDocs,
		})

		return
	}

	userPrompt := documents.BuildUserPrompt(req.UserPrompt, task.sectionHeader, processed.CombinedText)

	result, err := s.orchestrator.Generate(r.Context(), generation.Task{
		SystemPrompt: task.systemPrompt,
		UserPrompt:   userPrompt,
		PhotoURLs:    processed.ImageURLs,
		Type:         task.taskType,
		Temperature:  task.temperature,
		MaxTokens:    task.maxTokens,
	})
	if err != nil {
		s.writeJSON(w, http.StatusOK, DocumentResponse{
			Success: false,
			Error:   err.Error(),
		})

		return
	}

	if !result.Success {
		s.writeJSON(w, http.StatusOK, DocumentResponse{
			Success: false,
			Error:   result.Error,
		})

		return
	}

	s.writeJSON(w, http.StatusOK, DocumentResponse{
		Success:       true,
		GeneratedText: strings.TrimSpace(result.Content),
		TokenCount:    result.InputTokens + result.OutputTokens,
	})
}
