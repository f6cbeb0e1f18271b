package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/listing-magic/content-backend/internal/core/compliance"
	"github.com/listing-magic/content-backend/internal/core/refine"
)

func (s *Server) handleCheckCompliance(w http.ResponseWriter, r *http.Request) {
	var req ComplianceCheckRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())

		return
	}

	text := req.Text
	if text == "" {
		text = req.Content
	}

	check := compliance.Check(text)

	resp := ComplianceCheckResponse{Result: check}
	if !check.IsCompliant {
		resp.SanitizedContent = compliance.Sanitize(text)
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRefineContent(w http.ResponseWriter, r *http.Request) {
	var req RefineContentRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())

		return
	}

	if strings.TrimSpace(req.CurrentContent) == "" || strings.TrimSpace(req.UserInstruction) == "" {
		s.writeError(w, r, http.StatusBadRequest, "current_content and user_instruction are required")

		return
	}

	if !s.refiner.Available() {
		s.writeError(w, r, http.StatusServiceUnavailable, "Refinement service is not configured")

		return
	}

	resp, err := s.refiner.Refine(r.Context(), refine.Request{
		ContentType:     req.ContentType,
		CurrentContent:  req.CurrentContent,
		UserInstruction: req.UserInstruction,
		History:         req.ConversationHistory,
		Property:        req.PropertyContext,
	})
	if err != nil {
		if errors.Is(err, refine.ErrInvalidContentType) {
			s.writeError(w, r, http.StatusBadRequest, err.Error())

			return
		}

		s.writeError(w, r, http.StatusServiceUnavailable, "Refinement failed: "+err.Error())

		return
	}

	s.writeJSON(w, http.StatusOK, resp)
}
