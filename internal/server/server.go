// Package server exposes the listing content generation API over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/listing-magic/content-backend/internal/core/documents"
	"github.com/listing-magic/content-backend/internal/core/generation"
	"github.com/listing-magic/content-backend/internal/core/refine"
	"github.com/listing-magic/content-backend/internal/costs"
)

const (
	apiVersion = "1.0.0"

	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second

	maxRequestBody = 64 << 20
)

// Models names the model serving each content task.
type Models struct {
	OpenAI    string
	Gemini    string
	Anthropic string
}

// Server wires the generation pipeline into HTTP handlers.
type Server struct {
	orchestrator   *generation.Orchestrator
	refiner        *refine.Refiner
	completer      refine.Completer
	processor      *documents.Processor
	tracker        *costs.Tracker
	usage          UsageReader
	models         Models
	allowedOrigins []string
	port           uint16
	logger         *zerolog.Logger
}

func New(
	orchestrator *generation.Orchestrator,
	refiner *refine.Refiner,
	completer refine.Completer,
	processor *documents.Processor,
	tracker *costs.Tracker,
	usage UsageReader,
	models Models,
	allowedOrigins []string,
	port uint16,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		orchestrator:   orchestrator,
		refiner:        refiner,
		completer:      completer,
		processor:      processor,
		tracker:        tracker,
		usage:          usage,
		models:         models,
		allowedOrigins: allowedOrigins,
		port:           port,
		logger:         logger,
	}
}

// Handler builds the full route table with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /api/generate-public-remarks", s.handleGeneratePublicRemarks)
	mux.HandleFunc("POST /api/generate-walkthru-script", s.handleGenerateWalkthruScript)
	mux.HandleFunc("POST /api/generate-features", s.handleGenerateFeatures)
	mux.HandleFunc("POST /api/generate-reso", s.handleGenerateRESO)

	mux.HandleFunc("POST /api/check-compliance", s.handleCheckCompliance)
	mux.HandleFunc("POST /api/refine-content", s.handleRefineContent)

	mux.HandleFunc("POST /generate/draft-text", s.handleDraftText)
	mux.HandleFunc("POST /generate/review", s.handleReview)
	mux.HandleFunc("POST /generate/summarize", s.handleSummarize)
	mux.HandleFunc("POST /generate/walkthru", s.handleWalkthru)

	mux.HandleFunc("GET /api/costs/summary", s.handleCostSummary)
	mux.HandleFunc("GET /api/usage", s.handleUsage)
	mux.HandleFunc("GET /api/usage/details", s.handleUsageDetails)
	mux.HandleFunc("GET /api/models", s.handleModels)

	return withCORS(s.allowedOrigins, withObservability(s.logger, mux))
}

// Run serves the API until the context is canceled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error().Err(err).Msg("api server shutdown")
		}
	}()

	s.logger.Info().Uint16("port", s.port).Msg("starting api server")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api server: %w", err)
	}

	return nil
}

// decode reads a JSON request body into dst.
func decode(r *http.Request, dst any) error {
	defer r.Body.Close()

	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestBody))

	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}

	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error().Err(err).Msg("encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.writeJSON(w, status, ErrorResponse{
		Success:   false,
		Error:     message,
		RequestID: requestIDFrom(r.Context()),
		Timestamp: time.Now().UTC(),
	})
}
