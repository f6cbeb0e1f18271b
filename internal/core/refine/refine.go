// Package refine applies targeted edits to previously generated listing
// content. Unlike generation, refinement runs on a single provider with no
// fallback: an edit is a judgment call on existing text, and silently
// switching models mid-conversation would change the editing voice.
package refine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/listing-magic/content-backend/internal/core/compliance"
	"github.com/listing-magic/content-backend/internal/platform/observability"
)

// Refinement failure categories.
const (
	ErrorTypeInstructionViolation = "instruction_violation"
	ErrorTypeAIRefusal            = "ai_refusal"
	ErrorTypeOutputViolation      = "output_violation"
)

const errCompliance = "compliance_violation"

const (
	messageInstructionViolation = "Your refinement request contains language that may violate Fair Housing laws. Please rephrase without references to protected classes."
	messageOutputViolation      = "The refined content contains Fair Housing violations. Please try a different refinement approach."
	messageSuccess              = "Content refined successfully"
)

// ErrInvalidContentType is returned for content types outside
// remarks/features/script.
var ErrInvalidContentType = errors.New("invalid content type")

// Phrases that indicate the model declined the edit on compliance grounds.
var refusalPhrases = []string{
	"i can't",
	"i cannot",
	"i'm not able to",
	"i am not able to",
	"violates fair housing",
	"fair housing violation",
	"discriminatory",
	"protected class",
}

var validContentTypes = map[string]struct{}{
	compliance.ContentTypeRemarks:  {},
	compliance.ContentTypeFeatures: {},
	compliance.ContentTypeScript:   {},
}

// Message is one turn of the refinement conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// PropertyContext carries optional listing facts for the model to reference.
type PropertyContext struct {
	FullAddress string `json:"full_address,omitempty"`
	Bedrooms    string `json:"bedrooms,omitempty"`
	Bathrooms   string `json:"bathrooms,omitempty"`
	Sqft        string `json:"sqft,omitempty"`
	Price       string `json:"price,omitempty"`
}

// Request describes a refinement.
type Request struct {
	ContentType     string
	CurrentContent  string
	UserInstruction string
	History         []Message
	Property        *PropertyContext
}

// Response is the outcome of a refinement. Success=false with an ErrorType
// means the gate stopped the edit; transport failures come back as Go errors
// from Refine instead.
type Response struct {
	Success          bool                   `json:"success"`
	RefinedContent   string                 `json:"refined_content,omitempty"`
	Error            string                 `json:"error,omitempty"`
	ErrorType        string                 `json:"error_type,omitempty"`
	Violations       []compliance.Violation `json:"violations,omitempty"`
	Message          string                 `json:"message,omitempty"`
	ProcessingTimeMS float64                `json:"processing_time_ms"`
}

// Completion is one provider turn with its token accounting.
type Completion struct {
	Text         string
	InputTokens  int
	OutputTokens int
}

// Completer executes one provider conversation turn.
type Completer interface {
	Complete(ctx context.Context, systemPrompt string, messages []Message) (Completion, error)
	Available() bool
}

// Refiner is the compliance-gated refinement pipeline.
type Refiner struct {
	completer Completer
	logger    *zerolog.Logger
}

func New(completer Completer, logger *zerolog.Logger) *Refiner {
	return &Refiner{completer: completer, logger: logger}
}

// Available reports whether the underlying provider is configured.
func (r *Refiner) Available() bool {
	return r.completer.Available()
}

// Refine runs the three-stage gate: instruction pre-check, provider edit with
// refusal detection, output post-check. The instruction pre-check happens
// before any provider call so non-compliant requests cost nothing.
func (r *Refiner) Refine(ctx context.Context, req Request) (Response, error) {
	start := time.Now()

	if _, ok := validContentTypes[req.ContentType]; !ok {
		return Response{}, fmt.Errorf("%w: %q", ErrInvalidContentType, req.ContentType)
	}

	if check := compliance.Check(req.UserInstruction); !check.IsCompliant {
		observability.RefinementRequests.WithLabelValues(req.ContentType, ErrorTypeInstructionViolation).Inc()

		return Response{
			Success:          false,
			Error:            errCompliance,
			ErrorType:        ErrorTypeInstructionViolation,
			Violations:       check.Violations,
			Message:          messageInstructionViolation,
			ProcessingTimeMS: msSince(start),
		}, nil
	}

	messages := make([]Message, 0, len(req.History)+1)
	messages = append(messages, req.History...)
	messages = append(messages, Message{
		Role:    "user",
		Content: buildRefinementPrompt(req.CurrentContent, req.UserInstruction, req.Property),
	})

	r.logger.Info().Str("content_type", req.ContentType).Msg("refining content")

	completion, err := r.completer.Complete(ctx, compliance.SystemPrompt(req.ContentType), messages)
	if err != nil {
		observability.RefinementRequests.WithLabelValues(req.ContentType, "error").Inc()

		return Response{}, fmt.Errorf("refinement completion: %w", err)
	}

	refined := strings.TrimSpace(completion.Text)

	if isRefusal(refined) {
		observability.RefinementRequests.WithLabelValues(req.ContentType, ErrorTypeAIRefusal).Inc()

		return Response{
			Success:          false,
			Error:            errCompliance,
			ErrorType:        ErrorTypeAIRefusal,
			Message:          refined,
			ProcessingTimeMS: msSince(start),
		}, nil
	}

	if check := compliance.Check(refined); !check.IsCompliant {
		r.logger.Warn().Interface("violations", check.Violations).Msg("refined content failed compliance")

		observability.RefinementRequests.WithLabelValues(req.ContentType, ErrorTypeOutputViolation).Inc()

		return Response{
			Success:          false,
			Error:            errCompliance,
			ErrorType:        ErrorTypeOutputViolation,
			Violations:       check.Violations,
			Message:          messageOutputViolation,
			ProcessingTimeMS: msSince(start),
		}, nil
	}

	observability.RefinementRequests.WithLabelValues(req.ContentType, "success").Inc()

	return Response{
		Success:          true,
		RefinedContent:   refined,
		Message:          messageSuccess,
		ProcessingTimeMS: msSince(start),
	}, nil
}

func isRefusal(content string) bool {
	lower := strings.ToLower(content)
	for _, phrase := range refusalPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}

	return false
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
