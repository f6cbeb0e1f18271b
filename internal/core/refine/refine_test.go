package refine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type stubCompleter struct {
	response  string
	err       error
	calls     int
	available bool
	gotSystem string
	gotMsgs   []Message
}

func (s *stubCompleter) Complete(_ context.Context, systemPrompt string, messages []Message) (Completion, error) {
	s.calls++
	s.gotSystem = systemPrompt
	s.gotMsgs = messages

	if s.err != nil {
		return Completion{}, s.err
	}

	return Completion{Text: s.response, InputTokens: 200, OutputTokens: 120}, nil
}

func (s *stubCompleter) Available() bool { return s.available }

func newTestRefiner(completer Completer) *Refiner {
	logger := zerolog.Nop()

	return New(completer, &logger)
}

func TestRefine_InvalidContentType(t *testing.T) {
	stub := &stubCompleter{available: true}

	_, err := newTestRefiner(stub).Refine(context.Background(), Request{
		ContentType:     "poem",
		CurrentContent:  "This residence features hardwood floors.",
		UserInstruction: "make it shorter",
	})
	if !errors.Is(err, ErrInvalidContentType) {
		t.Fatalf("error = %v, want ErrInvalidContentType", err)
	}

	if stub.calls != 0 {
		t.Errorf("completer calls = %d, want 0", stub.calls)
	}
}

func TestRefine_InstructionViolationSkipsProvider(t *testing.T) {
	stub := &stubCompleter{available: true, response: "anything"}

	resp, err := newTestRefiner(stub).Refine(context.Background(), Request{
		ContentType:     "remarks",
		CurrentContent:  "This residence features hardwood floors.",
		UserInstruction: "mention it is perfect for families",
	})
	if err != nil {
		t.Fatalf("Refine() error = %v", err)
	}

	if resp.Success {
		t.Error("expected failure")
	}

	if resp.ErrorType != ErrorTypeInstructionViolation {
		t.Errorf("error_type = %q", resp.ErrorType)
	}

	if len(resp.Violations) == 0 {
		t.Error("expected violations in response")
	}

	if stub.calls != 0 {
		t.Errorf("completer calls = %d, want 0 (no provider call before the gate)", stub.calls)
	}
}

func TestRefine_AIRefusal(t *testing.T) {
	stub := &stubCompleter{
		available: true,
		response:  "I can't make that change because it would target a protected class.",
	}

	resp, err := newTestRefiner(stub).Refine(context.Background(), Request{
		ContentType:     "remarks",
		CurrentContent:  "This residence features hardwood floors.",
		UserInstruction: "emphasize the quiet street",
	})
	if err != nil {
		t.Fatalf("Refine() error = %v", err)
	}

	if resp.Success || resp.ErrorType != ErrorTypeAIRefusal {
		t.Errorf("error_type = %q, want ai_refusal", resp.ErrorType)
	}

	if !strings.Contains(resp.Message, "can't make that change") {
		t.Errorf("refusal message should carry the model text: %q", resp.Message)
	}
}

func TestRefine_OutputViolation(t *testing.T) {
	stub := &stubCompleter{
		available: true,
		response:  "This home on a quiet street is perfect for families.",
	}

	resp, err := newTestRefiner(stub).Refine(context.Background(), Request{
		ContentType:     "remarks",
		CurrentContent:  "This residence features hardwood floors.",
		UserInstruction: "mention the quiet street",
	})
	if err != nil {
		t.Fatalf("Refine() error = %v", err)
	}

	if resp.Success || resp.ErrorType != ErrorTypeOutputViolation {
		t.Errorf("error_type = %q, want output_violation", resp.ErrorType)
	}

	if len(resp.Violations) == 0 {
		t.Error("expected violations describing the output problem")
	}
}

func TestRefine_Success(t *testing.T) {
	stub := &stubCompleter{
		available: true,
		response:  "  This residence features hardwood floors and sits on a quiet street.  ",
	}

	resp, err := newTestRefiner(stub).Refine(context.Background(), Request{
		ContentType:     "remarks",
		CurrentContent:  "This residence features hardwood floors.",
		UserInstruction: "mention the quiet street",
		History: []Message{
			{Role: "user", Content: "earlier request"},
			{Role: "assistant", Content: "earlier response"},
		},
	})
	if err != nil {
		t.Fatalf("Refine() error = %v", err)
	}

	if !resp.Success {
		t.Fatalf("expected success, got %+v", resp)
	}

	if resp.RefinedContent != "This residence features hardwood floors and sits on a quiet street." {
		t.Errorf("refined content not trimmed: %q", resp.RefinedContent)
	}

	if resp.Message != "Content refined successfully" {
		t.Errorf("message = %q", resp.Message)
	}

	// History plus the new refinement prompt.
	if len(stub.gotMsgs) != 3 {
		t.Fatalf("messages sent = %d, want 3", len(stub.gotMsgs))
	}

	if !strings.Contains(stub.gotMsgs[2].Content, "Make ONLY the changes requested") {
		t.Errorf("final message should be the refinement prompt: %q", stub.gotMsgs[2].Content)
	}

	if !strings.Contains(stub.gotSystem, "CRITICAL FAIR HOUSING COMPLIANCE RULES") {
		t.Error("system prompt should be the compliance prompt")
	}
}

func TestRefine_ProviderError(t *testing.T) {
	providerErr := errors.New("anthropic message: 503")
	stub := &stubCompleter{available: true, err: providerErr}

	_, err := newTestRefiner(stub).Refine(context.Background(), Request{
		ContentType:     "script",
		CurrentContent:  "[EXTERIOR] The facade features brick.",
		UserInstruction: "shorten the exterior section",
	})
	if !errors.Is(err, providerErr) {
		t.Fatalf("error = %v, want wrapped provider error", err)
	}
}

func TestBuildRefinementPrompt_PropertyContext(t *testing.T) {
	prompt := buildRefinementPrompt("content", "instruction", &PropertyContext{
		FullAddress: "12 Oak Lane",
		Bedrooms:    "4",
	})

	if !strings.Contains(prompt, "- Address: 12 Oak Lane") {
		t.Error("missing address line")
	}

	if !strings.Contains(prompt, "- Bathrooms: N/A") {
		t.Error("missing fields should render as N/A")
	}

	withoutContext := buildRefinementPrompt("content", "instruction", nil)
	if strings.Contains(withoutContext, "Property context") {
		t.Error("nil property must not render a context block")
	}
}
