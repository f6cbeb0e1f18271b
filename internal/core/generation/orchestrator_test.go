package generation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type stubProvider struct {
	name      string
	model     string
	available bool
	response  *ProviderResponse
	err       error
	calls     int
}

func (s *stubProvider) Name() string    { return s.name }
func (s *stubProvider) Model() string   { return s.model }
func (s *stubProvider) Available() bool { return s.available }

func (s *stubProvider) Generate(_ context.Context, _ Task) (*ProviderResponse, error) {
	s.calls++

	if s.err != nil {
		return nil, s.err
	}

	return s.response, nil
}

func (s *stubProvider) Ping(_ context.Context) error {
	if !s.available {
		return ErrMissingAPIKey
	}

	return nil
}

func newTestOrchestrator(primary, fallback Provider) *Orchestrator {
	logger := zerolog.Nop()

	return NewOrchestrator(primary, fallback, NoopUsageRecorder(), &logger)
}

func TestGenerate_PrimarySucceeds(t *testing.T) {
	primary := &stubProvider{
		name: "openai", model: "gpt-5.2", available: true,
		response: &ProviderResponse{Content: "a fine description", InputTokens: 100, OutputTokens: 50},
	}
	fallback := &stubProvider{name: "gemini", model: "gemini-2.0-flash", available: true}

	result, err := newTestOrchestrator(primary, fallback).Generate(context.Background(), NewPublicRemarksTask("sys", "user", nil, 250))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if !result.Success {
		t.Error("expected success")
	}

	if result.ProviderUsed != "openai" || result.ModelUsed != "gpt-5.2" {
		t.Errorf("provider = %s, model = %s", result.ProviderUsed, result.ModelUsed)
	}

	if result.IsFallback {
		t.Error("primary success must not be marked fallback")
	}

	if result.InputTokens != 100 || result.OutputTokens != 50 {
		t.Errorf("tokens = %d/%d", result.InputTokens, result.OutputTokens)
	}

	if fallback.calls != 0 {
		t.Errorf("fallback calls = %d, want 0", fallback.calls)
	}
}

func TestGenerate_InfrastructureErrorFallsBack(t *testing.T) {
	primary := &stubProvider{
		name: "openai", model: "gpt-5.2", available: true,
		err: NewInfrastructureError("openai", errors.New("connection timed out")),
	}
	fallback := &stubProvider{
		name: "gemini", model: "gemini-2.0-flash", available: true,
		response: &ProviderResponse{Content: "fallback content", InputTokens: 90, OutputTokens: 40},
	}

	result, err := newTestOrchestrator(primary, fallback).Generate(context.Background(), NewFeaturesTask("sys", "user", nil, 20))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if !result.Success {
		t.Fatal("expected fallback success")
	}

	if !result.IsFallback {
		t.Error("fallback result must be marked")
	}

	if result.ProviderUsed != "gemini" {
		t.Errorf("provider = %s, want gemini", result.ProviderUsed)
	}

	if primary.calls != 1 || fallback.calls != 1 {
		t.Errorf("calls = %d/%d, want 1/1", primary.calls, fallback.calls)
	}
}

func TestGenerate_ContentErrorDoesNotFallBack(t *testing.T) {
	contentErr := errors.New("invalid request: unsupported parameter")
	primary := &stubProvider{name: "openai", model: "gpt-5.2", available: true, err: contentErr}
	fallback := &stubProvider{name: "gemini", model: "gemini-2.0-flash", available: true}

	_, err := newTestOrchestrator(primary, fallback).Generate(context.Background(), NewMLSDataTask("sys", "user", nil))
	if err == nil {
		t.Fatal("expected content error")
	}

	if !errors.Is(err, contentErr) {
		t.Errorf("error = %v, want wrapped %v", err, contentErr)
	}

	if fallback.calls != 0 {
		t.Errorf("fallback calls = %d, want 0", fallback.calls)
	}
}

func TestGenerate_BothProvidersFail(t *testing.T) {
	primary := &stubProvider{
		name: "openai", model: "gpt-5.2", available: true,
		err: NewInfrastructureError("openai", errors.New("status 503")),
	}
	fallback := &stubProvider{
		name: "gemini", model: "gemini-2.0-flash", available: true,
		err: NewInfrastructureError("gemini", errors.New("resource exhausted")),
	}

	result, err := newTestOrchestrator(primary, fallback).Generate(context.Background(), NewPublicRemarksTask("sys", "user", nil, 0))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if result.Success {
		t.Error("expected failure result")
	}

	if result.ProviderUsed != ProviderNone || result.ModelUsed != ProviderNone {
		t.Errorf("provider = %s, model = %s, want none", result.ProviderUsed, result.ModelUsed)
	}

	if !result.IsFallback {
		t.Error("both-fail result must be marked as fallback attempted")
	}

	if !strings.Contains(result.Error, "503") || !strings.Contains(result.Error, "resource exhausted") {
		t.Errorf("error message should carry both failures: %q", result.Error)
	}

	if primary.calls != 1 || fallback.calls != 1 {
		t.Errorf("calls = %d/%d, want 1/1", primary.calls, fallback.calls)
	}
}

func TestGenerate_MissingKeyTriggersFallback(t *testing.T) {
	primary := &stubProvider{
		name: "openai", model: "gpt-5.2", available: false,
		err: NewInfrastructureError("openai", ErrMissingAPIKey),
	}
	fallback := &stubProvider{
		name: "gemini", model: "gemini-2.0-flash", available: true,
		response: &ProviderResponse{Content: "content"},
	}

	result, err := newTestOrchestrator(primary, fallback).Generate(context.Background(), NewFeaturesTask("sys", "user", nil, 0))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if !result.Success || !result.IsFallback {
		t.Errorf("result = %+v, want fallback success", result)
	}
}

func TestGenerate_CanceledContextStopsBeforeFallback(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	primary := &stubProvider{
		name: "openai", model: "gpt-5.2", available: true,
		err: NewInfrastructureError("openai", errors.New("i/o timeout")),
	}
	fallback := &stubProvider{name: "gemini", model: "gemini-2.0-flash", available: true}

	_, err := newTestOrchestrator(primary, fallback).Generate(ctx, NewPublicRemarksTask("sys", "user", nil, 0))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}

	if fallback.calls != 0 {
		t.Errorf("fallback calls = %d, want 0", fallback.calls)
	}
}

func TestCheckHealth(t *testing.T) {
	primary := &stubProvider{name: "openai", model: "gpt-5.2", available: true}
	fallback := &stubProvider{name: "gemini", model: "gemini-2.0-flash", available: false}

	statuses := newTestOrchestrator(primary, fallback).CheckHealth(context.Background())

	if statuses["openai"].Status != HealthStatusHealthy {
		t.Errorf("openai status = %q", statuses["openai"].Status)
	}

	if statuses["gemini"].Status != HealthStatusNoAPIKey {
		t.Errorf("gemini status = %q", statuses["gemini"].Status)
	}

	if statuses["openai"].Model != "gpt-5.2" {
		t.Errorf("openai model = %q", statuses["openai"].Model)
	}
}

func TestTokenBudgets(t *testing.T) {
	if got := NewPublicRemarksTask("", "", nil, 250).MaxTokens; got != 575 {
		t.Errorf("remarks budget = %d, want 575", got)
	}

	if got := NewFeaturesTask("", "", nil, 20).MaxTokens; got != 1700 {
		t.Errorf("features budget = %d, want 1700", got)
	}

	// Budget is capped regardless of feature count.
	if got := NewFeaturesTask("", "", nil, 100).MaxTokens; got != 4000 {
		t.Errorf("features budget cap = %d, want 4000", got)
	}

	if got := NewMLSDataTask("", "", nil).MaxTokens; got != 2500 {
		t.Errorf("mls budget = %d, want 2500", got)
	}
}
