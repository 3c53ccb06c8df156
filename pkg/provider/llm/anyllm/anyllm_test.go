package anyllm

import (
	"testing"

	"github.com/timler/ai-utils/pkg/provider/llm"
)

// ── convertMessage ────────────────────────────────────────────────────────────

// TestConvertMessage_System checks that system-role messages are converted correctly.
func TestConvertMessage_System(t *testing.T) {
	m := llm.Message{Role: "system", Content: "You are helpful."}
	got := convertMessage(m)
	if got.Role != "system" {
		t.Errorf("expected role system, got %q", got.Role)
	}
	if got.ContentString() != "You are helpful." {
		t.Errorf("expected content %q, got %q", "You are helpful.", got.ContentString())
	}
}

// TestConvertMessage_User checks that user-role messages are converted correctly.
func TestConvertMessage_User(t *testing.T) {
	m := llm.Message{Role: "user", Content: "Hello!"}
	got := convertMessage(m)
	if got.Role != "user" {
		t.Errorf("expected role user, got %q", got.Role)
	}
	if got.ContentString() != "Hello!" {
		t.Errorf("expected content %q, got %q", "Hello!", got.ContentString())
	}
}

// ── New ───────────────────────────────────────────────────────────────────────

// TestNew_RequiresProviderAndModel checks constructor validation.
func TestNew_RequiresProviderAndModel(t *testing.T) {
	if _, err := New("", "gpt-4o"); err == nil {
		t.Error("expected error for empty providerName, got nil")
	}
	if _, err := New("openai", ""); err == nil {
		t.Error("expected error for empty model, got nil")
	}
}

// TestNew_UnsupportedProvider checks that unknown backends are rejected.
func TestNew_UnsupportedProvider(t *testing.T) {
	if _, err := New("skynet", "t-800"); err == nil {
		t.Error("expected error for unsupported provider, got nil")
	}
}

// ── buildParams ───────────────────────────────────────────────────────────────

// TestBuildParams_SystemPromptIsFirst checks system prompt placement and model wiring.
func TestBuildParams_SystemPromptIsFirst(t *testing.T) {
	p := &Provider{model: "claude-3-5-sonnet-latest"}
	params := p.buildParams(llm.CompletionRequest{
		SystemPrompt: "Clean the transcript.",
		Messages:     []llm.Message{{Role: "user", Content: "raw text"}},
		Temperature:  0.2,
	})

	if params.Model != "claude-3-5-sonnet-latest" {
		t.Errorf("model = %q, want claude-3-5-sonnet-latest", params.Model)
	}
	if len(params.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(params.Messages))
	}
	if params.Messages[0].Role != "system" {
		t.Errorf("first message role = %q, want system", params.Messages[0].Role)
	}
	if params.Temperature == nil || *params.Temperature != 0.2 {
		t.Errorf("temperature not propagated, got %v", params.Temperature)
	}
}

// TestBuildParams_ZeroTemperatureOmitted checks that 0.0 uses the provider default.
func TestBuildParams_ZeroTemperatureOmitted(t *testing.T) {
	p := &Provider{model: "gpt-4o"}
	params := p.buildParams(llm.CompletionRequest{
		Messages: []llm.Message{{Role: "user", Content: "hi"}},
	})
	if params.Temperature != nil {
		t.Errorf("expected nil temperature, got %v", *params.Temperature)
	}
}
