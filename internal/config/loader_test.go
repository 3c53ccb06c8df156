package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/timler/ai-utils/internal/config"
)

// setRequiredEnv populates every required assistant variable.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvAPIKey, "sk-test")
	t.Setenv(config.EnvName, "Bookworm")
	t.Setenv(config.EnvInstructions, "Discuss the uploaded books.")
	t.Setenv(config.EnvOpeningQuestion, "Which book shall we discuss?")
	t.Setenv(config.EnvModel, "gpt-4o")
}

func TestAssistantFromEnv_AllFields(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(config.EnvTools, "file_search, code_interpreter")
	t.Setenv(config.EnvFileIDs, "file_1,file_2, file_3")
	t.Setenv(config.EnvAssistantID, "asst_123")

	cfg, err := config.AssistantFromEnv()
	if err != nil {
		t.Fatalf("AssistantFromEnv returned error: %v", err)
	}
	if cfg.Name != "Bookworm" || cfg.Model != "gpt-4o" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if len(cfg.Tools) != 2 || cfg.Tools[0] != "file_search" || cfg.Tools[1] != "code_interpreter" {
		t.Errorf("tools = %v, want trimmed two-element list", cfg.Tools)
	}
	if len(cfg.FileIDs) != 3 || cfg.FileIDs[2] != "file_3" {
		t.Errorf("file IDs = %v", cfg.FileIDs)
	}
	if cfg.AssistantID != "asst_123" {
		t.Errorf("assistant ID = %q", cfg.AssistantID)
	}
}

// TestAssistantFromEnv_MissingRequiredListsAll verifies all failures are
// reported at once so the environment can be fixed in one pass.
func TestAssistantFromEnv_MissingRequiredListsAll(t *testing.T) {
	for _, v := range []string{
		config.EnvAPIKey, config.EnvName, config.EnvInstructions,
		config.EnvOpeningQuestion, config.EnvModel,
	} {
		t.Setenv(v, "")
		os.Unsetenv(v)
	}

	_, err := config.AssistantFromEnv()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	for _, v := range []string{config.EnvAPIKey, config.EnvName, config.EnvInstructions, config.EnvModel} {
		if !strings.Contains(err.Error(), v) {
			t.Errorf("error should name %s, got: %v", v, err)
		}
	}
}

// TestAssistantFromEnv_EmptyOpeningQuestionAllowed verifies an explicitly
// empty greeting passes validation.
func TestAssistantFromEnv_EmptyOpeningQuestionAllowed(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(config.EnvOpeningQuestion, "")

	cfg, err := config.AssistantFromEnv()
	if err != nil {
		t.Fatalf("AssistantFromEnv returned error: %v", err)
	}
	if cfg.OpeningQuestion != "" {
		t.Errorf("opening question = %q, want empty", cfg.OpeningQuestion)
	}
}

// TestValidateAssistant_IgnoresEnvironment verifies validation of a
// hand-built config never consults the process environment: an empty opening
// question is valid on its own, and missing required fields are reported
// regardless of what the environment holds.
func TestValidateAssistant_IgnoresEnvironment(t *testing.T) {
	t.Parallel()

	cfg := &config.AssistantConfig{
		APIKey:       "sk-test",
		Name:         "Bookworm",
		Instructions: "Discuss the uploaded books.",
		Model:        "gpt-4o",
	}
	if err := config.ValidateAssistant(cfg); err != nil {
		t.Errorf("complete config should validate, got: %v", err)
	}

	if err := config.ValidateAssistant(&config.AssistantConfig{}); err == nil {
		t.Error("empty config should fail validation")
	}
}

func TestLoadDotenv_LayersFilesWithoutOverriding(t *testing.T) {
	dir := t.TempDir()
	global := filepath.Join(dir, ".env")
	local := filepath.Join(dir, "assistant.env")

	if err := os.WriteFile(global, []byte("AI_UTILS_TEST_SHARED=from-global\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(local, []byte("AI_UTILS_TEST_SHARED=from-local\nAI_UTILS_TEST_LOCAL=yes\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AI_UTILS_TEST_SHARED", "")
	os.Unsetenv("AI_UTILS_TEST_SHARED")
	t.Setenv("AI_UTILS_TEST_LOCAL", "")
	os.Unsetenv("AI_UTILS_TEST_LOCAL")

	if err := config.LoadDotenv(global, local); err != nil {
		t.Fatalf("LoadDotenv returned error: %v", err)
	}
	// First file wins; godotenv never overrides existing values.
	if got := os.Getenv("AI_UTILS_TEST_SHARED"); got != "from-global" {
		t.Errorf("shared = %q, want from-global", got)
	}
	if got := os.Getenv("AI_UTILS_TEST_LOCAL"); got != "yes" {
		t.Errorf("local = %q, want yes", got)
	}
}

func TestLoadDotenv_MissingFileIsSkipped(t *testing.T) {
	if err := config.LoadDotenv(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Fatalf("missing dotenv file should be skipped, got: %v", err)
	}
}

func TestLoadTranscript_MissingFileYieldsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadTranscript(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadTranscript returned error: %v", err)
	}
	if cfg.Provider != "openai" || cfg.Model != "gpt-4" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.ChunkSize != 3950 || cfg.ChunkOverlap != 100 {
		t.Errorf("chunk defaults = %d/%d, want 3950/100", cfg.ChunkSize, cfg.ChunkOverlap)
	}
}

func TestLoadTranscriptFromReader_OverridesAndDefaults(t *testing.T) {
	t.Parallel()

	yaml := `
provider: anthropic
model: claude-3-5-sonnet-latest
chunk_size: 2000
temperature: 0.3
request_timeout: 30s
`
	cfg, err := config.LoadTranscriptFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadTranscriptFromReader returned error: %v", err)
	}
	if cfg.Provider != "anthropic" || cfg.ChunkSize != 2000 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	// Unset keys keep their defaults.
	if cfg.ChunkOverlap != 100 {
		t.Errorf("chunk_overlap = %d, want default 100", cfg.ChunkOverlap)
	}
	if cfg.RequestTimeout.Std() != 30*time.Second {
		t.Errorf("request_timeout = %s, want 30s", cfg.RequestTimeout)
	}
}

func TestLoadTranscriptFromReader_UnknownKeyRejected(t *testing.T) {
	t.Parallel()

	_, err := config.LoadTranscriptFromReader(strings.NewReader("chunck_size: 2000\n"))
	if err == nil {
		t.Fatal("expected error for unknown key, got nil")
	}
}

func TestValidateTranscript_OverlapMustBeSmallerThanSize(t *testing.T) {
	t.Parallel()

	yaml := `
chunk_size: 100
chunk_overlap: 100
`
	_, err := config.LoadTranscriptFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "chunk_overlap") {
		t.Errorf("error should mention chunk_overlap, got: %v", err)
	}
}

func TestValidateTranscript_InvalidLogLevel(t *testing.T) {
	t.Parallel()

	_, err := config.LoadTranscriptFromReader(strings.NewReader("log_level: verbose\n"))
	if err == nil {
		t.Fatal("expected error for invalid log level, got nil")
	}
}
