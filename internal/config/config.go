// Package config provides the configuration schema and loaders for the
// ai-utils command-line tools.
//
// The assistant tool is configured entirely through environment variables
// (optionally layered from .env and assistant.env dotenv files, matching the
// original two-file convention). The transcript tool reads an optional YAML
// tuning file; every value has a sensible default so the file may be absent.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/timler/ai-utils/internal/transcript"
)

// LogLevel controls log verbosity for the ai-utils tools.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Duration is a [time.Duration] that decodes from YAML duration strings such
// as "30s" or "2m".
type Duration time.Duration

// UnmarshalYAML implements [yaml.Unmarshaler].
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string like \"30s\": %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns d as a standard [time.Duration].
func (d Duration) Std() time.Duration { return time.Duration(d) }

// String implements [fmt.Stringer].
func (d Duration) String() string { return time.Duration(d).String() }

// Environment variable names consumed by [AssistantFromEnv].
const (
	EnvAPIKey          = "OPENAI_API_KEY"
	EnvName            = "ASSISTANT_NAME"
	EnvInstructions    = "ASSISTANT_INSTRUCTIONS"
	EnvOpeningQuestion = "ASSISTANT_OPENING_QUESTION"
	EnvModel           = "ASSISTANT_MODEL"
	EnvTools           = "ASSISTANT_TOOLS"
	EnvFileFolder      = "ASSISTANT_FILE_FOLDER"
	EnvFileIDs         = "ASSISTANT_FILE_IDS"
	EnvAssistantID     = "ASSISTANT_ID"
)

// AssistantConfig holds the full configuration of the assistant session tool.
// Construct it with [AssistantFromEnv]; a value that passed validation has all
// required fields populated.
type AssistantConfig struct {
	// APIKey is the OpenAI API credential (OPENAI_API_KEY). Required.
	APIKey string

	// Name is the display name of the assistant (ASSISTANT_NAME). Required.
	Name string

	// Instructions are the standing instructions given to the assistant at
	// creation time (ASSISTANT_INSTRUCTIONS). Required.
	Instructions string

	// OpeningQuestion is printed as the assistant's greeting when the session
	// starts (ASSISTANT_OPENING_QUESTION). Required to be present; an empty
	// value skips the greeting.
	OpeningQuestion string

	// Model is the model identifier backing the assistant (ASSISTANT_MODEL).
	// Required.
	Model string

	// Tools lists tool type names offered to the assistant, parsed from the
	// comma-separated ASSISTANT_TOOLS value (e.g. "file_search, code_interpreter").
	Tools []string

	// FileFolder is a local directory whose regular files are uploaded and
	// attached to the assistant at creation time (ASSISTANT_FILE_FOLDER).
	FileFolder string

	// FileIDs lists already-uploaded file IDs to attach, parsed from the
	// comma-separated ASSISTANT_FILE_IDS value. Takes precedence over FileFolder.
	FileIDs []string

	// AssistantID identifies an existing assistant to chat with (ASSISTANT_ID).
	// When empty the tool provisions a new assistant and exits so the ID can be
	// saved for the next run.
	AssistantID string
}

// TranscriptConfig tunes the transcript cleaner. Loaded from an optional YAML
// file by [LoadTranscript]; zero values are replaced with defaults during
// validation.
type TranscriptConfig struct {
	// Provider selects the LLM backend: "openai" uses the OpenAI SDK directly,
	// anything else is resolved through any-llm-go ("anthropic", "gemini",
	// "ollama", ...). Default: openai.
	Provider string `yaml:"provider"`

	// Model is the model identifier used for rewriting. Default: gpt-4.
	Model string `yaml:"model"`

	// ChunkSize is the target chunk length in characters. Default: 3950.
	ChunkSize int `yaml:"chunk_size"`

	// ChunkOverlap is the character overlap between adjacent chunks.
	// Default: 100. Must be smaller than ChunkSize.
	ChunkOverlap int `yaml:"chunk_overlap"`

	// Temperature is the sampling temperature for the rewrite calls.
	// Default: 0 (deterministic).
	Temperature float64 `yaml:"temperature"`

	// RequestTimeout bounds each rewrite call. Default: 120s.
	RequestTimeout Duration `yaml:"request_timeout"`

	// LogLevel controls verbosity. Default: info.
	LogLevel LogLevel `yaml:"log_level"`
}

// DefaultTranscript returns a TranscriptConfig with every field at its default.
func DefaultTranscript() *TranscriptConfig {
	return &TranscriptConfig{
		Provider:       "openai",
		Model:          "gpt-4",
		ChunkSize:      transcript.DefaultChunkSize,
		ChunkOverlap:   transcript.DefaultChunkOverlap,
		Temperature:    0,
		RequestTimeout: Duration(120 * time.Second),
		LogLevel:       LogInfo,
	}
}
