package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ValidProviderNames lists the LLM backend names the transcript cleaner can
// resolve. Used by [ValidateTranscript] to warn about unrecognised names.
var ValidProviderNames = []string{
	"openai", "anthropic", "gemini", "ollama", "deepseek", "mistral", "groq", "llamacpp", "llamafile",
}

// LoadDotenv loads the given dotenv files into the process environment, in
// order, without overriding variables that are already set. Missing files are
// skipped silently; the environment itself is an equally valid source.
func LoadDotenv(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("config: stat %q: %w", path, err)
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("config: load %q: %w", path, err)
		}
	}
	return nil
}

// AssistantFromEnv builds an [AssistantConfig] from the process environment
// and validates it. Call [LoadDotenv] first if dotenv layering is wanted.
func AssistantFromEnv() (*AssistantConfig, error) {
	cfg := &AssistantConfig{
		APIKey:          os.Getenv(EnvAPIKey),
		Name:            os.Getenv(EnvName),
		Instructions:    os.Getenv(EnvInstructions),
		OpeningQuestion: os.Getenv(EnvOpeningQuestion),
		Model:           os.Getenv(EnvModel),
		Tools:           splitList(os.Getenv(EnvTools)),
		FileFolder:      os.Getenv(EnvFileFolder),
		FileIDs:         splitList(os.Getenv(EnvFileIDs)),
		AssistantID:     os.Getenv(EnvAssistantID),
	}
	var errs []error
	if err := ValidateAssistant(cfg); err != nil {
		errs = append(errs, err)
	}

	// The opening question must be declared even if empty; an unset variable
	// usually means the assistant.env file was not found at all.
	if _, ok := os.LookupEnv(EnvOpeningQuestion); !ok {
		errs = append(errs, fmt.Errorf("%s is required (set it to an empty value to skip the greeting)", EnvOpeningQuestion))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidateAssistant checks that cfg contains every required field.
// It returns a joined error listing all validation failures found, so a user
// can fix their environment in one pass. Validation never consults the
// process environment; [AssistantFromEnv] layers its own presence check for
// the opening question on top.
func ValidateAssistant(cfg *AssistantConfig) error {
	var errs []error

	required := []struct {
		name  string
		value string
	}{
		{EnvAPIKey, cfg.APIKey},
		{EnvName, cfg.Name},
		{EnvInstructions, cfg.Instructions},
		{EnvModel, cfg.Model},
	}
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, fmt.Errorf("%s is required", r.name))
		}
	}

	if len(cfg.FileIDs) > 0 && cfg.FileFolder != "" {
		slog.Warn("both file IDs and a file folder are configured; the folder will be ignored",
			"file_ids", len(cfg.FileIDs),
			"file_folder", cfg.FileFolder,
		)
	}

	return errors.Join(errs...)
}

// LoadTranscript reads the YAML tuning file at path and returns a validated
// [TranscriptConfig]. A missing file is not an error: defaults are returned.
func LoadTranscript(path string) (*TranscriptConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultTranscript()
			return cfg, ValidateTranscript(cfg)
		}
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadTranscriptFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadTranscriptFromReader decodes a YAML transcript config from r, applies
// defaults for absent fields, and validates the result. Useful in tests where
// configs are constructed from string literals.
func LoadTranscriptFromReader(r io.Reader) (*TranscriptConfig, error) {
	cfg := DefaultTranscript()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := ValidateTranscript(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidateTranscript checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func ValidateTranscript(cfg *TranscriptConfig) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}
	if cfg.Model == "" {
		errs = append(errs, errors.New("model must not be empty"))
	}
	if cfg.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("chunk_size %d must be positive", cfg.ChunkSize))
	}
	if cfg.ChunkOverlap < 0 {
		errs = append(errs, fmt.Errorf("chunk_overlap %d must not be negative", cfg.ChunkOverlap))
	}
	if cfg.ChunkSize > 0 && cfg.ChunkOverlap >= cfg.ChunkSize {
		errs = append(errs, fmt.Errorf("chunk_overlap %d must be smaller than chunk_size %d", cfg.ChunkOverlap, cfg.ChunkSize))
	}
	if cfg.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("request_timeout %s must not be negative", cfg.RequestTimeout))
	}

	if cfg.Provider != "" && !slices.Contains(ValidProviderNames, cfg.Provider) {
		slog.Warn("unknown provider name, may be a typo or third-party provider",
			"name", cfg.Provider,
			"known", ValidProviderNames,
		)
	}

	return errors.Join(errs...)
}

// splitList parses a comma-separated value into trimmed non-empty entries.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
