// Command transcripts cleans up a raw conversation transcript with an LLM.
//
// The transcript is loaded from a local file or fetched from YouTube captions,
// split into overlapping chunks, rewritten chunk by chunk, and reassembled
// with delimiter lines between the rewritten chunks. The total API cost is
// printed at the end.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/timler/ai-utils/internal/config"
	"github.com/timler/ai-utils/internal/source"
	"github.com/timler/ai-utils/internal/source/youtube"
	"github.com/timler/ai-utils/internal/transcript"
	"github.com/timler/ai-utils/pkg/provider/llm"
	"github.com/timler/ai-utils/pkg/provider/llm/anyllm"
	"github.com/timler/ai-utils/pkg/provider/llm/openai"
)

var cli struct {
	Source   string `arg:"" help:"Path to a transcript file or a YouTube video ID"`
	Speakers string `arg:"" help:"Speaker context, e.g. \"John is the host, Amy is the guest\""`

	Config string `help:"Path to the YAML tuning file" default:"transcripts.yaml"`
	Env    string `help:"Path to a dotenv file with the API key" default:".env"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("transcripts"),
		kong.Description("Clean up a conversation transcript with an LLM."),
	)
	os.Exit(run())
}

func run() int {
	if err := config.LoadDotenv(cli.Env); err != nil {
		fmt.Fprintf(os.Stderr, "transcripts: %v\n", err)
		return 1
	}

	cfg, err := config.LoadTranscript(cli.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "transcripts: %v\n", err)
		return 1
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	slog.Info("transcripts starting",
		"source", cli.Source,
		"provider", cfg.Provider,
		"model", cfg.Model,
		"chunk_size", cfg.ChunkSize,
		"chunk_overlap", cfg.ChunkOverlap,
	)

	ctx := context.Background()

	src, err := source.Load(ctx, youtube.New(), cli.Source)
	if err != nil {
		slog.Error("failed to load transcript", "source", cli.Source, "err", err)
		return 1
	}

	provider, err := buildProvider(cfg)
	if err != nil {
		slog.Error("failed to build LLM provider", "provider", cfg.Provider, "err", err)
		return 1
	}

	chunks := transcript.Split(src.Text, cfg.ChunkSize, cfg.ChunkOverlap)
	slog.Info("transcript loaded", "chars", len(src.Text), "chunks", len(chunks))

	cleaner := transcript.New(provider, llm.PricingFor(cfg.Model), cli.Speakers,
		transcript.WithTemperature(cfg.Temperature),
		transcript.WithRequestTimeout(cfg.RequestTimeout.Std()),
	)
	results, err := cleaner.Clean(ctx, chunks)
	if err != nil {
		slog.Error("failed to clean transcript", "err", err)
		return 1
	}

	cleaned, cost := transcript.Assemble(results)

	fmt.Println(cleaned)
	fmt.Println("Cost=$" + strconv.FormatFloat(cost, 'f', -1, 64))

	outPath := src.Prefix + "_cleaned_transcript.txt"
	if err := os.WriteFile(outPath, []byte(cleaned), 0o644); err != nil {
		slog.Error("failed to write cleaned transcript", "path", outPath, "err", err)
		return 1
	}
	slog.Info("cleaned transcript written", "path", outPath, "cost_usd", cost)
	return 0
}

// buildProvider resolves the configured provider name to an LLM backend.
// "openai" talks to the OpenAI API directly; every other name goes through
// any-llm-go, which reads the backend's conventional API key variable itself.
func buildProvider(cfg *config.TranscriptConfig) (llm.Provider, error) {
	if cfg.Provider == "" || cfg.Provider == "openai" {
		return openai.New(os.Getenv(config.EnvAPIKey), cfg.Model,
			openai.WithTimeout(cfg.RequestTimeout.Std()),
		)
	}
	return anyllm.New(cfg.Provider, cfg.Model)
}

func newLogger(level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
