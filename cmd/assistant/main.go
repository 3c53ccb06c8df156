// Command assistant runs an interactive chat session against a remote
// OpenAI assistant configured entirely through environment variables.
//
// On first run (no ASSISTANT_ID set) the tool provisions the assistant,
// uploading any configured knowledge files, and prints the new ID so it can
// be saved for subsequent runs. With ASSISTANT_ID set it starts a terminal
// chat loop that ends when the user types "exit".
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/timler/ai-utils/internal/assistant"
	aopenai "github.com/timler/ai-utils/internal/assistant/openai"
	"github.com/timler/ai-utils/internal/config"
)

var cli struct {
	Env          string `help:"Path to the shared dotenv file" default:".env"`
	AssistantEnv string `help:"Path to the assistant-specific dotenv file" default:"assistant.env"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("assistant"),
		kong.Description("Chat with a remote OpenAI assistant from the terminal."),
	)
	os.Exit(run())
}

func run() int {
	if err := config.LoadDotenv(cli.Env, cli.AssistantEnv); err != nil {
		fmt.Fprintf(os.Stderr, "assistant: %v\n", err)
		return 1
	}

	cfg, err := config.AssistantFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "assistant: invalid configuration:\n%v\n", err)
		return 1
	}

	api, err := aopenai.New(cfg.APIKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "assistant: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("%s\n\n", cfg.Name)

	// Without a saved assistant ID this is a provisioning run: create the
	// assistant remotely, print its ID, and exit so the ID can be persisted.
	if cfg.AssistantID == "" {
		id, err := assistant.Provision(ctx, api, cfg)
		if err != nil {
			slog.Error("failed to provision assistant", "name", cfg.Name, "err", err)
			return 1
		}
		fmt.Printf("Created assistant %q with ID %s\n", cfg.Name, id)
		fmt.Printf("Save it as %s=%s in %s to start chatting.\n", config.EnvAssistantID, id, cli.AssistantEnv)
		return 0
	}

	session := assistant.NewSession(api, cfg, os.Stdin, os.Stdout)
	if err := session.Run(ctx); err != nil {
		slog.Error("session ended with error", "err", err)
		return 1
	}
	return 0
}
