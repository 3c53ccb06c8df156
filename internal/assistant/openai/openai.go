// Package openai implements the assistant.API interface on the OpenAI
// Assistants API (beta surface of the official SDK).
package openai

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/timler/ai-utils/internal/assistant"
)

const (
	defaultPollInterval = time.Second
	defaultRunTimeout   = 5 * time.Minute
)

// config holds optional configuration for the client.
type config struct {
	baseURL      string
	pollInterval time.Duration
	runTimeout   time.Duration
}

// Option is a functional option for Client.
type Option func(*config)

// WithBaseURL overrides the default OpenAI API base URL.
func WithBaseURL(url string) Option {
	return func(c *config) {
		c.baseURL = url
	}
}

// WithPollInterval sets the delay between run status checks.
func WithPollInterval(d time.Duration) Option {
	return func(c *config) {
		c.pollInterval = d
	}
}

// WithRunTimeout bounds how long Ask waits for a run to complete.
func WithRunTimeout(d time.Duration) Option {
	return func(c *config) {
		c.runTimeout = d
	}
}

// Client implements assistant.API using the OpenAI Assistants API.
type Client struct {
	client       oai.Client
	pollInterval time.Duration
	runTimeout   time.Duration
}

// New constructs a new OpenAI assistants Client.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: apiKey must not be empty")
	}

	cfg := &config{
		pollInterval: defaultPollInterval,
		runTimeout:   defaultRunTimeout,
	}
	for _, o := range opts {
		o(cfg)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if cfg.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.baseURL))
	}

	return &Client{
		client:       oai.NewClient(reqOpts...),
		pollInterval: cfg.pollInterval,
		runTimeout:   cfg.runTimeout,
	}, nil
}

// UploadFile implements assistant.API.
func (c *Client) UploadFile(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("openai: open %q: %w", path, err)
	}
	defer f.Close()

	file, err := c.client.Files.New(ctx, oai.FileNewParams{
		File:    f,
		Purpose: oai.FilePurposeAssistants,
	})
	if err != nil {
		return "", fmt.Errorf("openai: upload %q: %w", path, err)
	}
	return file.ID, nil
}

// CreateAssistant implements assistant.API.
func (c *Client) CreateAssistant(ctx context.Context, def assistant.Definition) (string, error) {
	params := oai.BetaAssistantNewParams{
		Model:        shared.ChatModel(def.Model),
		Name:         oai.String(def.Name),
		Instructions: oai.String(def.Instructions),
	}

	for _, tool := range def.Tools {
		switch tool {
		case "code_interpreter":
			params.Tools = append(params.Tools, oai.AssistantToolUnionParam{
				OfCodeInterpreter: &oai.CodeInterpreterToolParam{},
			})
		case "file_search", "retrieval":
			// "retrieval" is the legacy name for file_search.
			params.Tools = append(params.Tools, oai.AssistantToolUnionParam{
				OfFileSearch: &oai.FileSearchToolParam{},
			})
		default:
			return "", fmt.Errorf("openai: unsupported tool type %q", tool)
		}
	}

	if len(def.FileIDs) > 0 {
		params.ToolResources = oai.BetaAssistantNewParamsToolResources{
			CodeInterpreter: oai.BetaAssistantNewParamsToolResourcesCodeInterpreter{
				FileIDs: def.FileIDs,
			},
		}
	}

	a, err := c.client.Beta.Assistants.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai: create assistant: %w", err)
	}
	return a.ID, nil
}

// CreateThread implements assistant.API.
func (c *Client) CreateThread(ctx context.Context) (string, error) {
	th, err := c.client.Beta.Threads.New(ctx, oai.BetaThreadNewParams{})
	if err != nil {
		return "", fmt.Errorf("openai: create thread: %w", err)
	}
	return th.ID, nil
}

// Ask implements assistant.API. It appends the question to the thread, starts
// a run, polls until the run completes, and returns the newest assistant
// message.
func (c *Client) Ask(ctx context.Context, threadID, assistantID, question, userInfo string) (string, error) {
	_, err := c.client.Beta.Threads.Messages.New(ctx, threadID, oai.BetaThreadMessageNewParams{
		Role: "user",
		Content: oai.BetaThreadMessageNewParamsContentUnion{
			OfString: oai.String(question),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai: append message: %w", err)
	}

	runParams := oai.BetaThreadRunNewParams{
		AssistantID: assistantID,
	}
	if userInfo != "" {
		runParams.Instructions = oai.String(userInfo)
	}
	run, err := c.client.Beta.Threads.Runs.New(ctx, threadID, runParams)
	if err != nil {
		return "", fmt.Errorf("openai: start run: %w", err)
	}

	if err := c.waitForRun(ctx, threadID, run.ID); err != nil {
		return "", err
	}

	return c.latestReply(ctx, threadID)
}

// waitForRun polls the run until it reaches a terminal status or the timeout
// elapses.
func (c *Client) waitForRun(ctx context.Context, threadID, runID string) error {
	ctx, cancel := context.WithTimeout(ctx, c.runTimeout)
	defer cancel()

	for {
		run, err := c.client.Beta.Threads.Runs.Get(ctx, threadID, runID)
		if err != nil {
			return fmt.Errorf("openai: poll run: %w", err)
		}

		switch run.Status {
		case "completed":
			return nil
		case "failed", "cancelled", "expired", "incomplete":
			return fmt.Errorf("openai: run ended with status %q", run.Status)
		case "requires_action":
			// This tool never executes tool calls locally.
			return fmt.Errorf("openai: run requires a tool action, which is not supported")
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("openai: wait for run: %w", ctx.Err())
		case <-time.After(c.pollInterval):
		}
	}
}

// latestReply returns the newest message in the thread, which after a
// completed run is the assistant's response.
func (c *Client) latestReply(ctx context.Context, threadID string) (string, error) {
	page, err := c.client.Beta.Threads.Messages.List(ctx, threadID, oai.BetaThreadMessageListParams{
		Order: "desc",
		Limit: oai.Int(1),
	})
	if err != nil {
		return "", fmt.Errorf("openai: list messages: %w", err)
	}
	if len(page.Data) == 0 {
		return "", fmt.Errorf("openai: thread %s has no messages", threadID)
	}

	var sb strings.Builder
	for _, block := range page.Data[0].Content {
		if block.Type == "text" {
			sb.WriteString(block.Text.Value)
		}
	}
	return sb.String(), nil
}

// Ensure Client implements assistant.API at compile time.
var _ assistant.API = (*Client)(nil)
