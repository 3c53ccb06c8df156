// Package assistant implements the interactive assistant session tool: a
// provisioning step that creates an OpenAI Assistant from configuration, and
// a conversational turn loop against a server-side thread.
//
// The remote Assistants API is reached through the [API] interface so the
// loop and the provisioner can be exercised in tests without a network.
package assistant

import "context"

// Definition carries everything needed to create a new assistant.
type Definition struct {
	// Name is the assistant's display name.
	Name string

	// Instructions are the assistant's standing instructions.
	Instructions string

	// Model is the model identifier backing the assistant.
	Model string

	// Tools lists tool type names to enable (e.g. "code_interpreter",
	// "file_search").
	Tools []string

	// FileIDs lists uploaded files to attach to the assistant.
	FileIDs []string
}

// API is the abstraction over the remote Assistants service.
//
// All methods are blocking round-trips; any timeout or retry behaviour is
// whatever the underlying client provides by default.
type API interface {
	// UploadFile uploads the file at path for assistant use and returns its
	// server-side file ID.
	UploadFile(ctx context.Context, path string) (string, error)

	// CreateAssistant creates a new assistant and returns its ID.
	CreateAssistant(ctx context.Context, def Definition) (string, error)

	// CreateThread starts a new empty conversation thread and returns its ID.
	CreateThread(ctx context.Context) (string, error)

	// Ask appends question to the thread as a user message, runs the assistant
	// with userInfo as per-run instructions, waits for the run to finish, and
	// returns the assistant's reply text.
	Ask(ctx context.Context, threadID, assistantID, question, userInfo string) (string, error)
}
