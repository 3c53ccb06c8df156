// Package mock provides a test double for the assistant.API interface.
//
// Use API in unit tests to feed controlled replies to the session loop and
// the provisioner without a live Assistants backend. All fields are safe to
// set before calling any method.
package mock

import (
	"context"
	"sync"

	"github.com/timler/ai-utils/internal/assistant"
)

// AskCall records a single invocation of Ask.
type AskCall struct {
	// ThreadID, AssistantID, Question and UserInfo are the arguments passed to Ask.
	ThreadID    string
	AssistantID string
	Question    string
	UserInfo    string
}

// API is a mock implementation of assistant.API.
// Zero values for response fields cause methods to return zero values and nil
// errors. Set Err fields to inject errors.
type API struct {
	mu sync.Mutex

	// --- Configurable responses ---

	// UploadFileID is returned by UploadFile.
	UploadFileID string

	// UploadFileErr, if non-nil, is returned as the error from UploadFile.
	UploadFileErr error

	// CreateAssistantID is returned by CreateAssistant.
	CreateAssistantID string

	// CreateAssistantErr, if non-nil, is returned as the error from CreateAssistant.
	CreateAssistantErr error

	// CreateThreadID is returned by CreateThread.
	CreateThreadID string

	// CreateThreadErr, if non-nil, is returned as the error from CreateThread.
	CreateThreadErr error

	// AskFunc, if non-nil, is called by Ask instead of returning the canned
	// AskReply/AskErr pair. Useful for per-turn behaviour (e.g. fail once,
	// then succeed).
	AskFunc func(ctx context.Context, threadID, assistantID, question, userInfo string) (string, error)

	// AskReply is returned by Ask.
	AskReply string

	// AskErr, if non-nil, is returned as the error from Ask.
	AskErr error

	// --- Call records (read after test) ---

	// UploadFileCalls records the path of every UploadFile invocation in order.
	UploadFileCalls []string

	// CreateAssistantCalls records every Definition passed to CreateAssistant.
	CreateAssistantCalls []assistant.Definition

	// CreateThreadCallCount is the number of times CreateThread was called.
	CreateThreadCallCount int

	// AskCalls records every invocation of Ask in order.
	AskCalls []AskCall
}

// UploadFile records the call and returns UploadFileID, UploadFileErr.
func (a *API) UploadFile(ctx context.Context, path string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.UploadFileCalls = append(a.UploadFileCalls, path)
	return a.UploadFileID, a.UploadFileErr
}

// CreateAssistant records the call and returns CreateAssistantID, CreateAssistantErr.
func (a *API) CreateAssistant(ctx context.Context, def assistant.Definition) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.CreateAssistantCalls = append(a.CreateAssistantCalls, def)
	return a.CreateAssistantID, a.CreateAssistantErr
}

// CreateThread records the call and returns CreateThreadID, CreateThreadErr.
func (a *API) CreateThread(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.CreateThreadCallCount++
	return a.CreateThreadID, a.CreateThreadErr
}

// Ask records the call and returns the configured reply.
func (a *API) Ask(ctx context.Context, threadID, assistantID, question, userInfo string) (string, error) {
	a.mu.Lock()
	a.AskCalls = append(a.AskCalls, AskCall{
		ThreadID:    threadID,
		AssistantID: assistantID,
		Question:    question,
		UserInfo:    userInfo,
	})
	fn := a.AskFunc
	reply, err := a.AskReply, a.AskErr
	a.mu.Unlock()

	if fn != nil {
		return fn(ctx, threadID, assistantID, question, userInfo)
	}
	return reply, err
}

// Reset clears all recorded calls. Thread-safe.
func (a *API) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.UploadFileCalls = nil
	a.CreateAssistantCalls = nil
	a.CreateThreadCallCount = 0
	a.AskCalls = nil
}

// Ensure API implements assistant.API at compile time.
var _ assistant.API = (*API)(nil)
