package assistant

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/timler/ai-utils/internal/config"
)

// ExitSentinel terminates the session when entered on its own line.
// The comparison is case-sensitive after trimming surrounding whitespace.
const ExitSentinel = "exit"

// State identifies where the session loop currently is.
type State string

const (
	// StateIdle is the state before the greeting has been printed.
	StateIdle State = "idle"

	// StateAwaitingUserInput means the loop is blocked on the next input line.
	StateAwaitingUserInput State = "awaiting_user_input"

	// StateAwaitingRemoteResponse means a question is in flight to the remote
	// assistant.
	StateAwaitingRemoteResponse State = "awaiting_remote_response"

	// StateTerminated is the final state; a terminated session cannot be resumed.
	StateTerminated State = "terminated"
)

// SessionOption is a functional option for configuring a [Session].
type SessionOption func(*Session)

// WithUserName sets the name shown in the user's conversation headers and
// referenced in the per-run instructions. Default: "Jane Doe".
func WithUserName(name string) SessionOption {
	return func(s *Session) {
		s.userName = name
	}
}

// WithUserInfo sets the per-run instructions forwarded with every question.
func WithUserInfo(info string) SessionOption {
	return func(s *Session) {
		s.userInfo = info
	}
}

// WithClock replaces the time source used for conversation headers. Intended
// for tests.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		s.now = now
	}
}

// Session drives one interactive conversation with a provisioned assistant.
//
// The input and output boundaries are injected, so the loop is testable
// without a terminal. A Session is single-use: once terminated it stays
// terminated.
type Session struct {
	api API
	cfg *config.AssistantConfig

	in  *bufio.Scanner
	out io.Writer
	now func() time.Time

	userName string
	userInfo string

	state    State
	threadID string
}

// NewSession returns a [Session] reading user turns from in and printing the
// conversation to out.
func NewSession(api API, cfg *config.AssistantConfig, in io.Reader, out io.Writer, opts ...SessionOption) *Session {
	s := &Session{
		api:      api,
		cfg:      cfg,
		in:       bufio.NewScanner(in),
		out:      out,
		now:      time.Now,
		userName: "Jane Doe",
		state:    StateIdle,
	}
	for _, o := range opts {
		o(s)
	}
	if s.userInfo == "" {
		s.userInfo = fmt.Sprintf("Please address the user as %s. They are a premium customer.", s.userName)
	}
	return s
}

// State returns the loop's current state.
func (s *Session) State() State {
	return s.state
}

// Run executes the conversation loop until the exit sentinel or end of input.
//
// Remote failures inside the loop are printed and the loop continues; they
// never terminate the conversation. The returned error reports a failure
// reading from in; end of input is not an error and behaves like the exit
// sentinel.
func (s *Session) Run(ctx context.Context) error {
	if s.cfg.OpeningQuestion != "" {
		fmt.Fprintf(s.out, "%s\nHello! %s\n", s.header("assistant"), s.cfg.OpeningQuestion)
	}
	s.state = StateAwaitingUserInput

	for {
		fmt.Fprintf(s.out, "\n%s\n", s.header(s.userName))

		if !s.in.Scan() {
			// End of input behaves like the exit sentinel.
			break
		}
		question := strings.TrimSpace(s.in.Text())

		if question == ExitSentinel {
			break
		}
		if question == "" {
			continue
		}

		s.state = StateAwaitingRemoteResponse
		reply, err := s.ask(ctx, question)
		s.state = StateAwaitingUserInput

		if err != nil {
			fmt.Fprintf(s.out, "%s\nI'm sorry, I can't process your request right now (%v). Please try again.\n", s.header("assistant"), err)
			continue
		}
		fmt.Fprintf(s.out, "%s\n%s\n", s.header("assistant"), reply)
	}

	s.state = StateTerminated
	fmt.Fprintln(s.out, "Exiting the chat. Goodbye!")
	return s.in.Err()
}

// ask lazily creates the conversation thread, then forwards the question.
func (s *Session) ask(ctx context.Context, question string) (string, error) {
	if s.threadID == "" {
		id, err := s.api.CreateThread(ctx)
		if err != nil {
			return "", fmt.Errorf("create thread: %w", err)
		}
		s.threadID = id
	}
	return s.api.Ask(ctx, s.threadID, s.cfg.AssistantID, question, s.userInfo)
}

// header formats a conversation header like "[ASSISTANT - 2024-01-02 15:04:05]".
func (s *Session) header(name string) string {
	return fmt.Sprintf("[%s - %s]", strings.ToUpper(name), s.now().Format("2006-01-02 15:04:05"))
}
