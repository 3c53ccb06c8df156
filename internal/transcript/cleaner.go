package transcript

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/timler/ai-utils/pkg/provider/llm"
)

// promptTemplate instructs the model to clean a partial transcript and
// reformat it into speaker-labelled dialogue. The three %s slots are the
// speaker context, the last paragraph of the previous cleaned chunk (for
// continuity across the overlap), and the raw chunk text.
const promptTemplate = `Please process the partial video transcript provided below. First clean the transcript,
and then reformat the text into a dialogue format with speaker labels.

Cleaning Instructions:
1. Add punctuation.
2. Remove ums, uhs, stuttering and stammering.
3. Remove extra whitespace.
4. Fix typos, especially those caused by accent misinterpretations.
5. Add capitalisation.
6. Ensure grammar is correct but also retains the naturalness of spoken dialogue.

Reformatting Instructions:
Format the cleaned transcript into a dialogue using the speaker labels provided. If the transcript starts
mid-sentence, refer to the previous conversation to maintain continuity.

About the speakers: ` + "```%s```" + `

Previous Conversation: ` + "```%s```" + `

Transcript: ` + "```%s```" + `

Important Notes:
- Retain the original intent and meaning of the sentences.
- Only make minor changes to sentences. Do not substitute words unless fixing accent misinterpretations.
- If there's a contradiction between grammar and natural speech, prioritize grammar.`

// Result is one rewritten chunk plus the dollar cost of producing it.
type Result struct {
	// Text is the cleaned, speaker-labelled rewrite of the chunk.
	Text string

	// Cost is the dollar cost of the rewrite call, derived from the provider's
	// reported token usage and the model's pricing.
	Cost float64
}

// Option is a functional option for configuring a [Cleaner].
type Option func(*Cleaner)

// WithTemperature sets the LLM sampling temperature. Default: 0, for the most
// deterministic rewrite the backend offers.
func WithTemperature(temp float64) Option {
	return func(c *Cleaner) {
		c.temperature = temp
	}
}

// WithRequestTimeout bounds each individual rewrite call. Zero means no bound
// beyond the caller's context.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Cleaner) {
		c.requestTimeout = d
	}
}

// Cleaner rewrites transcript chunks through an [llm.Provider]. One value is
// constructed per invocation of the transcript tool and used sequentially.
type Cleaner struct {
	llm            llm.Provider
	pricing        llm.Pricing
	speakerInfo    string
	temperature    float64
	requestTimeout time.Duration
}

// New returns a [Cleaner] backed by the given provider. speakerInfo is the
// caller-supplied description of who is speaking; it is forwarded into each
// prompt verbatim and never validated, so an empty string is acceptable.
func New(provider llm.Provider, pricing llm.Pricing, speakerInfo string, opts ...Option) *Cleaner {
	c := &Cleaner{
		llm:         provider,
		pricing:     pricing,
		speakerInfo: speakerInfo,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Clean rewrites every chunk in order and returns one [Result] per chunk.
// Chunks are processed strictly sequentially: each prompt carries the last
// paragraph of the previous cleaned chunk so the model can keep speaker
// attribution consistent across the overlap.
//
// Any provider error aborts the pipeline immediately and no partial result
// list is returned.
func (c *Cleaner) Clean(ctx context.Context, chunks []string) ([]Result, error) {
	results := make([]Result, 0, len(chunks))
	lastParagraph := ""

	for i, chunk := range chunks {
		slog.Info("processing chunk", "index", i+1, "total", len(chunks), "chars", len(chunk))

		res, err := c.cleanChunk(ctx, chunk, lastParagraph)
		if err != nil {
			return nil, fmt.Errorf("transcript: clean chunk %d/%d: %w", i+1, len(chunks), err)
		}
		results = append(results, res)
		lastParagraph = LastParagraph(res.Text)
	}

	return results, nil
}

// cleanChunk sends one chunk to the model and prices the response.
func (c *Cleaner) cleanChunk(ctx context.Context, chunk, lastParagraph string) (Result, error) {
	if c.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.requestTimeout)
		defer cancel()
	}

	prompt := fmt.Sprintf(promptTemplate, c.speakerInfo, lastParagraph, chunk)

	resp, err := c.llm.Complete(ctx, llm.CompletionRequest{
		Temperature: c.temperature,
		Messages: []llm.Message{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return Result{}, err
	}

	return Result{
		Text: strings.TrimSpace(resp.Content),
		Cost: c.pricing.Cost(resp.Usage),
	}, nil
}

// LastParagraph returns the final blank-line-separated paragraph of text, or
// the whole text when it contains no paragraph break. It is fed to the next
// chunk's prompt as conversational context.
func LastParagraph(text string) string {
	paragraphs := strings.Split(text, "\n\n")
	if last := paragraphs[len(paragraphs)-1]; last != "" {
		return last
	}
	return text
}
