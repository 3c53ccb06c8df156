// Package transcript implements the transcript cleaning pipeline: splitting a
// raw transcript into overlapping chunks that fit a model's context window,
// rewriting each chunk through an [llm.Provider], and stitching the cleaned
// chunks back together with visible boundaries and an aggregate dollar cost.
package transcript

import "fmt"

// Default chunk parameters, sized so a chunk plus the cleaning prompt fits
// comfortably in a gpt-4 class context window.
const (
	DefaultChunkSize    = 3950
	DefaultChunkOverlap = 100
)

// Split cuts text into chunks of at most size characters (runes) where
// adjacent chunks share exactly overlap characters. Chunks are emitted in
// document order; the final chunk may be shorter than size. Empty text yields
// nil. Windows are measured in runes, so a cut never lands inside a multibyte
// character.
//
// The overlap gives the model a little shared context on both sides of a cut,
// so a sentence severed mid-word can still be attributed to the right speaker
// in at least one of the two chunks containing it.
//
// Split panics when size <= overlap or overlap < 0; both values come from
// validated configuration, so a violation is a programmer error.
func Split(text string, size, overlap int) []string {
	if overlap < 0 || size <= overlap {
		panic(fmt.Sprintf("transcript: invalid chunk parameters size=%d overlap=%d", size, overlap))
	}
	if text == "" {
		return nil
	}
	runes := []rune(text)
	if len(runes) <= size {
		return []string{text}
	}

	step := size - overlap
	chunks := make([]string, 0, (len(runes)-overlap+step-1)/step)
	for offset := 0; ; offset += step {
		if len(runes)-offset <= size {
			chunks = append(chunks, string(runes[offset:]))
			return chunks
		}
		chunks = append(chunks, string(runes[offset:offset+size]))
	}
}
