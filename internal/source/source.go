// Package source resolves the transcript cleaner's input argument into plain
// transcript text: a path to a local file, or a YouTube video ID whose
// caption track is fetched remotely.
package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/timler/ai-utils/internal/source/youtube"
)

// Transcript is a loaded input ready for chunking.
type Transcript struct {
	// Text is the raw transcript content.
	Text string

	// Prefix names the source for derived artifacts: the file path without its
	// extension for a local file, or the video ID for a caption track. The
	// cleaned output file is written as "<Prefix>_cleaned_transcript.txt".
	Prefix string
}

// Load reads the transcript identified by arg. When arg names an existing
// regular file its contents are returned; otherwise arg is treated as a
// YouTube video ID and the caption track is fetched through captions.
func Load(ctx context.Context, captions *youtube.Client, arg string) (Transcript, error) {
	if info, err := os.Stat(arg); err == nil && info.Mode().IsRegular() {
		data, err := os.ReadFile(arg)
		if err != nil {
			return Transcript{}, fmt.Errorf("source: read %q: %w", arg, err)
		}
		return Transcript{
			Text:   string(data),
			Prefix: strings.TrimSuffix(arg, filepath.Ext(arg)),
		}, nil
	}

	text, err := captions.Fetch(ctx, arg)
	if err != nil {
		return Transcript{}, fmt.Errorf("source: fetch captions for %q: %w", arg, err)
	}
	return Transcript{Text: text, Prefix: arg}, nil
}
