package main

import (
	"testing"

	"github.com/alecthomas/kong"
)

// TestArgs_BothPositionalsRequired verifies the source and the speaker
// context are both mandatory; an empty speaker context must be passed
// explicitly as "".
func TestArgs_BothPositionalsRequired(t *testing.T) {
	parser, err := kong.New(&cli)
	if err != nil {
		t.Fatalf("kong.New: %v", err)
	}

	if _, err := parser.Parse([]string{"video123"}); err == nil {
		t.Error("missing speaker context should be a parse error")
	}
	if _, err := parser.Parse([]string{}); err == nil {
		t.Error("missing source should be a parse error")
	}
	if _, err := parser.Parse([]string{"video123", "John is the host"}); err != nil {
		t.Errorf("both positionals given, got parse error: %v", err)
	}
	if cli.Source != "video123" || cli.Speakers != "John is the host" {
		t.Errorf("parsed args = %q / %q", cli.Source, cli.Speakers)
	}
}
