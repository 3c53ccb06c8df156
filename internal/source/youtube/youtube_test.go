package youtube_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/timler/ai-utils/internal/source/youtube"
)

// newFixtureServer serves a fake watch page advertising one caption track and
// the json3 payload behind it.
func newFixtureServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	var srv *httptest.Server

	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("v") == "" {
			http.NotFound(w, r)
			return
		}
		page := fmt.Sprintf(
			`<html><script>var ytInitialPlayerResponse = {"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[{"baseUrl":%q,"languageCode":"en"}]}}};</script></html>`,
			srv.URL+"/api/timedtext?v=abc",
		)
		fmt.Fprint(w, page)
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"events":[
			{"segs":[{"utf8":"hello"},{"utf8":" world\n"}]},
			{"segs":[{"utf8":"second line"}]},
			{}
		]}`)
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch_FlattensCaptionTrack(t *testing.T) {
	t.Parallel()

	srv := newFixtureServer(t)
	c := youtube.New(
		youtube.WithBaseURL(srv.URL),
		youtube.WithHTTPClient(srv.Client()),
	)

	text, err := c.Fetch(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if text != "hello world second line" {
		t.Errorf("text = %q, want %q", text, "hello world second line")
	}
}

func TestFetch_EmptyVideoID(t *testing.T) {
	t.Parallel()

	c := youtube.New()
	if _, err := c.Fetch(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty video ID, got nil")
	}
}

func TestFetch_NoCaptionTracks(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>a page with no captions at all</html>`)
	}))
	t.Cleanup(srv.Close)

	c := youtube.New(
		youtube.WithBaseURL(srv.URL),
		youtube.WithHTTPClient(srv.Client()),
	)
	_, err := c.Fetch(context.Background(), "abc123")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "no caption tracks") {
		t.Errorf("error should mention missing caption tracks, got: %v", err)
	}
}

func TestFetch_WatchPageHTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := youtube.New(
		youtube.WithBaseURL(srv.URL),
		youtube.WithHTTPClient(srv.Client()),
	)
	if _, err := c.Fetch(context.Background(), "abc123"); err == nil {
		t.Fatal("expected error for HTTP 500, got nil")
	}
}

// TestFetch_PrefersManualTrackInLanguage verifies asr tracks lose to manual
// tracks of the preferred language.
func TestFetch_PrefersManualTrackInLanguage(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	var srv *httptest.Server

	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		page := fmt.Sprintf(
			`{"captionTracks":[{"baseUrl":%q,"languageCode":"en","kind":"asr"},{"baseUrl":%q,"languageCode":"en"}]}`,
			srv.URL+"/auto?lang=en", srv.URL+"/manual?lang=en",
		)
		fmt.Fprint(w, page)
	})
	mux.HandleFunc("/auto", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"events":[{"segs":[{"utf8":"auto generated"}]}]}`)
	})
	mux.HandleFunc("/manual", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"events":[{"segs":[{"utf8":"hand written"}]}]}`)
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := youtube.New(
		youtube.WithBaseURL(srv.URL),
		youtube.WithHTTPClient(srv.Client()),
	)
	text, err := c.Fetch(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if text != "hand written" {
		t.Errorf("text = %q, want the manual track", text)
	}
}
