// Package youtube fetches the caption track of a YouTube video as plain text.
//
// The watch page embeds a player response JSON object listing the available
// caption tracks; the chosen track is then downloaded in the json3 timed-text
// format and flattened into whitespace-separated text. Timing information is
// discarded; the transcript cleaner works on plain text only.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultBaseURL = "https://www.youtube.com"

// captionTrack mirrors one entry of the watch page's captionTracks array.
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	// Kind is "asr" for auto-generated tracks, empty for manual ones.
	Kind string `json:"kind"`
}

// timedText mirrors the json3 caption payload: a flat list of events, each
// carrying zero or more text segments.
type timedText struct {
	Events []struct {
		Segs []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

// Option is a functional option for configuring a [Client].
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL overrides the YouTube base URL. Intended for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithLanguage sets the preferred caption language code. Default: "en".
// When no track matches, the first available track is used.
func WithLanguage(code string) Option {
	return func(c *Client) {
		c.language = code
	}
}

// Client fetches caption tracks over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	language   string
}

// New returns a caption [Client] with default settings.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    defaultBaseURL,
		language:   "en",
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Fetch downloads the caption track of the given video and returns it as a
// single plain-text string. It fails when the video has no caption tracks or
// when either HTTP round-trip does not succeed.
func (c *Client) Fetch(ctx context.Context, videoID string) (string, error) {
	if videoID == "" {
		return "", fmt.Errorf("youtube: videoID must not be empty")
	}

	page, err := c.get(ctx, c.baseURL+"/watch?v="+videoID)
	if err != nil {
		return "", fmt.Errorf("youtube: fetch watch page: %w", err)
	}

	tracks, err := extractCaptionTracks(page)
	if err != nil {
		return "", fmt.Errorf("youtube: video %s: %w", videoID, err)
	}

	track := c.pickTrack(tracks)
	body, err := c.get(ctx, track.BaseURL+"&fmt=json3")
	if err != nil {
		return "", fmt.Errorf("youtube: fetch caption track: %w", err)
	}

	text, err := flattenTimedText(body)
	if err != nil {
		return "", fmt.Errorf("youtube: video %s: %w", videoID, err)
	}
	return text, nil
}

// get performs a GET request and returns the response body.
func (c *Client) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s for %s", resp.Status, url)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// pickTrack prefers a manual track in the configured language, then any track
// in that language, then the first track.
func (c *Client) pickTrack(tracks []captionTrack) captionTrack {
	for _, t := range tracks {
		if t.LanguageCode == c.language && t.Kind != "asr" {
			return t
		}
	}
	for _, t := range tracks {
		if t.LanguageCode == c.language {
			return t
		}
	}
	return tracks[0]
}

// extractCaptionTracks locates the captionTracks array inside the watch page
// HTML and decodes it. A page without the marker means the video has no
// captions (or does not exist).
func extractCaptionTracks(page string) ([]captionTrack, error) {
	const marker = `"captionTracks":`
	idx := strings.Index(page, marker)
	if idx < 0 {
		return nil, fmt.Errorf("no caption tracks found")
	}

	// Decode exactly one JSON value starting at the array; the decoder stops
	// at the closing bracket, so the surrounding HTML does not matter.
	dec := json.NewDecoder(strings.NewReader(page[idx+len(marker):]))
	var tracks []captionTrack
	if err := dec.Decode(&tracks); err != nil {
		return nil, fmt.Errorf("parse caption tracks: %w", err)
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("no caption tracks found")
	}
	return tracks, nil
}

// flattenTimedText joins every segment of a json3 payload with spaces,
// collapsing the newlines YouTube embeds inside segments.
func flattenTimedText(body string) (string, error) {
	var tt timedText
	if err := json.Unmarshal([]byte(body), &tt); err != nil {
		return "", fmt.Errorf("parse timed text: %w", err)
	}

	var parts []string
	for _, ev := range tt.Events {
		for _, seg := range ev.Segs {
			s := strings.TrimSpace(strings.ReplaceAll(seg.UTF8, "\n", " "))
			if s != "" {
				parts = append(parts, s)
			}
		}
	}
	return strings.Join(parts, " "), nil
}
