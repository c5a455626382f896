package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

var (
	videoIDPattern    = regexp.MustCompile(`(?:youtube\.com\/(?:[^\/]+\/.+\/|(?:v|e(?:mbed)?)\/|.*[?&]v=)|youtu\.be\/)([^"&?\/\s]{11})`)
	transcriptPattern = regexp.MustCompile(`<text start="[^"]*" dur="[^"]*">([^<]*)<\/text>`)
)

// Client fetches caption-track transcripts for YouTube videos so they can be
// used as study material alongside uploaded documents.
type Client struct {
	http *http.Client
}

// NewClient creates a transcript client with a bounded request timeout.
func NewClient() *Client {
	return &Client{http: &http.Client{Timeout: 30 * time.Second}}
}

// Transcript returns the concatenated caption text of the video at url.
// It fails when the video has no caption tracks.
func (c *Client) Transcript(ctx context.Context, url string) (string, error) {
	videoID, err := parseVideoID(url)
	if err != nil {
		return "", err
	}

	trackURL, err := c.captionTrackURL(ctx, videoID)
	if err != nil {
		return "", err
	}

	body, err := c.get(ctx, trackURL)
	if err != nil {
		return "", fmt.Errorf("fetch transcript for video %s: %w", videoID, err)
	}

	matches := transcriptPattern.FindAllStringSubmatch(string(body), -1)
	if len(matches) == 0 {
		return "", fmt.Errorf("transcript for video %s is empty", videoID)
	}

	var text strings.Builder
	for _, match := range matches {
		text.WriteString(html.UnescapeString(match[1]))
		text.WriteString(" ")
	}
	return strings.TrimSpace(text.String()), nil
}

// captionTrackURL scrapes the watch page for the first caption track URL.
func (c *Client) captionTrackURL(ctx context.Context, videoID string) (string, error) {
	body, err := c.get(ctx, "https://www.youtube.com/watch?v="+videoID)
	if err != nil {
		return "", fmt.Errorf("fetch video page for %s: %w", videoID, err)
	}

	parts := strings.SplitN(string(body), `"captions":`, 2)
	if len(parts) < 2 {
		return "", fmt.Errorf("no captions available for video %s", videoID)
	}

	end := strings.Index(parts[1], `,"videoDetails`)
	if end < 0 {
		return "", fmt.Errorf("malformed captions data for video %s", videoID)
	}

	var captions struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []struct {
				BaseURL string `json:"baseUrl"`
			} `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	}
	if err := json.Unmarshal([]byte(parts[1][:end]), &captions); err != nil {
		return "", fmt.Errorf("parse captions data for video %s: %w", videoID, err)
	}

	tracks := captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return "", fmt.Errorf("no transcript tracks available for video %s", videoID)
	}
	return tracks[0].BaseURL, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// parseVideoID accepts a bare 11-character video ID or any of the usual
// YouTube URL shapes.
func parseVideoID(url string) (string, error) {
	if len(url) == 11 && !strings.ContainsAny(url, "/?&.") {
		return url, nil
	}
	if match := videoIDPattern.FindStringSubmatch(url); match != nil {
		return match[1], nil
	}
	return "", fmt.Errorf("invalid YouTube URL or video ID: %s", url)
}
