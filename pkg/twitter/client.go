// Package twitter posts tweets and uploads media through a Composio-style
// action execution API.
package twitter

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dittowallet/digital-being/pkg/types"
)

// Action names on the automation backend.
const (
	actionCreatePost  = "TWITTER_CREATION_OF_A_POST"
	actionUploadMedia = "TWITTER_MEDIA_UPLOAD_MEDIA"
)

// Config holds configuration for the posting client.
type Config struct {
	Enabled   bool
	APIKey    string
	APIURL    string // defaults to the hosted Composio endpoint
	EntityID  string
	Username  string // used to build tweet links
	RateLimit int    // max posts before ResetCounts; 0 means unlimited
}

// Client executes posting actions against the automation backend. It
// normalizes the backend's loose response schema (three spellings of the
// success field, ids nested at varying depths) into types.PostResult.
type Client struct {
	http     *http.Client
	logger   *logrus.Logger
	apiKey   string
	apiURL   string
	entityID string
	username string
	enabled  bool

	mu         sync.Mutex
	rateLimit  int
	postsCount int
}

// NewClient creates a new posting client.
func NewClient(cfg Config, logger *logrus.Logger) *Client {
	apiURL := strings.TrimRight(cfg.APIURL, "/")
	if apiURL == "" {
		apiURL = "https://backend.composio.dev/api/v2"
	}
	entityID := cfg.EntityID
	if entityID == "" {
		entityID = "MyDigitalBeing"
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Client{
		http:      &http.Client{Timeout: 60 * time.Second},
		logger:    logger,
		apiKey:    cfg.APIKey,
		apiURL:    apiURL,
		entityID:  entityID,
		username:  cfg.Username,
		enabled:   cfg.Enabled,
		rateLimit: cfg.RateLimit,
	}
}

// CanPost reports whether posting is currently allowed.
func (c *Client) CanPost() bool {
	if !c.enabled {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rateLimit <= 0 || c.postsCount < c.rateLimit
}

// ResetCounts resets the post counter.
func (c *Client) ResetCounts() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.postsCount = 0
}

// UploadMedia downloads the image at mediaURL, re-encodes it as base64 and
// uploads it to the platform. Returns the resulting media id.
func (c *Client) UploadMedia(ctx context.Context, mediaURL string) (string, error) {
	c.logger.WithField("url", mediaURL).Info("Downloading media")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return "", fmt.Errorf("create download request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("download media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download media: unexpected status %s", resp.Status)
	}
	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read media body: %w", err)
	}

	filename := filenameFromURL(mediaURL)
	c.logger.WithField("filename", filename).Info("Uploading media")

	raw, err := c.executeAction(ctx, actionUploadMedia, map[string]any{
		"media": map[string]any{
			"name":    filename,
			"content": base64.StdEncoding.EncodeToString(imageData),
		},
	})
	if err != nil {
		return "", err
	}

	if !raw.succeeded() {
		return "", fmt.Errorf("media upload failed: %s", raw.errorMessage())
	}
	mediaID := raw.mediaID()
	if mediaID == "" {
		return "", errors.New("media upload response carried no media id")
	}
	return mediaID, nil
}

// PostTweet publishes text with any previously uploaded media ids.
func (c *Client) PostTweet(ctx context.Context, text string, mediaIDs []string) types.PostResult {
	if !c.CanPost() {
		return types.PostResult{Success: false, Error: "rate limit exceeded or posting disabled"}
	}

	c.logger.WithFields(logrus.Fields{
		"text":        truncateForLog(text, 50),
		"media_count": len(mediaIDs),
	}).Info("Posting tweet")

	params := map[string]any{"text": text}
	if len(mediaIDs) > 0 {
		params["media__media__ids"] = mediaIDs
	}

	raw, err := c.executeAction(ctx, actionCreatePost, params)
	if err != nil {
		return types.PostResult{Success: false, Error: err.Error()}
	}
	if !raw.succeeded() {
		return types.PostResult{Success: false, Error: raw.errorMessage()}
	}

	tweetID := raw.tweetID()
	if tweetID == "" {
		return types.PostResult{Success: false, Error: "post response carried no tweet id"}
	}

	c.mu.Lock()
	c.postsCount++
	c.mu.Unlock()

	return types.PostResult{
		Success:    true,
		TweetID:    tweetID,
		TweetLink:  c.TweetLink(tweetID),
		MediaCount: len(mediaIDs),
	}
}

// TweetLink builds the public URL for a posted tweet, or "" when the
// username is not configured.
func (c *Client) TweetLink(tweetID string) string {
	if c.username == "" || tweetID == "" {
		return ""
	}
	return fmt.Sprintf("https://twitter.com/%s/status/%s", c.username, tweetID)
}

// executeAction runs one named action on the backend.
func (c *Client) executeAction(ctx context.Context, action string, params map[string]any) (*actionResponse, error) {
	payload, err := json.Marshal(actionRequest{EntityID: c.entityID, Input: params})
	if err != nil {
		return nil, fmt.Errorf("marshal action request: %w", err)
	}

	url := fmt.Sprintf("%s/actions/%s/execute", c.apiURL, action)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create action request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute action %s: %w", action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("action %s: unexpected status %s: %s", action, resp.Status, strings.TrimSpace(string(body)))
	}

	var raw actionResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("action %s: decode response: %w", action, err)
	}
	return &raw, nil
}

// filenameFromURL derives an upload filename from the last URL path
// segment, query stripped.
func filenameFromURL(mediaURL string) string {
	name := mediaURL
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "?"); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		name = "image.png"
	}
	return name
}

func truncateForLog(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
