// Package image provides the image generation skill.
package image

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"
)

// Size is an image size in pixels.
type Size struct {
	Width  int
	Height int
}

// DefaultSize is the size used when the caller does not specify one.
var DefaultSize = Size{Width: 1024, Height: 1024}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Result is a successful generation; the backend hosts the artifact.
type Result struct {
	URL string
}

// Config holds configuration for the image generation client.
type Config struct {
	Enabled              bool
	APIKey               string
	APIURL               string // defaults to the OpenAI images endpoint
	Model                string
	MaxGenerationsPerDay int
	SupportedFormats     []string // defaults to png and jpg
}

// Client calls an OpenAI-compatible image generation API and enforces a
// per-day generation quota.
type Client struct {
	http    *http.Client
	apiKey  string
	apiURL  string
	model   string
	enabled bool
	formats []string

	mu             sync.Mutex
	maxPerDay      int
	generatedToday int
	day            time.Time
	now            func() time.Time
}

// NewClient creates a new image generation client.
func NewClient(cfg Config) *Client {
	apiURL := strings.TrimRight(cfg.APIURL, "/")
	if apiURL == "" {
		apiURL = "https://api.openai.com/v1"
	}
	formats := cfg.SupportedFormats
	if len(formats) == 0 {
		formats = []string{"png", "jpg"}
	}
	return &Client{
		http:      &http.Client{Timeout: 120 * time.Second},
		apiKey:    cfg.APIKey,
		apiURL:    apiURL,
		model:     cfg.Model,
		enabled:   cfg.Enabled,
		formats:   formats,
		maxPerDay: cfg.MaxGenerationsPerDay,
		now:       time.Now,
	}
}

// CanGenerate reports whether a generation is currently allowed under the
// daily quota. The counter rolls over at the start of each day.
func (c *Client) CanGenerate() bool {
	if !c.enabled {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rollover()
	return c.maxPerDay <= 0 || c.generatedToday < c.maxPerDay
}

// Generate produces an image for the prompt and returns its hosted URL.
// Each successful call counts against the daily quota.
func (c *Client) Generate(ctx context.Context, prompt string, size Size, format string) (*Result, error) {
	if !c.enabled {
		return nil, errors.New("image generation is disabled")
	}
	if format != "" && !slices.Contains(c.formats, format) {
		return nil, fmt.Errorf("unsupported image format %q", format)
	}
	if !c.CanGenerate() {
		return nil, errors.New("daily image generation quota exhausted")
	}
	if size.Width == 0 || size.Height == 0 {
		size = DefaultSize
	}

	reqBody := generateRequest{
		Model:          c.model,
		Prompt:         prompt,
		N:              1,
		Size:           size.String(),
		ResponseFormat: "url",
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("image: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/images/generations", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("image: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("image: unexpected status %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("image: decode response: %w", err)
	}
	if len(result.Data) == 0 || result.Data[0].URL == "" {
		return nil, errors.New("image: response carried no image url")
	}

	c.mu.Lock()
	c.rollover()
	c.generatedToday++
	c.mu.Unlock()

	return &Result{URL: result.Data[0].URL}, nil
}

// rollover resets the counter when the day changed. Caller holds c.mu.
func (c *Client) rollover() {
	today := c.now().Truncate(24 * time.Hour)
	if !c.day.Equal(today) {
		c.day = today
		c.generatedToday = 0
	}
}

type generateRequest struct {
	Model          string `json:"model,omitempty"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format"`
}

type generateResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}
