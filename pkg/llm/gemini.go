// Package llm provides the chat completion client used to compose tweets.
package llm

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

// ChatRequest describes a single completion call.
type ChatRequest struct {
	Prompt       string
	SystemPrompt string
	MaxTokens    int32 // upper bound on generated tokens; 0 means model default
}

// ChatResponse is a successful completion.
type ChatResponse struct {
	Content      string
	Model        string
	FinishReason string
}

// GeminiClient implements chat completion using Google GenAI Gemini.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// GeminiConfig holds configuration for the Gemini client.
type GeminiConfig struct {
	APIKey string // If empty, uses GOOGLE_API_KEY env var
	Model  string // e.g., "gemini-3-pro"
}

// NewGeminiClient creates a new Gemini chat client.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = os.Getenv("GOOGLE_MODEL")
	}
	if model == "" {
		model = "gemini-3-pro"
	}

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

// Complete produces a completion for the given request.
func (c *GeminiClient) Complete(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	config := &genai.GenerateContentConfig{}
	if req.SystemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = req.MaxTokens
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.Prompt), config)
	if err != nil {
		return nil, fmt.Errorf("gemini generate failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response from gemini")
	}

	// Extract text from response
	var content string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			content += part.Text
		}
	}

	return &ChatResponse{
		Content:      content,
		Model:        c.model,
		FinishReason: string(resp.Candidates[0].FinishReason),
	}, nil
}

// Model returns the model name.
func (c *GeminiClient) Model() string {
	return c.model
}
