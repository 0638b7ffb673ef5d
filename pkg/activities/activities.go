// Package activities implements the digital being's tweet activities.
package activities

import (
	"context"

	"github.com/dittowallet/digital-being/pkg/image"
	"github.com/dittowallet/digital-being/pkg/llm"
	"github.com/dittowallet/digital-being/pkg/types"
)

// MaxTweetLength is the platform length limit enforced on composed tweets.
const MaxTweetLength = 280

// ChatClient generates text from a prompt.
type ChatClient interface {
	Complete(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error)
}

// ImageGenerator produces an image artifact for a prompt, subject to a
// daily quota.
type ImageGenerator interface {
	CanGenerate() bool
	Generate(ctx context.Context, prompt string, size image.Size, format string) (*image.Result, error)
}

// Poster uploads media and publishes posts.
type Poster interface {
	UploadMedia(ctx context.Context, mediaURL string) (string, error)
	PostTweet(ctx context.Context, text string, mediaIDs []string) types.PostResult
}

// ActivityLog reads past activity runs, newest-first.
type ActivityLog interface {
	GetRecent(limit, offset int) []types.ActivityRecord
}

// ImagePolicy decides whether an activity attaches a generated image to
// each tweet.
type ImagePolicy string

const (
	ImageAlways ImagePolicy = "always"
	ImageNever  ImagePolicy = "never"
)

// TruncateTweet enforces the length limit: text longer than limit is cut
// to limit-3 characters with an ellipsis marker appended.
func TruncateTweet(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-3]) + "..."
}

func truncateForLog(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
