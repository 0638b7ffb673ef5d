// Package tools provides ADK-compatible tools exposing the being's
// activities to an agent runtime.
package tools

import (
	"context"

	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"github.com/dittowallet/digital-being/pkg/activities"
	"github.com/dittowallet/digital-being/pkg/types"
)

// ActivityToolset wraps the tweet activities as agent tools.
type ActivityToolset struct {
	postTweet      *activities.PostTweetActivity
	recentMemories *activities.PostRecentMemoriesActivity
}

// NewActivityToolset creates a toolset over the given activities.
func NewActivityToolset(postTweet *activities.PostTweetActivity, recentMemories *activities.PostRecentMemoriesActivity) *ActivityToolset {
	return &ActivityToolset{
		postTweet:      postTweet,
		recentMemories: recentMemories,
	}
}

// --- Post Tweet Tool ---

// PostTweetInput is the input.
type PostTweetInput struct{}

// ActivityOutput reports an activity run to the agent.
type ActivityOutput struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// PostTweetTool creates the post tweet tool.
func (ts *ActivityToolset) PostTweetTool() (tool.Tool, error) {
	handler := func(ctx tool.Context, input PostTweetInput) (ActivityOutput, error) {
		result := ts.postTweet.Execute(context.Background())
		return toOutput(result), nil
	}

	return functiontool.New(functiontool.Config{
		Name:        "post_a_tweet",
		Description: "Compose a tweet in the being's voice, optionally with a generated image, and post it.",
	}, handler)
}

// --- Post Recent Memories Tool ---

// PostRecentMemoriesInput is the input.
type PostRecentMemoriesInput struct{}

// PostRecentMemoriesTool creates the recent memories tweet tool.
func (ts *ActivityToolset) PostRecentMemoriesTool() (tool.Tool, error) {
	handler := func(ctx tool.Context, input PostRecentMemoriesInput) (ActivityOutput, error) {
		result := ts.recentMemories.Execute(context.Background())
		return toOutput(result), nil
	}

	return functiontool.New(functiontool.Config{
		Name:        "post_recent_memories_tweet",
		Description: "Summarize fresh memory entries into a tweet, skipping ones already shared, and post it.",
	}, handler)
}

// AllTools returns all activity tools.
func (ts *ActivityToolset) AllTools() ([]tool.Tool, error) {
	postTweetTool, err := ts.PostTweetTool()
	if err != nil {
		return nil, err
	}

	recentMemoriesTool, err := ts.PostRecentMemoriesTool()
	if err != nil {
		return nil, err
	}

	return []tool.Tool{
		postTweetTool,
		recentMemoriesTool,
	}, nil
}

func toOutput(result types.ActivityResult) ActivityOutput {
	return ActivityOutput{
		Success: result.Success,
		Data:    result.Data,
		Error:   result.Error,
	}
}
