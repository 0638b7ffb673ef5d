// Package types defines core types shared by the digital being's activities.
package types

import "time"

// Activity type names as they are stored in the activity log.
const (
	ActivityPostTweet          = "PostTweetActivity"
	ActivityPostRecentMemories = "PostRecentMemoriesTweetActivity"
	ActivityDraw               = "DrawActivity"
)

// ActivityRecord is one completed activity run in the append-only activity
// log. Records are immutable once written; the scheduling framework appends
// one after every run and activities only ever read them.
type ActivityRecord struct {
	ID           string         `json:"id"`
	ActivityType string         `json:"activity_type"`
	Success      bool           `json:"success"`
	Data         map[string]any `json:"data,omitempty"`
	Error        string         `json:"error,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
}

// ActivityResult is the uniform outcome shape every activity returns.
// Data carries activity-specific output (tweet id, content, the memory
// entries used); Metadata carries diagnostics that are stored but never
// read back by later runs.
type ActivityResult struct {
	Success  bool           `json:"success"`
	Data     map[string]any `json:"data,omitempty"`
	Error    string         `json:"error,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Failure builds a failed result with the given error message.
func Failure(errMsg string) ActivityResult {
	return ActivityResult{Success: false, Error: errMsg}
}

// CharacterConfig is the being's identity as loaded from character config.
// Personality maps trait name to value ("tone" -> "cheerful"); Objectives
// maps objective name to description ("primary" -> "Spread positivity").
type CharacterConfig struct {
	Name        string         `json:"name"`
	Personality map[string]any `json:"personality"`
	Objectives  map[string]any `json:"objectives,omitempty"`
}

// TweetDraft is a composed tweet before it is published. It exists only
// within a single activity execution.
type TweetDraft struct {
	Text      string   `json:"text"`
	MediaURLs []string `json:"media_urls,omitempty"`
}

// PostResult is the normalized outcome of a publish attempt, produced by
// the posting adapter after collapsing the backend's response schema.
type PostResult struct {
	Success    bool   `json:"success"`
	TweetID    string `json:"tweet_id,omitempty"`
	TweetLink  string `json:"tweet_link,omitempty"`
	MediaCount int    `json:"media_count"`
	Error      string `json:"error,omitempty"`
}
