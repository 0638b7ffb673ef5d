package activities

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/dittowallet/digital-being/pkg/llm"
	"github.com/dittowallet/digital-being/pkg/types"
)

// PostRecentMemoriesActivity summarizes fresh memory entries into a tweet,
// skipping entries the previous successful run already used, and attaches
// any images referenced by draw-activity entries.
type PostRecentMemoriesActivity struct {
	logger    *logrus.Logger
	chat      ChatClient
	poster    Poster
	log       ActivityLog
	character *types.CharacterConfig

	fetchLimit   int
	excludeTypes []string
}

// PostRecentMemoriesConfig wires the activity's collaborators. All of
// Chat, Poster, Log and Character are required.
type PostRecentMemoriesConfig struct {
	Logger    *logrus.Logger
	Chat      ChatClient
	Poster    Poster
	Log       ActivityLog
	Character *types.CharacterConfig

	FetchLimit int // memory entries considered per run; default 10
}

// NewPostRecentMemories creates the activity, failing fast on missing
// collaborators.
func NewPostRecentMemories(cfg PostRecentMemoriesConfig) (*PostRecentMemoriesActivity, error) {
	if cfg.Chat == nil {
		return nil, fmt.Errorf("post_recent_memories: chat client is required")
	}
	if cfg.Poster == nil {
		return nil, fmt.Errorf("post_recent_memories: poster is required")
	}
	if cfg.Log == nil {
		return nil, fmt.Errorf("post_recent_memories: activity log is required")
	}
	if cfg.Character == nil {
		return nil, fmt.Errorf("post_recent_memories: character config is required")
	}

	limit := cfg.FetchLimit
	if limit <= 0 {
		limit = 10
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
	}

	return &PostRecentMemoriesActivity{
		logger:    logger,
		chat:      cfg.Chat,
		poster:    cfg.Poster,
		log:       cfg.Log,
		character: cfg.Character,

		fetchLimit: limit,
		// Both tweet activities are skipped so the bot never tweets
		// about its own tweeting.
		excludeTypes: []string{types.ActivityPostRecentMemories, types.ActivityPostTweet},
	}, nil
}

// Name returns the activity type name used in the activity log.
func (a *PostRecentMemoriesActivity) Name() string {
	return types.ActivityPostRecentMemories
}

// Execute runs the activity once.
func (a *PostRecentMemoriesActivity) Execute(ctx context.Context) types.ActivityResult {
	a.logger.Info("Starting recent memories tweet activity")

	entries := BuildDigest(a.log, a.fetchLimit, a.excludeTypes)
	if len(entries) == 0 {
		a.logger.Info("No relevant memories found to tweet about")
		return types.ActivityResult{
			Success: true,
			Data:    map[string]any{"message": "No recent memories to share."},
		}
	}

	usedLastTime := LastUsedEntries(a.log, types.ActivityPostRecentMemories)
	a.logger.WithField("count", len(usedLastTime)).Debug("Memories used last time")

	newEntries := FilterUsed(entries, usedLastTime)
	if len(newEntries) == 0 {
		a.logger.Info("All recent memories overlap with last time")
		return types.ActivityResult{
			Success: true,
			Data:    map[string]any{"message": "No new memories to tweet."},
		}
	}

	prompt := buildMemoriesPrompt(a.character.Personality, a.character.Objectives, newEntries)
	drawingURLs := ExtractImageURLs(newEntries, a.logger)

	resp, err := a.chat.Complete(ctx, llm.ChatRequest{
		Prompt: prompt,
		SystemPrompt: "You are an AI that composes tweets with the given personality and objectives. " +
			"Tweet must be under 280 chars.",
		MaxTokens: 200,
	})
	if err != nil {
		return types.Failure(err.Error())
	}

	tweetText := TruncateTweet(strings.TrimSpace(resp.Content), MaxTweetLength)

	// Upload whatever resolves; failed uploads degrade to a text-only post.
	var mediaIDs []string
	for _, u := range drawingURLs {
		mediaID, err := a.poster.UploadMedia(ctx, u)
		if err != nil {
			a.logger.WithError(err).WithField("url", u).Warn("Media upload failed, skipping")
			continue
		}
		mediaIDs = append(mediaIDs, mediaID)
	}

	post := a.poster.PostTweet(ctx, tweetText, mediaIDs)
	if !post.Success {
		a.logger.WithField("error", post.Error).Error("Tweet posting failed")
		return types.Failure(post.Error)
	}

	a.logger.WithField("tweet", truncateForLog(tweetText, 50)).Info("Successfully posted tweet about recent memories")
	return types.ActivityResult{
		Success: true,
		Data: map[string]any{
			"tweet_id":             post.TweetID,
			"content":              tweetText,
			"recent_memories_used": newEntries,
		},
		Metadata: map[string]any{
			"length":        len([]rune(tweetText)),
			"tweet_link":    post.TweetLink,
			"prompt_used":   prompt,
			"model":         resp.Model,
			"finish_reason": resp.FinishReason,
			"image_count":   len(drawingURLs),
		},
	}
}
