package activities

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/dittowallet/digital-being/pkg/image"
	"github.com/dittowallet/digital-being/pkg/llm"
	"github.com/dittowallet/digital-being/pkg/types"
)

// PostTweetActivity composes a tweet from personality and recent tweets,
// optionally illustrates it with a generated image, and publishes it.
type PostTweetActivity struct {
	logger    *logrus.Logger
	chat      ChatClient
	images    ImageGenerator
	poster    Poster
	log       ActivityLog
	character *types.CharacterConfig

	recentTweetLimit int
	imagePolicy      ImagePolicy
	imageSize        image.Size
	imageFormat      string
}

// PostTweetConfig wires the activity's collaborators. Chat, Poster, Log
// and Character are required; Images may be nil when ImagePolicy is never.
type PostTweetConfig struct {
	Logger    *logrus.Logger
	Chat      ChatClient
	Images    ImageGenerator
	Poster    Poster
	Log       ActivityLog
	Character *types.CharacterConfig

	RecentTweetLimit int         // prior tweets fed into the prompt; default 10
	ImagePolicy      ImagePolicy // default always
	ImageSize        image.Size
	ImageFormat      string
}

// NewPostTweet creates the activity, failing fast on missing collaborators.
func NewPostTweet(cfg PostTweetConfig) (*PostTweetActivity, error) {
	if cfg.Chat == nil {
		return nil, fmt.Errorf("post_tweet: chat client is required")
	}
	if cfg.Poster == nil {
		return nil, fmt.Errorf("post_tweet: poster is required")
	}
	if cfg.Log == nil {
		return nil, fmt.Errorf("post_tweet: activity log is required")
	}
	if cfg.Character == nil {
		return nil, fmt.Errorf("post_tweet: character config is required")
	}

	policy := cfg.ImagePolicy
	if policy == "" {
		policy = ImageAlways
	}
	if cfg.Images == nil {
		policy = ImageNever
	}
	limit := cfg.RecentTweetLimit
	if limit <= 0 {
		limit = 10
	}
	size := cfg.ImageSize
	if size.Width == 0 || size.Height == 0 {
		size = image.DefaultSize
	}
	format := cfg.ImageFormat
	if format == "" {
		format = "png"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
	}

	return &PostTweetActivity{
		logger:           logger,
		chat:             cfg.Chat,
		images:           cfg.Images,
		poster:           cfg.Poster,
		log:              cfg.Log,
		character:        cfg.Character,
		recentTweetLimit: limit,
		imagePolicy:      policy,
		imageSize:        size,
		imageFormat:      format,
	}, nil
}

// Name returns the activity type name used in the activity log.
func (a *PostTweetActivity) Name() string {
	return types.ActivityPostTweet
}

// Execute runs the activity once.
func (a *PostTweetActivity) Execute(ctx context.Context) types.ActivityResult {
	a.logger.Info("Starting tweet posting activity")

	recentTweets := a.recentTweetTexts()
	prompt := buildTweetPrompt(a.character.Personality, recentTweets)

	resp, err := a.chat.Complete(ctx, llm.ChatRequest{
		Prompt:       prompt,
		SystemPrompt: "You are an AI that composes tweets with the given personality.",
		MaxTokens:    100,
	})
	if err != nil {
		return types.Failure(err.Error())
	}

	tweetText := TruncateTweet(strings.TrimSpace(resp.Content), MaxTweetLength)

	imagePrompt, mediaIDs := a.generateImageForTweet(ctx, tweetText)

	post := a.poster.PostTweet(ctx, tweetText, mediaIDs)
	if !post.Success {
		a.logger.WithField("error", post.Error).Error("Tweet posting failed")
		return types.Failure(post.Error)
	}

	a.logger.WithField("tweet", truncateForLog(tweetText, 50)).Info("Successfully posted tweet")
	return types.ActivityResult{
		Success: true,
		Data: map[string]any{
			"tweet_id": post.TweetID,
			"content":  tweetText,
		},
		Metadata: map[string]any{
			"length":            len([]rune(tweetText)),
			"method":            "composio",
			"model":             resp.Model,
			"finish_reason":     resp.FinishReason,
			"tweet_link":        post.TweetLink,
			"chat_prompt_used":  prompt,
			"image_prompt_used": imagePrompt,
			"has_image":         len(mediaIDs) > 0,
		},
	}
}

// recentTweetTexts returns the texts of prior successful tweet runs,
// newest-first, for the prompt's no-repeat context.
func (a *PostTweetActivity) recentTweetTexts() []string {
	var tweets []string
	for _, rec := range a.log.GetRecent(digestScanWindow, 0) {
		if rec.ActivityType != types.ActivityPostTweet || !rec.Success {
			continue
		}
		if body, ok := rec.Data["content"].(string); ok && body != "" {
			tweets = append(tweets, body)
		}
		if len(tweets) >= a.recentTweetLimit {
			break
		}
	}
	return tweets
}

// generateImageForTweet generates and uploads an illustration, returning
// the prompt used and any obtained media ids. Every failure here degrades
// to a text-only tweet.
func (a *PostTweetActivity) generateImageForTweet(ctx context.Context, tweetText string) (string, []string) {
	if a.imagePolicy == ImageNever {
		return "", nil
	}
	if !a.images.CanGenerate() {
		a.logger.Warn("Image generation not available, proceeding with text-only tweet")
		return "", nil
	}

	imagePrompt := buildImagePrompt(tweetText, a.character.Personality)
	result, err := a.images.Generate(ctx, imagePrompt, a.imageSize, a.imageFormat)
	if err != nil {
		a.logger.WithError(err).Warn("Image generation failed, proceeding with text-only tweet")
		return imagePrompt, nil
	}

	mediaID, err := a.poster.UploadMedia(ctx, result.URL)
	if err != nil {
		a.logger.WithError(err).Warn("Media upload failed, proceeding with text-only tweet")
		return imagePrompt, nil
	}
	return imagePrompt, []string{mediaID}
}
