// Command bot runs one of the digital being's tweet activities and records
// the outcome in the activity log.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dittowallet/digital-being/pkg/activities"
	"github.com/dittowallet/digital-being/pkg/config"
	"github.com/dittowallet/digital-being/pkg/image"
	"github.com/dittowallet/digital-being/pkg/llm"
	"github.com/dittowallet/digital-being/pkg/logging"
	"github.com/dittowallet/digital-being/pkg/memory"
	"github.com/dittowallet/digital-being/pkg/twitter"
	"github.com/dittowallet/digital-being/pkg/types"
)

func main() {
	var (
		activityName  = flag.String("activity", "post_recent_memories", "activity to run: post_tweet or post_recent_memories")
		dataPath      = flag.String("data", "data", "data directory for the activity log")
		characterPath = flag.String("character", "character_config.json", "path to the character config JSON")
		withImage     = flag.Bool("image", true, "allow image generation for post_tweet")
	)
	flag.Parse()

	logger := logging.NewLogger()
	config.LoadEnv(logger)

	character, err := config.LoadCharacterConfig(*characterPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load character config")
	}

	store, err := memory.NewStore(*dataPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open activity log")
	}

	ctx := context.Background()

	chat, err := llm.NewGeminiClient(ctx, llm.GeminiConfig{})
	if err != nil {
		logger.WithError(err).Fatal("Failed to create chat client")
	}

	poster := twitter.NewClient(twitter.Config{
		Enabled:   true,
		APIKey:    config.GetEnv("COMPOSIO_API_KEY", ""),
		APIURL:    config.GetEnv("COMPOSIO_API_URL", ""),
		Username:  config.GetEnv("TWITTER_USERNAME", ""),
		RateLimit: config.GetEnvInt("TWITTER_RATE_LIMIT", 100),
	}, logger)

	var result types.ActivityResult
	var name string

	switch *activityName {
	case "post_tweet":
		policy := activities.ImageAlways
		if !*withImage {
			policy = activities.ImageNever
		}
		images := image.NewClient(image.Config{
			Enabled:              *withImage,
			APIKey:               config.GetEnv("OPENAI_API_KEY", ""),
			APIURL:               config.GetEnv("OPENAI_API_URL", ""),
			Model:                config.GetEnv("IMAGE_MODEL", ""),
			MaxGenerationsPerDay: config.GetEnvInt("IMAGE_MAX_PER_DAY", 50),
		})
		act, err := activities.NewPostTweet(activities.PostTweetConfig{
			Logger:      logger,
			Chat:        chat,
			Images:      images,
			Poster:      poster,
			Log:         store,
			Character:   character,
			ImagePolicy: policy,
		})
		if err != nil {
			logger.WithError(err).Fatal("Failed to build activity")
		}
		name = act.Name()
		result = act.Execute(ctx)

	case "post_recent_memories":
		act, err := activities.NewPostRecentMemories(activities.PostRecentMemoriesConfig{
			Logger:    logger,
			Chat:      chat,
			Poster:    poster,
			Log:       store,
			Character: character,
		})
		if err != nil {
			logger.WithError(err).Fatal("Failed to build activity")
		}
		name = act.Name()
		result = act.Execute(ctx)

	default:
		fmt.Fprintf(os.Stderr, "unknown activity %q\n", *activityName)
		os.Exit(2)
	}

	if err := store.RecordActivity(types.ActivityRecord{
		ActivityType: name,
		Success:      result.Success,
		Data:         result.Data,
		Error:        result.Error,
	}); err != nil {
		logger.WithError(err).Error("Failed to record activity result")
	}

	if !result.Success {
		logger.WithField("error", result.Error).Error("Activity failed")
		os.Exit(1)
	}
	logger.WithField("data", result.Data).Info("Activity finished")
}
