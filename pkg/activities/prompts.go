package activities

import (
	"fmt"
	"sort"
	"strings"
)

// formatTraits renders a trait or objective map as "key: value" lines,
// sorted for stable prompts.
func formatTraits(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %v", k, m[k]))
	}
	return strings.Join(lines, "\n")
}

// buildTweetPrompt asks for a fresh tweet given personality and the texts
// of recent tweets to avoid repeating.
func buildTweetPrompt(personality map[string]any, recentTweets []string) string {
	lastTweets := "(No recent tweets)"
	if len(recentTweets) > 0 {
		bullets := make([]string, 0, len(recentTweets))
		for _, t := range recentTweets {
			bullets = append(bullets, "- "+t)
		}
		lastTweets = strings.Join(bullets, "\n")
	}

	return fmt.Sprintf(
		"Our digital being has these personality traits:\n%s\n\n"+
			"Here are recent tweets:\n%s\n\n"+
			"Write a new short tweet (under %d chars) but not repeating old tweets. "+
			"Avoid hashtags or repeated phrases.\n",
		formatTraits(personality), lastTweets, MaxTweetLength)
}

// buildImagePrompt asks for an illustration of the tweet.
func buildImagePrompt(tweetText string, personality map[string]any) string {
	return fmt.Sprintf(
		"Our digital being has these personality traits:\n%s\n\n"+
			"And is creating a tweet with the text: %s\n\n"+
			"Generate a simple, whimsical and fun image that represents the story of the tweet "+
			"and reflects the personality traits. Do not include the tweet text in the image.",
		formatTraits(personality), tweetText)
}

// buildMemoriesPrompt asks for a tweet summarizing fresh memory entries,
// guided by personality and objectives.
func buildMemoriesPrompt(personality, objectives map[string]any, memories []string) string {
	objectivesStr := formatTraits(objectives)
	if objectivesStr == "" {
		objectivesStr = "(No objectives specified)"
	}

	memoriesStr := "(No new memories)"
	if len(memories) > 0 {
		bullets := make([]string, 0, len(memories))
		for _, m := range memories {
			bullets = append(bullets, "- "+m)
		}
		memoriesStr = strings.Join(bullets, "\n")
	}

	return fmt.Sprintf(
		"Our digital being has these personality traits:\n%s\n\n"+
			"It also has these objectives:\n%s\n\n"+
			"Here are some new memories:\n%s\n\n"+
			"Please craft a short tweet (under %d chars) that references these memories, "+
			"reflects the personality and objectives, and ensures it's not repetitive or dull. "+
			"Keep it interesting, cohesive, and mindful of the overall tone.\n",
		formatTraits(personality), objectivesStr, memoriesStr, MaxTweetLength)
}
