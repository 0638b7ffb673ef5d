package activities

import (
	"context"
	"errors"

	"github.com/dittowallet/digital-being/pkg/image"
	"github.com/dittowallet/digital-being/pkg/llm"
	"github.com/dittowallet/digital-being/pkg/types"
)

// fakeLog holds records newest-first, mirroring Store.GetRecent ordering.
type fakeLog struct {
	records []types.ActivityRecord
}

func (f *fakeLog) GetRecent(limit, offset int) []types.ActivityRecord {
	if offset >= len(f.records) {
		return nil
	}
	rest := f.records[offset:]
	if limit > 0 && limit < len(rest) {
		rest = rest[:limit]
	}
	return rest
}

type fakeChat struct {
	resp    *llm.ChatResponse
	err     error
	lastReq llm.ChatRequest
	calls   int
}

func (f *fakeChat) Complete(_ context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakePoster struct {
	postCalls   int
	lastText    string
	lastMedia   []string
	result      types.PostResult
	uploadErr   error
	uploadCalls []string
	nextMediaID string
}

func (f *fakePoster) UploadMedia(_ context.Context, mediaURL string) (string, error) {
	f.uploadCalls = append(f.uploadCalls, mediaURL)
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	if f.nextMediaID == "" {
		return "media-1", nil
	}
	return f.nextMediaID, nil
}

func (f *fakePoster) PostTweet(_ context.Context, text string, mediaIDs []string) types.PostResult {
	f.postCalls++
	f.lastText = text
	f.lastMedia = mediaIDs
	return f.result
}

type fakeImages struct {
	can bool
	url string
	err error
}

func (f *fakeImages) CanGenerate() bool {
	return f.can
}

func (f *fakeImages) Generate(_ context.Context, _ string, _ image.Size, _ string) (*image.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.url == "" {
		return nil, errors.New("no url configured")
	}
	return &image.Result{URL: f.url}, nil
}

func cheerfulCharacter() *types.CharacterConfig {
	return &types.CharacterConfig{
		Name:        "Ditto",
		Personality: map[string]any{"tone": "cheerful"},
		Objectives:  map[string]any{"primary": "Spread positivity"},
	}
}

func okPost() types.PostResult {
	return types.PostResult{
		Success:   true,
		TweetID:   "12345",
		TweetLink: "https://twitter.com/ditto/status/12345",
	}
}
