package twitter

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestPostTweet_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") != "test-key" {
			t.Fatal("expected api key header")
		}
		if !strings.HasSuffix(r.URL.Path, "/actions/TWITTER_CREATION_OF_A_POST/execute") {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var req actionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.EntityID != "MyDigitalBeing" {
			t.Fatalf("unexpected entity id %q", req.EntityID)
		}
		if req.Input["text"] != "hello world" {
			t.Fatalf("unexpected text %v", req.Input["text"])
		}
		// The backend historically misspells the success key.
		fmt.Fprint(w, `{"successfull":true,"data":{"data":{"id":"111"}}}`)
	}))
	defer server.Close()

	c := NewClient(Config{
		Enabled:  true,
		APIKey:   "test-key",
		APIURL:   server.URL,
		Username: "dittowalletbot",
	}, testLogger())

	result := c.PostTweet(context.Background(), "hello world", nil)
	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Error)
	}
	if result.TweetID != "111" {
		t.Errorf("unexpected tweet id %q", result.TweetID)
	}
	if result.TweetLink != "https://twitter.com/dittowalletbot/status/111" {
		t.Errorf("unexpected tweet link %q", result.TweetLink)
	}
}

func TestPostTweet_SendsMediaIDs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req actionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		ids, ok := req.Input["media__media__ids"].([]any)
		if !ok || len(ids) != 2 {
			t.Fatalf("unexpected media ids %v", req.Input["media__media__ids"])
		}
		fmt.Fprint(w, `{"success":true,"data":{"data":{"id":"222"}}}`)
	}))
	defer server.Close()

	c := NewClient(Config{Enabled: true, APIURL: server.URL}, testLogger())
	result := c.PostTweet(context.Background(), "with media", []string{"m1", "m2"})
	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Error)
	}
	if result.MediaCount != 2 {
		t.Errorf("expected media count 2, got %d", result.MediaCount)
	}
}

func TestPostTweet_MissingSuccessKeyIsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"data":{"id":"333"}}}`)
	}))
	defer server.Close()

	c := NewClient(Config{Enabled: true, APIURL: server.URL}, testLogger())
	result := c.PostTweet(context.Background(), "hello", nil)
	if result.Success {
		t.Fatal("expected failure for missing success key")
	}
	if result.Error != "unknown or missing success key" {
		t.Errorf("unexpected error %q", result.Error)
	}
}

func TestPostTweet_MissingIDIsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"data":{}}`)
	}))
	defer server.Close()

	c := NewClient(Config{Enabled: true, APIURL: server.URL}, testLogger())
	result := c.PostTweet(context.Background(), "hello", nil)
	if result.Success {
		t.Fatal("expected failure for missing tweet id")
	}
}

func TestPostTweet_BackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":false,"error":"duplicate content"}`)
	}))
	defer server.Close()

	c := NewClient(Config{Enabled: true, APIURL: server.URL}, testLogger())
	result := c.PostTweet(context.Background(), "hello", nil)
	if result.Success {
		t.Fatal("expected failure")
	}
	if result.Error != "duplicate content" {
		t.Errorf("unexpected error %q", result.Error)
	}
}

func TestPostTweet_RateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"data":{"data":{"id":"444"}}}`)
	}))
	defer server.Close()

	c := NewClient(Config{Enabled: true, APIURL: server.URL, RateLimit: 1}, testLogger())

	if result := c.PostTweet(context.Background(), "one", nil); !result.Success {
		t.Fatalf("first post should succeed: %q", result.Error)
	}
	if result := c.PostTweet(context.Background(), "two", nil); result.Success {
		t.Fatal("second post should be rate limited")
	}

	c.ResetCounts()
	if result := c.PostTweet(context.Background(), "three", nil); !result.Success {
		t.Fatalf("post after reset should succeed: %q", result.Error)
	}
}

func TestPostTweet_Disabled(t *testing.T) {
	c := NewClient(Config{Enabled: false}, testLogger())
	if result := c.PostTweet(context.Background(), "hello", nil); result.Success {
		t.Fatal("expected failure when disabled")
	}
}

func TestUploadMedia(t *testing.T) {
	imageBytes := []byte("fake-png-bytes")

	media := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(imageBytes)
	}))
	defer media.Close()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/actions/TWITTER_MEDIA_UPLOAD_MEDIA/execute") {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var req actionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		mediaParam, ok := req.Input["media"].(map[string]any)
		if !ok {
			t.Fatalf("missing media param: %v", req.Input)
		}
		if mediaParam["name"] != "a.png" {
			t.Fatalf("unexpected filename %v", mediaParam["name"])
		}
		if mediaParam["content"] != base64.StdEncoding.EncodeToString(imageBytes) {
			t.Fatal("content is not the base64 image")
		}
		fmt.Fprint(w, `{"successful":true,"media_id":"media-9"}`)
	}))
	defer backend.Close()

	c := NewClient(Config{Enabled: true, APIURL: backend.URL}, testLogger())
	mediaID, err := c.UploadMedia(context.Background(), media.URL+"/a.png?sig=zzz")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if mediaID != "media-9" {
		t.Errorf("unexpected media id %q", mediaID)
	}
}

func TestUploadMedia_NestedMediaID(t *testing.T) {
	media := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("img"))
	}))
	defer media.Close()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"successful":true,"data":{"media_id":"nested-1"}}`)
	}))
	defer backend.Close()

	c := NewClient(Config{Enabled: true, APIURL: backend.URL}, testLogger())
	mediaID, err := c.UploadMedia(context.Background(), media.URL+"/b.png")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if mediaID != "nested-1" {
		t.Errorf("unexpected media id %q", mediaID)
	}
}

func TestUploadMedia_DownloadFailure(t *testing.T) {
	media := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer media.Close()

	c := NewClient(Config{Enabled: true, APIURL: "http://127.0.0.1:0"}, testLogger())
	if _, err := c.UploadMedia(context.Background(), media.URL+"/missing.png"); err == nil {
		t.Fatal("expected error for failed download")
	}
}

func TestFilenameFromURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://cdn.example.com/path/a.png", "a.png"},
		{"https://cdn.example.com/a.png?sig=abc", "a.png"},
		{"https://cdn.example.com/", "image.png"},
	}
	for _, tt := range tests {
		if got := filenameFromURL(tt.in); got != tt.want {
			t.Errorf("filenameFromURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
