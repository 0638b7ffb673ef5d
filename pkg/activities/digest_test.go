package activities

import (
	"reflect"
	"testing"

	"github.com/dittowallet/digital-being/pkg/types"
)

func record(activityType string, data map[string]any) types.ActivityRecord {
	return types.ActivityRecord{
		ActivityType: activityType,
		Success:      true,
		Data:         data,
	}
}

func TestBuildDigest_ExcludesConfiguredTypes(t *testing.T) {
	log := &fakeLog{records: []types.ActivityRecord{
		record(types.ActivityPostTweet, map[string]any{"content": "old tweet"}),
		record("NapActivity", map[string]any{"duration": "20m"}),
		record(types.ActivityPostRecentMemories, map[string]any{"content": "old summary"}),
		record(types.ActivityDraw, map[string]any{"title": "sunset"}),
	}}

	entries := BuildDigest(log, 10, []string{types.ActivityPostTweet, types.ActivityPostRecentMemories})
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %v", len(entries), entries)
	}
	for _, e := range entries {
		if e == "" {
			t.Fatal("got empty digest entry")
		}
	}
	if entries[0] != `NapActivity => {"duration":"20m"}` {
		t.Errorf("unexpected entry format: %q", entries[0])
	}
}

func TestBuildDigest_RespectsLimit(t *testing.T) {
	var recs []types.ActivityRecord
	for i := 0; i < 20; i++ {
		recs = append(recs, record("NapActivity", map[string]any{"n": i}))
	}
	log := &fakeLog{records: recs}

	entries := BuildDigest(log, 3, nil)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
}

func TestBuildDigest_Empty(t *testing.T) {
	entries := BuildDigest(&fakeLog{}, 10, nil)
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %v", entries)
	}
}

func TestFilterUsed(t *testing.T) {
	all := []string{"a", "b", "c", "d"}

	got := FilterUsed(all, []string{"b", "d"})
	want := []string{"a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if got := FilterUsed(all, all); len(got) != 0 {
		t.Fatalf("expected empty difference, got %v", got)
	}

	if got := FilterUsed(all, nil); !reflect.DeepEqual(got, all) {
		t.Fatalf("expected all entries back, got %v", got)
	}
}

func TestLastUsedEntries(t *testing.T) {
	log := &fakeLog{records: []types.ActivityRecord{
		// Newest run failed; its entries must not count.
		{ActivityType: types.ActivityPostRecentMemories, Success: false,
			Data: map[string]any{"recent_memories_used": []any{"x"}}},
		record("NapActivity", nil),
		// The most recent successful run. JSON round trips the list as []any.
		{ActivityType: types.ActivityPostRecentMemories, Success: true,
			Data: map[string]any{"recent_memories_used": []any{"a", "b"}}},
		{ActivityType: types.ActivityPostRecentMemories, Success: true,
			Data: map[string]any{"recent_memories_used": []any{"older"}}},
	}}

	got := LastUsedEntries(log, types.ActivityPostRecentMemories)
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestLastUsedEntries_NoPriorRun(t *testing.T) {
	log := &fakeLog{records: []types.ActivityRecord{
		record("NapActivity", nil),
	}}
	if got := LastUsedEntries(log, types.ActivityPostRecentMemories); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestExtractImageURLs(t *testing.T) {
	entries := []string{
		`DrawActivity => {"image_data":{"url":"https://cdn.example.com/a.png"}}`,
		`DrawActivity => {"image_data":{"url":"not-a-url"}}`,
		`DrawActivity => {"image_data":{"url":"file:///tmp/x.png"}}`,
		`DrawActivity => {not valid json`,
		`DrawActivity => {"title":"no image data"}`,
		`NapActivity => {"image_data":{"url":"https://cdn.example.com/ignored.png"}}`,
	}

	got := ExtractImageURLs(entries, nil)
	want := []string{"https://cdn.example.com/a.png"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtractImageURLs_MultipleValid(t *testing.T) {
	entries := []string{
		`DrawActivity => {"image_data":{"url":"https://cdn.example.com/a.png"}}`,
		`DrawActivity => {"image_data":{"url":"http://cdn.example.com/b.jpg?sig=abc"}}`,
	}
	got := ExtractImageURLs(entries, nil)
	if len(got) != 2 {
		t.Fatalf("expected 2 urls, got %v", got)
	}
}

func TestFormatDigestEntry(t *testing.T) {
	rec := record("NapActivity", map[string]any{"duration": "20m"})
	if got := FormatDigestEntry(rec); got != `NapActivity => {"duration":"20m"}` {
		t.Errorf("unexpected format: %q", got)
	}

	empty := record("NapActivity", nil)
	if got := FormatDigestEntry(empty); got != "NapActivity => {}" {
		t.Errorf("unexpected format for nil data: %q", got)
	}
}
