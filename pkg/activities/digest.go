package activities

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/dittowallet/digital-being/pkg/types"
)

// digestScanWindow bounds how far back the digest builder looks.
const digestScanWindow = 50

// lastRunScanWindow bounds how far back the dedup lookup searches for the
// previous successful run.
const lastRunScanWindow = 10

// FormatDigestEntry renders one record as a prompt-ready digest string.
func FormatDigestEntry(rec types.ActivityRecord) string {
	data := []byte("{}")
	if rec.Data != nil {
		if b, err := json.Marshal(rec.Data); err == nil {
			data = b
		}
	}
	return fmt.Sprintf("%s => %s", rec.ActivityType, data)
}

// BuildDigest scans the most recent records newest-first, skips any whose
// activity type is excluded, and formats the rest, stopping at limit.
func BuildDigest(log ActivityLog, limit int, excluded []string) []string {
	skip := make(map[string]bool, len(excluded))
	for _, t := range excluded {
		skip[t] = true
	}

	var entries []string
	for _, rec := range log.GetRecent(digestScanWindow, 0) {
		if skip[rec.ActivityType] {
			continue
		}
		entries = append(entries, FormatDigestEntry(rec))
		if len(entries) >= limit {
			break
		}
	}
	return entries
}

// LastUsedEntries returns the digest entries consumed by the most recent
// successful run of the given activity, or nil if there was none.
func LastUsedEntries(log ActivityLog, activityType string) []string {
	for _, rec := range log.GetRecent(lastRunScanWindow, 0) {
		if rec.ActivityType != activityType || !rec.Success {
			continue
		}
		if used := stringSlice(rec.Data["recent_memories_used"]); len(used) > 0 {
			return used
		}
	}
	return nil
}

// FilterUsed returns entries minus used, order preserved.
func FilterUsed(entries, used []string) []string {
	seen := make(map[string]bool, len(used))
	for _, u := range used {
		seen[u] = true
	}
	var fresh []string
	for _, e := range entries {
		if !seen[e] {
			fresh = append(fresh, e)
		}
	}
	return fresh
}

// ExtractImageURLs collects image URLs from draw-activity digest entries.
// Each candidate entry's embedded JSON is probed for image_data.url; a URL
// without both scheme and host is rejected, and entries that fail to parse
// are logged and skipped.
func ExtractImageURLs(entries []string, logger *logrus.Logger) []string {
	prefix := types.ActivityDraw + " =>"

	var urls []string
	for _, entry := range entries {
		if !strings.HasPrefix(entry, prefix) {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(entry, prefix))
		if !gjson.Valid(payload) {
			if logger != nil {
				logger.WithField("entry", entry).Warn("Skipping draw entry with unparsable data")
			}
			continue
		}
		raw := gjson.Get(payload, "image_data.url").String()
		if raw == "" {
			continue
		}
		parsed, err := url.Parse(raw)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			if logger != nil {
				logger.WithField("url", raw).Warn("Invalid URL in draw entry")
			}
			continue
		}
		urls = append(urls, raw)
	}
	return urls
}

// stringSlice converts the JSON-decoded forms a string list can take in
// record data ([]any from a round trip, []string when freshly written).
func stringSlice(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
