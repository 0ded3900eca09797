package youtube

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/pgale/chime/internal/core"
	"github.com/pgale/chime/internal/errors"
)

// categoryKeywords maps browse categories to search queries.
var categoryKeywords = map[string]string{
	"pop":        "pop music",
	"rock":       "rock music",
	"hiphop":     "hip hop music",
	"electronic": "electronic music",
	"jazz":       "jazz music",
	"classical":  "classical music",
	"indie":      "indie music",
	"chill":      "chill music",
	"workout":    "workout music",
	"focus":      "focus music",
}

// Search looks up music videos for a query. Transient failures degrade to
// an empty result set rather than propagating: search is never fatal.
func (c *Client) Search(ctx context.Context, query string, maxResults int) []core.SearchResult {
	if query == "" {
		return nil
	}
	if maxResults <= 0 {
		maxResults = 20
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("videoCategoryId", musicCategoryID)

	var resp searchResponse
	if err := c.get(ctx, "search", params, &resp); err != nil {
		c.log.Warn("search failed", "query", query, "err", err)
		return nil
	}

	results := make([]core.SearchResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ID.VideoID == "" {
			continue
		}
		results = append(results, core.SearchResult{
			ID:        item.ID.VideoID,
			Title:     item.Snippet.Title,
			Thumbnail: item.Snippet.Thumbnails.best(),
			Channel:   item.Snippet.ChannelTitle,
			VideoID:   item.ID.VideoID,
		})
	}
	return results
}

// VideoDetails resolves a full track, including duration, for a video id.
func (c *Client) VideoDetails(ctx context.Context, videoID string) (*core.Track, error) {
	params := url.Values{}
	params.Set("part", "snippet,contentDetails")
	params.Set("id", videoID)

	var resp videoListResponse
	if err := c.get(ctx, "videos", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", errors.ErrTrackNotFound, videoID)
	}

	v := resp.Items[0]
	return &core.Track{
		ID:        videoID,
		Title:     v.Snippet.Title,
		Artist:    v.Snippet.ChannelTitle,
		Thumbnail: v.Snippet.Thumbnails.best(),
		Duration:  parseISODuration(v.ContentDetails.Duration),
		VideoID:   videoID,
	}, nil
}

// Popular returns the most popular music videos for the configured region.
// Like Search, failures degrade to an empty result.
func (c *Client) Popular(ctx context.Context, maxResults int) []core.SearchResult {
	if maxResults <= 0 {
		maxResults = 20
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("chart", "mostPopular")
	params.Set("videoCategoryId", musicCategoryID)
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("regionCode", c.region)

	var resp videoListResponse
	if err := c.get(ctx, "videos", params, &resp); err != nil {
		c.log.Warn("popular lookup failed", "err", err)
		return nil
	}

	results := make([]core.SearchResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		results = append(results, core.SearchResult{
			ID:        item.ID,
			Title:     item.Snippet.Title,
			Thumbnail: item.Snippet.Thumbnails.best(),
			Channel:   item.Snippet.ChannelTitle,
			VideoID:   item.ID,
		})
	}
	return results
}

// ByCategory searches within a named browse category. Unknown categories
// fall back to using the category name as the query.
func (c *Client) ByCategory(ctx context.Context, category string, maxResults int) []core.SearchResult {
	query, ok := categoryKeywords[category]
	if !ok {
		query = category
	}
	return c.Search(ctx, query, maxResults)
}

var isoDurationRe = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// parseISODuration converts an ISO 8601 duration (PT#H#M#S) to a
// time.Duration. Malformed input parses as zero.
func parseISODuration(s string) time.Duration {
	m := isoDurationRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])
	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second
}
