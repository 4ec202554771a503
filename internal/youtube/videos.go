package youtube

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// SearchResult is a single video hit from search.list.
type SearchResult struct {
	VideoID     string
	Title       string
	Description string
	PublishedAt string
}

type searchResponse struct {
	Items []struct {
		ID struct {
			Kind    string `json:"kind"`
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			PublishedAt string `json:"publishedAt"`
		} `json:"snippet"`
	} `json:"items"`
}

type videosResponse struct {
	Items []struct {
		ID         string         `json:"id"`
		Statistics map[string]any `json:"statistics"`
	} `json:"items"`
}

// SearchVideos runs a free-text video search returning at most maxResults hits.
func (c *Client) SearchVideos(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
	if maxResults <= 0 || maxResults > 50 {
		maxResults = 10
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(maxResults))

	var resp searchResponse
	if err := c.get(ctx, "/search", params, &resp); err != nil {
		return nil, err
	}

	out := make([]SearchResult, 0, len(resp.Items))
	for _, it := range resp.Items {
		out = append(out, SearchResult{
			VideoID:     it.ID.VideoID,
			Title:       it.Snippet.Title,
			Description: it.Snippet.Description,
			PublishedAt: it.Snippet.PublishedAt,
		})
	}
	return out, nil
}

// VideoStatistics fetches statistics for ids in as few calls as possible and
// returns them keyed by video id. Ids YouTube does not return (deleted or
// private videos) are absent from the map.
func (c *Client) VideoStatistics(ctx context.Context, ids []string) (map[string]map[string]string, error) {
	stats := make(map[string]map[string]string, len(ids))

	for start := 0; start < len(ids); start += maxStatsIDs {
		end := min(start+maxStatsIDs, len(ids))

		params := url.Values{}
		params.Set("part", "statistics")
		params.Set("id", strings.Join(ids[start:end], ","))

		var resp videosResponse
		if err := c.get(ctx, "/videos", params, &resp); err != nil {
			return nil, err
		}

		for _, item := range resp.Items {
			stats[item.ID] = stringifyStats(item.Statistics)
		}
	}

	return stats, nil
}

// stringifyStats normalises statistics to strings. The API sends counts as
// strings already; anything else is formatted rather than dropped.
func stringifyStats(raw map[string]any) map[string]string {
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			out[k] = val
		case float64:
			out[k] = strconv.FormatFloat(val, 'f', -1, 64)
		default:
			out[k] = fmt.Sprint(val)
		}
	}
	return out
}
