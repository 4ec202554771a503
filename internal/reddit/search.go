package reddit

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Post is a submission returned by subreddit search.
type Post struct {
	Subreddit   string
	Title       string
	Score       int
	NumComments int
	// UpvoteRatio is nil when the listing does not expose it.
	UpvoteRatio *float64
	URL         string
	CreatedUTC  float64
}

type listing struct {
	Data struct {
		Children []struct {
			Kind string `json:"kind"`
			Data struct {
				Title       string   `json:"title"`
				Score       int      `json:"score"`
				NumComments int      `json:"num_comments"`
				UpvoteRatio *float64 `json:"upvote_ratio"`
				URL         string   `json:"url"`
				CreatedUTC  float64  `json:"created_utc"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// SearchSubreddit runs a free-text search restricted to subreddit, ordered
// by sort ("hot", "relevance", ...), returning at most limit posts.
func (c *Client) SearchSubreddit(ctx context.Context, subreddit, query, sort string, limit int) ([]Post, error) {
	if subreddit == "" {
		return nil, fmt.Errorf("reddit: subreddit is required")
	}
	if limit <= 0 {
		limit = 10
	}
	if sort == "" {
		sort = "hot"
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("restrict_sr", "1")
	params.Set("sort", sort)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("raw_json", "1")

	var resp listing
	if err := c.get(ctx, "/r/"+url.PathEscape(subreddit)+"/search", params, &resp); err != nil {
		return nil, err
	}

	posts := make([]Post, 0, len(resp.Data.Children))
	for _, child := range resp.Data.Children {
		if len(posts) >= limit {
			break
		}
		// t3 is a link/self post; anything else is not a submission
		if child.Kind != "" && child.Kind != "t3" {
			continue
		}
		d := child.Data
		posts = append(posts, Post{
			Subreddit:   subreddit,
			Title:       d.Title,
			Score:       d.Score,
			NumComments: d.NumComments,
			UpvoteRatio: d.UpvoteRatio,
			URL:         d.URL,
			CreatedUTC:  d.CreatedUTC,
		})
	}
	return posts, nil
}
