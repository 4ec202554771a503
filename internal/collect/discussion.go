package collect

import (
	"context"
	"log/slog"

	"github.com/lepinkainen/artistpulse/internal/errors"
)

const (
	// DefaultSubreddit is searched when no discussion sources are configured.
	DefaultSubreddit = "hiphopheads"
	// PostsPerSource caps the posts kept from each discussion source.
	PostsPerSource = 10
	discussionSort = "hot"
)

// DiscussionAdapter searches discussion boards for posts mentioning an artist.
type DiscussionAdapter struct {
	client  DiscussionClient
	sources []string
}

// NewDiscussionAdapter creates an adapter searching sources by default.
func NewDiscussionAdapter(client DiscussionClient, sources ...string) *DiscussionAdapter {
	if len(sources) == 0 {
		sources = []string{DefaultSubreddit}
	}
	return &DiscussionAdapter{client: client, sources: sources}
}

// Sources returns the boards searched when FetchDiscussion gets none.
func (a *DiscussionAdapter) Sources() []string {
	return a.sources
}

// FetchDiscussion returns up to PostsPerSource posts from each source, in
// source order. Matching is free text, so unrelated posts can appear.
func (a *DiscussionAdapter) FetchDiscussion(ctx context.Context, name string, sources ...string) ([]DiscussionPost, error) {
	if len(sources) == 0 {
		sources = a.sources
	}

	posts := make([]DiscussionPost, 0, PostsPerSource*len(sources))
	for _, source := range sources {
		results, err := a.client.SearchSubreddit(ctx, source, name, discussionSort, PostsPerSource)
		if err != nil {
			return nil, errors.NewSourceUnavailableError(errors.SourceDiscussion, name, err)
		}
		if len(results) > PostsPerSource {
			results = results[:PostsPerSource]
		}

		for _, p := range results {
			posts = append(posts, DiscussionPost{
				SubredditLabel: source,
				Title:          p.Title,
				Score:          p.Score,
				NumComments:    max(p.NumComments, 0),
				UpvoteRatio:    p.UpvoteRatio,
				URL:            p.URL,
				CreatedAt:      p.CreatedUTC,
			})
		}
		slog.Debug("Fetched discussion posts", "artist", name, "source", source, "posts", len(results))
	}

	return posts, nil
}
