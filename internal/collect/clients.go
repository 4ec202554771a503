package collect

import (
	"context"

	"github.com/lepinkainen/artistpulse/internal/reddit"
	"github.com/lepinkainen/artistpulse/internal/spotify"
	"github.com/lepinkainen/artistpulse/internal/youtube"
)

// CatalogClient is the music catalog collaborator. *spotify.Client satisfies it.
type CatalogClient interface {
	SearchArtists(ctx context.Context, query string, limit int) ([]spotify.Artist, error)
	ArtistTopTracks(ctx context.Context, artistID, market string) ([]spotify.Track, error)
	AudioFeatures(ctx context.Context, ids []string) ([]*spotify.AudioFeatures, error)
}

// DiscussionClient is the discussion board collaborator. *reddit.Client satisfies it.
type DiscussionClient interface {
	SearchSubreddit(ctx context.Context, subreddit, query, sort string, limit int) ([]reddit.Post, error)
}

// VideoClient is the video platform collaborator. *youtube.Client satisfies it.
type VideoClient interface {
	SearchVideos(ctx context.Context, query string, maxResults int) ([]youtube.SearchResult, error)
	VideoStatistics(ctx context.Context, ids []string) (map[string]map[string]string, error)
}

var (
	_ CatalogClient    = (*spotify.Client)(nil)
	_ DiscussionClient = (*reddit.Client)(nil)
	_ VideoClient      = (*youtube.Client)(nil)
)
