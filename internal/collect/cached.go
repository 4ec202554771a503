package collect

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lepinkainen/artistpulse/internal/cache"
	"github.com/lepinkainen/artistpulse/internal/reddit"
	"github.com/lepinkainen/artistpulse/internal/spotify"
	"github.com/lepinkainen/artistpulse/internal/youtube"
)

// The cached clients wrap a collaborator with the sqlite response cache.
// Empty results are not stored so a transient miss is retried next run.

// CachedCatalog caches catalog responses in the spotify_cache table.
type CachedCatalog struct {
	Client CatalogClient
	DB     *cache.CacheDB
	TTL    time.Duration
}

func (c *CachedCatalog) SearchArtists(ctx context.Context, query string, limit int) ([]spotify.Artist, error) {
	key := fmt.Sprintf("search:%s:%d", strings.ToLower(strings.TrimSpace(query)), limit)
	out, _, err := cache.GetOrFetchWithPolicy(c.DB, cache.SpotifyTable, key, c.TTL, func() ([]spotify.Artist, error) {
		return c.Client.SearchArtists(ctx, query, limit)
	}, nonEmpty[spotify.Artist])
	return out, err
}

func (c *CachedCatalog) ArtistTopTracks(ctx context.Context, artistID, market string) ([]spotify.Track, error) {
	key := "top:" + artistID + ":" + market
	out, _, err := cache.GetOrFetchWithPolicy(c.DB, cache.SpotifyTable, key, c.TTL, func() ([]spotify.Track, error) {
		return c.Client.ArtistTopTracks(ctx, artistID, market)
	}, nonEmpty[spotify.Track])
	return out, err
}

func (c *CachedCatalog) AudioFeatures(ctx context.Context, ids []string) ([]*spotify.AudioFeatures, error) {
	key := "features:" + strings.Join(ids, ",")
	out, _, err := cache.GetOrFetchWithPolicy(c.DB, cache.SpotifyTable, key, c.TTL, func() ([]*spotify.AudioFeatures, error) {
		return c.Client.AudioFeatures(ctx, ids)
	}, nonEmpty[*spotify.AudioFeatures])
	return out, err
}

// CachedDiscussion caches subreddit searches in the reddit_cache table.
type CachedDiscussion struct {
	Client DiscussionClient
	DB     *cache.CacheDB
	TTL    time.Duration
}

func (c *CachedDiscussion) SearchSubreddit(ctx context.Context, subreddit, query, sort string, limit int) ([]reddit.Post, error) {
	key := fmt.Sprintf("search:%s:%s:%s:%d", strings.ToLower(subreddit), strings.ToLower(strings.TrimSpace(query)), sort, limit)
	out, _, err := cache.GetOrFetchWithPolicy(c.DB, cache.RedditTable, key, c.TTL, func() ([]reddit.Post, error) {
		return c.Client.SearchSubreddit(ctx, subreddit, query, sort, limit)
	}, nonEmpty[reddit.Post])
	return out, err
}

// CachedVideo caches video searches and statistics in the youtube_cache table.
type CachedVideo struct {
	Client VideoClient
	DB     *cache.CacheDB
	TTL    time.Duration
}

func (c *CachedVideo) SearchVideos(ctx context.Context, query string, maxResults int) ([]youtube.SearchResult, error) {
	key := fmt.Sprintf("search:%s:%d", strings.ToLower(strings.TrimSpace(query)), maxResults)
	out, _, err := cache.GetOrFetchWithPolicy(c.DB, cache.YouTubeTable, key, c.TTL, func() ([]youtube.SearchResult, error) {
		return c.Client.SearchVideos(ctx, query, maxResults)
	}, nonEmpty[youtube.SearchResult])
	return out, err
}

func (c *CachedVideo) VideoStatistics(ctx context.Context, ids []string) (map[string]map[string]string, error) {
	key := "stats:" + strings.Join(ids, ",")
	out, _, err := cache.GetOrFetchWithPolicy(c.DB, cache.YouTubeTable, key, c.TTL, func() (map[string]map[string]string, error) {
		return c.Client.VideoStatistics(ctx, ids)
	}, func(m map[string]map[string]string) bool { return len(m) > 0 })
	return out, err
}

func nonEmpty[T any](v []T) bool {
	return len(v) > 0
}

var (
	_ CatalogClient    = (*CachedCatalog)(nil)
	_ DiscussionClient = (*CachedDiscussion)(nil)
	_ VideoClient      = (*CachedVideo)(nil)
)
