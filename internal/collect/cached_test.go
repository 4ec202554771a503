package collect

import (
	"context"
	"testing"
	"time"

	"github.com/lepinkainen/artistpulse/internal/cache"
	"github.com/lepinkainen/artistpulse/internal/reddit"
	"github.com/lepinkainen/artistpulse/internal/testutil"
	"github.com/lepinkainen/artistpulse/internal/youtube"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestCache(t *testing.T) *cache.CacheDB {
	t.Helper()
	env := testutil.NewTestEnv(t)
	db, err := cache.Open(env.Path("cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestCachedCatalog_ServesRepeatLookupsFromCache(t *testing.T) {
	db := openTestCache(t)
	inner := drakeCatalog()
	adapter := NewCatalogAdapter(&CachedCatalog{Client: inner, DB: db, TTL: time.Hour}, "US")

	first, err := adapter.FetchCatalog(context.Background(), "Drake")
	require.NoError(t, err)
	second, err := adapter.FetchCatalog(context.Background(), "Drake")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, inner.featureCalls, 1, "second lookup is served from cache")
	assert.Nil(t, second.TopTracks[1].AudioFeatures)
	assert.Equal(t, 0.8, *second.TopTracks[0].AudioFeatures.Danceability)
}

func TestCachedCatalog_EmptySearchNotCached(t *testing.T) {
	db := openTestCache(t)
	client := &CachedCatalog{Client: drakeCatalog(), DB: db, TTL: time.Hour}

	artists, err := client.SearchArtists(context.Background(), "UnknownArtistXYZ", 1)
	require.NoError(t, err)
	assert.Empty(t, artists)
	assert.False(t, db.CacheExists(cache.SpotifyTable, "search:unknownartistxyz:1"))
}

func TestCachedDiscussion(t *testing.T) {
	db := openTestCache(t)
	inner := &fakeDiscussion{posts: map[string][]reddit.Post{
		"hiphopheads/Drake": {{Title: "a", UpvoteRatio: ptr(0.5)}},
	}}
	client := &CachedDiscussion{Client: inner, DB: db, TTL: time.Hour}

	for range 3 {
		posts, err := client.SearchSubreddit(context.Background(), "hiphopheads", "Drake", "hot", 10)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, 0.5, *posts[0].UpvoteRatio)
	}
	assert.Equal(t, 1, inner.calls)
}

func TestCachedVideo(t *testing.T) {
	db := openTestCache(t)
	inner := &fakeVideo{
		results: map[string][]youtube.SearchResult{"Drake": {{VideoID: "v1"}, {VideoID: "v2"}}},
		stats:   map[string]map[string]string{"v1": {"viewCount": "1"}},
	}
	adapter := NewVideoAdapter(&CachedVideo{Client: inner, DB: db, TTL: time.Hour})

	for range 2 {
		videos, err := adapter.FetchVideo(context.Background(), "Drake")
		require.NoError(t, err)
		require.Len(t, videos, 2)
		assert.Equal(t, "1", videos[0].Statistics["viewCount"])
		assert.Empty(t, videos[1].Statistics)
	}
	assert.Len(t, inner.statsCalls, 1)
}

func TestCachedClients_NilCachePassesThrough(t *testing.T) {
	inner := drakeCatalog()
	client := &CachedCatalog{Client: inner}

	for range 2 {
		_, err := client.AudioFeatures(context.Background(), []string{"t1"})
		require.NoError(t, err)
	}
	assert.Len(t, inner.featureCalls, 2)
}
