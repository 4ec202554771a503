package cache

// All cache tables share one layout keyed by "cache_key".

// SpotifyCacheSchema caches catalog search, top-track and audio-feature responses
const SpotifyCacheSchema = `
CREATE TABLE IF NOT EXISTS spotify_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_spotify_cached_at ON spotify_cache(cached_at);
`

// RedditCacheSchema caches subreddit search listings
const RedditCacheSchema = `
CREATE TABLE IF NOT EXISTS reddit_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_reddit_cached_at ON reddit_cache(cached_at);
`

// YouTubeCacheSchema caches video search and statistics responses
const YouTubeCacheSchema = `
CREATE TABLE IF NOT EXISTS youtube_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_youtube_cached_at ON youtube_cache(cached_at);
`

// Table names, one per source.
const (
	SpotifyTable = "spotify_cache"
	RedditTable  = "reddit_cache"
	YouTubeTable = "youtube_cache"
)

// AllCacheSchemas contains all cache table schemas for easy initialization
var AllCacheSchemas = []string{
	SpotifyCacheSchema,
	RedditCacheSchema,
	YouTubeCacheSchema,
}

// ValidCacheTableNames is the whitelist of allowed cache table names
var ValidCacheTableNames = map[string]bool{
	SpotifyTable: true,
	RedditTable:  true,
	YouTubeTable: true,
}
