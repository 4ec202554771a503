// Package config turns the viper configuration into a typed snapshot.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultArtists is the artist list used when none is configured.
var DefaultArtists = []string{
	"Eminem", "Drake", "Kendrick Lamar", "J. Cole", "Nicki Minaj", "Cardi B",
	"Travis Scott", "Migos", "Post Malone", "Lil Wayne", "Future", "Meek Mill",
}

const (
	DefaultOutput    = "aggregated_hiphop_data.json"
	DefaultMarket    = "US"
	DefaultSubreddit = "hiphopheads"
	DefaultUserAgent = "artistpulse/0.1"
	DefaultCacheFile = "cache.db"
	DefaultCacheTTL  = 6 * time.Hour
	DefaultPaceMin   = time.Second
	DefaultPaceMax   = 2 * time.Second
)

// SpotifyConfig holds catalog credentials.
type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
	Market       string
}

// RedditConfig holds discussion credentials and the subreddits to search.
type RedditConfig struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
	Subreddits   []string
}

// YouTubeConfig holds the video API key.
type YouTubeConfig struct {
	APIKey string
}

// CacheConfig controls the optional response cache.
type CacheConfig struct {
	Enabled bool
	DBFile  string
	TTL     time.Duration
}

// DatastoreConfig selects the optional tabular sinks.
type DatastoreConfig struct {
	DBFile         string
	DSN            string
	DatasetteURL   string
	DatasetteToken string
}

// Config is one run's configuration.
type Config struct {
	Spotify   SpotifyConfig
	Reddit    RedditConfig
	YouTube   YouTubeConfig
	Artists   []string
	Output    string
	PaceMin   time.Duration
	PaceMax   time.Duration
	Isolate   bool
	Cache     CacheConfig
	Datastore DatastoreConfig

	MarkdownDir string
	CoversDir   string
}

// SetDefaults registers default values on viper.
func SetDefaults() {
	viper.SetDefault("spotify.market", DefaultMarket)
	viper.SetDefault("reddit.user_agent", DefaultUserAgent)
	viper.SetDefault("reddit.subreddits", []string{DefaultSubreddit})
	viper.SetDefault("artists", DefaultArtists)
	viper.SetDefault("output", DefaultOutput)
	viper.SetDefault("pace.min", DefaultPaceMin)
	viper.SetDefault("pace.max", DefaultPaceMax)
	viper.SetDefault("isolate", false)
	viper.SetDefault("cache.enabled", false)
	viper.SetDefault("cache.dbfile", DefaultCacheFile)
	viper.SetDefault("cache.ttl", DefaultCacheTTL.String())
}

// BindEnv maps the secrets to their conventional environment variable names.
func BindEnv() error {
	bindings := map[string]string{
		"spotify.client_id":         "SPOTIFY_CLIENT_ID",
		"spotify.client_secret":     "SPOTIFY_CLIENT_SECRET",
		"reddit.client_id":          "REDDIT_CLIENT_ID",
		"reddit.client_secret":      "REDDIT_CLIENT_SECRET",
		"reddit.user_agent":         "REDDIT_USER_AGENT",
		"youtube.api_key":           "YOUTUBE_API_KEY",
		"datastore.dsn":             "DATABASE_URL",
		"datastore.datasette_token": "DATASETTE_TOKEN",
	}
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s: %w", key, err)
		}
	}
	return nil
}

// Load reads the current viper state into a Config and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Spotify: SpotifyConfig{
			ClientID:     viper.GetString("spotify.client_id"),
			ClientSecret: viper.GetString("spotify.client_secret"),
			Market:       viper.GetString("spotify.market"),
		},
		Reddit: RedditConfig{
			ClientID:     viper.GetString("reddit.client_id"),
			ClientSecret: viper.GetString("reddit.client_secret"),
			UserAgent:    viper.GetString("reddit.user_agent"),
			Subreddits:   cleanList(viper.GetStringSlice("reddit.subreddits")),
		},
		YouTube: YouTubeConfig{
			APIKey: viper.GetString("youtube.api_key"),
		},
		Artists: viper.GetStringSlice("artists"),
		Output:  viper.GetString("output"),
		PaceMin: viper.GetDuration("pace.min"),
		PaceMax: viper.GetDuration("pace.max"),
		Isolate: viper.GetBool("isolate"),
		Cache: CacheConfig{
			Enabled: viper.GetBool("cache.enabled"),
			DBFile:  viper.GetString("cache.dbfile"),
			TTL:     viper.GetDuration("cache.ttl"),
		},
		Datastore: DatastoreConfig{
			DBFile:         viper.GetString("datastore.dbfile"),
			DSN:            viper.GetString("datastore.dsn"),
			DatasetteURL:   viper.GetString("datastore.datasette_url"),
			DatasetteToken: viper.GetString("datastore.datasette_token"),
		},
		MarkdownDir: viper.GetString("markdown.dir"),
		CoversDir:   viper.GetString("covers.dir"),
	}

	if cfg.Spotify.Market == "" {
		cfg.Spotify.Market = DefaultMarket
	}
	if len(cfg.Reddit.Subreddits) == 0 {
		cfg.Reddit.Subreddits = []string{DefaultSubreddit}
	}
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	if cfg.Cache.TTL <= 0 {
		cfg.Cache.TTL = DefaultCacheTTL
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values Load cannot default.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Artists) == 0 {
		errs = append(errs, errors.New("no artists configured"))
	}
	if c.PaceMin < 0 || c.PaceMax < 0 {
		errs = append(errs, errors.New("pace durations must not be negative"))
	}
	if c.PaceMax < c.PaceMin {
		errs = append(errs, fmt.Errorf("pace.max (%s) is below pace.min (%s)", c.PaceMax, c.PaceMin))
	}
	return errors.Join(errs...)
}

func cleanList(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
