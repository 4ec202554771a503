package testutil

import (
	"testing"

	"github.com/lepinkainen/artistpulse/internal/config"
	"github.com/spf13/viper"
)

// ResetConfig resets viper to the application defaults and resets it
// again when the test completes.
func ResetConfig(t *testing.T) {
	t.Helper()

	viper.Reset()
	config.SetDefaults()

	t.Cleanup(viper.Reset)
}

// SetTestConfig sets up a test configuration with fake credentials and no pacing.
func SetTestConfig(t *testing.T) {
	t.Helper()
	SetTestConfigWithOptions(t)
}

// SetTestConfigOption is a functional option for configuring test config.
type SetTestConfigOption func(*testConfigOptions)

type testConfigOptions struct {
	artists  []string
	isolate  bool
	spotify  string
	reddit   string
	youtube  string
	noPacing bool
}

// WithArtists sets the configured artist list.
func WithArtists(names ...string) SetTestConfigOption {
	return func(o *testConfigOptions) {
		o.artists = names
	}
}

// WithIsolate sets the isolate error policy.
func WithIsolate(v bool) SetTestConfigOption {
	return func(o *testConfigOptions) {
		o.isolate = v
	}
}

// WithPacing keeps the default pacing range instead of zeroing it.
func WithPacing() SetTestConfigOption {
	return func(o *testConfigOptions) {
		o.noPacing = false
	}
}

// SetTestConfigWithOptions sets up a test configuration with custom options.
// Viper is reset when the test completes.
func SetTestConfigWithOptions(t *testing.T, opts ...SetTestConfigOption) {
	t.Helper()

	ResetConfig(t)

	options := testConfigOptions{
		artists:  []string{"Drake"},
		spotify:  "test-spotify",
		reddit:   "test-reddit",
		youtube:  "test-youtube-key",
		noPacing: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	viper.Set("artists", options.artists)
	viper.Set("isolate", options.isolate)
	viper.Set("spotify.client_id", options.spotify)
	viper.Set("spotify.client_secret", options.spotify+"-secret")
	viper.Set("reddit.client_id", options.reddit)
	viper.Set("reddit.client_secret", options.reddit+"-secret")
	viper.Set("youtube.api_key", options.youtube)
	if options.noPacing {
		viper.Set("pace.min", "0s")
		viper.Set("pace.max", "0s")
	}
}

// SetViperValue sets a viper configuration value and schedules cleanup.
func SetViperValue(t *testing.T, key string, value any) {
	t.Helper()

	oldValue := viper.Get(key)
	hadValue := viper.IsSet(key)

	viper.Set(key, value)

	t.Cleanup(func() {
		if hadValue {
			viper.Set(key, oldValue)
		}
		// Note: viper doesn't have an Unset function, so we can't
		// restore the "unset" state. This is a known limitation.
	})
}

// SetupTestCache enables the response cache inside env and returns the
// database path.
func SetupTestCache(t *testing.T, env *TestEnv) string {
	t.Helper()

	env.MkdirAll("cache")
	dbPath := env.Path("cache", "test-cache.db")

	SetViperValue(t, "cache.enabled", true)
	SetViperValue(t, "cache.dbfile", dbPath)
	SetViperValue(t, "cache.ttl", "24h")

	return dbPath
}

// SetupDatastoreDB points the sqlite datastore sink into env and returns
// the database path.
func SetupDatastoreDB(t *testing.T, env *TestEnv) string {
	t.Helper()

	dbPath := env.Path("test.db")
	SetViperValue(t, "datastore.dbfile", dbPath)

	return dbPath
}

// SetupOutput points the JSON output and markdown directory into env.
func SetupOutput(t *testing.T, env *TestEnv) string {
	t.Helper()

	out := env.Path("out.json")
	SetViperValue(t, "output", out)
	SetViperValue(t, "markdown.dir", env.Path("markdown"))

	return out
}
