package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoad_Defaults(t *testing.T) {
	resetViper(t)
	SetDefaults()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultArtists, cfg.Artists)
	assert.Equal(t, "aggregated_hiphop_data.json", cfg.Output)
	assert.Equal(t, "US", cfg.Spotify.Market)
	assert.Equal(t, []string{"hiphopheads"}, cfg.Reddit.Subreddits)
	assert.Equal(t, time.Second, cfg.PaceMin)
	assert.Equal(t, 2*time.Second, cfg.PaceMax)
	assert.False(t, cfg.Isolate)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 6*time.Hour, cfg.Cache.TTL)
}

func TestLoad_Overrides(t *testing.T) {
	resetViper(t)
	SetDefaults()

	viper.Set("artists", []string{"Drake"})
	viper.Set("reddit.subreddits", []string{"hiphopheads", " ", "rap"})
	viper.Set("pace.min", "0s")
	viper.Set("pace.max", "0s")
	viper.Set("isolate", true)
	viper.Set("cache.ttl", "30m")
	viper.Set("datastore.dsn", "postgres://localhost/pulse")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"Drake"}, cfg.Artists)
	assert.Equal(t, []string{"hiphopheads", "rap"}, cfg.Reddit.Subreddits)
	assert.Zero(t, cfg.PaceMin)
	assert.Zero(t, cfg.PaceMax)
	assert.True(t, cfg.Isolate)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "postgres://localhost/pulse", cfg.Datastore.DSN)
}

func TestLoad_EnvSecrets(t *testing.T) {
	resetViper(t)
	SetDefaults()
	t.Setenv("SPOTIFY_CLIENT_ID", "sid")
	t.Setenv("YOUTUBE_API_KEY", "ykey")
	require.NoError(t, BindEnv())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sid", cfg.Spotify.ClientID)
	assert.Equal(t, "ykey", cfg.YouTube.APIKey)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "ok", cfg: Config{Artists: []string{"A"}, PaceMin: time.Second, PaceMax: time.Second}},
		{name: "no artists", cfg: Config{}, wantErr: "no artists"},
		{name: "inverted pace", cfg: Config{Artists: []string{"A"}, PaceMin: 2 * time.Second, PaceMax: time.Second}, wantErr: "below pace.min"},
		{name: "negative pace", cfg: Config{Artists: []string{"A"}, PaceMin: -time.Second}, wantErr: "negative"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
