package collect

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"testing"

	"github.com/lepinkainen/artistpulse/internal/errors"
	"github.com/lepinkainen/artistpulse/internal/spotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		artists: map[string][]spotify.Artist{
			"Drake": {{ID: "3TVXtAsR1Inumwj472S9r4", Name: "Drake", Followers: 90000000, Popularity: 95}},
		},
		tracks: map[string][]spotify.Track{
			"3TVXtAsR1Inumwj472S9r4": {
				{ID: "t1", Name: "God's Plan", Popularity: 88, PreviewURL: ptr("https://p.scdn.co/t1")},
				{ID: "t2", Name: "One Dance", Popularity: 86},
			},
		},
		features: map[string]*spotify.AudioFeatures{
			"t1": fullFeatures("t1"),
		},
	}
}

func TestFetchCatalog_Found(t *testing.T) {
	client := drakeCatalog()
	adapter := NewCatalogAdapter(client, "")

	data, err := adapter.FetchCatalog(context.Background(), "Drake")
	require.NoError(t, err)

	assert.True(t, data.Found())
	assert.Equal(t, "Drake", data.ArtistName)
	assert.Equal(t, 90000000, data.Followers)
	assert.Equal(t, 95, data.Popularity)
	require.Len(t, data.TopTracks, 2)
	assert.Equal(t, "God's Plan", data.TopTracks[0].TrackName)
	assert.Equal(t, "One Dance", data.TopTracks[1].TrackName)
	assert.NotNil(t, data.TopTracks[0].AudioFeatures)
	assert.Nil(t, data.TopTracks[1].AudioFeatures)
	assert.Nil(t, data.TopTracks[1].PreviewURL)

	require.Len(t, client.featureCalls, 1, "audio features are fetched in one batch")
	assert.Equal(t, []string{"t1", "t2"}, client.featureCalls[0])
}

func TestFetchCatalog_JSONShape(t *testing.T) {
	adapter := NewCatalogAdapter(drakeCatalog(), "US")

	data, err := adapter.FetchCatalog(context.Background(), "Drake")
	require.NoError(t, err)

	raw, err := json.Marshal(data)
	require.NoError(t, err)

	var decoded struct {
		TopTracks []map[string]json.RawMessage `json:"top_tracks"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded.TopTracks, 2)

	var features map[string]any
	require.NoError(t, json.Unmarshal(decoded.TopTracks[0]["audio_features"], &features))
	assert.Len(t, features, 9)

	_, hasFeatures := decoded.TopTracks[1]["audio_features"]
	assert.False(t, hasFeatures, "missing features are omitted, not null")
	assert.JSONEq(t, "null", string(decoded.TopTracks[1]["preview_url"]))
}

func TestFetchCatalog_NotFound(t *testing.T) {
	client := drakeCatalog()
	adapter := NewCatalogAdapter(client, "US")

	data, err := adapter.FetchCatalog(context.Background(), "UnknownArtistXYZ")
	require.NoError(t, err)
	assert.False(t, data.Found())
	assert.Empty(t, client.featureCalls)

	raw, err := json.Marshal(data)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(raw))
}

func TestFetchCatalog_NoTracksSkipsFeatures(t *testing.T) {
	client := &fakeCatalog{
		artists: map[string][]spotify.Artist{"Quiet": {{ID: "q", Name: "Quiet", Popularity: 140}}},
	}

	data, err := NewCatalogAdapter(client, "US").FetchCatalog(context.Background(), "Quiet")
	require.NoError(t, err)
	assert.Equal(t, 100, data.Popularity)
	assert.Empty(t, data.TopTracks)
	assert.Empty(t, client.featureCalls)

	raw, err := json.Marshal(data)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"top_tracks":[]`)
}

func TestFetchCatalog_Errors(t *testing.T) {
	boom := stdErrors.New("connection reset")

	testCases := []struct {
		name   string
		client *fakeCatalog
	}{
		{
			name:   "search fails",
			client: &fakeCatalog{err: map[string]error{"Drake": boom}},
		},
		{
			name: "top tracks fail",
			client: &fakeCatalog{
				artists: map[string][]spotify.Artist{"Drake": {{ID: "d", Name: "Drake"}}},
				err:     map[string]error{"top:d": boom},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCatalogAdapter(tc.client, "US").FetchCatalog(context.Background(), "Drake")
			require.Error(t, err)
			assert.True(t, errors.IsSourceUnavailable(err))
			assert.Equal(t, errors.SourceCatalog, errors.FailedSource(err))
			assert.ErrorIs(t, err, boom)
		})
	}
}
