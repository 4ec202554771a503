package collect

import (
	"context"
	"log/slog"

	"github.com/lepinkainen/artistpulse/internal/errors"
	"github.com/lepinkainen/artistpulse/internal/spotify"
)

// DefaultMarket is the market top tracks are ranked in.
const DefaultMarket = "US"

// CatalogAdapter resolves an artist name against the catalog and collects
// its top tracks with audio features.
type CatalogAdapter struct {
	client CatalogClient
	market string
}

// NewCatalogAdapter creates a catalog adapter ranking top tracks in market.
func NewCatalogAdapter(client CatalogClient, market string) *CatalogAdapter {
	if market == "" {
		market = DefaultMarket
	}
	return &CatalogAdapter{client: client, market: market}
}

// FetchCatalog returns the catalog data for name. A name with no match
// yields the zero CatalogData and a nil error.
func (a *CatalogAdapter) FetchCatalog(ctx context.Context, name string) (CatalogData, error) {
	artists, err := a.client.SearchArtists(ctx, name, 1)
	if err != nil {
		return CatalogData{}, errors.NewSourceUnavailableError(errors.SourceCatalog, name, err)
	}
	if len(artists) == 0 {
		slog.Debug("No catalog match", "artist", name)
		return CatalogData{}, nil
	}

	artist := artists[0]
	data := CatalogData{
		ArtistName: artist.Name,
		ArtistID:   artist.ID,
		Followers:  max(artist.Followers, 0),
		Popularity: clampPopularity(artist.Popularity),
		ImageURL:   artist.ImageURL,
		TopTracks:  []TrackRecord{},
	}

	tracks, err := a.client.ArtistTopTracks(ctx, artist.ID, a.market)
	if err != nil {
		return CatalogData{}, errors.NewSourceUnavailableError(errors.SourceCatalog, name, err)
	}
	if len(tracks) == 0 {
		return data, nil
	}

	ids := make([]string, len(tracks))
	for i, t := range tracks {
		ids[i] = t.ID
	}

	features, err := a.client.AudioFeatures(ctx, ids)
	if err != nil {
		return CatalogData{}, errors.NewSourceUnavailableError(errors.SourceCatalog, name, err)
	}

	for i, t := range tracks {
		rec := TrackRecord{
			TrackName:       t.Name,
			TrackID:         t.ID,
			TrackPopularity: clampPopularity(t.Popularity),
			PreviewURL:      t.PreviewURL,
		}
		if i < len(features) {
			rec.AudioFeatures = convertFeatures(features[i])
		}
		data.TopTracks = append(data.TopTracks, rec)
	}

	slog.Debug("Fetched catalog data", "artist", name, "resolved", artist.Name, "tracks", len(data.TopTracks))
	return data, nil
}

func convertFeatures(f *spotify.AudioFeatures) *AudioFeatures {
	if f == nil {
		return nil
	}
	return &AudioFeatures{
		Danceability:     f.Danceability,
		Energy:           f.Energy,
		Speechiness:      f.Speechiness,
		Acousticness:     f.Acousticness,
		Instrumentalness: f.Instrumentalness,
		Liveness:         f.Liveness,
		Loudness:         f.Loudness,
		Tempo:            f.Tempo,
		Valence:          f.Valence,
	}
}

func clampPopularity(p int) int {
	return min(max(p, 0), 100)
}
