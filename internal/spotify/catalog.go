package spotify

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// maxFeatureIDs is the largest id batch /audio-features accepts.
const maxFeatureIDs = 100

// SearchArtists returns up to limit artists matching query in relevance order.
// An empty slice means nothing matched.
func (c *Client) SearchArtists(ctx context.Context, query string, limit int) ([]Artist, error) {
	if limit <= 0 {
		limit = 1
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "artist")
	params.Set("limit", strconv.Itoa(limit))

	var resp searchResponse
	if err := c.get(ctx, "/search", params, &resp); err != nil {
		return nil, err
	}

	artists := make([]Artist, 0, len(resp.Artists.Items))
	for _, item := range resp.Artists.Items {
		if len(artists) >= limit {
			break
		}
		a := Artist{
			ID:         item.ID,
			Name:       item.Name,
			URI:        item.URI,
			Followers:  item.Followers.Total,
			Popularity: item.Popularity,
		}
		// Spotify lists images widest first
		if len(item.Images) > 0 {
			a.ImageURL = item.Images[0].URL
		}
		artists = append(artists, a)
	}
	return artists, nil
}

// ArtistTopTracks returns the artist's top tracks in market, most popular first.
func (c *Client) ArtistTopTracks(ctx context.Context, artistID, market string) ([]Track, error) {
	if artistID == "" {
		return nil, fmt.Errorf("spotify: artist id is required")
	}
	if market == "" {
		market = "US"
	}

	params := url.Values{}
	params.Set("market", market)

	var resp topTracksResponse
	if err := c.get(ctx, "/artists/"+url.PathEscape(artistID)+"/top-tracks", params, &resp); err != nil {
		return nil, err
	}

	tracks := make([]Track, 0, len(resp.Tracks))
	for _, t := range resp.Tracks {
		tracks = append(tracks, Track{
			ID:         t.ID,
			Name:       t.Name,
			Popularity: t.Popularity,
			PreviewURL: t.PreviewURL,
		})
	}
	return tracks, nil
}

// AudioFeatures fetches audio features for ids. The result is index-aligned
// with ids; an entry is nil when Spotify has no features for that track.
func (c *Client) AudioFeatures(ctx context.Context, ids []string) ([]*AudioFeatures, error) {
	out := make([]*AudioFeatures, len(ids))

	for start := 0; start < len(ids); start += maxFeatureIDs {
		end := min(start+maxFeatureIDs, len(ids))

		params := url.Values{}
		params.Set("ids", strings.Join(ids[start:end], ","))

		var resp audioFeaturesResponse
		if err := c.get(ctx, "/audio-features", params, &resp); err != nil {
			return nil, err
		}

		for i, f := range resp.AudioFeatures {
			if start+i >= end {
				break
			}
			out[start+i] = f
		}
	}

	return out, nil
}
