package collect

import (
	"encoding/json"
	"time"
)

// ArtistRecord is the merged output for one input artist. Artist is always
// the input name verbatim, never the name the catalog resolved it to.
type ArtistRecord struct {
	Artist      string           `json:"artist"`
	Catalog     CatalogData      `json:"catalog"`
	Discussion  []DiscussionPost `json:"discussion"`
	Video       []VideoRecord    `json:"video"`
	CollectedAt time.Time        `json:"collected_at"`
	// FailedSource is only set in isolation mode, when a source failed for
	// this artist and the record carries no data.
	FailedSource string `json:"failed_source,omitempty"`
}

// CatalogData is the catalog view of an artist. The zero value means the
// catalog had no match and serialises as {}.
type CatalogData struct {
	ArtistName string        `json:"artist_name"`
	ArtistID   string        `json:"artist_id"`
	Followers  int           `json:"followers"`
	Popularity int           `json:"popularity"`
	TopTracks  []TrackRecord `json:"top_tracks"`

	// ImageURL feeds cover downloads and is not part of the document.
	ImageURL string `json:"-"`
}

// Found reports whether the catalog resolved the artist.
func (c CatalogData) Found() bool {
	return c.ArtistID != ""
}

// MarshalJSON writes {} for a not-found artist and the full object otherwise.
func (c CatalogData) MarshalJSON() ([]byte, error) {
	if !c.Found() {
		return []byte("{}"), nil
	}
	type plain CatalogData
	p := plain(c)
	if p.TopTracks == nil {
		p.TopTracks = []TrackRecord{}
	}
	return json.Marshal(p)
}

// TrackRecord is one top track, in the catalog's popularity order.
type TrackRecord struct {
	TrackName       string         `json:"track_name"`
	TrackID         string         `json:"track_id"`
	TrackPopularity int            `json:"track_popularity"`
	PreviewURL      *string        `json:"preview_url"`
	AudioFeatures   *AudioFeatures `json:"audio_features,omitempty"`
}

// AudioFeatures always serialises all nine keys; a metric the source
// omitted is null.
type AudioFeatures struct {
	Danceability     *float64 `json:"danceability"`
	Energy           *float64 `json:"energy"`
	Speechiness      *float64 `json:"speechiness"`
	Acousticness     *float64 `json:"acousticness"`
	Instrumentalness *float64 `json:"instrumentalness"`
	Liveness         *float64 `json:"liveness"`
	Loudness         *float64 `json:"loudness"`
	Tempo            *float64 `json:"tempo"`
	Valence          *float64 `json:"valence"`
}

// DiscussionPost is a community post that matched the artist search.
type DiscussionPost struct {
	SubredditLabel string   `json:"subreddit_label"`
	Title          string   `json:"title"`
	Score          int      `json:"score"`
	NumComments    int      `json:"num_comments"`
	UpvoteRatio    *float64 `json:"upvote_ratio"`
	URL            string   `json:"url"`
	CreatedAt      float64  `json:"created_at"`
}

// VideoRecord is one video search hit joined with its statistics.
type VideoRecord struct {
	VideoID     string            `json:"video_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	PublishedAt string            `json:"published_at"`
	Statistics  map[string]string `json:"statistics"`
}
