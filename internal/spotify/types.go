package spotify

// Artist is a single artist search hit.
type Artist struct {
	ID         string
	Name       string
	URI        string
	Followers  int
	Popularity int
	// ImageURL is the largest artist image, empty when Spotify has none.
	ImageURL string
}

// Track is one entry of an artist's top tracks.
type Track struct {
	ID         string
	Name       string
	Popularity int
	PreviewURL *string
}

// AudioFeatures holds the acoustic metrics for a track. Every metric is
// optional; Spotify omits some for short or unusual tracks.
type AudioFeatures struct {
	ID               string   `json:"id"`
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

type searchResponse struct {
	Artists struct {
		Items []struct {
			ID        string `json:"id"`
			Name      string `json:"name"`
			URI       string `json:"uri"`
			Followers struct {
				Total int `json:"total"`
			} `json:"followers"`
			Popularity int `json:"popularity"`
			Images     []struct {
				URL    string `json:"url"`
				Width  int    `json:"width"`
				Height int    `json:"height"`
			} `json:"images"`
		} `json:"items"`
	} `json:"artists"`
}

type topTracksResponse struct {
	Tracks []struct {
		ID         string  `json:"id"`
		Name       string  `json:"name"`
		Popularity int     `json:"popularity"`
		PreviewURL *string `json:"preview_url"`
	} `json:"tracks"`
}

type audioFeaturesResponse struct {
	AudioFeatures []*AudioFeatures `json:"audio_features"`
}
