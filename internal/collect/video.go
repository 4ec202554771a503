package collect

import (
	"context"
	"log/slog"

	"github.com/lepinkainen/artistpulse/internal/errors"
)

// MaxVideos caps the videos kept per artist.
const MaxVideos = 10

// VideoAdapter searches for an artist's music videos and joins their
// statistics from one batched lookup.
type VideoAdapter struct {
	client VideoClient
}

// NewVideoAdapter creates a video adapter.
func NewVideoAdapter(client VideoClient) *VideoAdapter {
	return &VideoAdapter{client: client}
}

// VideoQuery is the search text used for an artist.
func VideoQuery(name string) string {
	return name + " official music video"
}

// FetchVideo returns at most MaxVideos videos with unique ids. A video whose
// id is missing from the statistics response keeps empty statistics.
func (a *VideoAdapter) FetchVideo(ctx context.Context, name string) ([]VideoRecord, error) {
	results, err := a.client.SearchVideos(ctx, VideoQuery(name), MaxVideos)
	if err != nil {
		return nil, errors.NewSourceUnavailableError(errors.SourceVideo, name, err)
	}

	videos := make([]VideoRecord, 0, min(len(results), MaxVideos))
	ids := make([]string, 0, cap(videos))
	seen := make(map[string]bool, cap(videos))

	for _, r := range results {
		if len(videos) >= MaxVideos {
			break
		}
		if r.VideoID == "" || seen[r.VideoID] {
			continue
		}
		seen[r.VideoID] = true
		ids = append(ids, r.VideoID)
		videos = append(videos, VideoRecord{
			VideoID:     r.VideoID,
			Title:       r.Title,
			Description: r.Description,
			PublishedAt: r.PublishedAt,
			Statistics:  map[string]string{},
		})
	}

	if len(ids) == 0 {
		return videos, nil
	}

	stats, err := a.client.VideoStatistics(ctx, ids)
	if err != nil {
		return nil, errors.NewSourceUnavailableError(errors.SourceVideo, name, err)
	}

	for i := range videos {
		if s, ok := stats[videos[i].VideoID]; ok && s != nil {
			videos[i].Statistics = s
		}
	}

	slog.Debug("Fetched videos", "artist", name, "videos", len(videos), "with_stats", len(stats))
	return videos, nil
}
