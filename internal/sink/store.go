package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/lepinkainen/artistpulse/internal/collect"
	"github.com/lepinkainen/artistpulse/internal/datastore"
)

// StoreSink flattens records into the artists, tracks, posts and videos
// tables of a datastore.Store. The store must already be connected.
type StoreSink struct {
	name  string
	store datastore.Store
}

// NewStoreSink creates a sink over store; name labels it in logs and errors.
func NewStoreSink(name string, store datastore.Store) *StoreSink {
	return &StoreSink{name: name, store: store}
}

func (s *StoreSink) Name() string {
	return s.name
}

func (s *StoreSink) Write(ctx context.Context, records []collect.ArtistRecord) error {
	for _, table := range datastore.ResultTables {
		if err := s.store.CreateTable(ctx, table); err != nil {
			return err
		}
	}

	rows, err := Flatten(records)
	if err != nil {
		return err
	}

	for _, table := range datastore.ResultTables {
		if err := s.store.BatchInsert(ctx, table.Name, rows[table.Name]); err != nil {
			return fmt.Errorf("insert %s: %w", table.Name, err)
		}
		slog.Debug("Inserted rows", "sink", s.name, "table", table.Name, "rows", len(rows[table.Name]))
	}

	slog.Info("Stored records", "sink", s.name, "artists", len(rows[datastore.ArtistsTable.Name]))
	return nil
}

// Flatten turns records into rows keyed by table name.
func Flatten(records []collect.ArtistRecord) (map[string][]map[string]any, error) {
	out := map[string][]map[string]any{}

	for _, rec := range records {
		at := rec.CollectedAt.UTC()

		out[datastore.ArtistsTable.Name] = append(out[datastore.ArtistsTable.Name], map[string]any{
			"artist":        rec.Artist,
			"artist_id":     nullString(rec.Catalog.ArtistID),
			"artist_name":   nullString(rec.Catalog.ArtistName),
			"followers":     rec.Catalog.Followers,
			"popularity":    rec.Catalog.Popularity,
			"track_count":   len(rec.Catalog.TopTracks),
			"post_count":    len(rec.Discussion),
			"video_count":   len(rec.Video),
			"failed_source": nullString(rec.FailedSource),
			"collected_at":  at,
		})

		for i, t := range rec.Catalog.TopTracks {
			row := map[string]any{
				"artist":           rec.Artist,
				"position":         i + 1,
				"track_id":         t.TrackID,
				"track_name":       t.TrackName,
				"track_popularity": t.TrackPopularity,
				"preview_url":      nullable(t.PreviewURL),
				"collected_at":     at,
			}
			f := t.AudioFeatures
			if f == nil {
				f = &collect.AudioFeatures{}
			}
			row["danceability"] = nullable(f.Danceability)
			row["energy"] = nullable(f.Energy)
			row["speechiness"] = nullable(f.Speechiness)
			row["acousticness"] = nullable(f.Acousticness)
			row["instrumentalness"] = nullable(f.Instrumentalness)
			row["liveness"] = nullable(f.Liveness)
			row["loudness"] = nullable(f.Loudness)
			row["tempo"] = nullable(f.Tempo)
			row["valence"] = nullable(f.Valence)
			out[datastore.TracksTable.Name] = append(out[datastore.TracksTable.Name], row)
		}

		for _, p := range rec.Discussion {
			out[datastore.PostsTable.Name] = append(out[datastore.PostsTable.Name], map[string]any{
				"artist":          rec.Artist,
				"subreddit_label": p.SubredditLabel,
				"title":           p.Title,
				"score":           p.Score,
				"num_comments":    p.NumComments,
				"upvote_ratio":    nullable(p.UpvoteRatio),
				"url":             p.URL,
				"created_at":      p.CreatedAt,
				"collected_at":    at,
			})
		}

		for _, v := range rec.Video {
			stats, err := json.Marshal(v.Statistics)
			if err != nil {
				return nil, fmt.Errorf("encode statistics for %s: %w", v.VideoID, err)
			}
			out[datastore.VideosTable.Name] = append(out[datastore.VideosTable.Name], map[string]any{
				"artist":        rec.Artist,
				"video_id":      v.VideoID,
				"title":         v.Title,
				"description":   v.Description,
				"published_at":  v.PublishedAt,
				"view_count":    statInt(v.Statistics, "viewCount"),
				"like_count":    statInt(v.Statistics, "likeCount"),
				"comment_count": statInt(v.Statistics, "commentCount"),
				"statistics":    string(stats),
				"collected_at":  at,
			})
		}
	}

	return out, nil
}

// nullable unwraps p so drivers see an untyped nil for SQL NULL.
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func statInt(stats map[string]string, key string) any {
	n, err := strconv.ParseInt(stats[key], 10, 64)
	if err != nil {
		return nil
	}
	return n
}
