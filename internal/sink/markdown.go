package sink

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/lepinkainen/artistpulse/internal/collect"
	"github.com/lepinkainen/artistpulse/internal/fileutil"
)

// MarkdownSink writes one note per artist with the headline numbers in
// YAML frontmatter.
type MarkdownSink struct {
	Dir string
	// CoverPath returns the note-relative path of an artist's cover image,
	// or "" when there is none.
	CoverPath func(artist string) string
}

// NewMarkdownSink creates a markdown sink writing into dir.
func NewMarkdownSink(dir string) *MarkdownSink {
	return &MarkdownSink{Dir: dir}
}

func (s *MarkdownSink) Name() string {
	return "markdown"
}

func (s *MarkdownSink) Write(ctx context.Context, records []collect.ArtistRecord) error {
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return err
		}

		content, err := s.render(rec)
		if err != nil {
			return fmt.Errorf("render %q: %w", rec.Artist, err)
		}

		path := fileutil.GetMarkdownFilePath(rec.Artist, s.Dir)
		if _, err := fileutil.WriteFileWithOverwrite(path, content, 0644, true); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		slog.Debug("Wrote artist note", "artist", rec.Artist, "path", path)
	}

	slog.Info("Wrote markdown notes", "dir", s.Dir, "count", len(records))
	return nil
}

func (s *MarkdownSink) render(rec collect.ArtistRecord) ([]byte, error) {
	fm := frontmatter{
		"artist":       rec.Artist,
		"collected_at": rec.CollectedAt.UTC().Format(time.RFC3339),
		"posts":        len(rec.Discussion),
		"videos":       len(rec.Video),
		"total_views":  TotalViews(rec.Video),
		"tags":         []string{"artistpulse"},
	}
	if rec.Catalog.Found() {
		fm["spotify_id"] = rec.Catalog.ArtistID
		fm["followers"] = rec.Catalog.Followers
		fm["popularity"] = rec.Catalog.Popularity
		fm["top_tracks"] = len(rec.Catalog.TopTracks)
	}
	if rec.FailedSource != "" {
		fm["failed_source"] = rec.FailedSource
		fm["tags"] = []string{"artistpulse", "artistpulse/failed"}
	}

	var body strings.Builder
	fmt.Fprintf(&body, "# %s\n\n", rec.Artist)

	if s.CoverPath != nil {
		if cover := s.CoverPath(rec.Artist); cover != "" {
			fmt.Fprintf(&body, "![](%s)\n\n", cover)
		}
	}

	if rec.FailedSource != "" {
		fmt.Fprintf(&body, ">[!warning] Collection failed\n> The %s source was unavailable for this artist.\n\n", rec.FailedSource)
	}

	if len(rec.Catalog.TopTracks) > 0 {
		body.WriteString("## Top tracks\n\n")
		for i, t := range rec.Catalog.TopTracks {
			fmt.Fprintf(&body, "%d. %s (%d)\n", i+1, t.TrackName, t.TrackPopularity)
		}
		body.WriteString("\n")
	}

	if len(rec.Discussion) > 0 {
		body.WriteString("## Discussion\n\n")
		for _, p := range rec.Discussion {
			fmt.Fprintf(&body, "- [%s](%s) r/%s, %d points, %d comments\n", p.Title, p.URL, p.SubredditLabel, p.Score, p.NumComments)
		}
		body.WriteString("\n")
	}

	if len(rec.Video) > 0 {
		body.WriteString("## Videos\n\n")
		for _, v := range rec.Video {
			views := v.Statistics["viewCount"]
			if views == "" {
				views = "?"
			}
			fmt.Fprintf(&body, "- [%s](https://www.youtube.com/watch?v=%s) %s views\n", v.Title, v.VideoID, views)
		}
		body.WriteString("\n")
	}

	return buildNote(fm, body.String())
}

// TotalViews sums the parseable viewCount statistics of videos.
func TotalViews(videos []collect.VideoRecord) int64 {
	var total int64
	for _, v := range videos {
		if n, err := strconv.ParseInt(v.Statistics["viewCount"], 10, 64); err == nil {
			total += n
		}
	}
	return total
}
