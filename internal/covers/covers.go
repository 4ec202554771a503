// Package covers downloads artist images next to the generated notes.
package covers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/lepinkainen/artistpulse/internal/collect"
	"github.com/lepinkainen/artistpulse/internal/fileutil"
	"github.com/lepinkainen/artistpulse/internal/httpjson"
)

// DefaultMaxWidth is the widest a saved cover may be.
const DefaultMaxWidth = 640

// Downloader saves resized artist images into Dir.
type Downloader struct {
	Dir      string
	MaxWidth int
	// Update re-downloads covers that already exist.
	Update bool
	HTTP   httpjson.HTTPDoer
}

// Result describes one saved cover.
type Result struct {
	Downloaded bool
	LocalPath  string
	Filename   string
}

// NewDownloader creates a downloader writing into dir.
func NewDownloader(dir string) *Downloader {
	return &Downloader{
		Dir:      dir,
		MaxWidth: DefaultMaxWidth,
		HTTP:     &http.Client{Timeout: 30 * time.Second},
	}
}

// BuildCoverFilename creates a standard cover filename for an artist.
// Returns: "Artist - cover.jpg"
func BuildCoverFilename(artist string) string {
	return fileutil.SanitizeFilename(artist) + " - cover.jpg"
}

// Download fetches imageURL, shrinks it to MaxWidth and saves it as the
// artist's cover. It returns nil for an empty URL.
func (d *Downloader) Download(ctx context.Context, artist, imageURL string) (*Result, error) {
	if imageURL == "" {
		return nil, nil
	}

	filename := BuildCoverFilename(artist)
	result := &Result{
		LocalPath: filepath.Join(d.Dir, filename),
		Filename:  filename,
	}

	if fileutil.FileExists(result.LocalPath) && !d.Update {
		slog.Debug("Cover already exists, skipping download", "path", result.LocalPath)
		return result, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := d.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download cover: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d downloading cover from %s", resp.StatusCode, imageURL)
	}

	img, err := imaging.Decode(resp.Body, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode cover: %w", err)
	}

	maxWidth := d.MaxWidth
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create covers directory: %w", err)
	}
	if err := imaging.Save(img, result.LocalPath, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("failed to save cover: %w", err)
	}

	slog.Info("Downloaded cover", "artist", artist, "path", result.LocalPath)
	result.Downloaded = true
	return result, nil
}

// DownloadAll saves a cover for every record with a catalog image and
// returns the saved paths by artist. Failures are logged and skipped.
func (d *Downloader) DownloadAll(ctx context.Context, records []collect.ArtistRecord) map[string]string {
	paths := make(map[string]string)
	for _, rec := range records {
		if ctx.Err() != nil {
			break
		}
		res, err := d.Download(ctx, rec.Artist, rec.Catalog.ImageURL)
		if err != nil {
			slog.Warn("Cover download failed", "artist", rec.Artist, "error", err)
			continue
		}
		if res != nil {
			paths[rec.Artist] = res.LocalPath
		}
	}
	return paths
}

// RelativeTo returns a lookup of cover paths relative to dir, for
// embedding in notes written there.
func RelativeTo(dir string, paths map[string]string) func(artist string) string {
	return func(artist string) string {
		p, ok := paths[artist]
		if !ok {
			return ""
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return p
		}
		return filepath.ToSlash(rel)
	}
}
