// Package collect fetches per-artist signals from the catalog, discussion
// and video sources and merges them into one ArtistRecord per artist.
package collect

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lepinkainen/artistpulse/internal/errors"
)

// ErrorPolicy decides what the aggregator does when a source fails.
type ErrorPolicy int

const (
	// PolicyHalt aborts the whole run on the first source failure.
	PolicyHalt ErrorPolicy = iota
	// PolicyIsolate records the failing artist with a failure marker and
	// continues with the next artist.
	PolicyIsolate
)

func (p ErrorPolicy) String() string {
	switch p {
	case PolicyIsolate:
		return "isolate"
	default:
		return "halt"
	}
}

// Aggregator drives the adapters over an ordered artist list.
type Aggregator struct {
	catalog    *CatalogAdapter
	discussion *DiscussionAdapter
	video      *VideoAdapter

	pacer  *Pacer
	policy ErrorPolicy
	now    func() time.Time
	// onRecord is called with every completed record, in input order.
	onRecord func(ArtistRecord)
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithPacer sets the delay policy used between artists.
func WithPacer(p *Pacer) AggregatorOption {
	return func(a *Aggregator) {
		if p != nil {
			a.pacer = p
		}
	}
}

// WithPolicy sets the error policy.
func WithPolicy(policy ErrorPolicy) AggregatorOption {
	return func(a *Aggregator) {
		a.policy = policy
	}
}

// WithClock sets the clock used for collected_at.
func WithClock(now func() time.Time) AggregatorOption {
	return func(a *Aggregator) {
		if now != nil {
			a.now = now
		}
	}
}

// WithRecordHook registers fn to observe each record as it completes.
func WithRecordHook(fn func(ArtistRecord)) AggregatorOption {
	return func(a *Aggregator) {
		a.onRecord = fn
	}
}

// NewAggregator creates an aggregator over the three adapters. The default
// pacing is 1–2 seconds and the default policy is PolicyHalt.
func NewAggregator(catalog *CatalogAdapter, discussion *DiscussionAdapter, video *VideoAdapter, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		catalog:    catalog,
		discussion: discussion,
		video:      video,
		pacer:      NewPacer(time.Second, 2*time.Second),
		policy:     PolicyHalt,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run collects one record per name, in input order. Under PolicyHalt the
// first source failure stops the run and no records are returned.
func (a *Aggregator) Run(ctx context.Context, names []string) ([]ArtistRecord, error) {
	records := make([]ArtistRecord, 0, len(names))

	for i, name := range names {
		slog.Info("Fetching data for artist", "artist", name, "index", i+1, "total", len(names))

		rec, err := a.collectOne(ctx, name)
		if err != nil {
			source := errors.FailedSource(err)
			slog.Error("Failed to fetch artist data", "artist", name, "source", source, "error", err)

			if a.policy != PolicyIsolate || !errors.IsSourceUnavailable(err) {
				return nil, fmt.Errorf("collect %q: %w", name, err)
			}
			rec = failedRecord(name, source, a.now())
		}

		records = append(records, rec)
		if a.onRecord != nil {
			a.onRecord(rec)
		}

		if i < len(names)-1 {
			if err := a.pacer.Wait(ctx); err != nil {
				return nil, fmt.Errorf("pacing after %q: %w", name, err)
			}
		}
	}

	return records, nil
}

func (a *Aggregator) collectOne(ctx context.Context, name string) (ArtistRecord, error) {
	if err := ctx.Err(); err != nil {
		return ArtistRecord{}, err
	}

	catalog, err := a.catalog.FetchCatalog(ctx, name)
	if err != nil {
		return ArtistRecord{}, err
	}

	discussion, err := a.discussion.FetchDiscussion(ctx, name)
	if err != nil {
		return ArtistRecord{}, err
	}

	video, err := a.video.FetchVideo(ctx, name)
	if err != nil {
		return ArtistRecord{}, err
	}

	return ArtistRecord{
		Artist:      name,
		Catalog:     catalog,
		Discussion:  discussion,
		Video:       video,
		CollectedAt: a.now().UTC().Truncate(time.Second),
	}, nil
}

func failedRecord(name, source string, at time.Time) ArtistRecord {
	return ArtistRecord{
		Artist:       name,
		Discussion:   []DiscussionPost{},
		Video:        []VideoRecord{},
		CollectedAt:  at.UTC().Truncate(time.Second),
		FailedSource: source,
	}
}

// Failed returns the records that carry a failure marker.
func Failed(records []ArtistRecord) []ArtistRecord {
	var out []ArtistRecord
	for _, r := range records {
		if r.FailedSource != "" {
			out = append(out, r)
		}
	}
	return out
}
