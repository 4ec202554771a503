package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lepinkainen/artistpulse/internal/cache"
	"github.com/lepinkainen/artistpulse/internal/collect"
	"github.com/lepinkainen/artistpulse/internal/config"
	"github.com/lepinkainen/artistpulse/internal/covers"
	"github.com/lepinkainen/artistpulse/internal/datastore"
	"github.com/lepinkainen/artistpulse/internal/reddit"
	"github.com/lepinkainen/artistpulse/internal/report"
	"github.com/lepinkainen/artistpulse/internal/sink"
	"github.com/lepinkainen/artistpulse/internal/spotify"
	"github.com/lepinkainen/artistpulse/internal/youtube"
)

// clientOptions lets tests point the API clients at fake servers.
type clientOptions struct {
	spotify []spotify.Option
	reddit  []reddit.Option
	youtube []youtube.Option
	now     func() time.Time
	out     io.Writer
}

func (c *CollectCmd) Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := clientOptions{out: os.Stdout}
	if c.NoSummary {
		opts.out = nil
	}
	return runCollect(ctx, cfg, opts)
}

func checkCredentials(cfg *config.Config) error {
	var errs []error
	if cfg.Spotify.ClientID == "" || cfg.Spotify.ClientSecret == "" {
		errs = append(errs, spotify.ErrMissingCredentials)
	}
	if cfg.Reddit.ClientID == "" || cfg.Reddit.ClientSecret == "" {
		errs = append(errs, reddit.ErrMissingCredentials)
	}
	if cfg.YouTube.APIKey == "" {
		errs = append(errs, youtube.ErrMissingAPIKey)
	}
	return errors.Join(errs...)
}

func runCollect(ctx context.Context, cfg *config.Config, opts clientOptions) error {
	if err := checkCredentials(cfg); err != nil {
		return err
	}

	var (
		catalogClient    collect.CatalogClient    = spotify.NewClient(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret, opts.spotify...)
		discussionClient collect.DiscussionClient = reddit.NewClient(cfg.Reddit.ClientID, cfg.Reddit.ClientSecret, cfg.Reddit.UserAgent, opts.reddit...)
		videoClient      collect.VideoClient      = youtube.NewClient(cfg.YouTube.APIKey, opts.youtube...)
	)

	if cfg.Cache.Enabled {
		cacheDB, err := cache.Open(cfg.Cache.DBFile)
		if err != nil {
			return fmt.Errorf("failed to open cache database: %w", err)
		}
		defer func() { _ = cacheDB.Close() }()

		slog.Info("Response cache enabled", "database", cfg.Cache.DBFile, "ttl", cfg.Cache.TTL)
		catalogClient = &collect.CachedCatalog{Client: catalogClient, DB: cacheDB, TTL: cfg.Cache.TTL}
		discussionClient = &collect.CachedDiscussion{Client: discussionClient, DB: cacheDB, TTL: cfg.Cache.TTL}
		videoClient = &collect.CachedVideo{Client: videoClient, DB: cacheDB, TTL: cfg.Cache.TTL}
	}

	policy := collect.PolicyHalt
	if cfg.Isolate {
		policy = collect.PolicyIsolate
	}

	aggOpts := []collect.AggregatorOption{
		collect.WithPacer(collect.NewPacer(cfg.PaceMin, cfg.PaceMax)),
		collect.WithPolicy(policy),
		collect.WithRecordHook(func(r collect.ArtistRecord) {
			slog.Debug("Collected artist", "artist", r.Artist, "found", r.Catalog.Found(),
				"posts", len(r.Discussion), "videos", len(r.Video))
		}),
	}
	if opts.now != nil {
		aggOpts = append(aggOpts, collect.WithClock(opts.now))
	}

	aggregator := collect.NewAggregator(
		collect.NewCatalogAdapter(catalogClient, cfg.Spotify.Market),
		collect.NewDiscussionAdapter(discussionClient, cfg.Reddit.Subreddits...),
		collect.NewVideoAdapter(videoClient),
		aggOpts...,
	)

	slog.Info("Starting collection", "artists", len(cfg.Artists), "policy", policy.String())
	records, err := aggregator.Run(ctx, cfg.Artists)
	if err != nil {
		return err
	}

	sinks, closeSinks, err := buildSinks(ctx, cfg, records)
	if err != nil {
		return err
	}
	defer closeSinks()

	if err := sinks.Write(ctx, records); err != nil {
		return err
	}
	slog.Info("Collection complete", "artists", len(records), "output", cfg.Output)

	if failed := collect.Failed(records); len(failed) > 0 {
		slog.Warn("Some artists failed", "count", len(failed))
	}

	if opts.out != nil {
		return report.Print(opts.out, records)
	}
	return nil
}

// buildSinks connects every configured sink. Covers are downloaded first so
// the markdown notes can embed them.
func buildSinks(ctx context.Context, cfg *config.Config, records []collect.ArtistRecord) (sink.Multi, func(), error) {
	sinks := sink.Multi{sink.NewJSONSink(cfg.Output)}
	var stores []datastore.Store
	closeAll := func() {
		for _, s := range stores {
			_ = s.Close()
		}
	}

	var coverPaths map[string]string
	if cfg.CoversDir != "" {
		coverPaths = covers.NewDownloader(cfg.CoversDir).DownloadAll(ctx, records)
	}

	if cfg.MarkdownDir != "" {
		md := sink.NewMarkdownSink(cfg.MarkdownDir)
		if coverPaths != nil {
			md.CoverPath = covers.RelativeTo(cfg.MarkdownDir, coverPaths)
		}
		sinks = append(sinks, md)
	}

	addStore := func(name string, store datastore.Store) error {
		if err := store.Connect(ctx); err != nil {
			return fmt.Errorf("%s sink: %w", name, err)
		}
		stores = append(stores, store)
		sinks = append(sinks, sink.NewStoreSink(name, store))
		return nil
	}

	if cfg.Datastore.DBFile != "" {
		if err := addStore("sqlite", datastore.NewSQLiteStore(cfg.Datastore.DBFile)); err != nil {
			closeAll()
			return nil, nil, err
		}
	}
	if cfg.Datastore.DSN != "" {
		if err := addStore("postgres", datastore.NewPostgresStore(cfg.Datastore.DSN)); err != nil {
			closeAll()
			return nil, nil, err
		}
	}
	if cfg.Datastore.DatasetteURL != "" {
		if err := addStore("datasette", datastore.NewDatasetteClient(cfg.Datastore.DatasetteURL, cfg.Datastore.DatasetteToken)); err != nil {
			closeAll()
			return nil, nil, err
		}
	}

	return sinks, closeAll, nil
}
