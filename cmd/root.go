package cmd

import (
	"errors"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/lepinkainen/artistpulse/internal/cache"
	"github.com/lepinkainen/artistpulse/internal/config"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"
)

// CLI represents the complete command structure for the artistpulse application
type CLI struct {
	// Global flags
	Verbose bool `short:"v" help:"Enable debug logging"`

	// Cache flags
	CacheDBFile string `help:"Path to cache SQLite database file"`
	CacheTTL    string `help:"Cache time-to-live duration (e.g., 6h)"`

	Collect CollectCmd `cmd:"" default:"withargs" help:"Collect popularity signals for the configured artists"`
	Cache   CacheCmd   `cmd:"" help:"Manage the response cache"`
}

// CacheCmd groups the cache maintenance subcommands
type CacheCmd struct {
	Invalidate cache.InvalidateCacheCmd `cmd:"" help:"Delete every cached response of one source"`
}

// CollectCmd represents the collect command
type CollectCmd struct {
	Artist    []string `short:"a" help:"Artist to collect (repeatable, replaces the configured list)"`
	Output    string   `short:"o" help:"Path to the JSON output file"`
	PaceMin   string   `help:"Minimum delay between artists (e.g., 1s)"`
	PaceMax   string   `help:"Maximum delay between artists (e.g., 2s)"`
	Isolate   bool     `help:"Record a failing artist and continue instead of aborting the run"`
	Subreddit []string `help:"Subreddit to search (repeatable)"`
	Market    string   `help:"Market used to rank top tracks"`

	Cache          bool   `help:"Cache API responses in the cache database"`
	DB             string `help:"Also write flattened results to this SQLite database"`
	DSN            string `help:"Also write flattened results to this PostgreSQL database"`
	Datasette      string `help:"Also insert flattened results into this Datasette instance"`
	DatasetteToken string `help:"API token for the Datasette instance"`
	MarkdownDir    string `help:"Write one markdown note per artist into this directory"`
	CoversDir      string `help:"Download artist images into this directory"`
	NoSummary      bool   `help:"Do not print the summary table"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging(false)
	if err := initConfig(); err != nil {
		slog.Error("Fatal error config file", "error", err)
		os.Exit(1)
	}

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("artistpulse"),
		kong.Description("Collect artist popularity signals from Spotify, Reddit and YouTube."),
		kong.UsageOnError(),
	)

	if cli.Verbose {
		initLogging(true)
	}
	updateGlobalConfig(&cli)

	err := ctx.Run()
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() error {
	// a missing .env is normal
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	config.SetDefaults()

	viper.AutomaticEnv()
	if err := config.BindEnv(); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
		slog.Info("Config file not found, writing default config file...")
		if err := viper.SafeWriteConfig(); err != nil {
			slog.Error("Error writing config file", "error", err)
		}
	}
	return nil
}

// updateGlobalConfig copies the flags that were given onto viper, so they
// override config.yaml and the environment.
func updateGlobalConfig(cli *CLI) {
	setIf := func(key, value string) {
		if value != "" {
			viper.Set(key, value)
		}
	}

	setIf("cache.dbfile", cli.CacheDBFile)
	setIf("cache.ttl", cli.CacheTTL)

	c := &cli.Collect
	if len(c.Artist) > 0 {
		viper.Set("artists", c.Artist)
	}
	if len(c.Subreddit) > 0 {
		viper.Set("reddit.subreddits", c.Subreddit)
	}
	if c.Isolate {
		viper.Set("isolate", true)
	}
	if c.Cache {
		viper.Set("cache.enabled", true)
	}
	setIf("output", c.Output)
	setIf("pace.min", c.PaceMin)
	setIf("pace.max", c.PaceMax)
	setIf("spotify.market", c.Market)
	setIf("datastore.dbfile", c.DB)
	setIf("datastore.dsn", c.DSN)
	setIf("datastore.datasette_url", c.Datasette)
	setIf("datastore.datasette_token", c.DatasetteToken)
	setIf("markdown.dir", c.MarkdownDir)
	setIf("covers.dir", c.CoversDir)
}

func initLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: level,
	})

	slog.SetDefault(slog.New(handler))
}
