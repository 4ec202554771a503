package cache

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// InvalidateCacheCmd represents the cache invalidate subcommand
type InvalidateCacheCmd struct {
	Source string `arg:"" help:"Cache source to invalidate: spotify, reddit, youtube" required:""`
}

func (i *InvalidateCacheCmd) Run() error {
	tableName := i.Source + "_cache"
	if !ValidCacheTableNames[tableName] {
		return fmt.Errorf("invalid cache source '%s'; valid sources are: %s", i.Source, strings.Join(validSources(), ", "))
	}

	dbPath := viper.GetString("cache.dbfile")
	slog.Info("Invalidating cache", "source", i.Source, "database", dbPath)

	cacheDB, err := Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}
	defer func() { _ = cacheDB.Close() }()

	rowsDeleted, err := cacheDB.InvalidateSource(tableName)
	if err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}

	slog.Info("Cache invalidated", "source", i.Source, "rows_deleted", rowsDeleted)
	return nil
}

func validSources() []string {
	var out []string
	for name := range ValidCacheTableNames {
		out = append(out, strings.TrimSuffix(name, "_cache"))
	}
	sort.Strings(out)
	return out
}
