package datastore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements the Store interface on a PostgreSQL pool
type PostgresStore struct {
	dsn  string
	pool *pgxpool.Pool
}

// NewPostgresStore creates a store for dsn. Connect opens the pool.
func NewPostgresStore(dsn string) *PostgresStore {
	return &PostgresStore{dsn: dsn}
}

// Connect creates the pool and pings the database
func (s *PostgresStore) Connect(ctx context.Context) error {
	pool, err := pgxpool.New(ctx, s.dsn)
	if err != nil {
		return fmt.Errorf("cannot create db pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return fmt.Errorf("cannot ping database (%s): %w", RedactDSN(s.dsn), err)
	}

	s.pool = pool
	return nil
}

func (s *PostgresStore) CreateTable(ctx context.Context, table Table) error {
	if _, err := s.pool.Exec(ctx, CreateTableSQL(table, Postgres)); err != nil {
		return fmt.Errorf("create table %s: %w", table.Name, err)
	}
	return nil
}

// BatchInsert queues every row in one pgx batch inside a transaction
func (s *PostgresStore) BatchInsert(ctx context.Context, table string, records []map[string]any) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	columns := recordColumns(records)
	query := InsertSQL(table, columns, Postgres)

	batch := &pgx.Batch{}
	for _, record := range records {
		batch.Queue(query, recordValues(record, columns)...)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}

	return tx.Commit(ctx)
}

func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// RedactDSN hides the credentials part of a connection URL.
func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	rest := dsn[start+len(marker):]
	at := strings.LastIndex(rest, "@")
	if at < 0 {
		return dsn
	}
	return dsn[:start+len(marker)] + "***" + rest[at:]
}
