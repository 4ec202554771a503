// Package datastore writes flattened collection results into tabular stores.
package datastore

import "context"

// Store defines the interface for tabular result storage
type Store interface {
	// Connect establishes a connection to the data store
	Connect(ctx context.Context) error

	// CreateTable creates the table if it doesn't exist
	CreateTable(ctx context.Context, table Table) error

	// BatchInsert inserts multiple records into the specified table
	BatchInsert(ctx context.Context, table string, records []map[string]any) error

	// Close closes the connection to the data store
	Close() error
}
