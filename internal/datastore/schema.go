package datastore

import (
	"fmt"
	"sort"
	"strings"
)

// ColumnType is a portable column type, rendered per dialect.
type ColumnType int

const (
	Text ColumnType = iota
	Integer
	Real
	Timestamp
)

// Column is one column of a Table.
type Column struct {
	Name string
	Type ColumnType
}

// Table describes a result table independently of the backing database.
type Table struct {
	Name    string
	Columns []Column
}

// Dialect renders DDL and placeholders for one SQL database.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

func (d Dialect) columnType(t ColumnType) string {
	switch t {
	case Integer:
		if d == Postgres {
			return "BIGINT"
		}
		return "INTEGER"
	case Real:
		if d == Postgres {
			return "DOUBLE PRECISION"
		}
		return "REAL"
	case Timestamp:
		if d == Postgres {
			return "TIMESTAMPTZ"
		}
		return "DATETIME"
	default:
		return "TEXT"
	}
}

func (d Dialect) placeholder(i int) string {
	if d == Postgres {
		return fmt.Sprintf("$%d", i+1)
	}
	return "?"
}

// CreateTableSQL returns the CREATE TABLE IF NOT EXISTS statement for t.
func CreateTableSQL(t Table, d Dialect) string {
	defs := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		defs[i] = fmt.Sprintf("\t%s %s", c.Name, d.columnType(c.Type))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n)", t.Name, strings.Join(defs, ",\n"))
}

// InsertSQL returns an INSERT statement for the given columns.
func InsertSQL(table string, columns []string, d Dialect) string {
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = d.placeholder(i)
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)
}

// recordColumns returns the sorted column names of the first record.
func recordColumns(records []map[string]any) []string {
	columns := make([]string, 0, len(records[0]))
	for col := range records[0] {
		columns = append(columns, col)
	}
	sort.Strings(columns)
	return columns
}

func recordValues(record map[string]any, columns []string) []any {
	values := make([]any, len(columns))
	for i, col := range columns {
		values[i] = record[col]
	}
	return values
}
