// Package source provides the record sets the grid pages through.
package source

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnknownSource is returned by Open for a spec it cannot resolve.
	ErrUnknownSource = errors.New("unknown source")
	// ErrNoTable is returned when a SQLite source names a missing table.
	ErrNoTable = errors.New("table not found")
)

// Query selects a window of the filtered records.
type Query struct {
	Filter string
	Start  int
	Length int
}

// Source is a paginated record set.
type Source interface {
	Name() string
	Columns() []string

	// ServerSide reports whether each fetch goes to an external store.
	ServerSide() bool

	// Count returns the number of records matching filter.
	Count(ctx context.Context, filter string) (int, error)

	// Fetch returns up to q.Length rows starting at q.Start of the
	// filtered records. Each row has one cell per column.
	Fetch(ctx context.Context, q Query) ([][]string, error)

	Close() error
}

// Open resolves a source spec:
//
//	csv:<path>             CSV file with a header row
//	sqlite:<path>#<table>  SQLite table, paginated in the database
//	docker[:all]           Docker containers (running, or all)
//	seq:<n>                n synthetic rows
//
// A bare path ending in .csv is treated as csv:<path>.
func Open(ctx context.Context, spec string) (Source, error) {
	kind, arg, _ := strings.Cut(spec, ":")
	if strings.HasSuffix(strings.ToLower(spec), ".csv") && kind != "csv" {
		kind, arg = "csv", spec
	}

	switch kind {
	case "csv":
		if arg == "" {
			return nil, fmt.Errorf("csv source needs a path: %w", ErrUnknownSource)
		}
		return OpenCSV(arg)
	case "sqlite":
		path, table, ok := strings.Cut(arg, "#")
		if !ok || path == "" || table == "" {
			return nil, fmt.Errorf("sqlite source must be sqlite:<path>#<table>: %w", ErrUnknownSource)
		}
		return OpenSQLite(ctx, path, table)
	case "docker":
		return OpenDocker(ctx, arg == "all")
	case "seq":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("seq source needs a non-negative count, got %q: %w", arg, ErrUnknownSource)
		}
		return NewSequence(n), nil
	default:
		return nil, fmt.Errorf("%q: %w", spec, ErrUnknownSource)
	}
}
