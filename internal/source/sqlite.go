package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLite pages through a table or view inside the database, so every fetch
// is a query. Rows are ordered by rowid, or by primary key for WITHOUT ROWID
// tables, or by every column for views.
type SQLite struct {
	db      *sql.DB
	path    string
	table   string
	columns []string
	pk      []string // primary key columns in key order
	orderBy string
}

// OpenSQLite opens table in the database at path.
func OpenSQLite(ctx context.Context, path, table string) (*SQLite, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=query_only(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &SQLite{db: db, path: path, table: table}
	if err := s.loadColumns(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.loadOrder(ctx); err != nil {
		db.Close()
		return nil, err
	}
	log.Printf("[INFO] [source] opened %s#%s with %d columns, ordered by %s", path, table, len(s.columns), s.orderBy)
	return s, nil
}

func (s *SQLite) loadColumns(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, "SELECT name, pk FROM pragma_table_info(?) ORDER BY cid", s.table)
	if err != nil {
		return fmt.Errorf("failed to read columns of %s: %w", s.table, err)
	}
	defer rows.Close()

	keys := map[int]string{}
	for rows.Next() {
		var name string
		var pk int
		if err := rows.Scan(&name, &pk); err != nil {
			return fmt.Errorf("failed to read columns of %s: %w", s.table, err)
		}
		s.columns = append(s.columns, name)
		if pk > 0 {
			keys[pk] = name
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read columns of %s: %w", s.table, err)
	}
	if len(s.columns) == 0 {
		return fmt.Errorf("%s: %w", s.table, ErrNoTable)
	}
	for i := 1; i <= len(keys); i++ {
		s.pk = append(s.pk, keys[i])
	}
	return nil
}

// loadOrder picks a stable row order. Views and WITHOUT ROWID tables have
// no rowid to page by.
func (s *SQLite) loadOrder(ctx context.Context) error {
	var kind string
	var ddl sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT type, sql FROM sqlite_master WHERE name = ? COLLATE NOCASE AND type IN ('table', 'view')",
		s.table).Scan(&kind, &ddl)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to read schema of %s: %w", s.table, err)
	}
	s.orderBy = orderClause(kind == "view" || withoutRowid(ddl.String), s.pk, s.columns)
	return nil
}

// orderClause returns the ORDER BY terms for a relation.
func orderClause(noRowid bool, pk, columns []string) string {
	if !noRowid {
		return "rowid"
	}
	cols := pk
	if len(cols) == 0 {
		cols = columns
	}
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdent(c)
	}
	return strings.Join(quoted, ", ")
}

// withoutRowid reports whether a CREATE TABLE statement declares a
// WITHOUT ROWID table.
func withoutRowid(ddl string) bool {
	words := strings.Fields(strings.ToUpper(ddl))
	for i := 0; i+1 < len(words); i++ {
		if words[i] == "WITHOUT" && strings.HasPrefix(words[i+1], "ROWID") {
			return true
		}
	}
	return false
}

func (s *SQLite) Name() string      { return s.path + "#" + s.table }
func (s *SQLite) Columns() []string { return s.columns }
func (s *SQLite) ServerSide() bool  { return true }
func (s *SQLite) Close() error      { return s.db.Close() }

func (s *SQLite) Count(ctx context.Context, filter string) (int, error) {
	where, args := s.where(filter)
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+quoteIdent(s.table)+where, args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", s.table, err)
	}
	return n, nil
}

func (s *SQLite) Fetch(ctx context.Context, q Query) ([][]string, error) {
	if q.Length <= 0 {
		return nil, nil
	}

	cols := make([]string, len(s.columns))
	for i, c := range s.columns {
		cols[i] = quoteIdent(c)
	}
	where, args := s.where(q.Filter)
	query := "SELECT " + strings.Join(cols, ", ") + " FROM " + quoteIdent(s.table) + where +
		" ORDER BY " + s.orderBy + " LIMIT ? OFFSET ?"
	args = append(args, q.Length, max(q.Start, 0))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", s.table, err)
	}
	defer rows.Close()

	var out [][]string
	vals := make([]any, len(s.columns))
	ptrs := make([]any, len(s.columns))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", s.table, err)
		}
		row := make([]string, len(vals))
		for i, v := range vals {
			row[i] = formatValue(v)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", s.table, err)
	}
	return out, nil
}

// where builds a clause matching filter as a substring of any column.
func (s *SQLite) where(filter string) (string, []any) {
	if filter == "" {
		return "", nil
	}
	pattern := "%" + escapeLike(filter) + "%"
	conds := make([]string, len(s.columns))
	args := make([]any, len(s.columns))
	for i, c := range s.columns {
		conds[i] = "CAST(" + quoteIdent(c) + " AS TEXT) LIKE ? ESCAPE '\\'"
		args[i] = pattern
	}
	return " WHERE " + strings.Join(conds, " OR "), args
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}
