package reporting

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// ErrNotReadOnly is returned for any statement other than a SELECT or WITH.
var ErrNotReadOnly = errors.New("only SELECT statements are allowed")

// SQLRunner runs queries through database/sql.
type SQLRunner struct {
	db *sql.DB
}

// NewSQLRunner wraps db.
func NewSQLRunner(db *sql.DB) *SQLRunner {
	return &SQLRunner{db: db}
}

// OpenPool exposes a pgx pool as a database/sql handle.
func OpenPool(pool *pgxpool.Pool) *SQLRunner {
	return NewSQLRunner(stdlib.OpenDBFromPool(pool))
}

// Close releases the underlying handle.
func (r *SQLRunner) Close() error {
	return r.db.Close()
}

// Query runs a read-only statement and returns its rows as maps.
func (r *SQLRunner) Query(ctx context.Context, query string, args ...any) ([]Row, error) {
	if !IsReadOnly(query) {
		return nil, ErrNotReadOnly
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(Row, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// IsReadOnly reports whether query starts with SELECT or WITH and holds a
// single statement.
func IsReadOnly(query string) bool {
	q := strings.TrimSpace(query)
	q = strings.TrimSuffix(q, ";")
	if strings.Contains(q, ";") {
		return false
	}
	fields := strings.Fields(q)
	if len(fields) == 0 {
		return false
	}
	switch strings.ToUpper(fields[0]) {
	case "SELECT", "WITH":
		return true
	}
	return false
}
