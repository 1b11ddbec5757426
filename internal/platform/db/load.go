package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/medicare/medicare/internal/domain/hospital"
)

// ErrMissingFile is returned when a table file is absent from the load
// directory.
var ErrMissingFile = errors.New("missing table file")

// LoadRecord is one completed load as kept in the _loads table.
type LoadRecord struct {
	RunID    string    `json:"runId"`
	Dir      string    `json:"dir"`
	Rows     int64     `json:"rows"`
	LoadedAt time.Time `json:"loadedAt"`
}

// LoadResult reports what a load copied.
type LoadResult struct {
	Tables   map[string]int64 `json:"tables"`
	Rows     int64            `json:"rows"`
	Duration time.Duration    `json:"duration"`
}

// Loader copies a generated dataset from CSV files into PostgreSQL.
type Loader struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewLoader creates a Loader using pool.
func NewLoader(pool *pgxpool.Pool, logger zerolog.Logger) *Loader {
	return &Loader{pool: pool, logger: logger}
}

// SchemaStatements returns the statements that recreate every table, in
// execution order: drops in reverse dependency order, then creates.
func SchemaStatements() []string {
	var stmts []string
	for i := len(hospital.Tables) - 1; i >= 0; i-- {
		stmts = append(stmts, fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", hospital.Tables[i].Name))
	}
	for _, t := range hospital.Tables {
		stmts = append(stmts, t.DDL())
	}
	return stmts
}

// Execer is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// EnsureSchema drops and recreates every dataset table.
func EnsureSchema(ctx context.Context, db Execer) error {
	for _, stmt := range SchemaStatements() {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

const loadsTableDDL = `CREATE TABLE IF NOT EXISTS _loads (
    run_id TEXT NOT NULL,
    dir TEXT NOT NULL,
    total_rows BIGINT NOT NULL,
    loaded_at TIMESTAMPTZ DEFAULT NOW()
)`

// CopyStatement returns the COPY statement used to stream a table file.
func CopyStatement(t hospital.Table) string {
	return fmt.Sprintf("COPY %s (%s) FROM STDIN WITH (FORMAT csv, HEADER true)",
		t.Name, strings.Join(t.Header(), ", "))
}

// Load replaces the dataset in the database with the files in dir. The whole
// load runs in one transaction; any failure leaves the previous data in
// place.
func (l *Loader) Load(ctx context.Context, dir, runID string) (*LoadResult, error) {
	for _, t := range hospital.Tables {
		if _, err := os.Stat(filepath.Join(dir, t.FileName())); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingFile, t.FileName())
		}
	}

	start := time.Now()
	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := EnsureSchema(ctx, tx); err != nil {
		return nil, err
	}

	result := &LoadResult{Tables: make(map[string]int64, len(hospital.Tables))}
	for _, t := range hospital.Tables {
		n, err := copyTable(ctx, tx, t, filepath.Join(dir, t.FileName()))
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", t.Name, err)
		}
		result.Tables[t.Name] = n
		result.Rows += n
		l.logger.Info().Str("table", t.Name).Int64("rows", n).Msg("table loaded")
	}

	if _, err := tx.Exec(ctx, loadsTableDDL); err != nil {
		return nil, fmt.Errorf("create _loads table: %w", err)
	}
	if _, err := tx.Exec(ctx,
		"INSERT INTO _loads (run_id, dir, total_rows) VALUES ($1, $2, $3)",
		runID, dir, result.Rows,
	); err != nil {
		return nil, fmt.Errorf("record load: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit load: %w", err)
	}
	result.Duration = time.Since(start)
	return result, nil
}

func copyTable(ctx context.Context, tx pgx.Tx, t hospital.Table, path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	tag, err := tx.Conn().PgConn().CopyFrom(ctx, f, CopyStatement(t))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// History returns completed loads, most recent first.
func (l *Loader) History(ctx context.Context) ([]LoadRecord, error) {
	if _, err := l.pool.Exec(ctx, loadsTableDDL); err != nil {
		return nil, fmt.Errorf("create _loads table: %w", err)
	}
	rows, err := l.pool.Query(ctx, "SELECT run_id, dir, total_rows, loaded_at FROM _loads ORDER BY loaded_at DESC")
	if err != nil {
		return nil, fmt.Errorf("query load history: %w", err)
	}
	defer rows.Close()

	var out []LoadRecord
	for rows.Next() {
		var r LoadRecord
		if err := rows.Scan(&r.RunID, &r.Dir, &r.Rows, &r.LoadedAt); err != nil {
			return nil, fmt.Errorf("scan load record: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate load history: %w", err)
	}
	return out, nil
}
