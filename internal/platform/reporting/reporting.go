// Package reporting holds the read-only analytic queries behind the
// dashboard and the machinery to run them: parameter checks, a read-only
// SQL runner, result caching and per-query metrics.
package reporting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
)

var (
	// ErrQueryNotFound is returned for an ID that is not in the catalog.
	ErrQueryNotFound = errors.New("query not found")
	// ErrMissingParam is returned when a query is run with the wrong number
	// of arguments.
	ErrMissingParam = errors.New("missing query parameter")
)

// Query is one named analytic query.
type Query struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Page        string   `json:"page"`
	Description string   `json:"description,omitempty"`
	SQL         string   `json:"sql"`
	Params      []string `json:"parameters"`
}

// Row is one result row keyed by column name.
type Row = map[string]interface{}

// Result holds the rows of one query evaluation.
type Result struct {
	QueryID     string        `json:"query_id"`
	QueryName   string        `json:"query_name"`
	GeneratedAt time.Time     `json:"generated_at"`
	Duration    time.Duration `json:"duration"`
	Cached      bool          `json:"cached"`
	Rows        []Row         `json:"results"`
}

// Runner executes a SQL statement and returns its rows.
type Runner interface {
	Query(ctx context.Context, sql string, args ...any) ([]Row, error)
}

// Library runs catalog queries against a Runner.
type Library struct {
	runner  Runner
	queries map[string]*Query
	cache   *cache.Cache
	metrics *Metrics
	logger  zerolog.Logger
}

// LibraryOption configures a Library.
type LibraryOption func(*Library)

// WithCache keeps results for ttl. A zero ttl disables caching.
func WithCache(ttl time.Duration) LibraryOption {
	return func(l *Library) {
		if ttl > 0 {
			l.cache = cache.New(ttl, 2*ttl)
		}
	}
}

// WithMetrics records query counts and latencies into m.
func WithMetrics(m *Metrics) LibraryOption {
	return func(l *Library) { l.metrics = m }
}

// WithLogger sets the logger used for failed queries.
func WithLogger(logger zerolog.Logger) LibraryOption {
	return func(l *Library) { l.logger = logger }
}

// NewLibrary creates a Library over the full catalog.
func NewLibrary(runner Runner, opts ...LibraryOption) *Library {
	l := &Library{
		runner:  runner,
		queries: make(map[string]*Query, len(Catalog)),
		logger:  zerolog.Nop(),
	}
	for i := range Catalog {
		l.queries[Catalog[i].ID] = &Catalog[i]
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Queries returns the catalog, optionally restricted to one page.
func (l *Library) Queries(page string) []Query {
	out := make([]Query, 0, len(Catalog))
	for _, q := range Catalog {
		if page == "" || q.Page == page {
			out = append(out, q)
		}
	}
	return out
}

// Run evaluates query id with args bound to its parameters in order.
func (l *Library) Run(ctx context.Context, id string, args ...any) (*Result, error) {
	q, ok := l.queries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrQueryNotFound, id)
	}
	if len(args) != len(q.Params) {
		return nil, fmt.Errorf("%w: %s expects %d argument(s) (%s), got %d",
			ErrMissingParam, id, len(q.Params), strings.Join(q.Params, ", "), len(args))
	}

	key := cacheKey(id, args)
	if l.cache != nil {
		if v, found := l.cache.Get(key); found {
			res := *v.(*Result)
			res.Cached = true
			l.metrics.observe(id, statusCached, 0)
			return &res, nil
		}
	}

	start := time.Now()
	rows, err := l.runner.Query(ctx, q.SQL, args...)
	elapsed := time.Since(start)
	if err != nil {
		l.metrics.observe(id, statusError, elapsed)
		l.logger.Error().Err(err).Str("query", id).Msg("query failed")
		return nil, fmt.Errorf("run %s: %w", id, err)
	}
	l.metrics.observe(id, statusOK, elapsed)

	if rows == nil {
		rows = []Row{}
	}
	res := &Result{
		QueryID:     q.ID,
		QueryName:   q.Name,
		GeneratedAt: time.Now().UTC(),
		Duration:    elapsed,
		Rows:        rows,
	}
	if l.cache != nil {
		l.cache.SetDefault(key, res)
	}
	return res, nil
}

// Flush drops every cached result.
func (l *Library) Flush() {
	if l.cache != nil {
		l.cache.Flush()
	}
}

// cacheKey quotes each argument with its type so that distinct argument
// lists never share a key.
func cacheKey(id string, args []any) string {
	var b strings.Builder
	b.WriteString(id)
	for _, a := range args {
		fmt.Fprintf(&b, "|%T:%q", a, fmt.Sprint(a))
	}
	return b.String()
}
