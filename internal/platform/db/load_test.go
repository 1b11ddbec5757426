package db

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/medicare/medicare/internal/domain/hospital"
	"github.com/medicare/medicare/internal/platform/output"
	"github.com/medicare/medicare/internal/platform/synth"
)

func TestSchemaStatements_Order(t *testing.T) {
	stmts := SchemaStatements()
	n := len(hospital.Tables)
	if len(stmts) != 2*n {
		t.Fatalf("expected %d statements, got %d", 2*n, len(stmts))
	}
	if stmts[0] != "DROP TABLE IF EXISTS fact_care_plan_goals CASCADE" {
		t.Errorf("expected last table dropped first, got %q", stmts[0])
	}
	if !strings.HasPrefix(stmts[n], "CREATE TABLE dim_patients") {
		t.Errorf("expected first create to be dim_patients, got %q", stmts[n])
	}
}

func TestCopyStatement(t *testing.T) {
	tbl, _ := hospital.TableByName(hospital.TableDiagnoses)
	want := "COPY dim_diagnoses (diagnosis_id, icd10_code, diagnosis_name, category, severity_level) FROM STDIN WITH (FORMAT csv, HEADER true)"
	if got := CopyStatement(tbl); got != want {
		t.Errorf("unexpected copy statement:\n got %s\nwant %s", got, want)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	l := NewLoader(nil, zerolog.Nop())
	_, err := l.Load(context.Background(), t.TempDir(), "run")
	if !errors.Is(err, ErrMissingFile) {
		t.Fatalf("expected ErrMissingFile, got %v", err)
	}
}

// TestLoad_Postgres loads a small generated dataset into a real database.
// It runs only when TEST_DATABASE_URL is set.
func TestLoad_Postgres(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg := synth.DefaultConfig()
	cfg.Patients = 25
	cfg.Years = 1
	ds, err := synth.Generate(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	dir := filepath.Join(t.TempDir(), "raw")
	summary, err := output.NewWriter(dir, false, zerolog.Nop()).Write(ds)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	pool, err := NewPool(ctx, url, 4, 1)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	defer pool.Close()

	loader := NewLoader(pool, zerolog.Nop())
	res, err := loader.Load(ctx, dir, summary.RunID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Tables[hospital.TableAdmissions] != int64(len(ds.Admissions)) {
		t.Errorf("expected %d admissions loaded, got %d", len(ds.Admissions), res.Tables[hospital.TableAdmissions])
	}

	var n int
	if err := pool.QueryRow(ctx, "SELECT count(*) FROM fact_admissions WHERE is_readmission").Scan(&n); err != nil {
		t.Fatalf("count readmissions: %v", err)
	}
	want := 0
	for _, a := range ds.Admissions {
		if a.IsReadmission {
			want++
		}
	}
	if n != want {
		t.Errorf("expected %d readmissions, got %d", want, n)
	}

	loaded, err := DatasetLoaded(ctx, pool)
	if err != nil || !loaded {
		t.Errorf("expected dataset loaded, got %v (%v)", loaded, err)
	}

	history, err := loader.History(ctx)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) == 0 || history[0].RunID != summary.RunID {
		t.Errorf("expected latest load to be %s, got %+v", summary.RunID, history)
	}
}

type recordingExecer struct {
	stmts  []string
	failAt int
}

func (r *recordingExecer) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	r.stmts = append(r.stmts, sql)
	if r.failAt > 0 && len(r.stmts) == r.failAt {
		return pgconn.CommandTag{}, errors.New("boom")
	}
	return pgconn.CommandTag{}, nil
}

func TestEnsureSchema(t *testing.T) {
	rec := &recordingExecer{}
	if err := EnsureSchema(context.Background(), rec); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if len(rec.stmts) != 2*len(hospital.Tables) {
		t.Errorf("expected %d statements, got %d", 2*len(hospital.Tables), len(rec.stmts))
	}

	rec = &recordingExecer{failAt: 3}
	if err := EnsureSchema(context.Background(), rec); err == nil {
		t.Fatal("expected error")
	}
	if len(rec.stmts) != 3 {
		t.Errorf("expected to stop after failure, ran %d statements", len(rec.stmts))
	}
}
