// Package output persists a generated dataset as one CSV file per table,
// together with a JSON manifest and an optional spreadsheet summary.
package output

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medicare/medicare/internal/domain/hospital"
	"github.com/medicare/medicare/internal/platform/synth"
)

// File names written next to the table files.
const (
	ManifestFile = "manifest.json"
	SummaryXLSX  = "summary.xlsx"
)

// Manifest records how a run was produced and what it contains.
type Manifest struct {
	RunID       string       `json:"runId"`
	GeneratedAt time.Time    `json:"generatedAt"`
	Config      synth.Config `json:"config"`
	Summary     Summary      `json:"summary"`
}

// Writer publishes datasets into Dir. All files are first written into a
// hidden staging directory inside Dir and then renamed over the previous
// files one by one. Files in Dir that the writer does not own are left
// alone. The manifest is removed before the swap and moved in last, so a set
// without a manifest is never a complete dataset.
type Writer struct {
	Dir       string
	WriteXLSX bool
	logger    zerolog.Logger
}

// NewWriter creates a Writer targeting dir.
func NewWriter(dir string, writeXLSX bool, logger zerolog.Logger) *Writer {
	return &Writer{Dir: dir, WriteXLSX: writeXLSX, logger: logger}
}

// Write serializes every table of ds and publishes the result.
func (w *Writer) Write(ds *synth.Dataset) (*Summary, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	staging, err := os.MkdirTemp(w.Dir, ".staging-")
	if err != nil {
		return nil, fmt.Errorf("create staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	for _, t := range hospital.Tables {
		rows := ds.Rows(t.Name)
		if err := writeCSV(filepath.Join(staging, t.FileName()), t.Header(), rows); err != nil {
			return nil, fmt.Errorf("write %s: %w", t.FileName(), err)
		}
		w.logger.Debug().Str("table", t.Name).Int("rows", len(rows)).Msg("table written")
	}

	summary := Summarize(ds)
	summary.RunID = uuid.New().String()
	manifest := Manifest{
		RunID:       summary.RunID,
		GeneratedAt: ds.GeneratedAt,
		Config:      ds.Config,
		Summary:     summary,
	}
	if err := writeJSON(filepath.Join(staging, ManifestFile), manifest); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}
	if w.WriteXLSX {
		if err := writeSummaryXLSX(filepath.Join(staging, SummaryXLSX), manifest); err != nil {
			return nil, fmt.Errorf("write %s: %w", SummaryXLSX, err)
		}
	}

	if err := publish(staging, w.Dir, w.files()); err != nil {
		return nil, err
	}

	w.logger.Info().
		Str("run_id", summary.RunID).
		Str("dir", w.Dir).
		Int("total_rows", summary.TotalRows).
		Msg("dataset published")
	return &summary, nil
}

// files lists the names a run owns in Dir, manifest last.
func (w *Writer) files() []string {
	names := make([]string, 0, len(hospital.Tables)+2)
	for _, t := range hospital.Tables {
		names = append(names, t.FileName())
	}
	if w.WriteXLSX {
		names = append(names, SummaryXLSX)
	}
	return append(names, ManifestFile)
}

// publish moves names from staging into dir. The old manifest goes first so
// an interrupted publish leaves no manifest behind. A spreadsheet from an
// earlier run is dropped when this run did not write one.
func publish(staging, dir string, names []string) error {
	if err := removeIfExists(filepath.Join(dir, ManifestFile)); err != nil {
		return fmt.Errorf("remove previous manifest: %w", err)
	}
	if !slices.Contains(names, SummaryXLSX) {
		if err := removeIfExists(filepath.Join(dir, SummaryXLSX)); err != nil {
			return fmt.Errorf("remove previous %s: %w", SummaryXLSX, err)
		}
	}
	for _, name := range names {
		if err := os.Rename(filepath.Join(staging, name), filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("publish %s: %w", name, err)
		}
	}
	return nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func writeCSV(path string, header []string, rows []hospital.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		f.Close()
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.Values()); err != nil {
			f.Close()
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// ReadManifest loads the manifest of a published dataset.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &m, nil
}
