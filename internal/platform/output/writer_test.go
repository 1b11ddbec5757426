package output

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/medicare/medicare/internal/domain/hospital"
	"github.com/medicare/medicare/internal/platform/synth"
)

func testDataset(t *testing.T) *synth.Dataset {
	t.Helper()
	cfg := synth.DefaultConfig()
	cfg.Patients = 20
	cfg.Years = 1
	cfg.Seed = 11
	ds, err := synth.Generate(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return ds
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return records
}

func TestWriter_WritesAllTables(t *testing.T) {
	ds := testDataset(t)
	dir := filepath.Join(t.TempDir(), "raw")

	summary, err := NewWriter(dir, false, zerolog.Nop()).Write(ds)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if summary.RunID == "" {
		t.Error("expected a run id")
	}

	for _, tbl := range hospital.Tables {
		records := readCSV(t, filepath.Join(dir, tbl.FileName()))
		if strings.Join(records[0], ",") != strings.Join(tbl.Header(), ",") {
			t.Errorf("%s: header mismatch: %v", tbl.Name, records[0])
		}
		if got, want := len(records)-1, summary.Rows(tbl.Name); got != want {
			t.Errorf("%s: %d data rows, summary says %d", tbl.Name, got, want)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, SummaryXLSX)); !os.IsNotExist(err) {
		t.Error("expected no spreadsheet when disabled")
	}
}

func TestWriter_ManifestRoundTrip(t *testing.T) {
	ds := testDataset(t)
	dir := filepath.Join(t.TempDir(), "raw")
	summary, err := NewWriter(dir, false, zerolog.Nop()).Write(ds)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	m, err := ReadManifest(dir)
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	if m.RunID != summary.RunID {
		t.Errorf("expected run id %s, got %s", summary.RunID, m.RunID)
	}
	if m.Config.Seed != 11 || m.Config.Patients != 20 {
		t.Errorf("unexpected config in manifest: %+v", m.Config)
	}
	if m.Summary.Rows(hospital.TableAdmissions) != len(ds.Admissions) {
		t.Errorf("expected %d admissions in manifest, got %d", len(ds.Admissions), m.Summary.Rows(hospital.TableAdmissions))
	}
}

func TestWriter_SummaryXLSX(t *testing.T) {
	ds := testDataset(t)
	dir := filepath.Join(t.TempDir(), "raw")
	if _, err := NewWriter(dir, true, zerolog.Nop()).Write(ds); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := excelize.OpenFile(filepath.Join(dir, SummaryXLSX))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(tablesSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != len(hospital.Tables)+1 {
		t.Fatalf("expected %d rows on %s, got %d", len(hospital.Tables)+1, tablesSheet, len(rows))
	}
	if rows[1][0] != hospital.TablePatients || rows[1][2] != "20" {
		t.Errorf("unexpected first table row: %v", rows[1])
	}
	cell, err := f.GetCellValue(summarySheet, "A2")
	if err != nil || cell != "Run ID" {
		t.Errorf("expected Run ID label, got %q (%v)", cell, err)
	}
}

func TestWriter_KeepsUnrelatedFiles(t *testing.T) {
	ds := testDataset(t)
	dir := filepath.Join(t.TempDir(), "raw")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	notes := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notes, []byte("keep me"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewWriter(dir, false, zerolog.Nop()).Write(ds); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(notes)
	if err != nil || string(data) != "keep me" {
		t.Errorf("expected unrelated file to survive, got %q (%v)", data, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if want := len(hospital.Tables) + 2; len(entries) != want {
		t.Errorf("expected %d entries (tables, manifest, notes), got %d", want, len(entries))
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".staging-") {
			t.Errorf("staging directory %s left behind", e.Name())
		}
	}
}

func TestWriter_ReplacesPreviousOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "raw")
	if _, err := NewWriter(dir, true, zerolog.Nop()).Write(testDataset(t)); err != nil {
		t.Fatalf("first Write: %v", err)
	}

	cfg := synth.DefaultConfig()
	cfg.Patients = 5
	cfg.Years = 1
	small, err := synth.Generate(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := NewWriter(dir, false, zerolog.Nop()).Write(small); err != nil {
		t.Fatalf("second Write: %v", err)
	}

	records := readCSV(t, filepath.Join(dir, hospital.TablePatients+".csv"))
	if len(records)-1 != 5 {
		t.Errorf("expected patients table overwritten with 5 rows, got %d", len(records)-1)
	}
	if _, err := os.Stat(filepath.Join(dir, SummaryXLSX)); !os.IsNotExist(err) {
		t.Error("expected spreadsheet from the earlier run to be removed")
	}
}

func TestWriter_CurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if _, err := NewWriter(".", false, zerolog.Nop()).Write(testDataset(t)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := ReadManifest(dir); err != nil {
		t.Errorf("expected manifest in the working directory: %v", err)
	}
}

func TestWriter_SameSeedSameBytes(t *testing.T) {
	root := t.TempDir()
	dirs := []string{filepath.Join(root, "a"), filepath.Join(root, "b")}
	for _, dir := range dirs {
		if _, err := NewWriter(dir, false, zerolog.Nop()).Write(testDataset(t)); err != nil {
			t.Fatalf("Write %s: %v", dir, err)
		}
	}
	for _, tbl := range hospital.Tables {
		a, err := os.ReadFile(filepath.Join(dirs[0], tbl.FileName()))
		if err != nil {
			t.Fatal(err)
		}
		b, err := os.ReadFile(filepath.Join(dirs[1], tbl.FileName()))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(a, b) {
			t.Errorf("%s differs between runs with the same seed", tbl.FileName())
		}
	}
}

func TestPublish_FailureLeavesNoManifest(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "raw")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	keep := filepath.Join(dir, hospital.TablePatients+".csv")
	if err := os.WriteFile(keep, []byte("patient_id\n1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	names := []string{hospital.TablePatients + ".csv", ManifestFile}
	if err := publish(filepath.Join(root, "missing-staging"), dir, names); err == nil {
		t.Fatal("expected publish of a missing staging dir to fail")
	}
	data, err := os.ReadFile(keep)
	if err != nil || string(data) != "patient_id\n1\n" {
		t.Errorf("expected previous table untouched, got %q (%v)", data, err)
	}
	if _, err := ReadManifest(dir); err == nil {
		t.Error("expected no manifest after an interrupted publish")
	}
}

func TestWriter_UnwritableParent(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	w := NewWriter(filepath.Join(blocker, "raw"), false, zerolog.Nop())
	if _, err := w.Write(testDataset(t)); err == nil {
		t.Fatal("expected error when output directory cannot be created")
	}
}

func TestSummarize(t *testing.T) {
	ds := testDataset(t)
	s := Summarize(ds)
	if s.AvgAdmissionsPerPatient < 2 || s.AvgAdmissionsPerPatient > 5 {
		t.Errorf("expected 2-5 admissions per patient, got %.2f", s.AvgAdmissionsPerPatient)
	}
	if s.AvgLengthOfStay < 1 || s.AvgLengthOfStay > 21 {
		t.Errorf("unexpected average length of stay %.2f", s.AvgLengthOfStay)
	}
	if s.FirstAdmission.After(s.LastAdmission) {
		t.Error("expected first admission before last admission")
	}
	if len(s.Tables) != len(hospital.Tables) {
		t.Errorf("expected %d table counts, got %d", len(hospital.Tables), len(s.Tables))
	}

	var b strings.Builder
	if err := s.WriteText(&b); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if !strings.Contains(b.String(), "Readmission rate") {
		t.Errorf("expected readmission rate in text summary: %s", b.String())
	}
}
