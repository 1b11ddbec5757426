package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/medicare/medicare/internal/domain/hospital"
)

const (
	summarySheet = "Summary"
	tablesSheet  = "Tables"
)

// writeSummaryXLSX writes the run summary as a two sheet workbook: run
// statistics and per-table row counts.
func writeSummaryXLSX(path string, m Manifest) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(tablesSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	s := m.Summary
	summary := [][]any{
		{"Metric", "Value"},
		{"Run ID", m.RunID},
		{"Generated at", m.GeneratedAt.Format(hospital.TimestampLayout)},
		{"Seed", m.Config.Seed},
		{"Patients", m.Config.Patients},
		{"Years", m.Config.Years},
		{"Start date", m.Config.Start.Format(hospital.DateLayout)},
		{"First admission", s.FirstAdmission.Format(hospital.DateLayout)},
		{"Last admission", s.LastAdmission.Format(hospital.DateLayout)},
		{"Avg admissions per patient", s.AvgAdmissionsPerPatient},
		{"Avg length of stay (days)", s.AvgLengthOfStay},
		{"Readmission rate (%)", s.ReadmissionRatePct},
		{"Total rows", s.TotalRows},
	}
	if err := fillSheet(f, summarySheet, summary, headerStyle); err != nil {
		return err
	}

	tables := [][]any{{"Table", "File", "Rows"}}
	for _, t := range s.Tables {
		tables = append(tables, []any{t.Table, t.File, t.Rows})
	}
	if err := fillSheet(f, tablesSheet, tables, headerStyle); err != nil {
		return err
	}

	if err := f.SetColWidth(summarySheet, "A", "B", 30); err != nil {
		return err
	}
	if err := f.SetColWidth(tablesSheet, "A", "B", 34); err != nil {
		return err
	}
	return f.SaveAs(path)
}

// fillSheet writes rows starting at A1 and styles the first row.
func fillSheet(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, r+1, err)
		}
	}
	if len(rows) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, headerStyle)
}
