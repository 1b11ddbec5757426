package output

import (
	"fmt"
	"io"
	"time"

	"github.com/medicare/medicare/internal/domain/hospital"
	"github.com/medicare/medicare/internal/platform/synth"
)

// TableCount is the row count of one written table.
type TableCount struct {
	Table string `json:"table"`
	File  string `json:"file"`
	Rows  int    `json:"rows"`
}

// Summary describes a generated dataset.
type Summary struct {
	RunID                   string        `json:"runId"`
	Tables                  []TableCount  `json:"tables"`
	TotalRows               int           `json:"totalRows"`
	FirstAdmission          time.Time     `json:"firstAdmission"`
	LastAdmission           time.Time     `json:"lastAdmission"`
	AvgAdmissionsPerPatient float64       `json:"avgAdmissionsPerPatient"`
	AvgLengthOfStay         float64       `json:"avgLengthOfStay"`
	ReadmissionRatePct      float64       `json:"readmissionRatePct"`
	Duration                time.Duration `json:"duration"`
}

// Summarize computes the summary statistics of a dataset.
func Summarize(ds *synth.Dataset) Summary {
	s := Summary{Duration: ds.Duration}
	counts := ds.Counts()
	for _, t := range hospital.Tables {
		s.Tables = append(s.Tables, TableCount{Table: t.Name, File: t.FileName(), Rows: counts[t.Name]})
		s.TotalRows += counts[t.Name]
	}

	n := len(ds.Admissions)
	if n == 0 {
		return s
	}
	var los, readmissions int
	s.FirstAdmission = ds.Admissions[0].Admitted
	s.LastAdmission = ds.Admissions[0].Admitted
	for _, a := range ds.Admissions {
		los += a.LengthOfStay
		if a.IsReadmission {
			readmissions++
		}
		if a.Admitted.Before(s.FirstAdmission) {
			s.FirstAdmission = a.Admitted
		}
		if a.Admitted.After(s.LastAdmission) {
			s.LastAdmission = a.Admitted
		}
	}
	s.AvgLengthOfStay = float64(los) / float64(n)
	s.ReadmissionRatePct = float64(readmissions) / float64(n) * 100
	if len(ds.Patients) > 0 {
		s.AvgAdmissionsPerPatient = float64(n) / float64(len(ds.Patients))
	}
	return s
}

// Rows returns the row count of the named table.
func (s Summary) Rows(table string) int {
	for _, t := range s.Tables {
		if t.Table == table {
			return t.Rows
		}
	}
	return 0
}

// WriteText prints the summary in a human readable form.
func (s Summary) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Run %s\n\n", s.RunID); err != nil {
		return err
	}
	for _, t := range s.Tables {
		if _, err := fmt.Fprintf(w, "  %-34s %10d rows\n", t.File, t.Rows); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n"+
		"  Total rows:                 %d\n"+
		"  Admission date range:       %s to %s\n"+
		"  Avg admissions per patient: %.2f\n"+
		"  Avg length of stay:         %.2f days\n"+
		"  Readmission rate:           %.2f%%\n",
		s.TotalRows,
		s.FirstAdmission.Format(hospital.DateLayout),
		s.LastAdmission.Format(hospital.DateLayout),
		s.AvgAdmissionsPerPatient,
		s.AvgLengthOfStay,
		s.ReadmissionRatePct,
	)
	return err
}
