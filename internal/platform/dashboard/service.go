package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/medicare/medicare/internal/platform/reporting"
	"github.com/medicare/medicare/pkg/pagination"
)

var (
	ErrPageNotFound    = errors.New("page not found")
	ErrPatientNotFound = errors.New("patient not found")
	ErrEmptySearch     = errors.New("search term is empty")
)

// WidgetResult is a rendered widget. A failed query sets Error and leaves
// Rows empty; it never fails the page.
type WidgetResult struct {
	Widget
	Value any             `json:"value,omitempty"`
	Rows  []reporting.Row `json:"rows"`
	Error string          `json:"error,omitempty"`
}

// PageResult is a rendered page.
type PageResult struct {
	Page            string           `json:"page"`
	Title           string           `json:"title"`
	Hospital        string           `json:"hospital"`
	GeneratedAt     time.Time        `json:"generated_at"`
	Widgets         []WidgetResult   `json:"widgets"`
	KPIs            []KPI            `json:"kpis,omitempty"`
	Alerts          []Alert          `json:"alerts,omitempty"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
}

// CarePlan is the care plan of a patient's latest admission.
type CarePlan struct {
	PatientID   int            `json:"patient_id"`
	AdmissionID any            `json:"admission_id"`
	Patient     reporting.Row  `json:"patient"`
	Sections    []WidgetResult `json:"sections"`
}

// Service renders dashboard pages from the query library.
type Service struct {
	lib      *reporting.Library
	hospital string
	logger   zerolog.Logger
}

// NewService creates a dashboard service.
func NewService(lib *reporting.Library, hospital string, logger zerolog.Logger) *Service {
	return &Service{lib: lib, hospital: hospital, logger: logger}
}

// Hospital returns the display name used in page headers.
func (s *Service) Hospital() string { return s.hospital }

// RenderPage runs every widget of page id and derives its alerts.
func (s *Service) RenderPage(ctx context.Context, id string) (*PageResult, error) {
	page := FindPage(id)
	if page == nil {
		return nil, fmt.Errorf("%w: %s", ErrPageNotFound, id)
	}

	out := &PageResult{
		Page:        page.ID,
		Title:       page.Title,
		Hospital:    s.hospital,
		GeneratedAt: time.Now().UTC(),
		Widgets:     make([]WidgetResult, 0, len(page.Widgets)),
	}
	for _, w := range page.Widgets {
		out.Widgets = append(out.Widgets, s.runWidget(ctx, w))
	}

	byQuery := make(results, len(out.Widgets))
	for i := range out.Widgets {
		byQuery[out.Widgets[i].QueryID] = &out.Widgets[i]
	}

	switch page.ID {
	case reporting.PageExecutive:
		out.Alerts = executiveAlerts(byQuery)
	case reporting.PageMedications:
		out.KPIs = medicationKPIs(byQuery)
		out.Alerts = medicationAlerts(byQuery)
	case reporting.PageQuality:
		out.Alerts, out.Recommendations = qualityFindings(byQuery)
	case reporting.PageCarePlan:
		out.Alerts = []Alert{{LevelInfo, "Search for a patient above to view their care plan"}}
	}
	return out, nil
}

func (s *Service) runWidget(ctx context.Context, w Widget, args ...any) WidgetResult {
	wr := WidgetResult{Widget: w, Rows: []reporting.Row{}}
	res, err := s.lib.Run(ctx, w.QueryID, args...)
	if err != nil {
		s.logger.Warn().Err(err).Str("widget", w.ID).Str("query", w.QueryID).Msg("widget query failed")
		wr.Error = err.Error()
		return wr
	}
	wr.Rows = res.Rows
	if w.Kind == KindMetric && len(res.Rows) > 0 {
		wr.Value = res.Rows[0][w.Column]
	}
	return wr
}

// SearchPatients matches term against MRN, patient name and ward name. Each
// hit is one admission, newest first.
func (s *Service) SearchPatients(ctx context.Context, term string, p pagination.Params) (*pagination.Response, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrEmptySearch
	}

	res, err := s.lib.Run(ctx, reporting.QuerySearchPatients, "%"+term+"%", p.Limit, p.Offset)
	if err != nil {
		return nil, fmt.Errorf("search patients: %w", err)
	}

	total := 0
	rows := make([]reporting.Row, 0, len(res.Rows))
	for _, r := range res.Rows {
		if n, ok := number(r["total_count"]); ok {
			total = int(n)
		}
		row := make(reporting.Row, len(r))
		for k, v := range r {
			if k != "total_count" {
				row[k] = v
			}
		}
		rows = append(rows, row)
	}
	return pagination.NewResponse(rows, total, p.Limit, p.Offset), nil
}

// PatientCarePlan loads the patient's latest admission and every care plan
// section of it. Sections fail independently.
func (s *Service) PatientCarePlan(ctx context.Context, patientID int) (*CarePlan, error) {
	details, err := s.lib.Run(ctx, reporting.QueryPatientDetails, patientID)
	if err != nil {
		return nil, fmt.Errorf("load patient %d: %w", patientID, err)
	}
	if len(details.Rows) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrPatientNotFound, patientID)
	}

	patient := details.Rows[0]
	plan := &CarePlan{
		PatientID:   patientID,
		AdmissionID: patient["admission_id"],
		Patient:     patient,
		Sections:    make([]WidgetResult, 0, len(carePlanSections)),
	}
	for _, w := range carePlanSections {
		arg := plan.AdmissionID
		if w.QueryID == reporting.QueryPatientHistory {
			arg = patientID
		}
		plan.Sections = append(plan.Sections, s.runWidget(ctx, w, arg))
	}
	return plan, nil
}
