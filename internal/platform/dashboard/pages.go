// Package dashboard assembles catalog queries into dashboard pages and
// derives the alerts, KPIs and recommendations shown next to them.
package dashboard

import "github.com/medicare/medicare/internal/platform/reporting"

// Kind is how a widget is drawn.
type Kind string

const (
	KindMetric Kind = "metric"
	KindLine   Kind = "line"
	KindBar    Kind = "bar"
	KindPie    Kind = "pie"
	KindTable  Kind = "table"
)

// Widget binds one catalog query to a visual element. Metric widgets show
// Column of the first row.
type Widget struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Kind    Kind   `json:"kind"`
	QueryID string `json:"query_id"`
	Column  string `json:"column,omitempty"`
	Unit    string `json:"unit,omitempty"`
}

// Page is a named list of widgets.
type Page struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Widgets     []Widget `json:"widgets"`
}

// Pages is the dashboard in navigation order.
var Pages = []Page{
	{
		ID:          reporting.PageOverview,
		Title:       "Hospital Overview",
		Description: "Headline counts for the whole dataset",
		Widgets: []Widget{
			{ID: "patients", Title: "Total Patients", Kind: KindMetric, QueryID: reporting.QueryPatientCount, Column: "count"},
			{ID: "admissions", Title: "Total Admissions", Kind: KindMetric, QueryID: reporting.QueryAdmissionCount, Column: "count"},
			{ID: "staff", Title: "Active Staff", Kind: KindMetric, QueryID: reporting.QueryActiveStaffCount, Column: "count"},
			{ID: "beds", Title: "Total Beds", Kind: KindMetric, QueryID: reporting.QueryTotalBeds, Column: "count"},
		},
	},
	{
		ID:          reporting.PageExecutive,
		Title:       "Executive Dashboard",
		Description: "Hospital-wide KPIs, trends and financial metrics",
		Widgets: []Widget{
			{ID: "occupancy", Title: "Bed Occupancy", Kind: KindMetric, QueryID: reporting.QueryCurrentOccupancy, Column: "occupancy_rate", Unit: "%"},
			{ID: "avg-los", Title: "Avg Length of Stay", Kind: KindMetric, QueryID: reporting.QueryAvgLengthOfStay, Column: "avg_los", Unit: "days"},
			{ID: "readmission", Title: "30-Day Readmission Rate", Kind: KindMetric, QueryID: reporting.QueryReadmissionRate, Column: "readmission_rate", Unit: "%"},
			{ID: "today", Title: "Today's Admissions", Kind: KindMetric, QueryID: reporting.QueryTodayAdmissions, Column: "today_admissions"},
			{ID: "trends", Title: "Admission Trends", Kind: KindLine, QueryID: reporting.QueryAdmissionTrends},
			{ID: "diagnoses", Title: "Top 10 Diagnoses (Last 180 Days)", Kind: KindBar, QueryID: reporting.QueryTopDiagnoses},
			{ID: "revenue", Title: "Revenue by Department (Last 90 Days)", Kind: KindBar, QueryID: reporting.QueryRevenueByDepartment},
		},
	},
	{
		ID:          reporting.PageWards,
		Title:       "Ward Operations",
		Description: "Bed management and upcoming discharges",
		Widgets: []Widget{
			{ID: "bed-status", Title: "Bed Status by Ward", Kind: KindBar, QueryID: reporting.QueryBedStatus},
			{ID: "ward-types", Title: "Occupancy by Ward Type", Kind: KindBar, QueryID: reporting.QueryWardTypeOccupancy},
			{ID: "discharges", Title: "Expected Discharges (Next 48 Hours)", Kind: KindTable, QueryID: reporting.QueryDischargeForecast},
		},
	},
	{
		ID:          reporting.PageCarePlan,
		Title:       "Patient Care Plan",
		Description: "Search a patient to view the care plan of their latest admission",
	},
	{
		ID:          reporting.PageMedications,
		Title:       "Medication Analytics",
		Description: "Medication administration tracking, adherence and safety metrics",
		Widgets: []Widget{
			{ID: "adherence", Title: "Adherence by Ward", Kind: KindBar, QueryID: reporting.QueryMedicationAdherence},
			{ID: "issues", Title: "Medication Issues by Ward", Kind: KindBar, QueryID: reporting.QueryMedicationErrors},
			{ID: "top-medications", Title: "Top 15 Medications", Kind: KindTable, QueryID: reporting.QueryTopMedications},
			{ID: "timing", Title: "Administration by Hour", Kind: KindLine, QueryID: reporting.QueryAdministrationTiming},
		},
	},
	{
		ID:          reporting.PageQuality,
		Title:       "Quality & Outcomes",
		Description: "Readmissions, length of stay and patient flow",
		Widgets: []Widget{
			{ID: "readmission", Title: "30-Day Readmission Rate", Kind: KindMetric, QueryID: reporting.QueryReadmissionRate, Column: "readmission_rate", Unit: "%"},
			{ID: "readmission-by-diagnosis", Title: "Readmission Rate by Diagnosis", Kind: KindBar, QueryID: reporting.QueryReadmissionByDiagnosis},
			{ID: "readmission-trend", Title: "Readmission Trend (12 Months)", Kind: KindLine, QueryID: reporting.QueryReadmissionTrend},
			{ID: "los-by-ward", Title: "Length of Stay by Ward", Kind: KindBar, QueryID: reporting.QueryAvgLOSByWard},
			{ID: "patient-flow", Title: "Admissions by Type", Kind: KindPie, QueryID: reporting.QueryPatientFlow},
			{ID: "disposition", Title: "Discharge Disposition", Kind: KindPie, QueryID: reporting.QueryDischargeDisposition},
		},
	},
}

// carePlanSections are the per-admission blocks of a patient care plan.
// History is keyed by patient, everything else by admission.
var carePlanSections = []Widget{
	{ID: "care-goals", Title: "Active Care Goals", Kind: KindTable, QueryID: reporting.QueryPatientCareGoals},
	{ID: "medications", Title: "Medication Administration (Last 3 Days)", Kind: KindTable, QueryID: reporting.QueryPatientMedications},
	{ID: "vitals", Title: "Vital Signs (Last 3 Days)", Kind: KindLine, QueryID: reporting.QueryPatientVitals},
	{ID: "activities", Title: "Daily Activities", Kind: KindTable, QueryID: reporting.QueryPatientActivities},
	{ID: "labs", Title: "Lab Results", Kind: KindTable, QueryID: reporting.QueryPatientLabs},
	{ID: "procedures", Title: "Procedures", Kind: KindTable, QueryID: reporting.QueryPatientProcedures},
	{ID: "history", Title: "Admission History", Kind: KindTable, QueryID: reporting.QueryPatientHistory},
}

// FindPage looks up a page by ID.
func FindPage(id string) *Page {
	for i := range Pages {
		if Pages[i].ID == id {
			return &Pages[i]
		}
	}
	return nil
}
