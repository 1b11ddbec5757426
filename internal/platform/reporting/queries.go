package reporting

// Dashboard pages a query belongs to.
const (
	PageOverview    = "overview"
	PageExecutive   = "executive"
	PageWards       = "ward-operations"
	PageCarePlan    = "patient-care-plan"
	PageMedications = "medication-analytics"
	PageQuality     = "quality-outcomes"
)

// Query identifiers referenced by the dashboard.
const (
	QueryPatientCount           = "patient-count"
	QueryAdmissionCount         = "admission-count"
	QueryActiveStaffCount       = "active-staff-count"
	QueryTotalBeds              = "total-beds"
	QueryCurrentOccupancy       = "current-occupancy"
	QueryAvgLengthOfStay        = "avg-length-of-stay"
	QueryReadmissionRate        = "readmission-rate"
	QueryTodayAdmissions        = "today-admissions"
	QueryAdmissionTrends        = "admission-trends"
	QueryRevenueByDepartment    = "revenue-by-department"
	QueryTopDiagnoses           = "top-diagnoses"
	QueryBedStatus              = "bed-status"
	QueryDischargeForecast      = "discharge-forecast"
	QueryWardTypeOccupancy      = "ward-type-occupancy"
	QuerySearchPatients         = "search-patients"
	QueryPatientDetails         = "patient-details"
	QueryPatientMedications     = "patient-medications"
	QueryPatientVitals          = "patient-vitals"
	QueryPatientActivities      = "patient-daily-activities"
	QueryPatientLabs            = "patient-labs"
	QueryPatientProcedures      = "patient-procedures"
	QueryPatientCareGoals       = "patient-care-goals"
	QueryPatientHistory         = "patient-history"
	QueryMedicationAdherence    = "medication-adherence"
	QueryMedicationErrors       = "medication-errors"
	QueryTopMedications         = "top-medications"
	QueryAdministrationTiming   = "administration-timing"
	QueryReadmissionByDiagnosis = "readmission-by-diagnosis"
	QueryReadmissionTrend       = "readmission-trend"
	QueryAvgLOSByWard           = "avg-los-by-ward"
	QueryPatientFlow            = "patient-flow"
	QueryDischargeDisposition   = "discharge-disposition"
)

// Catalog is every query the dashboard can issue. All of them are plain
// SELECTs over the generated star schema; rates divide by NULLIF(.., 0) so
// an empty window yields NULL instead of an error.
var Catalog = []Query{
	// Overview
	{
		ID:   QueryPatientCount,
		Name: "Total Patients",
		Page: PageOverview,
		SQL:  `SELECT COUNT(*) AS count FROM dim_patients`,
	},
	{
		ID:   QueryAdmissionCount,
		Name: "Total Admissions",
		Page: PageOverview,
		SQL:  `SELECT COUNT(*) AS count FROM fact_admissions`,
	},
	{
		ID:   QueryActiveStaffCount,
		Name: "Active Staff",
		Page: PageOverview,
		SQL:  `SELECT COUNT(*) AS count FROM dim_staff WHERE is_active = TRUE`,
	},
	{
		ID:   QueryTotalBeds,
		Name: "Total Beds",
		Page: PageOverview,
		SQL:  `SELECT SUM(bed_capacity) AS count FROM dim_wards`,
	},

	// Executive
	{
		ID:          QueryCurrentOccupancy,
		Name:        "Current Occupancy",
		Page:        PageExecutive,
		Description: "Patients currently admitted against total bed capacity",
		SQL: `SELECT
    COUNT(DISTINCT a.patient_id) AS current_patients,
    (SELECT SUM(bed_capacity) FROM dim_wards) AS total_beds,
    ROUND(COUNT(DISTINCT a.patient_id) * 100.0 / NULLIF((SELECT SUM(bed_capacity) FROM dim_wards), 0), 1) AS occupancy_rate
FROM fact_admissions a
WHERE a.discharge_date IS NULL OR a.discharge_date >= CURRENT_DATE`,
	},
	{
		ID:          QueryAvgLengthOfStay,
		Name:        "Average Length of Stay",
		Page:        PageExecutive,
		Description: "Mean length of stay of discharges in the last 30 days",
		SQL: `SELECT ROUND(AVG(length_of_stay), 1) AS avg_los
FROM fact_admissions
WHERE discharge_date >= CURRENT_DATE - INTERVAL '30 days'`,
	},
	{
		ID:          QueryReadmissionRate,
		Name:        "30-Day Readmission Rate",
		Page:        PageExecutive,
		Description: "Share of discharges in the last 30 days that were readmissions",
		SQL: `SELECT
    ROUND(SUM(CASE WHEN is_readmission THEN 1 ELSE 0 END) * 100.0 / NULLIF(COUNT(*), 0), 1) AS readmission_rate
FROM fact_admissions
WHERE discharge_date >= CURRENT_DATE - INTERVAL '30 days'`,
	},
	{
		ID:   QueryTodayAdmissions,
		Name: "Today's Admissions",
		Page: PageExecutive,
		SQL:  `SELECT COUNT(*) AS today_admissions FROM fact_admissions WHERE admission_date = CURRENT_DATE`,
	},
	{
		ID:          QueryAdmissionTrends,
		Name:        "Admission Trends",
		Page:        PageExecutive,
		Description: "Admissions per month over the whole dataset",
		SQL: `SELECT
    DATE_TRUNC('month', admission_date) AS month,
    COUNT(*) AS admission_count
FROM fact_admissions
GROUP BY DATE_TRUNC('month', admission_date)
ORDER BY month`,
	},
	{
		ID:          QueryRevenueByDepartment,
		Name:        "Revenue by Department",
		Page:        PageExecutive,
		Description: "Charges of discharges in the last 90 days per department",
		SQL: `SELECT
    w.department,
    SUM(a.total_charges) AS total_revenue,
    COUNT(*) AS admission_count
FROM fact_admissions a
JOIN dim_wards w ON a.ward_id = w.ward_id
WHERE a.discharge_date >= CURRENT_DATE - INTERVAL '90 days'
GROUP BY w.department
ORDER BY total_revenue DESC`,
	},
	{
		ID:          QueryTopDiagnoses,
		Name:        "Top Diagnoses",
		Page:        PageExecutive,
		Description: "Ten most frequent primary diagnoses of the last 180 days",
		SQL: `SELECT
    d.diagnosis_name,
    d.category,
    COUNT(*) AS count
FROM fact_admissions a
JOIN dim_diagnoses d ON a.primary_diagnosis_id = d.diagnosis_id
WHERE a.admission_date >= CURRENT_DATE - INTERVAL '180 days'
GROUP BY d.diagnosis_name, d.category
ORDER BY count DESC
LIMIT 10`,
	},

	// Ward operations
	{
		ID:          QueryBedStatus,
		Name:        "Bed Status by Ward",
		Page:        PageWards,
		Description: "Occupied and available beds per ward",
		SQL: `SELECT
    w.ward_name,
    w.bed_capacity,
    COUNT(a.admission_id) AS occupied_beds,
    w.bed_capacity - COUNT(a.admission_id) AS available_beds,
    ROUND(COUNT(a.admission_id) * 100.0 / NULLIF(w.bed_capacity, 0), 1) AS occupancy_pct
FROM dim_wards w
LEFT JOIN fact_admissions a ON w.ward_id = a.ward_id
    AND (a.discharge_date IS NULL OR a.discharge_date >= CURRENT_DATE)
GROUP BY w.ward_id, w.ward_name, w.bed_capacity
ORDER BY w.ward_name`,
	},
	{
		ID:          QueryDischargeForecast,
		Name:        "Discharge Forecast",
		Page:        PageWards,
		Description: "Patients due for discharge within two days",
		SQL: `SELECT
    p.mrn,
    p.first_name || ' ' || p.last_name AS patient_name,
    w.ward_name,
    a.admission_date,
    a.discharge_date,
    a.length_of_stay,
    d.diagnosis_name
FROM fact_admissions a
JOIN dim_patients p ON a.patient_id = p.patient_id
JOIN dim_wards w ON a.ward_id = w.ward_id
JOIN dim_diagnoses d ON a.primary_diagnosis_id = d.diagnosis_id
WHERE a.discharge_date BETWEEN CURRENT_DATE AND CURRENT_DATE + INTERVAL '2 days'
ORDER BY a.discharge_date, w.ward_name`,
	},
	{
		ID:          QueryWardTypeOccupancy,
		Name:        "Occupancy by Ward Type",
		Page:        PageWards,
		Description: "Current occupancy grouped by ward type",
		SQL: `SELECT
    w.ward_type,
    COUNT(a.admission_id) AS current_patients,
    SUM(w.bed_capacity) AS total_beds,
    ROUND(COUNT(a.admission_id) * 100.0 / NULLIF(SUM(w.bed_capacity), 0), 1) AS occupancy_rate
FROM dim_wards w
LEFT JOIN fact_admissions a ON w.ward_id = a.ward_id
    AND (a.discharge_date IS NULL OR a.discharge_date >= CURRENT_DATE)
GROUP BY w.ward_type
ORDER BY occupancy_rate DESC`,
	},

	// Patient care plan
	{
		ID:          QuerySearchPatients,
		Name:        "Patient Search",
		Page:        PageCarePlan,
		Description: "Admissions whose MRN, patient name or ward matches a LIKE pattern",
		SQL: `SELECT
    p.patient_id,
    p.mrn,
    p.first_name || ' ' || p.last_name AS patient_name,
    p.date_of_birth,
    p.gender,
    p.blood_type,
    a.admission_id,
    a.admission_date,
    a.discharge_date,
    w.ward_name,
    b.bed_number,
    d.diagnosis_name,
    s.first_name || ' ' || s.last_name AS attending_doctor,
    COUNT(*) OVER () AS total_count
FROM dim_patients p
JOIN fact_admissions a ON p.patient_id = a.patient_id
JOIN dim_wards w ON a.ward_id = w.ward_id
LEFT JOIN dim_beds b ON a.bed_id = b.bed_id
JOIN dim_diagnoses d ON a.primary_diagnosis_id = d.diagnosis_id
JOIN dim_staff s ON a.attending_doctor_id = s.staff_id
WHERE (
    p.mrn LIKE $1
    OR LOWER(p.first_name || ' ' || p.last_name) LIKE LOWER($1)
    OR LOWER(w.ward_name) LIKE LOWER($1)
)
ORDER BY a.admission_date DESC, a.admission_id DESC
LIMIT $2 OFFSET $3`,
		Params: []string{"pattern", "limit", "offset"},
	},
	{
		ID:          QueryPatientDetails,
		Name:        "Patient Details",
		Page:        PageCarePlan,
		Description: "Demographics and latest admission of one patient",
		SQL: `SELECT
    p.*,
    a.admission_id,
    a.admission_date,
    a.discharge_date,
    a.admission_type,
    a.chief_complaint,
    a.length_of_stay,
    w.ward_name,
    w.department,
    b.bed_number,
    d.diagnosis_name,
    d.severity_level,
    s.first_name || ' ' || s.last_name AS attending_doctor
FROM dim_patients p
JOIN fact_admissions a ON p.patient_id = a.patient_id
JOIN dim_wards w ON a.ward_id = w.ward_id
LEFT JOIN dim_beds b ON a.bed_id = b.bed_id
JOIN dim_diagnoses d ON a.primary_diagnosis_id = d.diagnosis_id
JOIN dim_staff s ON a.attending_doctor_id = s.staff_id
WHERE p.patient_id = $1
ORDER BY a.admission_date DESC
LIMIT 1`,
		Params: []string{"patient_id"},
	},
	{
		ID:   QueryPatientMedications,
		Name: "Medication Administration (last 3 days)",
		Page: PageCarePlan,
		SQL: `SELECT
    m.drug_name,
    m.dosage_form,
    mar.dosage,
    mar.route,
    mar.scheduled_datetime,
    mar.administered_datetime,
    mar.status,
    mar.reason_if_not_given,
    s.first_name || ' ' || s.last_name AS administered_by
FROM fact_medication_administration mar
JOIN dim_medications m ON mar.medication_id = m.medication_id
LEFT JOIN dim_staff s ON mar.administered_by_staff_id = s.staff_id
WHERE mar.admission_id = $1
  AND mar.scheduled_datetime >= CURRENT_DATE - INTERVAL '3 days'
ORDER BY mar.scheduled_datetime DESC`,
		Params: []string{"admission_id"},
	},
	{
		ID:   QueryPatientVitals,
		Name: "Vital Signs (last 3 days)",
		Page: PageCarePlan,
		SQL: `SELECT
    recorded_datetime,
    blood_pressure_systolic,
    blood_pressure_diastolic,
    heart_rate,
    temperature,
    respiratory_rate,
    oxygen_saturation,
    pain_level,
    consciousness_level
FROM fact_vital_signs
WHERE admission_id = $1
  AND recorded_datetime >= CURRENT_DATE - INTERVAL '3 days'
ORDER BY recorded_datetime DESC`,
		Params: []string{"admission_id"},
	},
	{
		ID:   QueryPatientActivities,
		Name: "Daily Activities (last 7 logs)",
		Page: PageCarePlan,
		SQL: `SELECT
    fa.activity_date,
    fa.mobility_score,
    fa.mobility_notes,
    fa.self_care_score,
    fa.breakfast_percent_consumed,
    fa.lunch_percent_consumed,
    fa.dinner_percent_consumed,
    fa.bathroom_independence,
    fa.mental_status,
    fa.mood,
    fa.pain_level,
    fa.sleep_quality,
    fa.comments,
    s.first_name || ' ' || s.last_name AS recorded_by
FROM fact_daily_activities fa
LEFT JOIN dim_staff s ON fa.recorded_by_staff_id = s.staff_id
WHERE fa.admission_id = $1
ORDER BY fa.activity_date DESC
LIMIT 7`,
		Params: []string{"admission_id"},
	},
	{
		ID:   QueryPatientLabs,
		Name: "Lab Results",
		Page: PageCarePlan,
		SQL: `SELECT
    lab_id,
    test_type,
    test_name,
    test_value,
    unit_of_measure,
    reference_range,
    abnormal_flag,
    collected_datetime,
    resulted_datetime
FROM fact_lab_results
WHERE admission_id = $1
ORDER BY collected_datetime DESC
LIMIT 20`,
		Params: []string{"admission_id"},
	},
	{
		ID:   QueryPatientProcedures,
		Name: "Procedures",
		Page: PageCarePlan,
		SQL: `SELECT
    p.procedure_name,
    p.procedure_type,
    fp.scheduled_datetime,
    fp.actual_datetime,
    fp.duration_minutes,
    fp.outcome,
    fp.notes,
    s.first_name || ' ' || s.last_name AS performed_by
FROM fact_procedures fp
JOIN dim_procedures p ON fp.procedure_id = p.procedure_id
LEFT JOIN dim_staff s ON fp.performed_by_staff_id = s.staff_id
WHERE fp.admission_id = $1
ORDER BY fp.actual_datetime DESC`,
		Params: []string{"admission_id"},
	},
	{
		ID:   QueryPatientCareGoals,
		Name: "Active Care Goals",
		Page: PageCarePlan,
		SQL: `SELECT
    goal_id,
    goal_type,
    goal_description,
    target_date,
    status,
    progress_pct,
    created_datetime,
    last_updated_datetime
FROM fact_care_plan_goals
WHERE admission_id = $1
  AND status IN ('In Progress', 'Not Started')
ORDER BY created_datetime DESC`,
		Params: []string{"admission_id"},
	},
	{
		ID:   QueryPatientHistory,
		Name: "Admission History",
		Page: PageCarePlan,
		SQL: `SELECT
    a.admission_date,
    a.discharge_date,
    a.length_of_stay,
    a.admission_type,
    w.ward_name,
    d.diagnosis_name,
    a.discharge_disposition
FROM fact_admissions a
JOIN dim_wards w ON a.ward_id = w.ward_id
JOIN dim_diagnoses d ON a.primary_diagnosis_id = d.diagnosis_id
WHERE a.patient_id = $1
  AND a.discharge_date < CURRENT_DATE
ORDER BY a.admission_date DESC
LIMIT 10`,
		Params: []string{"patient_id"},
	},

	// Medication analytics. Windows are anchored on the latest scheduled
	// dose so historical datasets still show data.
	{
		ID:          QueryMedicationAdherence,
		Name:        "Medication Adherence by Ward",
		Page:        PageMedications,
		Description: "Share of scheduled doses given in the last 30 days of data",
		SQL: `SELECT
    w.ward_name,
    COUNT(*) AS total_doses,
    SUM(CASE WHEN mar.status = 'Given' THEN 1 ELSE 0 END) AS doses_given,
    ROUND(SUM(CASE WHEN mar.status = 'Given' THEN 1 ELSE 0 END) * 100.0 / NULLIF(COUNT(*), 0), 1) AS adherence_rate
FROM fact_medication_administration mar
JOIN fact_admissions a ON mar.admission_id = a.admission_id
JOIN dim_wards w ON a.ward_id = w.ward_id
WHERE mar.scheduled_datetime >= (SELECT MAX(scheduled_datetime) FROM fact_medication_administration) - INTERVAL '30 days'
GROUP BY w.ward_name
ORDER BY adherence_rate`,
	},
	{
		ID:          QueryMedicationErrors,
		Name:        "Medication Issues by Ward",
		Page:        PageMedications,
		Description: "Missed, refused and held doses of the last 60 days of data",
		SQL: `SELECT
    w.ward_name,
    mar.status,
    COUNT(*) AS count
FROM fact_medication_administration mar
JOIN fact_admissions a ON mar.admission_id = a.admission_id
JOIN dim_wards w ON a.ward_id = w.ward_id
WHERE mar.scheduled_datetime >= (SELECT MAX(scheduled_datetime) FROM fact_medication_administration) - INTERVAL '60 days'
  AND mar.status IN ('Missed', 'Refused', 'Held')
GROUP BY w.ward_name, mar.status
ORDER BY w.ward_name, count DESC`,
	},
	{
		ID:          QueryTopMedications,
		Name:        "Top Medications",
		Page:        PageMedications,
		Description: "Fifteen most administered medications of the last 90 days of data",
		SQL: `SELECT
    m.drug_name,
    m.drug_class,
    COUNT(*) AS administration_count,
    SUM(m.cost_per_unit) AS total_cost
FROM fact_medication_administration mar
JOIN dim_medications m ON mar.medication_id = m.medication_id
WHERE mar.scheduled_datetime >= (SELECT MAX(scheduled_datetime) FROM fact_medication_administration) - INTERVAL '90 days'
GROUP BY m.medication_id, m.drug_name, m.drug_class
ORDER BY administration_count DESC
LIMIT 15`,
	},
	{
		ID:          QueryAdministrationTiming,
		Name:        "Administration Timing",
		Page:        PageMedications,
		Description: "Scheduled and given doses per hour of day",
		SQL: `SELECT
    EXTRACT(HOUR FROM scheduled_datetime) AS hour,
    COUNT(*) AS scheduled_count,
    SUM(CASE WHEN status = 'Given' THEN 1 ELSE 0 END) AS given_count,
    ROUND(SUM(CASE WHEN status = 'Given' THEN 1 ELSE 0 END) * 100.0 / NULLIF(COUNT(*), 0), 1) AS on_time_rate
FROM fact_medication_administration
WHERE scheduled_datetime >= (SELECT MAX(scheduled_datetime) FROM fact_medication_administration) - INTERVAL '30 days'
GROUP BY EXTRACT(HOUR FROM scheduled_datetime)
ORDER BY hour`,
	},

	// Quality and outcomes
	{
		ID:          QueryReadmissionByDiagnosis,
		Name:        "Readmission Rate by Diagnosis",
		Page:        PageQuality,
		Description: "Diagnoses with at least ten discharges in the last 180 days",
		SQL: `SELECT
    d.diagnosis_name,
    d.category,
    COUNT(*) AS total_admissions,
    SUM(CASE WHEN a.is_readmission THEN 1 ELSE 0 END) AS readmissions,
    ROUND(SUM(CASE WHEN a.is_readmission THEN 1 ELSE 0 END) * 100.0 / NULLIF(COUNT(*), 0), 1) AS readmission_rate
FROM fact_admissions a
JOIN dim_diagnoses d ON a.primary_diagnosis_id = d.diagnosis_id
WHERE a.discharge_date >= CURRENT_DATE - INTERVAL '180 days'
GROUP BY d.diagnosis_name, d.category
HAVING COUNT(*) >= 10
ORDER BY readmission_rate DESC
LIMIT 10`,
	},
	{
		ID:          QueryReadmissionTrend,
		Name:        "Readmission Trend",
		Page:        PageQuality,
		Description: "Monthly readmission rate over the last 12 months",
		SQL: `SELECT
    DATE_TRUNC('month', discharge_date) AS month,
    COUNT(*) AS total_discharges,
    SUM(CASE WHEN is_readmission THEN 1 ELSE 0 END) AS readmissions,
    ROUND(SUM(CASE WHEN is_readmission THEN 1 ELSE 0 END) * 100.0 / NULLIF(COUNT(*), 0), 1) AS readmission_rate
FROM fact_admissions
WHERE discharge_date >= CURRENT_DATE - INTERVAL '12 months'
GROUP BY DATE_TRUNC('month', discharge_date)
ORDER BY month`,
	},
	{
		ID:          QueryAvgLOSByWard,
		Name:        "Length of Stay by Ward",
		Page:        PageQuality,
		Description: "Length of stay statistics of discharges in the last 90 days",
		SQL: `SELECT
    w.ward_name,
    w.ward_type,
    COUNT(*) AS admission_count,
    ROUND(AVG(a.length_of_stay), 1) AS avg_los,
    MIN(a.length_of_stay) AS min_los,
    MAX(a.length_of_stay) AS max_los
FROM fact_admissions a
JOIN dim_wards w ON a.ward_id = w.ward_id
WHERE a.discharge_date >= CURRENT_DATE - INTERVAL '90 days'
GROUP BY w.ward_name, w.ward_type
ORDER BY avg_los DESC`,
	},
	{
		ID:          QueryPatientFlow,
		Name:        "Patient Flow by Admission Type",
		Page:        PageQuality,
		Description: "Admissions of the last 90 days per admission type",
		SQL: `SELECT
    admission_type,
    COUNT(*) AS count,
    ROUND(AVG(length_of_stay), 1) AS avg_los
FROM fact_admissions
WHERE admission_date >= CURRENT_DATE - INTERVAL '90 days'
GROUP BY admission_type
ORDER BY count DESC`,
	},
	{
		ID:          QueryDischargeDisposition,
		Name:        "Discharge Disposition",
		Page:        PageQuality,
		Description: "Discharges of the last 90 days per disposition",
		SQL: `SELECT
    discharge_disposition,
    COUNT(*) AS count,
    ROUND(AVG(length_of_stay), 1) AS avg_los
FROM fact_admissions
WHERE discharge_date >= CURRENT_DATE - INTERVAL '90 days'
GROUP BY discharge_disposition
ORDER BY count DESC`,
	},
}

// FindQuery looks up a catalog query by ID.
func FindQuery(id string) *Query {
	for i := range Catalog {
		if Catalog[i].ID == id {
			return &Catalog[i]
		}
	}
	return nil
}
