package hospital

import (
	"fmt"
	"strings"
)

// Column is one column of a generated table. Ref names the table whose
// primary key the column points at, if any.
type Column struct {
	Name string
	Type string
	Ref  string
}

// Table is the fixed contract between the generator and every consumer of
// its output: file name, column order and SQL types.
type Table struct {
	Name    string
	Columns []Column
}

// Key returns the primary key column, always the first one.
func (t Table) Key() string {
	return t.Columns[0].Name
}

// FileName is the CSV file the table is written to.
func (t Table) FileName() string {
	return t.Name + ".csv"
}

// Header returns the column names in order.
func (t Table) Header() []string {
	h := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		h[i] = c.Name
	}
	return h
}

// DDL renders a CREATE TABLE statement for PostgreSQL.
func (t Table) DDL() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", t.Name)
	for i, c := range t.Columns {
		fmt.Fprintf(&b, "    %s %s", c.Name, c.Type)
		if i == 0 {
			b.WriteString(" PRIMARY KEY")
		}
		if c.Ref != "" {
			ref, ok := TableByName(c.Ref)
			if ok {
				fmt.Fprintf(&b, " REFERENCES %s (%s)", ref.Name, ref.Key())
			}
		}
		if i < len(t.Columns)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(")")
	return b.String()
}

// Table names.
const (
	TablePatients      = "dim_patients"
	TableStaff         = "dim_staff"
	TableWards         = "dim_wards"
	TableMedications   = "dim_medications"
	TableProcedures    = "dim_procedures"
	TableDiagnoses     = "dim_diagnoses"
	TableBeds          = "dim_beds"
	TableDates         = "dim_date"
	TableAdmissions    = "fact_admissions"
	TableMedicationAdm = "fact_medication_administration"
	TableVitalSigns    = "fact_vital_signs"
	TableActivities    = "fact_daily_activities"
	TableProcedureEvts = "fact_procedures"
	TableLabResults    = "fact_lab_results"
	TableCareGoals     = "fact_care_plan_goals"
)

const (
	tInt   = "INTEGER"
	tText  = "TEXT"
	tDate  = "DATE"
	tTS    = "TIMESTAMP"
	tBool  = "BOOLEAN"
	tMoney = "NUMERIC(12,2)"
	tDec1  = "NUMERIC(5,1)"
)

// Tables lists every generated table in dependency order: a table only
// references tables listed before it.
var Tables = []Table{
	{TablePatients, []Column{
		{"patient_id", tInt, ""},
		{"mrn", tText, ""},
		{"first_name", tText, ""},
		{"last_name", tText, ""},
		{"date_of_birth", tDate, ""},
		{"gender", tText, ""},
		{"blood_type", tText, ""},
		{"address", tText, ""},
		{"city", tText, ""},
		{"state", tText, ""},
		{"zip_code", tText, ""},
		{"phone", tText, ""},
		{"email", tText, ""},
		{"insurance_provider", tText, ""},
		{"emergency_contact_name", tText, ""},
		{"emergency_contact_phone", tText, ""},
		{"effective_date", tDate, ""},
		{"end_date", tDate, ""},
		{"is_current", tBool, ""},
	}},
	{TableStaff, []Column{
		{"staff_id", tInt, ""},
		{"first_name", tText, ""},
		{"last_name", tText, ""},
		{"role", tText, ""},
		{"department", tText, ""},
		{"shift_pattern", tText, ""},
		{"qualifications", tText, ""},
		{"hire_date", tDate, ""},
		{"is_active", tBool, ""},
	}},
	{TableWards, []Column{
		{"ward_id", tInt, ""},
		{"ward_name", tText, ""},
		{"department", tText, ""},
		{"bed_capacity", tInt, ""},
		{"ward_type", tText, ""},
		{"floor_number", tInt, ""},
		{"nurse_station_contact", tText, ""},
	}},
	{TableMedications, []Column{
		{"medication_id", tInt, ""},
		{"drug_name", tText, ""},
		{"generic_name", tText, ""},
		{"drug_class", tText, ""},
		{"dosage_form", tText, ""},
		{"manufacturer", tText, ""},
		{"cost_per_unit", tMoney, ""},
		{"contraindications", tText, ""},
	}},
	{TableProcedures, []Column{
		{"procedure_id", tInt, ""},
		{"procedure_name", tText, ""},
		{"procedure_type", tText, ""},
		{"department", tText, ""},
		{"avg_duration_minutes", tInt, ""},
		{"base_cost", tMoney, ""},
		{"requires_anesthesia", tBool, ""},
	}},
	{TableDiagnoses, []Column{
		{"diagnosis_id", tInt, ""},
		{"icd10_code", tText, ""},
		{"diagnosis_name", tText, ""},
		{"category", tText, ""},
		{"severity_level", tText, ""},
	}},
	{TableBeds, []Column{
		{"bed_id", tInt, ""},
		{"ward_id", tInt, TableWards},
		{"bed_number", tText, ""},
		{"bed_type", tText, ""},
		{"has_ventilator", tBool, ""},
		{"has_monitor", tBool, ""},
		{"is_available", tBool, ""},
	}},
	{TableDates, []Column{
		{"date_id", tInt, ""},
		{"date", tDate, ""},
		{"day", tInt, ""},
		{"day_of_week", tText, ""},
		{"week", tInt, ""},
		{"month", tInt, ""},
		{"month_name", tText, ""},
		{"quarter", tInt, ""},
		{"year", tInt, ""},
		{"is_weekend", tBool, ""},
		{"is_holiday", tBool, ""},
		{"fiscal_year", tInt, ""},
	}},
	{TableAdmissions, []Column{
		{"admission_id", tInt, ""},
		{"patient_id", tInt, TablePatients},
		{"ward_id", tInt, TableWards},
		{"bed_id", tInt, TableBeds},
		{"admission_date", tDate, ""},
		{"admission_datetime", tTS, ""},
		{"discharge_date", tDate, ""},
		{"discharge_datetime", tTS, ""},
		{"admission_type", tText, ""},
		{"chief_complaint", tText, ""},
		{"primary_diagnosis_id", tInt, TableDiagnoses},
		{"secondary_diagnosis_ids", tText, ""},
		{"attending_doctor_id", tInt, TableStaff},
		{"length_of_stay", tInt, ""},
		{"is_readmission", tBool, ""},
		{"readmission_days_since_discharge", tInt, ""},
		{"discharge_disposition", tText, ""},
		{"total_charges", tMoney, ""},
	}},
	{TableMedicationAdm, []Column{
		{"mar_id", tInt, ""},
		{"patient_id", tInt, TablePatients},
		{"admission_id", tInt, TableAdmissions},
		{"medication_id", tInt, TableMedications},
		{"prescribed_by_staff_id", tInt, TableStaff},
		{"administered_by_staff_id", tInt, TableStaff},
		{"scheduled_datetime", tTS, ""},
		{"administered_datetime", tTS, ""},
		{"dosage", tText, ""},
		{"route", tText, ""},
		{"status", tText, ""},
		{"reason_if_not_given", tText, ""},
		{"vital_signs_before", tText, ""},
		{"vital_signs_after", tText, ""},
	}},
	{TableVitalSigns, []Column{
		{"vital_id", tInt, ""},
		{"patient_id", tInt, TablePatients},
		{"admission_id", tInt, TableAdmissions},
		{"recorded_datetime", tTS, ""},
		{"recorded_by_staff_id", tInt, TableStaff},
		{"blood_pressure_systolic", tInt, ""},
		{"blood_pressure_diastolic", tInt, ""},
		{"heart_rate", tInt, ""},
		{"temperature", tDec1, ""},
		{"respiratory_rate", tInt, ""},
		{"oxygen_saturation", tInt, ""},
		{"pain_level", tInt, ""},
		{"consciousness_level", tText, ""},
	}},
	{TableActivities, []Column{
		{"activity_id", tInt, ""},
		{"patient_id", tInt, TablePatients},
		{"admission_id", tInt, TableAdmissions},
		{"activity_date", tDate, ""},
		{"recorded_by_staff_id", tInt, TableStaff},
		{"recorded_datetime", tTS, ""},
		{"mobility_score", tInt, ""},
		{"mobility_notes", tText, ""},
		{"self_care_score", tInt, ""},
		{"breakfast_percent_consumed", tInt, ""},
		{"lunch_percent_consumed", tInt, ""},
		{"dinner_percent_consumed", tInt, ""},
		{"feeding_assistance_needed", tBool, ""},
		{"bathroom_independence", tBool, ""},
		{"continent_bladder", tBool, ""},
		{"continent_bowel", tBool, ""},
		{"output_notes", tText, ""},
		{"mental_status", tText, ""},
		{"mood", tText, ""},
		{"pain_level", tInt, ""},
		{"pain_location", tText, ""},
		{"pain_management_effectiveness", tInt, ""},
		{"sleep_quality", tInt, ""},
		{"sleep_hours", tDec1, ""},
		{"comments", tText, ""},
	}},
	{TableProcedureEvts, []Column{
		{"procedure_event_id", tInt, ""},
		{"patient_id", tInt, TablePatients},
		{"admission_id", tInt, TableAdmissions},
		{"procedure_id", tInt, TableProcedures},
		{"performed_by_staff_id", tInt, TableStaff},
		{"scheduled_datetime", tTS, ""},
		{"actual_datetime", tTS, ""},
		{"duration_minutes", tInt, ""},
		{"outcome", tText, ""},
		{"complications", tText, ""},
		{"notes", tText, ""},
		{"procedure_charges", tMoney, ""},
	}},
	{TableLabResults, []Column{
		{"lab_id", tInt, ""},
		{"patient_id", tInt, TablePatients},
		{"admission_id", tInt, TableAdmissions},
		{"test_type", tText, ""},
		{"test_name", tText, ""},
		{"ordered_by_staff_id", tInt, TableStaff},
		{"collected_datetime", tTS, ""},
		{"resulted_datetime", tTS, ""},
		{"test_value", tText, ""},
		{"unit_of_measure", tText, ""},
		{"reference_range", tText, ""},
		{"abnormal_flag", tText, ""},
		{"lab_department", tText, ""},
	}},
	{TableCareGoals, []Column{
		{"goal_id", tInt, ""},
		{"patient_id", tInt, TablePatients},
		{"admission_id", tInt, TableAdmissions},
		{"goal_type", tText, ""},
		{"goal_description", tText, ""},
		{"target_date", tDate, ""},
		{"status", tText, ""},
		{"progress_pct", tInt, ""},
		{"created_by_staff_id", tInt, TableStaff},
		{"created_datetime", tTS, ""},
		{"last_updated_datetime", tTS, ""},
	}},
}

// TableByName looks a table up by name.
func TableByName(name string) (Table, bool) {
	for _, t := range Tables {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}
