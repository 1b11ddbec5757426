package hospital

import (
	"strconv"
	"strings"
	"time"
)

// Textual formats of the CSV files. Both are ISO-8601 compatible and parse
// directly as PostgreSQL DATE/TIMESTAMP input.
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

func itoa(v int) string { return strconv.Itoa(v) }

func date(t time.Time) string { return t.Format(DateLayout) }

func ts(t time.Time) string { return t.Format(TimestampLayout) }

func boolean(v bool) string { return strconv.FormatBool(v) }

func money(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func dec1(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) }

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return itoa(*v)
}

func optDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return date(*t)
}

func optTS(t *time.Time) string {
	if t == nil {
		return ""
	}
	return ts(*t)
}

func (p Patient) Values() []string {
	return []string{
		itoa(p.ID), p.MRN, p.FirstName, p.LastName, date(p.DateOfBirth),
		p.Gender, p.BloodType, p.Address, p.City, p.State, p.ZipCode,
		p.Phone, p.Email, p.InsuranceProvider, p.EmergencyContactName,
		p.EmergencyContactPhone, date(p.EffectiveDate), optDate(p.EndDate),
		boolean(p.IsCurrent),
	}
}

func (s Staff) Values() []string {
	return []string{
		itoa(s.ID), s.FirstName, s.LastName, s.Role, s.Department,
		s.ShiftPattern, s.Qualifications, date(s.HireDate), boolean(s.IsActive),
	}
}

func (w Ward) Values() []string {
	return []string{
		itoa(w.ID), w.Name, w.Department, itoa(w.BedCapacity), w.Type,
		itoa(w.Floor), w.NurseStationContact,
	}
}

func (m Medication) Values() []string {
	return []string{
		itoa(m.ID), m.DrugName, m.GenericName, m.DrugClass, m.DosageForm,
		m.Manufacturer, money(m.CostPerUnit), m.Contraindications,
	}
}

func (p Procedure) Values() []string {
	return []string{
		itoa(p.ID), p.Name, p.Type, p.Department, itoa(p.AvgDurationMinutes),
		money(p.BaseCost), boolean(p.RequiresAnesthesia),
	}
}

func (d Diagnosis) Values() []string {
	return []string{itoa(d.ID), d.ICD10, d.Name, d.Category, d.Severity}
}

func (b Bed) Values() []string {
	return []string{
		itoa(b.ID), itoa(b.WardID), b.Number, b.Type, boolean(b.HasVentilator),
		boolean(b.HasMonitor), boolean(b.IsAvailable),
	}
}

func (d DateDim) Values() []string {
	return []string{
		itoa(d.ID), date(d.Date), itoa(d.Day), d.DayOfWeek, itoa(d.Week),
		itoa(d.Month), d.MonthName, itoa(d.Quarter), itoa(d.Year),
		boolean(d.IsWeekend), boolean(d.IsHoliday), itoa(d.FiscalYear),
	}
}

// SecondaryDiagnoses renders the secondary diagnosis ids as a comma
// separated list, empty when there are none.
func (a Admission) SecondaryDiagnoses() string {
	ids := make([]string, len(a.SecondaryDiagnosisIDs))
	for i, id := range a.SecondaryDiagnosisIDs {
		ids[i] = itoa(id)
	}
	return strings.Join(ids, ",")
}

func (a Admission) Values() []string {
	return []string{
		itoa(a.ID), itoa(a.PatientID), itoa(a.WardID), itoa(a.BedID),
		date(a.Admitted), ts(a.Admitted), date(a.Discharged), ts(a.Discharged),
		a.AdmissionType, a.ChiefComplaint, itoa(a.PrimaryDiagnosisID),
		a.SecondaryDiagnoses(), itoa(a.AttendingDoctorID), itoa(a.LengthOfStay),
		boolean(a.IsReadmission), optInt(a.DaysSinceDischarge),
		a.DischargeDisposition, money(a.TotalCharges),
	}
}

func (m MedicationAdministration) Values() []string {
	return []string{
		itoa(m.ID), itoa(m.PatientID), itoa(m.AdmissionID), itoa(m.MedicationID),
		itoa(m.PrescribedByStaffID), optInt(m.AdministeredByStaffID),
		ts(m.Scheduled), optTS(m.Administered), m.Dosage, m.Route, m.Status,
		m.ReasonIfNotGiven, "", "",
	}
}

func (v VitalSign) Values() []string {
	return []string{
		itoa(v.ID), itoa(v.PatientID), itoa(v.AdmissionID), ts(v.Recorded),
		itoa(v.RecordedByStaffID), itoa(v.Systolic), itoa(v.Diastolic),
		itoa(v.HeartRate), dec1(v.Temperature), itoa(v.RespiratoryRate),
		itoa(v.OxygenSaturation), itoa(v.PainLevel), v.ConsciousnessLevel,
	}
}

func (d DailyActivity) Values() []string {
	return []string{
		itoa(d.ID), itoa(d.PatientID), itoa(d.AdmissionID), date(d.ActivityDate),
		itoa(d.RecordedByStaffID), ts(d.Recorded), itoa(d.MobilityScore),
		d.MobilityNotes, itoa(d.SelfCareScore), itoa(d.BreakfastPct),
		itoa(d.LunchPct), itoa(d.DinnerPct), boolean(d.FeedingAssistanceNeeded),
		boolean(d.BathroomIndependence), boolean(d.ContinentBladder),
		boolean(d.ContinentBowel), d.OutputNotes, d.MentalStatus, d.Mood,
		itoa(d.PainLevel), d.PainLocation, itoa(d.PainManagementEffectiveness),
		itoa(d.SleepQuality), dec1(d.SleepHours), d.Comments,
	}
}

func (p ProcedureEvent) Values() []string {
	return []string{
		itoa(p.ID), itoa(p.PatientID), itoa(p.AdmissionID), itoa(p.ProcedureID),
		itoa(p.PerformedByStaffID), ts(p.Scheduled), ts(p.Actual),
		itoa(p.DurationMinutes), p.Outcome, p.Complications, p.Notes,
		money(p.Charges),
	}
}

func (l LabResult) Values() []string {
	return []string{
		itoa(l.ID), itoa(l.PatientID), itoa(l.AdmissionID), l.TestType,
		l.TestName, itoa(l.OrderedByStaffID), ts(l.Collected), ts(l.Resulted),
		l.Value, l.Unit, l.ReferenceRange, l.AbnormalFlag, l.Department,
	}
}

func (g CareGoal) Values() []string {
	return []string{
		itoa(g.ID), itoa(g.PatientID), itoa(g.AdmissionID), g.Type,
		g.Description, date(g.TargetDate), g.Status, itoa(g.ProgressPct),
		itoa(g.CreatedByStaffID), ts(g.Created), ts(g.LastUpdated),
	}
}
