package synth

import (
	"errors"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/medicare/medicare/internal/domain/catalog"
	"github.com/medicare/medicare/internal/domain/hospital"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func generate(t *testing.T, cfg Config) *Dataset {
	t.Helper()
	ds, err := Generate(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return ds
}

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Patients = 120
	cfg.Years = 2
	cfg.Seed = 7
	return cfg
}

func staffByID(ds *Dataset) map[int]hospital.Staff {
	m := make(map[int]hospital.Staff, len(ds.Staff))
	for _, s := range ds.Staff {
		m[s.ID] = s
	}
	return m
}

func admissionsByID(ds *Dataset) map[int]hospital.Admission {
	m := make(map[int]hospital.Admission, len(ds.Admissions))
	for _, a := range ds.Admissions {
		m[a.ID] = a
	}
	return m
}

// ---------------------------------------------------------------------------
// Dimensions
// ---------------------------------------------------------------------------

func TestGenerate_DimensionCounts(t *testing.T) {
	cfg := smallConfig()
	ds := generate(t, cfg)

	if len(ds.Patients) != cfg.Patients {
		t.Errorf("expected %d patients, got %d", cfg.Patients, len(ds.Patients))
	}
	if len(ds.Staff) != cfg.Staff {
		t.Errorf("expected %d staff, got %d", cfg.Staff, len(ds.Staff))
	}
	if len(ds.Wards) != len(catalog.Wards) {
		t.Errorf("expected %d wards, got %d", len(catalog.Wards), len(ds.Wards))
	}
	if len(ds.Diagnoses) != len(catalog.Diagnoses) {
		t.Errorf("expected %d diagnoses, got %d", len(catalog.Diagnoses), len(ds.Diagnoses))
	}
	capacity := 0
	for _, w := range catalog.Wards {
		capacity += w.BedCapacity
	}
	if len(ds.Beds) != capacity {
		t.Errorf("expected %d beds, got %d", capacity, len(ds.Beds))
	}
	wantDays := cfg.HorizonDays() + 1
	if len(ds.Dates) != wantDays {
		t.Errorf("expected %d dates, got %d", wantDays, len(ds.Dates))
	}
}

func TestGeneratePatients_Fields(t *testing.T) {
	cfg := smallConfig()
	ds := generate(t, cfg)
	for _, p := range ds.Patients {
		if !strings.HasPrefix(p.MRN, "MRN") || len(p.MRN) != 11 {
			t.Fatalf("unexpected MRN %q", p.MRN)
		}
		age := cfg.Start.Year() - p.DateOfBirth.Year()
		if age < 18 || age > 96 {
			t.Fatalf("patient %d: age %d out of range", p.ID, age)
		}
		if !p.IsCurrent || p.EndDate != nil {
			t.Fatalf("patient %d: expected current record without end date", p.ID)
		}
		if p.Gender == "Male" && !slices.Contains(firstNamesMale, p.FirstName) {
			t.Fatalf("patient %d: male patient with name %q", p.ID, p.FirstName)
		}
	}
}

func TestGenerateBeds_Numbering(t *testing.T) {
	src := NewSource(1)
	beds := GenerateBeds(src, GenerateWards(src))
	if beds[0].Number != "ICU-001" || beds[0].Type != "ICU" || !beds[0].HasVentilator {
		t.Errorf("unexpected first bed: %+v", beds[0])
	}
	for i, b := range beds {
		if b.ID != i+1 {
			t.Fatalf("expected dense bed ids, got %d at %d", b.ID, i)
		}
		if b.Type == "Standard" && b.HasVentilator {
			t.Fatalf("standard bed %s has a ventilator", b.Number)
		}
	}
}

func TestGenerateProcedures_AnesthesiaOnlyForSurgical(t *testing.T) {
	for _, p := range GenerateProcedures(NewSource(3), 100) {
		if p.RequiresAnesthesia != (p.Type == "Surgical") {
			t.Fatalf("procedure %d: type %s requires_anesthesia=%v", p.ID, p.Type, p.RequiresAnesthesia)
		}
	}
}

// ---------------------------------------------------------------------------
// Admissions
// ---------------------------------------------------------------------------

func TestAdmissions_StayLength(t *testing.T) {
	ds := generate(t, smallConfig())
	diag := make(map[int]hospital.Diagnosis)
	for _, d := range ds.Diagnoses {
		diag[d.ID] = d
	}
	for _, a := range ds.Admissions {
		if !a.Discharged.Equal(a.Admitted.AddDate(0, 0, a.LengthOfStay)) {
			t.Fatalf("admission %d: discharge is not admission + LOS", a.ID)
		}
		lo, hi := catalog.StayRange(diag[a.PrimaryDiagnosisID].Severity)
		if a.LengthOfStay < lo || a.LengthOfStay > hi {
			t.Fatalf("admission %d: LOS %d outside [%d,%d]", a.ID, a.LengthOfStay, lo, hi)
		}
		if a.ChiefComplaint != diag[a.PrimaryDiagnosisID].Name {
			t.Fatalf("admission %d: chief complaint %q does not match diagnosis", a.ID, a.ChiefComplaint)
		}
	}
}

func TestAdmissions_Readmission(t *testing.T) {
	ds := generate(t, smallConfig())
	byPatient := make(map[int][]hospital.Admission)
	for _, a := range ds.Admissions {
		byPatient[a.PatientID] = append(byPatient[a.PatientID], a)
	}
	for pid, visits := range byPatient {
		if len(visits) < 2 || len(visits) > 5 {
			t.Fatalf("patient %d: %d visits", pid, len(visits))
		}
		if visits[0].IsReadmission || visits[0].DaysSinceDischarge != nil {
			t.Fatalf("patient %d: first visit flagged as readmission", pid)
		}
		for k := 1; k < len(visits); k++ {
			gap := int(math.Floor(visits[k].Admitted.Sub(visits[k-1].Discharged).Hours() / 24))
			if visits[k].IsReadmission != (gap <= ReadmissionWindowDays) {
				t.Fatalf("patient %d visit %d: gap %d, is_readmission=%v", pid, k, gap, visits[k].IsReadmission)
			}
			if visits[k].DaysSinceDischarge == nil || *visits[k].DaysSinceDischarge != gap {
				t.Fatalf("patient %d visit %d: expected days since discharge %d", pid, k, gap)
			}
		}
	}
}

func TestAdmissions_SecondaryDiagnoses(t *testing.T) {
	ds := generate(t, smallConfig())
	for _, a := range ds.Admissions {
		if len(a.SecondaryDiagnosisIDs) > 2 {
			t.Fatalf("admission %d: %d secondary diagnoses", a.ID, len(a.SecondaryDiagnosisIDs))
		}
		if slices.Contains(a.SecondaryDiagnosisIDs, a.PrimaryDiagnosisID) {
			t.Fatalf("admission %d: primary repeated as secondary", a.ID)
		}
		if len(a.SecondaryDiagnosisIDs) == 2 && a.SecondaryDiagnosisIDs[0] == a.SecondaryDiagnosisIDs[1] {
			t.Fatalf("admission %d: duplicate secondary diagnoses", a.ID)
		}
	}
}

// ---------------------------------------------------------------------------
// Referential integrity and attribution
// ---------------------------------------------------------------------------

func TestGenerate_ReferentialIntegrity(t *testing.T) {
	ds := generate(t, smallConfig())
	keys := make(map[string]map[string]bool)
	for _, tbl := range hospital.Tables {
		set := make(map[string]bool)
		for _, r := range ds.Rows(tbl.Name) {
			set[r.Values()[0]] = true
		}
		keys[tbl.Name] = set
	}
	for _, tbl := range hospital.Tables {
		for ci, col := range tbl.Columns {
			if col.Ref == "" {
				continue
			}
			for _, r := range ds.Rows(tbl.Name) {
				v := r.Values()[ci]
				if v == "" {
					continue
				}
				if !keys[col.Ref][v] {
					t.Fatalf("%s.%s = %s has no match in %s", tbl.Name, col.Name, v, col.Ref)
				}
			}
		}
	}

	// Facts carry the patient of their admission.
	adm := admissionsByID(ds)
	for _, m := range ds.MedicationAdministrations {
		if adm[m.AdmissionID].PatientID != m.PatientID {
			t.Fatalf("mar %d: patient does not match admission", m.ID)
		}
	}
	for _, g := range ds.CareGoals {
		if adm[g.AdmissionID].PatientID != g.PatientID {
			t.Fatalf("goal %d: patient does not match admission", g.ID)
		}
	}

	beds := make(map[int]hospital.Bed)
	for _, b := range ds.Beds {
		beds[b.ID] = b
	}
	for _, a := range ds.Admissions {
		if beds[a.BedID].WardID != a.WardID {
			t.Fatalf("admission %d: bed %d is not in ward %d", a.ID, a.BedID, a.WardID)
		}
	}
}

func TestGenerate_RoleAttribution(t *testing.T) {
	ds := generate(t, smallConfig())
	staff := staffByID(ds)
	isPhysician := func(id int) bool { return catalog.HasRole(catalog.PhysicianRoles, staff[id].Role) }
	isNurse := func(id int) bool { return catalog.HasRole(catalog.NurseRoles, staff[id].Role) }

	for _, a := range ds.Admissions {
		if !isPhysician(a.AttendingDoctorID) {
			t.Fatalf("admission %d: attending %d is %s", a.ID, a.AttendingDoctorID, staff[a.AttendingDoctorID].Role)
		}
	}
	for _, m := range ds.MedicationAdministrations {
		if !isPhysician(m.PrescribedByStaffID) {
			t.Fatalf("mar %d: prescriber is not a physician", m.ID)
		}
		if m.Status == catalog.DoseGiven {
			if m.AdministeredByStaffID == nil || !isNurse(*m.AdministeredByStaffID) || m.Administered == nil {
				t.Fatalf("mar %d: given dose without nurse or time", m.ID)
			}
			if m.ReasonIfNotGiven != "" {
				t.Fatalf("mar %d: given dose with reason %q", m.ID, m.ReasonIfNotGiven)
			}
		} else {
			if m.AdministeredByStaffID != nil || m.Administered != nil {
				t.Fatalf("mar %d: %s dose has administration data", m.ID, m.Status)
			}
			if m.ReasonIfNotGiven != catalog.DoseReasons[m.Status] {
				t.Fatalf("mar %d: reason %q for status %s", m.ID, m.ReasonIfNotGiven, m.Status)
			}
		}
	}
	for _, v := range ds.VitalSigns {
		if !isNurse(v.RecordedByStaffID) {
			t.Fatalf("vital %d: recorder is not a nurse", v.ID)
		}
	}
	for _, d := range ds.DailyActivities {
		if !isNurse(d.RecordedByStaffID) {
			t.Fatalf("activity %d: recorder is not a nurse", d.ID)
		}
	}
	for _, p := range ds.ProcedureEvents {
		if !isPhysician(p.PerformedByStaffID) {
			t.Fatalf("procedure %d: performer is not a physician", p.ID)
		}
	}
	for _, l := range ds.LabResults {
		if !isPhysician(l.OrderedByStaffID) {
			t.Fatalf("lab %d: orderer is not a physician", l.ID)
		}
	}
	for _, g := range ds.CareGoals {
		if !isNurse(g.CreatedByStaffID) {
			t.Fatalf("goal %d: creator is not a nurse", g.ID)
		}
	}
}

// ---------------------------------------------------------------------------
// Sampling and per-fact policies
// ---------------------------------------------------------------------------

func distinctAdmissions[T any](rows []T, admissionID func(T) int) int {
	seen := make(map[int]bool)
	for _, r := range rows {
		seen[admissionID(r)] = true
	}
	return len(seen)
}

func TestGenerate_SamplingFractions(t *testing.T) {
	ds := generate(t, smallConfig())
	n := len(ds.Admissions)
	want := func(f float64) int { return int(math.Round(f * float64(n))) }

	checks := []struct {
		name string
		got  int
		want int
	}{
		{"medication", distinctAdmissions(ds.MedicationAdministrations, func(r hospital.MedicationAdministration) int { return r.AdmissionID }), want(MedicationFraction)},
		{"vitals", distinctAdmissions(ds.VitalSigns, func(r hospital.VitalSign) int { return r.AdmissionID }), want(VitalsFraction)},
		{"activities", distinctAdmissions(ds.DailyActivities, func(r hospital.DailyActivity) int { return r.AdmissionID }), want(ActivityFraction)},
		{"procedures", distinctAdmissions(ds.ProcedureEvents, func(r hospital.ProcedureEvent) int { return r.AdmissionID }), want(ProcedureFraction)},
		{"labs", distinctAdmissions(ds.LabResults, func(r hospital.LabResult) int { return r.AdmissionID }), want(LabFraction)},
		{"goals", distinctAdmissions(ds.CareGoals, func(r hospital.CareGoal) int { return r.AdmissionID }), want(CareGoalFraction)},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: expected %d sampled admissions, got %d", c.name, c.want, c.got)
		}
	}
}

func TestGenerate_FactRowsInAdmissionOrder(t *testing.T) {
	ds := generate(t, smallConfig())
	for i := 1; i < len(ds.LabResults); i++ {
		if ds.LabResults[i].AdmissionID < ds.LabResults[i-1].AdmissionID {
			t.Fatalf("lab results not ordered by admission at %d", i)
		}
		if ds.LabResults[i].ID != i+1 {
			t.Fatalf("lab ids not dense at %d", i)
		}
	}
}

func TestCareGoals_ProgressMatchesStatus(t *testing.T) {
	ds := generate(t, smallConfig())
	adm := admissionsByID(ds)
	for _, g := range ds.CareGoals {
		switch g.Status {
		case catalog.GoalAchieved:
			if g.ProgressPct != 100 {
				t.Fatalf("goal %d: achieved with %d%%", g.ID, g.ProgressPct)
			}
		case catalog.GoalInProgress:
			if g.ProgressPct < 30 || g.ProgressPct > 90 {
				t.Fatalf("goal %d: in progress with %d%%", g.ID, g.ProgressPct)
			}
		default:
			if g.ProgressPct != 0 {
				t.Fatalf("goal %d: %s with %d%%", g.ID, g.Status, g.ProgressPct)
			}
		}
		if !g.TargetDate.Equal(dayOf(adm[g.AdmissionID].Discharged)) {
			t.Fatalf("goal %d: target date is not the discharge date", g.ID)
		}
	}
}

func TestVitalSigns_WithinRanges(t *testing.T) {
	ds := generate(t, smallConfig())
	r := catalog.VitalRanges
	for _, v := range ds.VitalSigns {
		if v.Systolic < r.Systolic.Min || v.Systolic > r.Systolic.Max ||
			v.OxygenSaturation < r.OxygenSaturation.Min || v.OxygenSaturation > r.OxygenSaturation.Max ||
			v.Temperature < r.Temperature.Min || v.Temperature > r.Temperature.Max {
			t.Fatalf("vital %d out of range: %+v", v.ID, v)
		}
	}
}

func TestProcedureEvents_Policies(t *testing.T) {
	ds := generate(t, smallConfig())
	adm := admissionsByID(ds)
	for _, p := range ds.ProcedureEvents {
		a := adm[p.AdmissionID]
		if p.Scheduled.Before(a.Admitted) || p.DurationMinutes < 1 {
			t.Fatalf("procedure %d: scheduled %v before admission or duration %d", p.ID, p.Scheduled, p.DurationMinutes)
		}
		if p.Complications != "" && p.Complications != "Minor bleeding" {
			t.Fatalf("procedure %d: unexpected complication %q", p.ID, p.Complications)
		}
	}
	for _, l := range ds.LabResults {
		d := l.Resulted.Sub(l.Collected).Hours()
		if d < 2 || d > 24 {
			t.Fatalf("lab %d: resulted %.0fh after collection", l.ID, d)
		}
	}
}

// ---------------------------------------------------------------------------
// Reproducibility and preconditions
// ---------------------------------------------------------------------------

func TestGenerate_Reproducible(t *testing.T) {
	a := generate(t, smallConfig())
	b := generate(t, smallConfig())
	for _, tbl := range hospital.Tables {
		ra, rb := a.Rows(tbl.Name), b.Rows(tbl.Name)
		if len(ra) != len(rb) {
			t.Fatalf("%s: %d rows vs %d rows", tbl.Name, len(ra), len(rb))
		}
		for i := range ra {
			if !slices.Equal(ra[i].Values(), rb[i].Values()) {
				t.Fatalf("%s row %d differs between runs with the same seed", tbl.Name, i)
			}
		}
	}
}

func TestGenerate_DifferentSeedsDiffer(t *testing.T) {
	cfg := smallConfig()
	a := generate(t, cfg)
	cfg.Seed = 8
	b := generate(t, cfg)
	if len(a.Admissions) == len(b.Admissions) &&
		slices.Equal(a.Admissions[0].Values(), b.Admissions[0].Values()) &&
		slices.Equal(a.Patients[0].Values(), b.Patients[0].Values()) {
		t.Error("expected different seeds to produce different data")
	}
}

func TestGenerate_EmptyPool(t *testing.T) {
	cfg := smallConfig()
	cfg.Staff = 1
	_, err := Generate(cfg, zerolog.Nop())
	if !errors.Is(err, ErrEmptyPool) {
		t.Fatalf("expected ErrEmptyPool, got %v", err)
	}
}

func TestGenerate_InvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Years = 0
	if _, err := Generate(cfg, zerolog.Nop()); err == nil {
		t.Fatal("expected error for zero years")
	}
}

// ---------------------------------------------------------------------------
// End to end at reference scale
// ---------------------------------------------------------------------------

func TestGenerate_ReferenceScale(t *testing.T) {
	if testing.Short() {
		t.Skip("reference scale generation skipped in short mode")
	}
	ds := generate(t, DefaultConfig())
	n := len(ds.Admissions)
	if n < 1000 || n > 2500 {
		t.Fatalf("expected 1000-2500 admissions, got %d", n)
	}
	readmissions := 0
	for _, a := range ds.Admissions {
		if a.WardID < 1 || a.WardID > 12 {
			t.Fatalf("admission %d in unknown ward %d", a.ID, a.WardID)
		}
		if a.IsReadmission {
			readmissions++
		}
	}
	if readmissions == 0 {
		t.Error("expected a positive readmission rate")
	}
}
