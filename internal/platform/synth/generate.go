package synth

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/medicare/medicare/internal/domain/catalog"
	"github.com/medicare/medicare/internal/domain/hospital"
)

// ErrEmptyPool is returned when an upstream table that generation draws
// from is empty.
var ErrEmptyPool = errors.New("empty pool")

// Dataset holds every generated table.
type Dataset struct {
	Config      Config
	GeneratedAt time.Time
	Duration    time.Duration

	Patients    []hospital.Patient
	Staff       []hospital.Staff
	Wards       []hospital.Ward
	Medications []hospital.Medication
	Procedures  []hospital.Procedure
	Diagnoses   []hospital.Diagnosis
	Beds        []hospital.Bed
	Dates       []hospital.DateDim

	Admissions                []hospital.Admission
	MedicationAdministrations []hospital.MedicationAdministration
	VitalSigns                []hospital.VitalSign
	DailyActivities           []hospital.DailyActivity
	ProcedureEvents           []hospital.ProcedureEvent
	LabResults                []hospital.LabResult
	CareGoals                 []hospital.CareGoal
}

// Generate builds a complete dataset. The order of the steps below is part
// of the reproducibility contract: changing it changes every table after
// the moved step.
func Generate(cfg Config, logger zerolog.Logger) (*Dataset, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator config: %w", err)
	}
	started := time.Now()
	src := NewSource(cfg.Seed)
	ds := &Dataset{Config: cfg, GeneratedAt: started.UTC()}

	ds.Patients = GeneratePatients(src, cfg.Patients, cfg.Start)
	logRows(logger, hospital.TablePatients, len(ds.Patients))
	ds.Staff = GenerateStaff(src, cfg.Staff, cfg.Start)
	logRows(logger, hospital.TableStaff, len(ds.Staff))
	ds.Wards = GenerateWards(src)
	logRows(logger, hospital.TableWards, len(ds.Wards))
	ds.Medications = GenerateMedications(src, cfg.Medications)
	logRows(logger, hospital.TableMedications, len(ds.Medications))
	ds.Procedures = GenerateProcedures(src, cfg.Procedures)
	logRows(logger, hospital.TableProcedures, len(ds.Procedures))
	ds.Diagnoses = GenerateDiagnoses()
	logRows(logger, hospital.TableDiagnoses, len(ds.Diagnoses))
	ds.Beds = GenerateBeds(src, ds.Wards)
	logRows(logger, hospital.TableBeds, len(ds.Beds))
	ds.Dates = GenerateDates(cfg.Start, cfg.End())
	logRows(logger, hospital.TableDates, len(ds.Dates))

	physicians := StaffWithRoles(ds.Staff, catalog.PhysicianRoles)
	nurses := StaffWithRoles(ds.Staff, catalog.NurseRoles)
	if err := checkPools(ds, physicians, nurses); err != nil {
		return nil, err
	}

	ds.Admissions = GenerateAdmissions(src, AdmissionInput{
		Patients:    ds.Patients,
		Wards:       ds.Wards,
		Beds:        ds.Beds,
		Diagnoses:   ds.Diagnoses,
		Physicians:  physicians,
		Start:       cfg.Start,
		HorizonDays: cfg.HorizonDays(),
	})
	logRows(logger, hospital.TableAdmissions, len(ds.Admissions))

	in := FactInput{
		Admissions:  ds.Admissions,
		Medications: ds.Medications,
		Procedures:  ds.Procedures,
		Physicians:  physicians,
		Nurses:      nurses,
	}
	ds.MedicationAdministrations = GenerateMedicationAdministrations(src, in)
	logRows(logger, hospital.TableMedicationAdm, len(ds.MedicationAdministrations))
	ds.VitalSigns = GenerateVitalSigns(src, in)
	logRows(logger, hospital.TableVitalSigns, len(ds.VitalSigns))
	ds.DailyActivities = GenerateDailyActivities(src, in)
	logRows(logger, hospital.TableActivities, len(ds.DailyActivities))
	ds.ProcedureEvents = GenerateProcedureEvents(src, in)
	logRows(logger, hospital.TableProcedureEvts, len(ds.ProcedureEvents))
	ds.LabResults = GenerateLabResults(src, in)
	logRows(logger, hospital.TableLabResults, len(ds.LabResults))
	ds.CareGoals = GenerateCareGoals(src, in)
	logRows(logger, hospital.TableCareGoals, len(ds.CareGoals))

	ds.Duration = time.Since(started)
	return ds, nil
}

func logRows(logger zerolog.Logger, table string, n int) {
	logger.Info().Str("table", table).Int("rows", n).Msg("generated " + table)
}

// checkPools verifies every pool admissions and facts draw from.
func checkPools(ds *Dataset, physicians, nurses []hospital.Staff) error {
	switch {
	case len(ds.Patients) == 0:
		return fmt.Errorf("%w: patients", ErrEmptyPool)
	case len(ds.Wards) == 0:
		return fmt.Errorf("%w: wards", ErrEmptyPool)
	case len(ds.Diagnoses) == 0:
		return fmt.Errorf("%w: diagnoses", ErrEmptyPool)
	case len(ds.Medications) == 0:
		return fmt.Errorf("%w: medications", ErrEmptyPool)
	case len(ds.Procedures) == 0:
		return fmt.Errorf("%w: procedures", ErrEmptyPool)
	case len(physicians) == 0:
		return fmt.Errorf("%w: no staff with a physician role", ErrEmptyPool)
	case len(nurses) == 0:
		return fmt.Errorf("%w: no staff with a nurse role", ErrEmptyPool)
	}
	beds := make(map[int]int, len(ds.Wards))
	for _, b := range ds.Beds {
		beds[b.WardID]++
	}
	for _, w := range ds.Wards {
		if beds[w.ID] == 0 {
			return fmt.Errorf("%w: ward %q has no beds", ErrEmptyPool, w.Name)
		}
	}
	return nil
}

// StaffWithRoles filters staff down to the given roles, keeping order.
func StaffWithRoles(staff []hospital.Staff, roles []string) []hospital.Staff {
	var out []hospital.Staff
	for _, s := range staff {
		if catalog.HasRole(roles, s.Role) {
			out = append(out, s)
		}
	}
	return out
}

// Rows returns the rows of the named table.
func (d *Dataset) Rows(table string) []hospital.Row {
	switch table {
	case hospital.TablePatients:
		return rows(d.Patients)
	case hospital.TableStaff:
		return rows(d.Staff)
	case hospital.TableWards:
		return rows(d.Wards)
	case hospital.TableMedications:
		return rows(d.Medications)
	case hospital.TableProcedures:
		return rows(d.Procedures)
	case hospital.TableDiagnoses:
		return rows(d.Diagnoses)
	case hospital.TableBeds:
		return rows(d.Beds)
	case hospital.TableDates:
		return rows(d.Dates)
	case hospital.TableAdmissions:
		return rows(d.Admissions)
	case hospital.TableMedicationAdm:
		return rows(d.MedicationAdministrations)
	case hospital.TableVitalSigns:
		return rows(d.VitalSigns)
	case hospital.TableActivities:
		return rows(d.DailyActivities)
	case hospital.TableProcedureEvts:
		return rows(d.ProcedureEvents)
	case hospital.TableLabResults:
		return rows(d.LabResults)
	case hospital.TableCareGoals:
		return rows(d.CareGoals)
	}
	return nil
}

func rows[T hospital.Row](in []T) []hospital.Row {
	out := make([]hospital.Row, len(in))
	for i, r := range in {
		out[i] = r
	}
	return out
}

// Counts returns the row count of every table keyed by table name.
func (d *Dataset) Counts() map[string]int {
	counts := make(map[string]int, len(hospital.Tables))
	for _, t := range hospital.Tables {
		counts[t.Name] = len(d.Rows(t.Name))
	}
	return counts
}
