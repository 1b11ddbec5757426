package synth

import (
	"time"

	"github.com/medicare/medicare/internal/domain/catalog"
	"github.com/medicare/medicare/internal/domain/hospital"
)

// ReadmissionWindowDays is the maximum gap between a discharge and the next
// admission of the same patient for that admission to count as a
// readmission.
const ReadmissionWindowDays = 30

// AdmissionInput carries the upstream tables admissions are drawn from.
// Every pool must be non-empty and every ward must have at least one bed.
type AdmissionInput struct {
	Patients    []hospital.Patient
	Wards       []hospital.Ward
	Beds        []hospital.Bed
	Diagnoses   []hospital.Diagnosis
	Physicians  []hospital.Staff
	Start       time.Time
	HorizonDays int
}

// GenerateAdmissions produces 2 to 5 visits per patient. Readmission is
// computed as a fold over each patient's visits in generation order.
func GenerateAdmissions(src *Source, in AdmissionInput) []hospital.Admission {
	bedsByWard := make(map[int][]hospital.Bed, len(in.Wards))
	for _, b := range in.Beds {
		bedsByWard[b.WardID] = append(bedsByWard[b.WardID], b)
	}

	var out []hospital.Admission
	id := 0
	for _, p := range in.Patients {
		visits := src.between(2, 5)
		var prevDischarge time.Time
		for k := 0; k < visits; k++ {
			id++
			admitted := in.Start.
				AddDate(0, 0, src.between(0, in.HorizonDays)).
				Add(time.Duration(src.between(0, 23))*time.Hour +
					time.Duration(src.between(0, 59))*time.Minute)

			primary := pick(src, in.Diagnoses)
			lo, hi := catalog.StayRange(primary.Severity)
			los := src.between(lo, hi)
			discharged := admitted.AddDate(0, 0, los)

			ward := pick(src, in.Wards)
			bed := pick(src, bedsByWard[ward.ID])
			doctor := pick(src, in.Physicians)

			a := hospital.Admission{
				ID:                    id,
				PatientID:             p.ID,
				WardID:                ward.ID,
				BedID:                 bed.ID,
				Admitted:              admitted,
				Discharged:            discharged,
				AdmissionType:         pick(src, catalog.AdmissionTypes),
				ChiefComplaint:        primary.Name,
				PrimaryDiagnosisID:    primary.ID,
				SecondaryDiagnosisIDs: secondaryDiagnoses(src, in.Diagnoses, primary.ID),
				AttendingDoctorID:     doctor.ID,
				LengthOfStay:          los,
				DischargeDisposition:  pick(src, catalog.Dispositions),
				TotalCharges:          round2(src.uniform(5000, 150000)),
			}
			if k > 0 {
				gap := floorDays(prevDischarge, admitted)
				a.DaysSinceDischarge = &gap
				a.IsReadmission = gap <= ReadmissionWindowDays
			}
			prevDischarge = discharged
			out = append(out, a)
		}
	}
	return out
}

// secondaryDiagnoses draws 0 to 2 distinct diagnoses other than the primary.
func secondaryDiagnoses(src *Source, pool []hospital.Diagnosis, primaryID int) []int {
	n := src.between(0, 2)
	if n == 0 {
		return nil
	}
	others := make([]hospital.Diagnosis, 0, len(pool))
	for _, d := range pool {
		if d.ID != primaryID {
			others = append(others, d)
		}
	}
	picked := sampleDistinct(src, others, n)
	ids := make([]int, len(picked))
	for i, d := range picked {
		ids[i] = d.ID
	}
	return ids
}
