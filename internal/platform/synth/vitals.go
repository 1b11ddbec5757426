package synth

import (
	"time"

	"github.com/medicare/medicare/internal/domain/catalog"
	"github.com/medicare/medicare/internal/domain/hospital"
)

// GenerateVitalSigns records 2 to 4 checks a day, 6 hours apart, for each
// sampled admission. The number of checks is fixed per admission and each
// vital is drawn independently within its catalog range.
func GenerateVitalSigns(src *Source, in FactInput) []hospital.VitalSign {
	r := catalog.VitalRanges
	var out []hospital.VitalSign
	id := 0
	for _, a := range sampleAdmissions(src, in.Admissions, VitalsFraction) {
		checks := src.between(2, 4)
		for day := 0; day < a.LengthOfStay; day++ {
			for c := 0; c < checks; c++ {
				id++
				out = append(out, hospital.VitalSign{
					ID:                 id,
					PatientID:          a.PatientID,
					AdmissionID:        a.ID,
					Recorded:           a.Admitted.AddDate(0, 0, day).Add(time.Duration(6*c) * time.Hour),
					RecordedByStaffID:  pick(src, in.Nurses).ID,
					Systolic:           src.between(r.Systolic.Min, r.Systolic.Max),
					Diastolic:          src.between(r.Diastolic.Min, r.Diastolic.Max),
					HeartRate:          src.between(r.HeartRate.Min, r.HeartRate.Max),
					Temperature:        round1(src.uniform(r.Temperature.Min, r.Temperature.Max)),
					RespiratoryRate:    src.between(r.RespiratoryRate.Min, r.RespiratoryRate.Max),
					OxygenSaturation:   src.between(r.OxygenSaturation.Min, r.OxygenSaturation.Max),
					PainLevel:          src.between(r.PainLevel.Min, r.PainLevel.Max),
					ConsciousnessLevel: pick(src, catalog.Consciousness),
				})
			}
		}
	}
	return out
}
