package synth

import (
	"fmt"
	"time"

	"github.com/medicare/medicare/internal/domain/catalog"
	"github.com/medicare/medicare/internal/domain/hospital"
)

// GenerateMedicationAdministrations builds the medication administration
// record. Each sampled admission gets 3 to 8 distinct medications, each
// scheduled 1 to 4 times a day for the whole stay at 8 hour spacing.
// A dose that was not given carries a reason and no administering nurse.
func GenerateMedicationAdministrations(src *Source, in FactInput) []hospital.MedicationAdministration {
	var out []hospital.MedicationAdministration
	id := 0
	for _, a := range sampleAdmissions(src, in.Admissions, MedicationFraction) {
		meds := sampleDistinct(src, in.Medications, src.between(3, 8))
		for _, med := range meds {
			for day := 0; day < a.LengthOfStay; day++ {
				doses := src.between(1, 4)
				for dose := 0; dose < doses; dose++ {
					id++
					scheduled := a.Admitted.AddDate(0, 0, day).Add(time.Duration(8*dose) * time.Hour)
					status := pick(src, catalog.DoseStatuses)
					m := hospital.MedicationAdministration{
						ID:                  id,
						PatientID:           a.PatientID,
						AdmissionID:         a.ID,
						MedicationID:        med.ID,
						PrescribedByStaffID: pick(src, in.Physicians).ID,
						Scheduled:           scheduled,
						Dosage:              fmt.Sprintf("%d %s", pick(src, catalog.DoseAmounts), pick(src, catalog.DoseUnits)),
						Route:               pick(src, catalog.Routes),
						Status:              status,
					}
					if status == catalog.DoseGiven {
						given := scheduled.Add(time.Duration(src.between(-30, 60)) * time.Minute)
						m.Administered = &given
						m.AdministeredByStaffID = intPtr(pick(src, in.Nurses).ID)
					} else {
						m.ReasonIfNotGiven = catalog.DoseReasons[status]
					}
					out = append(out, m)
				}
			}
		}
	}
	return out
}
