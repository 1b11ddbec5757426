package synth

import (
	"strconv"
	"time"

	"github.com/medicare/medicare/internal/domain/catalog"
	"github.com/medicare/medicare/internal/domain/hospital"
)

const labDepartment = "Clinical Lab"

// GenerateLabResults orders 1 to 4 tests per sampled admission. Samples are
// collected in the morning and resulted 2 to 24 hours later.
func GenerateLabResults(src *Source, in FactInput) []hospital.LabResult {
	var out []hospital.LabResult
	id := 0
	for _, a := range sampleAdmissions(src, in.Admissions, LabFraction) {
		n := src.between(1, 4)
		for i := 0; i < n; i++ {
			id++
			test := pick(src, catalog.LabTests)
			collected := a.Admitted.
				AddDate(0, 0, src.between(0, a.LengthOfStay-1)).
				Add(time.Duration(src.between(6, 10)) * time.Hour)
			out = append(out, hospital.LabResult{
				ID:               id,
				PatientID:        a.PatientID,
				AdmissionID:      a.ID,
				TestType:         test.Type,
				TestName:         test.Name,
				OrderedByStaffID: pick(src, in.Physicians).ID,
				Collected:        collected,
				Resulted:         collected.Add(time.Duration(src.between(2, 24)) * time.Hour),
				Value:            strconv.FormatFloat(round1(src.uniform(50, 200)), 'f', 1, 64),
				Unit:             test.Unit,
				ReferenceRange:   test.ReferenceRange,
				AbnormalFlag:     pick(src, catalog.AbnormalFlags),
				Department:       labDepartment,
			})
		}
	}
	return out
}
