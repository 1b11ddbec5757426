package synth

import "github.com/medicare/medicare/internal/domain/hospital"

// Fraction of admissions each dependent fact table is generated for.
const (
	MedicationFraction = 0.30
	VitalsFraction     = 0.30
	ActivityFraction   = 0.40
	ProcedureFraction  = 0.40
	LabFraction        = 0.50
	CareGoalFraction   = 0.60
)

// FactInput carries what the dependent fact generators attribute rows to.
type FactInput struct {
	Admissions  []hospital.Admission
	Medications []hospital.Medication
	Procedures  []hospital.Procedure
	Physicians  []hospital.Staff
	Nurses      []hospital.Staff
}

// sampleAdmissions returns round(fraction*n) distinct admissions in
// admission id order.
func sampleAdmissions(src *Source, adms []hospital.Admission, fraction float64) []hospital.Admission {
	idx := src.sampleIndexes(len(adms), fraction)
	out := make([]hospital.Admission, len(idx))
	for i, j := range idx {
		out[i] = adms[j]
	}
	return out
}

func intPtr(v int) *int { return &v }
