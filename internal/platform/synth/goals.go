package synth

import (
	"time"

	"github.com/medicare/medicare/internal/domain/catalog"
	"github.com/medicare/medicare/internal/domain/hospital"
)

// GenerateCareGoals sets 2 to 4 care plan goals per sampled admission, all
// targeting the discharge date.
func GenerateCareGoals(src *Source, in FactInput) []hospital.CareGoal {
	var out []hospital.CareGoal
	id := 0
	for _, a := range sampleAdmissions(src, in.Admissions, CareGoalFraction) {
		n := src.between(2, 4)
		for i := 0; i < n; i++ {
			id++
			tpl := pick(src, catalog.GoalTemplates)
			status := pick(src, catalog.GoalStatuses)
			out = append(out, hospital.CareGoal{
				ID:               id,
				PatientID:        a.PatientID,
				AdmissionID:      a.ID,
				Type:             tpl.Type,
				Description:      tpl.Description,
				TargetDate:       dayOf(a.Discharged),
				Status:           status,
				ProgressPct:      progressFor(src, status),
				CreatedByStaffID: pick(src, in.Nurses).ID,
				Created:          a.Admitted.Add(time.Duration(src.between(2, 24)) * time.Hour),
				LastUpdated:      a.Admitted.AddDate(0, 0, src.between(1, a.LengthOfStay)),
			})
		}
	}
	return out
}

// progressFor derives the progress percentage from a goal status.
func progressFor(src *Source, status string) int {
	switch status {
	case catalog.GoalAchieved:
		return 100
	case catalog.GoalInProgress:
		return src.between(30, 90)
	default:
		return 0
	}
}
