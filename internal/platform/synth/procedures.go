package synth

import (
	"time"

	"github.com/medicare/medicare/internal/domain/catalog"
	"github.com/medicare/medicare/internal/domain/hospital"
)

const complicationRate = 0.10

// GenerateProcedureEvents schedules 1 to 3 procedures per sampled admission
// during working hours of a day within the stay. Durations deviate from the
// catalog average and never drop below one minute.
func GenerateProcedureEvents(src *Source, in FactInput) []hospital.ProcedureEvent {
	var out []hospital.ProcedureEvent
	id := 0
	for _, a := range sampleAdmissions(src, in.Admissions, ProcedureFraction) {
		n := src.between(1, 3)
		for i := 0; i < n; i++ {
			id++
			proc := pick(src, in.Procedures)
			scheduled := a.Admitted.
				AddDate(0, 0, src.between(0, a.LengthOfStay-1)).
				Add(time.Duration(src.between(8, 17)) * time.Hour)
			actual := scheduled.Add(time.Duration(src.between(-30, 120)) * time.Minute)
			duration := proc.AvgDurationMinutes + src.between(-30, 60)
			if duration < 1 {
				duration = 1
			}
			ev := hospital.ProcedureEvent{
				ID:                 id,
				PatientID:          a.PatientID,
				AdmissionID:        a.ID,
				ProcedureID:        proc.ID,
				PerformedByStaffID: pick(src, in.Physicians).ID,
				Scheduled:          scheduled,
				Actual:             actual,
				DurationMinutes:    duration,
				Outcome:            pick(src, catalog.Outcomes),
				Notes:              "Procedure completed as planned",
				Charges:            proc.BaseCost,
			}
			if src.chance(complicationRate) {
				ev.Complications = "Minor bleeding"
			}
			out = append(out, ev)
		}
	}
	return out
}
