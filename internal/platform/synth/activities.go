package synth

import (
	"time"

	"github.com/medicare/medicare/internal/domain/catalog"
	"github.com/medicare/medicare/internal/domain/hospital"
)

// commentRate is the share of daily activity logs that carry a nursing
// comment.
const commentRate = 0.70

// GenerateDailyActivities writes one activities-of-daily-living log per day
// of stay, recorded in the evening.
func GenerateDailyActivities(src *Source, in FactInput) []hospital.DailyActivity {
	var out []hospital.DailyActivity
	id := 0
	for _, a := range sampleAdmissions(src, in.Admissions, ActivityFraction) {
		for day := 0; day < a.LengthOfStay; day++ {
			id++
			at := a.Admitted.AddDate(0, 0, day)
			act := hospital.DailyActivity{
				ID:                          id,
				PatientID:                   a.PatientID,
				AdmissionID:                 a.ID,
				ActivityDate:                dayOf(at),
				RecordedByStaffID:           pick(src, in.Nurses).ID,
				Recorded:                    at.Add(20 * time.Hour),
				MobilityScore:               src.between(1, 5),
				MobilityNotes:               pick(src, catalog.MobilityNotes),
				SelfCareScore:               src.between(1, 5),
				BreakfastPct:                src.between(25, 100),
				LunchPct:                    src.between(25, 100),
				DinnerPct:                   src.between(25, 100),
				FeedingAssistanceNeeded:     src.coin(),
				BathroomIndependence:        pick(src, []bool{true, true, false}),
				ContinentBladder:            pick(src, []bool{true, true, true, false}),
				ContinentBowel:              pick(src, []bool{true, true, true, false}),
				OutputNotes:                 pick(src, catalog.OutputNotes),
				MentalStatus:                pick(src, catalog.MentalStatuses),
				Mood:                        pick(src, catalog.Moods),
				PainLevel:                   src.between(0, 7),
				PainLocation:                pick(src, catalog.PainLocations),
				PainManagementEffectiveness: src.between(1, 5),
				SleepQuality:                src.between(2, 5),
				SleepHours:                  round1(src.uniform(4.0, 9.0)),
			}
			if src.chance(commentRate) {
				act.Comments = pick(src, catalog.ActivityComments)
			}
			out = append(out, act)
		}
	}
	return out
}
