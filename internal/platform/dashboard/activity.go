package dashboard

// ActivityForm is a nurse's daily activity entry for an admission.
type ActivityForm struct {
	MobilityScore        int     `json:"mobility_score" validate:"min=1,max=5"`
	MobilityNotes        string  `json:"mobility_notes" validate:"max=500"`
	SelfCareScore        int     `json:"self_care_score" validate:"min=1,max=5"`
	BreakfastPct         int     `json:"breakfast_percent_consumed" validate:"min=0,max=100"`
	LunchPct             int     `json:"lunch_percent_consumed" validate:"min=0,max=100"`
	DinnerPct            int     `json:"dinner_percent_consumed" validate:"min=0,max=100"`
	MentalStatus         string  `json:"mental_status" validate:"required,oneof=Alert Confused Lethargic Agitated"`
	Mood                 string  `json:"mood" validate:"required,oneof=Cooperative Anxious Depressed Irritable"`
	PainLevel            int     `json:"pain_level" validate:"min=0,max=10"`
	PainLocation         string  `json:"pain_location" validate:"max=200"`
	BathroomIndependence bool    `json:"bathroom_independence"`
	OutputNotes          string  `json:"output_notes" validate:"max=500"`
	SleepQuality         int     `json:"sleep_quality" validate:"min=1,max=5"`
	SleepHours           float64 `json:"sleep_hours" validate:"min=0,max=24"`
	Comments             string  `json:"comments" validate:"max=2000"`
}

// ActivityReceipt acknowledges a submitted form. The dashboard is read-only,
// so Saved is always false.
type ActivityReceipt struct {
	AdmissionID int    `json:"admission_id"`
	Saved       bool   `json:"saved"`
	Message     string `json:"message"`
}
