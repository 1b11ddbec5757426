// Package hospital defines the typed rows of the generated hospital dataset
// and the fixed table contract they are serialized under.
package hospital

import "time"

// Row is anything that can be written as one line of a table. Values must
// follow the column order of the matching Table.
type Row interface {
	Values() []string
}

// ---------------------------------------------------------------------------
// Dimensions
// ---------------------------------------------------------------------------

type Patient struct {
	ID                    int
	MRN                   string
	FirstName             string
	LastName              string
	DateOfBirth           time.Time
	Gender                string
	BloodType             string
	Address               string
	City                  string
	State                 string
	ZipCode               string
	Phone                 string
	Email                 string
	InsuranceProvider     string
	EmergencyContactName  string
	EmergencyContactPhone string
	EffectiveDate         time.Time
	EndDate               *time.Time
	IsCurrent             bool
}

type Staff struct {
	ID             int
	FirstName      string
	LastName       string
	Role           string
	Department     string
	ShiftPattern   string
	Qualifications string
	HireDate       time.Time
	IsActive       bool
}

type Ward struct {
	ID                  int
	Name                string
	Department          string
	BedCapacity         int
	Type                string
	Floor               int
	NurseStationContact string
}

type Medication struct {
	ID                int
	DrugName          string
	GenericName       string
	DrugClass         string
	DosageForm        string
	Manufacturer      string
	CostPerUnit       float64
	Contraindications string
}

type Procedure struct {
	ID                 int
	Name               string
	Type               string
	Department         string
	AvgDurationMinutes int
	BaseCost           float64
	RequiresAnesthesia bool
}

type Diagnosis struct {
	ID       int
	ICD10    string
	Name     string
	Category string
	Severity string
}

// Bed availability is an independent flag; it is not reconciled with
// admissions occupying the bed.
type Bed struct {
	ID            int
	WardID        int
	Number        string
	Type          string
	HasVentilator bool
	HasMonitor    bool
	IsAvailable   bool
}

type DateDim struct {
	ID         int
	Date       time.Time
	Day        int
	DayOfWeek  string
	Week       int
	Month      int
	MonthName  string
	Quarter    int
	Year       int
	IsWeekend  bool
	IsHoliday  bool
	FiscalYear int
}

// ---------------------------------------------------------------------------
// Facts
// ---------------------------------------------------------------------------

// Admission is the central fact. Discharge is always Admitted plus
// LengthOfStay days.
type Admission struct {
	ID                    int
	PatientID             int
	WardID                int
	BedID                 int
	Admitted              time.Time
	Discharged            time.Time
	AdmissionType         string
	ChiefComplaint        string
	PrimaryDiagnosisID    int
	SecondaryDiagnosisIDs []int
	AttendingDoctorID     int
	LengthOfStay          int
	IsReadmission         bool
	DaysSinceDischarge    *int
	DischargeDisposition  string
	TotalCharges          float64
}

type MedicationAdministration struct {
	ID                    int
	PatientID             int
	AdmissionID           int
	MedicationID          int
	PrescribedByStaffID   int
	AdministeredByStaffID *int
	Scheduled             time.Time
	Administered          *time.Time
	Dosage                string
	Route                 string
	Status                string
	ReasonIfNotGiven      string
}

type VitalSign struct {
	ID                 int
	PatientID          int
	AdmissionID        int
	Recorded           time.Time
	RecordedByStaffID  int
	Systolic           int
	Diastolic          int
	HeartRate          int
	Temperature        float64
	RespiratoryRate    int
	OxygenSaturation   int
	PainLevel          int
	ConsciousnessLevel string
}

type DailyActivity struct {
	ID                          int
	PatientID                   int
	AdmissionID                 int
	ActivityDate                time.Time
	RecordedByStaffID           int
	Recorded                    time.Time
	MobilityScore               int
	MobilityNotes               string
	SelfCareScore               int
	BreakfastPct                int
	LunchPct                    int
	DinnerPct                   int
	FeedingAssistanceNeeded     bool
	BathroomIndependence        bool
	ContinentBladder            bool
	ContinentBowel              bool
	OutputNotes                 string
	MentalStatus                string
	Mood                        string
	PainLevel                   int
	PainLocation                string
	PainManagementEffectiveness int
	SleepQuality                int
	SleepHours                  float64
	Comments                    string
}

type ProcedureEvent struct {
	ID                 int
	PatientID          int
	AdmissionID        int
	ProcedureID        int
	PerformedByStaffID int
	Scheduled          time.Time
	Actual             time.Time
	DurationMinutes    int
	Outcome            string
	Complications      string
	Notes              string
	Charges            float64
}

type LabResult struct {
	ID               int
	PatientID        int
	AdmissionID      int
	TestType         string
	TestName         string
	OrderedByStaffID int
	Collected        time.Time
	Resulted         time.Time
	Value            string
	Unit             string
	ReferenceRange   string
	AbnormalFlag     string
	Department       string
}

type CareGoal struct {
	ID               int
	PatientID        int
	AdmissionID      int
	Type             string
	Description      string
	TargetDate       time.Time
	Status           string
	ProgressPct      int
	CreatedByStaffID int
	Created          time.Time
	LastUpdated      time.Time
}
