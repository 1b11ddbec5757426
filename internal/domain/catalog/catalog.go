// Package catalog holds the static reference data of the hospital: wards,
// staff roles, medication classes, diagnosis codes and the value pools the
// synthetic generators draw from. Nothing in here has behaviour beyond
// lookups.
package catalog

// Ward is a configured hospital ward.
type Ward struct {
	ID          int
	Name        string
	Department  string
	BedCapacity int
	Type        string
	Floor       int
}

// Wards is the fixed ward configuration. IDs are 1-based and dense.
var Wards = []Ward{
	{1, "ICU", "Critical Care", 20, "Intensive Care", 3},
	{2, "ICU-2", "Critical Care", 20, "Intensive Care", 3},
	{3, "Emergency", "Emergency Medicine", 30, "Emergency", 1},
	{4, "Cardiology", "Cardiac Care", 25, "Specialty", 4},
	{5, "Maternity", "Obstetrics", 20, "Specialty", 2},
	{6, "Pediatrics", "Pediatrics", 30, "Specialty", 2},
	{7, "Surgery", "Surgical Services", 25, "Surgical", 5},
	{8, "Orthopedics", "Orthopedics", 20, "Specialty", 5},
	{9, "Oncology", "Cancer Care", 15, "Specialty", 6},
	{10, "General Medicine A", "Internal Medicine", 40, "General", 4},
	{11, "General Medicine B", "Internal Medicine", 40, "General", 4},
	{12, "Neurology", "Neurosciences", 20, "Specialty", 6},
}

// Staff roles.
const (
	RoleAttendingPhysician     = "Attending Physician"
	RoleResident               = "Resident"
	RoleNursePractitioner      = "Nurse Practitioner"
	RoleRegisteredNurse        = "Registered Nurse"
	RoleLicensedPracticalNurse = "Licensed Practical Nurse"
	RoleNursingAssistant       = "Nursing Assistant"
	RolePhysicalTherapist      = "Physical Therapist"
	RoleOccupationalTherapist  = "Occupational Therapist"
	RoleRespiratoryTherapist   = "Respiratory Therapist"
	RolePharmacist             = "Pharmacist"
)

var StaffRoles = []string{
	RoleAttendingPhysician,
	RoleResident,
	RoleNursePractitioner,
	RoleRegisteredNurse,
	RoleLicensedPracticalNurse,
	RoleNursingAssistant,
	RolePhysicalTherapist,
	RoleOccupationalTherapist,
	RoleRespiratoryTherapist,
	RolePharmacist,
}

// Role sets used for attribution of generated events.
var (
	PhysicianRoles = []string{RoleAttendingPhysician, RoleResident}
	NurseRoles     = []string{RoleRegisteredNurse}
)

var MedicationClasses = []string{
	"Antibiotic",
	"Analgesic",
	"Anticoagulant",
	"Antihypertensive",
	"Diuretic",
	"Antidiabetic",
	"Anticonvulsant",
	"Bronchodilator",
	"Sedative",
	"Antidepressant",
}

// Severity levels of a diagnosis.
const (
	SeverityMild     = "Mild"
	SeverityModerate = "Moderate"
	SeveritySerious  = "Serious"
	SeverityCritical = "Critical"
)

// Diagnosis is an ICD-10 coded catalog entry.
type Diagnosis struct {
	ICD10    string
	Name     string
	Category string
	Severity string
}

var Diagnoses = []Diagnosis{
	{"I21.9", "Acute Myocardial Infarction", "Cardiovascular", SeverityCritical},
	{"J18.9", "Pneumonia", "Respiratory", SeverityModerate},
	{"I50.9", "Heart Failure", "Cardiovascular", SeveritySerious},
	{"N39.0", "Urinary Tract Infection", "Genitourinary", SeverityMild},
	{"E11.9", "Type 2 Diabetes Mellitus", "Endocrine", SeverityModerate},
	{"I63.9", "Cerebral Infarction (Stroke)", "Neurological", SeverityCritical},
	{"J44.1", "COPD with Exacerbation", "Respiratory", SeverityModerate},
	{"K80.2", "Cholecystitis", "Digestive", SeverityModerate},
	{"S72.0", "Hip Fracture", "Injury", SeveritySerious},
	{"C50.9", "Breast Cancer", "Neoplasm", SeveritySerious},
	{"I10", "Essential Hypertension", "Cardiovascular", SeverityMild},
	{"K21.9", "GERD", "Digestive", SeverityMild},
}

// StayRange returns the inclusive length-of-stay range in days for a
// diagnosis severity.
func StayRange(severity string) (lo, hi int) {
	switch severity {
	case SeverityCritical:
		return 5, 21
	case SeveritySerious:
		return 3, 14
	default:
		return 1, 7
	}
}

// IntRange and FloatRange are inclusive sampling bounds.
type IntRange struct{ Min, Max int }

type FloatRange struct{ Min, Max float64 }

// VitalRanges are the bounds vital signs are sampled within. Vitals are
// independent of each other.
var VitalRanges = struct {
	Systolic         IntRange
	Diastolic        IntRange
	HeartRate        IntRange
	Temperature      FloatRange
	RespiratoryRate  IntRange
	OxygenSaturation IntRange
	PainLevel        IntRange
}{
	Systolic:         IntRange{90, 180},
	Diastolic:        IntRange{60, 120},
	HeartRate:        IntRange{55, 120},
	Temperature:      FloatRange{36.0, 39.0},
	RespiratoryRate:  IntRange{12, 24},
	OxygenSaturation: IntRange{88, 100},
	PainLevel:        IntRange{0, 8},
}

// LabTest is a joint (type, name, reference range, unit) tuple.
type LabTest struct {
	Type           string
	Name           string
	ReferenceRange string
	Unit           string
}

var LabTests = []LabTest{
	{"CBC", "Hemoglobin", "12-16 g/dL", "g/dL"},
	{"CBC", "WBC Count", "4-11 K/uL", "K/uL"},
	{"BMP", "Sodium", "135-145 mEq/L", "mEq/L"},
	{"BMP", "Potassium", "3.5-5.0 mEq/L", "mEq/L"},
	{"BMP", "Glucose", "70-100 mg/dL", "mg/dL"},
	{"Lipid Panel", "Total Cholesterol", "<200 mg/dL", "mg/dL"},
	{"Lipid Panel", "HDL", ">40 mg/dL", "mg/dL"},
	{"Liver Function", "ALT", "7-56 U/L", "U/L"},
}

// GoalTemplate is a care-plan goal type with its description.
type GoalTemplate struct {
	Type        string
	Description string
}

var GoalTemplates = []GoalTemplate{
	{"Mobility", "Walk 50 feet independently by discharge"},
	{"Mobility", "Transfer from bed to chair with minimal assistance"},
	{"Pain Management", "Maintain pain level below 4/10"},
	{"Wound Healing", "Wound fully healed within 2 weeks"},
	{"Self-Care", "Complete morning hygiene independently"},
	{"Nutrition", "Consume 75% of meals without assistance"},
	{"Education", "Patient verbalizes understanding of discharge medications"},
}

// Care goal statuses.
const (
	GoalNotStarted   = "Not Started"
	GoalInProgress   = "In Progress"
	GoalAchieved     = "Achieved"
	GoalDiscontinued = "Discontinued"
)

// Medication administration statuses.
const (
	DoseGiven   = "Given"
	DoseMissed  = "Missed"
	DoseRefused = "Refused"
	DoseHeld    = "Held"
)

// DoseReasons maps a non-given status to its fixed reason string.
var DoseReasons = map[string]string{
	DoseMissed:  "Patient asleep",
	DoseRefused: "Patient refused",
	DoseHeld:    "Low BP",
}

// ActivityComments is the pool of nursing comments for daily activity logs.
var ActivityComments = []string{
	"Patient ambulated to hallway with walker, good progress today.",
	"Patient complained of pain in right hip during PT session.",
	"Family visited today, patient mood improved significantly.",
	"Patient required extensive assistance with morning hygiene.",
	"Good appetite today, finished most meals independently.",
	"Patient expressed desire to go home, education provided.",
	"Wound dressing changed, healing well per nursing assessment.",
	"Patient participated in physical therapy exercises reluctantly.",
	"Overnight sleep interrupted 3x for medications/vitals.",
	"Patient displayed confusion this morning, resolved by afternoon.",
	"No bowel movement for 2 days, physician notified.",
	"Patient tolerated ambulation better today vs yesterday.",
}

// Attribute pools. Repeated entries weight the draw.
var (
	BloodTypes         = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}
	Genders            = []string{"Male", "Female", "Other"}
	InsuranceProviders = []string{"Blue Cross", "Aetna", "UnitedHealthcare", "Cigna", "Medicare", "Medicaid"}
	ShiftPatterns      = []string{"Day", "Night", "Rotating", "On-Call"}
	DosageForms        = []string{"Tablet", "Capsule", "Injection", "IV Solution", "Topical Cream", "Inhaler"}
	Manufacturers      = []string{"Pfizer", "Novartis", "Roche", "Merck", "GSK", "AstraZeneca"}
	ProcedureTypes     = []string{"Diagnostic", "Therapeutic", "Surgical", "Rehabilitative"}
	AdmissionTypes     = []string{"Emergency", "Scheduled", "Transfer"}
	Dispositions       = []string{"Home", "Rehab Facility", "Nursing Home", "Expired", "Transfer", "Left AMA"}

	Routes         = []string{"PO", "IV", "IM", "SC", "Topical", "Inhaled"}
	DoseStatuses   = []string{DoseGiven, DoseGiven, DoseGiven, DoseGiven, DoseGiven, DoseMissed, DoseRefused, DoseHeld}
	DoseAmounts    = []int{10, 25, 50, 100, 250, 500}
	DoseUnits      = []string{"mg", "mcg", "units"}
	Consciousness  = []string{"Alert", "Alert", "Alert", "Confused", "Lethargic"}
	MentalStatuses = []string{"Alert", "Alert", "Confused", "Lethargic", "Agitated"}
	Moods          = []string{"Cooperative", "Cooperative", "Anxious", "Depressed", "Irritable"}
	MobilityNotes  = []string{"Walked to chair (assisted)", "Bedbound", "Walked hallway with walker", "Independent ambulation"}
	OutputNotes    = []string{"Urination normal", "No BM today", "Catheter in place", "Normal output"}
	PainLocations  = []string{"None", "Abdomen", "Hip", "Chest", "Back", "Head"}
	Outcomes       = []string{"Successful", "Successful", "Successful", "Complicated", "Aborted"}
	AbnormalFlags  = []string{"Normal", "Normal", "Normal", "High", "Low", "Critical"}
	GoalStatuses   = []string{GoalNotStarted, GoalInProgress, GoalInProgress, GoalInProgress, GoalAchieved, GoalDiscontinued}
)

// ProcedureNames seeds the procedure catalog names.
var ProcedureNames = []string{
	"Appendectomy", "Arthroscopy", "Bronchoscopy", "Cardiac Catheterization",
	"Cholecystectomy", "Colonoscopy", "Coronary Angioplasty", "CT Scan",
	"Echocardiogram", "Endoscopy", "Hip Replacement", "Knee Replacement",
	"Lumbar Puncture", "MRI Scan", "Pacemaker Insertion", "Physical Therapy Session",
	"Skin Graft", "Spinal Fusion", "Thoracentesis", "Tracheostomy",
	"Ultrasound", "Wound Debridement", "Central Line Placement", "Dialysis Session",
	"Chemotherapy Infusion",
}

// Departments returns the ward departments in ward order, duplicates kept
// so that staff and procedures are drawn per ward as well as per department.
func Departments() []string {
	out := make([]string, len(Wards))
	for i, w := range Wards {
		out[i] = w.Department
	}
	return out
}

// HasRole reports whether role is one of roles.
func HasRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
