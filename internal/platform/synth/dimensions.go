package synth

import (
	"fmt"
	"strings"
	"time"

	"github.com/medicare/medicare/internal/domain/catalog"
	"github.com/medicare/medicare/internal/domain/hospital"
)

// ---------------------------------------------------------------------------
// Name pools
// ---------------------------------------------------------------------------

// Given names are drawn from gendered pools so that they agree with the
// patient's recorded gender. Surnames and contact data come from the faker.
var (
	firstNamesMale = []string{
		"James", "Robert", "John", "Michael", "David", "William", "Richard",
		"Joseph", "Thomas", "Christopher", "Charles", "Daniel", "Matthew",
		"Anthony", "Mark", "Donald", "Steven", "Paul", "Andrew", "Joshua",
		"Kenneth", "Kevin", "Brian", "George", "Timothy", "Ronald", "Edward",
		"Jason", "Jeffrey", "Ryan", "Jacob", "Gary", "Nicholas", "Eric",
	}
	firstNamesFemale = []string{
		"Mary", "Patricia", "Jennifer", "Linda", "Barbara", "Elizabeth",
		"Susan", "Jessica", "Sarah", "Karen", "Lisa", "Nancy", "Betty",
		"Margaret", "Sandra", "Ashley", "Dorothy", "Kimberly", "Emily",
		"Donna", "Michelle", "Carol", "Amanda", "Melissa", "Deborah",
		"Stephanie", "Rebecca", "Sharon", "Laura", "Cynthia", "Kathleen",
	}
)

// ---------------------------------------------------------------------------
// Dimension generators
// ---------------------------------------------------------------------------

// GeneratePatients produces n patients. Birth dates fall 18 to 95 years
// before the start date.
func GeneratePatients(src *Source, n int, start time.Time) []hospital.Patient {
	out := make([]hospital.Patient, 0, n)
	for i := 1; i <= n; i++ {
		gender := pick(src, catalog.Genders)
		var first string
		if gender == "Male" {
			first = pick(src, firstNamesMale)
		} else {
			first = pick(src, firstNamesFemale)
		}
		last := src.fake.LastName()
		age := src.between(18, 95)
		dob := start.AddDate(-age, 0, -src.between(0, 364))

		out = append(out, hospital.Patient{
			ID:                    i,
			MRN:                   fmt.Sprintf("MRN%08d", i),
			FirstName:             first,
			LastName:              last,
			DateOfBirth:           dob,
			Gender:                gender,
			BloodType:             pick(src, catalog.BloodTypes),
			Address:               src.fake.Street(),
			City:                  src.fake.City(),
			State:                 src.fake.StateAbr(),
			ZipCode:               src.fake.Zip(),
			Phone:                 src.phone(),
			Email:                 strings.ToLower(fmt.Sprintf("%s.%s%d@example.com", first, last, i)),
			InsuranceProvider:     pick(src, catalog.InsuranceProviders),
			EmergencyContactName:  src.fake.Name(),
			EmergencyContactPhone: src.phone(),
			EffectiveDate:         start,
			IsCurrent:             true,
		})
	}
	return out
}

// GenerateStaff produces n staff members with uniformly drawn roles. Hire
// dates fall 1 to 15 years before the start date.
func GenerateStaff(src *Source, n int, start time.Time) []hospital.Staff {
	departments := catalog.Departments()
	out := make([]hospital.Staff, 0, n)
	for i := 1; i <= n; i++ {
		role := pick(src, catalog.StaffRoles)
		out = append(out, hospital.Staff{
			ID:             i,
			FirstName:      src.fake.FirstName(),
			LastName:       src.fake.LastName(),
			Role:           role,
			Department:     pick(src, departments),
			ShiftPattern:   pick(src, catalog.ShiftPatterns),
			Qualifications: "Licensed " + role,
			HireDate:       start.AddDate(0, 0, -src.between(365, 15*365)),
			IsActive:       true,
		})
	}
	return out
}

// GenerateWards materialises the configured wards.
func GenerateWards(src *Source) []hospital.Ward {
	out := make([]hospital.Ward, 0, len(catalog.Wards))
	for _, w := range catalog.Wards {
		out = append(out, hospital.Ward{
			ID:                  w.ID,
			Name:                w.Name,
			Department:          w.Department,
			BedCapacity:         w.BedCapacity,
			Type:                w.Type,
			Floor:               w.Floor,
			NurseStationContact: src.phone(),
		})
	}
	return out
}

// GenerateBeds creates one bed per unit of ward capacity. Bed ids are
// global and dense. Availability is an independent coin flip and is not
// reconciled with admissions.
func GenerateBeds(src *Source, wards []hospital.Ward) []hospital.Bed {
	var out []hospital.Bed
	id := 0
	for _, w := range wards {
		prefix := strings.ToUpper(w.Name)
		if len(prefix) > 3 {
			prefix = prefix[:3]
		}
		bedType := "Standard"
		if strings.Contains(w.Name, "ICU") {
			bedType = "ICU"
		}
		for n := 1; n <= w.BedCapacity; n++ {
			id++
			out = append(out, hospital.Bed{
				ID:            id,
				WardID:        w.ID,
				Number:        fmt.Sprintf("%s-%03d", prefix, n),
				Type:          bedType,
				HasVentilator: bedType == "ICU",
				HasMonitor:    true,
				IsAvailable:   src.coin(),
			})
		}
	}
	return out
}

// GenerateMedications produces n medications with generated names.
func GenerateMedications(src *Source, n int) []hospital.Medication {
	out := make([]hospital.Medication, 0, n)
	for i := 1; i <= n; i++ {
		class := pick(src, catalog.MedicationClasses)
		out = append(out, hospital.Medication{
			ID:                i,
			DrugName:          capitalize(src.fake.Word()) + "zole",
			GenericName:       strings.ToLower(src.fake.Word()) + "mine",
			DrugClass:         class,
			DosageForm:        pick(src, catalog.DosageForms),
			Manufacturer:      pick(src, catalog.Manufacturers),
			CostPerUnit:       round2(src.uniform(0.5, 500)),
			Contraindications: "Allergy to " + class,
		})
	}
	return out
}

// GenerateProcedures produces n catalog procedures. Only surgical
// procedures require anaesthesia.
func GenerateProcedures(src *Source, n int) []hospital.Procedure {
	departments := catalog.Departments()
	out := make([]hospital.Procedure, 0, n)
	for i := 1; i <= n; i++ {
		typ := pick(src, catalog.ProcedureTypes)
		out = append(out, hospital.Procedure{
			ID:                 i,
			Name:               pick(src, catalog.ProcedureNames),
			Type:               typ,
			Department:         pick(src, departments),
			AvgDurationMinutes: src.between(15, 480),
			BaseCost:           round2(src.uniform(100, 50000)),
			RequiresAnesthesia: typ == "Surgical",
		})
	}
	return out
}

// GenerateDiagnoses materialises the ICD-10 catalog with ids 1..n.
func GenerateDiagnoses() []hospital.Diagnosis {
	out := make([]hospital.Diagnosis, 0, len(catalog.Diagnoses))
	for i, d := range catalog.Diagnoses {
		out = append(out, hospital.Diagnosis{
			ID:       i + 1,
			ICD10:    d.ICD10,
			Name:     d.Name,
			Category: d.Category,
			Severity: d.Severity,
		})
	}
	return out
}

// GenerateDates produces one row per day from start to end inclusive.
func GenerateDates(start, end time.Time) []hospital.DateDim {
	var out []hospital.DateDim
	id := 0
	for d := dayOf(start); !d.After(end); d = d.AddDate(0, 0, 1) {
		id++
		_, week := d.ISOWeek()
		wd := d.Weekday()
		out = append(out, hospital.DateDim{
			ID:         id,
			Date:       d,
			Day:        d.Day(),
			DayOfWeek:  wd.String(),
			Week:       week,
			Month:      int(d.Month()),
			MonthName:  d.Month().String(),
			Quarter:    (int(d.Month())-1)/3 + 1,
			Year:       d.Year(),
			IsWeekend:  wd == time.Saturday || wd == time.Sunday,
			IsHoliday:  false,
			FiscalYear: d.Year(),
		})
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
