package dashboard

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/medicare/medicare/internal/platform/reporting"
)

// Alert levels.
const (
	LevelSuccess = "success"
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Thresholds.
const (
	OccupancyWarnPct        = 90.0
	ReadmissionErrorPct     = 15.0
	ReadmissionTargetPct    = 12.0
	AdherenceTargetPct      = 95.0
	MedicationIssuesPerWard = 20
)

// Alert is a status message shown on a page.
type Alert struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Recommendation is a quality improvement hint.
type Recommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// KPI is a value derived from one or more widget results.
type KPI struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
	Delta string  `json:"delta,omitempty"`
}

// results indexes successful widget results by query ID.
type results map[string]*WidgetResult

func (r results) rows(queryID string) ([]reporting.Row, bool) {
	w, ok := r[queryID]
	if !ok || w.Error != "" {
		return nil, false
	}
	return w.Rows, true
}

func (r results) first(queryID, column string) (float64, bool) {
	rows, ok := r.rows(queryID)
	if !ok || len(rows) == 0 {
		return 0, false
	}
	return number(rows[0][column])
}

// executiveAlerts flags high occupancy and readmissions. A failed query
// suppresses the all-clear message.
func executiveAlerts(r results) []Alert {
	var alerts []Alert
	if v, ok := r.first(reporting.QueryCurrentOccupancy, "occupancy_rate"); ok && v > OccupancyWarnPct {
		alerts = append(alerts, Alert{LevelWarning,
			fmt.Sprintf("High occupancy rate: %.1f%% (Target: <%.0f%%)", v, OccupancyWarnPct)})
	}
	if v, ok := r.first(reporting.QueryReadmissionRate, "readmission_rate"); ok && v > ReadmissionErrorPct {
		alerts = append(alerts, Alert{LevelError,
			fmt.Sprintf("Elevated readmission rate: %.1f%% (Target: <%.0f%%)", v, ReadmissionTargetPct)})
	}
	_, occOK := r.rows(reporting.QueryCurrentOccupancy)
	_, readOK := r.rows(reporting.QueryReadmissionRate)
	if len(alerts) == 0 && occOK && readOK {
		alerts = append(alerts, Alert{LevelSuccess, "All metrics within normal ranges"})
	}
	return alerts
}

// medicationKPIs totals the adherence rows across wards.
func medicationKPIs(r results) []KPI {
	rows, ok := r.rows(reporting.QueryMedicationAdherence)
	if !ok || len(rows) == 0 {
		return nil
	}
	var total, given float64
	for _, row := range rows {
		t, _ := number(row["total_doses"])
		g, _ := number(row["doses_given"])
		total += t
		given += g
	}
	adherence := 0.0
	if total > 0 {
		adherence = given / total * 100
	}
	return []KPI{
		{Label: "Total Scheduled Doses", Value: total},
		{Label: "Doses Administered", Value: given},
		{Label: "Overall Adherence Rate", Value: round1(adherence), Unit: "%",
			Delta: fmt.Sprintf("%+.1f%% vs target", adherence-AdherenceTargetPct)},
		{Label: "Doses Not Given", Value: total - given},
	}
}

// medicationAlerts lists wards below the adherence target and wards whose
// missed, refused and held doses add up past the issue limit.
func medicationAlerts(r results) []Alert {
	var alerts []Alert
	if rows, ok := r.rows(reporting.QueryMedicationAdherence); ok && len(rows) > 0 {
		below := 0
		for _, row := range rows {
			rate, ok := number(row["adherence_rate"])
			if !ok || rate >= AdherenceTargetPct {
				continue
			}
			below++
			alerts = append(alerts, Alert{LevelWarning,
				fmt.Sprintf("%s: %.1f%% adherence (Target: %.0f%%)", text(row["ward_name"]), rate, AdherenceTargetPct)})
		}
		if below == 0 {
			alerts = append(alerts, Alert{LevelSuccess,
				fmt.Sprintf("All wards meeting adherence targets (>%.0f%%)", AdherenceTargetPct)})
		}
	}

	if rows, ok := r.rows(reporting.QueryMedicationErrors); ok {
		perWard := map[string]float64{}
		for _, row := range rows {
			n, _ := number(row["count"])
			perWard[text(row["ward_name"])] += n
		}
		wards := make([]string, 0, len(perWard))
		for w := range perWard {
			wards = append(wards, w)
		}
		sort.Strings(wards)
		for _, w := range wards {
			if perWard[w] > MedicationIssuesPerWard {
				alerts = append(alerts, Alert{LevelError,
					fmt.Sprintf("%s: %.0f medication issues (>%d)", w, perWard[w], MedicationIssuesPerWard)})
			}
		}
	}
	return alerts
}

// qualityFindings compares the latest month with the 12-month average and
// builds the improvement recommendations.
func qualityFindings(r results) ([]Alert, []Recommendation) {
	var alerts []Alert
	if rows, ok := r.rows(reporting.QueryReadmissionTrend); ok {
		var rates []float64
		for _, row := range rows {
			if v, ok := number(row["readmission_rate"]); ok {
				rates = append(rates, v)
			}
		}
		if len(rates) == 0 {
			alerts = append(alerts, Alert{LevelInfo, "Insufficient data for trend analysis"})
		} else {
			latest, avg := rates[len(rates)-1], mean(rates)
			if latest < avg {
				alerts = append(alerts, Alert{LevelSuccess,
					fmt.Sprintf("Current month (%.1f%%) is below 12-month average (%.1f%%)", latest, avg)})
			} else {
				alerts = append(alerts, Alert{LevelWarning,
					fmt.Sprintf("Current month (%.1f%%) is above 12-month average (%.1f%%)", latest, avg)})
			}
		}
	}

	var recs []Recommendation
	if v, ok := r.first(reporting.QueryReadmissionRate, "readmission_rate"); ok && v > ReadmissionTargetPct {
		recs = append(recs, Recommendation{
			Title:       "High Readmission Rate",
			Description: fmt.Sprintf("Current rate is %.1f%%. Focus on discharge planning and follow-up care.", v),
		})
	}
	if rows, ok := r.rows(reporting.QueryAvgLOSByWard); ok {
		if wards := losOutliers(rows); len(wards) > 0 {
			recs = append(recs, Recommendation{
				Title:       "High Length of Stay",
				Description: fmt.Sprintf("Wards with above-average LOS: %s. Review care pathways for efficiency.", strings.Join(wards, ", ")),
			})
		}
	}
	if len(recs) == 0 {
		alerts = append(alerts, Alert{LevelSuccess, "All quality metrics within acceptable ranges. Continue monitoring."})
	}
	return alerts, recs
}

// losOutliers returns wards whose average stay exceeds the mean plus one
// sample standard deviation across wards.
func losOutliers(rows []reporting.Row) []string {
	var values []float64
	var names []string
	for _, row := range rows {
		v, ok := number(row["avg_los"])
		if !ok {
			continue
		}
		values = append(values, v)
		names = append(names, text(row["ward_name"]))
	}
	if len(values) < 2 {
		return nil
	}
	m := mean(values)
	var ss float64
	for _, v := range values {
		ss += (v - m) * (v - m)
	}
	limit := m + math.Sqrt(ss/float64(len(values)-1))

	var out []string
	for i, v := range values {
		if v > limit {
			out = append(out, names[i])
		}
	}
	return out
}

func mean(vs []float64) float64 {
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// number converts a scanned column value to float64. NUMERIC columns arrive
// as strings from the database/sql driver.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	case []byte:
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil
	}
	return 0, false
}

func text(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
