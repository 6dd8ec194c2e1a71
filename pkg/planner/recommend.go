package planner

import (
	"fmt"

	"github.com/arnavshah/staff-scheduler-api/pkg/scheduler"
)

const (
	coverageTarget       = 90.0
	fairnessTarget       = 0.8
	understaffingCeiling = 2
)

// Recommend turns KPIs into short, ordered staffing advice
func Recommend(kpis scheduler.KPISummary, coveragePct float64) []string {
	var recs []string
	if kpis.UnderstaffedHours > 0 {
		recs = append(recs, fmt.Sprintf("Address %d understaffed hours", kpis.UnderstaffedHours))
	}
	if kpis.MaxUnderstaffing > understaffingCeiling {
		recs = append(recs, fmt.Sprintf("Reduce maximum understaffing from %d staff", kpis.MaxUnderstaffing))
	}
	if coveragePct < coverageTarget {
		recs = append(recs, "Increase staff count to improve coverage")
	} else {
		recs = append(recs, "Current staffing provides good coverage")
	}
	if kpis.FairnessScore < fairnessTarget {
		recs = append(recs, "Improve workload distribution among staff")
	}
	return recs
}
