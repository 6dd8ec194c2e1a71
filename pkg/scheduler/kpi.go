package scheduler

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// ComputeKPIs summarises a run. Utilization is rounded to two decimals before
// the fairness score is taken from it.
func ComputeKPIs(shifts []Shift, perHour []PerHourRecord, sorted []StaffMember) KPISummary {
	assigned := make(map[string]int, len(sorted))
	for _, sh := range shifts {
		assigned[sh.StaffID] += sh.Hours
	}

	kpis := KPISummary{Utilization: make([]UtilizationRecord, 0, len(sorted))}
	utils := make([]float64, 0, len(sorted))
	for _, s := range sorted {
		hours := assigned[s.ID]
		u := 0.0
		if s.MaxHoursPerDay > 0 {
			u = Round(float64(hours)/float64(s.MaxHoursPerDay), 2)
		}
		utils = append(utils, u)
		kpis.Utilization = append(kpis.Utilization, UtilizationRecord{
			StaffID:       s.ID,
			Role:          s.Role,
			AssignedHours: hours,
			MaxHours:      s.MaxHoursPerDay,
			Utilization:   u,
		})
		kpis.TotalCost += float64(hours) * s.CostPerHour
	}
	kpis.FairnessScore = fairness(utils)

	covered, totalDemand := 0, 0
	for _, r := range perHour {
		covered += min(r.Assigned, r.Demand)
		totalDemand += r.Demand
		kpis.MaxUnderstaffing = max(kpis.MaxUnderstaffing, r.Understaff)
		if r.Understaff > 0 {
			kpis.UnderstaffedHours++
		}
	}
	kpis.AvgCoverageRatio = Round(float64(covered)/float64(max(1, totalDemand)), 2)

	return kpis
}

// fairness is 1 minus the population standard deviation of utilization, floored at 0
func fairness(utils []float64) float64 {
	if len(utils) == 0 {
		return 0
	}
	_, std := stat.PopMeanStdDev(utils, nil)
	return Round(math.Max(0, 1-std), 2)
}

// Round rounds x to the given number of decimal places, halves away from zero
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
