package scheduler

// OptimizeSchedule builds a staff schedule for the given hourly demand.
//
// The roster is sorted by hourly cost and each hour is filled greedily with the
// cheapest staff who still have capacity. The hourly picks are then merged into
// contiguous shifts, and coverage and fairness figures are computed over the result.
// Inputs are validated up front; on error no result is produced.
//
// The function keeps no state between calls and is safe to run concurrently.
func OptimizeSchedule(demand []int, staff []StaffMember) (*ScheduleResult, error) {
	if err := Validate(demand, staff); err != nil {
		return nil, err
	}

	sorted := SortByCost(staff)
	assign := Allocate(demand, sorted)
	shifts := Consolidate(assign, sorted)
	perHour := AnalyzeCoverage(assign, demand)

	return &ScheduleResult{
		Shifts:  shifts,
		PerHour: perHour,
		KPIs:    ComputeKPIs(shifts, perHour, sorted),
	}, nil
}
