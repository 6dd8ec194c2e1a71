package scheduler

// AnalyzeCoverage compares assigned headcount against demand hour by hour
func AnalyzeCoverage(assign HourAssignment, demand []int) []PerHourRecord {
	records := make([]PerHourRecord, len(demand))
	for h, d := range demand {
		assigned := len(assign[h])
		records[h] = PerHourRecord{
			Hour:       h,
			Demand:     d,
			Assigned:   assigned,
			Understaff: max(0, d-assigned),
			Overstaff:  max(0, assigned-d),
		}
	}
	return records
}
