package scheduler

import (
	"cmp"
	"slices"
)

// SortByCost returns a copy of the roster ordered cheapest first.
// The sort is stable so equal-cost staff keep their roster order.
func SortByCost(staff []StaffMember) []StaffMember {
	sorted := slices.Clone(staff)
	slices.SortStableFunc(sorted, func(a, b StaffMember) int {
		return cmp.Compare(a.CostPerHour, b.CostPerHour)
	})
	return sorted
}

// Allocate greedily fills each hour with the cheapest staff that still have hours left.
// Hours are filled independently and in order; demand that cannot be met in an hour
// is left open and never made up later.
func Allocate(demand []int, sorted []StaffMember) HourAssignment {
	remaining := make(map[string]int, len(sorted))
	for _, s := range sorted {
		remaining[s.ID] = s.MaxHoursPerDay
	}

	assign := make(HourAssignment, len(demand))
	for h := range demand {
		needed := max(0, demand[h])
		assign[h] = []string{}
		for _, s := range sorted {
			if needed <= 0 {
				break
			}
			if remaining[s.ID] <= 0 {
				continue
			}
			assign[h] = append(assign[h], s.ID)
			remaining[s.ID]--
			needed--
		}
	}
	return assign
}
