package scheduler

import "math"

// Validate checks the inputs of a scheduling run before any allocation happens
func Validate(demand []int, staff []StaffMember) error {
	if len(demand) == 0 {
		return ErrEmptyDemand
	}

	seen := make(map[string]bool, len(staff))
	for i, s := range staff {
		switch {
		case s.MaxHoursPerDay < 0:
			return &StaffConfigError{Index: i, StaffID: s.ID, Reason: "max hours per day is negative"}
		case s.CostPerHour < 0 || math.IsNaN(s.CostPerHour):
			return &StaffConfigError{Index: i, StaffID: s.ID, Reason: "cost per hour is negative"}
		case seen[s.ID]:
			return &StaffConfigError{Index: i, StaffID: s.ID, Reason: "duplicate staff id"}
		}
		seen[s.ID] = true
	}
	return nil
}
