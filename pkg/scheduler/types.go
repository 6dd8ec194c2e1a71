package scheduler

// StaffMember is one person on the roster for a single scheduling run
type StaffMember struct {
	ID             string
	Role           string
	MaxHoursPerDay int
	CostPerHour    float64
}

// HourAssignment holds, for every hour of the horizon, the IDs of the staff working it
// in the order they were picked.
type HourAssignment [][]string

// Contains reports whether staffID is assigned to hour h
func (a HourAssignment) Contains(h int, staffID string) bool {
	for _, id := range a[h] {
		if id == staffID {
			return true
		}
	}
	return false
}

// Shift is a maximal contiguous run of hours worked by one staff member.
// EndHour is exclusive.
type Shift struct {
	StaffID   string
	Role      string
	StartHour int
	EndHour   int
	Hours     int
}

// PerHourRecord describes coverage for a single hour
type PerHourRecord struct {
	Hour       int
	Demand     int
	Assigned   int
	Understaff int
	Overstaff  int
}

// UtilizationRecord describes how much of a staff member's daily cap was used
type UtilizationRecord struct {
	StaffID       string
	Role          string
	AssignedHours int
	MaxHours      int
	Utilization   float64
}

// KPISummary aggregates cost, coverage and fairness for a run
type KPISummary struct {
	TotalCost         float64
	MaxUnderstaffing  int
	UnderstaffedHours int
	AvgCoverageRatio  float64
	FairnessScore     float64
	Utilization       []UtilizationRecord
}

// ScheduleResult is the complete output of OptimizeSchedule
type ScheduleResult struct {
	Shifts  []Shift
	PerHour []PerHourRecord
	KPIs    KPISummary
}
