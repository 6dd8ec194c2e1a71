package scheduler

// Consolidate turns the hourly assignment into shifts, walking the staff in the
// same cost order used by Allocate. A staff member with gaps in their hours gets
// one shift per contiguous run.
func Consolidate(assign HourAssignment, sorted []StaffMember) []Shift {
	shifts := []Shift{}
	for _, s := range sorted {
		start, prev := -1, -1
		for h := range assign {
			if assign.Contains(h, s.ID) {
				if start < 0 {
					start = h
				}
				prev = h
				continue
			}
			if start >= 0 {
				shifts = append(shifts, newShift(s, start, prev+1))
				start, prev = -1, -1
			}
		}
		if start >= 0 {
			shifts = append(shifts, newShift(s, start, prev+1))
		}
	}
	return shifts
}

func newShift(s StaffMember, start, end int) Shift {
	return Shift{
		StaffID:   s.ID,
		Role:      s.Role,
		StartHour: start,
		EndHour:   end,
		Hours:     end - start,
	}
}
