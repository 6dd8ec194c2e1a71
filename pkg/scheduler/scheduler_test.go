package scheduler

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hospitalRoster() []StaffMember {
	return []StaffMember{
		{ID: "Nurse1", Role: "nurse", MaxHoursPerDay: 8, CostPerHour: 300},
		{ID: "Nurse2", Role: "nurse", MaxHoursPerDay: 6, CostPerHour: 280},
		{ID: "Doc1", Role: "doctor", MaxHoursPerDay: 4, CostPerHour: 800},
	}
}

func repeat(v, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestOptimizeSchedule_ConstantDemandExceedsRoster(t *testing.T) {
	res, err := OptimizeSchedule(repeat(5, 8), hospitalRoster())
	require.NoError(t, err)

	assert.Equal(t, []Shift{
		{StaffID: "Nurse2", Role: "nurse", StartHour: 0, EndHour: 6, Hours: 6},
		{StaffID: "Nurse1", Role: "nurse", StartHour: 0, EndHour: 8, Hours: 8},
		{StaffID: "Doc1", Role: "doctor", StartHour: 0, EndHour: 4, Hours: 4},
	}, res.Shifts)

	// The cheapest nurse is always picked first, the doctor last.
	for h := 0; h < 4; h++ {
		assert.Equal(t, 3, res.PerHour[h].Assigned, "hour %d", h)
		assert.Equal(t, 2, res.PerHour[h].Understaff, "hour %d", h)
	}
	// Doctor and then Nurse2 run out of hours; nothing backfills.
	assert.Equal(t, 3, res.PerHour[4].Understaff)
	assert.Equal(t, 3, res.PerHour[5].Understaff)
	assert.Equal(t, 4, res.PerHour[6].Understaff)
	assert.Equal(t, 4, res.PerHour[7].Understaff)

	assert.Equal(t, 8, res.KPIs.UnderstaffedHours)
	assert.Equal(t, 4, res.KPIs.MaxUnderstaffing)
	assert.InDelta(t, 7280.0, res.KPIs.TotalCost, 1e-9)
	assert.InDelta(t, 0.45, res.KPIs.AvgCoverageRatio, 1e-9)
	assert.InDelta(t, 1.0, res.KPIs.FairnessScore, 1e-9)

	ids := []string{}
	for _, u := range res.KPIs.Utilization {
		ids = append(ids, u.StaffID)
	}
	assert.Equal(t, []string{"Nurse2", "Nurse1", "Doc1"}, ids)
}

func TestOptimizeSchedule_EmptyDemand(t *testing.T) {
	res, err := OptimizeSchedule([]int{}, hospitalRoster())
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrEmptyDemand)

	res, err = OptimizeSchedule(nil, nil)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrEmptyDemand)
}

func TestOptimizeSchedule_SingleStaffFullDay(t *testing.T) {
	staff := []StaffMember{{ID: "s1", Role: "nurse", MaxHoursPerDay: 24, CostPerHour: 100}}

	res, err := OptimizeSchedule(repeat(1, 24), staff)
	require.NoError(t, err)

	require.Len(t, res.Shifts, 1)
	assert.Equal(t, Shift{StaffID: "s1", Role: "nurse", StartHour: 0, EndHour: 24, Hours: 24}, res.Shifts[0])
	require.Len(t, res.KPIs.Utilization, 1)
	assert.Equal(t, 1.0, res.KPIs.Utilization[0].Utilization)
	assert.Equal(t, 1.0, res.KPIs.FairnessScore)
	assert.Equal(t, 2400.0, res.KPIs.TotalCost)
	assert.Equal(t, 1.0, res.KPIs.AvgCoverageRatio)
	assert.Zero(t, res.KPIs.UnderstaffedHours)
}

func TestOptimizeSchedule_GapSplitsShift(t *testing.T) {
	staff := []StaffMember{{ID: "s1", Role: "porter", MaxHoursPerDay: 8, CostPerHour: 50}}

	res, err := OptimizeSchedule([]int{1, 1, 1, 0, 0, 0, 1, 1}, staff)
	require.NoError(t, err)

	assert.Equal(t, []Shift{
		{StaffID: "s1", Role: "porter", StartHour: 0, EndHour: 3, Hours: 3},
		{StaffID: "s1", Role: "porter", StartHour: 6, EndHour: 8, Hours: 2},
	}, res.Shifts)
}

func TestConsolidate_GapsAreNotMerged(t *testing.T) {
	staff := []StaffMember{{ID: "a", Role: "nurse"}, {ID: "b", Role: "nurse"}}
	assign := HourAssignment{{"a"}, {"a", "b"}, {"a"}, {}, {}, {}, {"a"}, {"a", "b"}}

	shifts := Consolidate(assign, staff)
	assert.Equal(t, []Shift{
		{StaffID: "a", Role: "nurse", StartHour: 0, EndHour: 3, Hours: 3},
		{StaffID: "a", Role: "nurse", StartHour: 6, EndHour: 8, Hours: 2},
		{StaffID: "b", Role: "nurse", StartHour: 1, EndHour: 2, Hours: 1},
		{StaffID: "b", Role: "nurse", StartHour: 7, EndHour: 8, Hours: 1},
	}, shifts)
}

func TestSortByCost_StableOnTies(t *testing.T) {
	staff := []StaffMember{
		{ID: "c", CostPerHour: 10},
		{ID: "a", CostPerHour: 5},
		{ID: "d", CostPerHour: 10},
		{ID: "b", CostPerHour: 5},
	}
	sorted := SortByCost(staff)

	ids := make([]string, len(sorted))
	for i, s := range sorted {
		ids[i] = s.ID
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids)
	assert.Equal(t, "c", staff[0].ID, "input roster must not be reordered")
}

func TestAllocate_RescansFromCheapestEveryHour(t *testing.T) {
	sorted := []StaffMember{
		{ID: "cheap", MaxHoursPerDay: 1},
		{ID: "mid", MaxHoursPerDay: 5},
		{ID: "dear", MaxHoursPerDay: 5},
	}
	assign := Allocate([]int{1, 1, 2}, sorted)

	assert.Equal(t, HourAssignment{{"cheap"}, {"mid"}, {"mid", "dear"}}, assign)
}

func TestAllocate_NegativeDemandAssignsNobody(t *testing.T) {
	sorted := []StaffMember{{ID: "s1", MaxHoursPerDay: 3}}
	assign := Allocate([]int{-3, 1}, sorted)

	assert.Empty(t, assign[0])
	assert.Equal(t, []string{"s1"}, assign[1])

	perHour := AnalyzeCoverage(assign, []int{-3, 1})
	assert.Equal(t, PerHourRecord{Hour: 0, Demand: -3, Assigned: 0, Understaff: 0, Overstaff: 3}, perHour[0])
}

func TestComputeKPIs_ZeroCapacityStaff(t *testing.T) {
	staff := []StaffMember{
		{ID: "idle", Role: "nurse", MaxHoursPerDay: 0, CostPerHour: 1},
		{ID: "busy", Role: "nurse", MaxHoursPerDay: 2, CostPerHour: 2},
	}
	res, err := OptimizeSchedule([]int{1, 1}, staff)
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.KPIs.Utilization[0].Utilization)
	assert.Equal(t, 1.0, res.KPIs.Utilization[1].Utilization)
	// population stddev of {0, 1} is 0.5
	assert.Equal(t, 0.5, res.KPIs.FairnessScore)
	assert.Equal(t, 4.0, res.KPIs.TotalCost)
}

func TestComputeKPIs_NoStaff(t *testing.T) {
	res, err := OptimizeSchedule([]int{2, 0}, nil)
	require.NoError(t, err)

	assert.Empty(t, res.Shifts)
	assert.Empty(t, res.KPIs.Utilization)
	assert.Equal(t, 0.0, res.KPIs.FairnessScore)
	assert.Equal(t, 2, res.KPIs.MaxUnderstaffing)
	assert.Equal(t, 1, res.KPIs.UnderstaffedHours)
	assert.Equal(t, 0.0, res.KPIs.AvgCoverageRatio)
}

func TestComputeKPIs_ZeroDemandCoverage(t *testing.T) {
	res, err := OptimizeSchedule([]int{0, 0, 0}, hospitalRoster())
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.KPIs.AvgCoverageRatio)
	assert.Empty(t, res.Shifts)
	assert.Zero(t, res.KPIs.TotalCost)
}

func TestValidate(t *testing.T) {
	tests := map[string]struct {
		staff []StaffMember
		index int
	}{
		"negative max hours": {
			staff: []StaffMember{{ID: "a", MaxHoursPerDay: 1}, {ID: "b", MaxHoursPerDay: -1}},
			index: 1,
		},
		"negative cost": {
			staff: []StaffMember{{ID: "a", CostPerHour: -0.5}},
			index: 0,
		},
		"duplicate id": {
			staff: []StaffMember{{ID: "a"}, {ID: "b"}, {ID: "a"}},
			index: 2,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			res, err := OptimizeSchedule([]int{1}, tc.staff)
			assert.Nil(t, res)
			require.ErrorIs(t, err, ErrInvalidStaffConfig)

			var cfgErr *StaffConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tc.index, cfgErr.Index)
		})
	}
}

func TestValidate_EmptyDemandCheckedFirst(t *testing.T) {
	err := Validate(nil, []StaffMember{{ID: "a", MaxHoursPerDay: -1}})
	assert.ErrorIs(t, err, ErrEmptyDemand)
}

func TestOptimizeSchedule_Deterministic(t *testing.T) {
	staff := []StaffMember{
		{ID: "a", Role: "nurse", MaxHoursPerDay: 5, CostPerHour: 10},
		{ID: "b", Role: "nurse", MaxHoursPerDay: 3, CostPerHour: 10},
		{ID: "c", Role: "doctor", MaxHoursPerDay: 8, CostPerHour: 7},
	}
	demand := []int{2, 3, 1, 0, 4, 2}

	first, err := OptimizeSchedule(demand, staff)
	require.NoError(t, err)
	second, err := OptimizeSchedule(demand, staff)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestOptimizeSchedule_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 200; run++ {
		hours := 1 + rng.Intn(48)
		demand := make([]int, hours)
		for h := range demand {
			demand[h] = rng.Intn(8) - 1
		}
		staff := make([]StaffMember, rng.Intn(10))
		for i := range staff {
			staff[i] = StaffMember{
				ID:             string(rune('a' + i)),
				Role:           "nurse",
				MaxHoursPerDay: rng.Intn(13),
				CostPerHour:    float64(rng.Intn(5) * 50),
			}
		}

		res, err := OptimizeSchedule(demand, staff)
		require.NoError(t, err)

		byID := map[string]StaffMember{}
		for _, s := range staff {
			byID[s.ID] = s
		}

		hoursWorked := map[string]int{}
		cost := 0.0
		lastEnd := map[string]int{}
		for _, sh := range res.Shifts {
			require.Equal(t, sh.EndHour-sh.StartHour, sh.Hours)
			require.Positive(t, sh.Hours)
			if end, ok := lastEnd[sh.StaffID]; ok {
				require.Greater(t, sh.StartHour, end, "shifts for %s touch or overlap", sh.StaffID)
			}
			lastEnd[sh.StaffID] = sh.EndHour
			hoursWorked[sh.StaffID] += sh.Hours
			cost += float64(sh.Hours) * byID[sh.StaffID].CostPerHour
		}
		for id, worked := range hoursWorked {
			require.LessOrEqual(t, worked, byID[id].MaxHoursPerDay)
		}
		require.InDelta(t, cost, res.KPIs.TotalCost, 1e-6)
		require.GreaterOrEqual(t, res.KPIs.FairnessScore, 0.0)
		require.LessOrEqual(t, res.KPIs.FairnessScore, 1.0)

		sorted := SortByCost(staff)
		assign := Allocate(demand, sorted)
		for h, ids := range assign {
			seen := map[string]bool{}
			for _, id := range ids {
				require.False(t, seen[id], "hour %d double-books %s", h, id)
				seen[id] = true
			}
			require.Equal(t, len(ids), res.PerHour[h].Assigned)
		}
	}
}
