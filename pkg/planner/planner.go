// Package planner builds a synthetic roster and demand curve for a hospital
// department from a handful of headline figures, schedules it, and turns the
// resulting KPIs into staffing recommendations.
package planner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arnavshah/staff-scheduler-api/pkg/scheduler"
)

const (
	// HorizonHours is the length of the planning day
	HorizonHours = 24
	// MaxStaffCount bounds the synthetic roster
	MaxStaffCount = 1000
)

var ErrInvalidRequest = errors.New("invalid planning request")

// Request describes a department to plan for
type Request struct {
	Department  string
	ShiftType   string
	StaffCount  int
	PatientLoad int
	Specialty   string
}

// Plan is the schedule for a department plus derived scores and advice
type Plan struct {
	Request            Request
	Demand             []int
	Roster             []scheduler.StaffMember
	Result             *scheduler.ScheduleResult
	EfficiencyScore    float64
	CoveragePercentage float64
	CostSavings        float64
	Recommendations    []string
}

// WithDefaults fills in unset fields
func (r Request) WithDefaults() Request {
	if r.Department == "" {
		r.Department = "General"
	}
	if r.ShiftType == "" {
		r.ShiftType = "8-hour"
	}
	if r.Specialty == "" {
		r.Specialty = "nurse"
	}
	return r
}

// ShiftHours returns the per-person daily cap implied by a shift pattern
func ShiftHours(shiftType string) int {
	if shiftType == "12-hour" {
		return 12
	}
	return 8
}

// BuildDemand spreads the patient load evenly over the day, at least one person per hour
func BuildDemand(patientLoad int) []int {
	perHour := max(1, patientLoad/8)
	demand := make([]int, HorizonHours)
	for h := range demand {
		demand[h] = perHour
	}
	return demand
}

// BuildRoster creates StaffCount members of the requested specialty with rising hourly cost
func BuildRoster(r Request) []scheduler.StaffMember {
	specialty := strings.ToLower(r.Specialty)
	shiftHours := ShiftHours(r.ShiftType)

	roster := make([]scheduler.StaffMember, 0, r.StaffCount)
	for i := 0; i < r.StaffCount; i++ {
		var cost float64
		var maxHours int
		switch specialty {
		case "nurse":
			cost = float64(300 + i*20)
			maxHours = min(shiftHours, 12)
		case "doctor":
			cost = float64(800 + i*50)
			maxHours = min(shiftHours, 8)
		default:
			cost = float64(250 + i*15)
			maxHours = min(shiftHours, 10)
		}
		roster = append(roster, scheduler.StaffMember{
			ID:             fmt.Sprintf("%s-%s-%02d", r.Department, r.Specialty, i+1),
			Role:           specialty,
			MaxHoursPerDay: maxHours,
			CostPerHour:    cost,
		})
	}
	return roster
}

// BuildPlan schedules the department and scores the outcome
func BuildPlan(req Request) (*Plan, error) {
	req = req.WithDefaults()
	if req.StaffCount < 0 {
		return nil, fmt.Errorf("%w: staff count must not be negative", ErrInvalidRequest)
	}
	if req.StaffCount > MaxStaffCount {
		return nil, fmt.Errorf("%w: staff count must not exceed %d", ErrInvalidRequest, MaxStaffCount)
	}
	if req.PatientLoad < 0 {
		return nil, fmt.Errorf("%w: patient load must not be negative", ErrInvalidRequest)
	}

	demand := BuildDemand(req.PatientLoad)
	roster := BuildRoster(req)

	res, err := scheduler.OptimizeSchedule(demand, roster)
	if err != nil {
		return nil, fmt.Errorf("schedule department %s: %w", req.Department, err)
	}

	totalDemand, totalAssigned := 0, 0
	for _, r := range res.PerHour {
		totalDemand += r.Demand
		totalAssigned += r.Assigned
	}

	p := &Plan{
		Request:            req,
		Demand:             demand,
		Roster:             roster,
		Result:             res,
		EfficiencyScore:    scheduler.Round(min(100, float64(totalAssigned)/float64(totalDemand)*100), 1),
		CoveragePercentage: scheduler.Round(res.KPIs.AvgCoverageRatio*100, 1),
		CostSavings:        scheduler.Round(res.KPIs.TotalCost, 2),
	}
	p.Recommendations = Recommend(res.KPIs, p.CoveragePercentage)
	return p, nil
}
