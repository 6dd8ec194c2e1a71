package models

import (
	"github.com/arnavshah/staff-scheduler-api/pkg/planner"
	"github.com/arnavshah/staff-scheduler-api/pkg/scheduler"
)

// StaffInput is one roster entry in a scheduling request
type StaffInput struct {
	ID             string  `json:"id" binding:"required"`
	Role           string  `json:"role"`
	MaxHoursPerDay int     `json:"max_hours_per_day"`
	CostPerHour    float64 `json:"cost_per_hour"`
}

// ScheduleRequest is the body of the scheduling endpoint
type ScheduleRequest struct {
	Demand []int        `json:"demand" binding:"required"`
	Staff  []StaffInput `json:"staff" binding:"required,dive"`
}

// StaffMembers converts the roster to scheduler input, keeping order
func (r ScheduleRequest) StaffMembers() []scheduler.StaffMember {
	staff := make([]scheduler.StaffMember, len(r.Staff))
	for i, s := range r.Staff {
		staff[i] = scheduler.StaffMember{
			ID:             s.ID,
			Role:           s.Role,
			MaxHoursPerDay: s.MaxHoursPerDay,
			CostPerHour:    s.CostPerHour,
		}
	}
	return staff
}

type Shift struct {
	StaffID   string `json:"staff_id"`
	Role      string `json:"role"`
	StartHour int    `json:"start_hour"`
	EndHour   int    `json:"end_hour"`
	Hours     int    `json:"hours"`
}

type PerHour struct {
	Hour       int `json:"hour"`
	Demand     int `json:"demand"`
	Assigned   int `json:"assigned"`
	Understaff int `json:"understaff"`
	Overstaff  int `json:"overstaff"`
}

type Utilization struct {
	StaffID       string  `json:"staff_id"`
	Role          string  `json:"role"`
	AssignedHours int     `json:"assigned_hours"`
	MaxHours      int     `json:"max_hours"`
	Utilization   float64 `json:"utilization"`
}

type KPIs struct {
	TotalCost           float64       `json:"total_cost"`
	MaxUnderstaffing    int           `json:"max_understaffing"`
	UnderstaffedHours   int           `json:"understaffed_hours"`
	AvgCoverageRatio    float64       `json:"avg_coverage_ratio"`
	FairnessScore       float64       `json:"fairness_score"`
	UtilizationPerStaff []Utilization `json:"utilization_per_staff"`
}

// ScheduleResponse is the data structure for the scheduling result
type ScheduleResponse struct {
	RunID    string    `json:"run_id,omitempty"`
	Schedule []Shift   `json:"schedule"`
	PerHour  []PerHour `json:"per_hour"`
	KPIs     KPIs      `json:"kpis"`
}

// NewScheduleResponse maps a scheduler result onto its wire form
func NewScheduleResponse(res *scheduler.ScheduleResult, runID string) ScheduleResponse {
	resp := ScheduleResponse{
		RunID:    runID,
		Schedule: make([]Shift, len(res.Shifts)),
		PerHour:  make([]PerHour, len(res.PerHour)),
		KPIs: KPIs{
			TotalCost:           res.KPIs.TotalCost,
			MaxUnderstaffing:    res.KPIs.MaxUnderstaffing,
			UnderstaffedHours:   res.KPIs.UnderstaffedHours,
			AvgCoverageRatio:    res.KPIs.AvgCoverageRatio,
			FairnessScore:       res.KPIs.FairnessScore,
			UtilizationPerStaff: make([]Utilization, len(res.KPIs.Utilization)),
		},
	}
	for i, s := range res.Shifts {
		resp.Schedule[i] = Shift(s)
	}
	for i, h := range res.PerHour {
		resp.PerHour[i] = PerHour(h)
	}
	for i, u := range res.KPIs.Utilization {
		resp.KPIs.UtilizationPerStaff[i] = Utilization(u)
	}
	return resp
}

// PlanRequest is the body of the department planning endpoint.
// Missing counts fall back to 10 staff and a patient load of 20.
type PlanRequest struct {
	Department        string `json:"department"`
	ShiftType         string `json:"shift_type"`
	StaffCount        *int   `json:"staff_count" binding:"omitempty,min=0,max=1000"`
	PatientLoad       *int   `json:"patient_load" binding:"omitempty,min=0"`
	SpecialtyRequired string `json:"specialty_required"`
}

// ToPlannerRequest applies the numeric defaults
func (r PlanRequest) ToPlannerRequest() planner.Request {
	req := planner.Request{
		Department:  r.Department,
		ShiftType:   r.ShiftType,
		Specialty:   r.SpecialtyRequired,
		StaffCount:  10,
		PatientLoad: 20,
	}
	if r.StaffCount != nil {
		req.StaffCount = *r.StaffCount
	}
	if r.PatientLoad != nil {
		req.PatientLoad = *r.PatientLoad
	}
	return req
}

// PlanResponse is the department planning result
type PlanResponse struct {
	RunID              string    `json:"run_id,omitempty"`
	OptimalSchedule    []Shift   `json:"optimal_schedule"`
	PerHourAnalysis    []PerHour `json:"per_hour_analysis"`
	EfficiencyScore    float64   `json:"efficiency_score"`
	CoveragePercentage float64   `json:"coverage_percentage"`
	Recommendations    []string  `json:"recommendations"`
	CostSavings        float64   `json:"cost_savings"`
	KPIs               KPIs      `json:"kpis"`
}

// NewPlanResponse maps a department plan onto its wire form
func NewPlanResponse(p *planner.Plan, runID string) PlanResponse {
	sched := NewScheduleResponse(p.Result, runID)
	return PlanResponse{
		RunID:              runID,
		OptimalSchedule:    sched.Schedule,
		PerHourAnalysis:    sched.PerHour,
		EfficiencyScore:    p.EfficiencyScore,
		CoveragePercentage: p.CoveragePercentage,
		Recommendations:    p.Recommendations,
		CostSavings:        p.CostSavings,
		KPIs:               sched.KPIs,
	}
}

// APIError is the error body returned by every endpoint
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}
