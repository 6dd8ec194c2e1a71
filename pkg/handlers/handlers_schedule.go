package handlers

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arnavshah/staff-scheduler-api/pkg/database"
	"github.com/arnavshah/staff-scheduler-api/pkg/models"
	"github.com/arnavshah/staff-scheduler-api/pkg/scheduler"
)

// ScheduleJSON handles the JSON-based scheduling request
func (h *Handler) ScheduleJSON(c *gin.Context) {
	var input models.ScheduleRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.writeError(c, badRequest("%v", err))
		return
	}

	staff := input.StaffMembers()
	res, err := h.optimize(input.Demand, staff)
	if err != nil {
		h.writeError(c, err)
		return
	}

	runID := uuid.NewString()
	resp := models.NewScheduleResponse(res, runID)
	h.saveRun(c, runID, "schedule", len(staff), res, resp)
	h.RecordUsage(c, len(input.Demand), len(staff))

	c.JSON(http.StatusOK, resp)
}

// ScheduleCSV handles CSV file uploads for scheduling. The roster comes from
// staff_file; demand comes from demand_file or a comma separated demand field.
func (h *Handler) ScheduleCSV(c *gin.Context) {
	staffFile, _ := c.FormFile("staff_file")
	if staffFile == nil {
		h.writeError(c, badRequest("staff_file is required"))
		return
	}

	staff, err := parseUpload(staffFile, ParseStaffCSV)
	if err != nil {
		h.writeError(c, err)
		return
	}

	var demand []int
	if demandFile, _ := c.FormFile("demand_file"); demandFile != nil {
		demand, err = parseUpload(demandFile, ParseDemandCSV)
	} else if raw, ok := c.GetPostForm("demand"); ok {
		demand, err = ParseDemandList(raw)
	} else {
		err = badRequest("demand_file or demand is required")
	}
	if err != nil {
		h.writeError(c, err)
		return
	}

	res, err := h.optimize(demand, staff)
	if err != nil {
		h.writeError(c, err)
		return
	}

	var out strings.Builder
	if err := WriteShiftsCSV(&out, res.Shifts, staff); err != nil {
		h.writeError(c, err)
		return
	}

	runID := uuid.NewString()
	h.saveRun(c, runID, "csv", len(staff), res, models.NewScheduleResponse(res, runID))
	h.RecordUsage(c, len(demand), len(staff))

	c.JSON(http.StatusOK, gin.H{"run_id": runID, "csv": out.String()})
}

func parseUpload[T any](fh *multipart.FileHeader, parse func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := fh.Open()
	if err != nil {
		return zero, badRequest("failed to open %s", fh.Filename)
	}
	defer f.Close()
	return parse(f)
}

// optimize runs the scheduler and records metrics for the outcome
func (h *Handler) optimize(demand []int, staff []scheduler.StaffMember) (*scheduler.ScheduleResult, error) {
	start := time.Now()
	res, err := scheduler.OptimizeSchedule(demand, staff)
	if err != nil {
		h.Metrics.RecordFailure(outcome(err))
		h.Logger.Info("schedule rejected", zap.Int("hours", len(demand)), zap.Int("staff", len(staff)), zap.Error(err))
		return nil, err
	}
	elapsed := time.Since(start)
	h.Metrics.RecordRun(res, elapsed)

	h.Logger.Info("schedule computed",
		zap.Int("hours", len(demand)),
		zap.Int("staff", len(staff)),
		zap.Int("shifts", len(res.Shifts)),
		zap.Float64("total_cost", res.KPIs.TotalCost),
		zap.Int("understaffed_hours", res.KPIs.UnderstaffedHours),
		zap.Float64("fairness_score", res.KPIs.FairnessScore),
		zap.Duration("elapsed", elapsed))
	return res, nil
}

// saveRun stores the run for later retrieval. Storage failures are logged and do
// not fail the request; the schedule itself is already computed.
func (h *Handler) saveRun(c *gin.Context, runID, source string, staffCount int, res *scheduler.ScheduleResult, body any) {
	apiKey := apiKeyFrom(c)
	if apiKey == nil {
		return
	}

	payload, err := json.Marshal(body)
	if err != nil {
		h.Logger.Warn("could not encode run", zap.String("run_id", runID), zap.Error(err))
		return
	}

	run := &database.ScheduleRun{
		ID:                runID,
		KeyID:             apiKey.ID,
		Source:            source,
		Hours:             len(res.PerHour),
		StaffCount:        staffCount,
		ShiftCount:        len(res.Shifts),
		TotalCost:         res.KPIs.TotalCost,
		MaxUnderstaffing:  res.KPIs.MaxUnderstaffing,
		UnderstaffedHours: res.KPIs.UnderstaffedHours,
		AvgCoverageRatio:  res.KPIs.AvgCoverageRatio,
		FairnessScore:     res.KPIs.FairnessScore,
		Result:            string(payload),
	}
	if err := database.SaveRun(h.DB, run); err != nil {
		h.Logger.Warn("could not store run", zap.String("run_id", runID), zap.Error(err))
	}
}
