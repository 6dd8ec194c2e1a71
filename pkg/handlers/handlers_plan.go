package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arnavshah/staff-scheduler-api/pkg/models"
	"github.com/arnavshah/staff-scheduler-api/pkg/planner"
)

// PlanDepartment builds a roster for a department from headline figures,
// schedules it and returns the plan with recommendations
func (h *Handler) PlanDepartment(c *gin.Context) {
	var input models.PlanRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.writeError(c, badRequest("%v", err))
		return
	}

	start := time.Now()
	plan, err := planner.BuildPlan(input.ToPlannerRequest())
	if err != nil {
		h.Metrics.RecordFailure(outcome(err))
		h.writeError(c, err)
		return
	}
	h.Metrics.RecordRun(plan.Result, time.Since(start))
	h.Logger.Info("department planned",
		zap.String("department", plan.Request.Department),
		zap.String("specialty", plan.Request.Specialty),
		zap.Int("staff", len(plan.Roster)),
		zap.Float64("coverage_percentage", plan.CoveragePercentage))

	runID := uuid.NewString()
	resp := models.NewPlanResponse(plan, runID)
	h.saveRun(c, runID, "plan", len(plan.Roster), plan.Result, resp)
	h.RecordUsage(c, len(plan.Demand), len(plan.Roster))

	c.JSON(http.StatusOK, resp)
}
