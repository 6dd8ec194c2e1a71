package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/staff-scheduler-api/pkg/models"
	"github.com/arnavshah/staff-scheduler-api/pkg/scheduler"
)

// ValidateInput checks a scheduling request without running the scheduler
func (h *Handler) ValidateInput(c *gin.Context) {
	var input models.ScheduleRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	staff := input.StaffMembers()
	if err := scheduler.Validate(input.Demand, staff); err != nil {
		_, code := classify(err)
		c.JSON(http.StatusOK, gin.H{"valid": false, "code": code, "error": err.Error()})
		return
	}

	totalDemand, capacity := 0, 0
	for _, d := range input.Demand {
		totalDemand += max(0, d)
	}
	for _, s := range staff {
		capacity += s.MaxHoursPerDay
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"hours":          len(input.Demand),
			"staff_count":    len(staff),
			"total_demand":   totalDemand,
			"total_capacity": capacity,
		},
	})
}
