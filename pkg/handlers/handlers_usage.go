package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/staff-scheduler-api/pkg/database"
)

const historyLimit = 30

// GetMyUsage returns usage stats for the authenticated API key
func (h *Handler) GetMyUsage(c *gin.Context) {
	apiKey := apiKeyFrom(c)
	if apiKey == nil {
		abortWithError(c, http.StatusInternalServerError, codeInternal, "API Key context missing")
		return
	}

	usage, err := database.UsageHistory(h.DB, apiKey.ID, historyLimit)
	if err != nil {
		h.writeError(c, err)
		return
	}

	var totalRequests, totalHours, totalStaff int64
	for _, u := range usage {
		totalRequests += int64(u.RequestCount)
		totalHours += int64(u.TotalHours)
		totalStaff += int64(u.TotalStaff)
	}

	c.JSON(http.StatusOK, gin.H{
		"key_name":      apiKey.Name,
		"rate_limit":    apiKey.RateLimit,
		"usage_history": usage,
		"totals": gin.H{
			"requests": totalRequests,
			"hours":    totalHours,
			"staff":    totalStaff,
		},
	})
}

// ListRuns returns recent run summaries for the calling key
func (h *Handler) ListRuns(c *gin.Context) {
	apiKey := apiKeyFrom(c)
	if apiKey == nil {
		abortWithError(c, http.StatusInternalServerError, codeInternal, "API Key context missing")
		return
	}

	runs, err := database.ListRuns(h.DB, apiKey.ID, historyLimit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

// GetRun returns the stored result of one run
func (h *Handler) GetRun(c *gin.Context) {
	apiKey := apiKeyFrom(c)
	if apiKey == nil {
		abortWithError(c, http.StatusInternalServerError, codeInternal, "API Key context missing")
		return
	}

	run, err := database.GetRun(h.DB, apiKey.ID, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(run.Result))
}
