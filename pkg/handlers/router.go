package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/staff-scheduler-api/pkg/logging"
)

// Version is reported by the root endpoint
const Version = "3.0.0"

// NewRouter wires every route onto a fresh gin engine
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(logging.RequestLogger(h.Logger), gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Staff Scheduler API",
			"version": Version,
		})
	})
	r.GET("/healthz", h.Health)
	r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))

	r.POST("/admin/login", h.Login)

	// Admin Endpoints
	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)
	}

	// Scheduler Endpoints
	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	{
		api.POST("/schedule", h.ScheduleJSON)
		api.POST("/schedule/csv", h.ScheduleCSV)
		api.POST("/plan", h.PlanDepartment)
		api.POST("/validate", h.ValidateInput)
		api.GET("/usage", h.GetMyUsage)
		api.GET("/runs", h.ListRuns)
		api.GET("/runs/:id", h.GetRun)

		// Legacy route kept for existing clients
		api.POST("/staff/optimize", h.ScheduleJSON)
	}

	// Python Parity Routes
	r.POST("/schedule/json", h.APIKeyMiddleware(), h.ScheduleJSON)
	r.POST("/schedule/csv", h.APIKeyMiddleware(), h.ScheduleCSV)

	return r
}
