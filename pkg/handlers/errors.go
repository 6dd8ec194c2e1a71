package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/arnavshah/staff-scheduler-api/pkg/models"
	"github.com/arnavshah/staff-scheduler-api/pkg/planner"
	"github.com/arnavshah/staff-scheduler-api/pkg/scheduler"
)

const (
	codeEmptyDemand  = "EMPTY_DEMAND"
	codeInvalidStaff = "INVALID_STAFF_CONFIG"
	codeInvalidInput = "INVALID_REQUEST"
	codeUnauthorized = "UNAUTHORIZED"
	codeNotFound     = "NOT_FOUND"
	codeConflict     = "CONFLICT"
	codeRateLimited  = "RATE_LIMITED"
	codeInternal     = "INTERNAL_ERROR"
)

// errBadRequest marks malformed input that never reached the scheduler
var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

// classify maps an error to an HTTP status and error code
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, scheduler.ErrEmptyDemand):
		return http.StatusBadRequest, codeEmptyDemand
	case errors.Is(err, scheduler.ErrInvalidStaffConfig):
		return http.StatusBadRequest, codeInvalidStaff
	case errors.Is(err, planner.ErrInvalidRequest), errors.Is(err, errBadRequest):
		return http.StatusBadRequest, codeInvalidInput
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, codeNotFound
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

// outcome is the metrics label for a failed run
func outcome(err error) string {
	switch {
	case errors.Is(err, scheduler.ErrEmptyDemand):
		return "empty_demand"
	case errors.Is(err, scheduler.ErrInvalidStaffConfig):
		return "invalid_staff_config"
	case errors.Is(err, planner.ErrInvalidRequest):
		return "invalid_request"
	default:
		return "error"
	}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	status, code := classify(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		h.Logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		msg = "internal server error"
	}
	_ = c.Error(err)
	c.JSON(status, models.ErrorResponse{Error: models.APIError{Code: code, Message: msg}})
}

func abortWithError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{Error: models.APIError{Code: code, Message: msg}})
}
