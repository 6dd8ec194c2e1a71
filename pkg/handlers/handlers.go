package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/arnavshah/staff-scheduler-api/pkg/auth"
	"github.com/arnavshah/staff-scheduler-api/pkg/database"
	"github.com/arnavshah/staff-scheduler-api/pkg/metrics"
)

const (
	ctxAPIKey   = "apiKey"
	ctxUserID   = "userID"
	ctxUsername = "username"
)

// Handler contains dependencies for the route handlers
type Handler struct {
	DB               *gorm.DB
	Auth             *auth.Authenticator
	Metrics          *metrics.Recorder
	Logger           *zap.Logger
	DefaultRateLimit int

	// Now is overridden in tests
	Now func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// AuthMiddleware verifies the JWT token for admin routes
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.BearerToken(c.GetHeader("Authorization"))
		if token == "" {
			abortWithError(c, http.StatusUnauthorized, codeUnauthorized, "Authorization header required")
			return
		}

		claims, err := h.Auth.VerifyToken(token, h.now())
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, codeUnauthorized, "Invalid token")
			return
		}

		c.Set(ctxUsername, claims.Username)
		c.Next()
	}
}

// APIKeyMiddleware verifies the HMAC API key and enforces the key's daily request limit
func (h *Handler) APIKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := auth.BearerToken(c.GetHeader("Authorization"))
		if key == "" {
			abortWithError(c, http.StatusUnauthorized, codeUnauthorized, "API Key required")
			return
		}

		userID, err := h.Auth.VerifyHMACKey(key)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, codeUnauthorized, "Invalid API Key signature")
			return
		}

		now := h.now()
		apiKey, err := database.TouchKey(h.DB, key, userID, h.DefaultRateLimit, now)
		if errors.Is(err, database.ErrKeyRevoked) {
			abortWithError(c, http.StatusUnauthorized, codeUnauthorized, "API Key revoked")
			return
		}
		if err != nil {
			h.Logger.Error("could not load api key", zap.String("user_id", userID), zap.Error(err))
			abortWithError(c, http.StatusInternalServerError, codeInternal, "internal server error")
			return
		}

		used, err := database.RequestsOn(h.DB, apiKey.ID, database.Today(now))
		if err != nil {
			h.Logger.Error("could not read usage", zap.Uint("key_id", apiKey.ID), zap.Error(err))
			abortWithError(c, http.StatusInternalServerError, codeInternal, "internal server error")
			return
		}
		if used >= apiKey.RateLimit {
			abortWithError(c, http.StatusTooManyRequests, codeRateLimited, "Daily request limit reached")
			return
		}

		c.Set(ctxAPIKey, apiKey)
		c.Set(ctxUserID, userID)
		c.Next()
	}
}

func apiKeyFrom(c *gin.Context) *database.APIKey {
	raw, ok := c.Get(ctxAPIKey)
	if !ok {
		return nil
	}
	key, _ := raw.(*database.APIKey)
	return key
}

// RecordUsage adds the request to today's usage bucket for the calling key
func (h *Handler) RecordUsage(c *gin.Context, hours, staff int) {
	apiKey := apiKeyFrom(c)
	if apiKey == nil {
		return
	}
	if err := database.RecordUsage(h.DB, apiKey.ID, database.Today(h.now()), hours, staff); err != nil {
		h.Logger.Warn("could not record usage", zap.Uint("key_id", apiKey.ID), zap.Error(err))
	}
}

// Health pings the database
func (h *Handler) Health(c *gin.Context) {
	sqlDB, err := h.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
