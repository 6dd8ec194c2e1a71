package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/arnavshah/staff-scheduler-api/pkg/auth"
	"github.com/arnavshah/staff-scheduler-api/pkg/database"
)

// Login handles admin login
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, badRequest("%v", err))
		return
	}

	var user database.MasterUser
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		abortWithError(c, http.StatusUnauthorized, codeUnauthorized, "Invalid credentials")
		return
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		abortWithError(c, http.StatusUnauthorized, codeUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.Auth.CreateToken(user.Username, h.now())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

// GenerateKey creates a new API key using the HMAC strategy
func (h *Handler) GenerateKey(c *gin.Context) {
	var req struct {
		Name      string `json:"name" binding:"required"`
		RateLimit int    `json:"rate_limit" binding:"gte=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, badRequest("%v", err))
		return
	}
	if strings.Contains(req.Name, ".") {
		h.writeError(c, badRequest("name must not contain '.'"))
		return
	}
	if req.RateLimit == 0 {
		req.RateLimit = h.DefaultRateLimit
	}

	key := h.Auth.GenerateHMACKey(req.Name)

	// revoked keys still hold their name
	var existing database.APIKey
	err := h.DB.Unscoped().Where("key = ?", key).First(&existing).Error
	if err == nil {
		abortWithError(c, http.StatusConflict, codeConflict, "A key with this name already exists")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		h.writeError(c, err)
		return
	}

	apiKey := database.APIKey{
		Key:        key,
		Name:       req.Name,
		KeyPreview: database.Preview(key),
		RateLimit:  req.RateLimit,
	}
	if err := h.DB.Create(&apiKey).Error; err != nil {
		h.writeError(c, err)
		return
	}
	h.Logger.Info("api key created", zap.String("name", req.Name), zap.String("admin", c.GetString(ctxUsername)))

	c.JSON(http.StatusOK, gin.H{
		"id":   apiKey.ID,
		"name": req.Name,
		"key":  key,
	})
}

// ListKeys returns all API keys
func (h *Handler) ListKeys(c *gin.Context) {
	var keys []database.APIKey
	if err := h.DB.Order("id").Find(&keys).Error; err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"keys": keys})
}

// RevokeKey deletes an API key
func (h *Handler) RevokeKey(c *gin.Context) {
	res := h.DB.Delete(&database.APIKey{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		h.writeError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		h.writeError(c, gorm.ErrRecordNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Key revoked"})
}

// UpdateKeyLimit updates the rate limit for a key
func (h *Handler) UpdateKeyLimit(c *gin.Context) {
	var req struct {
		RateLimit int `json:"rate_limit" form:"rate_limit"`
	}

	// Try JSON first, then Form/Query
	if err := c.ShouldBindJSON(&req); err != nil {
		if err := c.ShouldBindQuery(&req); err != nil {
			h.writeError(c, badRequest("rate_limit is required"))
			return
		}
	}
	if req.RateLimit <= 0 {
		h.writeError(c, badRequest("invalid rate limit"))
		return
	}

	res := h.DB.Model(&database.APIKey{}).Where("id = ?", c.Param("id")).Update("rate_limit", req.RateLimit)
	if res.Error != nil {
		h.writeError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		h.writeError(c, gorm.ErrRecordNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rate limit updated successfully"})
}

// GetUsage returns usage stats for a key
func (h *Handler) GetUsage(c *gin.Context) {
	var key database.APIKey
	if err := h.DB.First(&key, "id = ?", c.Param("id")).Error; err != nil {
		h.writeError(c, err)
		return
	}
	usage, err := database.UsageHistory(h.DB, key.ID, historyLimit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"usage": usage})
}
