package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/arnavshah/staff-scheduler-api/internal/config"
	"github.com/arnavshah/staff-scheduler-api/pkg/auth"
	"github.com/arnavshah/staff-scheduler-api/pkg/database"
	"github.com/arnavshah/staff-scheduler-api/pkg/handlers"
	"github.com/arnavshah/staff-scheduler-api/pkg/metrics"
)

// NewAuthenticator builds the token and key signer from config
func NewAuthenticator(cfg *config.Config) *auth.Authenticator {
	return &auth.Authenticator{
		JWTSecret:    []byte(cfg.JWTSecret),
		MasterSecret: []byte(cfg.APIMasterSecret),
		TokenTTL:     cfg.TokenTTL,
		BcryptCost:   cfg.BcryptCost,
	}
}

// NewRouter opens the database, seeds the admin user and returns the HTTP engine
func NewRouter(cfg *config.Config, logger *zap.Logger) (*gin.Engine, error) {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg.DatabaseURL, cfg.DataPath, logger)
	if err != nil {
		return nil, err
	}

	authn := NewAuthenticator(cfg)
	created, err := authn.EnsureAdminExists(db, cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to seed admin user: %w", err)
	}
	if created {
		logger.Info("admin user created", zap.String("username", cfg.AdminUsername))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	h := &handlers.Handler{
		DB:               db,
		Auth:             authn,
		Metrics:          metrics.NewRecorder(reg),
		Logger:           logger,
		DefaultRateLimit: cfg.DefaultRateLimit,
	}
	return handlers.NewRouter(h), nil
}
