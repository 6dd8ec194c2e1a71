package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/staff-scheduler-api/internal/app"
	"github.com/arnavshah/staff-scheduler-api/internal/config"
	"github.com/arnavshah/staff-scheduler-api/pkg/logging"
)

var (
	r       *gin.Engine
	initErr error
)

func init() {
	cfg, err := config.Load()
	if err != nil {
		initErr = err
		return
	}
	logger, err := logging.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		initErr = err
		return
	}
	r, initErr = app.NewRouter(cfg, logger)
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	if initErr != nil {
		http.Error(w, "server misconfigured: "+initErr.Error(), http.StatusInternalServerError)
		return
	}
	r.ServeHTTP(w, req)
}
