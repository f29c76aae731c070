package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"novatrip/pkg/utils"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

type HealthController struct {
	check HealthCheck
}

func NewHealthController(check HealthCheck) *HealthController {
	return &HealthController{check: check}
}

// Healthz godoc
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /healthz [get]
func (hc *HealthController) Healthz(c *gin.Context) {
	if hc.check != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := hc.check(ctx); err != nil {
			utils.RespondError(c, http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}
	utils.RespondSuccess(c, gin.H{"status": "ok"}, "healthy")
}
