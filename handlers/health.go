package handlers

import (
	"net/http"

	"urbanset/utils"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	Checks map[string]utils.HealthCheck
}

func NewHealthHandler(checks map[string]utils.HealthCheck) *HealthHandler {
	return &HealthHandler{Checks: checks}
}

// HealthHandler runs every dependency check and reports 503 when one fails.
func (h *HealthHandler) HealthHandler(c *gin.Context) {
	status := utils.CheckHealth(c.Request.Context(), h.Checks)
	code := http.StatusOK
	if !status.Healthy {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"success": status.Healthy, "data": status})
}
