package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/seispick/api/types"
)

// Get handles health check requests
// @Summary Health check
// @Description Reports service liveness and the pick database connection status.
// @Tags health
// @Produce json
// @Success 200 {object} types.HealthResponse "Service healthy"
// @Failure 503 {object} types.HealthResponse "Database unreachable"
// @Router /health [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := types.HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Database:  getDatabaseStatus(deps),
		}

		status := http.StatusOK
		if response.Database["status"] == "unhealthy" {
			response.Status = "unhealthy"
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, response)
	}
}

// getDatabaseStatus returns the database connection status
func getDatabaseStatus(deps *types.Dependencies) map[string]interface{} {
	if deps == nil || deps.DB == nil || deps.DB.DB == nil {
		return map[string]interface{}{"status": "not configured", "connected": false}
	}

	if err := deps.DB.HealthCheck(); err != nil {
		return map[string]interface{}{"status": "unhealthy", "connected": false, "error": err.Error()}
	}

	return map[string]interface{}{"status": "healthy", "connected": true}
}
