package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/seispick/api/types"
)

// Get handles version requests
// @Summary Service version
// @Tags health
// @Produce json
// @Success 200 {object} types.VersionResponse
// @Router /version [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	v := "dev"
	if deps != nil && deps.Version != "" {
		v = deps.Version
	}

	return func(c *gin.Context) {
		c.JSON(http.StatusOK, types.VersionResponse{
			Name:        "seispick",
			Version:     v,
			Description: "Seismic waveform pick review service",
			Status:      "running",
		})
	}
}
