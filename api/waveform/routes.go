package waveform

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/seispick/api/types"
)

// RegisterRoutes registers all waveform-related routes
func RegisterRoutes(router gin.IRouter, deps *types.Dependencies, compress bool) {
	// GET /xy/:event_id/:channel - time axis and samples as raw floats
	router.GET("/xy/:event_id/:channel", GetXY(deps, compress))
}
