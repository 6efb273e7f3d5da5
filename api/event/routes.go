package event

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/seispick/api/types"
)

// RegisterRoutes registers the event page and pick submission routes.
// saveMiddleware runs in front of POST /save_picks only.
func RegisterRoutes(router gin.IRouter, deps *types.Dependencies, saveMiddleware ...gin.HandlerFunc) {
	// GET /event/:event_id - review page
	router.GET("/event/:event_id", Get(deps))

	// POST /save_picks/:event_id - record picks
	handlers := append(append([]gin.HandlerFunc{}, saveMiddleware...), SavePicks(deps))
	router.POST("/save_picks/:event_id", handlers...)
}
