package version

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/seispick/api/types"
)

// RegisterRoutes registers version routes
func RegisterRoutes(router gin.IRouter, deps *types.Dependencies) {
	router.GET("/version", Get(deps))
}
