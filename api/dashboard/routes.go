package dashboard

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/seispick/api/types"
)

// RegisterRoutes registers the dashboard page
func RegisterRoutes(router gin.IRouter, deps *types.Dependencies) {
	router.GET("/", Get(deps))
}
