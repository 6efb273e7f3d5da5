package random

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/seispick/api/types"
)

func RegisterRoutes(router gin.IRouter, deps *types.Dependencies) {
	// GET /random_unpicked
	router.GET("/random_unpicked", Unpicked(deps))

	// GET /random_picked
	router.GET("/random_picked", Picked(deps))
}
