package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/seispick/api/types"
)

// Get renders the dashboard
// @Summary Dashboard
// @Description Lists every event with its reference and user pick counts, plus totals.
// @Tags dashboard
// @Produce html
// @Success 200 {string} string "HTML page"
// @Failure 500 {object} types.ErrorResponse "Database failure"
// @Router / [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := deps.EventService.Dashboard(c.Request.Context())
		if err != nil {
			types.SendError(c, err)
			return
		}
		c.HTML(http.StatusOK, "home.html", d)
	}
}
