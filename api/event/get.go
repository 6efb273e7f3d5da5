package event

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/seispick/api/types"
)

// Get renders the review page for one event
// @Summary Event review page
// @Description Renders the picking page for an event. The event's metadata document, with "picks" replaced by the
// @Description current effective pick of every channel, is embedded in the page as the client configuration.
// @Tags events
// @Produce html
// @Param event_id path string true "Event ID"
// @Success 200 {string} string "HTML page"
// @Failure 400 {object} types.ErrorResponse "Event ID is not a valid path component"
// @Failure 404 {object} types.ErrorResponse "Event metadata not found"
// @Failure 500 {object} types.ErrorResponse "Database failure"
// @Router /event/{event_id} [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID := c.Param("event_id")

		page, err := deps.PickService.EventPage(c.Request.Context(), eventID)
		if err != nil {
			types.SendError(c, err)
			return
		}

		c.HTML(http.StatusOK, "index.html", gin.H{
			"EventID":      eventID,
			"ClientConfig": page,
		})
	}
}
