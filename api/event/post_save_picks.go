package event

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/seispick/api/types"
	"github.com/killallgit/seispick/internal/services/picks"
)

// SavePicks records a pick submission
// @Summary Save picks for an event
// @Description Accepts the full channel -> pick sample mapping for an event. Only channels whose value differs from
// @Description the current effective pick are appended to the pick log; null deletes a pick. The event's user pick
// @Description counter is rewritten on every save.
// @Tags events
// @Accept json
// @Produce json
// @Param event_id path string true "Event ID"
// @Param request body picks.SaveRequest true "Picks and user"
// @Success 200 {object} types.SavePicksResponse "Empty object"
// @Failure 400 {object} types.ErrorResponse "Malformed body or missing picks/user_id"
// @Failure 404 {object} types.ErrorResponse "Event metadata not found"
// @Failure 429 {object} types.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} types.ErrorResponse "Database failure"
// @Router /save_picks/{event_id} [post]
func SavePicks(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID := c.Param("event_id")

		var req picks.SaveRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		if _, err := deps.PickService.SavePicks(c.Request.Context(), eventID, req); err != nil {
			types.SendError(c, err)
			return
		}

		c.JSON(http.StatusOK, types.SavePicksResponse{})
	}
}
