package random

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/seispick/api/types"
)

// Unpicked redirects to a random event without user picks
// @Summary Random unpicked event
// @Description Redirects to the review page of an event chosen uniformly at random among events with no user picks.
// @Tags random
// @Success 302 "Redirect to /event/{event_id}"
// @Failure 404 {object} types.ErrorResponse "No unpicked event left"
// @Router /random_unpicked [get]
func Unpicked(deps *types.Dependencies) gin.HandlerFunc {
	return redirect(func(ctx context.Context) (string, error) {
		return deps.EventService.RandomUnpicked(ctx)
	})
}

// Picked redirects to a random event with user picks
// @Summary Random picked event
// @Description Redirects to the review page of an event chosen uniformly at random among events with user picks.
// @Tags random
// @Success 302 "Redirect to /event/{event_id}"
// @Failure 404 {object} types.ErrorResponse "No picked event yet"
// @Router /random_picked [get]
func Picked(deps *types.Dependencies) gin.HandlerFunc {
	return redirect(func(ctx context.Context) (string, error) {
		return deps.EventService.RandomPicked(ctx)
	})
}

func redirect(pick func(context.Context) (string, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, err := pick(c.Request.Context())
		if err != nil {
			types.SendError(c, err)
			return
		}
		c.Redirect(http.StatusFound, "/event/"+url.PathEscape(eventID))
	}
}
