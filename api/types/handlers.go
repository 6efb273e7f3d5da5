package types

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/seispick/internal/services/events"
	apperrors "github.com/killallgit/seispick/pkg/errors"
	"github.com/killallgit/seispick/pkg/logger"
)

// Handler utility functions to reduce duplication across handlers

// BindJSONOrError attempts to bind JSON request body to target struct
// Returns false and sends error response if binding fails
func BindJSONOrError(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Status:  StatusError,
			Message: "Invalid request body",
			Error:   string(apperrors.ErrCodeInvalidInput),
			Details: err.Error(),
		})
		return false
	}
	return true
}

// SendNotFound sends a standardized not found response
func SendNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{
		Status:  StatusError,
		Message: message,
		Error:   string(apperrors.ErrCodeNotFound),
		Details: gin.H{"path": c.Request.URL.Path},
	})
}

// ToAppError converts service errors into an AppError carrying the HTTP
// status the surface should answer with
func ToAppError(err error) *apperrors.AppError {
	if appErr, ok := apperrors.As(err); ok {
		return appErr
	}

	switch {
	case errors.Is(err, events.ErrMetadataNotFound):
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "event metadata not found")
	case errors.Is(err, events.ErrEventNotFound):
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "event not found")
	case errors.Is(err, events.ErrNoEventAvailable):
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "no matching event available")
	case errors.Is(err, events.ErrInvalidIdentifier):
		return apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "invalid identifier")
	default:
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "internal error")
	}
}

// SendError writes err as an ErrorResponse with its mapped status code
func SendError(c *gin.Context, err error) {
	appErr := ToAppError(err)
	status := appErr.GetHTTPCode()

	if status >= http.StatusInternalServerError {
		logger.Component("api").Error("request failed",
			"path", c.Request.URL.Path,
			"code", appErr.Code,
			"error", err)
	}

	resp := ErrorResponse{
		Status:  StatusError,
		Message: appErr.Message,
		Error:   string(appErr.Code),
	}
	if len(appErr.Details) > 0 {
		resp.Details = appErr.Details
	}
	c.AbortWithStatusJSON(status, resp)
}
