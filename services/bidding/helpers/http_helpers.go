package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"rentbid/internal/biddingerrors"
	"rentbid/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, biddingerrors.ErrSessionNotFound):
		return http.StatusNotFound, "session not found"
	case errors.Is(err, biddingerrors.ErrNotParticipant):
		return http.StatusForbidden, "not a session participant"
	case errors.Is(err, biddingerrors.ErrInvalidTransition):
		return http.StatusConflict, "session already ended"
	case errors.Is(err, biddingerrors.ErrStatusConflict):
		return http.StatusConflict, "session changed concurrently"
	case errors.Is(err, biddingerrors.ErrNoBids):
		return http.StatusConflict, "session has no bids"
	case errors.Is(err, biddingerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, biddingerrors.ErrPersistence):
		return http.StatusServiceUnavailable, "storage unavailable"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
