package auctionhandler

import (
	"errors"
	"net/http"

	"auctiondesk/internal/actor"
	"auctiondesk/internal/services/auction"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var conflictErrors = []error{
	auction.ErrInFlight,
	auction.ErrStatusChanged,
	auction.ErrNotPending,
	auction.ErrNotPublished,
	auction.ErrNotActive,
	auction.ErrNotDeletable,
	auction.ErrMissingSchedule,
	auction.ErrStartPassed,
	auction.ErrEndPassed,
	auction.ErrEndBeforeStart,
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	var fe auction.FieldErrors
	switch {
	case errors.As(err, &fe):
		return http.StatusUnprocessableEntity
	case errors.Is(err, auction.ErrReasonRequired), errors.Is(err, auction.ErrReasonTooLong):
		return http.StatusBadRequest
	case errors.Is(err, actor.ErrNoActor):
		return http.StatusUnauthorized
	case errors.Is(err, auction.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, auction.ErrForbidden):
		return http.StatusForbidden
	}
	for _, target := range conflictErrors {
		if errors.Is(err, target) {
			return http.StatusConflict
		}
	}
	return http.StatusInternalServerError
}

// writeError answers with the status matching err. Form errors carry the
// per-field messages; store failures are logged.
func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	body := ErrorResponse{Error: err.Error()}

	var fe auction.FieldErrors
	if errors.As(err, &fe) {
		body.Fields = fe
	}
	if status == http.StatusInternalServerError {
		zap.L().Error("http_request_failed",
			zap.String("method", c.Request.Method), zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, body)
}
