package api

import (
	"errors"
	"net/http"

	"novares-ledger-go/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errAdmissionClosed = errors.New("registrations are closed at this time")

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrPersistenceFailure):
		return http.StatusInternalServerError
	case errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrMissingReason),
		errors.Is(err, models.ErrInvalidProfile):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrBadCredential),
		errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrNotActive):
		return http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrDuplicateIdentity),
		errors.Is(err, models.ErrNotPending):
		return http.StatusConflict
	case errors.Is(err, models.ErrInvalidRecipient),
		errors.Is(err, models.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// fail aborts the request with the error kind. Internal errors are logged
// and not echoed to the client.
func fail(c *gin.Context, err error) {
	status := statusFor(err)
	resp := models.ErrorResponse{Error: models.Kind(err), Message: err.Error()}
	if status == http.StatusInternalServerError {
		zap.L().Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		resp.Message = "internal error"
	}
	c.AbortWithStatusJSON(status, resp)
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "bad_request", Message: err.Error()})
}
