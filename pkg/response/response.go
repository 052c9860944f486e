package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/devconnector/devconnector/internal/apperror"
	"github.com/devconnector/devconnector/pkg/validation"
)

// Wire conventions: success responses carry the affected resource as bare
// JSON, client errors carry {"msg": ...}, validation failures carry
// {"errors": [{field, message}...]}, and anything unexpected is a plain-text
// 500.

// JSON writes the affected resource on success.
func JSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

// Msg writes a {"msg": ...} body.
func Msg(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"msg": msg})
}

// ValidationFailed writes the structured 400 field error list.
func ValidationFailed(c *gin.Context, errs []validation.FieldError) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
}

// BindingFailed converts a Gin binding error into the structured 400 body.
func BindingFailed(c *gin.Context, err error) {
	ValidationFailed(c, validation.ToFieldErrors(err))
}

// FromError is the single translation point from the error-kind taxonomy to
// HTTP statuses. Handlers hand every service/repository error here instead
// of mapping statuses locally.
func FromError(c *gin.Context, logger *logrus.Logger, err error) {
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		Msg(c, http.StatusNotFound, err.Error())
	case errors.Is(err, apperror.ErrUnauthorized):
		Msg(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, apperror.ErrConflict), errors.Is(err, apperror.ErrValidation):
		Msg(c, http.StatusBadRequest, err.Error())
	default:
		if logger != nil {
			entry := logger.WithField("request_id", c.GetString("request_id"))
			var appErr *apperror.AppError
			if errors.As(err, &appErr) && appErr.Cause != nil {
				entry = entry.WithError(appErr.Cause)
			} else {
				entry = entry.WithError(err)
			}
			entry.Error("unhandled error")
		}
		c.String(http.StatusInternalServerError, "Server Error")
	}
}
