package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/todo-api/internal/application"
	"github.com/oksasatya/todo-api/pkg/response"
	"github.com/oksasatya/todo-api/pkg/validation"
)

// writeError maps application errors onto status codes.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	var verr *application.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error[any](c, http.StatusUnprocessableEntity, "validation failed", map[string]string{verr.Field: verr.Msg})
	case errors.Is(err, application.ErrInvalidCredential):
		c.Header("WWW-Authenticate", "Bearer")
		response.Error[any](c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, application.ErrForbidden):
		response.Error[any](c, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, application.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, application.ErrConflict):
		response.Error[any](c, http.StatusConflict, err.Error(), nil)
	default:
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"path":       c.FullPath(),
			}).Error("request failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
	}
}

// bindError reports malformed bodies as 400 and rule violations as 422.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		response.Error[any](c, http.StatusUnprocessableEntity, "validation failed", validation.ToDetails(err))
		return
	}
	response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusUnprocessableEntity, "validation failed", map[string]string{"id": "must be a positive integer"})
		return 0, false
	}
	return id, true
}
