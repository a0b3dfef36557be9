package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alimgiray/persondir/internal/models"
	"github.com/alimgiray/persondir/pkg/logger"
)

// respondError writes the error body for err, mapping the domain error kinds
// to client statuses. Anything else is logged and reported as a 500.
func respondError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, "INTERNAL_ERROR"
	message := "internal server error"

	switch {
	case errors.Is(err, models.ErrInvalidInput):
		status, code, message = http.StatusBadRequest, "INVALID_INPUT", err.Error()
	case errors.Is(err, models.ErrNotFound):
		status, code, message = http.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, models.ErrDuplicateResource):
		status, code, message = http.StatusConflict, "DUPLICATE_RESOURCE", err.Error()
	default:
		logger.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
	}

	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
