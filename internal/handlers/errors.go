package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sporthub/court-booking-backend/internal/models"
)

// respondError maps the engine's error taxonomy onto HTTP responses.
// Unknown errors are logged and reported as 500 without detail.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": err.Error(),
			"code":    "VALIDATION_ERROR",
		})
	case errors.Is(err, models.ErrOverlap):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "overlap",
			"message": "The requested window is no longer available. Re-check availability before retrying.",
			"code":    "RESERVATION_OVERLAP",
		})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": err.Error(),
			"code":    "NOT_FOUND",
		})
	case errors.Is(err, models.ErrPermission):
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "forbidden",
			"message": "You don't have permission to perform this action",
			"code":    "INSUFFICIENT_PERMISSIONS",
		})
	case errors.Is(err, models.ErrNoPricingCoverage):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "no_pricing_coverage",
			"message": err.Error(),
			"code":    "NO_PRICING_COVERAGE",
		})
	default:
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("Unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "An unexpected error occurred",
			"code":    "INTERNAL_ERROR",
		})
	}
}

// bindError reports a malformed JSON body
func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "validation_error",
		"message": "Invalid request body: " + err.Error(),
		"code":    "INVALID_BODY",
	})
}

// pathID parses the :id path parameter
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": "id must be a positive integer",
			"code":    "INVALID_ID",
		})
		return 0, false
	}
	return id, true
}
