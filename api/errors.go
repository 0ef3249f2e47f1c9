package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/airquery/internal/domain"
	"github.com/Domenick1991/airquery/internal/logger"
	"github.com/Domenick1991/airquery/internal/query"
	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, query.ErrInvalidQuery):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError hides internal error text from clients; invalid queries and
// lookups that found nothing are reported as they are.
func writeError(c *gin.Context, log logger.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
