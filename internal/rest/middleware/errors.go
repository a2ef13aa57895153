package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ierr "github.com/subwatch/subwatch/internal/errors"
	"github.com/subwatch/subwatch/internal/logger"
)

// ErrorHandlerMiddleware translates errors attached to the gin context into
// a JSON error response with a status derived from the error's sentinel.
func ErrorHandlerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := statusFromError(err)
		if status >= 500 {
			log.WithContext(c.Request.Context()).Errorw("request failed", "error", err)
		}

		body := gin.H{"message": err.Error()}
		if hint := ierr.Hint(err); hint != "" {
			body["hint"] = hint
		}
		if details := ierr.ReportableDetails(err); details != nil {
			body["details"] = details
		}
		c.JSON(status, gin.H{"error": body})
	}
}

func statusFromError(err error) int {
	switch {
	case ierr.IsValidation(err):
		return http.StatusBadRequest
	case ierr.IsNotFound(err):
		return http.StatusNotFound
	case ierr.IsAlreadyExists(err):
		return http.StatusConflict
	case ierr.Is(err, ierr.ErrPermissionDenied):
		return http.StatusForbidden
	case ierr.IsHTTPClient(err):
		return http.StatusBadGateway
	case ierr.IsDatabase(err), ierr.IsInternal(err), ierr.Is(err, ierr.ErrSystem):
		return http.StatusInternalServerError
	default:
		// unmarked errors, ex gin binding failures
		return http.StatusBadRequest
	}
}
