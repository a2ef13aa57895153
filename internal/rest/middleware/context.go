package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subwatch/subwatch/internal/types"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderUserID    = "X-User-ID"
)

// RequestIDMiddleware propagates the caller's request id, generating one
// when absent, so every log line of a request can be correlated.
func RequestIDMiddleware(c *gin.Context) {
	requestID := c.GetHeader(HeaderRequestID)
	if requestID == "" {
		requestID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REQUEST)
	}

	ctx := types.SetRequestID(c.Request.Context(), requestID)
	c.Request = c.Request.WithContext(ctx)
	c.Writer.Header().Set(HeaderRequestID, requestID)
	c.Next()
}

// UserContextMiddleware reads the authenticated user id from the trusted
// upstream header. Authentication itself is an external collaborator; this
// service only consumes its result.
func UserContextMiddleware(c *gin.Context) {
	userID := c.GetHeader(HeaderUserID)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": gin.H{"message": "missing user identity"},
		})
		return
	}

	ctx := types.SetUserID(c.Request.Context(), userID)
	c.Request = c.Request.WithContext(ctx)
	c.Next()
}
