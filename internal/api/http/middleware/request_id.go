package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	httpcontext "github.com/dtroode/scorepredictor-server/internal/api/http/context"
)

const RequestIDHeader = "X-Request-ID"

// RequestID propagates the caller's X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}

		c.Writer.Header().Set(RequestIDHeader, id)
		c.Request = c.Request.WithContext(httpcontext.WithRequestID(c.Request.Context(), id))

		c.Next()
	}
}
