package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/venta/backend/internal/interfaces/http/dto"
)

// DefaultBodyLimit caps seller payloads, which are a few hundred bytes.
const DefaultBodyLimit int64 = 64 << 10

// BodyLimit rejects bodies over maxBytes and caps streamed bodies at the same size.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeBadRequest,
				"Request body exceeds maximum allowed size",
				GetRequestID(c),
			))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
