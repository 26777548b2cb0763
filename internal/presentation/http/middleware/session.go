package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/mi-inventory-api/internal/presentation/http/dto/response"
)

const (
	SessionHeader    = "X-Session-ID"
	ContextSessionID = "session_id"
)

// SessionMiddleware requires the X-Session-ID header on session-scoped
// routes. Ownership is checked by the session store, not here.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(SessionHeader)
		if raw == "" {
			response.BadRequest(c, SessionHeader+" header is required")
			c.Abort()
			return
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid "+SessionHeader+" header")
			c.Abort()
			return
		}
		c.Set(ContextSessionID, id)
		c.Next()
	}
}
