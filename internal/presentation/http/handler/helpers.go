package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/mi-inventory-api/internal/application/service"
	"github.com/sangkips/mi-inventory-api/internal/presentation/http/dto/response"
	"github.com/sangkips/mi-inventory-api/internal/presentation/http/middleware"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	v, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return nil
	}
	userID, ok := v.(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return nil
	}
	return &userID
}

func GetUserName(c *gin.Context) string {
	return c.GetString(middleware.ContextUserName)
}

// sessionRef builds the session address from the authenticated user and
// the X-Session-ID header. It writes the error response itself.
func sessionRef(c *gin.Context) (service.SessionRef, bool) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return service.SessionRef{}, false
	}
	v, exists := c.Get(middleware.ContextSessionID)
	sessionID, ok := v.(uuid.UUID)
	if !exists || !ok {
		response.BadRequest(c, middleware.SessionHeader+" header is required")
		return service.SessionRef{}, false
	}
	return service.SessionRef{SessionID: sessionID, UserID: *userID}, true
}

// bindJSON decodes the body into req and reports malformed input as 400.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return false
	}
	return true
}

// bindOptionalJSON is bindJSON for endpoints whose body may be omitted.
// An empty body leaves req at its zero value.
func bindOptionalJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return false
	}
	return true
}

// pathUUID parses a UUID path parameter, answering 404 when it is malformed.
func pathUUID(c *gin.Context, name, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.ErrorWithCode(c, 404, resource+" not found")
		return uuid.Nil, false
	}
	return id, true
}
