package middleware

import (
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/mi-inventory-api/internal/presentation/http/dto/response"
	"github.com/sangkips/mi-inventory-api/pkg/utils"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserID      = "user_id"
	ContextUserName    = "user_name"
	ContextUserEmail   = "user_email"
	ContextRoles       = "user_roles"
	ContextPermissions = "user_permissions"
)

// AuthMiddleware validates the bearer token and puts the caller on the context.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(token)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		name := claims.Name
		if name == "" {
			name = claims.Email
		}
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserName, name)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextRoles, claims.Roles)
		c.Set(ContextPermissions, claims.Permissions)

		c.Next()
	}
}

// RequirePermission rejects callers whose token lacks permission.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !slices.Contains(c.GetStringSlice(ContextPermissions), permission) {
			response.Forbidden(c, "You do not have permission to perform this action")
			c.Abort()
			return
		}
		c.Next()
	}
}
