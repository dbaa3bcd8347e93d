package middleware

import (
	"net/http"
	"strings"

	"ewaste_backend/internal/appErrors"
	"ewaste_backend/internal/auth"
	"ewaste_backend/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ctxPrincipalKey = "principal"
	ctxRoleKey      = "role"
)

// AuthMiddleware validates the bearer token and stores the principal
// and role in the gin context. Requests without a valid token never
// reach a handler.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				appErrors.ErrorResponse{Error: appErrors.NewUnauthorizedError("Authorization header missing or invalid")})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				appErrors.ErrorResponse{Error: appErrors.ErrInvalidToken})
			return
		}

		c.Set(ctxPrincipalKey, claims.Subject)
		c.Set(ctxRoleKey, claims.Role)
		c.Next()
	}
}

// RequireRoles rejects requests whose token role is not in the allowed
// set. Fails closed: missing or malformed role context is a 403.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		roleVal, exists := c.Get(ctxRoleKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden,
				appErrors.ErrorResponse{Error: appErrors.NewForbiddenError("Access denied: no role")})
			return
		}

		role, ok := roleVal.(models.UserRole)
		if !ok {
			roleStr, isString := roleVal.(string)
			if !isString {
				c.AbortWithStatusJSON(http.StatusForbidden,
					appErrors.ErrorResponse{Error: appErrors.NewForbiddenError("Access denied: invalid role")})
				return
			}
			role = models.UserRole(roleStr)
		}

		if !roleSet[role] {
			c.AbortWithStatusJSON(http.StatusForbidden,
				appErrors.ErrorResponse{Error: appErrors.NewForbiddenError("Access denied: insufficient permissions")})
			return
		}

		c.Next()
	}
}

// GetPrincipal returns the authenticated account email, or "" when the
// request is unauthenticated.
func GetPrincipal(c *gin.Context) string {
	principal, exists := c.Get(ctxPrincipalKey)
	if !exists {
		return ""
	}

	s, ok := principal.(string)
	if !ok {
		return ""
	}
	return s
}

// GetRole returns the token role for the request.
func GetRole(c *gin.Context) models.UserRole {
	roleVal, exists := c.Get(ctxRoleKey)
	if !exists {
		return ""
	}

	role, ok := roleVal.(models.UserRole)
	if !ok {
		return ""
	}
	return role
}
