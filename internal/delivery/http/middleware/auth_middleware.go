package middleware

import (
	"strings"

	"campuseats/internal/delivery/http/response"
	"campuseats/internal/domain/entity"
	"campuseats/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Context keys under which the authenticated identity is stored.
const (
	ContextKeyAccountID = "accountID"
	ContextKeyRole      = "role"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate is the core middleware function that validates the JWT access token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "INVALID_TOKEN_FORMAT", "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		// Set identity on the context for handlers to use
		c.Set(ContextKeyAccountID, claims.AccountID)
		c.Set(ContextKeyRole, claims.Role)

		return next(c)
	}
}

// RequireRole is a middleware factory that restricts a route group to the
// given roles. It must be used AFTER the Authenticate middleware. A caller
// with a valid token but the wrong role gets a 403 carrying the dashboard
// route of their own role, so frontends can redirect instead of dead-ending.
func (m *AuthMiddleware) RequireRole(requiredRoles ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := RoleFromContext(c)
			if !ok {
				return response.Forbidden(c, "ROLE_MISSING", "Permission denied: role information missing")
			}

			if !entity.Roles(requiredRoles).Contains(role) {
				return response.ForbiddenWithRoute(c, "ROLE_MISMATCH",
					"Permission denied for this area", role.DashboardRoute())
			}

			return next(c)
		}
	}
}

// RequireAdministrative restricts a route group to admins and sub-admins.
func (m *AuthMiddleware) RequireAdministrative() echo.MiddlewareFunc {
	return m.RequireRole(entity.RoleAdmin, entity.RoleSubAdmin)
}

// AccountIDFromContext returns the authenticated account ID set by Authenticate.
func AccountIDFromContext(c echo.Context) (uuid.UUID, bool) {
	accountID, ok := c.Get(ContextKeyAccountID).(uuid.UUID)

	return accountID, ok
}

// RoleFromContext returns the authenticated role set by Authenticate.
func RoleFromContext(c echo.Context) (entity.Role, bool) {
	role, ok := c.Get(ContextKeyRole).(entity.Role)

	return role, ok
}
