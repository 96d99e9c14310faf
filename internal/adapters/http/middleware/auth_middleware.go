package middleware

import (
	"strings"

	"staytrack/internal/adapters/persistence/models"
	"staytrack/internal/core/services"
	"staytrack/internal/pkg/jwt"
	"staytrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware creates authentication middleware. Besides validating
// the JWT it re-fetches the user, so tokens of deleted or deactivated
// accounts stop working immediately.
func AuthMiddleware(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		// 1. Try to get token from cookie first
		accessToken = c.Cookies("access_token")

		// 2. If not in cookie, try Authorization header
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 4. Validate token
		claims, err := authService.ValidateAccessToken(accessToken)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// 5. The account behind the token must still exist and be active
		user, err := authService.GetUserByID(c.UserContext(), claims.UserID)
		if err != nil || !user.IsActive {
			return response.Unauthorized(c, "Account no longer active")
		}

		// 6. Set user info in context
		c.Locals("userID", user.ID)
		c.Locals("email", user.Email)
		c.Locals("role", user.Role)

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		// Check if user's role is in allowed roles
		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// OwnerOnly middleware allows only the owner role
func OwnerOnly() fiber.Handler {
	return RoleMiddleware(models.RoleOwner)
}

// StaffOnly middleware allows owner or admin roles
func StaffOnly() fiber.Handler {
	return RoleMiddleware(models.RoleOwner, models.RoleAdmin)
}
