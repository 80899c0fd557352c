package middleware

import (
	"strings"

	"notes/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Keys under which the authenticated identity is stored in the Fiber locals.
const (
	LocalsUserID = "user_id"
	LocalsEmail  = "email"
)

// AuthRequired is a Fiber middleware to check for a valid JWT token.
// A missing bearer token is answered with 401, an invalid or expired one with 403.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Expected format: "Bearer <token>"
		parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			return c.SendStatus(fiber.StatusUnauthorized)
		}

		claims, err := authService.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			zap.L().Debug("JWT validation failed", zap.String("path", c.Path()), zap.Error(err))
			return c.SendStatus(fiber.StatusForbidden)
		}

		// Store the identity in Fiber context for subsequent handlers
		c.Locals(LocalsUserID, claims.UserID)
		c.Locals(LocalsEmail, claims.Email)

		return c.Next()
	}
}

// CurrentUserID returns the ID of the authenticated user, or "" outside AuthRequired.
func CurrentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalsUserID).(string)
	return id
}
