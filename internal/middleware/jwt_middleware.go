package middleware

import (
	"log"
	"strings"

	"littlelemon/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired is a Fiber middleware that checks for a valid JWT token and
// resolves the caller's role once per request.
func AuthRequired(authService *services.AuthService, resolver *services.RoleResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		tokenString := parts[1]

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}

		userID, _ := claims["user_id"].(string)
		role, err := resolver.Resolve(userID)
		if err != nil {
			log.Printf("Role resolution failed for user %s: %v", userID, err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unknown user",
			})
		}

		// Store identity and role in Fiber context for subsequent handlers
		c.Locals("user_id", userID)
		c.Locals("username", claims["username"])
		c.Locals("role", role)

		// Continue to the next handler
		return c.Next()
	}
}
