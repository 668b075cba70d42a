package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// RequireAdminKey guards the back-office review endpoints. They sit outside
// the user token flow; callers present the deployment's admin key instead.
func RequireAdminKey(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		presented := c.Get("X-Admin-Key")
		if key == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(key)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Admin key required",
			})
		}
		return c.Next()
	}
}
