package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ndamdavid/servicelink_backend/internal/auth"
	"github.com/ndamdavid/servicelink_backend/internal/models"
	"github.com/ndamdavid/servicelink_backend/internal/store"
)

const (
	localUser   = "currentUser"
	localToken  = "accessToken"
	localClaims = "accessClaims"
)

// Authenticate resolves the bearer token into a user and stores it in the
// request locals. It never fails the request: malformed, expired, revoked or
// refresh-typed tokens just leave it anonymous, and RequireUser decides
// whether that matters.
func Authenticate(secret string, users *store.UserStore, denylist auth.Denylist) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" || header == "Bearer" {
			return c.Next()
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		// Some clients send the literal string "undefined".
		if tokenStr == "" || tokenStr == "undefined" {
			return c.Next()
		}

		claims, err := auth.ParseToken(secret, tokenStr)
		if err != nil {
			log.Printf("auth: token rejected: %v", err)
			return c.Next()
		}
		if claims.Type == auth.TypeRefresh {
			log.Printf("auth: refresh token presented as access token")
			return c.Next()
		}
		if denylist.IsRevoked(c.Context(), tokenStr) {
			log.Printf("auth: revoked token presented")
			return c.Next()
		}

		user, err := users.GetByUsername(claims.Username)
		if err != nil {
			log.Printf("auth: no user for token subject: %v", err)
			return c.Next()
		}

		c.Locals(localUser, user)
		c.Locals(localToken, tokenStr)
		c.Locals(localClaims, claims)
		return c.Next()
	}
}

// RequireUser short-circuits with 401 unless Authenticate resolved an
// active user. Every guarded route layers this on top of Authenticate.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok || !user.IsActive {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Authentication required",
			})
		}
		return c.Next()
	}
}

func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(localUser).(*models.User)
	return user, ok && user != nil
}

// BearerToken returns the raw access token of the authenticated request.
func BearerToken(c *fiber.Ctx) (string, *auth.Claims, bool) {
	tokenStr, ok := c.Locals(localToken).(string)
	if !ok {
		return "", nil, false
	}
	claims, ok := c.Locals(localClaims).(*auth.Claims)
	return tokenStr, claims, ok
}
