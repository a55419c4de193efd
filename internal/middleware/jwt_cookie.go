package middleware

import (
	"github.com/gofiber/fiber/v2"

	"lokaserve/internal/utils"
)

// CookieName holds the session token. HTTPOnly keeps it away from scripts.
const CookieName = "ls_token"

func JWTFromCookie(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Cookies(CookieName)
		if tokenStr == "" {
			return fiber.ErrUnauthorized
		}

		claims, err := utils.ParseJWT(secret, tokenStr)
		if err != nil {
			return fiber.ErrUnauthorized
		}

		c.Locals("claims", claims)
		return c.Next()
	}
}
