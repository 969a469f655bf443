package sandbox

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/naayikhata/khata-go/pkg/jwt"
)

// Locals keys set by the auth middleware.
const (
	localUserID = "user_id"
	localShopID = "shop_id"
)

// cookieName is the httponly cookie the real backend sets alongside the
// token response; browser-style clients rely on it.
const cookieName = "access_token"

// authMiddleware accepts the token from the Authorization header or the
// session cookie and stashes user and shop ids in c.Locals.
func authMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			tokenString = c.Cookies(cookieName)
		}
		if tokenString == "" {
			return detail(c, fiber.StatusUnauthorized, "Not authenticated")
		}
		userID, shopID, err := jwt.Parse(secret, tokenString)
		if err != nil {
			return detail(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}
		c.Locals(localUserID, userID)
		c.Locals(localShopID, shopID)
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func currentUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(localUserID).(string)
	return s
}

func currentShopID(c *fiber.Ctx) string {
	s, _ := c.Locals(localShopID).(string)
	return s
}
