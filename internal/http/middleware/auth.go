package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Credentials answers the single yes/no question the console needs:
// whether a presented token belongs to an admin. Session management lives
// outside this service.
type Credentials interface {
	Check(token string) bool
}

// StaticToken is a Credentials backed by one shared admin token.
type StaticToken string

func (s StaticToken) Check(token string) bool {
	if s == "" {
		// Refuse everything rather than run open when unconfigured.
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s), []byte(token)) == 1
}

// RequireAdmin guards mutating routes: the request must carry the admin
// token as a bearer credential.
func RequireAdmin(creds Credentials) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		if !creds.Check(token) {
			return fiber.ErrUnauthorized
		}
		return c.Next()
	}
}
