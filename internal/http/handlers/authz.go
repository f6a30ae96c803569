package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/domain"
	"storefront/internal/identity"
	applog "storefront/internal/log"
)

const tokenCookie = "token"

// RequireCustomer verifies the bearer token (or token cookie) and stores the
// caller's identity in locals; requests without one get 401.
func RequireCustomer(iss *identity.Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok, ok := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		if !ok || tok == "" {
			tok = c.Cookies(tokenCookie)
		}
		if tok == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
		}
		ident, err := iss.Verify(tok)
		if err != nil {
			applog.Security(c, "access.denied.token", map[string]any{"reason": err.Error()})
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}
		c.Locals(applog.IdentityKey, ident)
		return c.Next()
	}
}

// identityOf returns the identity RequireCustomer stored; the zero value is
// rejected by every service.
func identityOf(c *fiber.Ctx) domain.Identity {
	ident, _ := c.Locals(applog.IdentityKey).(domain.Identity)
	return ident
}
