package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/identity"
	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type AuthHandler struct {
	Auth   *services.AuthService
	Issuer *identity.Issuer
}

type signupReq struct {
	Email     string `json:"email" form:"email"`
	Name      string `json:"customer_name" form:"customer_name"`
	Contact   string `json:"contactno" form:"contactno"`
	Address   string `json:"customer_address" form:"customer_address"`
	Password  string `json:"password1" form:"password1"`
	Password2 string `json:"password2" form:"password2"`
}

type loginReq struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// POST /signup
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req signupReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body", "malformed request")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return badRequest(c, "customer_name", "name must be at most 100 characters")
	}
	contact, ok := validate.Contact(req.Contact)
	if !ok {
		return badRequest(c, "contactno", "invalid contact number")
	}

	id, err := h.Auth.Register(c.UserContext(), services.Registration{
		Email:    req.Email,
		Name:     name,
		Contact:  contact,
		Address:  req.Address,
		Password: req.Password,
		Confirm:  req.Password2,
	})
	if err != nil {
		return fail(c, "auth.signup", err)
	}
	applog.Audit(c, "auth.signup", map[string]any{"customer_id": id})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"customer_id": id})
}

// POST /login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body", "malformed request")
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email, "reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Incorrect email or password"})
	}

	id, ok, err := h.Auth.Authenticate(c.UserContext(), email, req.Password)
	if err != nil {
		return fail(c, "auth.login", err)
	}
	if !ok {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Incorrect email or password"})
	}

	tok, err := h.Issuer.Issue(id)
	if err != nil {
		return fail(c, "auth.login", err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     tokenCookie,
		Value:    tok,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false, // set true behind HTTPS
		Expires:  time.Now().Add(h.Issuer.TTL),
	})
	applog.Audit(c, "auth.login.success", map[string]any{"email": email, "customer_id": id})
	return c.JSON(fiber.Map{"token": tok, "customer_id": id})
}

// POST /logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     tokenCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", nil)
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	cust, err := h.Auth.Customer(c.UserContext(), identityOf(c))
	if err != nil {
		return fail(c, "auth.me", err)
	}
	return c.JSON(cust)
}
