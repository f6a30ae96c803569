package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	applog "storefront/internal/log"
)

// NewApp builds the fiber app with the middleware stack and every route.
func NewApp(d *Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    1 << 20, // 1 MiB
		ErrorHandler: ErrorHandler,
	})

	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        d.RateLimit,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/healthz"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}))

	Routes(app, d)
	return app
}

func Routes(app *fiber.App, d *Deps) {
	// Auth (login throttled)
	app.Post("/signup", d.AuthHandler.Signup)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        d.LoginLimit,
		Expiration: 10 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|login"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many attempts. Please try again later."})
		},
	}), d.AuthHandler.Login)
	app.Post("/logout", d.AuthHandler.Logout)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := d.DB.PingContext(ctx); err != nil {
			applog.Error(c, "healthz", err, nil)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"ok": false})
		}
		return c.JSON(fiber.Map{"ok": true})
	})

	// Everything below needs a logged-in customer.
	auth := RequireCustomer(d.Issuer)

	app.Get("/me", auth, d.AuthHandler.Me)

	app.Get("/products", auth, d.CatalogHandler.Products)
	app.Get("/products/:id", auth, d.CatalogHandler.Product)
	app.Get("/categories", auth, d.CatalogHandler.Categories)

	app.Get("/cart", auth, d.CartHandler.View)
	app.Post("/cart", auth, d.CartHandler.Add)
	app.Delete("/cart/:productId", auth, d.CartHandler.Remove)

	app.Post("/checkout", auth, d.OrderHandler.Checkout)
	app.Get("/orders", auth, d.OrderHandler.History)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Page not found"})
	})
}
