package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

type addReq struct {
	ProductID string `json:"product_id" form:"product_id"`
}

// GET /cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	cv, err := h.Cart.ViewCart(c.UserContext(), identityOf(c))
	if err != nil {
		return fail(c, "cart.view", err)
	}
	return c.JSON(cv)
}

// POST /cart
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var req addReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body", "malformed request")
	}
	pid, ok := validate.ID(req.ProductID)
	if !ok {
		return badRequest(c, "product_id", "invalid product")
	}
	if err := h.Cart.AddProduct(c.UserContext(), identityOf(c), pid); err != nil {
		return fail(c, "cart.add", err)
	}
	applog.Info(c, "cart.add", map[string]any{"product_id": pid})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"product_id": pid})
}

// DELETE /cart/:productId
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("productId"))
	if !ok {
		return badRequest(c, "product_id", "invalid product")
	}
	if err := h.Cart.RemoveProduct(c.UserContext(), identityOf(c), pid); err != nil {
		return fail(c, "cart.remove", err)
	}
	applog.Info(c, "cart.remove", map[string]any{"product_id": pid})
	return c.SendStatus(fiber.StatusNoContent)
}
