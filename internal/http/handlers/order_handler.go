package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/services"
)

type OrderHandler struct {
	Order *services.OrderService
}

type checkoutReq struct {
	DeliveryAddress string `json:"delivery_address" form:"delivery_address"`
	PaymentMethod   string `json:"payment_method" form:"payment_method"`
}

// POST /checkout
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	var req checkoutReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body", "malformed request")
	}
	oid, err := h.Order.Checkout(c.UserContext(), identityOf(c), req.DeliveryAddress, req.PaymentMethod)
	if err != nil {
		return fail(c, "order.place", err)
	}
	applog.Audit(c, "order.place", map[string]any{"order_id": oid})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"order_id": oid})
}

// GET /orders
func (h *OrderHandler) History(c *fiber.Ctx) error {
	orders, err := h.Order.ListOrders(c.UserContext(), identityOf(c))
	if err != nil {
		return fail(c, "orders.history", err)
	}
	return c.JSON(fiber.Map{"orders": orders})
}
