package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/services"
	"storefront/internal/validate"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

// GET /products?category=
func (h *CatalogHandler) Products(c *fiber.Ctx) error {
	category, ok := validate.Category(c.Query("category"))
	if !ok {
		return badRequest(c, "category", "invalid category")
	}
	products, err := h.Catalog.ListProducts(c.UserContext(), identityOf(c), category)
	if err != nil {
		return fail(c, "catalog.products", err)
	}
	return c.JSON(fiber.Map{"category": category, "products": products, "count": len(products)})
}

// GET /products/:id
func (h *CatalogHandler) Product(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "product_id", "invalid product")
	}
	p, err := h.Catalog.Product(c.UserContext(), identityOf(c), id)
	if err != nil {
		return fail(c, "catalog.product", err)
	}
	return c.JSON(p)
}

// GET /categories
func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories(c.UserContext(), identityOf(c))
	if err != nil {
		return fail(c, "catalog.categories", err)
	}
	return c.JSON(fiber.Map{"categories": cats})
}
