package handlers

import (
	"storefront/internal/middleware"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler serves the public catalog and the admin product endpoints.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
	guards   middleware.Guards
}

func NewProductHandler(service *services.ProductService, validate *validator.Validate, guards middleware.Guards) *ProductHandler {
	return &ProductHandler{service: service, validate: validate, guards: guards}
}

func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Post("/", h.guards.AdminAuth, h.guards.Staff, h.HandleCreateProduct)
	productRoutes.Put("/:id", h.guards.AdminAuth, h.guards.Staff, h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.guards.AdminAuth, h.guards.Staff, h.HandleDeleteProduct)
}

// HandleListProducts lists active products, optionally searched or narrowed to a category.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	filter := repositories.ProductFilter{
		Pagination: paginationFrom(c),
		Search:     c.Query("search"),
	}
	if categoryID := c.QueryInt("category_id", 0); categoryID > 0 {
		id := uint(categoryID)
		filter.CategoryID = &id
	}

	products, total, err := h.service.ListProducts(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err, "Could not retrieve products")
	}
	return paginated(c, products, total, filter.Pagination)
}

func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err, "Could not retrieve product")
	}
	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Could not retrieve product")
	}
	return c.JSON(product)
}

func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req services.ProductInput
	if err := bindBody(c, h.validate, &req); err != nil {
		return respondError(c, err, "Could not create product")
	}
	product, err := h.service.CreateProduct(c.UserContext(), req)
	if err != nil {
		return respondError(c, err, "Could not create product")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err, "Could not update product")
	}
	var req services.ProductInput
	if err := bindBody(c, h.validate, &req); err != nil {
		return respondError(c, err, "Could not update product")
	}
	product, err := h.service.UpdateProduct(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err, "Could not update product")
	}
	return c.JSON(product)
}

// HandleDeleteProduct soft-deletes a product. Existing orders keep their snapshots.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err, "Could not delete product")
	}
	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return respondError(c, err, "Could not delete product")
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}
