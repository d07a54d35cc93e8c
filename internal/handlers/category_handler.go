package handlers

import (
	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type reorderCategoriesRequest struct {
	Categories []services.CategoryOrderInput `json:"categories" validate:"required,min=1,dive"`
}

type CategoryHandler struct {
	service  *services.CategoryService
	validate *validator.Validate
	guards   middleware.Guards
}

func NewCategoryHandler(service *services.CategoryService, validate *validator.Validate, guards middleware.Guards) *CategoryHandler {
	return &CategoryHandler{service: service, validate: validate, guards: guards}
}

func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleListActive)
	categoryRoutes.Get("/admin", h.guards.AdminAuth, h.guards.Staff, h.HandleListAll)
	categoryRoutes.Patch("/order", h.guards.AdminAuth, h.guards.Staff, h.HandleReorder)
	categoryRoutes.Get("/:id", h.HandleGet)
	categoryRoutes.Post("/", h.guards.AdminAuth, h.guards.Staff, h.HandleCreate)
	categoryRoutes.Put("/:id", h.guards.AdminAuth, h.guards.Staff, h.HandleUpdate)
	categoryRoutes.Delete("/:id", h.guards.AdminAuth, h.guards.Staff, h.HandleDelete)
}

func (h *CategoryHandler) HandleListActive(c *fiber.Ctx) error {
	categories, err := h.service.ListActive(c.UserContext())
	if err != nil {
		return respondError(c, err, "Could not retrieve categories")
	}
	return c.JSON(fiber.Map{"data": categories})
}

func (h *CategoryHandler) HandleListAll(c *fiber.Ctx) error {
	page := paginationFrom(c)
	categories, total, err := h.service.List(c.UserContext(), page)
	if err != nil {
		return respondError(c, err, "Could not retrieve categories")
	}
	return paginated(c, categories, total, page)
}

func (h *CategoryHandler) HandleGet(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err, "Could not retrieve category")
	}
	category, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Could not retrieve category")
	}
	return c.JSON(category)
}

func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	var req services.CategoryInput
	if err := bindBody(c, h.validate, &req); err != nil {
		return respondError(c, err, "Could not create category")
	}
	category, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, err, "Could not create category")
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *CategoryHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err, "Could not update category")
	}
	var req services.CategoryInput
	if err := bindBody(c, h.validate, &req); err != nil {
		return respondError(c, err, "Could not update category")
	}
	category, err := h.service.Update(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err, "Could not update category")
	}
	return c.JSON(category)
}

func (h *CategoryHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err, "Could not delete category")
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err, "Could not delete category")
	}
	return c.JSON(fiber.Map{"message": "Category deleted"})
}

// HandleReorder applies a bulk sort order; all positions are written or none.
func (h *CategoryHandler) HandleReorder(c *fiber.Ctx) error {
	var req reorderCategoriesRequest
	if err := bindBody(c, h.validate, &req); err != nil {
		return respondError(c, err, "Could not reorder categories")
	}
	if err := h.service.Reorder(c.UserContext(), req.Categories); err != nil {
		return respondError(c, err, "Could not reorder categories")
	}
	return c.JSON(fiber.Map{"message": "Categories reordered"})
}
