package handlers

import (
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
	guards   middleware.Guards
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, validate *validator.Validate, guards middleware.Guards) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validate,
		guards:   guards,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	// /admin must be registered before /:id
	orderRoutes.Get("/admin", h.guards.AdminAuth, h.guards.Staff, h.HandleListAllOrders)
	orderRoutes.Post("/", h.guards.Auth, h.guards.Member, h.HandleCreateOrder)
	orderRoutes.Get("/", h.guards.Auth, h.guards.Member, h.HandleGetOrders)
	orderRoutes.Get("/:id", h.guards.Auth, h.HandleGetOrderByID)
	orderRoutes.Patch("/:id/cancel", h.guards.Auth, h.HandleCancelOrder)
	orderRoutes.Patch("/:id", h.guards.AdminAuth, h.guards.Staff, h.HandleUpdateOrder)
}

// HandleCreateOrder places an order for the caller from the requested lines.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req services.CreateOrderInput
	if err := bindBody(c, h.validate, &req); err != nil {
		return respondError(c, err, "Could not create order")
	}

	actor := middleware.Actor(c)
	order, err := h.service.CreateOrder(c.UserContext(), actor.UserID, req)
	if err != nil {
		return respondError(c, err, "Could not create order")
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetOrders lists the caller's orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	page := paginationFrom(c)
	orders, total, err := h.service.ListUserOrders(c.UserContext(), middleware.Actor(c).UserID, page)
	if err != nil {
		return respondError(c, err, "Could not retrieve orders")
	}
	return paginated(c, orders, total, page)
}

// HandleListAllOrders is the admin listing with optional search and status filter.
func (h *OrderHandler) HandleListAllOrders(c *fiber.Ctx) error {
	filter := repositories.OrderFilter{
		Pagination: paginationFrom(c),
		Search:     c.Query("search"),
		Status:     models.OrderStatus(c.Query("status")),
	}
	orders, total, err := h.service.ListAllOrders(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err, "Could not retrieve orders")
	}
	return paginated(c, orders, total, filter.Pagination)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err, "Could not retrieve order")
	}
	order, err := h.service.GetOrder(c.UserContext(), id, middleware.Actor(c))
	if err != nil {
		return respondError(c, err, "Could not retrieve order")
	}
	return c.JSON(order)
}

// HandleCancelOrder cancels an order for its owner or an admin.
func (h *OrderHandler) HandleCancelOrder(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err, "Could not cancel order")
	}
	order, err := h.service.CancelOrder(c.UserContext(), id, middleware.Actor(c))
	if err != nil {
		return respondError(c, err, "Could not cancel order")
	}
	return c.JSON(fiber.Map{
		"message": "Order cancelled",
		"order":   order,
	})
}

// HandleUpdateOrder updates the status and tracking number of an existing order.
func (h *OrderHandler) HandleUpdateOrder(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err, "Could not update order")
	}
	var req services.UpdateOrderInput
	if err := bindBody(c, h.validate, &req); err != nil {
		return respondError(c, err, "Could not update order")
	}

	order, err := h.service.UpdateOrder(c.UserContext(), id, req, middleware.Actor(c))
	if err != nil {
		return respondError(c, err, "Could not update order")
	}
	return c.JSON(fiber.Map{
		"message": "Order updated",
		"order":   order,
	})
}
