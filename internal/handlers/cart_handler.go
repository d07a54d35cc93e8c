package handlers

import (
	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler serves the caller's own cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
	guards   middleware.Guards
}

func NewCartHandler(service *services.CartService, validate *validator.Validate, guards middleware.Guards) *CartHandler {
	return &CartHandler{service: service, validate: validate, guards: guards}
}

func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart", h.guards.Auth, h.guards.Member)
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Get("/count", h.HandleCount)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:id", h.HandleUpdateItem)
	cartRoutes.Delete("/items/:id", h.HandleRemoveItem)
}

func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.service.GetCart(c.UserContext(), middleware.Actor(c).UserID)
	if err != nil {
		return respondError(c, err, "Could not retrieve cart")
	}
	return c.JSON(cart)
}

// HandleCount returns the total quantity across cart lines.
func (h *CartHandler) HandleCount(c *fiber.Ctx) error {
	count, err := h.service.Count(c.UserContext(), middleware.Actor(c).UserID)
	if err != nil {
		return respondError(c, err, "Could not count cart items")
	}
	return c.JSON(fiber.Map{"count": count})
}

func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req services.AddCartItemInput
	if err := bindBody(c, h.validate, &req); err != nil {
		return respondError(c, err, "Could not add item to cart")
	}
	cart, err := h.service.AddItem(c.UserContext(), middleware.Actor(c).UserID, req)
	if err != nil {
		return respondError(c, err, "Could not add item to cart")
	}
	return c.Status(fiber.StatusCreated).JSON(cart)
}

func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err, "Could not update cart item")
	}
	var req services.UpdateCartItemInput
	if err := bindBody(c, h.validate, &req); err != nil {
		return respondError(c, err, "Could not update cart item")
	}
	cart, err := h.service.UpdateItem(c.UserContext(), middleware.Actor(c).UserID, id, req)
	if err != nil {
		return respondError(c, err, "Could not update cart item")
	}
	return c.JSON(cart)
}

func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err, "Could not remove cart item")
	}
	cart, err := h.service.RemoveItem(c.UserContext(), middleware.Actor(c).UserID, id)
	if err != nil {
		return respondError(c, err, "Could not remove cart item")
	}
	return c.JSON(cart)
}
