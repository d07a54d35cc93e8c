package handlers

import (
	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AccountHandler serves the caller's profile, saved addresses and saved payment methods.
type AccountHandler struct {
	users     *services.UserService
	addresses *services.AddressService
	payments  *services.PaymentMethodService
	validate  *validator.Validate
	guards    middleware.Guards
}

func NewAccountHandler(
	users *services.UserService,
	addresses *services.AddressService,
	payments *services.PaymentMethodService,
	validate *validator.Validate,
	guards middleware.Guards,
) *AccountHandler {
	return &AccountHandler{
		users:     users,
		addresses: addresses,
		payments:  payments,
		validate:  validate,
		guards:    guards,
	}
}

func (h *AccountHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/me", h.guards.Auth, h.HandleGetProfile)
	userRoutes.Put("/me", h.guards.Auth, h.HandleUpdateProfile)

	addressRoutes := router.Group("/addresses", h.guards.Auth, h.guards.Member)
	addressRoutes.Get("/", h.HandleListAddresses)
	addressRoutes.Post("/", h.HandleCreateAddress)
	addressRoutes.Get("/:id", h.HandleGetAddress)
	addressRoutes.Put("/:id", h.HandleUpdateAddress)
	addressRoutes.Delete("/:id", h.HandleDeleteAddress)
	addressRoutes.Patch("/:id/default", h.HandleSetDefaultAddress)

	paymentRoutes := router.Group("/payment-methods", h.guards.Auth, h.guards.Member)
	paymentRoutes.Get("/", h.HandleListPaymentMethods)
	paymentRoutes.Post("/", h.HandleCreatePaymentMethod)
	paymentRoutes.Get("/:id", h.HandleGetPaymentMethod)
	paymentRoutes.Put("/:id", h.HandleUpdatePaymentMethod)
	paymentRoutes.Delete("/:id", h.HandleDeletePaymentMethod)
}

func (h *AccountHandler) HandleGetProfile(c *fiber.Ctx) error {
	user, err := h.users.GetProfile(c.UserContext(), middleware.Actor(c).UserID)
	if err != nil {
		return respondError(c, err, "Could not retrieve profile")
	}
	return c.JSON(user)
}

func (h *AccountHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req services.UpdateProfileInput
	if err := bindBody(c, h.validate, &req); err != nil {
		return respondError(c, err, "Could not update profile")
	}
	user, err := h.users.UpdateProfile(c.UserContext(), middleware.Actor(c).UserID, req)
	if err != nil {
		return respondError(c, err, "Could not update profile")
	}
	return c.JSON(user)
}

// --- Addresses ---

func (h *AccountHandler) HandleListAddresses(c *fiber.Ctx) error {
	addresses, err := h.addresses.List(c.UserContext(), middleware.Actor(c).UserID)
	if err != nil {
		return respondError(c, err, "Could not retrieve addresses")
	}
	return c.JSON(fiber.Map{"data": addresses})
}

func (h *AccountHandler) HandleGetAddress(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err, "Could not retrieve address")
	}
	address, err := h.addresses.Get(c.UserContext(), middleware.Actor(c).UserID, id)
	if err != nil {
		return respondError(c, err, "Could not retrieve address")
	}
	return c.JSON(address)
}

func (h *AccountHandler) HandleCreateAddress(c *fiber.Ctx) error {
	var req services.AddressInput
	if err := bindBody(c, h.validate, &req); err != nil {
		return respondError(c, err, "Could not create address")
	}
	address, err := h.addresses.Create(c.UserContext(), middleware.Actor(c).UserID, req)
	if err != nil {
		return respondError(c, err, "Could not create address")
	}
	return c.Status(fiber.StatusCreated).JSON(address)
}

func (h *AccountHandler) HandleUpdateAddress(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err, "Could not update address")
	}
	var req services.AddressInput
	if err := bindBody(c, h.validate, &req); err != nil {
		return respondError(c, err, "Could not update address")
	}
	address, err := h.addresses.Update(c.UserContext(), middleware.Actor(c).UserID, id, req)
	if err != nil {
		return respondError(c, err, "Could not update address")
	}
	return c.JSON(address)
}

func (h *AccountHandler) HandleDeleteAddress(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err, "Could not delete address")
	}
	if err := h.addresses.Delete(c.UserContext(), middleware.Actor(c).UserID, id); err != nil {
		return respondError(c, err, "Could not delete address")
	}
	return c.JSON(fiber.Map{"message": "Address deleted"})
}

func (h *AccountHandler) HandleSetDefaultAddress(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err, "Could not set default address")
	}
	address, err := h.addresses.SetDefault(c.UserContext(), middleware.Actor(c).UserID, id)
	if err != nil {
		return respondError(c, err, "Could not set default address")
	}
	return c.JSON(address)
}

// --- Payment methods ---

func (h *AccountHandler) HandleListPaymentMethods(c *fiber.Ctx) error {
	methods, err := h.payments.List(c.UserContext(), middleware.Actor(c).UserID)
	if err != nil {
		return respondError(c, err, "Could not retrieve payment methods")
	}
	return c.JSON(fiber.Map{"data": methods})
}

func (h *AccountHandler) HandleGetPaymentMethod(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err, "Could not retrieve payment method")
	}
	method, err := h.payments.Get(c.UserContext(), middleware.Actor(c).UserID, id)
	if err != nil {
		return respondError(c, err, "Could not retrieve payment method")
	}
	return c.JSON(method)
}

func (h *AccountHandler) HandleCreatePaymentMethod(c *fiber.Ctx) error {
	var req services.PaymentMethodInput
	if err := bindBody(c, h.validate, &req); err != nil {
		return respondError(c, err, "Could not create payment method")
	}
	method, err := h.payments.Create(c.UserContext(), middleware.Actor(c).UserID, req)
	if err != nil {
		return respondError(c, err, "Could not create payment method")
	}
	return c.Status(fiber.StatusCreated).JSON(method)
}

func (h *AccountHandler) HandleUpdatePaymentMethod(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err, "Could not update payment method")
	}
	var req services.PaymentMethodInput
	if err := bindBody(c, h.validate, &req); err != nil {
		return respondError(c, err, "Could not update payment method")
	}
	method, err := h.payments.Update(c.UserContext(), middleware.Actor(c).UserID, id, req)
	if err != nil {
		return respondError(c, err, "Could not update payment method")
	}
	return c.JSON(method)
}

func (h *AccountHandler) HandleDeletePaymentMethod(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err, "Could not delete payment method")
	}
	if err := h.payments.Delete(c.UserContext(), middleware.Actor(c).UserID, id); err != nil {
		return respondError(c, err, "Could not delete payment method")
	}
	return c.JSON(fiber.Map{"message": "Payment method deleted"})
}
