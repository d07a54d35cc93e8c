package handlers

import (
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler is the staff-only account management surface.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
	guards   middleware.Guards
}

func NewUserHandler(service *services.UserService, validate *validator.Validate, guards middleware.Guards) *UserHandler {
	return &UserHandler{service: service, validate: validate, guards: guards}
}

// RegisterRoutes must run after AccountHandler so /users/me wins over /users/:id.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	auth, staff := h.guards.AdminAuth, h.guards.Staff

	userRoutes := router.Group("/users")
	userRoutes.Get("/", auth, staff, h.HandleListUsers)
	userRoutes.Get("/admins", auth, staff, h.listRoles(models.RoleAdmin, models.RoleSupervisor))
	userRoutes.Get("/members", auth, staff, h.listRoles(models.RoleMember))
	userRoutes.Get("/:id", auth, staff, h.HandleGetUser)
	userRoutes.Post("/", auth, staff, h.HandleCreateUser)
	userRoutes.Put("/:id", auth, staff, h.HandleUpdateUser)
	userRoutes.Post("/:id/update", auth, staff, h.HandleUpdateUser)
	userRoutes.Delete("/:id", auth, staff, h.HandleDeleteUser)
}

// HandleListUsers pages through accounts, optionally narrowed by ?role= and ?search=.
func (h *UserHandler) HandleListUsers(c *fiber.Ctx) error {
	filter := repositories.UserFilter{
		Pagination: paginationFrom(c),
		Search:     c.Query("search"),
	}
	if role := c.Query("role"); role != "" {
		filter.Roles = []models.Role{models.Role(role)}
	}
	return h.list(c, filter)
}

func (h *UserHandler) listRoles(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return h.list(c, repositories.UserFilter{
			Pagination: paginationFrom(c),
			Search:     c.Query("search"),
			Roles:      roles,
		})
	}
}

func (h *UserHandler) list(c *fiber.Ctx, filter repositories.UserFilter) error {
	users, total, err := h.service.ListUsers(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err, "Could not retrieve users")
	}
	return paginated(c, users, total, filter.Pagination)
}

func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	user, err := h.service.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "Could not retrieve user")
	}
	return c.JSON(user)
}

func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var req services.CreateUserInput
	if err := bindBody(c, h.validate, &req); err != nil {
		return respondError(c, err, "Could not create user")
	}
	user, err := h.service.CreateUser(c.UserContext(), req, middleware.Actor(c))
	if err != nil {
		return respondError(c, err, "Could not create user")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User created successfully", "user": user})
}

func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	var req services.UpdateUserInput
	if err := bindBody(c, h.validate, &req); err != nil {
		return respondError(c, err, "Could not update user")
	}
	user, err := h.service.UpdateUser(c.UserContext(), c.Params("id"), req, middleware.Actor(c))
	if err != nil {
		return respondError(c, err, "Could not update user")
	}
	return c.JSON(fiber.Map{"message": "User updated successfully", "user": user})
}

func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	if err := h.service.DeleteUser(c.UserContext(), c.Params("id"), middleware.Actor(c)); err != nil {
		return respondError(c, err, "Could not delete user")
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
