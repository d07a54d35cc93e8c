package handlers

import (
	"log/slog"
	"time"

	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService  *services.AuthService
	validate     *validator.Validate
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, validate *validator.Validate, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		validate:     validate,
		cookieSecure: cookieSecure,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/login_admin", h.HandleAdminLogin)
	authRoutes.Post("/logout", h.HandleLogout)
}

// HandleRegister handles new member registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req services.RegisterInput
	if err := bindBody(c, h.validate, &req); err != nil {
		return respondError(c, err, "Registration failed")
	}

	user, err := h.authService.RegisterUser(c.UserContext(), req)
	if err != nil {
		return respondError(c, err, "Registration failed")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

// HandleLogin handles member login and issues the member cookie.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	return h.login(c, services.RealmMember, middleware.MemberCookie)
}

// HandleAdminLogin handles admin and supervisor login and issues the admin cookie.
func (h *AuthHandler) HandleAdminLogin(c *fiber.Ctx) error {
	return h.login(c, services.RealmAdmin, middleware.AdminCookie)
}

func (h *AuthHandler) login(c *fiber.Ctx, realm services.Realm, cookieName string) error {
	var req loginRequest
	if err := bindBody(c, h.validate, &req); err != nil {
		return respondError(c, err, "Login failed")
	}

	token, user, err := h.authService.LoginUser(c.UserContext(), req.Email, req.Password, realm)
	if err != nil {
		return respondError(c, err, "Login failed")
	}

	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.authService.TokenTTL()),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	slog.Info("user logged in", "user_id", user.ID, "role", user.Role)

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// HandleLogout clears both session cookies. Tokens are stateless, so nothing is revoked.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	for _, name := range []string{middleware.MemberCookie, middleware.AdminCookie} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			HTTPOnly: true,
			Secure:   h.cookieSecure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}
