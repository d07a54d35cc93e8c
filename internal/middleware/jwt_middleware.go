package middleware

import (
	"log/slog"
	"strings"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

const (
	// MemberCookie and AdminCookie carry the token issued by the member and admin logins.
	MemberCookie = "member_token"
	AdminCookie  = "admin_token"

	LocalUserID = "user_id"
	LocalRole   = "role"
)

// AuthRequired is a Fiber middleware to check for a valid JWT token. The token is read
// from the Authorization header, else from the first of cookieNames that is present.
func AuthRequired(authService *services.AuthService, cookieNames ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := tokenFromRequest(c, cookieNames)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication token is required",
			})
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			slog.Debug("JWT validation failed", "path", c.Path(), "error", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}
		actor, err := services.ActorFromClaims(claims)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}

		// Store the caller in Fiber context for subsequent handlers
		c.Locals(LocalUserID, actor.UserID)
		c.Locals(LocalRole, string(actor.Role))

		return c.Next()
	}
}

// tokenFromRequest returns ok=false only for a malformed Authorization header.
func tokenFromRequest(c *fiber.Ctx, cookieNames []string) (string, bool) {
	if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return "", false
		}
		return strings.TrimSpace(parts[1]), true
	}
	for _, name := range cookieNames {
		if v := c.Cookies(name); v != "" {
			return v, true
		}
	}
	return "", true
}

// RequireRoles rejects callers whose role is not listed. It must run after AuthRequired.
func RequireRoles(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := Actor(c).Role
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "You do not have access to this resource",
		})
	}
}

// Actor returns the caller stored by AuthRequired.
func Actor(c *fiber.Ctx) services.Actor {
	userID, _ := c.Locals(LocalUserID).(string)
	role, _ := c.Locals(LocalRole).(string)
	return services.Actor{UserID: userID, Role: models.Role(role)}
}

// Guards bundles the route guards handlers attach to their routes.
type Guards struct {
	// Auth accepts a member or admin token.
	Auth fiber.Handler
	// AdminAuth prefers the admin cookie over the member one.
	AdminAuth fiber.Handler
	Member    fiber.Handler
	Staff     fiber.Handler
}

func NewGuards(authService *services.AuthService) Guards {
	return Guards{
		Auth:      AuthRequired(authService, MemberCookie, AdminCookie),
		AdminAuth: AuthRequired(authService, AdminCookie, MemberCookie),
		Member:    RequireRoles(models.RoleMember),
		Staff:     RequireRoles(models.RoleAdmin, models.RoleSupervisor),
	}
}
