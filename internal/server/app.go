package server

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"storefront/internal/cache"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Dependencies is everything the HTTP application is assembled from.
type Dependencies struct {
	DB           *gorm.DB
	JWTSecret    string
	TokenTTL     time.Duration
	CookieSecure bool
	CORSOrigins  string

	// ProductCache may be nil.
	ProductCache cache.Cache
	CacheTTL     time.Duration
	// Publisher may be nil.
	Publisher    services.EventPublisher
	OrderOptions []services.OrderServiceOption

	// AccessLog receives one line per request; nil means stdout.
	AccessLog    io.Writer
	HealthChecks map[string]HealthCheck
}

// New wires repositories, services and handlers into a Fiber app.
func New(deps Dependencies) *fiber.App {
	userRepo := repositories.NewGORMUserRepository(deps.DB)
	productRepo := repositories.NewGORMProductRepository(deps.DB)
	categoryRepo := repositories.NewGORMCategoryRepository(deps.DB)
	cartRepo := repositories.NewGORMCartRepository(deps.DB)
	orderRepo := repositories.NewGORMOrderRepository(deps.DB)
	addressRepo := repositories.NewGORMAddressRepository(deps.DB)
	paymentRepo := repositories.NewGORMPaymentMethodRepository(deps.DB)

	authService := services.NewAuthService(userRepo, deps.JWTSecret, deps.TokenTTL)
	userService := services.NewUserService(userRepo)
	productService := services.NewProductService(productRepo, categoryRepo, deps.ProductCache, deps.CacheTTL)
	categoryService := services.NewCategoryService(categoryRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(repositories.NewGORMUnitOfWork(deps.DB), orderRepo, deps.Publisher, deps.OrderOptions...)
	addressService := services.NewAddressService(addressRepo)
	paymentService := services.NewPaymentMethodService(paymentRepo)

	validate := handlers.NewValidator()
	guards := middleware.NewGuards(authService)

	app := fiber.New(fiber.Config{
		AppName:      "storefront",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	accessLog := deps.AccessLog
	if accessLog == nil {
		accessLog = os.Stdout
	}
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${method} ${path} ${latency}\n",
		Output: accessLog,
	}))
	app.Use(cors.New(corsConfig(deps.CORSOrigins)))

	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(authService, validate, deps.CookieSecure).RegisterRoutes(apiV1)
	handlers.NewAccountHandler(userService, addressService, paymentService, validate, guards).RegisterRoutes(apiV1)
	handlers.NewUserHandler(userService, validate, guards).RegisterRoutes(apiV1)
	handlers.NewProductHandler(productService, validate, guards).RegisterRoutes(apiV1)
	handlers.NewCategoryHandler(categoryService, validate, guards).RegisterRoutes(apiV1)
	handlers.NewCartHandler(cartService, validate, guards).RegisterRoutes(apiV1)
	handlers.NewOrderHandler(orderService, validate, guards).RegisterRoutes(apiV1)

	app.Get("/health", healthHandler(deps))

	return app
}

func corsConfig(origins string) cors.Config {
	origins = strings.TrimSpace(origins)
	if origins == "" || origins == "*" {
		return cors.Config{AllowOrigins: "*"}
	}
	// Cookies only cross origins that are listed explicitly.
	return cors.Config{
		AllowOrigins:     origins,
		AllowCredentials: true,
	}
}

func healthHandler(deps Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		checks := fiber.Map{}
		healthy := true
		if sqlDB, err := deps.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			checks["database"] = "down"
			healthy = false
		} else {
			checks["database"] = "up"
		}
		for name, check := range deps.HealthChecks {
			if err := check(ctx); err != nil {
				checks[name] = "down"
				healthy = false
				continue
			}
			checks[name] = "up"
		}

		status, code := "healthy", fiber.StatusOK
		if !healthy {
			status, code = "unhealthy", fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{
			"status": status,
			"time":   time.Now().UTC().Format(time.RFC3339),
			"checks": checks,
		})
	}
}

// errorHandler renders errors that escape handlers, such as unknown routes, in the API's
// JSON shape.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}
	return c.Status(code).JSON(fiber.Map{"message": message})
}
