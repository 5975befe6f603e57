package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/micorpx/acquisitions/internal/api/http/handlers"
	"github.com/micorpx/acquisitions/internal/auth"
	"github.com/micorpx/acquisitions/internal/domain"
	apperrors "github.com/micorpx/acquisitions/pkg/util"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	AppName string
	Health  *handlers.HealthHandler
	Auth    *handlers.AuthHandler
	Users   *handlers.UsersHandler
	Gate    *auth.Gate
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Hello, from " + cfg.AppName + "!")
	})
	app.Get("/health", cfg.Health.Check)

	api := app.Group("/api")
	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": cfg.AppName + " is running!"})
	})

	authGroup := api.Group("/auth")
	authGroup.Post("/sign-up", cfg.Auth.SignUp)
	authGroup.Post("/sign-in", cfg.Auth.SignIn)
	authGroup.Post("/sign-out", cfg.Auth.SignOut)

	users := api.Group("/users", cfg.Gate.Required())
	users.Get("/", auth.RequireRole(domain.RoleAdmin), cfg.Users.List)
	users.Get("/:id", cfg.Users.Get)
	users.Put("/:id", cfg.Users.Update)
	users.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Users.Delete)

	app.Use(func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("Route not found")
	})
}
