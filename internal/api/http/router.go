package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dealerhub/dealership-service/internal/api/http/handlers"
	"github.com/dealerhub/dealership-service/internal/auth"
	"github.com/dealerhub/dealership-service/internal/media"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Vehicles       *handlers.VehiclesHandler
	AuthMiddleware *auth.AuthMiddleware
	Upload         *media.UploadMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/api/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	vehicles := app.Group("/api/vehicles")
	vehicles.Get("/", cfg.Vehicles.List)
	vehicles.Get("/:id", cfg.Vehicles.Get)

	protected := vehicles.Group("", cfg.AuthMiddleware.Handle)
	protected.Post("/", cfg.Upload.Handle, cfg.Upload.RequireImages, cfg.Vehicles.Create)
	protected.Put("/:id", cfg.Upload.Handle, cfg.Vehicles.Update)
	protected.Delete("/:id", cfg.Vehicles.Delete)
	protected.Delete("/:id/images/:imageIndex", cfg.Vehicles.DeleteImage)
}
