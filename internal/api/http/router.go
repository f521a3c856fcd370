package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/supply-portal/internal/api/http/handlers"
	"github.com/spec-kit/supply-portal/internal/auth"
	"github.com/spec-kit/supply-portal/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Accounts       *handlers.AccountsHandler
	Suppliers      *handlers.SuppliersHandler
	Products       *handlers.ProductsHandler
	Applications   *handlers.ApplicationsHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Root)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Metrics.Registry(), promhttp.HandlerOpts{})))
	}

	app.Post("/admin/login", cfg.Auth.AdminLogin)
	app.Post("/admin/logout", cfg.Auth.Logout)
	app.Post("/login", cfg.Auth.UserLogin)
	app.Post("/logout", cfg.Auth.Logout)

	authenticated := cfg.AuthMiddleware.Handle
	app.Get("/me", authenticated, cfg.Auth.Me)

	admin := app.Group("/admin/users", authenticated, auth.RequireAdmin())
	admin.Get("/", cfg.Accounts.List)
	admin.Post("/", cfg.Accounts.Create)
	admin.Get("/:id", cfg.Accounts.Get)
	admin.Put("/:id", cfg.Accounts.Update)
	admin.Delete("/:id", cfg.Accounts.Delete)

	suppliers := app.Group("/suppliers", authenticated, auth.RequireAnyRole())
	suppliers.Get("/", cfg.Suppliers.List)
	suppliers.Post("/", cfg.Suppliers.Create)
	suppliers.Get("/:id", cfg.Suppliers.Get)
	suppliers.Put("/:id", cfg.Suppliers.Update)
	suppliers.Delete("/:id", cfg.Suppliers.Delete)

	products := app.Group("/products", authenticated, auth.RequireAnyRole())
	products.Get("/", cfg.Products.List)
	products.Post("/", cfg.Products.Create)
	products.Get("/:id", cfg.Products.Get)
	products.Put("/:id", cfg.Products.Update)
	products.Delete("/:id", cfg.Products.Delete)

	applications := app.Group("/applications", authenticated, auth.RequireAnyRole())
	applications.Get("/", cfg.Applications.List)
	applications.Post("/", auth.RequireUser(), cfg.Applications.Create)
	applications.Get("/:id", cfg.Applications.Get)
	applications.Get("/:id/history", cfg.Applications.History)
	applications.Put("/:id", cfg.Applications.Update)
	applications.Patch("/:id/status", auth.RequireAdmin(), cfg.Applications.UpdateStatus)
	applications.Delete("/:id", cfg.Applications.Delete)
}

// NewApp builds the fiber application with global middleware and routes.
func NewApp(mw MiddlewareConfig, routes RouteConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               mw.AppName,
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})
	RegisterMiddlewares(app, mw)
	RegisterRoutes(app, routes)
	return app
}
