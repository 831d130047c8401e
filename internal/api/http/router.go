package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/mkulimalink/internal/api/http/handlers"
	"github.com/spec-kit/mkulimalink/internal/auth"
	"github.com/spec-kit/mkulimalink/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Accounts       *handlers.AccountsHandler
	Admin          *handlers.AdminHandler
	Produce        *handlers.ProduceHandler
	Orders         *handlers.OrdersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. The /api paths mirror the public
// contract the frontend depends on.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Post("/register", cfg.Accounts.Register)
	api.Post("/login", cfg.Accounts.Login)

	admin := api.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	admin.Get("/pending-farmers", cfg.Admin.PendingFarmers)
	admin.Post("/approve-farmer", cfg.Admin.ApproveFarmer)
	admin.Get("/approved-users", cfg.Admin.ApprovedUsers)

	api.Post("/farmer/add-produce", cfg.Produce.AddProduce)
	api.Get("/produce", cfg.Produce.List)

	api.Post("/orders", cfg.Orders.Place)
	api.Get("/buyer/orders/:phone", cfg.Orders.BuyerOrders)
	api.Get("/farmer/orders/:phone", cfg.Orders.FarmerOrders)
	api.Put("/farmer/order-status", cfg.Orders.UpdateStatus)
}
