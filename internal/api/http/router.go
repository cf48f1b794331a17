package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/platform-admin/internal/api/http/handlers"
	"github.com/spec-kit/platform-admin/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Devices        *handlers.DevicesHandler
	Jobs           *handlers.JobsHandler
	Flows          *handlers.FlowsHandler
	Billing        *handlers.BillingHandler
	Notifications  *handlers.NotificationsHandler
	Settings       *handlers.SettingsHandler
	APILogs        *handlers.APILogsHandler
	Dashboard      *handlers.DashboardHandler
	System         *handlers.SystemHandler
	Schedule       *handlers.ScheduleHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/admin/login", cfg.Auth.AdminLogin)

	// Customer surface.
	me := app.Group("/me", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	me.Get("", cfg.Auth.Me)
	me.Post("/devices", cfg.Devices.Register)
	me.Get("/devices", cfg.Devices.ListMine)
	me.Get("/devices/:id", cfg.Devices.Get)
	me.Patch("/devices/:id", cfg.Devices.Rename)
	me.Delete("/devices/:id", cfg.Devices.Remove)
	me.Post("/devices/:id/heartbeat", cfg.Devices.Heartbeat)

	me.Post("/jobs", cfg.Jobs.Create)
	me.Get("/jobs", cfg.Jobs.ListMine)
	me.Get("/jobs/:id", cfg.Jobs.Get)
	me.Post("/jobs/:id/cancel", cfg.Jobs.Cancel)
	me.Post("/jobs/:id/complete", cfg.Jobs.Complete)
	me.Post("/jobs/:id/fail", cfg.Jobs.Fail)

	me.Post("/flows", cfg.Flows.Create)
	me.Get("/flows", cfg.Flows.ListMine)
	me.Get("/flows/:id", cfg.Flows.Get)
	me.Put("/flows/:id", cfg.Flows.Update)
	me.Put("/flows/:id/graph", cfg.Flows.ReplaceGraph)
	me.Delete("/flows/:id", cfg.Flows.Delete)

	me.Post("/purchases", cfg.Billing.Purchase)
	me.Get("/transactions", cfg.Billing.ListMyTransactions)
	me.Get("/notifications", cfg.Notifications.ListMine)
	me.Post("/notifications/:id/read", cfg.Notifications.MarkRead)

	app.Get("/packages", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Billing.ListPackages)

	// Admin surface.
	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/users", cfg.Users.List)
	admin.Get("/users/:id", cfg.Users.Get)
	admin.Post("/users/:id/state", cfg.Users.ChangeState)
	admin.Post("/users/:id/activate", cfg.Users.Activate)
	admin.Post("/users/:id/suspend", cfg.Users.Suspend)
	admin.Post("/users/:id/reinstate", cfg.Users.Reinstate)
	admin.Post("/users/:id/archive", cfg.Users.Archive)

	admin.Get("/devices", cfg.Devices.AdminList)
	admin.Get("/jobs", cfg.Jobs.AdminList)
	admin.Get("/flows", cfg.Flows.AdminList)

	admin.Post("/packages", cfg.Billing.CreatePackage)
	admin.Put("/packages/:id", cfg.Billing.UpdatePackage)
	admin.Delete("/packages/:id", cfg.Billing.DeletePackage)
	admin.Get("/transactions", cfg.Billing.AdminListTransactions)
	admin.Post("/transactions/:id/paid", cfg.Billing.MarkPaid)

	admin.Get("/settings", cfg.Settings.ListGroup)
	admin.Get("/settings/:key", cfg.Settings.Get)
	admin.Put("/settings/:key", cfg.Settings.Upsert)
	admin.Get("/api-logs", cfg.APILogs.List)

	admin.Get("/dashboard", cfg.Dashboard.Summary)
	admin.Get("/dashboard/user-signups", cfg.Dashboard.UserSignups)
	admin.Get("/dashboard/job-breakdown", cfg.Dashboard.JobBreakdown)
	admin.Get("/dashboard/monthly-revenue", cfg.Dashboard.MonthlyRevenue)
	admin.Get("/dashboard/api-traffic", cfg.Dashboard.APITraffic)
	admin.Get("/dashboard/user-states", cfg.Dashboard.UserStates)
	admin.Get("/dashboard/devices", cfg.Dashboard.Devices)

	admin.Get("/system/stats", cfg.System.Stats)
	admin.Get("/system/metrics", cfg.System.Metrics)

	admin.Get("/schedule", cfg.Schedule.List)
	admin.Get("/schedule/cleanup-log", cfg.Schedule.CleanupLog)
	admin.Post("/schedule/:name/run", cfg.Schedule.Run)
}
