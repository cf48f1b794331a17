package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/platform-admin/internal/service"
)

// DashboardHandler serves the admin dashboard widgets.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Summary handles GET /admin/dashboard. It aggregates every widget so the
// panel renders with a single request; failed widgets come back degraded
// rather than failing the whole page.
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	ctx := c.Context()
	return c.JSON(fiber.Map{"data": fiber.Map{
		"user_signups":    h.dashboard.UserSignupsWeekly(ctx),
		"job_breakdown":   h.dashboard.JobStatusBreakdown(ctx),
		"monthly_revenue": h.dashboard.MonthlyRevenue(ctx),
		"api_traffic":     h.dashboard.APITraffic(ctx),
		"user_states":     h.dashboard.UserStateOverview(ctx),
		"devices":         h.dashboard.DeviceOverview(ctx),
		"api_latency":     h.dashboard.APILatency(ctx),
	}})
}

// UserSignups handles GET /admin/dashboard/user-signups.
func (h *DashboardHandler) UserSignups(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.dashboard.UserSignupsWeekly(c.Context())})
}

// JobBreakdown handles GET /admin/dashboard/job-breakdown.
func (h *DashboardHandler) JobBreakdown(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.dashboard.JobStatusBreakdown(c.Context())})
}

// MonthlyRevenue handles GET /admin/dashboard/monthly-revenue.
func (h *DashboardHandler) MonthlyRevenue(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.dashboard.MonthlyRevenue(c.Context())})
}

// APITraffic handles GET /admin/dashboard/api-traffic.
func (h *DashboardHandler) APITraffic(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.dashboard.APITraffic(c.Context())})
}

// UserStates handles GET /admin/dashboard/user-states.
func (h *DashboardHandler) UserStates(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.dashboard.UserStateOverview(c.Context())})
}

// Devices handles GET /admin/dashboard/devices.
func (h *DashboardHandler) Devices(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.dashboard.DeviceOverview(c.Context())})
}
