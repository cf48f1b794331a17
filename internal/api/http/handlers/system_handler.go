package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/platform-admin/internal/observability"
	"github.com/spec-kit/platform-admin/internal/sysinfo"
)

// SystemHandler serves host resource stats and process metrics for the
// admin panel.
type SystemHandler struct {
	collector *sysinfo.Collector
	metrics   *observability.Metrics
}

// NewSystemHandler constructs handler.
func NewSystemHandler(collector *sysinfo.Collector, metrics *observability.Metrics) *SystemHandler {
	return &SystemHandler{collector: collector, metrics: metrics}
}

// Stats handles GET /admin/system/stats. Probe failures surface as
// placeholder values, never as request errors.
func (h *SystemHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.collector.CollectAll(c.Context())})
}

// Metrics handles GET /admin/system/metrics.
func (h *SystemHandler) Metrics(c *fiber.Ctx) error {
	requests, errors := h.metrics.Snapshot()
	return c.JSON(fiber.Map{"data": fiber.Map{
		"requests": requests,
		"errors":   errors,
	}})
}
