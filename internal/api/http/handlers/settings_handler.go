package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/platform-admin/internal/api/dto"
	"github.com/spec-kit/platform-admin/internal/service"
)

// SettingsHandler exposes the admin settings endpoints.
type SettingsHandler struct {
	settings *service.SettingsService
}

// NewSettingsHandler constructs handler.
func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get handles GET /admin/settings/:key.
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	setting, err := h.settings.Get(c.Context(), c.Params("key"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSettingResponse(setting)})
}

// Upsert handles PUT /admin/settings/:key.
func (h *SettingsHandler) Upsert(c *fiber.Ctx) error {
	var req dto.UpsertSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	setting, err := h.settings.Upsert(c.Context(), c.Params("key"), req.Group, req.Value)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSettingResponse(setting)})
}

// ListGroup handles GET /admin/settings?group=<name>.
func (h *SettingsHandler) ListGroup(c *fiber.Ctx) error {
	group := c.Query("group")
	if group == "" {
		return fiber.NewError(http.StatusBadRequest, "group query parameter required")
	}
	settings, err := h.settings.ListByGroup(c.Context(), group)
	if err != nil {
		return err
	}
	items := make([]dto.SettingResponse, 0, len(settings))
	for i := range settings {
		items = append(items, dto.NewSettingResponse(&settings[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
