package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/platform-admin/internal/api/dto"
	"github.com/spec-kit/platform-admin/internal/domain"
	"github.com/spec-kit/platform-admin/internal/repository"
	"github.com/spec-kit/platform-admin/internal/service"
)

// DevicesHandler exposes device endpoints for customers and admins.
type DevicesHandler struct {
	devices *service.DeviceService
}

// NewDevicesHandler constructs handler.
func NewDevicesHandler(devices *service.DeviceService) *DevicesHandler {
	return &DevicesHandler{devices: devices}
}

// Register handles POST /me/devices.
func (h *DevicesHandler) Register(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.RegisterDeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	device, err := h.devices.Register(c.Context(), p.User.ID, req.Name, req.Platform)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewDeviceResponse(device)})
}

// ListMine handles GET /me/devices.
func (h *DevicesHandler) ListMine(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	limit, offset := parsePagination(c)
	devices, err := h.devices.ListForOwner(c.Context(), p.User.ID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": deviceItems(devices)})
}

// Get handles GET /me/devices/:id.
func (h *DevicesHandler) Get(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	device, err := h.devices.Get(c.Context(), p.User.ID, isAdmin(p), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDeviceResponse(device)})
}

// Heartbeat handles POST /me/devices/:id/heartbeat.
func (h *DevicesHandler) Heartbeat(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	if err := h.devices.Heartbeat(c.Context(), p.User.ID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Rename handles PATCH /me/devices/:id.
func (h *DevicesHandler) Rename(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.RenameDeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	device, err := h.devices.Rename(c.Context(), p.User.ID, isAdmin(p), c.Params("id"), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDeviceResponse(device)})
}

// Remove handles DELETE /me/devices/:id.
func (h *DevicesHandler) Remove(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	if err := h.devices.Remove(c.Context(), p.User.ID, isAdmin(p), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// AdminList handles GET /admin/devices.
func (h *DevicesHandler) AdminList(c *fiber.Ctx) error {
	var filter repository.DeviceFilter
	if owner := c.Query("owner_id"); owner != "" {
		filter.OwnerID = &owner
	}
	if status := c.Query("status"); status != "" {
		filter.Statuses = append(filter.Statuses, domain.DeviceStatus(status))
	}
	if search := c.Query("search"); search != "" {
		filter.SearchTerm = &search
	}
	filter.Limit, filter.Offset = parsePagination(c)

	devices, err := h.devices.List(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": deviceItems(devices)})
}

func deviceItems(devices []domain.Device) []dto.DeviceResponse {
	items := make([]dto.DeviceResponse, 0, len(devices))
	for i := range devices {
		items = append(items, dto.NewDeviceResponse(&devices[i]))
	}
	return items
}
