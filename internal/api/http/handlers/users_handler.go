package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/platform-admin/internal/api/dto"
	"github.com/spec-kit/platform-admin/internal/domain"
	"github.com/spec-kit/platform-admin/internal/repository"
	"github.com/spec-kit/platform-admin/internal/service"
)

// UsersHandler exposes the admin account-management endpoints.
type UsersHandler struct {
	accounts *service.AccountService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(accounts *service.AccountService) *UsersHandler {
	return &UsersHandler{accounts: accounts}
}

// List handles GET /admin/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	filter := parseUserFilter(c)
	users, err := h.accounts.ListUsers(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get handles GET /admin/users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.accounts.GetUser(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// ChangeState handles POST /admin/users/:id/state.
func (h *UsersHandler) ChangeState(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.ChangeStateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, err := h.accounts.ChangeState(c.Context(), p.User.ID, c.Params("id"), req.State)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Activate handles POST /admin/users/:id/activate.
func (h *UsersHandler) Activate(c *fiber.Ctx) error {
	return h.shortcut(c, h.accounts.Activate)
}

// Reinstate handles POST /admin/users/:id/reinstate.
func (h *UsersHandler) Reinstate(c *fiber.Ctx) error {
	return h.shortcut(c, h.accounts.Reinstate)
}

// Suspend handles POST /admin/users/:id/suspend.
func (h *UsersHandler) Suspend(c *fiber.Ctx) error {
	return h.shortcut(c, h.accounts.Suspend)
}

// Archive handles POST /admin/users/:id/archive.
func (h *UsersHandler) Archive(c *fiber.Ctx) error {
	return h.shortcut(c, h.accounts.Archive)
}

func (h *UsersHandler) shortcut(c *fiber.Ctx, fn service.StateChangeFunc) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	user, err := fn(c.Context(), p.User.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

func parseUserFilter(c *fiber.Ctx) repository.UserFilter {
	var filter repository.UserFilter
	if state := c.Query("state"); state != "" {
		filter.States = append(filter.States, domain.WorkflowState(state))
	}
	if role := c.Query("role"); role != "" {
		r := domain.Role(role)
		filter.Role = &r
	}
	if search := c.Query("search"); search != "" {
		filter.SearchTerm = &search
	}
	filter.Limit, filter.Offset = parsePagination(c)
	return filter
}
