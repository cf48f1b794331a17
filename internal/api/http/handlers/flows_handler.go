package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/platform-admin/internal/api/dto"
	"github.com/spec-kit/platform-admin/internal/domain"
	"github.com/spec-kit/platform-admin/internal/repository"
	"github.com/spec-kit/platform-admin/internal/service"
)

// FlowsHandler exposes schema-builder endpoints.
type FlowsHandler struct {
	flows *service.FlowService
}

// NewFlowsHandler constructs handler.
func NewFlowsHandler(flows *service.FlowService) *FlowsHandler {
	return &FlowsHandler{flows: flows}
}

// Create handles POST /me/flows.
func (h *FlowsHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.CreateFlowRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	flow, err := h.flows.Create(c.Context(), p.User.ID, req.Name, req.Description)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewFlowResponse(flow)})
}

// ListMine handles GET /me/flows.
func (h *FlowsHandler) ListMine(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	limit, offset := parsePagination(c)
	flows, err := h.flows.List(c.Context(), repository.FlowFilter{OwnerID: &p.User.ID, Limit: limit, Offset: offset})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": flowItems(flows)})
}

// Get handles GET /me/flows/:id.
func (h *FlowsHandler) Get(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	flow, err := h.flows.Get(c.Context(), p.User.ID, isAdmin(p), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewFlowResponse(flow)})
}

// Update handles PUT /me/flows/:id.
func (h *FlowsHandler) Update(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.UpdateFlowRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	flow, err := h.flows.UpdateMeta(c.Context(), p.User.ID, isAdmin(p), c.Params("id"), req.Name, req.Description, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewFlowResponse(flow)})
}

// ReplaceGraph handles PUT /me/flows/:id/graph.
func (h *FlowsHandler) ReplaceGraph(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.ReplaceGraphRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	nodes := make([]domain.FlowNode, 0, len(req.Nodes))
	for _, n := range req.Nodes {
		nodes = append(nodes, domain.FlowNode{
			ID: n.ID, Kind: n.Kind, Label: n.Label, Config: n.Config, PosX: n.PosX, PosY: n.PosY,
		})
	}
	edges := make([]domain.FlowEdge, 0, len(req.Edges))
	for _, e := range req.Edges {
		edges = append(edges, domain.FlowEdge{
			ID: e.ID, SourceID: e.SourceID, TargetID: e.TargetID, Condition: e.Condition,
		})
	}

	flow, err := h.flows.ReplaceGraph(c.Context(), p.User.ID, isAdmin(p), c.Params("id"), nodes, edges)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewFlowResponse(flow)})
}

// Delete handles DELETE /me/flows/:id.
func (h *FlowsHandler) Delete(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	if err := h.flows.Delete(c.Context(), p.User.ID, isAdmin(p), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// AdminList handles GET /admin/flows.
func (h *FlowsHandler) AdminList(c *fiber.Ctx) error {
	var filter repository.FlowFilter
	if owner := c.Query("owner_id"); owner != "" {
		filter.OwnerID = &owner
	}
	if status := c.Query("status"); status != "" {
		filter.Statuses = append(filter.Statuses, domain.FlowStatus(status))
	}
	if search := c.Query("search"); search != "" {
		filter.SearchTerm = &search
	}
	filter.Limit, filter.Offset = parsePagination(c)

	flows, err := h.flows.List(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": flowItems(flows)})
}

func flowItems(flows []domain.Flow) []dto.FlowResponse {
	items := make([]dto.FlowResponse, 0, len(flows))
	for i := range flows {
		items = append(items, dto.NewFlowResponse(&flows[i]))
	}
	return items
}
