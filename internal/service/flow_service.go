package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/platform-admin/internal/domain"
	"github.com/spec-kit/platform-admin/internal/repository"
	apperrors "github.com/spec-kit/platform-admin/pkg/util"
)

// FlowService manages schema-builder graphs.
type FlowService struct {
	flows repository.FlowRepository
}

// NewFlowService constructs the service.
func NewFlowService(flows repository.FlowRepository) *FlowService {
	return &FlowService{flows: flows}
}

// Create adds an empty DRAFT flow.
func (s *FlowService) Create(ctx context.Context, ownerID, name, description string) (*domain.Flow, error) {
	flow := &domain.Flow{
		ExternalKey: uuid.NewString(),
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		Status:      domain.FlowStatusDraft,
	}
	if err := s.flows.Create(ctx, flow); err != nil {
		return nil, err
	}
	return flow, nil
}

// Get loads a flow with its graph, enforcing ownership unless the caller is
// an admin.
func (s *FlowService) Get(ctx context.Context, principalID string, isAdmin bool, id string) (*domain.Flow, error) {
	flow, err := s.flows.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("flow", map[string]any{"id": id})
		}
		return nil, err
	}
	if !isAdmin && flow.OwnerID != principalID {
		return nil, apperrors.NewForbidden("flow belongs to another account")
	}
	return flow, nil
}

// List returns flows matching the filter.
func (s *FlowService) List(ctx context.Context, filter repository.FlowFilter) ([]domain.Flow, error) {
	return s.flows.ListWithFilter(ctx, filter)
}

// UpdateMeta changes the name, description and status of a flow.
func (s *FlowService) UpdateMeta(ctx context.Context, principalID string, isAdmin bool, id, name, description string, status domain.FlowStatus) (*domain.Flow, error) {
	flow, err := s.Get(ctx, principalID, isAdmin, id)
	if err != nil {
		return nil, err
	}
	flow.Name = name
	flow.Description = description
	flow.Status = status
	flow.UpdatedAt = time.Now().UTC()
	if err := s.flows.Update(ctx, flow); err != nil {
		return nil, err
	}
	return flow, nil
}

// ReplaceGraph swaps the node and edge set of a flow. Edges must reference
// nodes present in the submitted set.
func (s *FlowService) ReplaceGraph(ctx context.Context, principalID string, isAdmin bool, id string, nodes []domain.FlowNode, edges []domain.FlowEdge) (*domain.Flow, error) {
	flow, err := s.Get(ctx, principalID, isAdmin, id)
	if err != nil {
		return nil, err
	}

	nodeIDs := make(map[string]struct{}, len(nodes))
	for i := range nodes {
		if nodes[i].ID == "" {
			nodes[i].ID = uuid.NewString()
		}
		nodes[i].FlowID = flow.ID
		nodeIDs[nodes[i].ID] = struct{}{}
	}
	for i := range edges {
		if edges[i].ID == "" {
			edges[i].ID = uuid.NewString()
		}
		edges[i].FlowID = flow.ID
		if _, ok := nodeIDs[edges[i].SourceID]; !ok {
			return nil, apperrors.NewValidationError("edge source node not in graph", map[string]any{"source_id": edges[i].SourceID})
		}
		if _, ok := nodeIDs[edges[i].TargetID]; !ok {
			return nil, apperrors.NewValidationError("edge target node not in graph", map[string]any{"target_id": edges[i].TargetID})
		}
	}

	if err := s.flows.ReplaceGraph(ctx, flow.ID, nodes, edges); err != nil {
		return nil, err
	}
	flow.Nodes = nodes
	flow.Edges = edges
	return flow, nil
}

// Delete removes a flow and its graph.
func (s *FlowService) Delete(ctx context.Context, principalID string, isAdmin bool, id string) error {
	flow, err := s.Get(ctx, principalID, isAdmin, id)
	if err != nil {
		return err
	}
	return s.flows.Delete(ctx, flow.ID)
}
