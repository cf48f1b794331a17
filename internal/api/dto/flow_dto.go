package dto

import (
	"time"

	"github.com/spec-kit/platform-admin/internal/domain"
)

// CreateFlowRequest payload.
type CreateFlowRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=120"`
	Description string `json:"description" validate:"max=1000"`
}

// UpdateFlowRequest payload.
type UpdateFlowRequest struct {
	Name        string            `json:"name" validate:"required,min=1,max=120"`
	Description string            `json:"description" validate:"max=1000"`
	Status      domain.FlowStatus `json:"status" validate:"required,oneof=DRAFT ACTIVE INACTIVE"`
}

// FlowNodeInput is a node submitted by the graph editor.
type FlowNodeInput struct {
	ID     string         `json:"id"`
	Kind   string         `json:"kind" validate:"required,min=1,max=60"`
	Label  string         `json:"label" validate:"required,min=1,max=120"`
	Config map[string]any `json:"config"`
	PosX   float64        `json:"pos_x"`
	PosY   float64        `json:"pos_y"`
}

// FlowEdgeInput is an edge submitted by the graph editor.
type FlowEdgeInput struct {
	ID        string  `json:"id"`
	SourceID  string  `json:"source_id" validate:"required"`
	TargetID  string  `json:"target_id" validate:"required"`
	Condition *string `json:"condition"`
}

// ReplaceGraphRequest payload.
type ReplaceGraphRequest struct {
	Nodes []FlowNodeInput `json:"nodes" validate:"dive"`
	Edges []FlowEdgeInput `json:"edges" validate:"dive"`
}

// FlowNodeResponse is a node in the flow detail shape.
type FlowNodeResponse struct {
	ID     string         `json:"id"`
	Kind   string         `json:"kind"`
	Label  string         `json:"label"`
	Config map[string]any `json:"config"`
	PosX   float64        `json:"pos_x"`
	PosY   float64        `json:"pos_y"`
}

// FlowEdgeResponse is an edge in the flow detail shape.
type FlowEdgeResponse struct {
	ID        string  `json:"id"`
	SourceID  string  `json:"source_id"`
	TargetID  string  `json:"target_id"`
	Condition *string `json:"condition"`
}

// FlowResponse is the flow shape returned to clients.
type FlowResponse struct {
	ID          string             `json:"id"`
	ExternalKey string             `json:"external_key"`
	OwnerID     string             `json:"owner_id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Status      domain.FlowStatus  `json:"status"`
	Nodes       []FlowNodeResponse `json:"nodes"`
	Edges       []FlowEdgeResponse `json:"edges"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// NewFlowResponse maps a domain flow with its graph.
func NewFlowResponse(flow *domain.Flow) FlowResponse {
	nodes := make([]FlowNodeResponse, 0, len(flow.Nodes))
	for _, n := range flow.Nodes {
		nodes = append(nodes, FlowNodeResponse{
			ID: n.ID, Kind: n.Kind, Label: n.Label, Config: n.Config, PosX: n.PosX, PosY: n.PosY,
		})
	}
	edges := make([]FlowEdgeResponse, 0, len(flow.Edges))
	for _, e := range flow.Edges {
		edges = append(edges, FlowEdgeResponse{
			ID: e.ID, SourceID: e.SourceID, TargetID: e.TargetID, Condition: e.Condition,
		})
	}
	return FlowResponse{
		ID:          flow.ID,
		ExternalKey: flow.ExternalKey,
		OwnerID:     flow.OwnerID,
		Name:        flow.Name,
		Description: flow.Description,
		Status:      flow.Status,
		Nodes:       nodes,
		Edges:       edges,
		CreatedAt:   flow.CreatedAt,
		UpdatedAt:   flow.UpdatedAt,
	}
}
