package domain

import "time"

// FlowStatus enumerates editor lifecycle states for flows.
type FlowStatus string

const (
	FlowStatusDraft    FlowStatus = "DRAFT"
	FlowStatusActive   FlowStatus = "ACTIVE"
	FlowStatusInactive FlowStatus = "INACTIVE"
)

// Flow is a schema-builder graph owned by a customer.
type Flow struct {
	ID          string
	ExternalKey string
	OwnerID     string
	Name        string
	Description string
	Status      FlowStatus
	Nodes       []FlowNode
	Edges       []FlowEdge
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FlowNode is a single step in the graph.
type FlowNode struct {
	ID     string
	FlowID string
	Kind   string
	Label  string
	Config map[string]any
	PosX   float64
	PosY   float64
}

// FlowEdge connects two nodes.
type FlowEdge struct {
	ID        string
	FlowID    string
	SourceID  string
	TargetID  string
	Condition *string
}
