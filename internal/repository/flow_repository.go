package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/platform-admin/internal/domain"
)

// FlowFilter captures flow listing parameters.
type FlowFilter struct {
	OwnerID    *string
	Statuses   []domain.FlowStatus
	SearchTerm *string
	Limit      int
	Offset     int
}

// FlowRepository encapsulates flow graph persistence.
type FlowRepository interface {
	Create(ctx context.Context, flow *domain.Flow) error
	Update(ctx context.Context, flow *domain.Flow) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Flow, error)
	ListWithFilter(ctx context.Context, filter FlowFilter) ([]domain.Flow, error)
	// ReplaceGraph swaps the node/edge set of a flow atomically.
	ReplaceGraph(ctx context.Context, flowID string, nodes []domain.FlowNode, edges []domain.FlowEdge) error
}

type flowRepository struct {
	pool *pgxpool.Pool
}

// NewFlowRepository instantiates repository.
func NewFlowRepository(pool *pgxpool.Pool) FlowRepository {
	return &flowRepository{pool: pool}
}

func (r *flowRepository) Create(ctx context.Context, flow *domain.Flow) error {
	const query = `
        INSERT INTO flows (external_key, owner_user_id, name, description, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	if err := r.pool.QueryRow(ctx, query,
		flow.ExternalKey,
		flow.OwnerID,
		flow.Name,
		flow.Description,
		flow.Status,
	).Scan(&flow.ID, &flow.CreatedAt, &flow.UpdatedAt); err != nil {
		return err
	}
	if len(flow.Nodes) > 0 || len(flow.Edges) > 0 {
		return r.ReplaceGraph(ctx, flow.ID, flow.Nodes, flow.Edges)
	}
	return nil
}

func (r *flowRepository) Update(ctx context.Context, flow *domain.Flow) error {
	const query = `
        UPDATE flows SET name=$1, description=$2, status=$3, updated_at=NOW()
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query, flow.Name, flow.Description, flow.Status, flow.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *flowRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM flows WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *flowRepository) GetByID(ctx context.Context, id string) (*domain.Flow, error) {
	const query = `
        SELECT id, external_key, owner_user_id, name, description, status, created_at, updated_at
        FROM flows WHERE id=$1`

	var flow domain.Flow
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&flow.ID,
		&flow.ExternalKey,
		&flow.OwnerID,
		&flow.Name,
		&flow.Description,
		&flow.Status,
		&flow.CreatedAt,
		&flow.UpdatedAt,
	); err != nil {
		return nil, err
	}

	nodes, err := r.loadNodes(ctx, flow.ID)
	if err != nil {
		return nil, err
	}
	edges, err := r.loadEdges(ctx, flow.ID)
	if err != nil {
		return nil, err
	}
	flow.Nodes = nodes
	flow.Edges = edges
	return &flow, nil
}

func (r *flowRepository) loadNodes(ctx context.Context, flowID string) ([]domain.FlowNode, error) {
	const query = `
        SELECT id, flow_id, kind, label, config, pos_x, pos_y
        FROM flow_nodes WHERE flow_id=$1`
	rows, err := r.pool.Query(ctx, query, flowID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nodes []domain.FlowNode
	for rows.Next() {
		var node domain.FlowNode
		if err := rows.Scan(&node.ID, &node.FlowID, &node.Kind, &node.Label, &node.Config, &node.PosX, &node.PosY); err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, rows.Err()
}

func (r *flowRepository) loadEdges(ctx context.Context, flowID string) ([]domain.FlowEdge, error) {
	const query = `
        SELECT id, flow_id, source_node_id, target_node_id, condition
        FROM flow_edges WHERE flow_id=$1`
	rows, err := r.pool.Query(ctx, query, flowID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var edges []domain.FlowEdge
	for rows.Next() {
		var edge domain.FlowEdge
		if err := rows.Scan(&edge.ID, &edge.FlowID, &edge.SourceID, &edge.TargetID, &edge.Condition); err != nil {
			return nil, err
		}
		edges = append(edges, edge)
	}
	return edges, rows.Err()
}

func (r *flowRepository) ListWithFilter(ctx context.Context, filter FlowFilter) ([]domain.Flow, error) {
	base := `SELECT id, external_key, owner_user_id, name, description, status, created_at, updated_at
             FROM flows`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		clauses = append(clauses, fmt.Sprintf("owner_user_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		clauses = append(clauses, fmt.Sprintf("LOWER(name) LIKE $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY updated_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Flow
	for rows.Next() {
		var flow domain.Flow
		if err := rows.Scan(
			&flow.ID,
			&flow.ExternalKey,
			&flow.OwnerID,
			&flow.Name,
			&flow.Description,
			&flow.Status,
			&flow.CreatedAt,
			&flow.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, flow)
	}
	return result, rows.Err()
}

func (r *flowRepository) ReplaceGraph(ctx context.Context, flowID string, nodes []domain.FlowNode, edges []domain.FlowEdge) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM flow_edges WHERE flow_id=$1`, flowID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM flow_nodes WHERE flow_id=$1`, flowID); err != nil {
		return err
	}

	// Node IDs are client-assigned so edges can reference them in one payload.
	for i := range nodes {
		node := &nodes[i]
		node.FlowID = flowID
		if _, err := tx.Exec(ctx, `
            INSERT INTO flow_nodes (id, flow_id, kind, label, config, pos_x, pos_y)
            VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			node.ID, node.FlowID, node.Kind, node.Label, node.Config, node.PosX, node.PosY,
		); err != nil {
			return err
		}
	}
	for i := range edges {
		edge := &edges[i]
		edge.FlowID = flowID
		if _, err := tx.Exec(ctx, `
            INSERT INTO flow_edges (id, flow_id, source_node_id, target_node_id, condition)
            VALUES ($1,$2,$3,$4,$5)`,
			edge.ID, edge.FlowID, edge.SourceID, edge.TargetID, edge.Condition,
		); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, `UPDATE flows SET updated_at=NOW() WHERE id=$1`, flowID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
