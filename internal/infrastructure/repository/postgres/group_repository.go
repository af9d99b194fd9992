package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sportorg/competition-api/internal/domain/group"
	qb "github.com/sportorg/competition-api/internal/platform/querybuilder"
)

type GroupRepository struct {
	db *sqlx.DB
}

func NewGroupRepository(db *sqlx.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) List(ctx context.Context) ([]group.Group, error) {
	query, args, err := qb.Select("public_id", "name", "age_type").
		From("groups").
		Where(qb.IsNull("deleted_at")).
		OrderBy("name ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select groups query: %w", err)
	}

	var rows []groupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select groups: %w", err)
	}

	out := make([]group.Group, 0, len(rows))
	for _, row := range rows {
		out = append(out, groupFromRow(row))
	}

	return out, nil
}

func (r *GroupRepository) GetByIDs(ctx context.Context, groupIDs []string) ([]group.Group, error) {
	if len(groupIDs) == 0 {
		return []group.Group{}, nil
	}

	query, args, err := qb.Select("public_id", "name", "age_type").
		From("groups").
		Where(
			qb.In("public_id", stringSliceToAny(groupIDs)...),
			qb.IsNull("deleted_at"),
		).
		OrderBy("name ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select groups by ids query: %w", err)
	}

	var rows []groupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select groups by ids: %w", err)
	}

	out := make([]group.Group, 0, len(rows))
	for _, row := range rows {
		out = append(out, groupFromRow(row))
	}

	return out, nil
}

func groupFromRow(row groupTableModel) group.Group {
	return group.Group{
		ID:      row.ID,
		Name:    row.Name,
		AgeType: group.AgeType(row.AgeType).Normalize(),
	}
}
