package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sportorg/competition-api/internal/domain/place"
	qb "github.com/sportorg/competition-api/internal/platform/querybuilder"
)

type PlaceRepository struct {
	db *sqlx.DB
}

func NewPlaceRepository(db *sqlx.DB) *PlaceRepository {
	return &PlaceRepository{db: db}
}

func (r *PlaceRepository) List(ctx context.Context) ([]place.Place, error) {
	query, args, err := qb.Select("public_id", "name", "region").
		From("places").
		Where(qb.IsNull("deleted_at")).
		OrderBy("name ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select places query: %w", err)
	}

	var rows []placeTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select places: %w", err)
	}

	out := make([]place.Place, 0, len(rows))
	for _, row := range rows {
		out = append(out, place.Place{
			ID:     row.ID,
			Name:   row.Name,
			Region: row.Region,
		})
	}

	return out, nil
}
