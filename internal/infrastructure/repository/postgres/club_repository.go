package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sportorg/competition-api/internal/domain/club"
	qb "github.com/sportorg/competition-api/internal/platform/querybuilder"
)

var clubSelectColumns = []string{
	"public_id",
	"place_public_id",
	"name",
	"short_name",
}

type ClubRepository struct {
	db *sqlx.DB
}

func NewClubRepository(db *sqlx.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

func (r *ClubRepository) List(ctx context.Context) ([]club.Club, error) {
	query, args, err := qb.Select(clubSelectColumns...).
		From("clubs").
		Where(qb.IsNull("deleted_at")).
		OrderBy("name ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select clubs query: %w", err)
	}

	var rows []clubTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select clubs: %w", err)
	}

	out := make([]club.Club, 0, len(rows))
	for _, row := range rows {
		out = append(out, clubFromRow(row))
	}

	return out, nil
}

func (r *ClubRepository) GetByID(ctx context.Context, clubID string) (club.Club, bool, error) {
	query, args, err := qb.Select(clubSelectColumns...).
		From("clubs").
		Where(qb.Eq("public_id", clubID), qb.IsNull("deleted_at")).
		Limit(1).
		ToSQL()
	if err != nil {
		return club.Club{}, false, fmt.Errorf("build select club query: %w", err)
	}

	var row clubTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return club.Club{}, false, nil
		}
		return club.Club{}, false, fmt.Errorf("get club: %w", err)
	}

	return clubFromRow(row), true, nil
}

func clubFromRow(row clubTableModel) club.Club {
	return club.Club{
		ID:        row.ID,
		PlaceID:   row.PlaceID,
		Name:      row.Name,
		ShortName: row.ShortName,
	}
}
