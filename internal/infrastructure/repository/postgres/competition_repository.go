package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sportorg/competition-api/internal/domain/competition"
	"github.com/sportorg/competition-api/internal/domain/group"
	qb "github.com/sportorg/competition-api/internal/platform/querybuilder"
)

var competitionSelectColumns = []string{
	"public_id",
	"name",
	"max_players",
	"age_eligibility_date",
	"from_date",
	"to_date",
}

type CompetitionRepository struct {
	db *sqlx.DB
}

func NewCompetitionRepository(db *sqlx.DB) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

func (r *CompetitionRepository) List(ctx context.Context) ([]competition.Competition, error) {
	query, args, err := qb.Select(competitionSelectColumns...).
		From("competitions").
		Where(qb.IsNull("deleted_at")).
		OrderBy("name ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select competitions query: %w", err)
	}

	var rows []competitionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select competitions: %w", err)
	}

	return r.attachGroups(ctx, rows)
}

func (r *CompetitionRepository) GetByID(ctx context.Context, competitionID string) (competition.Competition, bool, error) {
	query, args, err := qb.Select(competitionSelectColumns...).
		From("competitions").
		Where(qb.Eq("public_id", competitionID), qb.IsNull("deleted_at")).
		Limit(1).
		ToSQL()
	if err != nil {
		return competition.Competition{}, false, fmt.Errorf("build select competition query: %w", err)
	}

	var row competitionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return competition.Competition{}, false, nil
		}
		return competition.Competition{}, false, fmt.Errorf("get competition: %w", err)
	}

	items, err := r.attachGroups(ctx, []competitionTableModel{row})
	if err != nil {
		return competition.Competition{}, false, err
	}

	return items[0], true, nil
}

func (r *CompetitionRepository) Create(ctx context.Context, c competition.Competition) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for competition create: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.Insert("competitions").
		Columns("public_id", "name", "max_players", "age_eligibility_date", "from_date", "to_date").
		Values(c.ID, c.Name, c.MaxPlayers, c.AgeEligibilityDate, timeToNullTime(c.FromDate), timeToNullTime(c.ToDate)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert competition query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert competition: %w", err)
	}

	if err := replaceCompetitionGroups(ctx, tx, c.ID, c.Groups); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit competition create tx: %w", err)
	}

	return nil
}

func (r *CompetitionRepository) Update(ctx context.Context, c competition.Competition) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for competition update: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.Update("competitions").
		Set("name", c.Name).
		Set("max_players", c.MaxPlayers).
		Set("age_eligibility_date", c.AgeEligibilityDate).
		Set("from_date", timeToNullTime(c.FromDate)).
		Set("to_date", timeToNullTime(c.ToDate)).
		SetRaw("updated_at", "now()").
		Where(qb.Eq("public_id", c.ID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update competition query: %w", err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update competition: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update competition rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update competition %s: not found", c.ID)
	}

	if err := replaceCompetitionGroups(ctx, tx, c.ID, c.Groups); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit competition update tx: %w", err)
	}

	return nil
}

func (r *CompetitionRepository) attachGroups(ctx context.Context, rows []competitionTableModel) ([]competition.Competition, error) {
	out := make([]competition.Competition, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	query, args, err := qb.Select("competition_public_id", "group_public_id", "name", "age_type", "age_eligibility_date").
		From("competition_groups").
		Where(
			qb.In("competition_public_id", stringSliceToAny(ids)...),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select competition groups query: %w", err)
	}

	var groupRows []competitionGroupTableModel
	if err := r.db.SelectContext(ctx, &groupRows, query, args...); err != nil {
		return nil, fmt.Errorf("select competition groups: %w", err)
	}

	groupsByCompetition := make(map[string][]competition.Group, len(rows))
	for _, g := range groupRows {
		groupsByCompetition[g.CompetitionID] = append(groupsByCompetition[g.CompetitionID], competition.Group{
			GroupID:            g.GroupID,
			Name:               g.Name,
			AgeType:            group.AgeType(g.AgeType).Normalize(),
			AgeEligibilityDate: g.AgeEligibilityDate,
		})
	}

	for _, row := range rows {
		out = append(out, competition.Competition{
			ID:                 row.ID,
			Name:               row.Name,
			MaxPlayers:         row.MaxPlayers,
			AgeEligibilityDate: row.AgeEligibilityDate,
			Groups:             groupsByCompetition[row.ID],
			FromDate:           nullTimeToTime(row.FromDate),
			ToDate:             nullTimeToTime(row.ToDate),
		})
	}

	return out, nil
}

func replaceCompetitionGroups(ctx context.Context, tx *sqlx.Tx, competitionID string, groups []competition.Group) error {
	const clearQuery = `
UPDATE competition_groups
SET deleted_at = now()
WHERE competition_public_id = $1
  AND deleted_at IS NULL`
	if _, err := tx.ExecContext(ctx, clearQuery, competitionID); err != nil {
		return fmt.Errorf("clear competition groups: %w", err)
	}

	if len(groups) == 0 {
		return nil
	}

	builder := qb.Insert("competition_groups").
		Columns("competition_public_id", "group_public_id", "name", "age_type", "age_eligibility_date").
		Suffix(`ON CONFLICT (competition_public_id, group_public_id) DO UPDATE SET
    name = EXCLUDED.name,
    age_type = EXCLUDED.age_type,
    age_eligibility_date = EXCLUDED.age_eligibility_date,
    deleted_at = NULL`)
	for _, g := range groups {
		builder.Values(competitionID, g.GroupID, g.Name, string(g.AgeType.Normalize()), g.AgeEligibilityDate)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert competition groups query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert competition groups: %w", err)
	}

	return nil
}
