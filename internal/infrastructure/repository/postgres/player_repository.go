package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sportorg/competition-api/internal/domain/player"
	qb "github.com/sportorg/competition-api/internal/platform/querybuilder"
)

var playerSelectColumns = []string{
	"public_id",
	"club_public_id",
	"first_name",
	"last_name",
	"date_of_birth",
	"position",
}

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ListByClub(ctx context.Context, clubID string) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).
		From("players").
		Where(qb.Eq("club_public_id", clubID), qb.IsNull("deleted_at")).
		OrderBy("last_name ASC", "first_name ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by club query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by club: %w", err)
	}

	return r.attachGroups(ctx, rows)
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).
		From("players").
		Where(qb.Eq("public_id", playerID), qb.IsNull("deleted_at")).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}

	players, err := r.attachGroups(ctx, []playerTableModel{row})
	if err != nil {
		return player.Player{}, false, err
	}

	return players[0], true, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	query, args, err := qb.Select(playerSelectColumns...).
		From("players").
		Where(
			qb.In("public_id", stringSliceToAny(playerIDs)...),
			qb.IsNull("deleted_at"),
		).
		OrderBy("last_name ASC", "first_name ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by ids query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by ids: %w", err)
	}

	return r.attachGroups(ctx, rows)
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for player create: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.Insert("players").
		Columns("public_id", "club_public_id", "first_name", "last_name", "date_of_birth", "position").
		Values(p.ID, p.ClubID, p.FirstName, p.LastName, p.DateOfBirth, string(p.Position)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert player: %w", err)
	}

	if err := replacePlayerGroups(ctx, tx, p.ID, p.GroupIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit player create tx: %w", err)
	}

	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for player update: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.Update("players").
		Set("club_public_id", p.ClubID).
		Set("first_name", p.FirstName).
		Set("last_name", p.LastName).
		Set("date_of_birth", p.DateOfBirth).
		Set("position", string(p.Position)).
		SetRaw("updated_at", "now()").
		Where(qb.Eq("public_id", p.ID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player query: %w", err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update player rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update player %s: not found", p.ID)
	}

	if err := replacePlayerGroups(ctx, tx, p.ID, p.GroupIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit player update tx: %w", err)
	}

	return nil
}

// attachGroups loads group memberships for the given player rows with a
// single query and assembles the domain players.
func (r *PlayerRepository) attachGroups(ctx context.Context, rows []playerTableModel) ([]player.Player, error) {
	out := make([]player.Player, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	query, args, err := qb.Select("player_public_id", "group_public_id").
		From("player_groups").
		Where(
			qb.In("player_public_id", stringSliceToAny(ids)...),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select player groups query: %w", err)
	}

	var memberships []struct {
		PlayerID string `db:"player_public_id"`
		GroupID  string `db:"group_public_id"`
	}
	if err := r.db.SelectContext(ctx, &memberships, query, args...); err != nil {
		return nil, fmt.Errorf("select player groups: %w", err)
	}

	groupsByPlayer := make(map[string][]string, len(rows))
	for _, m := range memberships {
		groupsByPlayer[m.PlayerID] = append(groupsByPlayer[m.PlayerID], m.GroupID)
	}

	for _, row := range rows {
		out = append(out, player.Player{
			ID:          row.ID,
			ClubID:      row.ClubID,
			FirstName:   row.FirstName,
			LastName:    row.LastName,
			DateOfBirth: row.DateOfBirth,
			GroupIDs:    groupsByPlayer[row.ID],
			Position:    player.Position(row.Position),
		})
	}

	return out, nil
}

func replacePlayerGroups(ctx context.Context, tx *sqlx.Tx, playerID string, groupIDs []string) error {
	const clearQuery = `
UPDATE player_groups
SET deleted_at = now()
WHERE player_public_id = $1
  AND deleted_at IS NULL`
	if _, err := tx.ExecContext(ctx, clearQuery, playerID); err != nil {
		return fmt.Errorf("clear player groups: %w", err)
	}

	if len(groupIDs) == 0 {
		return nil
	}

	builder := qb.Insert("player_groups").
		Columns("player_public_id", "group_public_id").
		Suffix("ON CONFLICT (player_public_id, group_public_id) DO UPDATE SET deleted_at = NULL")
	for _, groupID := range groupIDs {
		builder.Values(playerID, groupID)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert player groups query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert player groups: %w", err)
	}

	return nil
}
