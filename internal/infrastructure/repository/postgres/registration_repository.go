package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sportorg/competition-api/internal/domain/registration"
	qb "github.com/sportorg/competition-api/internal/platform/querybuilder"
)

var registrationSelectColumns = []string{
	"public_id",
	"competition_public_id",
	"group_public_id",
	"club_public_id",
	"player_public_id",
	"captain",
	"status",
	"registered_at",
}

type RegistrationRepository struct {
	db *sqlx.DB
}

func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

func (r *RegistrationRepository) ListByScope(ctx context.Context, scope registration.Scope) ([]registration.Registration, error) {
	conditions := []qb.Condition{
		qb.IsNull("deleted_at"),
	}
	if scope.CompetitionID != "" {
		conditions = append(conditions, qb.Eq("competition_public_id", scope.CompetitionID))
	}
	if scope.ClubID != "" {
		conditions = append(conditions, qb.Eq("club_public_id", scope.ClubID))
	}
	if scope.GroupID != "" {
		conditions = append(conditions, qb.Eq("group_public_id", scope.GroupID))
	}

	query, args, err := qb.Select(registrationSelectColumns...).
		From("registrations").
		Where(conditions...).
		OrderBy("registered_at ASC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select registrations query: %w", err)
	}

	var rows []registrationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select registrations: %w", err)
	}

	out := make([]registration.Registration, 0, len(rows))
	for _, row := range rows {
		out = append(out, registrationFromRow(row))
	}

	return out, nil
}

func (r *RegistrationRepository) Add(ctx context.Context, reg registration.Registration) error {
	query, args, err := qb.Insert("registrations").
		Columns(
			"public_id",
			"competition_public_id",
			"group_public_id",
			"club_public_id",
			"player_public_id",
			"captain",
			"status",
			"registered_at",
		).
		Values(reg.ID, reg.CompetitionID, reg.GroupID, reg.ClubID, reg.PlayerID, reg.Captain, string(reg.Status), reg.RegisteredAt).
		Suffix(`ON CONFLICT (competition_public_id, group_public_id, player_public_id) WHERE deleted_at IS NULL
DO NOTHING`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert registration query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert registration rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("player %s is already registered", reg.PlayerID)
	}

	return nil
}

func (r *RegistrationRepository) Remove(ctx context.Context, competitionID, groupID, playerID string) error {
	query, args, err := qb.Update("registrations").
		SetRaw("deleted_at", "now()").
		Set("status", string(registration.StatusWithdrawn)).
		Where(
			qb.Eq("competition_public_id", competitionID),
			qb.Eq("group_public_id", groupID),
			qb.Eq("player_public_id", playerID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build remove registration query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("remove registration: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove registration rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("registration for player %s not found", playerID)
	}

	return nil
}

func (r *RegistrationRepository) GetByID(ctx context.Context, registrationID string) (registration.Registration, bool, error) {
	query, args, err := qb.Select(registrationSelectColumns...).
		From("registrations").
		Where(qb.Eq("public_id", registrationID), qb.IsNull("deleted_at")).
		Limit(1).
		ToSQL()
	if err != nil {
		return registration.Registration{}, false, fmt.Errorf("build select registration query: %w", err)
	}

	var row registrationTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return registration.Registration{}, false, nil
		}
		return registration.Registration{}, false, fmt.Errorf("get registration: %w", err)
	}

	return registrationFromRow(row), true, nil
}

// SetCaptain promotes one registration within a scope and demotes the
// rest. Both steps run in one transaction so the single-captain
// invariant holds even under concurrent syncs.
func (r *RegistrationRepository) SetCaptain(ctx context.Context, scope registration.Scope, registrationID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for captain assignment: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	demoteConditions := []qb.Condition{
		qb.Eq("competition_public_id", scope.CompetitionID),
		qb.Eq("captain", true),
		qb.IsNull("deleted_at"),
	}
	if scope.ClubID != "" {
		demoteConditions = append(demoteConditions, qb.Eq("club_public_id", scope.ClubID))
	}
	if scope.GroupID != "" {
		demoteConditions = append(demoteConditions, qb.Eq("group_public_id", scope.GroupID))
	}

	demoteQuery, demoteArgs, err := qb.Update("registrations").
		Set("captain", false).
		SetRaw("updated_at", "now()").
		Where(demoteConditions...).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build demote captains query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, demoteQuery, demoteArgs...); err != nil {
		return fmt.Errorf("demote captains: %w", err)
	}

	promoteQuery, promoteArgs, err := qb.Update("registrations").
		Set("captain", true).
		SetRaw("updated_at", "now()").
		Where(
			qb.Eq("public_id", registrationID),
			qb.Eq("competition_public_id", scope.CompetitionID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build promote captain query: %w", err)
	}

	res, err := tx.ExecContext(ctx, promoteQuery, promoteArgs...)
	if err != nil {
		return fmt.Errorf("promote captain: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("promote captain rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("registration %s not found in scope", registrationID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit captain assignment tx: %w", err)
	}

	return nil
}

func registrationFromRow(row registrationTableModel) registration.Registration {
	return registration.Registration{
		ID:            row.ID,
		CompetitionID: row.CompetitionID,
		GroupID:       row.GroupID,
		ClubID:        row.ClubID,
		PlayerID:      row.PlayerID,
		Captain:       row.Captain,
		Status:        registration.Status(row.Status),
		RegisteredAt:  row.RegisteredAt,
	}
}
