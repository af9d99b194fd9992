package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sportorg/competition-api/internal/domain/auth"
	"github.com/sportorg/competition-api/internal/domain/competition"
	"github.com/sportorg/competition-api/internal/domain/eligibility"
	"github.com/sportorg/competition-api/internal/domain/player"
	"github.com/sportorg/competition-api/internal/domain/registration"
	idgen "github.com/sportorg/competition-api/internal/platform/id"
)

// SyncRosterInput is the desired roster for one (competition, club, group)
// scope. The server reconciles the persisted roster toward it.
type SyncRosterInput struct {
	CompetitionID   string
	GroupID         string
	ClubID          string
	PlayerIDs       []string
	CaptainPlayerID string
}

// RosterChange is the outcome of one add or remove attempt.
type RosterChange struct {
	PlayerID string
	Action   string
	Reason   string
}

const (
	ActionAdd    = "ADD"
	ActionRemove = "REMOVE"
)

// ReconciliationResult aggregates per-player outcomes of a roster sync.
// Persistence failures never abort the sync; they land in Failed so the
// caller can retry just those players.
type ReconciliationResult struct {
	Applied []RosterChange
	Failed  []RosterChange
	Skipped []string
}

// RegisteredPlayer joins a registration with its player record.
type RegisteredPlayer struct {
	Registration registration.Registration
	Player       player.Player
}

type RosterService struct {
	competitionRepo  competition.Repository
	playerRepo       player.Repository
	registrationRepo registration.Repository
	rules            eligibility.Rules
	idGen            idgen.Generator
	logger           *slog.Logger
	now              func() time.Time
}

func NewRosterService(
	competitionRepo competition.Repository,
	playerRepo player.Repository,
	registrationRepo registration.Repository,
	rules eligibility.Rules,
	idGen idgen.Generator,
	logger *slog.Logger,
) *RosterService {
	if logger == nil {
		logger = slog.Default()
	}

	return &RosterService{
		competitionRepo:  competitionRepo,
		playerRepo:       playerRepo,
		registrationRepo: registrationRepo,
		rules:            rules,
		idGen:            idGen,
		logger:           logger,
		now:              time.Now,
	}
}

// SyncRoster reconciles the persisted roster of one scope to the desired
// player set. Eligibility and the roster constraints are recomputed here
// from stored data; any eligible flag the client sends is ignored.
//
// Constraint violations reject the whole sync. Persistence errors while
// applying the plan do not: each add and remove is attempted independently
// and reported in the result.
func (s *RosterService) SyncRoster(ctx context.Context, principal auth.Principal, input SyncRosterInput) (ReconciliationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.SyncRoster")
	defer span.End()

	input.CompetitionID = strings.TrimSpace(input.CompetitionID)
	input.GroupID = strings.TrimSpace(input.GroupID)
	input.ClubID = strings.TrimSpace(input.ClubID)
	input.CaptainPlayerID = strings.TrimSpace(input.CaptainPlayerID)

	if input.CompetitionID == "" {
		return ReconciliationResult{}, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}
	if input.ClubID == "" {
		return ReconciliationResult{}, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}
	if !principal.CanManageClub(input.ClubID) {
		return ReconciliationResult{}, fmt.Errorf("%w: cannot manage club=%s", ErrUnauthorized, input.ClubID)
	}

	playerIDs, err := cleanPlayerIDs(input.PlayerIDs)
	if err != nil {
		return ReconciliationResult{}, err
	}

	c, exists, err := s.competitionRepo.GetByID(ctx, input.CompetitionID)
	if err != nil {
		return ReconciliationResult{}, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return ReconciliationResult{}, fmt.Errorf("%w: competition=%s", ErrNotFound, input.CompetitionID)
	}

	if len(c.Groups) > 0 {
		if _, ok := c.FindGroup(input.GroupID); !ok {
			return ReconciliationResult{}, fmt.Errorf("%w: group=%s is not part of competition=%s", ErrInvalidInput, input.GroupID, input.CompetitionID)
		}
	}

	if input.CaptainPlayerID != "" && !containsID(playerIDs, input.CaptainPlayerID) {
		return ReconciliationResult{}, fmt.Errorf("%w: captain must be part of the selected players", ErrInvalidInput)
	}

	now := s.now().UTC()
	if err := s.validateSelection(ctx, c, playerIDs, now); err != nil {
		return ReconciliationResult{}, err
	}

	scope := registration.Scope{
		CompetitionID: input.CompetitionID,
		ClubID:        input.ClubID,
		GroupID:       input.GroupID,
	}
	current, err := s.registrationRepo.ListByScope(ctx, scope)
	if err != nil {
		return ReconciliationResult{}, fmt.Errorf("list registrations: %w", err)
	}

	plan := eligibility.PlanRosterChange(current, playerIDs)
	result := s.applyPlan(ctx, scope, current, plan, playerIDs, now)

	if input.CaptainPlayerID != "" {
		if err := s.assignCaptain(ctx, scope, input.CaptainPlayerID); err != nil {
			s.logger.WarnContext(ctx, "captain assignment failed",
				"competition_id", scope.CompetitionID,
				"player_id", input.CaptainPlayerID,
				"error", err,
			)
		}
	}

	s.logger.InfoContext(ctx, "roster synced",
		"competition_id", scope.CompetitionID,
		"club_id", scope.ClubID,
		"group_id", scope.GroupID,
		"applied", len(result.Applied),
		"failed", len(result.Failed),
		"skipped", len(result.Skipped),
	)

	return result, nil
}

// ListRegisteredPlayers returns the roster of one scope joined with player
// records. Registrations whose player record is gone are kept with an
// empty player so the roster count stays truthful.
func (s *RosterService) ListRegisteredPlayers(ctx context.Context, competitionID, clubID, groupID string) ([]RegisteredPlayer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListRegisteredPlayers")
	defer span.End()

	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return nil, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}

	scope := registration.Scope{
		CompetitionID: competitionID,
		ClubID:        strings.TrimSpace(clubID),
		GroupID:       strings.TrimSpace(groupID),
	}
	regs, err := s.registrationRepo.ListByScope(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	if len(regs) == 0 {
		return []RegisteredPlayer{}, nil
	}

	ids := make([]string, 0, len(regs))
	for _, r := range regs {
		ids = append(ids, r.PlayerID)
	}
	players, err := s.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}

	byID := make(map[string]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	out := make([]RegisteredPlayer, 0, len(regs))
	for _, r := range regs {
		out = append(out, RegisteredPlayer{Registration: r, Player: byID[r.PlayerID]})
	}

	return out, nil
}

// RemovePlayer withdraws one player from a roster scope.
func (s *RosterService) RemovePlayer(ctx context.Context, principal auth.Principal, competitionID, groupID, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.RemovePlayer")
	defer span.End()

	competitionID = strings.TrimSpace(competitionID)
	groupID = strings.TrimSpace(groupID)
	playerID = strings.TrimSpace(playerID)
	if competitionID == "" {
		return fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}
	if playerID == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	regs, err := s.registrationRepo.ListByScope(ctx, registration.Scope{CompetitionID: competitionID, GroupID: groupID})
	if err != nil {
		return fmt.Errorf("list registrations: %w", err)
	}

	var found *registration.Registration
	for i := range regs {
		if regs[i].PlayerID == playerID {
			found = &regs[i]
			break
		}
	}
	if found == nil {
		return fmt.Errorf("%w: player=%s is not registered", ErrNotFound, playerID)
	}
	if !principal.CanManageClub(found.ClubID) {
		return fmt.Errorf("%w: cannot manage club=%s", ErrUnauthorized, found.ClubID)
	}

	if err := s.registrationRepo.Remove(ctx, competitionID, groupID, playerID); err != nil {
		return fmt.Errorf("remove registration: %w", err)
	}

	s.logger.InfoContext(ctx, "player removed from roster",
		"competition_id", competitionID,
		"group_id", groupID,
		"player_id", playerID,
	)

	return nil
}

// SetCaptain marks one registration as captain within its scope, demoting
// any previous captain of the same scope.
func (s *RosterService) SetCaptain(ctx context.Context, principal auth.Principal, competitionID, clubID, registrationID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.SetCaptain")
	defer span.End()

	competitionID = strings.TrimSpace(competitionID)
	clubID = strings.TrimSpace(clubID)
	registrationID = strings.TrimSpace(registrationID)
	if competitionID == "" || clubID == "" || registrationID == "" {
		return fmt.Errorf("%w: competition id, club id and registration id are required", ErrInvalidInput)
	}
	if !principal.CanManageClub(clubID) {
		return fmt.Errorf("%w: cannot manage club=%s", ErrUnauthorized, clubID)
	}

	reg, exists, err := s.registrationRepo.GetByID(ctx, registrationID)
	if err != nil {
		return fmt.Errorf("get registration: %w", err)
	}
	if !exists || reg.CompetitionID != competitionID || reg.ClubID != clubID {
		return fmt.Errorf("%w: registration=%s", ErrNotFound, registrationID)
	}

	scope := registration.Scope{
		CompetitionID: competitionID,
		ClubID:        clubID,
		GroupID:       reg.GroupID,
	}
	if err := s.registrationRepo.SetCaptain(ctx, scope, registrationID); err != nil {
		return fmt.Errorf("set captain: %w", err)
	}

	s.logger.InfoContext(ctx, "captain assigned",
		"competition_id", competitionID,
		"club_id", clubID,
		"registration_id", registrationID,
	)

	return nil
}

func (s *RosterService) validateSelection(ctx context.Context, c competition.Competition, playerIDs []string, now time.Time) error {
	if len(playerIDs) == 0 {
		return nil
	}

	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return fmt.Errorf("get players by ids: %w", err)
	}
	if len(players) != len(playerIDs) {
		return fmt.Errorf("%w: some selected players do not exist", ErrInvalidInput)
	}

	byID := make(map[string]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	// The selection is validated as the final roster, so the U18 cap and
	// the size limit apply to the desired set as a whole.
	selection := eligibility.NewSelection(c, now, s.rules, 0)
	for _, id := range playerIDs {
		if err := selection.Add(byID[id]); err != nil {
			if isConstraintError(err) {
				return fmt.Errorf("%w: player=%s: %v", ErrInvalidInput, id, err)
			}
			return fmt.Errorf("validate selection for player=%s: %w", id, err)
		}
	}

	return nil
}

func (s *RosterService) applyPlan(
	ctx context.Context,
	scope registration.Scope,
	current []registration.Registration,
	plan eligibility.Plan,
	desired []string,
	now time.Time,
) ReconciliationResult {
	result := ReconciliationResult{}

	removing := make(map[string]struct{}, len(plan.ToRemove))
	for _, playerID := range plan.ToRemove {
		removing[playerID] = struct{}{}
		if err := s.registrationRepo.Remove(ctx, scope.CompetitionID, scope.GroupID, playerID); err != nil {
			s.logger.WarnContext(ctx, "roster remove failed", "player_id", playerID, "error", err)
			result.Failed = append(result.Failed, RosterChange{PlayerID: playerID, Action: ActionRemove, Reason: err.Error()})
			continue
		}
		result.Applied = append(result.Applied, RosterChange{PlayerID: playerID, Action: ActionRemove})
	}

	adding := make(map[string]struct{}, len(plan.ToAdd))
	for _, playerID := range plan.ToAdd {
		adding[playerID] = struct{}{}
		reg, err := s.newRegistration(scope, playerID, now)
		if err == nil {
			err = s.registrationRepo.Add(ctx, reg)
		}
		if err != nil {
			s.logger.WarnContext(ctx, "roster add failed", "player_id", playerID, "error", err)
			result.Failed = append(result.Failed, RosterChange{PlayerID: playerID, Action: ActionAdd, Reason: err.Error()})
			continue
		}
		result.Applied = append(result.Applied, RosterChange{PlayerID: playerID, Action: ActionAdd})
	}

	for _, id := range desired {
		_, isNew := adding[id]
		_, isGone := removing[id]
		if !isNew && !isGone {
			result.Skipped = append(result.Skipped, id)
		}
	}

	return result
}

func (s *RosterService) newRegistration(scope registration.Scope, playerID string, now time.Time) (registration.Registration, error) {
	id, err := s.idGen.NewID()
	if err != nil {
		return registration.Registration{}, fmt.Errorf("generate registration id: %w", err)
	}

	return registration.Registration{
		ID:            id,
		CompetitionID: scope.CompetitionID,
		GroupID:       scope.GroupID,
		ClubID:        scope.ClubID,
		PlayerID:      playerID,
		Status:        registration.StatusActive,
		RegisteredAt:  now,
	}, nil
}

func (s *RosterService) assignCaptain(ctx context.Context, scope registration.Scope, captainPlayerID string) error {
	regs, err := s.registrationRepo.ListByScope(ctx, scope)
	if err != nil {
		return fmt.Errorf("list registrations: %w", err)
	}

	for _, r := range regs {
		if r.PlayerID == captainPlayerID {
			return s.registrationRepo.SetCaptain(ctx, scope, r.ID)
		}
	}

	return fmt.Errorf("%w: captain=%s is not registered", ErrNotFound, captainPlayerID)
}

func isConstraintError(err error) bool {
	return errors.Is(err, eligibility.ErrIneligible) ||
		errors.Is(err, eligibility.ErrRosterFull) ||
		errors.Is(err, eligibility.ErrU18NotAllowed) ||
		errors.Is(err, eligibility.ErrU18CapReached)
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func cleanPlayerIDs(playerIDs []string) ([]string, error) {
	cleaned := make([]string, 0, len(playerIDs))
	seen := make(map[string]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("%w: player id cannot be empty", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: duplicate player id %s", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
		cleaned = append(cleaned, id)
	}

	return cleaned, nil
}
