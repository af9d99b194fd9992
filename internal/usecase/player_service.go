package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sportorg/competition-api/internal/domain/auth"
	"github.com/sportorg/competition-api/internal/domain/club"
	"github.com/sportorg/competition-api/internal/domain/eligibility"
	"github.com/sportorg/competition-api/internal/domain/group"
	"github.com/sportorg/competition-api/internal/domain/player"
	idgen "github.com/sportorg/competition-api/internal/platform/id"
)

// UpsertPlayerInput is the incoming payload for create/update player.
type UpsertPlayerInput struct {
	ClubID      string
	FirstName   string
	LastName    string
	DateOfBirth string
	Position    string
	GroupIDs    []string
}

type PlayerService struct {
	clubRepo   club.Repository
	groupRepo  group.Repository
	playerRepo player.Repository
	idGen      idgen.Generator
	logger     *slog.Logger
}

func NewPlayerService(
	clubRepo club.Repository,
	groupRepo group.Repository,
	playerRepo player.Repository,
	idGen idgen.Generator,
	logger *slog.Logger,
) *PlayerService {
	if logger == nil {
		logger = slog.Default()
	}

	return &PlayerService{
		clubRepo:   clubRepo,
		groupRepo:  groupRepo,
		playerRepo: playerRepo,
		idGen:      idGen,
		logger:     logger,
	}
}

func (s *PlayerService) ListPlayersByClub(ctx context.Context, clubID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayersByClub")
	defer span.End()

	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return nil, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}

	_, exists, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("get club: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: club=%s", ErrNotFound, clubID)
	}

	players, err := s.playerRepo.ListByClub(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("list players by club: %w", err)
	}

	return players, nil
}

func (s *PlayerService) GetPlayer(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayer")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	return p, nil
}

func (s *PlayerService) CreatePlayer(ctx context.Context, principal auth.Principal, input UpsertPlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.CreatePlayer")
	defer span.End()

	p, err := s.buildPlayer(ctx, principal, "", input)
	if err != nil {
		return player.Player{}, err
	}

	p.ID, err = s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	if err := p.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.playerRepo.Create(ctx, p); err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	s.logger.InfoContext(ctx, "player created", "player_id", p.ID, "club_id", p.ClubID)

	return p, nil
}

func (s *PlayerService) UpdatePlayer(ctx context.Context, principal auth.Principal, playerID string, input UpsertPlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.UpdatePlayer")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	existing, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	// Moving a player requires authority over the club they leave, not just
	// the one they join.
	if !principal.CanManageClub(existing.ClubID) {
		return player.Player{}, fmt.Errorf("%w: cannot manage club=%s", ErrUnauthorized, existing.ClubID)
	}
	if input.ClubID == "" {
		input.ClubID = existing.ClubID
	}

	p, err := s.buildPlayer(ctx, principal, playerID, input)
	if err != nil {
		return player.Player{}, err
	}

	if err := p.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.playerRepo.Update(ctx, p); err != nil {
		return player.Player{}, fmt.Errorf("update player: %w", err)
	}

	s.logger.InfoContext(ctx, "player updated", "player_id", p.ID)

	return p, nil
}

// AgeOf returns the player's current age; ok is false when the date of
// birth is missing or malformed.
func (s *PlayerService) AgeOf(p player.Player, now time.Time) (int, bool) {
	return eligibility.AgeAt(p.DateOfBirth, now)
}

func (s *PlayerService) buildPlayer(ctx context.Context, principal auth.Principal, playerID string, input UpsertPlayerInput) (player.Player, error) {
	input.ClubID = strings.TrimSpace(input.ClubID)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.DateOfBirth = strings.TrimSpace(input.DateOfBirth)
	input.Position = strings.TrimSpace(input.Position)

	if input.ClubID == "" {
		return player.Player{}, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}
	if input.FirstName == "" || input.LastName == "" {
		return player.Player{}, fmt.Errorf("%w: first and last name are required", ErrInvalidInput)
	}
	if !principal.CanManageClub(input.ClubID) {
		return player.Player{}, fmt.Errorf("%w: cannot manage club=%s", ErrUnauthorized, input.ClubID)
	}

	_, exists, err := s.clubRepo.GetByID(ctx, input.ClubID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get club: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: club=%s", ErrNotFound, input.ClubID)
	}

	groupIDs := make([]string, 0, len(input.GroupIDs))
	for _, id := range input.GroupIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		groupIDs = append(groupIDs, id)
	}
	if len(groupIDs) > 0 {
		known, err := s.groupRepo.GetByIDs(ctx, groupIDs)
		if err != nil {
			return player.Player{}, fmt.Errorf("get groups by ids: %w", err)
		}
		if len(known) != len(groupIDs) {
			return player.Player{}, fmt.Errorf("%w: some groups do not exist", ErrInvalidInput)
		}
	}

	return player.Player{
		ID:          playerID,
		ClubID:      input.ClubID,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		DateOfBirth: input.DateOfBirth,
		GroupIDs:    groupIDs,
		Position:    player.Position(input.Position),
	}, nil
}
