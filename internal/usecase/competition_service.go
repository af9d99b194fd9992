package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sportorg/competition-api/internal/domain/auth"
	"github.com/sportorg/competition-api/internal/domain/competition"
	"github.com/sportorg/competition-api/internal/domain/eligibility"
	"github.com/sportorg/competition-api/internal/domain/group"
	"github.com/sportorg/competition-api/internal/domain/player"
	idgen "github.com/sportorg/competition-api/internal/platform/id"
)

// UpsertCompetitionInput is the incoming payload for create/update competition.
type UpsertCompetitionInput struct {
	Name               string
	MaxPlayers         int
	AgeEligibilityDate string
	FromDate           time.Time
	ToDate             time.Time
	Groups             []CompetitionGroupInput
}

type CompetitionGroupInput struct {
	GroupID            string
	AgeType            string
	AgeEligibilityDate string
}

// PlayerEligibility pairs a player with the server-computed eligibility
// verdict for one competition. The verdict here is authoritative; clients
// may render it but never recompute it.
type PlayerEligibility struct {
	Player           player.Player
	Age              int
	AgeKnown         bool
	Status           eligibility.Status
	Reason           string
	QualifyingGroups []competition.Group
}

type CompetitionService struct {
	competitionRepo competition.Repository
	groupRepo       group.Repository
	playerRepo      player.Repository
	rules           eligibility.Rules
	idGen           idgen.Generator
	logger          *slog.Logger
	now             func() time.Time
}

func NewCompetitionService(
	competitionRepo competition.Repository,
	groupRepo group.Repository,
	playerRepo player.Repository,
	rules eligibility.Rules,
	idGen idgen.Generator,
	logger *slog.Logger,
) *CompetitionService {
	if logger == nil {
		logger = slog.Default()
	}

	return &CompetitionService{
		competitionRepo: competitionRepo,
		groupRepo:       groupRepo,
		playerRepo:      playerRepo,
		rules:           rules,
		idGen:           idGen,
		logger:          logger,
		now:             time.Now,
	}
}

func (s *CompetitionService) ListCompetitions(ctx context.Context) ([]competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.ListCompetitions")
	defer span.End()

	competitions, err := s.competitionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}

	return competitions, nil
}

func (s *CompetitionService) ListGroups(ctx context.Context) ([]group.Group, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.ListGroups")
	defer span.End()

	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}

	return groups, nil
}

func (s *CompetitionService) GetCompetition(ctx context.Context, competitionID string) (competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.GetCompetition")
	defer span.End()

	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return competition.Competition{}, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}

	c, exists, err := s.competitionRepo.GetByID(ctx, competitionID)
	if err != nil {
		return competition.Competition{}, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return competition.Competition{}, fmt.Errorf("%w: competition=%s", ErrNotFound, competitionID)
	}

	return c, nil
}

func (s *CompetitionService) CreateCompetition(ctx context.Context, principal auth.Principal, input UpsertCompetitionInput) (competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.CreateCompetition")
	defer span.End()

	if !principal.IsAdmin() {
		return competition.Competition{}, fmt.Errorf("%w: only admins may create competitions", ErrUnauthorized)
	}

	c, err := s.buildCompetition(ctx, "", input)
	if err != nil {
		return competition.Competition{}, err
	}

	c.ID, err = s.idGen.NewID()
	if err != nil {
		return competition.Competition{}, fmt.Errorf("generate competition id: %w", err)
	}

	if err := c.Validate(); err != nil {
		return competition.Competition{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.competitionRepo.Create(ctx, c); err != nil {
		return competition.Competition{}, fmt.Errorf("create competition: %w", err)
	}

	s.logger.InfoContext(ctx, "competition created",
		"competition_id", c.ID,
		"name", c.Name,
		"group_count", len(c.Groups),
	)

	return c, nil
}

func (s *CompetitionService) UpdateCompetition(ctx context.Context, principal auth.Principal, competitionID string, input UpsertCompetitionInput) (competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.UpdateCompetition")
	defer span.End()

	if !principal.IsAdmin() {
		return competition.Competition{}, fmt.Errorf("%w: only admins may update competitions", ErrUnauthorized)
	}

	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return competition.Competition{}, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}

	_, exists, err := s.competitionRepo.GetByID(ctx, competitionID)
	if err != nil {
		return competition.Competition{}, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return competition.Competition{}, fmt.Errorf("%w: competition=%s", ErrNotFound, competitionID)
	}

	c, err := s.buildCompetition(ctx, competitionID, input)
	if err != nil {
		return competition.Competition{}, err
	}

	if err := c.Validate(); err != nil {
		return competition.Competition{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.competitionRepo.Update(ctx, c); err != nil {
		return competition.Competition{}, fmt.Errorf("update competition: %w", err)
	}

	s.logger.InfoContext(ctx, "competition updated", "competition_id", c.ID)

	return c, nil
}

// ListEligiblePlayers resolves every player of one club against the
// competition. It never drops players: ineligible and unknown verdicts are
// returned alongside eligible ones so callers can explain rejections. A
// non-empty groupID narrows the verdicts to one attached competition group.
func (s *CompetitionService) ListEligiblePlayers(ctx context.Context, competitionID, clubID, groupID string) ([]PlayerEligibility, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.ListEligiblePlayers")
	defer span.End()

	competitionID = strings.TrimSpace(competitionID)
	clubID = strings.TrimSpace(clubID)
	groupID = strings.TrimSpace(groupID)
	if competitionID == "" {
		return nil, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}
	if clubID == "" {
		return nil, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}

	c, exists, err := s.competitionRepo.GetByID(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: competition=%s", ErrNotFound, competitionID)
	}

	var scoped *competition.Group
	if groupID != "" {
		g, attached := c.FindGroup(groupID)
		if !attached {
			return nil, fmt.Errorf("%w: group=%s is not part of competition=%s", ErrInvalidInput, groupID, competitionID)
		}
		scoped = &g
	}

	players, err := s.playerRepo.ListByClub(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("list club players: %w", err)
	}

	now := s.now().UTC()
	out := make([]PlayerEligibility, 0, len(players))
	for _, p := range players {
		result := eligibility.Resolve(p, c, now, s.rules)
		if scoped != nil {
			result = restrictToGroup(result, *scoped)
		}
		age, known := eligibility.AgeAt(p.DateOfBirth, now)
		out = append(out, PlayerEligibility{
			Player:           p,
			Age:              age,
			AgeKnown:         known,
			Status:           result.Status,
			Reason:           result.Reason,
			QualifyingGroups: result.QualifyingGroups,
		})
	}

	return out, nil
}

// restrictToGroup narrows a verdict to one competition group. The player is
// resolved against the whole competition first so the senior override still
// sees every attached group; an eligible player who does not qualify for the
// requested group becomes ineligible in the scoped listing.
func restrictToGroup(r eligibility.Result, g competition.Group) eligibility.Result {
	if r.Status != eligibility.StatusEligible {
		return r
	}

	for _, q := range r.QualifyingGroups {
		if q.GroupID == g.GroupID {
			r.QualifyingGroups = []competition.Group{q}
			return r
		}
	}

	return eligibility.Result{
		Status: eligibility.StatusIneligible,
		Reason: fmt.Sprintf("Does not qualify for group %s", g.Name),
	}
}

func (s *CompetitionService) buildCompetition(ctx context.Context, competitionID string, input UpsertCompetitionInput) (competition.Competition, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return competition.Competition{}, fmt.Errorf("%w: competition name is required", ErrInvalidInput)
	}

	groupIDs := make([]string, 0, len(input.Groups))
	for _, g := range input.Groups {
		id := strings.TrimSpace(g.GroupID)
		if id == "" {
			return competition.Competition{}, fmt.Errorf("%w: group id cannot be empty", ErrInvalidInput)
		}
		groupIDs = append(groupIDs, id)
	}

	groupsByID := make(map[string]group.Group, len(groupIDs))
	if len(groupIDs) > 0 {
		known, err := s.groupRepo.GetByIDs(ctx, groupIDs)
		if err != nil {
			return competition.Competition{}, fmt.Errorf("get groups by ids: %w", err)
		}
		for _, g := range known {
			groupsByID[g.ID] = g
		}
	}

	compGroups := make([]competition.Group, 0, len(input.Groups))
	for _, in := range input.Groups {
		id := strings.TrimSpace(in.GroupID)
		g, ok := groupsByID[id]
		if !ok {
			return competition.Competition{}, fmt.Errorf("%w: group=%s not found", ErrInvalidInput, id)
		}

		ageType := group.AgeType(strings.TrimSpace(in.AgeType))
		if ageType == "" {
			ageType = g.AgeType
		}

		compGroups = append(compGroups, competition.Group{
			GroupID:            g.ID,
			Name:               g.Name,
			AgeType:            ageType.Normalize(),
			AgeEligibilityDate: strings.TrimSpace(in.AgeEligibilityDate),
		})
	}

	return competition.Competition{
		ID:                 competitionID,
		Name:               input.Name,
		MaxPlayers:         input.MaxPlayers,
		AgeEligibilityDate: strings.TrimSpace(input.AgeEligibilityDate),
		Groups:             compGroups,
		FromDate:           input.FromDate,
		ToDate:             input.ToDate,
	}, nil
}
