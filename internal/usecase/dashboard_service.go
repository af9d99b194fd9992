package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/sportorg/competition-api/internal/domain/auth"
	"github.com/sportorg/competition-api/internal/domain/club"
	"github.com/sportorg/competition-api/internal/domain/competition"
	"github.com/sportorg/competition-api/internal/domain/group"
	"github.com/sportorg/competition-api/internal/domain/place"
	"github.com/sportorg/competition-api/internal/domain/player"
	"github.com/sportorg/competition-api/internal/domain/registration"
)

// Dashboard is the landing-page summary, scoped to the caller's role.
type Dashboard struct {
	Role               auth.Role
	ClubCount          int
	PlaceCount         int
	GroupCount         int
	CompetitionCount   int
	ActiveCompetitions []competition.Competition
	// Club is filled for club-admin principals and covers their own club.
	Club *ClubDashboard
}

// ClubDashboard summarizes one club for its administrator.
type ClubDashboard struct {
	ClubID                  string
	PlayerCount             int
	ActiveRegistrationCount int
}

type DashboardService struct {
	clubRepo         club.Repository
	placeRepo        place.Repository
	groupRepo        group.Repository
	competitionRepo  competition.Repository
	playerRepo       player.Repository
	registrationRepo registration.Repository
	now              func() time.Time
}

func NewDashboardService(
	clubRepo club.Repository,
	placeRepo place.Repository,
	groupRepo group.Repository,
	competitionRepo competition.Repository,
	playerRepo player.Repository,
	registrationRepo registration.Repository,
) *DashboardService {
	return &DashboardService{
		clubRepo:         clubRepo,
		placeRepo:        placeRepo,
		groupRepo:        groupRepo,
		competitionRepo:  competitionRepo,
		playerRepo:       playerRepo,
		registrationRepo: registrationRepo,
		now:              time.Now,
	}
}

// Get fans out to the repositories concurrently; the dashboard has no
// cross-entity consistency needs, so independent reads are fine. The catalog
// counts are public data, so every role sees them; club admins additionally
// get the player and roster totals of their own club.
func (s *DashboardService) Get(ctx context.Context, principal auth.Principal) (Dashboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Get")
	defer span.End()

	var (
		clubs        []club.Club
		places       []place.Place
		groups       []group.Group
		competitions []competition.Competition
		clubPlayers  []player.Player
		clubRegs     []registration.Registration
	)

	scopedClubID := ""
	if principal.Role == auth.RoleClubAdmin && principal.ClubID != "" {
		scopedClubID = principal.ClubID
	}

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		var err error
		clubs, err = s.clubRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list clubs: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		places, err = s.placeRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list places: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		groups, err = s.groupRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list groups: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		competitions, err = s.competitionRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list competitions: %w", err)
		}
		return nil
	})
	if scopedClubID != "" {
		p.Go(func(ctx context.Context) error {
			var err error
			clubPlayers, err = s.playerRepo.ListByClub(ctx, scopedClubID)
			if err != nil {
				return fmt.Errorf("list club players: %w", err)
			}
			return nil
		})
		p.Go(func(ctx context.Context) error {
			var err error
			clubRegs, err = s.registrationRepo.ListByScope(ctx, registration.Scope{ClubID: scopedClubID})
			if err != nil {
				return fmt.Errorf("list club registrations: %w", err)
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return Dashboard{}, err
	}

	now := s.now().UTC()
	var active []competition.Competition
	for _, c := range competitions {
		if isActiveCompetition(c, now) {
			active = append(active, c)
		}
	}

	dashboard := Dashboard{
		Role:               principal.Role,
		ClubCount:          len(clubs),
		PlaceCount:         len(places),
		GroupCount:         len(groups),
		CompetitionCount:   len(competitions),
		ActiveCompetitions: active,
	}

	if scopedClubID != "" {
		activeRegs := 0
		for _, r := range clubRegs {
			if r.Status == registration.StatusActive {
				activeRegs++
			}
		}
		dashboard.Club = &ClubDashboard{
			ClubID:                  scopedClubID,
			PlayerCount:             len(clubPlayers),
			ActiveRegistrationCount: activeRegs,
		}
	}

	return dashboard, nil
}

// isActiveCompetition treats missing window dates as open-ended.
func isActiveCompetition(c competition.Competition, now time.Time) bool {
	if !c.FromDate.IsZero() && now.Before(c.FromDate) {
		return false
	}
	if !c.ToDate.IsZero() && now.After(c.ToDate) {
		return false
	}
	return true
}
