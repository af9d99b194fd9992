package usecase

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/sportorg/competition-api/internal/domain/auth"
	"github.com/sportorg/competition-api/internal/domain/eligibility"
	"github.com/sportorg/competition-api/internal/infrastructure/repository/memory"
)

func newCompetitionService() *CompetitionService {
	service := NewCompetitionService(
		memory.NewCompetitionRepository(memory.SeedCompetitions()),
		memory.NewGroupRepository(memory.SeedGroups()),
		memory.NewPlayerRepository(memory.SeedPlayers()),
		eligibility.DefaultRules(),
		&sequenceIDGenerator{},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	service.now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }

	return service
}

func TestCompetitionService_CreateCompetition(t *testing.T) {
	service := newCompetitionService()

	created, err := service.CreateCompetition(t.Context(), adminPrincipal, UpsertCompetitionInput{
		Name:       "U15 Autumn Cup",
		MaxPlayers: 12,
		Groups: []CompetitionGroupInput{
			{GroupID: memory.GroupIDU15, AgeEligibilityDate: "2010-01-01"},
		},
	})
	if err != nil {
		t.Fatalf("create competition failed: %v", err)
	}

	if created.ID == "" {
		t.Fatal("expected generated competition id")
	}
	if len(created.Groups) != 1 || created.Groups[0].Name != "U15" {
		t.Fatalf("expected U15 group resolved from catalog, got %+v", created.Groups)
	}

	fetched, err := service.GetCompetition(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("get competition failed: %v", err)
	}
	if fetched.Name != "U15 Autumn Cup" {
		t.Fatalf("expected persisted name, got %s", fetched.Name)
	}
}

func TestCompetitionService_CreateCompetition_RejectsNonAdmin(t *testing.T) {
	service := newCompetitionService()

	principal := auth.Principal{UserID: "user-2", Role: auth.RoleClubAdmin, ClubID: memory.ClubIDNorthside}
	_, err := service.CreateCompetition(t.Context(), principal, UpsertCompetitionInput{
		Name:       "Rogue Cup",
		MaxPlayers: 12,
	})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestCompetitionService_CreateCompetition_RejectsInvalidRosterSize(t *testing.T) {
	service := newCompetitionService()

	for _, maxPlayers := range []int{9, 15} {
		_, err := service.CreateCompetition(t.Context(), adminPrincipal, UpsertCompetitionInput{
			Name:       "Odd Sized Cup",
			MaxPlayers: maxPlayers,
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("maxPlayers=%d: expected ErrInvalidInput, got %v", maxPlayers, err)
		}
	}
}

func TestCompetitionService_CreateCompetition_RejectsUnknownGroup(t *testing.T) {
	service := newCompetitionService()

	_, err := service.CreateCompetition(t.Context(), adminPrincipal, UpsertCompetitionInput{
		Name:       "Ghost Group Cup",
		MaxPlayers: 12,
		Groups: []CompetitionGroupInput{
			{GroupID: "grp-missing"},
		},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCompetitionService_UpdateCompetition(t *testing.T) {
	service := newCompetitionService()

	updated, err := service.UpdateCompetition(t.Context(), adminPrincipal, memory.CompetitionIDU12Cup, UpsertCompetitionInput{
		Name:       "U12 Spring Cup Extended",
		MaxPlayers: 14,
		Groups: []CompetitionGroupInput{
			{GroupID: memory.GroupIDU12, AgeEligibilityDate: "2013-06-01"},
		},
	})
	if err != nil {
		t.Fatalf("update competition failed: %v", err)
	}
	if updated.MaxPlayers != 14 {
		t.Fatalf("expected max players 14, got %d", updated.MaxPlayers)
	}
	if updated.Groups[0].AgeEligibilityDate != "2013-06-01" {
		t.Fatalf("expected cutoff updated, got %s", updated.Groups[0].AgeEligibilityDate)
	}
}

func TestCompetitionService_UpdateCompetition_NotFound(t *testing.T) {
	service := newCompetitionService()

	_, err := service.UpdateCompetition(t.Context(), adminPrincipal, "comp-missing", UpsertCompetitionInput{
		Name:       "Nowhere Cup",
		MaxPlayers: 12,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCompetitionService_ListEligiblePlayers(t *testing.T) {
	service := newCompetitionService()

	verdicts, err := service.ListEligiblePlayers(t.Context(), memory.CompetitionIDU12Cup, memory.ClubIDNorthside, "")
	if err != nil {
		t.Fatalf("list eligible players failed: %v", err)
	}

	byPlayer := make(map[string]PlayerEligibility, len(verdicts))
	for _, v := range verdicts {
		byPlayer[v.Player.ID] = v
	}

	// Every club player gets a verdict, eligible or not.
	if len(verdicts) != 9 {
		t.Fatalf("expected 9 verdicts, got %d", len(verdicts))
	}

	if got := byPlayer["north-p08"].Status; got != eligibility.StatusEligible {
		t.Fatalf("north-p08 status = %s, want ELIGIBLE (%s)", got, byPlayer["north-p08"].Reason)
	}
	// Adult outside the U12 group.
	if got := byPlayer["north-p01"].Status; got != eligibility.StatusIneligible {
		t.Fatalf("north-p01 status = %s, want INELIGIBLE", got)
	}
	// Missing birth date resolves to unknown, not rejection.
	if got := byPlayer["north-p07"].Status; got != eligibility.StatusUnknown {
		t.Fatalf("north-p07 status = %s, want UNKNOWN", got)
	}
	if byPlayer["north-p07"].AgeKnown {
		t.Fatal("north-p07 age should be unknown")
	}
}

func TestCompetitionService_ListEligiblePlayers_ScopedToGroup(t *testing.T) {
	service := newCompetitionService()

	created, err := service.CreateCompetition(t.Context(), adminPrincipal, UpsertCompetitionInput{
		Name:       "Youth Festival",
		MaxPlayers: 12,
		Groups: []CompetitionGroupInput{
			{GroupID: memory.GroupIDU12, AgeEligibilityDate: "2013-01-01"},
			{GroupID: memory.GroupIDU15, AgeEligibilityDate: "2008-01-01"},
		},
	})
	if err != nil {
		t.Fatalf("create competition failed: %v", err)
	}

	verdicts, err := service.ListEligiblePlayers(t.Context(), created.ID, memory.ClubIDNorthside, memory.GroupIDU15)
	if err != nil {
		t.Fatalf("list eligible players failed: %v", err)
	}

	byPlayer := make(map[string]PlayerEligibility, len(verdicts))
	for _, v := range verdicts {
		byPlayer[v.Player.ID] = v
	}

	// A U15 member inside the cutoff qualifies for exactly that group.
	got := byPlayer["north-p03"]
	if got.Status != eligibility.StatusEligible {
		t.Fatalf("north-p03 status = %s, want ELIGIBLE (%s)", got.Status, got.Reason)
	}
	if len(got.QualifyingGroups) != 1 || got.QualifyingGroups[0].GroupID != memory.GroupIDU15 {
		t.Fatalf("north-p03 qualifying groups = %+v, want only U15", got.QualifyingGroups)
	}
	// A U12-only member is eligible for the competition but not this group.
	if got := byPlayer["north-p08"].Status; got != eligibility.StatusIneligible {
		t.Fatalf("north-p08 status = %s, want INELIGIBLE", got)
	}
	// Missing birth dates stay unknown under a group filter.
	if got := byPlayer["north-p07"].Status; got != eligibility.StatusUnknown {
		t.Fatalf("north-p07 status = %s, want UNKNOWN", got)
	}
}

func TestCompetitionService_ListEligiblePlayers_RejectsUnattachedGroup(t *testing.T) {
	service := newCompetitionService()

	_, err := service.ListEligiblePlayers(t.Context(), memory.CompetitionIDU12Cup, memory.ClubIDNorthside, memory.GroupIDMen)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCompetitionService_ListEligiblePlayers_CompetitionNotFound(t *testing.T) {
	service := newCompetitionService()

	_, err := service.ListEligiblePlayers(t.Context(), "comp-missing", memory.ClubIDNorthside, "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
