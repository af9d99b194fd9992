package usecase

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/sportorg/competition-api/internal/domain/auth"
	"github.com/sportorg/competition-api/internal/domain/eligibility"
	"github.com/sportorg/competition-api/internal/domain/registration"
	"github.com/sportorg/competition-api/internal/infrastructure/repository/memory"
)

type sequenceIDGenerator struct {
	n int
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	g.n++
	return fmt.Sprintf("id-%03d", g.n), nil
}

var adminPrincipal = auth.Principal{UserID: "user-admin", Role: auth.RoleAdmin}

func newRosterService(regs []registration.Registration) (*RosterService, *memory.RegistrationRepository) {
	regRepo := memory.NewRegistrationRepository(regs)
	service := NewRosterService(
		memory.NewCompetitionRepository(memory.SeedCompetitions()),
		memory.NewPlayerRepository(memory.SeedPlayers()),
		regRepo,
		eligibility.DefaultRules(),
		&sequenceIDGenerator{},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	service.now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }

	return service, regRepo
}

func TestRosterService_SyncRoster_AddAndRemove(t *testing.T) {
	existing := []registration.Registration{
		{ID: "reg-1", CompetitionID: memory.CompetitionIDSeniorLeague, GroupID: memory.GroupIDMen, ClubID: memory.ClubIDNorthside, PlayerID: "north-p01", Status: registration.StatusActive},
		{ID: "reg-2", CompetitionID: memory.CompetitionIDSeniorLeague, GroupID: memory.GroupIDMen, ClubID: memory.ClubIDNorthside, PlayerID: "north-p02", Status: registration.StatusActive},
	}
	service, regRepo := newRosterService(existing)

	result, err := service.SyncRoster(t.Context(), adminPrincipal, SyncRosterInput{
		CompetitionID: memory.CompetitionIDSeniorLeague,
		GroupID:       memory.GroupIDMen,
		ClubID:        memory.ClubIDNorthside,
		PlayerIDs:     []string{"north-p02", "north-p03"},
	})
	if err != nil {
		t.Fatalf("sync roster failed: %v", err)
	}

	if len(result.Applied) != 2 {
		t.Fatalf("expected 2 applied changes, got %d: %+v", len(result.Applied), result.Applied)
	}
	if len(result.Failed) != 0 {
		t.Fatalf("expected no failures, got %+v", result.Failed)
	}
	if len(result.Skipped) != 1 || result.Skipped[0] != "north-p02" {
		t.Fatalf("expected north-p02 skipped, got %v", result.Skipped)
	}

	regs, err := regRepo.ListByScope(t.Context(), registration.Scope{
		CompetitionID: memory.CompetitionIDSeniorLeague,
		ClubID:        memory.ClubIDNorthside,
		GroupID:       memory.GroupIDMen,
	})
	if err != nil {
		t.Fatalf("list registrations failed: %v", err)
	}
	if len(regs) != 2 {
		t.Fatalf("expected 2 registrations after sync, got %d", len(regs))
	}
	for _, r := range regs {
		if r.PlayerID == "north-p01" {
			t.Fatalf("expected north-p01 removed, still registered as %s", r.ID)
		}
	}
}

func TestRosterService_SyncRoster_NoopWhenUnchanged(t *testing.T) {
	existing := []registration.Registration{
		{ID: "reg-1", CompetitionID: memory.CompetitionIDSeniorLeague, GroupID: memory.GroupIDMen, ClubID: memory.ClubIDNorthside, PlayerID: "north-p01", Status: registration.StatusActive},
	}
	service, _ := newRosterService(existing)

	result, err := service.SyncRoster(t.Context(), adminPrincipal, SyncRosterInput{
		CompetitionID: memory.CompetitionIDSeniorLeague,
		GroupID:       memory.GroupIDMen,
		ClubID:        memory.ClubIDNorthside,
		PlayerIDs:     []string{"north-p01"},
	})
	if err != nil {
		t.Fatalf("sync roster failed: %v", err)
	}
	if len(result.Applied) != 0 || len(result.Failed) != 0 {
		t.Fatalf("expected noop, got %+v", result)
	}
	if len(result.Skipped) != 1 {
		t.Fatalf("expected 1 skipped, got %v", result.Skipped)
	}
}

func TestRosterService_SyncRoster_RejectsFourthU18(t *testing.T) {
	service, _ := newRosterService(nil)

	// north-p03..p06 are all under 18 at the fixed clock.
	_, err := service.SyncRoster(t.Context(), adminPrincipal, SyncRosterInput{
		CompetitionID: memory.CompetitionIDSeniorLeague,
		GroupID:       memory.GroupIDMen,
		ClubID:        memory.ClubIDNorthside,
		PlayerIDs:     []string{"north-p01", "north-p03", "north-p04", "north-p05", "north-p06"},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for fourth U18, got %v", err)
	}
}

func TestRosterService_SyncRoster_RejectsUnauthorizedClub(t *testing.T) {
	service, _ := newRosterService(nil)

	principal := auth.Principal{UserID: "user-2", Role: auth.RoleClubAdmin, ClubID: memory.ClubIDRiverton}
	_, err := service.SyncRoster(t.Context(), principal, SyncRosterInput{
		CompetitionID: memory.CompetitionIDSeniorLeague,
		GroupID:       memory.GroupIDMen,
		ClubID:        memory.ClubIDNorthside,
		PlayerIDs:     []string{"north-p01"},
	})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestRosterService_SyncRoster_RejectsReadOnlyRoles(t *testing.T) {
	service, _ := newRosterService(nil)

	for _, role := range []auth.Role{auth.RoleReferee, auth.RoleObserver} {
		principal := auth.Principal{UserID: "user-3", Role: role}
		_, err := service.SyncRoster(t.Context(), principal, SyncRosterInput{
			CompetitionID: memory.CompetitionIDSeniorLeague,
			GroupID:       memory.GroupIDMen,
			ClubID:        memory.ClubIDNorthside,
			PlayerIDs:     []string{"north-p01"},
		})
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("role %s: expected ErrUnauthorized, got %v", role, err)
		}
	}
}

func TestRosterService_SyncRoster_RejectsForeignGroup(t *testing.T) {
	service, _ := newRosterService(nil)

	_, err := service.SyncRoster(t.Context(), adminPrincipal, SyncRosterInput{
		CompetitionID: memory.CompetitionIDSeniorLeague,
		GroupID:       memory.GroupIDU12,
		ClubID:        memory.ClubIDNorthside,
		PlayerIDs:     []string{"north-p01"},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for group outside competition, got %v", err)
	}
}

func TestRosterService_SyncRoster_AssignsCaptain(t *testing.T) {
	service, regRepo := newRosterService(nil)

	_, err := service.SyncRoster(t.Context(), adminPrincipal, SyncRosterInput{
		CompetitionID:   memory.CompetitionIDSeniorLeague,
		GroupID:         memory.GroupIDMen,
		ClubID:          memory.ClubIDNorthside,
		PlayerIDs:       []string{"north-p01", "north-p02"},
		CaptainPlayerID: "north-p02",
	})
	if err != nil {
		t.Fatalf("sync roster failed: %v", err)
	}

	regs, err := regRepo.ListByScope(t.Context(), registration.Scope{
		CompetitionID: memory.CompetitionIDSeniorLeague,
		ClubID:        memory.ClubIDNorthside,
		GroupID:       memory.GroupIDMen,
	})
	if err != nil {
		t.Fatalf("list registrations failed: %v", err)
	}

	captains := 0
	for _, r := range regs {
		if r.Captain {
			captains++
			if r.PlayerID != "north-p02" {
				t.Fatalf("expected north-p02 as captain, got %s", r.PlayerID)
			}
		}
	}
	if captains != 1 {
		t.Fatalf("expected exactly one captain, got %d", captains)
	}
}

func TestRosterService_SyncRoster_RejectsCaptainOutsideSelection(t *testing.T) {
	service, _ := newRosterService(nil)

	_, err := service.SyncRoster(t.Context(), adminPrincipal, SyncRosterInput{
		CompetitionID:   memory.CompetitionIDSeniorLeague,
		GroupID:         memory.GroupIDMen,
		ClubID:          memory.ClubIDNorthside,
		PlayerIDs:       []string{"north-p01"},
		CaptainPlayerID: "north-p02",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRosterService_RemovePlayer(t *testing.T) {
	existing := []registration.Registration{
		{ID: "reg-1", CompetitionID: memory.CompetitionIDSeniorLeague, GroupID: memory.GroupIDMen, ClubID: memory.ClubIDNorthside, PlayerID: "north-p01", Status: registration.StatusActive},
	}
	service, regRepo := newRosterService(existing)

	if err := service.RemovePlayer(t.Context(), adminPrincipal, memory.CompetitionIDSeniorLeague, memory.GroupIDMen, "north-p01"); err != nil {
		t.Fatalf("remove player failed: %v", err)
	}

	regs, _ := regRepo.ListByScope(t.Context(), registration.Scope{CompetitionID: memory.CompetitionIDSeniorLeague})
	if len(regs) != 0 {
		t.Fatalf("expected empty roster, got %d registrations", len(regs))
	}

	err := service.RemovePlayer(t.Context(), adminPrincipal, memory.CompetitionIDSeniorLeague, memory.GroupIDMen, "north-p01")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second removal, got %v", err)
	}
}

func TestRosterService_SetCaptain(t *testing.T) {
	existing := []registration.Registration{
		{ID: "reg-1", CompetitionID: memory.CompetitionIDSeniorLeague, GroupID: memory.GroupIDMen, ClubID: memory.ClubIDNorthside, PlayerID: "north-p01", Captain: true, Status: registration.StatusActive},
		{ID: "reg-2", CompetitionID: memory.CompetitionIDSeniorLeague, GroupID: memory.GroupIDMen, ClubID: memory.ClubIDNorthside, PlayerID: "north-p02", Status: registration.StatusActive},
	}
	service, regRepo := newRosterService(existing)

	if err := service.SetCaptain(t.Context(), adminPrincipal, memory.CompetitionIDSeniorLeague, memory.ClubIDNorthside, "reg-2"); err != nil {
		t.Fatalf("set captain failed: %v", err)
	}

	regs, _ := regRepo.ListByScope(t.Context(), registration.Scope{CompetitionID: memory.CompetitionIDSeniorLeague})
	for _, r := range regs {
		want := r.ID == "reg-2"
		if r.Captain != want {
			t.Fatalf("registration %s captain = %v, want %v", r.ID, r.Captain, want)
		}
	}
}

func TestRosterService_ListRegisteredPlayers(t *testing.T) {
	existing := []registration.Registration{
		{ID: "reg-1", CompetitionID: memory.CompetitionIDSeniorLeague, GroupID: memory.GroupIDMen, ClubID: memory.ClubIDNorthside, PlayerID: "north-p01", Status: registration.StatusActive},
		{ID: "reg-2", CompetitionID: memory.CompetitionIDSeniorLeague, GroupID: memory.GroupIDMen, ClubID: memory.ClubIDRiverton, PlayerID: "river-p01", Status: registration.StatusActive},
	}
	service, _ := newRosterService(existing)

	roster, err := service.ListRegisteredPlayers(t.Context(), memory.CompetitionIDSeniorLeague, memory.ClubIDNorthside, memory.GroupIDMen)
	if err != nil {
		t.Fatalf("list registered players failed: %v", err)
	}
	if len(roster) != 1 {
		t.Fatalf("expected 1 registered player, got %d", len(roster))
	}
	if roster[0].Player.ID != "north-p01" {
		t.Fatalf("expected north-p01, got %s", roster[0].Player.ID)
	}
}
