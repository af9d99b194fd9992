package usecase

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/sportorg/competition-api/internal/domain/auth"
	"github.com/sportorg/competition-api/internal/infrastructure/repository/memory"
)

func newPlayerService() *PlayerService {
	return NewPlayerService(
		memory.NewClubRepository(memory.SeedClubs()),
		memory.NewGroupRepository(memory.SeedGroups()),
		memory.NewPlayerRepository(memory.SeedPlayers()),
		&sequenceIDGenerator{},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func TestPlayerService_CreatePlayer(t *testing.T) {
	service := newPlayerService()

	created, err := service.CreatePlayer(t.Context(), adminPrincipal, UpsertPlayerInput{
		ClubID:      memory.ClubIDNorthside,
		FirstName:   "Nora",
		LastName:    "Vang",
		DateOfBirth: "2012-08-09",
		Position:    "MID",
		GroupIDs:    []string{memory.GroupIDU12},
	})
	if err != nil {
		t.Fatalf("create player failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated player id")
	}
	if created.FullName() != "Nora Vang" {
		t.Fatalf("unexpected full name: %s", created.FullName())
	}

	fetched, err := service.GetPlayer(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("get player failed: %v", err)
	}
	if fetched.ClubID != memory.ClubIDNorthside {
		t.Fatalf("unexpected club: %s", fetched.ClubID)
	}
}

func TestPlayerService_CreatePlayer_AllowsMissingBirthDate(t *testing.T) {
	service := newPlayerService()

	created, err := service.CreatePlayer(t.Context(), adminPrincipal, UpsertPlayerInput{
		ClubID:    memory.ClubIDNorthside,
		FirstName: "Unknown",
		LastName:  "Age",
	})
	if err != nil {
		t.Fatalf("create player without birth date failed: %v", err)
	}
	if created.DateOfBirth != "" {
		t.Fatalf("expected empty birth date, got %s", created.DateOfBirth)
	}
}

func TestPlayerService_CreatePlayer_RejectsForeignClubAdmin(t *testing.T) {
	service := newPlayerService()

	principal := auth.Principal{UserID: "user-2", Role: auth.RoleClubAdmin, ClubID: memory.ClubIDRiverton}
	_, err := service.CreatePlayer(t.Context(), principal, UpsertPlayerInput{
		ClubID:    memory.ClubIDNorthside,
		FirstName: "Intruder",
		LastName:  "Player",
	})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestPlayerService_CreatePlayer_RejectsUnknownGroup(t *testing.T) {
	service := newPlayerService()

	_, err := service.CreatePlayer(t.Context(), adminPrincipal, UpsertPlayerInput{
		ClubID:    memory.ClubIDNorthside,
		FirstName: "Ghost",
		LastName:  "Group",
		GroupIDs:  []string{"grp-missing"},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPlayerService_UpdatePlayer_KeepsClubWhenOmitted(t *testing.T) {
	service := newPlayerService()

	updated, err := service.UpdatePlayer(t.Context(), adminPrincipal, "north-p01", UpsertPlayerInput{
		FirstName:   "Jonas",
		LastName:    "Vik",
		DateOfBirth: "1996-04-12",
		GroupIDs:    []string{memory.GroupIDMen},
	})
	if err != nil {
		t.Fatalf("update player failed: %v", err)
	}
	if updated.ClubID != memory.ClubIDNorthside {
		t.Fatalf("expected club preserved, got %s", updated.ClubID)
	}
}

func TestPlayerService_UpdatePlayer_RejectsForeignClubTransfer(t *testing.T) {
	service := newPlayerService()

	// A Riverton club admin may not pull a Northside player into Riverton.
	principal := auth.Principal{UserID: "user-3", Role: auth.RoleClubAdmin, ClubID: memory.ClubIDRiverton}
	_, err := service.UpdatePlayer(t.Context(), principal, "north-p01", UpsertPlayerInput{
		ClubID:    memory.ClubIDRiverton,
		FirstName: "Jonas",
		LastName:  "Vik",
	})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	kept, err := service.GetPlayer(t.Context(), "north-p01")
	if err != nil {
		t.Fatalf("get player failed: %v", err)
	}
	if kept.ClubID != memory.ClubIDNorthside {
		t.Fatalf("expected club unchanged, got %s", kept.ClubID)
	}
}

func TestPlayerService_ListPlayersByClub_NotFound(t *testing.T) {
	service := newPlayerService()

	_, err := service.ListPlayersByClub(t.Context(), "club-missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
