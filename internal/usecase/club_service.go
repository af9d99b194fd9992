package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sportorg/competition-api/internal/domain/club"
	"github.com/sportorg/competition-api/internal/domain/place"
)

type ClubService struct {
	clubRepo  club.Repository
	placeRepo place.Repository
}

func NewClubService(clubRepo club.Repository, placeRepo place.Repository) *ClubService {
	return &ClubService{
		clubRepo:  clubRepo,
		placeRepo: placeRepo,
	}
}

func (s *ClubService) ListClubs(ctx context.Context) ([]club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.ListClubs")
	defer span.End()

	clubs, err := s.clubRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}

	return clubs, nil
}

func (s *ClubService) GetClub(ctx context.Context, clubID string) (club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.GetClub")
	defer span.End()

	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return club.Club{}, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}

	c, exists, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return club.Club{}, fmt.Errorf("get club: %w", err)
	}
	if !exists {
		return club.Club{}, fmt.Errorf("%w: club=%s", ErrNotFound, clubID)
	}

	return c, nil
}

func (s *ClubService) ListPlaces(ctx context.Context) ([]place.Place, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.ListPlaces")
	defer span.End()

	places, err := s.placeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}

	return places, nil
}
