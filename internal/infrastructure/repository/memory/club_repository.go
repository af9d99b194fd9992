package memory

import (
	"context"
	"sync"

	"github.com/sportorg/competition-api/internal/domain/club"
)

type ClubRepository struct {
	mu    sync.RWMutex
	clubs []club.Club
	index map[string]club.Club
}

func NewClubRepository(clubs []club.Club) *ClubRepository {
	index := make(map[string]club.Club, len(clubs))
	for _, c := range clubs {
		index[c.ID] = c
	}

	return &ClubRepository{clubs: clubs, index: index}
}

func (r *ClubRepository) List(_ context.Context) ([]club.Club, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]club.Club, 0, len(r.clubs))
	out = append(out, r.clubs...)

	return out, nil
}

func (r *ClubRepository) GetByID(_ context.Context, clubID string) (club.Club, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.index[clubID]
	return c, ok, nil
}
