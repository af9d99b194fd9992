package memory

import (
	"context"
	"sync"

	"github.com/sportorg/competition-api/internal/domain/place"
)

type PlaceRepository struct {
	mu     sync.RWMutex
	places []place.Place
}

func NewPlaceRepository(places []place.Place) *PlaceRepository {
	return &PlaceRepository{places: places}
}

func (r *PlaceRepository) List(_ context.Context) ([]place.Place, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]place.Place, 0, len(r.places))
	out = append(out, r.places...)

	return out, nil
}
