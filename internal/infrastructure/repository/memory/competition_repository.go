package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/sportorg/competition-api/internal/domain/competition"
)

type CompetitionRepository struct {
	mu    sync.RWMutex
	index map[string]competition.Competition
	order []string
}

func NewCompetitionRepository(competitions []competition.Competition) *CompetitionRepository {
	index := make(map[string]competition.Competition, len(competitions))
	order := make([]string, 0, len(competitions))
	for _, c := range competitions {
		index[c.ID] = c
		order = append(order, c.ID)
	}

	return &CompetitionRepository{index: index, order: order}
}

func (r *CompetitionRepository) List(_ context.Context) ([]competition.Competition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]competition.Competition, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.index[id])
	}

	return out, nil
}

func (r *CompetitionRepository) GetByID(_ context.Context, competitionID string) (competition.Competition, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.index[competitionID]
	return c, ok, nil
}

func (r *CompetitionRepository) Create(_ context.Context, c competition.Competition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[c.ID]; exists {
		return fmt.Errorf("competition %s already exists", c.ID)
	}
	r.index[c.ID] = c
	r.order = append(r.order, c.ID)

	return nil
}

func (r *CompetitionRepository) Update(_ context.Context, c competition.Competition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[c.ID]; !exists {
		return fmt.Errorf("competition %s not found", c.ID)
	}
	r.index[c.ID] = c

	return nil
}
