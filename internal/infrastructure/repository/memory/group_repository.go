package memory

import (
	"context"
	"sync"

	"github.com/sportorg/competition-api/internal/domain/group"
)

type GroupRepository struct {
	mu     sync.RWMutex
	groups []group.Group
	index  map[string]group.Group
}

func NewGroupRepository(groups []group.Group) *GroupRepository {
	index := make(map[string]group.Group, len(groups))
	for _, g := range groups {
		index[g.ID] = g
	}

	return &GroupRepository{groups: groups, index: index}
}

func (r *GroupRepository) List(_ context.Context) ([]group.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]group.Group, 0, len(r.groups))
	out = append(out, r.groups...)

	return out, nil
}

func (r *GroupRepository) GetByIDs(_ context.Context, groupIDs []string) ([]group.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]group.Group, 0, len(groupIDs))
	for _, id := range groupIDs {
		g, ok := r.index[id]
		if !ok {
			continue
		}
		out = append(out, g)
	}

	return out, nil
}
