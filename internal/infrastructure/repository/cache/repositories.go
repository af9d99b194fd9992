// Package cache wraps the catalog repositories with an in-process TTL
// cache. Registrations are deliberately not cached; roster syncs must
// always observe the current roster.
package cache

import (
	"context"
	"sort"
	"strings"

	"github.com/sportorg/competition-api/internal/domain/club"
	"github.com/sportorg/competition-api/internal/domain/competition"
	"github.com/sportorg/competition-api/internal/domain/group"
	"github.com/sportorg/competition-api/internal/domain/place"
	"github.com/sportorg/competition-api/internal/domain/player"
	basecache "github.com/sportorg/competition-api/internal/platform/cache"
)

type PlaceRepository struct {
	next  place.Repository
	cache *basecache.Store
}

func NewPlaceRepository(next place.Repository, cache *basecache.Store) *PlaceRepository {
	return &PlaceRepository{next: next, cache: cache}
}

func (r *PlaceRepository) List(ctx context.Context) ([]place.Place, error) {
	v, err := r.cache.GetOrLoad("place:list", func() (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]place.Place(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]place.Place)
	return append([]place.Place(nil), items...), nil
}

type ClubRepository struct {
	next  club.Repository
	cache *basecache.Store
}

func NewClubRepository(next club.Repository, cache *basecache.Store) *ClubRepository {
	return &ClubRepository{next: next, cache: cache}
}

func (r *ClubRepository) List(ctx context.Context) ([]club.Club, error) {
	v, err := r.cache.GetOrLoad("club:list", func() (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]club.Club(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]club.Club)
	return append([]club.Club(nil), items...), nil
}

func (r *ClubRepository) GetByID(ctx context.Context, clubID string) (club.Club, bool, error) {
	v, err := r.cache.GetOrLoad("club:id:"+clubID, func() (any, error) {
		item, exists, err := r.next.GetByID(ctx, clubID)
		if err != nil {
			return nil, err
		}
		return cachedClub{value: item, exists: exists}, nil
	})
	if err != nil {
		return club.Club{}, false, err
	}

	cached, _ := v.(cachedClub)
	return cached.value, cached.exists, nil
}

type cachedClub struct {
	value  club.Club
	exists bool
}

type GroupRepository struct {
	next  group.Repository
	cache *basecache.Store
}

func NewGroupRepository(next group.Repository, cache *basecache.Store) *GroupRepository {
	return &GroupRepository{next: next, cache: cache}
}

func (r *GroupRepository) List(ctx context.Context) ([]group.Group, error) {
	v, err := r.cache.GetOrLoad("group:list", func() (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]group.Group(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]group.Group)
	return append([]group.Group(nil), items...), nil
}

func (r *GroupRepository) GetByIDs(ctx context.Context, groupIDs []string) ([]group.Group, error) {
	ids := append([]string(nil), groupIDs...)
	sort.Strings(ids)
	key := "group:ids:" + strings.Join(ids, ",")

	v, err := r.cache.GetOrLoad(key, func() (any, error) {
		items, err := r.next.GetByIDs(ctx, groupIDs)
		if err != nil {
			return nil, err
		}
		return append([]group.Group(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]group.Group)
	return append([]group.Group(nil), items...), nil
}

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) ListByClub(ctx context.Context, clubID string) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad("player:club:"+clubID, func() (any, error) {
		items, err := r.next.ListByClub(ctx, clubID)
		if err != nil {
			return nil, err
		}
		out := make([]player.Player, 0, len(items))
		for _, item := range items {
			out = append(out, clonePlayer(item))
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	out := make([]player.Player, 0, len(items))
	for _, item := range items {
		out = append(out, clonePlayer(item))
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	v, err := r.cache.GetOrLoad("player:id:"+playerID, func() (any, error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		if err != nil {
			return nil, err
		}
		return cachedPlayer{value: clonePlayer(item), exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	cached, _ := v.(cachedPlayer)
	return clonePlayer(cached.value), cached.exists, nil
}

// GetByIDs is left uncached. Roster sync calls it with arbitrary
// selections and caching per-combination would only pollute the store.
func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	return r.next.GetByIDs(ctx, playerIDs)
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	if err := r.next.Create(ctx, p); err != nil {
		return err
	}
	r.invalidate(p)
	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) error {
	if err := r.next.Update(ctx, p); err != nil {
		return err
	}
	r.invalidate(p)
	return nil
}

func (r *PlayerRepository) invalidate(p player.Player) {
	r.cache.Delete("player:id:" + p.ID)
	r.cache.DeletePrefix("player:club:")
}

type cachedPlayer struct {
	value  player.Player
	exists bool
}

func clonePlayer(p player.Player) player.Player {
	out := p
	out.GroupIDs = append([]string(nil), p.GroupIDs...)
	return out
}

type CompetitionRepository struct {
	next  competition.Repository
	cache *basecache.Store
}

func NewCompetitionRepository(next competition.Repository, cache *basecache.Store) *CompetitionRepository {
	return &CompetitionRepository{next: next, cache: cache}
}

func (r *CompetitionRepository) List(ctx context.Context) ([]competition.Competition, error) {
	v, err := r.cache.GetOrLoad("competition:list", func() (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]competition.Competition, 0, len(items))
		for _, item := range items {
			out = append(out, cloneCompetition(item))
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]competition.Competition)
	out := make([]competition.Competition, 0, len(items))
	for _, item := range items {
		out = append(out, cloneCompetition(item))
	}
	return out, nil
}

func (r *CompetitionRepository) GetByID(ctx context.Context, competitionID string) (competition.Competition, bool, error) {
	v, err := r.cache.GetOrLoad("competition:id:"+competitionID, func() (any, error) {
		item, exists, err := r.next.GetByID(ctx, competitionID)
		if err != nil {
			return nil, err
		}
		return cachedCompetition{value: cloneCompetition(item), exists: exists}, nil
	})
	if err != nil {
		return competition.Competition{}, false, err
	}

	cached, _ := v.(cachedCompetition)
	return cloneCompetition(cached.value), cached.exists, nil
}

func (r *CompetitionRepository) Create(ctx context.Context, c competition.Competition) error {
	if err := r.next.Create(ctx, c); err != nil {
		return err
	}
	r.invalidate(c.ID)
	return nil
}

func (r *CompetitionRepository) Update(ctx context.Context, c competition.Competition) error {
	if err := r.next.Update(ctx, c); err != nil {
		return err
	}
	r.invalidate(c.ID)
	return nil
}

func (r *CompetitionRepository) invalidate(competitionID string) {
	r.cache.Delete("competition:list")
	r.cache.Delete("competition:id:" + competitionID)
}

type cachedCompetition struct {
	value  competition.Competition
	exists bool
}

func cloneCompetition(c competition.Competition) competition.Competition {
	out := c
	out.Groups = append([]competition.Group(nil), c.Groups...)
	return out
}
