package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	ListByClub(ctx context.Context, clubID string) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
	Create(ctx context.Context, p Player) error
	Update(ctx context.Context, p Player) error
}
