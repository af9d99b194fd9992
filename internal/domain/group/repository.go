package group

import "context"

type Repository interface {
	List(ctx context.Context) ([]Group, error)
	GetByIDs(ctx context.Context, groupIDs []string) ([]Group, error)
}
