package place

import "context"

type Repository interface {
	List(ctx context.Context) ([]Place, error)
}
