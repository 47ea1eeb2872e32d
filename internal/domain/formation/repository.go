package formation

import "context"

// Repository persists admin-defined formations.
type Repository interface {
	List(ctx context.Context) ([]Formation, error)
	Create(ctx context.Context, f Formation) error
}
