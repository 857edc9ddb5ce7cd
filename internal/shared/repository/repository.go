package repository

import "context"

// Repository is the generic data access contract shared by the catalog
// entities. Mutations report whether at least one row changed.
type Repository[T any] interface {
	FindAll(ctx context.Context) ([]T, error)
	// FindByID returns apperr.ErrNotFound when no entity has the id.
	FindByID(ctx context.Context, id int64) (*T, error)
	// Create writes the store-assigned id back into entity.
	Create(ctx context.Context, entity *T) (bool, error)
	Update(ctx context.Context, entity *T) (bool, error)
	Delete(ctx context.Context, entity *T) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
	// Save commits whatever the repository has staged. Nothing staged is reported as false.
	Save(ctx context.Context) (bool, error)
}
