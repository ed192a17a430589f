package domain

import "context"

// Repository is the data-access contract for one entity type.
// Missing records are reported as *NotFoundError, never as a nil entity.
type Repository[T any] interface {
	GetAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, e *T) error
	Update(ctx context.Context, e *T) error
	Delete(ctx context.Context, e *T) error
}
