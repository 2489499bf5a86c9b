package item

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for catalog item persistence
type Repository interface {
	Create(ctx context.Context, item *Item) error
	GetByID(ctx context.Context, itemID uuid.UUID) (*Item, error)
	List(ctx context.Context, filter *Filter) ([]*Item, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, itemID uuid.UUID) error
}
