package shop

import (
	"context"

	"github.com/google/uuid"

	domainUser "stall-marketplace/internal/domain/user"
)

// Repository defines the interface for shop repository operations
type Repository interface {
	// CreateWithSeller persists a seller account and its shop atomically.
	CreateWithSeller(ctx context.Context, seller *domainUser.User, shop *Shop) error
	GetByID(ctx context.Context, shopID uuid.UUID) (*Shop, error)
	GetBySellerID(ctx context.Context, sellerID uuid.UUID) (*Shop, error)
	List(ctx context.Context, filter *Filter) ([]*Shop, error)
	// UpdateReview writes status, rejection reason and reviewer in one statement.
	UpdateReview(ctx context.Context, shop *Shop) error
	SetOpen(ctx context.Context, shopID uuid.UUID, open bool) error
}
