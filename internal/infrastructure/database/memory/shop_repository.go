package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	domainShop "stall-marketplace/internal/domain/shop"
	domainUser "stall-marketplace/internal/domain/user"
)

type ShopRepository struct {
	store *Store
}

func (r *ShopRepository) CreateWithSeller(_ context.Context, seller *domainUser.User, s *domainShop.Shop) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.shops {
		if existing.SellerID == seller.ID && seller.ID != uuid.Nil {
			return domainShop.ErrShopAlreadyExists
		}
	}
	if err := r.store.insertUser(seller); err != nil {
		return err
	}

	s.SellerID = seller.ID
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	s.UpdatedAt = s.CreatedAt
	s.Version = 1

	r.store.shops[s.ID] = copyShop(s)
	return nil
}

func (r *ShopRepository) GetByID(_ context.Context, shopID uuid.UUID) (*domainShop.Shop, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	s, ok := r.store.shops[shopID]
	if !ok {
		return nil, domainShop.ErrShopNotFound
	}
	return copyShop(s), nil
}

func (r *ShopRepository) GetBySellerID(_ context.Context, sellerID uuid.UUID) (*domainShop.Shop, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, s := range r.store.shops {
		if s.SellerID == sellerID {
			return copyShop(s), nil
		}
	}
	return nil, domainShop.ErrShopNotFound
}

func (r *ShopRepository) List(_ context.Context, filter *domainShop.Filter) ([]*domainShop.Shop, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if filter == nil {
		filter = &domainShop.Filter{}
	}
	search := strings.ToLower(filter.Search)

	shops := make([]*domainShop.Shop, 0, len(r.store.shops))
	for _, s := range r.store.shops {
		switch {
		case filter.Status != nil && s.Status != *filter.Status,
			filter.IsApproved != nil && s.IsApproved() != *filter.IsApproved,
			filter.OnlyActive && !s.IsActive,
			filter.Category != nil && s.Category != *filter.Category,
			filter.Floor != "" && s.FloorNumber != filter.Floor,
			search != "" && !strings.Contains(strings.ToLower(s.ShopName), search) &&
				!strings.Contains(strings.ToLower(s.Description), search):
			continue
		}
		shops = append(shops, copyShop(s))
	}

	sort.Slice(shops, func(i, j int) bool {
		switch filter.Sort {
		case domainShop.SortOldest:
			return shops[i].CreatedAt.Before(shops[j].CreatedAt)
		case domainShop.SortName:
			return shops[i].ShopName < shops[j].ShopName
		default:
			return shops[i].CreatedAt.After(shops[j].CreatedAt)
		}
	})
	return shops, nil
}

func (r *ShopRepository) UpdateReview(_ context.Context, s *domainShop.Shop) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.shops[s.ID]
	if !ok {
		return domainShop.ErrShopNotFound
	}

	current.Status = s.Status
	current.RejectionReason = s.RejectionReason
	current.ReviewedBy = s.ReviewedBy
	current.ReviewedAt = s.ReviewedAt
	current.Version++
	current.UpdatedAt = time.Now()

	s.Version = current.Version
	s.UpdatedAt = current.UpdatedAt
	return nil
}

func (r *ShopRepository) SetOpen(_ context.Context, shopID uuid.UUID, open bool) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	s, ok := r.store.shops[shopID]
	if !ok {
		return domainShop.ErrShopNotFound
	}
	s.IsOpen = open
	s.UpdatedAt = time.Now()
	return nil
}

// SetActive is not part of the repository contract; tests use it to suspend a shop.
func (r *ShopRepository) SetActive(shopID uuid.UUID, active bool) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	s, ok := r.store.shops[shopID]
	if !ok {
		return domainShop.ErrShopNotFound
	}
	s.IsActive = active
	return nil
}
