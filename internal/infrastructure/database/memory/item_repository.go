package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	domainItem "stall-marketplace/internal/domain/item"
)

type ItemRepository struct {
	store *Store
}

func (r *ItemRepository) Create(_ context.Context, i *domainItem.Item) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.CreatedAt.IsZero() {
		i.CreatedAt = time.Now()
	}
	i.UpdatedAt = i.CreatedAt

	r.store.items[i.ID] = copyItem(i)
	return nil
}

func (r *ItemRepository) GetByID(_ context.Context, itemID uuid.UUID) (*domainItem.Item, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	i, ok := r.store.items[itemID]
	if !ok {
		return nil, domainItem.ErrItemNotFound
	}
	return copyItem(i), nil
}

func (r *ItemRepository) List(_ context.Context, filter *domainItem.Filter) ([]*domainItem.Item, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if filter == nil {
		filter = &domainItem.Filter{}
	}

	items := make([]*domainItem.Item, 0)
	for _, i := range r.store.items {
		if filter.Kind != "" && i.Kind != filter.Kind {
			continue
		}
		if filter.ShopID != nil && i.ShopID != *filter.ShopID {
			continue
		}
		if filter.SellerID != nil && i.SellerID != *filter.SellerID {
			continue
		}
		if filter.OnlyActive && !i.IsActive {
			continue
		}
		if filter.OnlyApprovedShops {
			shop, ok := r.store.shops[i.ShopID]
			if !ok || !shop.IsApproved() || !shop.IsActive {
				continue
			}
		}
		items = append(items, copyItem(i))
	}

	sort.Slice(items, func(a, b int) bool {
		return items[a].CreatedAt.After(items[b].CreatedAt)
	})
	return items, nil
}

func (r *ItemRepository) Update(_ context.Context, i *domainItem.Item) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.items[i.ID]; !ok {
		return domainItem.ErrItemNotFound
	}
	i.UpdatedAt = time.Now()
	r.store.items[i.ID] = copyItem(i)
	return nil
}

func (r *ItemRepository) Delete(_ context.Context, itemID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.items[itemID]; !ok {
		return domainItem.ErrItemNotFound
	}
	delete(r.store.items, itemID)
	return nil
}
