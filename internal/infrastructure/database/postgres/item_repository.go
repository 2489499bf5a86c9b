package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainItem "stall-marketplace/internal/domain/item"
	domainShop "stall-marketplace/internal/domain/shop"
	"stall-marketplace/internal/infrastructure/database/postgres/models"
)

// ItemRepository implements domainItem.Repository
type ItemRepository struct {
	db *DB
}

// NewItemRepository creates a new catalog item repository
func NewItemRepository(db *DB) domainItem.Repository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Create(ctx context.Context, i *domainItem.Item) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.CreatedAt.IsZero() {
		i.CreatedAt = time.Now()
	}
	i.UpdatedAt = i.CreatedAt

	dbModel := toItemModel(i)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	i.ID = dbModel.ID
	return nil
}

func (r *ItemRepository) GetByID(ctx context.Context, itemID uuid.UUID) (*domainItem.Item, error) {
	var dbModel models.ItemModel
	err := r.db.DB.WithContext(ctx).Where("id = ?", itemID).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainItem.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return toItemEntity(&dbModel), nil
}

func (r *ItemRepository) List(ctx context.Context, filter *domainItem.Filter) ([]*domainItem.Item, error) {
	var dbModels []models.ItemModel

	db := r.db.DB.WithContext(ctx).Model(&models.ItemModel{})
	if filter == nil {
		filter = &domainItem.Filter{}
	}

	if filter.OnlyApprovedShops {
		db = db.Joins("JOIN shops ON shops.id = items.shop_id").
			Where("shops.status = ? AND shops.is_active = ?", string(domainShop.StatusApproved), true)
	}
	if filter.Kind != "" {
		db = db.Where("items.kind = ?", filter.Kind)
	}
	if filter.ShopID != nil {
		db = db.Where("items.shop_id = ?", *filter.ShopID)
	}
	if filter.SellerID != nil {
		db = db.Where("items.seller_id = ?", *filter.SellerID)
	}
	if filter.OnlyActive {
		db = db.Where("items.is_active = ?", true)
	}

	if err := db.Order("items.created_at DESC").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	items := make([]*domainItem.Item, len(dbModels))
	for i := range dbModels {
		items[i] = toItemEntity(&dbModels[i])
	}

	return items, nil
}

func (r *ItemRepository) Update(ctx context.Context, i *domainItem.Item) error {
	i.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).Model(&models.ItemModel{}).
		Where("id = ?", i.ID).
		Updates(map[string]interface{}{
			"name":        i.Name,
			"description": i.Description,
			"price_cents": i.PriceCents,
			"stock":       i.Stock,
			"image_ref":   i.ImageRef,
			"attributes":  models.Attributes(i.Attributes),
			"is_active":   i.IsActive,
			"updated_at":  i.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainItem.ErrItemNotFound
	}

	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, itemID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Delete(&models.ItemModel{}, "id = ?", itemID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete item: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return domainItem.ErrItemNotFound
	}

	return nil
}

func toItemModel(i *domainItem.Item) *models.ItemModel {
	return &models.ItemModel{
		ID:          i.ID,
		ShopID:      i.ShopID,
		SellerID:    i.SellerID,
		Kind:        i.Kind,
		Name:        i.Name,
		Description: i.Description,
		PriceCents:  i.PriceCents,
		Stock:       i.Stock,
		ImageRef:    i.ImageRef,
		Attributes:  models.Attributes(i.Attributes),
		IsActive:    i.IsActive,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func toItemEntity(m *models.ItemModel) *domainItem.Item {
	return &domainItem.Item{
		ID:          m.ID,
		ShopID:      m.ShopID,
		SellerID:    m.SellerID,
		Kind:        m.Kind,
		Name:        m.Name,
		Description: m.Description,
		PriceCents:  m.PriceCents,
		Stock:       m.Stock,
		ImageRef:    m.ImageRef,
		Attributes:  map[string]string(m.Attributes),
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
