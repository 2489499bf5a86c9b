package item

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainItem "stall-marketplace/internal/domain/item"
	domainShop "stall-marketplace/internal/domain/shop"
	"stall-marketplace/internal/logger"
	"stall-marketplace/internal/metrics"
	appErrors "stall-marketplace/pkg/errors"
	"stall-marketplace/pkg/utils"
)

// Service implements catalog use cases for every item kind
type Service struct {
	itemRepo domainItem.Repository
	shopRepo domainShop.Repository
}

// NewService creates a new catalog service
func NewService(itemRepo domainItem.Repository, shopRepo domainShop.Repository) *Service {
	return &Service{
		itemRepo: itemRepo,
		shopRepo: shopRepo,
	}
}

// List returns active items of a kind whose shops are approved and active.
func (s *Service) List(ctx context.Context, kind string) ([]*ItemResponse, error) {
	if _, ok := domainItem.LookupKind(kind); !ok {
		return nil, domainItem.ErrUnknownKind
	}

	items, err := s.itemRepo.List(ctx, &domainItem.Filter{
		Kind:              kind,
		OnlyApprovedShops: true,
		OnlyActive:        true,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]*ItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, ToItemResponse(item))
	}

	return responses, nil
}

func (s *Service) Get(ctx context.Context, kind string, itemID uuid.UUID) (*ItemResponse, error) {
	item, err := s.getOfKind(ctx, kind, itemID)
	if err != nil {
		return nil, err
	}

	shop, err := s.shopRepo.GetByID(ctx, item.ShopID)
	if err != nil {
		if errors.Is(err, domainShop.ErrShopNotFound) {
			return nil, domainItem.ErrItemNotFound
		}
		return nil, err
	}
	if !item.IsActive || domainShop.CanCreateItems(shop) != nil {
		return nil, domainItem.ErrItemNotFound
	}

	return ToItemResponse(item), nil
}

func (s *Service) Create(ctx context.Context, sellerID uuid.UUID, kind string, req *CreateItemRequest) (*ItemResponse, error) {
	catalogKind, ok := domainItem.LookupKind(kind)
	if !ok {
		return nil, domainItem.ErrUnknownKind
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError(utils.ValidationMessage(err), err)
	}
	if err := requireAttributes(catalogKind, req.Attributes); err != nil {
		return nil, err
	}

	shop, err := s.shopRepo.GetBySellerID(ctx, sellerID)
	if err != nil && !errors.Is(err, domainShop.ErrShopNotFound) {
		return nil, err
	}
	if err := domainShop.CanCreateItems(shop); err != nil {
		logger.Warn("Item creation refused by shop gate",
			zap.String("seller_id", sellerID.String()),
			zap.String("kind", kind),
			zap.Error(err),
			zap.String("event", "item_create_refused"),
		)
		return nil, err
	}

	now := time.Now()
	item := &domainItem.Item{
		ID:          uuid.New(),
		ShopID:      shop.ID,
		SellerID:    sellerID,
		Kind:        catalogKind.Slug,
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  *req.Price,
		Stock:       req.Stock,
		ImageRef:    req.ImageRef,
		Attributes:  req.Attributes,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	metrics.ObserveItemCreated(item.Kind)
	logger.Info("Item created",
		zap.String("item_id", item.ID.String()),
		zap.String("shop_id", shop.ID.String()),
		zap.String("kind", item.Kind),
		zap.String("event", "item_created"),
	)

	return ToItemResponse(item), nil
}

func (s *Service) Update(ctx context.Context, sellerID uuid.UUID, kind string, itemID uuid.UUID, req *UpdateItemRequest) (*ItemResponse, error) {
	catalogKind, ok := domainItem.LookupKind(kind)
	if !ok {
		return nil, domainItem.ErrUnknownKind
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError(utils.ValidationMessage(err), err)
	}

	item, err := s.getOwned(ctx, sellerID, kind, itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.PriceCents = *req.Price
	}
	if req.Stock != nil {
		item.Stock = *req.Stock
	}
	if req.ImageRef != nil {
		item.ImageRef = req.ImageRef
	}
	if req.Attributes != nil {
		if err := requireAttributes(catalogKind, req.Attributes); err != nil {
			return nil, err
		}
		item.Attributes = req.Attributes
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	item.UpdatedAt = time.Now()

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	logger.Info("Item updated",
		zap.String("item_id", item.ID.String()),
		zap.String("seller_id", sellerID.String()),
		zap.String("event", "item_updated"),
	)

	return ToItemResponse(item), nil
}

func (s *Service) Delete(ctx context.Context, sellerID uuid.UUID, kind string, itemID uuid.UUID) error {
	if _, ok := domainItem.LookupKind(kind); !ok {
		return domainItem.ErrUnknownKind
	}

	item, err := s.getOwned(ctx, sellerID, kind, itemID)
	if err != nil {
		return err
	}

	if err := s.itemRepo.Delete(ctx, item.ID); err != nil {
		return err
	}

	logger.Info("Item deleted",
		zap.String("item_id", item.ID.String()),
		zap.String("seller_id", sellerID.String()),
		zap.String("event", "item_deleted"),
	)

	return nil
}

func (s *Service) getOfKind(ctx context.Context, kind string, itemID uuid.UUID) (*domainItem.Item, error) {
	if _, ok := domainItem.LookupKind(kind); !ok {
		return nil, domainItem.ErrUnknownKind
	}

	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.Kind != kind {
		return nil, domainItem.ErrItemNotFound
	}
	return item, nil
}

func (s *Service) getOwned(ctx context.Context, sellerID uuid.UUID, kind string, itemID uuid.UUID) (*domainItem.Item, error) {
	item, err := s.getOfKind(ctx, kind, itemID)
	if err != nil {
		return nil, err
	}
	if item.SellerID != sellerID {
		logger.Warn("Item modification by non-owner",
			zap.String("item_id", itemID.String()),
			zap.String("seller_id", sellerID.String()),
			zap.String("event", "item_owner_mismatch"),
		)
		return nil, domainItem.ErrNotItemOwner
	}
	return item, nil
}

func requireAttributes(kind domainItem.Kind, attributes map[string]string) error {
	var missing []string
	for _, name := range kind.RequiredAttributes {
		if strings.TrimSpace(attributes[name]) == "" {
			missing = append(missing, fmt.Sprintf("attributes.%s is required", name))
		}
	}
	if len(missing) > 0 {
		return appErrors.NewValidationError(strings.Join(missing, ", "), domainItem.ErrMissingAttribute)
	}
	return nil
}
