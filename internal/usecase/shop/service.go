package shop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainShop "stall-marketplace/internal/domain/shop"
	"stall-marketplace/internal/events"
	"stall-marketplace/internal/logger"
	"stall-marketplace/internal/metrics"
	appErrors "stall-marketplace/pkg/errors"
	"stall-marketplace/pkg/utils"
)

// Service implements the shop lifecycle use cases
type Service struct {
	shopRepo  domainShop.Repository
	publisher events.Publisher
	now       func() time.Time
}

// NewService creates a new shop service
func NewService(shopRepo domainShop.Repository, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &Service{
		shopRepo:  shopRepo,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *Service) ListPublic(ctx context.Context, query *PublicShopQuery) ([]*ShopResponse, error) {
	if err := utils.ValidateStruct(query); err != nil {
		return nil, appErrors.NewValidationError(utils.ValidationMessage(err), err)
	}

	approved := domainShop.StatusApproved
	filter := &domainShop.Filter{
		Status:     &approved,
		OnlyActive: true,
		Floor:      query.Floor,
		Search:     query.Search,
		Sort:       query.Sort,
	}
	if query.Category != "" {
		category := domainShop.Category(query.Category)
		filter.Category = &category
	}

	shops, err := s.shopRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return toShopResponses(shops), nil
}

// GetPublic returns a shop only while it is approved and active.
func (s *Service) GetPublic(ctx context.Context, shopID uuid.UUID) (*ShopResponse, error) {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if !shop.IsApproved() || !shop.IsActive {
		return nil, domainShop.ErrShopNotFound
	}

	return ToShopResponse(shop), nil
}

func (s *Service) ListForAdmin(ctx context.Context, scope string, query *AdminShopQuery) ([]*ShopResponse, error) {
	if err := utils.ValidateStruct(query); err != nil {
		return nil, appErrors.NewValidationError(utils.ValidationMessage(err), err)
	}

	filter := &domainShop.Filter{
		Search: query.Search,
		Sort:   query.Sort,
	}
	if query.Category != "" {
		category := domainShop.Category(query.Category)
		filter.Category = &category
	}

	switch scope {
	case ScopePending, ScopeApproved, ScopeRejected:
		status := domainShop.Status(scope)
		filter.Status = &status
	case ScopeAll:
		filter.IsApproved = query.IsApproved
	default:
		return nil, appErrors.NewBadRequest(fmt.Sprintf("unknown shop scope %q", scope))
	}

	shops, err := s.shopRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return toShopResponses(shops), nil
}

func (s *Service) Approve(ctx context.Context, adminID, shopID uuid.UUID) (*ShopResponse, error) {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	previous := shop.Status
	if err := shop.Approve(adminID, s.now()); err != nil {
		return nil, err
	}

	if err := s.shopRepo.UpdateReview(ctx, shop); err != nil {
		return nil, err
	}

	metrics.ObserveShopTransition(string(previous), string(shop.Status))
	logger.Info("Shop approved",
		zap.String("shop_id", shop.ID.String()),
		zap.String("seller_id", shop.SellerID.String()),
		zap.String("admin_id", adminID.String()),
		zap.String("previous_status", string(previous)),
		zap.String("event", "shop_approved"),
	)
	s.publish(ctx, events.TypeShopApproved, shop)

	return ToShopResponse(shop), nil
}

func (s *Service) Reject(ctx context.Context, adminID, shopID uuid.UUID, req *RejectShopRequest) (*ShopResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError(utils.ValidationMessage(err), err)
	}

	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	previous := shop.Status
	if err := shop.Reject(adminID, req.Reason, s.now()); err != nil {
		return nil, err
	}

	if err := s.shopRepo.UpdateReview(ctx, shop); err != nil {
		return nil, err
	}

	metrics.ObserveShopTransition(string(previous), string(shop.Status))
	logger.Info("Shop rejected",
		zap.String("shop_id", shop.ID.String()),
		zap.String("seller_id", shop.SellerID.String()),
		zap.String("admin_id", adminID.String()),
		zap.String("reason", *shop.RejectionReason),
		zap.String("event", "shop_rejected"),
	)
	s.publish(ctx, events.TypeShopRejected, shop)

	return ToShopResponse(shop), nil
}

func (s *Service) GetMyShop(ctx context.Context, sellerID uuid.UUID) (*ShopResponse, error) {
	shop, err := s.shopRepo.GetBySellerID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	return ToShopResponse(shop), nil
}

// ToggleOpen flips the open flag of the seller's own shop.
func (s *Service) ToggleOpen(ctx context.Context, sellerID uuid.UUID) (*ShopResponse, error) {
	shop, err := s.shopRepo.GetBySellerID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	shop.IsOpen = !shop.IsOpen
	if err := s.shopRepo.SetOpen(ctx, shop.ID, shop.IsOpen); err != nil {
		return nil, err
	}

	logger.Info("Shop open status toggled",
		zap.String("shop_id", shop.ID.String()),
		zap.String("seller_id", sellerID.String()),
		zap.Bool("is_open", shop.IsOpen),
		zap.String("event", "shop_toggled"),
	)
	s.publish(ctx, events.TypeShopToggled, shop)

	return ToShopResponse(shop), nil
}

// NotifySubmitted announces a freshly registered shop awaiting review.
func (s *Service) NotifySubmitted(ctx context.Context, shop *domainShop.Shop) {
	s.publish(ctx, events.TypeShopSubmitted, shop)
}

// publish is best effort: a broker outage never fails the admin action.
func (s *Service) publish(ctx context.Context, eventType string, shop *domainShop.Shop) {
	err := s.publisher.PublishShopEvent(ctx, events.ShopEvent{
		Type:            eventType,
		ShopID:          shop.ID,
		SellerID:        shop.SellerID,
		ShopName:        shop.ShopName,
		Status:          string(shop.Status),
		IsOpen:          shop.IsOpen,
		RejectionReason: shop.RejectionReason,
		ReviewedBy:      shop.ReviewedBy,
		OccurredAt:      s.now(),
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("Failed to publish shop event",
			zap.String("shop_id", shop.ID.String()),
			zap.String("type", eventType),
			zap.Error(err),
		)
	}
}
