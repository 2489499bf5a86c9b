package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainShop "stall-marketplace/internal/domain/shop"
	domainUser "stall-marketplace/internal/domain/user"
	"stall-marketplace/internal/infrastructure/database/postgres/models"
)

// ShopRepository implements domainShop.Repository
type ShopRepository struct {
	db *DB
}

// NewShopRepository creates a new shop repository
func NewShopRepository(db *DB) domainShop.Repository {
	return &ShopRepository{db: db}
}

func (r *ShopRepository) CreateWithSeller(ctx context.Context, seller *domainUser.User, s *domainShop.Shop) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := createUser(tx, seller); err != nil {
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

		dbModel := toShopModel(s)
		if err := tx.Create(dbModel).Error; err != nil {
			if constraint, ok := violatedUnique(err); ok && constraint == idxShopsSellerID {
				return domainShop.ErrShopAlreadyExists
			}
			return fmt.Errorf("failed to create shop: %w", err)
		}

		s.ID = dbModel.ID
		return nil
	})
}

func (r *ShopRepository) GetByID(ctx context.Context, shopID uuid.UUID) (*domainShop.Shop, error) {
	return r.getBy(ctx, "id = ?", shopID)
}

func (r *ShopRepository) GetBySellerID(ctx context.Context, sellerID uuid.UUID) (*domainShop.Shop, error) {
	return r.getBy(ctx, "seller_id = ?", sellerID)
}

func (r *ShopRepository) getBy(ctx context.Context, query string, arg interface{}) (*domainShop.Shop, error) {
	var dbModel models.ShopModel
	err := r.db.DB.WithContext(ctx).Where(query, arg).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainShop.ErrShopNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shop: %w", err)
	}

	return toShopEntity(&dbModel), nil
}

func (r *ShopRepository) List(ctx context.Context, filter *domainShop.Filter) ([]*domainShop.Shop, error) {
	var dbModels []models.ShopModel

	db := r.db.DB.WithContext(ctx).Model(&models.ShopModel{})
	if filter == nil {
		filter = &domainShop.Filter{}
	}

	if filter.Status != nil {
		db = db.Where("status = ?", string(*filter.Status))
	}
	if filter.IsApproved != nil {
		db = db.Where("is_approved = ?", *filter.IsApproved)
	}
	if filter.OnlyActive {
		db = db.Where("is_active = ?", true)
	}
	if filter.Category != nil {
		db = db.Where("category = ?", string(*filter.Category))
	}
	if filter.Floor != "" {
		db = db.Where("floor_number = ?", filter.Floor)
	}
	if filter.Search != "" {
		search := containsPattern(filter.Search)
		db = db.Where("shop_name ILIKE ? OR description ILIKE ?", search, search)
	}

	var order string
	switch filter.Sort {
	case domainShop.SortOldest:
		order = "created_at ASC"
	case domainShop.SortName:
		order = "shop_name ASC"
	default:
		order = "created_at DESC"
	}

	if err := db.Order(order).Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list shops: %w", err)
	}

	shops := make([]*domainShop.Shop, len(dbModels))
	for i := range dbModels {
		shops[i] = toShopEntity(&dbModels[i])
	}

	return shops, nil
}

// UpdateReview is a single UPDATE; concurrent reviews resolve as last writer wins.
func (r *ShopRepository) UpdateReview(ctx context.Context, s *domainShop.Shop) error {
	s.UpdatedAt = time.Now()

	dbModel := models.ShopModel{ID: s.ID}
	result := r.db.DB.WithContext(ctx).Model(&dbModel).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "version"}}}).
		Updates(map[string]interface{}{
			"status":           string(s.Status),
			"is_approved":      s.IsApproved(),
			"rejection_reason": s.RejectionReason,
			"reviewed_by":      s.ReviewedBy,
			"reviewed_at":      s.ReviewedAt,
			"version":          gorm.Expr("version + 1"),
			"updated_at":       s.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update shop review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainShop.ErrShopNotFound
	}

	s.Version = dbModel.Version
	return nil
}

func (r *ShopRepository) SetOpen(ctx context.Context, shopID uuid.UUID, open bool) error {
	result := r.db.DB.WithContext(ctx).Model(&models.ShopModel{}).
		Where("id = ?", shopID).
		Updates(map[string]interface{}{
			"is_open":    open,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update shop: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainShop.ErrShopNotFound
	}

	return nil
}

func toShopModel(s *domainShop.Shop) *models.ShopModel {
	return &models.ShopModel{
		ID:              s.ID,
		SellerID:        s.SellerID,
		ShopName:        s.ShopName,
		Category:        string(s.Category),
		StallNumber:     s.StallNumber,
		FloorNumber:     s.FloorNumber,
		Description:     s.Description,
		ShopLogo:        s.ShopLogo,
		IsActive:        s.IsActive,
		IsOpen:          s.IsOpen,
		Status:          string(s.Status),
		IsApproved:      s.IsApproved(),
		RejectionReason: s.RejectionReason,
		ReviewedBy:      s.ReviewedBy,
		ReviewedAt:      s.ReviewedAt,
		Version:         s.Version,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func toShopEntity(m *models.ShopModel) *domainShop.Shop {
	return &domainShop.Shop{
		ID:              m.ID,
		SellerID:        m.SellerID,
		ShopName:        m.ShopName,
		Category:        domainShop.Category(m.Category),
		StallNumber:     m.StallNumber,
		FloorNumber:     m.FloorNumber,
		Description:     m.Description,
		ShopLogo:        m.ShopLogo,
		IsActive:        m.IsActive,
		IsOpen:          m.IsOpen,
		Status:          domainShop.Status(m.Status),
		RejectionReason: m.RejectionReason,
		ReviewedBy:      m.ReviewedBy,
		ReviewedAt:      m.ReviewedAt,
		Version:         m.Version,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// containsPattern matches term literally inside ILIKE; backslash is the
// default escape character in Postgres.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
