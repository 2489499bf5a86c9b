package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainUser "stall-marketplace/internal/domain/user"
	"stall-marketplace/internal/infrastructure/database/postgres/models"
)

// UserRepository implements domainUser.Repository
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) domainUser.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domainUser.User) error {
	return createUser(r.db.DB.WithContext(ctx), u)
}

func createUser(tx *gorm.DB, u *domainUser.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	u.UpdatedAt = u.CreatedAt

	dbModel := toUserModel(u)
	if err := tx.Create(dbModel).Error; err != nil {
		return translateUserError(err, "failed to create user")
	}

	u.ID = dbModel.ID
	u.CreatedAt = dbModel.CreatedAt
	u.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domainUser.User, error) {
	return r.getBy(ctx, "email = ?", email)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domainUser.User, error) {
	return r.getBy(ctx, "username = ?", username)
}

func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*domainUser.User, error) {
	return r.getBy(ctx, "id = ?", userID)
}

func (r *UserRepository) getBy(ctx context.Context, query string, arg interface{}) (*domainUser.User, error) {
	var dbModel models.UserModel
	err := r.db.DB.WithContext(ctx).Where(query, arg).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainUser.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return toUserEntity(&dbModel), nil
}

func (r *UserRepository) List(ctx context.Context, filter *domainUser.Filter) ([]*domainUser.User, error) {
	var dbModels []models.UserModel

	db := r.db.DB.WithContext(ctx).Model(&models.UserModel{})
	if filter != nil {
		if filter.UserType != nil {
			db = db.Where("user_type = ?", string(*filter.UserType))
		}
		if filter.IsActive != nil {
			db = db.Where("is_active = ?", *filter.IsActive)
		}
	}

	if err := db.Order("created_at DESC").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*domainUser.User, len(dbModels))
	for i := range dbModels {
		users[i] = toUserEntity(&dbModels[i])
	}

	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domainUser.User) error {
	u.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", u.ID).
		Updates(map[string]interface{}{
			"username":   u.Username,
			"email":      u.Email,
			"avatar":     u.Avatar,
			"updated_at": u.UpdatedAt,
		})

	if result.Error != nil {
		return translateUserError(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return domainUser.ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	return r.updateColumns(ctx, userID, map[string]interface{}{
		"password_hashed": passwordHash,
	}, "failed to update password")
}

func (r *UserRepository) SetActive(ctx context.Context, userID uuid.UUID, active bool) error {
	return r.updateColumns(ctx, userID, map[string]interface{}{
		"is_active": active,
	}, "failed to update user status")
}

func (r *UserRepository) updateColumns(ctx context.Context, userID uuid.UUID, columns map[string]interface{}, failure string) error {
	columns["updated_at"] = time.Now()

	result := r.db.DB.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", userID).
		Updates(columns)

	if result.Error != nil {
		return fmt.Errorf("%s: %w", failure, result.Error)
	}
	if result.RowsAffected == 0 {
		return domainUser.ErrUserNotFound
	}

	return nil
}

func translateUserError(err error, failure string) error {
	if constraint, ok := violatedUnique(err); ok {
		switch constraint {
		case idxUsersEmail:
			return domainUser.ErrEmailAlreadyExists
		case idxUsersUsername:
			return domainUser.ErrUsernameAlreadyExists
		}
	}
	return fmt.Errorf("%s: %w", failure, err)
}

func toUserModel(u *domainUser.User) *models.UserModel {
	return &models.UserModel{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		PasswordHashed: u.PasswordHashed,
		UserType:       string(u.UserType),
		Role:           string(u.Role),
		Avatar:         u.Avatar,
		IsActive:       u.IsActive,
		IsApproved:     u.IsApproved,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func toUserEntity(m *models.UserModel) *domainUser.User {
	return &domainUser.User{
		ID:             m.ID,
		Username:       m.Username,
		Email:          m.Email,
		PasswordHashed: m.PasswordHashed,
		UserType:       domainUser.UserType(m.UserType),
		Role:           domainUser.Role(m.Role),
		Avatar:         m.Avatar,
		IsActive:       m.IsActive,
		IsApproved:     m.IsApproved,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
