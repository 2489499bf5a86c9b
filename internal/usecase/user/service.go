package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stall-marketplace/internal/config"
	domainShop "stall-marketplace/internal/domain/shop"
	domainUser "stall-marketplace/internal/domain/user"
	"stall-marketplace/internal/logger"
	"stall-marketplace/internal/metrics"
	shopUsecase "stall-marketplace/internal/usecase/shop"
	appErrors "stall-marketplace/pkg/errors"
	"stall-marketplace/pkg/utils"
)

// SubmissionNotifier is told about shops created through seller registration.
type SubmissionNotifier interface {
	NotifySubmitted(ctx context.Context, shop *domainShop.Shop)
}

// Service implements user use cases
type Service struct {
	userRepo domainUser.Repository
	shopRepo domainShop.Repository
	notifier SubmissionNotifier
	config   *config.Config
}

// NewService creates a new user service
func NewService(
	userRepo domainUser.Repository,
	shopRepo domainShop.Repository,
	notifier SubmissionNotifier,
	cfg *config.Config,
) *Service {
	return &Service{
		userRepo: userRepo,
		shopRepo: shopRepo,
		notifier: notifier,
		config:   cfg,
	}
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AccountResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError(utils.ValidationMessage(err), err)
	}

	userType := domainUser.UserType(req.UserType)
	if userType == "" {
		userType = domainUser.TypeCustomer
	}
	if userType == domainUser.TypeSeller {
		if err := utils.ValidateStruct(&req.SellerDetails); err != nil {
			return nil, appErrors.NewValidationError(utils.ValidationMessage(err), err)
		}
	}

	email := req.Email
	if err := s.ensureUnique(ctx, uuid.Nil, req.Username, email); err != nil {
		logger.Warn("Registration attempt with taken identity",
			zap.String("email", email),
			zap.String("username", req.Username),
			zap.Error(err),
			zap.String("event", "registration_failed_duplicate"),
		)
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domainUser.User{
		ID:             uuid.New(),
		Username:       req.Username,
		Email:          email,
		PasswordHashed: hashedPassword,
		UserType:       userType,
		Role:           domainUser.RoleUser,
		Avatar:         req.Avatar,
		IsActive:       true,
		IsApproved:     userType == domainUser.TypeCustomer,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if userType != domainUser.TypeSeller {
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}

		logger.Info("User registered successfully",
			zap.String("user_id", user.ID.String()),
			zap.String("email", user.Email),
			zap.String("username", user.Username),
			zap.String("user_type", string(user.UserType)),
			zap.String("event", "user_registered"),
		)
		return &AccountResponse{User: ToUserResponse(user)}, nil
	}

	shop := &domainShop.Shop{
		ID:          uuid.New(),
		SellerID:    user.ID,
		ShopName:    req.ShopName,
		Category:    domainShop.Category(req.Category),
		StallNumber: req.StallNumber,
		FloorNumber: req.FloorNumber,
		Description: req.Description,
		ShopLogo:    req.ShopLogo,
		IsActive:    true,
		IsOpen:      true,
		Status:      domainShop.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.shopRepo.CreateWithSeller(ctx, user, shop); err != nil {
		return nil, err
	}

	logger.Info("Seller registered with pending shop",
		zap.String("user_id", user.ID.String()),
		zap.String("shop_id", shop.ID.String()),
		zap.String("shop_name", shop.ShopName),
		zap.String("event", "seller_registered"),
	)
	if s.notifier != nil {
		s.notifier.NotifySubmitted(ctx, shop)
	}

	return &AccountResponse{
		User: ToUserResponse(user),
		Shop: shopUsecase.ToShopResponse(shop),
	}, nil
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError(utils.ValidationMessage(err), err)
	}

	email := req.Email
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Warn("Login attempt with non-existent email",
				zap.String("email", email),
				zap.String("event", "user_not_found"),
			)
			metrics.ObserveLogin("invalid_credentials")
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(user.PasswordHashed, req.Password) {
		logger.Warn("Login attempt with invalid password",
			zap.String("user_id", user.ID.String()),
			zap.String("email", user.Email),
			zap.String("event", "login_failed_invalid_password"),
		)
		metrics.ObserveLogin("invalid_credentials")
		return nil, appErrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		logger.Warn("Login attempt for inactive user",
			zap.String("user_id", user.ID.String()),
			zap.String("email", user.Email),
			zap.String("event", "login_failed_inactive_user"),
		)
		metrics.ObserveLogin("inactive")
		return nil, domainUser.ErrUserInactive
	}

	token, expiresAt, err := utils.GenerateToken(utils.TokenClaims{
		UserID:   user.ID,
		Email:    user.Email,
		Role:     user.PermissionLevel().String(),
		Username: user.Username,
	}, s.config.JWT.Secret, s.config.JWT.TokenTTL())
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	metrics.ObserveLogin("success")
	logger.Info("User logged in successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("permission", user.PermissionLevel().String()),
		zap.String("event", "login_success"),
	)

	return &AuthResponse{
		User:      ToUserResponse(user),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// GetProfile returns the live account.
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*AccountResponse, error) {
	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &AccountResponse{User: ToUserResponse(user)}
	if user.IsSeller() {
		shop, err := s.shopRepo.GetBySellerID(ctx, user.ID)
		switch {
		case err == nil:
			resp.Shop = shopUsecase.ToShopResponse(shop)
		case !errors.Is(err, domainShop.ErrShopNotFound):
			return nil, err
		}
	}

	return resp, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*UserResponse, error) {
	if req.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*req.Email))
		req.Email = &normalized
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError(utils.ValidationMessage(err), err)
	}

	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var username, email string
	if req.Username != nil && *req.Username != user.Username {
		username = *req.Username
	}
	if req.Email != nil && *req.Email != user.Email {
		email = *req.Email
	}
	if err := s.ensureUnique(ctx, user.ID, username, email); err != nil {
		return nil, err
	}

	if username != "" {
		user.Username = username
	}
	if email != "" {
		user.Email = email
	}
	if req.Avatar != nil {
		user.Avatar = req.Avatar
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("Profile updated",
		zap.String("user_id", user.ID.String()),
		zap.String("event", "profile_updated"),
	)

	return ToUserResponse(user), nil
}

func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, req *ChangePasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewValidationError(utils.ValidationMessage(err), err)
	}

	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return err
	}

	if !utils.CheckPassword(user.PasswordHashed, req.CurrentPassword) {
		logger.Warn("Password change attempt with invalid current password",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "password_change_failed_invalid_current_password"),
		)
		return appErrors.ErrWrongCurrentPassword
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		return err
	}

	logger.Info("Password changed successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("event", "password_change_success"),
	)

	return nil
}

func (s *Service) ListUsers(ctx context.Context, query *ListUsersQuery) ([]*UserResponse, error) {
	if err := utils.ValidateStruct(query); err != nil {
		return nil, appErrors.NewValidationError(utils.ValidationMessage(err), err)
	}

	filter := &domainUser.Filter{IsActive: query.IsActive}
	if query.UserType != "" {
		userType := domainUser.UserType(query.UserType)
		filter.UserType = &userType
	}

	users, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, ToUserResponse(user))
	}

	return responses, nil
}

// SetActive toggles an account. Admins cannot deactivate themselves.
func (s *Service) SetActive(ctx context.Context, adminID, userID uuid.UUID, req *UpdateStatusRequest) (*UserResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError(utils.ValidationMessage(err), err)
	}
	if adminID == userID && !*req.IsActive {
		return nil, appErrors.NewBadRequest("administrators cannot deactivate their own account")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SetActive(ctx, userID, *req.IsActive); err != nil {
		return nil, err
	}
	user.IsActive = *req.IsActive

	logger.Info("User status changed",
		zap.String("user_id", userID.String()),
		zap.String("admin_id", adminID.String()),
		zap.Bool("is_active", user.IsActive),
		zap.String("event", "user_status_changed"),
	)

	return ToUserResponse(user), nil
}

// SeedAdmin creates the bootstrap administrator once. It is a no-op when the
// account already exists or no credentials are configured.
func (s *Service) SeedAdmin(ctx context.Context, cfg config.AdminConfig) error {
	if cfg.Email == "" || cfg.Password == "" {
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(cfg.Email))
	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domainUser.ErrUserNotFound) {
		return fmt.Errorf("failed to look up admin: %w", err)
	}

	hashedPassword, err := utils.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	admin := &domainUser.User{
		ID:             uuid.New(),
		Username:       cfg.Username,
		Email:          email,
		PasswordHashed: hashedPassword,
		UserType:       domainUser.TypeAdmin,
		Role:           domainUser.RoleAdmin,
		IsActive:       true,
		IsApproved:     true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	logger.Info("Bootstrap admin created",
		zap.String("user_id", admin.ID.String()),
		zap.String("email", admin.Email),
		zap.String("event", "admin_seeded"),
	)

	return nil
}

// activeUser loads the live record behind a token. Deactivation wins over an unexpired token.
func (s *Service) activeUser(ctx context.Context, userID uuid.UUID) (*domainUser.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		logger.Warn("Request from deactivated account",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "inactive_user_rejected"),
		)
		return nil, domainUser.ErrUserInactive
	}
	return user, nil
}

// ensureUnique rejects a username or email owned by another account. Empty values are skipped.
func (s *Service) ensureUnique(ctx context.Context, self uuid.UUID, username, email string) error {
	if email != "" {
		existing, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil && !errors.Is(err, domainUser.ErrUserNotFound) {
			return fmt.Errorf("failed to check existing email: %w", err)
		}
		if existing != nil && existing.ID != self {
			return domainUser.ErrEmailAlreadyExists
		}
	}

	if username != "" {
		existing, err := s.userRepo.GetByUsername(ctx, username)
		if err != nil && !errors.Is(err, domainUser.ErrUserNotFound) {
			return fmt.Errorf("failed to check existing username: %w", err)
		}
		if existing != nil && existing.ID != self {
			return domainUser.ErrUsernameAlreadyExists
		}
	}

	return nil
}
