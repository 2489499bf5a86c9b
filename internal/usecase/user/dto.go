package user

import (
	"time"

	"github.com/google/uuid"

	domainUser "stall-marketplace/internal/domain/user"
	shopUsecase "stall-marketplace/internal/usecase/shop"
)

// SellerDetails carries the shop fields a seller must provide at registration.
type SellerDetails struct {
	ShopName    string `json:"shopName" validate:"required,min=2,max=100"`
	Category    string `json:"category" validate:"required,shop_category"`
	StallNumber string `json:"stallNumber" validate:"required,max=20"`
	FloorNumber string `json:"floorNumber" validate:"required,max=20"`
	Description string `json:"description" validate:"required,max=1000"`
	ShopLogo    string `json:"shopLogo" validate:"required,max=500"`
}

type RegisterRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=20,username"`
	Email    string  `json:"email" validate:"required,email,max=255"`
	Password string  `json:"password" validate:"required,min=6,max=72"`
	UserType string  `json:"userType" validate:"omitempty,user_type"`
	Avatar   *string `json:"avatar" validate:"omitempty,max=500"`

	SellerDetails `validate:"-"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=72,nefield=CurrentPassword"`
}

type UpdateProfileRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=20,username"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Avatar   *string `json:"avatar" validate:"omitempty,max=500"`
}

type UpdateStatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

type ListUsersQuery struct {
	UserType string `form:"userType" validate:"omitempty,oneof=customer seller admin"`
	IsActive *bool  `form:"isActive"`
}

type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	UserType   string    `json:"userType"`
	Role       string    `json:"role"`
	Avatar     *string   `json:"avatar,omitempty"`
	IsActive   bool      `json:"isActive"`
	IsApproved bool      `json:"isApproved"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// AccountResponse is a user plus, for sellers, their shop.
type AccountResponse struct {
	User *UserResponse              `json:"user"`
	Shop *shopUsecase.ShopResponse `json:"shop,omitempty"`
}

type AuthResponse struct {
	User      *UserResponse `json:"user"`
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
}

func ToUserResponse(u *domainUser.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		UserType:   string(u.UserType),
		Role:       string(u.Role),
		Avatar:     u.Avatar,
		IsActive:   u.IsActive,
		IsApproved: u.IsApproved,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
