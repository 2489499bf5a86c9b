package shop

import (
	"time"

	"github.com/google/uuid"

	domainShop "stall-marketplace/internal/domain/shop"
)

type PublicShopQuery struct {
	Category string `form:"category" validate:"omitempty,shop_category"`
	Floor    string `form:"floor" validate:"omitempty,max=20"`
	Search   string `form:"search" validate:"omitempty,max=100"`
	Sort     string `form:"sort" validate:"omitempty,oneof=newest oldest name"`
}

type AdminShopQuery struct {
	IsApproved *bool  `form:"isApproved"`
	Category   string `form:"category" validate:"omitempty,shop_category"`
	Search     string `form:"search" validate:"omitempty,max=100"`
	Sort       string `form:"sort" validate:"omitempty,oneof=newest oldest name"`
}

type RejectShopRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// Admin listing scopes
const (
	ScopePending  = "pending"
	ScopeApproved = "approved"
	ScopeRejected = "rejected"
	ScopeAll      = "all"
)

type ShopResponse struct {
	ID              uuid.UUID  `json:"id"`
	SellerID        uuid.UUID  `json:"sellerId"`
	ShopName        string     `json:"shopName"`
	Category        string     `json:"category"`
	StallNumber     string     `json:"stallNumber"`
	FloorNumber     string     `json:"floorNumber"`
	Description     string     `json:"description"`
	ShopLogo        string     `json:"shopLogo"`
	IsActive        bool       `json:"isActive"`
	IsOpen          bool       `json:"isOpen"`
	IsApproved      bool       `json:"isApproved"`
	Status          string     `json:"status"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`
	ReviewedAt      *time.Time `json:"reviewedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func ToShopResponse(s *domainShop.Shop) *ShopResponse {
	if s == nil {
		return nil
	}

	resp := &ShopResponse{
		ID:          s.ID,
		SellerID:    s.SellerID,
		ShopName:    s.ShopName,
		Category:    string(s.Category),
		StallNumber: s.StallNumber,
		FloorNumber: s.FloorNumber,
		Description: s.Description,
		ShopLogo:    s.ShopLogo,
		IsActive:    s.IsActive,
		IsOpen:      s.IsOpen,
		IsApproved:  s.IsApproved(),
		Status:      string(s.Status),
		ReviewedAt:  s.ReviewedAt,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if s.Status == domainShop.StatusRejected {
		resp.RejectionReason = s.RejectionReason
	}
	return resp
}

func toShopResponses(shops []*domainShop.Shop) []*ShopResponse {
	responses := make([]*ShopResponse, 0, len(shops))
	for _, s := range shops {
		responses = append(responses, ToShopResponse(s))
	}
	return responses
}
