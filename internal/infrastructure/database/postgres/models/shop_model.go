package models

import (
	"time"

	"github.com/google/uuid"
)

// ShopModel represents the database model for Shop
type ShopModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SellerID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_shops_seller_id"`
	Seller          *UserModel `gorm:"foreignKey:SellerID;constraint:OnDelete:RESTRICT"`
	ShopName        string     `gorm:"type:varchar(100);not null"`
	Category        string     `gorm:"type:varchar(20);not null;index"`
	StallNumber     string     `gorm:"type:varchar(20);not null"`
	FloorNumber     string     `gorm:"type:varchar(20);not null"`
	Description     string     `gorm:"type:text;not null"`
	ShopLogo        string     `gorm:"type:varchar(500);not null"`
	IsActive        bool       `gorm:"default:true;not null"`
	IsOpen          bool       `gorm:"default:true;not null"`
	Status          string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	IsApproved      bool       `gorm:"default:false;not null;index"`
	RejectionReason *string    `gorm:"type:text"`
	ReviewedBy      *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt      *time.Time `gorm:"type:timestamp"`
	Version         int        `gorm:"type:integer;not null;default:1"`
	CreatedAt       time.Time  `gorm:"not null"`
	UpdatedAt       time.Time  `gorm:"not null"`
}

func (ShopModel) TableName() string {
	return "shops"
}
