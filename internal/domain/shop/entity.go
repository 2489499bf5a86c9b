package shop

import (
	"time"

	"github.com/google/uuid"
)

// Status represents where a shop sits in the approval workflow
type Status string

const (
	StatusPending  Status = "pending"  // Awaiting admin review
	StatusApproved Status = "approved" // Visible publicly, may sell items
	StatusRejected Status = "rejected" // Hidden, carries a rejection reason
)

// Category is the kind of goods a shop sells
type Category string

const (
	CategoryCloth  Category = "Cloth"
	CategoryBeauty Category = "Beauty"
	CategoryBook   Category = "Book"
	CategoryFood   Category = "Food"
	CategoryTech   Category = "Tech"
	CategoryOther  Category = "Other"
)

var Categories = []Category{
	CategoryCloth, CategoryBeauty, CategoryBook, CategoryFood, CategoryTech, CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

const DefaultRejectionReason = "No reason provided"

// Shop is a seller storefront. Each seller owns at most one.
type Shop struct {
	ID              uuid.UUID
	SellerID        uuid.UUID
	ShopName        string
	Category        Category
	StallNumber     string
	FloorNumber     string
	Description     string
	ShopLogo        string
	IsActive        bool
	IsOpen          bool
	Status          Status
	RejectionReason *string
	ReviewedBy      *uuid.UUID
	ReviewedAt      *time.Time
	Version         int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsApproved mirrors Status for callers that only care about the gate.
func (s *Shop) IsApproved() bool {
	return s.Status == StatusApproved
}

// Filter represents filtering options for listing shops
type Filter struct {
	Status     *Status
	IsApproved *bool
	OnlyActive bool
	Category   *Category
	Floor      string
	Search     string
	Sort       string
}

const (
	SortNewest = "newest"
	SortOldest = "oldest"
	SortName   = "name"
)
