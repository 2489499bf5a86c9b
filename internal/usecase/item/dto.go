package item

import (
	"time"

	"github.com/google/uuid"

	domainItem "stall-marketplace/internal/domain/item"
)

type CreateItemRequest struct {
	Name        string            `json:"name" validate:"required,min=1,max=200"`
	Description string            `json:"description" validate:"omitempty,max=2000"`
	Price       *int64            `json:"price" validate:"required,gte=0"`
	Stock       int               `json:"stock" validate:"gte=0"`
	ImageRef    *string           `json:"imageRef" validate:"omitempty,max=500"`
	Attributes  map[string]string `json:"attributes" validate:"omitempty,max=20,dive,keys,min=1,max=50,endkeys,max=500"`
}

type UpdateItemRequest struct {
	Name        *string           `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string           `json:"description" validate:"omitempty,max=2000"`
	Price       *int64            `json:"price" validate:"omitempty,gte=0"`
	Stock       *int              `json:"stock" validate:"omitempty,gte=0"`
	ImageRef    *string           `json:"imageRef" validate:"omitempty,max=500"`
	Attributes  map[string]string `json:"attributes" validate:"omitempty,max=20,dive,keys,min=1,max=50,endkeys,max=500"`
	IsActive    *bool             `json:"isActive"`
}

type ItemResponse struct {
	ID          uuid.UUID         `json:"id"`
	ShopID      uuid.UUID         `json:"shopId"`
	SellerID    uuid.UUID         `json:"sellerId"`
	Kind        string            `json:"kind"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       int64             `json:"price"`
	Stock       int               `json:"stock"`
	ImageRef    *string           `json:"imageRef,omitempty"`
	Attributes  map[string]string `json:"attributes"`
	IsActive    bool              `json:"isActive"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func ToItemResponse(i *domainItem.Item) *ItemResponse {
	if i == nil {
		return nil
	}

	attributes := i.Attributes
	if attributes == nil {
		attributes = map[string]string{}
	}

	return &ItemResponse{
		ID:          i.ID,
		ShopID:      i.ShopID,
		SellerID:    i.SellerID,
		Kind:        i.Kind,
		Name:        i.Name,
		Description: i.Description,
		Price:       i.PriceCents,
		Stock:       i.Stock,
		ImageRef:    i.ImageRef,
		Attributes:  attributes,
		IsActive:    i.IsActive,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}
