package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=publisher.go -destination=mocks/publisher_mock.go -package=mocks

const (
	TypeShopSubmitted = "shop.submitted"
	TypeShopApproved  = "shop.approved"
	TypeShopRejected  = "shop.rejected"
	TypeShopToggled   = "shop.toggled"
)

// ShopEvent is emitted whenever a shop enters or changes lifecycle state.
type ShopEvent struct {
	Type            string     `json:"type"`
	ShopID          uuid.UUID  `json:"shopId"`
	SellerID        uuid.UUID  `json:"sellerId"`
	ShopName        string     `json:"shopName"`
	Status          string     `json:"status"`
	IsOpen          bool       `json:"isOpen"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`
	ReviewedBy      *uuid.UUID `json:"reviewedBy,omitempty"`
	OccurredAt      time.Time  `json:"occurredAt"`
}

// Publisher delivers shop events to interested parties.
type Publisher interface {
	PublishShopEvent(ctx context.Context, event ShopEvent) error
}

// NoopPublisher drops every event; used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishShopEvent(context.Context, ShopEvent) error {
	return nil
}
