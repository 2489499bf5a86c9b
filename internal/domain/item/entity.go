package item

import (
	"time"

	"github.com/google/uuid"
)

// Kind describes one catalog section. Every section shares the same item
// shape and differs only in slug and the attributes it insists on.
type Kind struct {
	Slug               string
	Name               string
	RequiredAttributes []string
}

// Kinds is the catalog configuration; one set of routes is mounted per entry.
var Kinds = []Kind{
	{Slug: "beauty", Name: "Beauty", RequiredAttributes: []string{"brand"}},
	{Slug: "book", Name: "Book", RequiredAttributes: []string{"author"}},
	{Slug: "cloth", Name: "Cloth", RequiredAttributes: []string{"size"}},
	{Slug: "product", Name: "Product"},
}

func LookupKind(slug string) (Kind, bool) {
	for _, k := range Kinds {
		if k.Slug == slug {
			return k, true
		}
	}
	return Kind{}, false
}

// Item is a catalog entry sold by an approved shop
type Item struct {
	ID          uuid.UUID
	ShopID      uuid.UUID
	SellerID    uuid.UUID
	Kind        string
	Name        string
	Description string
	PriceCents  int64
	Stock       int
	ImageRef    *string
	Attributes  map[string]string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter represents filtering options for listing items
type Filter struct {
	Kind              string
	ShopID            *uuid.UUID
	SellerID          *uuid.UUID
	OnlyApprovedShops bool
	OnlyActive        bool
}
