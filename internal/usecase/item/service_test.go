package item

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainItem "stall-marketplace/internal/domain/item"
	domainShop "stall-marketplace/internal/domain/shop"
	domainUser "stall-marketplace/internal/domain/user"
	"stall-marketplace/internal/infrastructure/database/memory"
	appErrors "stall-marketplace/pkg/errors"
)

func price(cents int64) *int64 {
	return &cents
}

func seedShop(t *testing.T, store *memory.Store, name string, status domainShop.Status) *domainShop.Shop {
	t.Helper()

	seller := &domainUser.User{
		ID:       uuid.New(),
		Username: name,
		Email:    name + "@example.com",
		UserType: domainUser.TypeSeller,
		IsActive: true,
	}
	shop := &domainShop.Shop{
		ShopName: name,
		Category: domainShop.CategoryBook,
		IsActive: true,
		Status:   domainShop.StatusPending,
	}
	ctx := context.Background()
	require.NoError(t, store.Shops().CreateWithSeller(ctx, seller, shop))

	switch status {
	case domainShop.StatusApproved:
		require.NoError(t, shop.Approve(uuid.New(), time.Now()))
	case domainShop.StatusRejected:
		require.NoError(t, shop.Reject(uuid.New(), "", time.Now()))
	}
	if status != domainShop.StatusPending {
		require.NoError(t, store.Shops().UpdateReview(ctx, shop))
	}
	return shop
}

func bookRequest(name string) *CreateItemRequest {
	return &CreateItemRequest{
		Name:       name,
		Price:      price(1299),
		Stock:      3,
		Attributes: map[string]string{"author": "Octavia Butler"},
	}
}

func TestCreateGatedByShopApproval(t *testing.T) {
	store := memory.NewStore()
	service := NewService(store.Items(), store.Shops())
	ctx := context.Background()

	pending := seedShop(t, store, "pending", domainShop.StatusPending)
	_, err := service.Create(ctx, pending.SellerID, "book", bookRequest("Kindred"))
	assert.ErrorIs(t, err, domainShop.ErrShopNotApproved)

	rejected := seedShop(t, store, "rejected", domainShop.StatusRejected)
	_, err = service.Create(ctx, rejected.SellerID, "book", bookRequest("Kindred"))
	assert.ErrorIs(t, err, domainShop.ErrShopNotApproved)

	_, err = service.Create(ctx, uuid.New(), "book", bookRequest("Kindred"))
	assert.ErrorIs(t, err, domainShop.ErrShopNotFound)

	approved := seedShop(t, store, "approved", domainShop.StatusApproved)
	created, err := service.Create(ctx, approved.SellerID, "book", bookRequest("Kindred"))
	require.NoError(t, err)
	assert.Equal(t, approved.ID, created.ShopID)
	assert.Equal(t, "book", created.Kind)
	assert.Equal(t, int64(1299), created.Price)

	require.NoError(t, store.Shops().SetActive(approved.ID, false))
	_, err = service.Create(ctx, approved.SellerID, "book", bookRequest("Dawn"))
	assert.ErrorIs(t, err, domainShop.ErrShopInactive)
}

func TestCreateValidation(t *testing.T) {
	store := memory.NewStore()
	service := NewService(store.Items(), store.Shops())
	ctx := context.Background()
	shop := seedShop(t, store, "valid", domainShop.StatusApproved)

	_, err := service.Create(ctx, shop.SellerID, "vinyl", bookRequest("Kindred"))
	assert.ErrorIs(t, err, domainItem.ErrUnknownKind)

	noAuthor := bookRequest("Kindred")
	noAuthor.Attributes = nil
	_, err = service.Create(ctx, shop.SellerID, "book", noAuthor)
	assert.ErrorIs(t, err, domainItem.ErrMissingAttribute)
	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "attributes.author is required", appErr.Message)

	negative := bookRequest("Kindred")
	negative.Price = price(-1)
	_, err = service.Create(ctx, shop.SellerID, "book", negative)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.CodeValidation, appErr.Code)

	noPrice := bookRequest("Kindred")
	noPrice.Price = nil
	_, err = service.Create(ctx, shop.SellerID, "book", noPrice)
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Message, "price is required")

	free := &CreateItemRequest{Name: "Sticker", Price: price(0)}
	_, err = service.Create(ctx, shop.SellerID, "product", free)
	assert.NoError(t, err)
}

func TestListOnlyShowsApprovedShops(t *testing.T) {
	store := memory.NewStore()
	service := NewService(store.Items(), store.Shops())
	ctx := context.Background()

	approved := seedShop(t, store, "open", domainShop.StatusApproved)
	later := seedShop(t, store, "later", domainShop.StatusApproved)

	_, err := service.Create(ctx, approved.SellerID, "book", bookRequest("Kindred"))
	require.NoError(t, err)
	_, err = service.Create(ctx, later.SellerID, "book", bookRequest("Dawn"))
	require.NoError(t, err)
	_, err = service.Create(ctx, later.SellerID, "product", &CreateItemRequest{Name: "Bookmark", Price: price(100)})
	require.NoError(t, err)

	books, err := service.List(ctx, "book")
	require.NoError(t, err)
	assert.Len(t, books, 2)

	// Rejecting a shop hides its catalog without deleting it.
	require.NoError(t, later.Reject(uuid.New(), "expired permit", time.Now()))
	require.NoError(t, store.Shops().UpdateReview(ctx, later))

	books, err = service.List(ctx, "book")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Kindred", books[0].Name)

	_, err = service.List(ctx, "vinyl")
	assert.ErrorIs(t, err, domainItem.ErrUnknownKind)
}

func TestGet(t *testing.T) {
	store := memory.NewStore()
	service := NewService(store.Items(), store.Shops())
	ctx := context.Background()

	shop := seedShop(t, store, "gets", domainShop.StatusApproved)
	created, err := service.Create(ctx, shop.SellerID, "book", bookRequest("Kindred"))
	require.NoError(t, err)

	found, err := service.Get(ctx, "book", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Octavia Butler", found.Attributes["author"])

	_, err = service.Get(ctx, "cloth", created.ID)
	assert.ErrorIs(t, err, domainItem.ErrItemNotFound)

	_, err = service.Get(ctx, "book", uuid.New())
	assert.ErrorIs(t, err, domainItem.ErrItemNotFound)
}

func TestUpdateAndDeleteRequireOwner(t *testing.T) {
	store := memory.NewStore()
	service := NewService(store.Items(), store.Shops())
	ctx := context.Background()

	owner := seedShop(t, store, "owner", domainShop.StatusApproved)
	other := seedShop(t, store, "other", domainShop.StatusApproved)

	created, err := service.Create(ctx, owner.SellerID, "book", bookRequest("Kindred"))
	require.NoError(t, err)

	newName := "Kindred (2nd ed.)"
	_, err = service.Update(ctx, other.SellerID, "book", created.ID, &UpdateItemRequest{Name: &newName})
	assert.ErrorIs(t, err, domainItem.ErrNotItemOwner)

	stock := 0
	inactive := false
	updated, err := service.Update(ctx, owner.SellerID, "book", created.ID, &UpdateItemRequest{
		Name:     &newName,
		Stock:    &stock,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
	assert.Equal(t, 0, updated.Stock)
	assert.False(t, updated.IsActive)

	_, err = service.Update(ctx, owner.SellerID, "book", created.ID, &UpdateItemRequest{
		Attributes: map[string]string{"isbn": "978-0807083697"},
	})
	assert.ErrorIs(t, err, domainItem.ErrMissingAttribute)

	books, err := service.List(ctx, "book")
	require.NoError(t, err)
	assert.Empty(t, books)

	assert.ErrorIs(t, service.Delete(ctx, other.SellerID, "book", created.ID), domainItem.ErrNotItemOwner)
	require.NoError(t, service.Delete(ctx, owner.SellerID, "book", created.ID))
	assert.ErrorIs(t, service.Delete(ctx, owner.SellerID, "book", created.ID), domainItem.ErrItemNotFound)
}
