package shop

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainShop "stall-marketplace/internal/domain/shop"
	domainUser "stall-marketplace/internal/domain/user"
	"stall-marketplace/internal/events"
	"stall-marketplace/internal/events/mocks"
	"stall-marketplace/internal/infrastructure/database/memory"
	appErrors "stall-marketplace/pkg/errors"
)

func seedPendingShop(t *testing.T, store *memory.Store, name string, created time.Time) *domainShop.Shop {
	t.Helper()

	seller := &domainUser.User{
		ID:       uuid.New(),
		Username: name,
		Email:    name + "@example.com",
		UserType: domainUser.TypeSeller,
		Role:     domainUser.RoleUser,
		IsActive: true,
	}
	shop := &domainShop.Shop{
		ShopName:    name,
		Category:    domainShop.CategoryBook,
		StallNumber: "A1",
		FloorNumber: "1",
		Description: name + " sells books",
		ShopLogo:    "logo.png",
		IsActive:    true,
		IsOpen:      true,
		Status:      domainShop.StatusPending,
		CreatedAt:   created,
	}
	require.NoError(t, store.Shops().CreateWithSeller(context.Background(), seller, shop))
	return shop
}

func eventOfType(eventType string, shopID uuid.UUID) gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		event, ok := x.(events.ShopEvent)
		return ok && event.Type == eventType && event.ShopID == shopID
	})
}

func TestApprovePublishesEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockPublisher(ctrl)
	store := memory.NewStore()
	service := NewService(store.Shops(), publisher)
	ctx := context.Background()

	shop := seedPendingShop(t, store, "readers", time.Now())
	admin := uuid.New()

	publisher.EXPECT().
		PublishShopEvent(gomock.Any(), eventOfType(events.TypeShopApproved, shop.ID)).
		Return(nil)

	resp, err := service.Approve(ctx, admin, shop.ID)
	require.NoError(t, err)
	assert.True(t, resp.IsApproved)
	assert.Equal(t, string(domainShop.StatusApproved), resp.Status)
	assert.Nil(t, resp.RejectionReason)

	stored, err := store.Shops().GetByID(ctx, shop.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsApproved())
	assert.Equal(t, admin, *stored.ReviewedBy)
	assert.Equal(t, 2, stored.Version)
}

func TestRejectUsesDefaultReasonAndPublishes(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockPublisher(ctrl)
	store := memory.NewStore()
	service := NewService(store.Shops(), publisher)

	shop := seedPendingShop(t, store, "novels", time.Now())

	publisher.EXPECT().
		PublishShopEvent(gomock.Any(), eventOfType(events.TypeShopRejected, shop.ID)).
		Return(nil)

	resp, err := service.Reject(context.Background(), uuid.New(), shop.ID, &RejectShopRequest{})
	require.NoError(t, err)
	assert.False(t, resp.IsApproved)
	require.NotNil(t, resp.RejectionReason)
	assert.Equal(t, domainShop.DefaultRejectionReason, *resp.RejectionReason)
}

func TestPublishFailureDoesNotFailReview(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockPublisher(ctrl)
	store := memory.NewStore()
	service := NewService(store.Shops(), publisher)

	shop := seedPendingShop(t, store, "comics", time.Now())
	publisher.EXPECT().PublishShopEvent(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	resp, err := service.Approve(context.Background(), uuid.New(), shop.ID)
	require.NoError(t, err)
	assert.True(t, resp.IsApproved)
}

func TestApproveUnknownShop(t *testing.T) {
	store := memory.NewStore()
	service := NewService(store.Shops(), nil)

	_, err := service.Approve(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, domainShop.ErrShopNotFound)
}

func TestReviewScenarioListings(t *testing.T) {
	store := memory.NewStore()
	service := NewService(store.Shops(), events.NoopPublisher{})
	ctx := context.Background()
	admin := uuid.New()

	now := time.Now()
	first := seedPendingShop(t, store, "first", now.Add(-2*time.Minute))
	second := seedPendingShop(t, store, "second", now.Add(-time.Minute))

	pending, err := service.ListForAdmin(ctx, ScopePending, &AdminShopQuery{})
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	public, err := service.ListPublic(ctx, &PublicShopQuery{})
	require.NoError(t, err)
	assert.Empty(t, public)

	_, err = service.Approve(ctx, admin, first.ID)
	require.NoError(t, err)
	_, err = service.Reject(ctx, admin, second.ID, &RejectShopRequest{Reason: "missing stall permit"})
	require.NoError(t, err)

	public, err = service.ListPublic(ctx, &PublicShopQuery{})
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, first.ID, public[0].ID)

	rejected, err := service.ListForAdmin(ctx, ScopeRejected, &AdminShopQuery{})
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	assert.Equal(t, "missing stall permit", *rejected[0].RejectionReason)

	pending, err = service.ListForAdmin(ctx, ScopePending, &AdminShopQuery{})
	require.NoError(t, err)
	assert.Empty(t, pending)

	notApproved := false
	all, err := service.ListForAdmin(ctx, ScopeAll, &AdminShopQuery{IsApproved: &notApproved})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, second.ID, all[0].ID)

	_, err = service.GetPublic(ctx, second.ID)
	assert.ErrorIs(t, err, domainShop.ErrShopNotFound)

	// Re-approving a rejected shop clears the reason.
	reapproved, err := service.Approve(ctx, admin, second.ID)
	require.NoError(t, err)
	assert.Nil(t, reapproved.RejectionReason)

	public, err = service.ListPublic(ctx, &PublicShopQuery{Sort: domainShop.SortName})
	require.NoError(t, err)
	require.Len(t, public, 2)
	assert.Equal(t, "first", public[0].ShopName)
}

func TestListPublicFilters(t *testing.T) {
	store := memory.NewStore()
	service := NewService(store.Shops(), nil)
	ctx := context.Background()

	shop := seedPendingShop(t, store, "atlas", time.Now())
	_, err := service.Approve(ctx, uuid.New(), shop.ID)
	require.NoError(t, err)

	found, err := service.ListPublic(ctx, &PublicShopQuery{Search: "BOOKS", Category: "Book", Floor: "1"})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	found, err = service.ListPublic(ctx, &PublicShopQuery{Floor: "2"})
	require.NoError(t, err)
	assert.Empty(t, found)

	_, err = service.ListPublic(ctx, &PublicShopQuery{Category: "Toys"})
	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.CodeValidation, appErr.Code)

	require.NoError(t, store.Shops().SetActive(shop.ID, false))
	found, err = service.ListPublic(ctx, &PublicShopQuery{})
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestListForAdminUnknownScope(t *testing.T) {
	service := NewService(memory.NewStore().Shops(), nil)

	_, err := service.ListForAdmin(context.Background(), "archived", &AdminShopQuery{})
	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.CodeBadRequest, appErr.Code)
}

func TestConcurrentApprovalsBothSucceed(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockPublisher(ctrl)
	store := memory.NewStore()
	service := NewService(store.Shops(), publisher)
	ctx := context.Background()

	shop := seedPendingShop(t, store, "rush", time.Now())

	const admins = 8
	publisher.EXPECT().PublishShopEvent(gomock.Any(), gomock.Any()).Return(nil).Times(admins)

	var wg sync.WaitGroup
	errs := make(chan error, admins)
	for i := 0; i < admins; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Approve(ctx, uuid.New(), shop.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	stored, err := store.Shops().GetByID(ctx, shop.ID)
	require.NoError(t, err)
	assert.Equal(t, domainShop.StatusApproved, stored.Status)
	assert.Equal(t, 1+admins, stored.Version)
}

func TestToggleOpen(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockPublisher(ctrl)
	store := memory.NewStore()
	service := NewService(store.Shops(), publisher)
	ctx := context.Background()

	shop := seedPendingShop(t, store, "lamps", time.Now())
	publisher.EXPECT().
		PublishShopEvent(gomock.Any(), eventOfType(events.TypeShopToggled, shop.ID)).
		Return(nil).
		Times(2)

	resp, err := service.ToggleOpen(ctx, shop.SellerID)
	require.NoError(t, err)
	assert.False(t, resp.IsOpen)

	resp, err = service.ToggleOpen(ctx, shop.SellerID)
	require.NoError(t, err)
	assert.True(t, resp.IsOpen)

	_, err = service.ToggleOpen(ctx, uuid.New())
	assert.ErrorIs(t, err, domainShop.ErrShopNotFound)
}

func TestGetMyShop(t *testing.T) {
	store := memory.NewStore()
	service := NewService(store.Shops(), nil)

	shop := seedPendingShop(t, store, "mine", time.Now())

	resp, err := service.GetMyShop(context.Background(), shop.SellerID)
	require.NoError(t, err)
	assert.Equal(t, shop.ID, resp.ID)
	assert.False(t, resp.IsApproved)
	assert.Equal(t, string(domainShop.StatusPending), resp.Status)
}
