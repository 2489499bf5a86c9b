package user

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"stall-marketplace/internal/config"
	domainShop "stall-marketplace/internal/domain/shop"
	domainUser "stall-marketplace/internal/domain/user"
	"stall-marketplace/internal/infrastructure/database/memory"
	appErrors "stall-marketplace/pkg/errors"
	"stall-marketplace/pkg/utils"
)

const testSecret = "user-service-secret"

func TestMain(m *testing.M) {
	utils.SetPasswordCost(bcrypt.MinCost)
	os.Exit(m.Run())
}

type recordingNotifier struct {
	mu    sync.Mutex
	shops []*domainShop.Shop
}

func (n *recordingNotifier) NotifySubmitted(_ context.Context, shop *domainShop.Shop) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.shops = append(n.shops, shop)
}

type fixture struct {
	store    *memory.Store
	notifier *recordingNotifier
	service  *Service
}

func newFixture() *fixture {
	store := memory.NewStore()
	notifier := &recordingNotifier{}
	cfg := &config.Config{JWT: config.JWTConfig{Secret: testSecret, ExpiryHours: 1}}
	return &fixture{
		store:    store,
		notifier: notifier,
		service:  NewService(store.Users(), store.Shops(), notifier, cfg),
	}
}

func customerRequest(name string) *RegisterRequest {
	return &RegisterRequest{
		Username: name,
		Email:    name + "@example.com",
		Password: "secret1",
	}
}

func sellerRequest(name string) *RegisterRequest {
	req := customerRequest(name)
	req.UserType = "seller"
	req.SellerDetails = SellerDetails{
		ShopName:    name + " books",
		Category:    "Book",
		StallNumber: "B12",
		FloorNumber: "2",
		Description: "Second-hand paperbacks",
		ShopLogo:    "https://cdn.example.com/logo.png",
	}
	return req
}

func TestRegisterCustomer(t *testing.T) {
	f := newFixture()

	req := customerRequest("carol")
	req.Email = "  Carol@Example.com "
	account, err := f.service.Register(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "carol@example.com", account.User.Email)
	assert.Equal(t, "customer", account.User.UserType)
	assert.Equal(t, "user", account.User.Role)
	assert.True(t, account.User.IsApproved)
	assert.Nil(t, account.Shop)
	assert.Empty(t, f.notifier.shops)

	stored, err := f.store.Users().GetByID(context.Background(), account.User.ID)
	require.NoError(t, err)

	body, err := json.Marshal(account)
	require.NoError(t, err)
	assert.NotContains(t, string(body), stored.PasswordHashed)
	assert.NotContains(t, string(body), "password")
}

func TestRegisterSellerCreatesPendingShop(t *testing.T) {
	f := newFixture()

	account, err := f.service.Register(context.Background(), sellerRequest("sam"))
	require.NoError(t, err)

	assert.Equal(t, "seller", account.User.UserType)
	assert.False(t, account.User.IsApproved)
	require.NotNil(t, account.Shop)
	assert.False(t, account.Shop.IsApproved)
	assert.Equal(t, "pending", account.Shop.Status)
	assert.Equal(t, account.User.ID, account.Shop.SellerID)

	require.Len(t, f.notifier.shops, 1)
	assert.Equal(t, account.Shop.ID, f.notifier.shops[0].ID)

	shop, err := f.store.Shops().GetBySellerID(context.Background(), account.User.ID)
	require.NoError(t, err)
	assert.Equal(t, domainShop.StatusPending, shop.Status)
}

func TestRegisterSellerRequiresShopFields(t *testing.T) {
	f := newFixture()

	req := sellerRequest("sid")
	req.ShopName = ""
	req.Category = "Toys"

	_, err := f.service.Register(context.Background(), req)
	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.CodeValidation, appErr.Code)
	assert.Contains(t, appErr.Message, "shopName is required")
	assert.Contains(t, appErr.Message, "category must be one of")

	_, err = f.store.Users().GetByEmail(context.Background(), "sid@example.com")
	assert.ErrorIs(t, err, domainUser.ErrUserNotFound)
}

func TestRegisterRejectsAdminUserTypeAndShortPassword(t *testing.T) {
	f := newFixture()

	req := customerRequest("eve")
	req.UserType = "admin"
	req.Password = "123"

	_, err := f.service.Register(context.Background(), req)
	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Message, "userType must be customer or seller")
	assert.Contains(t, appErr.Message, "password must be at least 6 characters")
}

func TestRegisterDuplicates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.service.Register(ctx, customerRequest("dana"))
	require.NoError(t, err)

	dupEmail := customerRequest("dana2")
	dupEmail.Email = "DANA@example.com"
	_, err = f.service.Register(ctx, dupEmail)
	assert.ErrorIs(t, err, domainUser.ErrEmailAlreadyExists)

	dupUsername := customerRequest("dana")
	dupUsername.Email = "other@example.com"
	_, err = f.service.Register(ctx, dupUsername)
	assert.ErrorIs(t, err, domainUser.ErrUsernameAlreadyExists)
}

func TestLogin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	account, err := f.service.Register(ctx, sellerRequest("lena"))
	require.NoError(t, err)

	auth, err := f.service.Login(ctx, &LoginRequest{Email: "LENA@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, account.User.ID, auth.User.ID)

	claims, err := utils.ValidateToken(auth.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, account.User.ID, claims.UserID)
	assert.Equal(t, "seller", claims.Role)
	assert.Equal(t, "lena", claims.Username)

	_, err = f.service.Login(ctx, &LoginRequest{Email: "lena@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	_, err = f.service.Login(ctx, &LoginRequest{Email: "ghost@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	require.NoError(t, f.store.Users().SetActive(ctx, account.User.ID, false))
	_, err = f.service.Login(ctx, &LoginRequest{Email: "lena@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, domainUser.ErrUserInactive)
}

func TestGetProfile(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	seller, err := f.service.Register(ctx, sellerRequest("omar"))
	require.NoError(t, err)
	customer, err := f.service.Register(ctx, customerRequest("cora"))
	require.NoError(t, err)

	profile, err := f.service.GetProfile(ctx, seller.User.ID)
	require.NoError(t, err)
	require.NotNil(t, profile.Shop)
	assert.Equal(t, seller.Shop.ID, profile.Shop.ID)

	profile, err = f.service.GetProfile(ctx, customer.User.ID)
	require.NoError(t, err)
	assert.Nil(t, profile.Shop)

	require.NoError(t, f.store.Users().SetActive(ctx, customer.User.ID, false))
	_, err = f.service.GetProfile(ctx, customer.User.ID)
	assert.ErrorIs(t, err, domainUser.ErrUserInactive)

	_, err = f.service.GetProfile(ctx, uuid.New())
	assert.ErrorIs(t, err, domainUser.ErrUserNotFound)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.service.Register(ctx, customerRequest("anna"))
	require.NoError(t, err)
	_, err = f.service.Register(ctx, customerRequest("bert"))
	require.NoError(t, err)

	taken := "bert"
	_, err = f.service.UpdateProfile(ctx, first.User.ID, &UpdateProfileRequest{Username: &taken})
	assert.ErrorIs(t, err, domainUser.ErrUsernameAlreadyExists)

	takenEmail := "Bert@Example.com"
	_, err = f.service.UpdateProfile(ctx, first.User.ID, &UpdateProfileRequest{Email: &takenEmail})
	assert.ErrorIs(t, err, domainUser.ErrEmailAlreadyExists)

	own := "anna"
	avatar := "avatars/anna.png"
	updated, err := f.service.UpdateProfile(ctx, first.User.ID, &UpdateProfileRequest{Username: &own, Avatar: &avatar})
	require.NoError(t, err)
	assert.Equal(t, "anna", updated.Username)
	require.NotNil(t, updated.Avatar)
	assert.Equal(t, avatar, *updated.Avatar)

	renamed := "anna_b"
	updated, err = f.service.UpdateProfile(ctx, first.User.ID, &UpdateProfileRequest{Username: &renamed})
	require.NoError(t, err)
	assert.Equal(t, "anna_b", updated.Username)
}

func TestChangePassword(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	account, err := f.service.Register(ctx, customerRequest("pete"))
	require.NoError(t, err)

	err = f.service.ChangePassword(ctx, account.User.ID, &ChangePasswordRequest{
		CurrentPassword: "not-it",
		NewPassword:     "secret2",
	})
	assert.ErrorIs(t, err, appErrors.ErrWrongCurrentPassword)

	err = f.service.ChangePassword(ctx, account.User.ID, &ChangePasswordRequest{
		CurrentPassword: "secret1",
		NewPassword:     "secret1",
	})
	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.CodeValidation, appErr.Code)

	require.NoError(t, f.service.ChangePassword(ctx, account.User.ID, &ChangePasswordRequest{
		CurrentPassword: "secret1",
		NewPassword:     "secret2",
	}))

	_, err = f.service.Login(ctx, &LoginRequest{Email: "pete@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
	_, err = f.service.Login(ctx, &LoginRequest{Email: "pete@example.com", Password: "secret2"})
	assert.NoError(t, err)
}

func TestDeactivatedUserCannotChangeAccount(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	account, err := f.service.Register(ctx, customerRequest("gone"))
	require.NoError(t, err)
	require.NoError(t, f.store.Users().SetActive(ctx, account.User.ID, false))

	renamed := "still_here"
	_, err = f.service.UpdateProfile(ctx, account.User.ID, &UpdateProfileRequest{Username: &renamed})
	assert.ErrorIs(t, err, domainUser.ErrUserInactive)

	err = f.service.ChangePassword(ctx, account.User.ID, &ChangePasswordRequest{
		CurrentPassword: "secret1",
		NewPassword:     "secret2",
	})
	assert.ErrorIs(t, err, domainUser.ErrUserInactive)

	stored, err := f.store.Users().GetByID(ctx, account.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "gone", stored.Username)
	assert.True(t, utils.CheckPassword(stored.PasswordHashed, "secret1"))
}

func TestSeedAdminIsIdempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	cfg := config.AdminConfig{Email: "Root@Example.com", Username: "root", Password: "rootpass"}

	require.NoError(t, f.service.SeedAdmin(ctx, cfg))
	require.NoError(t, f.service.SeedAdmin(ctx, cfg))

	admins, err := f.service.ListUsers(ctx, &ListUsersQuery{UserType: "admin"})
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "root@example.com", admins[0].Email)
	assert.Equal(t, "admin", admins[0].Role)

	auth, err := f.service.Login(ctx, &LoginRequest{Email: "root@example.com", Password: "rootpass"})
	require.NoError(t, err)
	claims, err := utils.ValidateToken(auth.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)

	require.NoError(t, f.service.SeedAdmin(ctx, config.AdminConfig{}))
}

func TestSetActive(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	admin := uuid.New()
	account, err := f.service.Register(ctx, customerRequest("tess"))
	require.NoError(t, err)

	inactive := false
	_, err = f.service.SetActive(ctx, admin, admin, &UpdateStatusRequest{IsActive: &inactive})
	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.CodeBadRequest, appErr.Code)

	updated, err := f.service.SetActive(ctx, admin, account.User.ID, &UpdateStatusRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	listed, err := f.service.ListUsers(ctx, &ListUsersQuery{IsActive: &inactive})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, account.User.ID, listed[0].ID)

	_, err = f.service.SetActive(ctx, admin, uuid.New(), &UpdateStatusRequest{IsActive: &inactive})
	assert.ErrorIs(t, err, domainUser.ErrUserNotFound)

	_, err = f.service.SetActive(ctx, admin, account.User.ID, &UpdateStatusRequest{})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.CodeValidation, appErr.Code)
}
