package shop

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingShop() *Shop {
	return &Shop{
		ID:       uuid.New(),
		SellerID: uuid.New(),
		ShopName: "Page Turners",
		Category: CategoryBook,
		IsActive: true,
		Status:   StatusPending,
	}
}

func TestValidateStatusTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		allowed  bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusApproved, StatusRejected, true},
		{StatusRejected, StatusApproved, true},
		{StatusApproved, StatusApproved, true},
		{StatusRejected, StatusRejected, true},
		{StatusApproved, StatusPending, false},
		{StatusRejected, StatusPending, false},
		{StatusPending, StatusPending, false},
		{Status("archived"), StatusApproved, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			err := ValidateStatusTransition(tt.from, tt.to)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidStatusTransition)
			}
		})
	}
}

func TestApproveClearsRejectionReason(t *testing.T) {
	s := pendingShop()
	admin := uuid.New()
	at := time.Now()

	require.NoError(t, s.Reject(admin, "blurry logo", at))
	require.NotNil(t, s.RejectionReason)
	assert.Equal(t, "blurry logo", *s.RejectionReason)
	assert.False(t, s.IsApproved())

	require.NoError(t, s.Approve(admin, at))
	assert.True(t, s.IsApproved())
	assert.Nil(t, s.RejectionReason)
	assert.Equal(t, admin, *s.ReviewedBy)
	assert.Equal(t, at, *s.ReviewedAt)
}

func TestRejectDefaultsReason(t *testing.T) {
	s := pendingShop()

	require.NoError(t, s.Reject(uuid.New(), "   ", time.Now()))
	assert.Equal(t, StatusRejected, s.Status)
	assert.Equal(t, DefaultRejectionReason, *s.RejectionReason)

	require.NoError(t, s.Reject(uuid.New(), "duplicate stall", time.Now()))
	assert.Equal(t, "duplicate stall", *s.RejectionReason)
}

func TestCanCreateItems(t *testing.T) {
	assert.ErrorIs(t, CanCreateItems(nil), ErrShopNotFound)

	s := pendingShop()
	assert.ErrorIs(t, CanCreateItems(s), ErrShopNotApproved)

	require.NoError(t, s.Reject(uuid.New(), "", time.Now()))
	assert.ErrorIs(t, CanCreateItems(s), ErrShopNotApproved)

	require.NoError(t, s.Approve(uuid.New(), time.Now()))
	assert.NoError(t, CanCreateItems(s))

	s.IsActive = false
	assert.ErrorIs(t, CanCreateItems(s), ErrShopInactive)
}

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.Valid())
	}
	assert.False(t, Category("Toys").Valid())
	assert.False(t, Category("book").Valid())
}
