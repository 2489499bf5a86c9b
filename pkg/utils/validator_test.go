package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainShop "stall-marketplace/internal/domain/shop"
)

type signup struct {
	Username string `json:"username" validate:"required,min=3,max=20,username"`
	Email    string `json:"email" validate:"required,email"`
	UserType string `json:"userType" validate:"omitempty,user_type"`
	Category string `json:"category" validate:"omitempty,shop_category"`
}

func TestValidateStructCustomTags(t *testing.T) {
	ok := signup{Username: "ada_l.0-x", Email: "ada@example.com", UserType: "seller", Category: "Book"}
	require.NoError(t, ValidateStruct(ok))

	bad := signup{Username: "ad min", Email: "ada@example.com", UserType: "admin", Category: "Toys"}
	err := ValidateStruct(bad)
	require.Error(t, err)

	msg := ValidationMessage(err)
	assert.Contains(t, msg, "username may only contain")
	assert.Contains(t, msg, "userType must be customer or seller")
	assert.Contains(t, msg, "category must be one of")
}

func TestValidationMessageUsesJSONNames(t *testing.T) {
	err := ValidateStruct(signup{})
	require.Error(t, err)

	msg := ValidationMessage(err)
	assert.Contains(t, msg, "username is required")
	assert.Contains(t, msg, "email is required")
	assert.NotContains(t, msg, "Username")
}

func TestShopCategoryFollowsDomain(t *testing.T) {
	for _, c := range domainShop.Categories {
		assert.NoError(t, ValidateStruct(signup{Username: "ada", Email: "ada@example.com", Category: string(c)}))
	}

	err := ValidateStruct(signup{Username: "ada", Email: "ada@example.com", Category: "book"})
	require.Error(t, err)
	assert.Equal(t, "category must be one of [Cloth Beauty Book Food Tech Other]", ValidationMessage(err))
}
