package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	SetPasswordCost(bcrypt.MinCost)
	t.Cleanup(func() { SetPasswordCost(DefaultPasswordCost) })

	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, "secret1", hash)
	assert.True(t, strings.HasPrefix(hash, "$2"))
	assert.True(t, CheckPassword(hash, "secret1"))
	assert.False(t, CheckPassword(hash, "secret2"))
}

func TestHashPasswordIsSalted(t *testing.T) {
	SetPasswordCost(bcrypt.MinCost)
	t.Cleanup(func() { SetPasswordCost(DefaultPasswordCost) })

	first, err := HashPassword("same-password")
	require.NoError(t, err)
	second, err := HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	assert.False(t, CheckPassword("not-a-bcrypt-hash", "secret1"))
	assert.False(t, CheckPassword("", ""))
}

func TestSetPasswordCost(t *testing.T) {
	t.Cleanup(func() { SetPasswordCost(DefaultPasswordCost) })

	SetPasswordCost(bcrypt.MinCost)
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	SetPasswordCost(99)
	assert.Equal(t, DefaultPasswordCost, passwordCost)
}
