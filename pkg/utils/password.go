package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultPasswordCost is the bcrypt work factor used unless SetPasswordCost overrides it.
const DefaultPasswordCost = 12

var passwordCost = DefaultPasswordCost

// SetPasswordCost changes the bcrypt work factor for subsequent hashes.
// Values outside bcrypt's accepted range fall back to the default.
func SetPasswordCost(cost int) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultPasswordCost
	}
	passwordCost = cost
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	return string(bytes), err
}

// CheckPassword reports whether password matches hashedPassword. A malformed hash never matches.
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
