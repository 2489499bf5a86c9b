package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	appErrors "stall-marketplace/pkg/errors"
)

const TokenIssuer = "stall-marketplace"

// TokenClaims is the identity baked into an access token.
type TokenClaims struct {
	UserID   uuid.UUID
	Email    string
	Role     string
	Username string
}

// Claims is the signed JWT payload.
type Claims struct {
	UserID   uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	Username string    `json:"username"`
	jwt.RegisteredClaims
}

func GenerateToken(tc TokenClaims, secret string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		UserID:   tc.UserID,
		Email:    tc.Email,
		Role:     tc.Role,
		Username: tc.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   tc.UserID.String(),
			Issuer:    TokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// ValidateToken verifies signature, structure and expiry. Every failure yields
// ErrInvalidToken so callers cannot tell which check rejected the token.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	if tokenString == "" {
		return nil, appErrors.ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(TokenIssuer),
	)
	if err != nil || !token.Valid {
		return nil, appErrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == uuid.Nil {
		return nil, appErrors.ErrInvalidToken
	}

	return claims, nil
}
