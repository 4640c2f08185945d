// Package auth issues and verifies the bearer tokens that carry an actor's
// identity, and manages credential hashing for the account endpoints.
package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/aryansawant3579-cell/review-app/internal/domain"
)

// ErrInvalidToken flags a token that failed signature, shape, or expiry checks.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the JWT payload: everything needed to rebuild the Actor without a
// database round trip.
type Claims struct {
	Role     string  `json:"role"`
	BranchID *string `json:"branchId,omitempty"`
	jwt.RegisteredClaims
}

// SignToken mints an HS256 token for the actor with the given lifetime.
func SignToken(secret []byte, actor domain.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role:     string(actor.Role),
		BranchID: actor.BranchID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies a token and rebuilds the Actor it encodes.
func ParseToken(secret []byte, tokenString string) (domain.Actor, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return domain.Actor{}, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return domain.Actor{}, ErrInvalidToken
	}
	return domain.Actor{
		ID:       claims.Subject,
		Role:     domain.Role(claims.Role),
		BranchID: claims.BranchID,
	}, nil
}
