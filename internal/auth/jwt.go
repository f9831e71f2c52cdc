package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingToken is returned when a request carries no credential.
var ErrMissingToken = errors.New("missing token")

// Principal is the authenticated caller.
type Principal struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	IsPremium bool   `json:"is_premium"`
}

// Claims is the token payload: the principal plus expiry and issue time.
type Claims struct {
	UserID    int64  `json:"uid"`
	Email     string `json:"email"`
	IsPremium bool   `json:"is_premium"`
	jwt.RegisteredClaims
}

// Principal returns the caller described by the claims
func (c *Claims) Principal() Principal {
	return Principal{ID: c.UserID, Email: c.Email, IsPremium: c.IsPremium}
}

// MintToken signs an HS256 access token for p valid for ttl from now.
func MintToken(p Principal, secret string, ttl time.Duration, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:    p.ID,
		Email:     p.Email,
		IsPremium: p.IsPremium,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	return token.SignedString([]byte(secret))
}

// ParseClaims verifies an HS256 token against secret and returns its claims.
// An empty token yields ErrMissingToken.
func ParseClaims(tokenStr, secret string) (*Claims, error) {
	if tokenStr == "" {
		return nil, ErrMissingToken
	}
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if c, ok := t.Claims.(*Claims); ok && t.Valid {
		return c, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}
