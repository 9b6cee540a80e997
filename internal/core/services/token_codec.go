package services

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/threedblog/api/internal/core/domain"
	"github.com/threedblog/api/internal/core/ports"
)

type jwtClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Kind  string `json:"type"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies HS256-signed bearer tokens.
type TokenCodec struct {
	secret []byte
}

func NewTokenCodec(secret []byte) *TokenCodec {
	return &TokenCodec{secret: secret}
}

func (c *TokenCodec) Issue(claims ports.TokenClaims, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwtClaims{
		Email: claims.Email,
		Name:  claims.Name,
		Kind:  claims.Kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(claims.UserID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	return token.SignedString(c.secret)
}

// Verify reports domain.ErrUnauthorized for any bad token, never
// distinguishing forged from expired to the caller.
func (c *TokenCodec) Verify(tokenStr string) (*ports.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &jwtClaims{}, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*jwtClaims)
	if !ok || !parsed.Valid {
		return nil, domain.ErrUnauthorized
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	return &ports.TokenClaims{
		UserID: userID,
		Email:  claims.Email,
		Name:   claims.Name,
		Kind:   claims.Kind,
	}, nil
}
