package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threedblog/api/internal/core/domain"
	"github.com/threedblog/api/internal/core/ports"
)

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := NewTokenCodec([]byte("test-secret"))

	issued := ports.TokenClaims{
		UserID: 42,
		Email:  "user@example.com",
		Name:   "User",
		Kind:   domain.TokenKindAccess,
	}

	token, err := codec.Issue(issued, domain.AccessTokenTTL)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, issued, *claims)
}

func TestTokenCodec_KindPreserved(t *testing.T) {
	codec := NewTokenCodec([]byte("test-secret"))

	for _, kind := range []string{domain.TokenKindAccess, domain.TokenKindRefresh} {
		token, err := codec.Issue(ports.TokenClaims{UserID: 1, Email: "a@b.c", Kind: kind}, time.Hour)
		require.NoError(t, err)

		claims, err := codec.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, kind, claims.Kind)
	}
}

func TestTokenCodec_Expired(t *testing.T) {
	codec := NewTokenCodec([]byte("test-secret"))

	token, err := codec.Issue(ports.TokenClaims{UserID: 1, Kind: domain.TokenKindAccess}, -time.Minute)
	require.NoError(t, err)

	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	codec := NewTokenCodec([]byte("test-secret"))
	other := NewTokenCodec([]byte("other-secret"))

	token, err := codec.Issue(ports.TokenClaims{UserID: 1, Kind: domain.TokenKindAccess}, time.Hour)
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenCodec_Malformed(t *testing.T) {
	codec := NewTokenCodec([]byte("test-secret"))

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := codec.Verify(token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	}
}
