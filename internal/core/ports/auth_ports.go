package ports

import (
	"context"
	"time"

	"github.com/threedblog/api/internal/core/domain"
)

// Identity is the normalized claim record returned by the identity
// provider after a successful code exchange.
type Identity struct {
	GoogleID   string
	Email      string
	Name       string
	PictureURL string
}

// IdentityExchanger trades an authorization code for verified identity
// claims. Fails with domain.ErrInvalidGrant when the code is malformed,
// expired or already consumed, domain.ErrIdentityProvider otherwise.
type IdentityExchanger interface {
	Exchange(ctx context.Context, code string) (*Identity, error)
}

// TokenClaims is the claim set embedded in issued tokens.
type TokenClaims struct {
	UserID int64
	Email  string
	Name   string
	Kind   string
}

// TokenCodec signs and verifies self-contained bearer tokens. Verify
// returns domain.ErrUnauthorized for any malformed, forged or expired
// token without distinguishing the cause.
type TokenCodec interface {
	Issue(claims TokenClaims, ttl time.Duration) (string, error)
	Verify(token string) (*TokenClaims, error)
}

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         *domain.User
}

type AuthService interface {
	// LoginWithCode runs the full login flow: code exchange, account
	// upsert, token pair issuance, refresh credential persistence.
	LoginWithCode(ctx context.Context, code string) (*LoginResult, error)
	// Authenticate resolves a bearer access token to its account.
	Authenticate(ctx context.Context, accessToken string) (*domain.User, error)
	// Refresh redeems a refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (string, *domain.User, error)
	// Logout revokes the stored refresh credential for the account.
	Logout(ctx context.Context, userID int64) error
}
