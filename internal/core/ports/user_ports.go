package ports

import (
	"context"

	"github.com/threedblog/api/internal/core/domain"
)

// UserRepository is the account directory. Lookups return (nil, nil)
// when no row matches.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	// UpdateProfile overwrites the mutable profile fields, attaching the
	// google id when the account was created before its first OAuth login.
	UpdateProfile(ctx context.Context, id int64, googleID, name, profileImg string) (*domain.User, error)
	// SetRefreshToken overwrites the stored refresh credential; nil
	// revokes it. Each write invalidates whatever was stored before,
	// which is what keeps a single session live per account.
	SetRefreshToken(ctx context.Context, id int64, token *string) error
	// GetByIDAndRefreshToken returns the account only when the stored
	// credential matches token exactly.
	GetByIDAndRefreshToken(ctx context.Context, id int64, token string) (*domain.User, error)
}

type UserService interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
