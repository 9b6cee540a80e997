package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/threedblog/api/internal/core/domain"
	"github.com/threedblog/api/internal/core/ports"
)

// AuthService drives the session lifecycle: login, whoami, refresh and
// logout. Access tokens are stateless; refresh tokens are redeemable
// only while they match the single credential stored on the account, so
// every login or logout invalidates whatever was issued before.
type AuthService struct {
	userRepo  ports.UserRepository
	exchanger ports.IdentityExchanger
	codec     ports.TokenCodec
}

func NewAuthService(userRepo ports.UserRepository, exchanger ports.IdentityExchanger, codec ports.TokenCodec) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		exchanger: exchanger,
		codec:     codec,
	}
}

func (s *AuthService) LoginWithCode(ctx context.Context, code string) (*ports.LoginResult, error) {
	identity, err := s.exchanger.Exchange(ctx, code)
	if err != nil {
		slog.Error("code exchange failed", "error", err)
		return nil, err
	}

	user, err := s.upsertUser(ctx, identity)
	if err != nil {
		slog.Error("account upsert failed", "error", err, "email", identity.Email)
		return nil, fmt.Errorf("failed to upsert account: %w", err)
	}

	accessToken, err := s.codec.Issue(ports.TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Kind:   domain.TokenKindAccess,
	}, domain.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	refreshToken, err := s.codec.Issue(ports.TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Kind:   domain.TokenKindRefresh,
	}, domain.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	// Overwrites any previously stored credential: one live session per
	// account, last login wins.
	if err := s.userRepo.SetRefreshToken(ctx, user.ID, &refreshToken); err != nil {
		slog.Error("failed to store refresh token", "error", err, "user_id", user.ID)
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	user.RefreshToken = &refreshToken

	slog.Info("login successful", "user_id", user.ID, "email", user.Email)

	return &ports.LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	claims, err := s.codec.Verify(accessToken)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if claims.Kind != domain.TokenKindAccess {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		slog.Error("failed to load user", "error", err, "user_id", claims.UserID)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}

	return user, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, *domain.User, error) {
	claims, err := s.codec.Verify(refreshToken)
	if err != nil {
		return "", nil, domain.ErrUnauthorized
	}
	if claims.Kind != domain.TokenKindRefresh {
		return "", nil, domain.ErrUnauthorized
	}

	// Exact-match lookup covers rotation and revocation: a token that
	// no longer equals the stored credential is dead even if its
	// signature and expiry still check out.
	user, err := s.userRepo.GetByIDAndRefreshToken(ctx, claims.UserID, refreshToken)
	if err != nil {
		slog.Error("refresh lookup failed", "error", err, "user_id", claims.UserID)
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return "", nil, domain.ErrUnauthorized
	}

	accessToken, err := s.codec.Issue(ports.TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Kind:   domain.TokenKindAccess,
	}, domain.AccessTokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	// The refresh token itself is not rotated here; rotation-on-use
	// would shrink the replay window and remains an open hardening item.
	return accessToken, user, nil
}

func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	if err := s.userRepo.SetRefreshToken(ctx, userID, nil); err != nil {
		slog.Error("logout failed", "error", err, "user_id", userID)
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

// upsertUser resolves an external identity to a local account in three
// steps: by google id, then by email (pre-existing account not yet
// linked gets the google id attached), then create. Profile fields are
// overwritten on every successful login.
func (s *AuthService) upsertUser(ctx context.Context, identity *ports.Identity) (*domain.User, error) {
	user, err := s.userRepo.GetByGoogleID(ctx, identity.GoogleID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return s.updateProfile(ctx, user.ID, identity)
	}

	user, err = s.userRepo.GetByEmail(ctx, identity.Email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return s.updateProfile(ctx, user.ID, identity)
	}

	googleID := identity.GoogleID
	user = &domain.User{
		GoogleID:   &googleID,
		Email:      identity.Email,
		Name:       identity.Name,
		ProfileImg: identity.PictureURL,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// updateProfile overwrites the mutable profile fields, treating a row
// that vanished between lookup and update as a failure rather than a
// nil account.
func (s *AuthService) updateProfile(ctx context.Context, id int64, identity *ports.Identity) (*domain.User, error) {
	user, err := s.userRepo.UpdateProfile(ctx, id, identity.GoogleID, identity.Name, identity.PictureURL)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("account %d disappeared during profile update", id)
	}
	return user, nil
}
