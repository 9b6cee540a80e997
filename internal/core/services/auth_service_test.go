package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threedblog/api/internal/adapters/oauth/google"
	"github.com/threedblog/api/internal/core/domain"
	"github.com/threedblog/api/internal/core/ports"
)

type fakeExchanger struct {
	identity *ports.Identity
	err      error
}

func (f *fakeExchanger) Exchange(_ context.Context, _ string) (*ports.Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.identity, nil
}

type fakeUserRepo struct {
	nextID int64
	users  map[int64]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*domain.User{}}
}

func (r *fakeUserRepo) clone(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	return r.clone(r.users[id]), nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return r.clone(u), nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByGoogleID(_ context.Context, googleID string) (*domain.User, error) {
	for _, u := range r.users {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			return r.clone(u), nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = r.clone(user)
	return nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id int64, googleID, name, profileImg string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	u.GoogleID = &googleID
	u.Name = name
	u.ProfileImg = profileImg
	return r.clone(u), nil
}

func (r *fakeUserRepo) SetRefreshToken(_ context.Context, id int64, token *string) error {
	if u, ok := r.users[id]; ok {
		u.RefreshToken = token
	}
	return nil
}

func (r *fakeUserRepo) GetByIDAndRefreshToken(_ context.Context, id int64, token string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok || u.RefreshToken == nil || *u.RefreshToken != token {
		return nil, nil
	}
	return r.clone(u), nil
}

func testIdentity() *ports.Identity {
	return &ports.Identity{
		GoogleID:   "google-sub-1",
		Email:      "user@example.com",
		Name:       "User",
		PictureURL: "https://example.com/pic.png",
	}
}

func newTestAuthService(repo ports.UserRepository, exchanger ports.IdentityExchanger) *AuthService {
	return NewAuthService(repo, exchanger, NewTokenCodec([]byte("test-secret")))
}

func TestLogin_IssuesTokenPair(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, &fakeExchanger{identity: testIdentity()})
	codec := NewTokenCodec([]byte("test-secret"))

	result, err := svc.LoginWithCode(context.Background(), "code")
	require.NoError(t, err)

	access, err := codec.Verify(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, domain.TokenKindAccess, access.Kind)

	refresh, err := codec.Verify(result.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, domain.TokenKindRefresh, refresh.Kind)

	assert.Equal(t, access.UserID, refresh.UserID)
	assert.Equal(t, result.User.ID, access.UserID)
	assert.Equal(t, "user@example.com", result.User.Email)
}

func TestLogin_Idempotent(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, &fakeExchanger{identity: testIdentity()})

	first, err := svc.LoginWithCode(context.Background(), "code")
	require.NoError(t, err)

	// Same subject comes back with a new name; same account, new profile.
	updated := testIdentity()
	updated.Name = "Renamed"
	svc = newTestAuthService(repo, &fakeExchanger{identity: updated})

	second, err := svc.LoginWithCode(context.Background(), "code")
	require.NoError(t, err)

	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, "Renamed", second.User.Name)
	assert.Len(t, repo.users, 1)
}

func TestLogin_LinksExistingAccountByEmail(t *testing.T) {
	repo := newFakeUserRepo()
	require.NoError(t, repo.Create(context.Background(), &domain.User{
		Email: "user@example.com",
		Name:  "Pre-existing",
	}))

	svc := newTestAuthService(repo, &fakeExchanger{identity: testIdentity()})

	result, err := svc.LoginWithCode(context.Background(), "code")
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.User.ID)
	require.NotNil(t, result.User.GoogleID)
	assert.Equal(t, "google-sub-1", *result.User.GoogleID)
	assert.Len(t, repo.users, 1)
}

func TestLogin_PropagatesInvalidGrant(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), &fakeExchanger{err: domain.ErrInvalidGrant})

	_, err := svc.LoginWithCode(context.Background(), "bad")
	assert.ErrorIs(t, err, domain.ErrInvalidGrant)
}

func TestRefresh_SecondLoginInvalidatesFirstToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, &fakeExchanger{identity: testIdentity()})

	first, err := svc.LoginWithCode(context.Background(), "code")
	require.NoError(t, err)

	_, err = svc.LoginWithCode(context.Background(), "code")
	require.NoError(t, err)

	// Signature and expiry on the first refresh token are still fine,
	// but the stored credential has moved on.
	_, _, err = svc.Refresh(context.Background(), first.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRefresh_IssuesNewAccessToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, &fakeExchanger{identity: testIdentity()})
	codec := NewTokenCodec([]byte("test-secret"))

	result, err := svc.LoginWithCode(context.Background(), "code")
	require.NoError(t, err)

	accessToken, user, err := svc.Refresh(context.Background(), result.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, user.ID)

	claims, err := codec.Verify(accessToken)
	require.NoError(t, err)
	assert.Equal(t, domain.TokenKindAccess, claims.Kind)
	assert.Equal(t, result.User.ID, claims.UserID)
}

func TestRefresh_KindConfusion(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, &fakeExchanger{identity: testIdentity()})

	result, err := svc.LoginWithCode(context.Background(), "code")
	require.NoError(t, err)

	// Access token where a refresh token is required.
	_, _, err = svc.Refresh(context.Background(), result.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Refresh token where an access token is required.
	_, err = svc.Authenticate(context.Background(), result.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogout_ClearsRefreshCredential(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, &fakeExchanger{identity: testIdentity()})

	result, err := svc.LoginWithCode(context.Background(), "code")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), result.User.ID))

	_, _, err = svc.Refresh(context.Background(), result.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthenticate_VanishedAccount(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, &fakeExchanger{identity: testIdentity()})

	result, err := svc.LoginWithCode(context.Background(), "code")
	require.NoError(t, err)

	delete(repo.users, result.User.ID)

	_, err = svc.Authenticate(context.Background(), result.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// vanishingUserRepo drops the row between lookup and profile update,
// simulating an out-of-band deletion mid-login.
type vanishingUserRepo struct {
	*fakeUserRepo
}

func (r *vanishingUserRepo) UpdateProfile(ctx context.Context, id int64, googleID, name, profileImg string) (*domain.User, error) {
	delete(r.users, id)
	return nil, nil
}

func TestLogin_AccountVanishesDuringUpdate(t *testing.T) {
	repo := newFakeUserRepo()
	googleID := "google-sub-1"
	require.NoError(t, repo.Create(context.Background(), &domain.User{
		GoogleID: &googleID,
		Email:    "user@example.com",
		Name:     "User",
	}))

	svc := newTestAuthService(&vanishingUserRepo{repo}, &fakeExchanger{identity: testIdentity()})

	result, err := svc.LoginWithCode(context.Background(), "code")
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestLogin_MockProviderIsDeterministic(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, google.NewMockExchanger())

	first, err := svc.LoginWithCode(context.Background(), "test123")
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", first.User.Email)

	second, err := svc.LoginWithCode(context.Background(), "test123")
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Len(t, repo.users, 1)
}
