// Copyright (c) 2026 VidShare. All rights reserved.

package auth_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/apperr"
	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/sec"
	"github.com/Monuyadav-01/vidoeshareapp/internal/users/auth"
)

// # Test Doubles

// fakeUserRepository is an in-memory UserRepository. SwapRefreshToken performs
// the same compare-and-swap the SQL implementation does, under a mutex, so the
// rotation semantics under test match production.
type fakeUserRepository struct {
	mu    sync.Mutex
	users map[string]*auth.User

	// lookupErr, when set, is returned by every Find method to simulate a
	// storage failure rather than a lookup miss.
	lookupErr error
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*auth.User)}
}

func (repo *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.users[id]
	if !ok {
		return nil, apperr.NotFound("User not found")
	}
	clone := *user
	return &clone, nil
}

func (repo *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.lookupErr != nil {
		return nil, repo.lookupErr
	}
	for _, user := range repo.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User not found with this email")
}

func (repo *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.lookupErr != nil {
		return nil, repo.lookupErr
	}
	for _, user := range repo.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User not found with this username")
}

func (repo *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, existing := range repo.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return apperr.Conflict("Resource already exists")
		}
	}
	clone := *user
	repo.users[user.ID] = &clone
	return nil
}

func (repo *fakeUserRepository) Update(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	stored, ok := repo.users[user.ID]
	if !ok {
		return apperr.NotFound("User not found")
	}
	stored.FullName = user.FullName
	stored.Email = user.Email
	stored.AvatarURL = user.AvatarURL
	stored.CoverImageURL = user.CoverImageURL
	return nil
}

func (repo *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if stored, ok := repo.users[userID]; ok {
		stored.PasswordHash = newHash
	}
	return nil
}

func (repo *fakeUserRepository) UpdateRefreshToken(_ context.Context, userID, refreshToken string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if stored, ok := repo.users[userID]; ok {
		stored.RefreshToken = refreshToken
	}
	return nil
}

func (repo *fakeUserRepository) SwapRefreshToken(_ context.Context, userID, oldToken, newToken string) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	stored, ok := repo.users[userID]
	if !ok || stored.RefreshToken != oldToken {
		return false, nil
	}
	stored.RefreshToken = newToken
	return true, nil
}

func (repo *fakeUserRepository) ClearRefreshToken(_ context.Context, userID string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if stored, ok := repo.users[userID]; ok {
		stored.RefreshToken = ""
	}
	return nil
}

// storedRefreshToken reads the persisted credential directly, bypassing the service.
func (repo *fakeUserRepository) storedRefreshToken(userID string) string {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if stored, ok := repo.users[userID]; ok {
		return stored.RefreshToken
	}
	return ""
}

func (repo *fakeUserRepository) delete(userID string) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	delete(repo.users, userID)
}

// # Helpers

func newTestService(t *testing.T) (*auth.Service, *fakeUserRepository) {
	t.Helper()

	tokenService, err := sec.NewTokenService(
		"test-access-secret-0123456789",
		"test-refresh-secret-0123456789",
		"vidshare.test",
	)
	require.NoError(t, err)

	repo := newFakeUserRepository()
	return auth.NewService(repo, tokenService), repo
}

func registerAlice(t *testing.T, service *auth.Service) *auth.User {
	t.Helper()

	user, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct horse battery",
		FullName: "Alice Doe",
	})
	require.NoError(t, err)
	return user
}

// # Registration

/*
TestRegister_NormalizesIdentity verifies that usernames and emails are stored
in canonical lowercase form and that the password is never stored in plain text.
*/
func TestRegister_NormalizesIdentity(t *testing.T) {
	service, _ := newTestService(t)

	user, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "  Alice ",
		Email:    "ALICE@Example.COM",
		Password: "correct horse battery",
		FullName: "Alice Doe",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("correct horse battery", user.PasswordHash))
}

/*
TestRegister_Conflicts verifies that duplicate usernames and emails are
rejected with a CONFLICT error, even when the casing differs.
*/
func TestRegister_Conflicts(t *testing.T) {
	service, _ := newTestService(t)
	registerAlice(t, service)

	tests := []struct {
		name  string
		input auth.RegisterInput
	}{
		{"duplicate_email", auth.RegisterInput{
			Username: "someone-else", Email: "Alice@example.com", Password: "password123", FullName: "X",
		}},
		{"duplicate_username", auth.RegisterInput{
			Username: "ALICE", Email: "other@example.com", Password: "password123", FullName: "X",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Register(context.Background(), tt.input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "CONFLICT", ae.Code)
		})
	}
}

// # Login

/*
TestLogin_IssuesPair verifies that a successful login yields a distinct
access/refresh pair and persists the refresh credential on the account.
*/
func TestLogin_IssuesPair(t *testing.T) {
	service, repo := newTestService(t)
	user := registerAlice(t, service)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Login:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.NotEqual(t, session.AccessToken, session.RefreshToken)

	// The refresh credential must be the account's single live session
	assert.Equal(t, session.RefreshToken, repo.storedRefreshToken(user.ID))

	// The access token must verify and carry the caller's identity
	claims, err := service.VerifyAccess(context.Background(), session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

/*
TestLogin_ByUsername verifies that the login field accepts a username as well
as an email, regardless of casing.
*/
func TestLogin_ByUsername(t *testing.T) {
	service, _ := newTestService(t)
	registerAlice(t, service)

	_, err := service.Login(context.Background(), auth.LoginInput{
		Login:    "Alice",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
}

/*
TestLogin_WrongPassword verifies that a failed login returns UNAUTHORIZED and
leaves the stored session state untouched.
*/
func TestLogin_WrongPassword(t *testing.T) {
	service, repo := newTestService(t)
	user := registerAlice(t, service)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Login:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	_, err = service.Login(context.Background(), auth.LoginInput{
		Login:    "alice@example.com",
		Password: "totally wrong",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)

	// The live session must survive the failed attempt
	assert.Equal(t, session.RefreshToken, repo.storedRefreshToken(user.ID))
}

/*
TestLogin_UnknownIdentity verifies that an identity lookup miss is reported
as NotFound, while a wrong password for an existing identity stays
Unauthorized.
*/
func TestLogin_UnknownIdentity(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Login(context.Background(), auth.LoginInput{
		Login:    "nobody@example.com",
		Password: "whatever",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

/*
TestLogin_StorageFailurePropagates verifies that a repository failure during
the identity lookup surfaces as an internal error, never as NotFound. Only a
genuine lookup miss may claim the user does not exist.
*/
func TestLogin_StorageFailurePropagates(t *testing.T) {
	service, repo := newTestService(t)
	registerAlice(t, service)

	repo.lookupErr = apperr.Internal(errors.New("connection refused"))

	_, err := service.Login(context.Background(), auth.LoginInput{
		Login:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.NotEqual(t, "NOT_FOUND", ae.Code)
	assert.Equal(t, "INTERNAL_ERROR", ae.Code)
}

// # Rotation

/*
TestRefreshSession_RotatesOnce verifies the single-use chain: a refresh
credential can be redeemed exactly once, its replacement works, and a replay
of the consumed credential fails.
*/
func TestRefreshSession_RotatesOnce(t *testing.T) {
	service, repo := newTestService(t)
	user := registerAlice(t, service)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Login:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	// First redemption succeeds and replaces the stored credential
	rotated, err := service.RefreshSession(context.Background(), session.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)
	assert.Equal(t, rotated.RefreshToken, repo.storedRefreshToken(user.ID))

	// Replaying the consumed credential fails
	_, err = service.RefreshSession(context.Background(), session.RefreshToken)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)

	// The replay must not have destroyed the live credential
	assert.Equal(t, rotated.RefreshToken, repo.storedRefreshToken(user.ID))

	// The chain continues from the latest credential
	_, err = service.RefreshSession(context.Background(), rotated.RefreshToken)
	require.NoError(t, err)
}

/*
TestRefreshSession_ConcurrentRedemption races many redemptions of the same
refresh credential and verifies the compare-and-swap admits at most one
winner: exactly one caller receives a new pair, every loser gets
UNAUTHORIZED, and the stored credential ends up being the winner's.
*/
func TestRefreshSession_ConcurrentRedemption(t *testing.T) {
	service, repo := newTestService(t)
	user := registerAlice(t, service)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Login:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	const callers = 16

	var wg sync.WaitGroup
	results := make([]*auth.LoginSession, callers)
	failures := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			rotated, err := service.RefreshSession(context.Background(), session.RefreshToken)
			if err != nil {
				failures[slot] = err
				return
			}
			results[slot] = rotated
		}(i)
	}
	wg.Wait()

	var winner *auth.LoginSession
	winners := 0
	for i := 0; i < callers; i++ {
		if results[i] != nil {
			winner = results[i]
			winners++
			continue
		}
		ae := apperr.As(failures[i])
		require.NotNil(t, ae)
		assert.Equal(t, "UNAUTHORIZED", ae.Code)
	}

	require.Equal(t, 1, winners, "exactly one redemption may win")
	assert.Equal(t, winner.RefreshToken, repo.storedRefreshToken(user.ID))

	// The chain continues only from the winner's credential
	_, err = service.RefreshSession(context.Background(), winner.RefreshToken)
	require.NoError(t, err)
}

/*
TestRefreshSession_Garbage verifies that malformed and foreign-signed tokens
are rejected with UNAUTHORIZED.
*/
func TestRefreshSession_Garbage(t *testing.T) {
	service, _ := newTestService(t)
	registerAlice(t, service)

	for _, token := range []string{"", "not-a-jwt", "aaa.bbb.ccc"} {
		_, err := service.RefreshSession(context.Background(), token)
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "UNAUTHORIZED", ae.Code)
	}
}

/*
TestRefreshSession_AccessTokenRejected verifies that the two credential types
are not interchangeable: an access token cannot be redeemed as a refresh token.
*/
func TestRefreshSession_AccessTokenRejected(t *testing.T) {
	service, _ := newTestService(t)
	registerAlice(t, service)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Login:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	_, err = service.RefreshSession(context.Background(), session.AccessToken)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
}

// # Revocation

/*
TestLogout_RevokesSession verifies that logout kills the refresh chain and
that repeated logouts are harmless.
*/
func TestLogout_RevokesSession(t *testing.T) {
	service, repo := newTestService(t)
	user := registerAlice(t, service)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Login:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), user.ID))
	assert.Empty(t, repo.storedRefreshToken(user.ID))

	// The revoked credential can no longer be redeemed
	_, err = service.RefreshSession(context.Background(), session.RefreshToken)
	require.Error(t, err)

	// Idempotent: a second revocation succeeds
	require.NoError(t, service.Logout(context.Background(), user.ID))
}

/*
TestLogout_AccessTokenStaysValid documents that access verification is
stateless apart from the existence check: an access token issued before
logout keeps working until it expires.
*/
func TestLogout_AccessTokenStaysValid(t *testing.T) {
	service, _ := newTestService(t)
	user := registerAlice(t, service)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Login:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), user.ID))

	claims, err := service.VerifyAccess(context.Background(), session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

// # Access Verification

/*
TestVerifyAccess_Failures verifies that every failure mode collapses into the
same UNAUTHORIZED error.
*/
func TestVerifyAccess_Failures(t *testing.T) {
	service, repo := newTestService(t)
	user := registerAlice(t, service)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Login:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	// Garbage input
	for _, token := range []string{"", "garbage", "aaa.bbb.ccc"} {
		_, err := service.VerifyAccess(context.Background(), token)
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "UNAUTHORIZED", ae.Code)
	}

	// A refresh token is not an access token
	_, err = service.VerifyAccess(context.Background(), session.RefreshToken)
	require.Error(t, err)

	// A token for a deleted account fails the existence check
	repo.delete(user.ID)
	_, err = service.VerifyAccess(context.Background(), session.AccessToken)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
}

// # Password Change

/*
TestChangePassword verifies the verify-then-rotate behavior of password
updates and that the live session is preserved.
*/
func TestChangePassword(t *testing.T) {
	service, repo := newTestService(t)
	user := registerAlice(t, service)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Login:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	// Wrong current password is rejected and changes nothing
	err = service.ChangePassword(context.Background(), user.ID, "wrong", "new password 123")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)

	_, err = service.Login(context.Background(), auth.LoginInput{
		Login:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	// Correct current password applies the new one
	err = service.ChangePassword(context.Background(), user.ID, "correct horse battery", "new password 123")
	require.NoError(t, err)

	_, err = service.Login(context.Background(), auth.LoginInput{
		Login:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.Error(t, err)

	_, err = service.Login(context.Background(), auth.LoginInput{
		Login:    "alice@example.com",
		Password: "new password 123",
	})
	require.NoError(t, err)

	// Changing the password does not clear the session credential by itself
	assert.NotEmpty(t, repo.storedRefreshToken(user.ID))
	_ = session
}

// # Full Lifecycle

/*
TestSessionLifecycle walks the full journey of a single account: register,
login, rotate twice, replay an old credential, and log out.
*/
func TestSessionLifecycle(t *testing.T) {
	service, repo := newTestService(t)
	user := registerAlice(t, service)
	ctx := context.Background()

	// Login establishes the chain
	first, err := service.Login(ctx, auth.LoginInput{Login: "alice", Password: "correct horse battery"})
	require.NoError(t, err)

	// Two rotations advance the chain
	second, err := service.RefreshSession(ctx, first.RefreshToken)
	require.NoError(t, err)
	third, err := service.RefreshSession(ctx, second.RefreshToken)
	require.NoError(t, err)

	// Every superseded credential is dead
	for _, stale := range []string{first.RefreshToken, second.RefreshToken} {
		_, err := service.RefreshSession(ctx, stale)
		require.Error(t, err)
	}

	// Only the newest access token and the newest refresh token matter
	claims, err := service.VerifyAccess(ctx, third.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	// Logout ends the chain entirely
	require.NoError(t, service.Logout(ctx, user.ID))
	_, err = service.RefreshSession(ctx, third.RefreshToken)
	require.Error(t, err)
	assert.Empty(t, repo.storedRefreshToken(user.ID))
}
