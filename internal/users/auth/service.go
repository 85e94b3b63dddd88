// Copyright (c) 2026 VidShare. All rights reserved.

/*
Package auth implements the core identity and session management system.

It handles everything from user registration and secure password hashing to
the session credential lifecycle: issuing access/refresh token pairs, rotating
refresh credentials, and revoking sessions.

Architecture:

  - Service: Orchestrates business logic (Register, Login, Rotation, Revocation).
  - Repository: Abstracted interface for PostgreSQL (Users + persisted refresh credential).
  - Security: Leverages bcrypt hashing and HMAC-signed JWTs with distinct
    access/refresh secrets.

Session model: each account holds at most ONE live refresh credential, stored
on the account row itself. Rotation replaces it via an atomic compare-and-swap,
so a refresh credential is single-use and a replay of a consumed credential
always fails.
*/
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/apperr"
	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/sec"
	"github.com/Monuyadav-01/vidoeshareapp/pkg/normalize"
	"github.com/Monuyadav-01/vidoeshareapp/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating and verifying security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed access JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - username: The username of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an error if signing fails.
	GenerateAccessToken(userID, username string, timeToLive time.Duration) (string, error)

	// GenerateRefreshToken creates a signed refresh JWT carrying only the user identity.
	GenerateRefreshToken(userID string, timeToLive time.Duration) (string, error)

	// VerifyAccessToken checks signature and expiry, returning the embedded claims.
	VerifyAccessToken(tokenStr string) (*sec.AuthClaims, error)

	// VerifyRefreshToken checks signature and expiry, returning the subject user ID.
	VerifyRefreshToken(tokenStr string) (string, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, rotation,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(userRepo UserRepository, tokenProv TokenProvider) *Service {
	return &Service{
		userRepository: userRepo,
		tokenProvider:  tokenProv,
	}
}

// isNotFound reports whether err is a lookup miss rather than a storage failure.
func isNotFound(err error) bool {
	ae := apperr.As(err)
	return ae != nil && ae.Code == "NOT_FOUND"
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Enrollment of a new member, normalizing the username and email,
and handling password hashing.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: Conflict (if identity exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Canonical identity: usernames and emails are stored lowercased so that
	// lookups at login never depend on the casing the client typed.
	username := normalize.Username(input.Username)
	email := normalize.Email(input.Email)

	// Verify email uniqueness. Return a client-safe Conflict error.
	_, err := service.userRepository.FindByEmail(context, email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Verify username uniqueness. Return a client-safe Conflict error.
	_, err = service.userRepository.FindByUsername(context, username)
	if err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		FullName:     input.FullName,
		PasswordHash: hashedPassword,
	}

	// Persist the user to the database. The unique constraints are the final
	// arbiter against races between the checks above and this insert.
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login    string // Can be Username or Email
	Password string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

/*
Login validates user credentials and issues a fresh session credential pair.

Description: Verifies identity, performs constant-time password comparison,
and establishes the account's single live session.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session credentials
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	login := normalize.Email(input.Login)

	// Flexible login: look up by Email, falling back to Username on a miss.
	user, err := service.userRepository.FindByEmail(context, login)
	if isNotFound(err) {
		user, err = service.userRepository.FindByUsername(context, normalize.Username(input.Login))
	}

	if err != nil {
		// Only a genuine lookup miss is NotFound; storage failures propagate.
		if isNotFound(err) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}

	// Verify password hash using constant-time comparison in bcrypt to prevent timing attacks
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	return service.issuePair(context, user)
}

/*
issuePair mints a fresh access/refresh token pair and persists the refresh
credential as the account's single live session.

Description: The freshly issued refresh token unconditionally replaces
whatever credential was stored before, so a login on a new device ends the
session on the old one.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - *LoginSession: New session credentials
  - error: Token generation or storage failures
*/
func (service *Service) issuePair(context context.Context, user *User) (*LoginSession, error) {

	// Generate short-lived Access Token
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_access_token_failed: %w", err)
	}

	// Generate long-lived Refresh Token
	refreshToken, err := service.tokenProvider.GenerateRefreshToken(user.ID, RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	// Persist the refresh credential on the account row
	if err := service.userRepository.UpdateRefreshToken(context, user.ID, refreshToken); err != nil {
		return nil, fmt.Errorf("auth_service_session_persist_failed: %w", err)
	}
	user.RefreshToken = refreshToken

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: time.Now().Add(RefreshTokenTTL),
		User:                  user,
	}, nil
}

// # Session Management

/*
RefreshSession implements the Refresh Token Rotation mechanism.

Description: Verifies the presented refresh credential against both its
signature and the single credential stored on the account, then atomically
swaps in a fresh pair. A credential can be consumed exactly once: replays
and concurrent rotation losers uniformly receive Unauthorized.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - *LoginSession: New session credentials
  - error: Unauthorized or storage failures
*/
func (service *Service) RefreshSession(context context.Context, refreshToken string) (*LoginSession, error) {

	// Verify signature and expiry of the presented credential
	userID, err := service.tokenProvider.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// Resolve the account the credential claims to belong to
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// Mint the replacement pair before touching stored state
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_access_token_failed: %w", err)
	}

	newRefreshToken, err := service.tokenProvider.GenerateRefreshToken(user.ID, RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_generation_failed: %w", err)
	}

	// Rotation: atomically swap the stored credential. The compare-and-swap
	// only succeeds if the presented credential is still the live one, which
	// defeats replays and serializes concurrent rotation attempts.
	swapped, err := service.userRepository.SwapRefreshToken(context, user.ID, refreshToken, newRefreshToken)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_swap_failed: %w", err)
	}
	if !swapped {
		return nil, apperr.Unauthorized("Refresh token is expired or has been used")
	}
	user.RefreshToken = newRefreshToken

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          newRefreshToken,
		RefreshTokenExpiresAt: time.Now().Add(RefreshTokenTTL),
		User:                  user,
	}, nil
}

/*
Logout permanently revokes the user's active session.

Description: Clears the stored refresh credential so it can never be redeemed
again. Revoking an account with no live session is a no-op (idempotent).

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Revocation failures
*/
func (service *Service) Logout(context context.Context, userID string) error {
	if err := service.userRepository.ClearRefreshToken(context, userID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}

// # Access Verification

/*
VerifyAccess validates an access token and confirms the account still exists.

Description: Stateless check plus an identity-existence lookup, so tokens for
deleted accounts stop working immediately. Every failure mode (bad signature,
expiry, malformed token, missing account) collapses into a single Unauthorized
error to avoid leaking which check failed.

Parameters:
  - context: context.Context
  - tokenStr: string

Returns:
  - *sec.AuthClaims: Claims of the verified caller
  - error: apperr.Unauthorized on any verification failure
*/
func (service *Service) VerifyAccess(context context.Context, tokenStr string) (*sec.AuthClaims, error) {
	claims, err := service.tokenProvider.VerifyAccessToken(tokenStr)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid access token")
	}

	if _, err := service.userRepository.FindByID(context, claims.UserID); err != nil {
		return nil, apperr.Unauthorized("Invalid access token")
	}

	return claims, nil
}

// # Account Security

/*
ChangePassword allows an authenticated user to update their credentials.

Description: Verifies the current password before applying the new hash. The
live refresh credential is left intact so the current session survives.

Parameters:
  - context: context.Context
  - userID: string
  - currentPassword: string
  - newPassword: string

Returns:
  - error: Unauthorized or storage failures
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword string) error {

	// Fetch user by ID
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	// Verify the current password before allowing change
	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	// Hash the brand new password
	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_change_password_hash_failed: %w", err)
	}

	// Update the database with the new hash
	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_change_password_update_failed: %w", err)
	}

	return nil
}

/*
CurrentUser returns the full account profile of the authenticated caller.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *User: Hydrated entity
  - error: NotFound or storage failures
*/
func (service *Service) CurrentUser(context context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}
