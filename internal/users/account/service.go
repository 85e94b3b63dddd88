// Copyright (c) 2026 VidShare. All rights reserved.

package account

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/apperr"
	"github.com/Monuyadav-01/vidoeshareapp/internal/users/auth"
	"github.com/Monuyadav-01/vidoeshareapp/pkg/normalize"
	"github.com/Monuyadav-01/vidoeshareapp/pkg/pagination"
)

// # Contracts

// MediaStore abstracts the object storage used for avatars and cover images.
type MediaStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, publicURL string) error
}

// KeyFunc derives a fresh object key under a media prefix. Injected so tests
// can produce deterministic keys.
type KeyFunc func(prefix string) string

// # Service Layer

// Service orchestrates business logic for user profiles and channels.
type Service struct {
	userRepository    auth.UserRepository
	accountRepository AccountRepository
	media             MediaStore
	newKey            KeyFunc
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(
	userRepo auth.UserRepository,
	accountRepo AccountRepository,
	media MediaStore,
	newKey KeyFunc,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:    userRepo,
		accountRepository: accountRepo,
		media:             media,
		newKey:            newKey,
		logger:            logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the full private identity of a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated user profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	return service.userRepository.FindByID(context, userID)
}

// UpdateAccountInput defines the mutable subset of account fields.
type UpdateAccountInput struct {
	FullName *string
	Email    *string
}

/*
UpdateAccount applies a partial set of changes to a user's account metadata.

Description: Fetches the existing user state, overrides provided fields, and
synchronizes the change to persistent storage.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateAccountInput

Returns:
  - *auth.User: The updated user profile
  - error: Conflict (email taken), update or storage failures
*/
func (service *Service) UpdateAccount(context context.Context, userID string, input UpdateAccountInput) (*auth.User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	// Apply delta updates
	if input.FullName != nil {
		user.FullName = *input.FullName
	}

	if input.Email != nil {
		email := normalize.Email(*input.Email)
		if email != user.Email {
			// A new email must not belong to another account
			if existing, err := service.userRepository.FindByEmail(context, email); err == nil && existing.ID != userID {
				return nil, apperr.Conflict("Email is already registered")
			}
			user.Email = email
		}
	}

	// Persist changes
	if err := service.userRepository.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_account_updated", slog.String("user_id", userID))

	return user, nil
}

// # Media Management

/*
UpdateAvatar replaces the user's avatar image.

Description: Streams the new image to object storage first, points the account
at it, and only then removes the superseded object. A failed upload leaves the
old avatar untouched.

Parameters:
  - context: context.Context
  - userID: string
  - contentType: string
  - file: io.Reader

Returns:
  - *auth.User: Profile with the new avatar URL
  - error: Upload or storage failures
*/
func (service *Service) UpdateAvatar(context context.Context, userID, contentType string, file io.Reader) (*auth.User, error) {
	return service.updateImage(context, userID, contentType, file, "avatars")
}

/*
UpdateCoverImage replaces the user's channel cover image.

Parameters:
  - context: context.Context
  - userID: string
  - contentType: string
  - file: io.Reader

Returns:
  - *auth.User: Profile with the new cover URL
  - error: Upload or storage failures
*/
func (service *Service) UpdateCoverImage(context context.Context, userID, contentType string, file io.Reader) (*auth.User, error) {
	return service.updateImage(context, userID, contentType, file, "covers")
}

func (service *Service) updateImage(context context.Context, userID, contentType string, file io.Reader, prefix string) (*auth.User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	url, err := service.media.Upload(context, service.newKey(prefix), contentType, file)
	if err != nil {
		return nil, fmt.Errorf("account_service_media_upload_failed: %w", err)
	}

	var oldURL string
	switch prefix {
	case "avatars":
		oldURL = user.AvatarURL
		user.AvatarURL = url
	case "covers":
		oldURL = user.CoverImageURL
		user.CoverImageURL = url
	}

	if err := service.userRepository.Update(context, user); err != nil {
		// The new object is orphaned; remove it so the bucket stays clean.
		_ = service.media.Delete(context, url)
		return nil, err
	}

	if oldURL != "" {
		_ = service.media.Delete(context, oldURL)
	}

	service.logger.Info("user_media_updated",
		slog.String("user_id", userID),
		slog.String("kind", prefix),
	)

	return user, nil
}

// # Channel & History

/*
GetChannelProfile resolves the public channel page for a username.

Parameters:
  - context: context.Context
  - username: string (case-insensitive; normalized internally)
  - viewerID: string (empty for anonymous viewers)

Returns:
  - *ChannelProfile: Channel view with subscription aggregates
  - error: NotFound or storage failures
*/
func (service *Service) GetChannelProfile(context context.Context, username, viewerID string) (*ChannelProfile, error) {
	return service.accountRepository.GetChannelProfile(context, normalize.Username(username), viewerID)
}

/*
ListWatchHistory returns the caller's watch history, newest first.

Parameters:
  - context: context.Context
  - userID: string
  - params: pagination.Params

Returns:
  - []WatchHistoryEntry: Page of history entries
  - pagination.Meta: Pagination metadata
  - error: Storage failures
*/
func (service *Service) ListWatchHistory(context context.Context, userID string, params pagination.Params) ([]WatchHistoryEntry, pagination.Meta, error) {
	entries, total, err := service.accountRepository.ListWatchHistory(context, userID, params)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("account_service_watch_history_failed: %w", err)
	}
	return entries, pagination.NewMeta(params.Page, params.Limit, int(total)), nil
}
