// Copyright (c) 2026 VidShare. All rights reserved.

/*
Package account provides profile and channel management for registered users.

It covers the account-centric read models that go beyond raw identity: public
channel profiles with subscription aggregates, media (avatar/cover) management,
and the per-user watch history.

# Architecture

The package depends on the auth domain for the core [auth.User] entity and adds
its own repositories for aggregate queries that span the social tables.
*/
package account

import (
	"context"
	"time"

	"github.com/Monuyadav-01/vidoeshareapp/pkg/pagination"
)

// # Read Models

// ChannelProfile is the public view of a user's channel, including the
// subscription aggregates a viewer sees on the channel page.
type ChannelProfile struct {
	ID                string `json:"id"`
	Username          string `json:"username"`
	FullName          string `json:"full_name"`
	Email             string `json:"email"`
	AvatarURL         string `json:"avatar_url,omitempty"`
	CoverImageURL     string `json:"cover_image_url,omitempty"`
	SubscriberCount   int64  `json:"subscriber_count"`
	SubscribedToCount int64  `json:"subscribed_to_count"`
	IsSubscribed      bool   `json:"is_subscribed"`
}

// WatchHistoryEntry is one video the user has previously played, hydrated
// with the owning channel's public identity.
type WatchHistoryEntry struct {
	VideoID       string    `json:"video_id"`
	Title         string    `json:"title"`
	ThumbnailURL  string    `json:"thumbnail_url"`
	Duration      float64   `json:"duration"`
	Views         int64     `json:"views"`
	OwnerID       string    `json:"owner_id"`
	OwnerUsername string    `json:"owner_username"`
	OwnerFullName string    `json:"owner_full_name"`
	OwnerAvatar   string    `json:"owner_avatar,omitempty"`
	WatchedAt     time.Time `json:"watched_at"`
}

// # Data Access

// AccountRepository defines the aggregate queries backing channel pages and
// watch history.
type AccountRepository interface {

	/*
		GetChannelProfile resolves a channel page by username.

		Parameters:
		  - context: context.Context
		  - username: string (canonical lowercase handle)
		  - viewerID: string (may be empty for anonymous viewers)

		Returns:
		  - *ChannelProfile: Aggregated channel view
		  - error: NotFound or storage failures
	*/
	GetChannelProfile(context context.Context, username, viewerID string) (*ChannelProfile, error)

	/*
		ListWatchHistory returns the user's watch history, newest first.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - params: pagination.Params

		Returns:
		  - []WatchHistoryEntry: Page of history entries
		  - int64: Total entry count
		  - error: Storage failures
	*/
	ListWatchHistory(context context.Context, userID string, params pagination.Params) ([]WatchHistoryEntry, int64, error)
}

// # Field Identifiers

const (
	FieldFullName = "full_name"
	FieldEmail    = "email"
	FieldUsername = "username"
	FieldAvatar   = "avatar"
	FieldCover    = "cover_image"
)
