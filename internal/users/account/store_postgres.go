// Copyright (c) 2026 VidShare. All rights reserved.

package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/apperr"
	"github.com/Monuyadav-01/vidoeshareapp/pkg/pagination"
)

// PostgresAccountRepository implements [AccountRepository] using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL implementation of AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

/*
GetChannelProfile resolves a channel page, letting the database compute the
subscription aggregates in a single round trip.

Parameters:
  - context: context.Context
  - username: string
  - viewerID: string (empty for anonymous viewers)

Returns:
  - *ChannelProfile: Aggregated channel view
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresAccountRepository) GetChannelProfile(context context.Context, username, viewerID string) (*ChannelProfile, error) {
	const query = `
		SELECT
			u.id, u.username, u.fullname, u.email, u.avatarurl, u.coverimageurl,
			(SELECT COUNT(*) FROM core.subscription s WHERE s.channelid = u.id)    AS subscribercount,
			(SELECT COUNT(*) FROM core.subscription s WHERE s.subscriberid = u.id) AS subscribedtocount,
			EXISTS (
				SELECT 1 FROM core.subscription s
				WHERE s.channelid = u.id AND s.subscriberid = NULLIF($2, '')::uuid
			) AS issubscribed
		FROM users.account u
		WHERE u.username = $1`

	profile := &ChannelProfile{}
	err := repository.pool.QueryRow(context, query, username, viewerID).Scan(
		&profile.ID,
		&profile.Username,
		&profile.FullName,
		&profile.Email,
		&profile.AvatarURL,
		&profile.CoverImageURL,
		&profile.SubscriberCount,
		&profile.SubscribedToCount,
		&profile.IsSubscribed,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Channel not found")
		}
		return nil, fmt.Errorf("postgres_account_repo_channel_profile_failed: %w", err)
	}

	return profile, nil
}

/*
ListWatchHistory returns the user's watch history joined against the video
catalog and each video's owning channel, newest first.

Parameters:
  - context: context.Context
  - userID: string
  - params: pagination.Params

Returns:
  - []WatchHistoryEntry: Page of history entries
  - int64: Total entry count
  - error: Execution errors
*/
func (repository *PostgresAccountRepository) ListWatchHistory(context context.Context, userID string, params pagination.Params) ([]WatchHistoryEntry, int64, error) {
	const countQuery = `
		SELECT COUNT(*)
		FROM users.watchhistory h
		JOIN core.video v ON v.id = h.videoid AND v.ispublished = TRUE
		WHERE h.userid = $1`

	var total int64
	if err := repository.pool.QueryRow(context, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_history_count_failed: %w", err)
	}

	const query = `
		SELECT
			v.id, v.title, v.thumbnailurl, v.duration, v.views,
			o.id, o.username, o.fullname, o.avatarurl,
			h.watchedat
		FROM users.watchhistory h
		JOIN core.video v    ON v.id = h.videoid AND v.ispublished = TRUE
		JOIN users.account o ON o.id = v.ownerid
		WHERE h.userid = $1
		ORDER BY h.watchedat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, userID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_history_query_failed: %w", err)
	}
	defer rows.Close()

	entries := make([]WatchHistoryEntry, 0, params.Limit)
	for rows.Next() {
		var entry WatchHistoryEntry
		err := rows.Scan(
			&entry.VideoID,
			&entry.Title,
			&entry.ThumbnailURL,
			&entry.Duration,
			&entry.Views,
			&entry.OwnerID,
			&entry.OwnerUsername,
			&entry.OwnerFullName,
			&entry.OwnerAvatar,
			&entry.WatchedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_account_repo_history_scan_failed: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_history_rows_failed: %w", err)
	}

	return entries, total, nil
}
