package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/dberr"
	"github.com/Monuyadav-01/vidoeshareapp/pkg/pagination"
	"github.com/Monuyadav-01/vidoeshareapp/pkg/uuid"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Toggle(context context.Context, subscriberID, channelID string) (*ToggleResult, error) {
	const deleteQuery = `
		DELETE FROM core.subscription
		WHERE subscriberid = $1 AND channelid = $2
		RETURNING id`

	var deletedID string
	err := repository.db.QueryRow(context, deleteQuery, subscriberID, channelID).Scan(&deletedID)

	subscribed := false
	switch {
	case err == nil:
		// Existing subscription removed
	case errors.Is(err, pgx.ErrNoRows):
		const insertQuery = `
			INSERT INTO core.subscription (id, subscriberid, channelid, createdat)
			VALUES ($1, $2, $3, $4)`
		if _, err := repository.db.Exec(context, insertQuery, uuid.New(), subscriberID, channelID, time.Now()); err != nil {
			return nil, dberr.Wrap(err, "subscription_toggle_insert")
		}
		subscribed = true
	default:
		return nil, dberr.Wrap(err, "subscription_toggle_delete")
	}

	const countQuery = `SELECT COUNT(*) FROM core.subscription WHERE channelid = $1`
	var count int64
	if err := repository.db.QueryRow(context, countQuery, channelID).Scan(&count); err != nil {
		return nil, dberr.Wrap(err, "subscription_toggle_count")
	}

	return &ToggleResult{Subscribed: subscribed, ChannelID: channelID, SubscriberCount: count}, nil
}

func (repository *PostgresRepository) ListSubscribers(context context.Context, channelID string, params pagination.Params) ([]ChannelEntry, int64, error) {
	const countQuery = `SELECT COUNT(*) FROM core.subscription WHERE channelid = $1`

	var total int64
	if err := repository.db.QueryRow(context, countQuery, channelID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "subscription_subscribers_count")
	}

	const query = `
		SELECT a.id, a.username, a.fullname, a.avatarurl, s.createdat
		FROM core.subscription s
		JOIN users.account a ON a.id = s.subscriberid
		WHERE s.channelid = $1
		ORDER BY s.createdat DESC
		LIMIT $2 OFFSET $3`

	return repository.listEntries(context, query, channelID, params, total, "subscription_subscribers")
}

func (repository *PostgresRepository) ListSubscribedChannels(context context.Context, subscriberID string, params pagination.Params) ([]ChannelEntry, int64, error) {
	const countQuery = `SELECT COUNT(*) FROM core.subscription WHERE subscriberid = $1`

	var total int64
	if err := repository.db.QueryRow(context, countQuery, subscriberID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "subscription_channels_count")
	}

	const query = `
		SELECT a.id, a.username, a.fullname, a.avatarurl, s.createdat
		FROM core.subscription s
		JOIN users.account a ON a.id = s.channelid
		WHERE s.subscriberid = $1
		ORDER BY s.createdat DESC
		LIMIT $2 OFFSET $3`

	return repository.listEntries(context, query, subscriberID, params, total, "subscription_channels")
}

func (repository *PostgresRepository) listEntries(context context.Context, query, id string, params pagination.Params, total int64, action string) ([]ChannelEntry, int64, error) {
	rows, err := repository.db.Query(context, query, id, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, action)
	}
	defer rows.Close()

	entries := make([]ChannelEntry, 0, params.Limit)
	for rows.Next() {
		var entry ChannelEntry
		err := rows.Scan(&entry.UserID, &entry.Username, &entry.FullName, &entry.AvatarURL, &entry.SubscribedAt)
		if err != nil {
			return nil, 0, dberr.Wrap(err, action+"_scan")
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, action+"_rows")
	}

	return entries, total, nil
}

func (repository *PostgresRepository) ChannelExists(context context.Context, channelID string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM users.account WHERE id = $1)`

	var exists bool
	if err := repository.db.QueryRow(context, query, channelID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "subscription_channel_exists")
	}
	return exists, nil
}
