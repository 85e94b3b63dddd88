package tweet

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/dberr"
	"github.com/Monuyadav-01/vidoeshareapp/pkg/pagination"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, tweet *Tweet) error {
	const query = `
		INSERT INTO core.tweet (id, ownerid, content, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5)`

	now := time.Now()
	tweet.CreatedAt = now
	tweet.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		tweet.ID, tweet.OwnerID, tweet.Content, tweet.CreatedAt, tweet.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "tweet_create")
	}
	return nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Tweet, error) {
	const query = `
		SELECT id, ownerid, content, createdat, updatedat
		FROM core.tweet
		WHERE id = $1`

	tweet := &Tweet{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&tweet.ID, &tweet.OwnerID, &tweet.Content, &tweet.CreatedAt, &tweet.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "tweet_get_by_id")
	}
	return tweet, nil
}

func (repository *PostgresRepository) ListByOwner(context context.Context, ownerID string, params pagination.Params) ([]*Tweet, int64, error) {
	const countQuery = `SELECT COUNT(*) FROM core.tweet WHERE ownerid = $1`

	var total int64
	if err := repository.db.QueryRow(context, countQuery, ownerID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "tweet_list_count")
	}

	const query = `
		SELECT
			t.id, t.ownerid, t.content, t.createdat, t.updatedat,
			o.id, o.username, o.fullname, o.avatarurl,
			(SELECT COUNT(*) FROM core.entitylike l WHERE l.tweetid = t.id) AS likecount
		FROM core.tweet t
		JOIN users.account o ON o.id = t.ownerid
		WHERE t.ownerid = $1
		ORDER BY t.createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.db.Query(context, query, ownerID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "tweet_list")
	}
	defer rows.Close()

	tweets := make([]*Tweet, 0, params.Limit)
	for rows.Next() {
		tweet := &Tweet{Owner: &Owner{}}
		err := rows.Scan(
			&tweet.ID, &tweet.OwnerID, &tweet.Content, &tweet.CreatedAt, &tweet.UpdatedAt,
			&tweet.Owner.ID, &tweet.Owner.Username, &tweet.Owner.FullName, &tweet.Owner.AvatarURL,
			&tweet.LikeCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "tweet_list_scan")
		}
		tweets = append(tweets, tweet)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "tweet_list_rows")
	}

	return tweets, total, nil
}

func (repository *PostgresRepository) Update(context context.Context, id, content string) error {
	const query = `UPDATE core.tweet SET content = $2, updatedat = $3 WHERE id = $1`
	if _, err := repository.db.Exec(context, query, id, content, time.Now()); err != nil {
		return dberr.Wrap(err, "tweet_update")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM core.tweet WHERE id = $1`
	if _, err := repository.db.Exec(context, query, id); err != nil {
		return dberr.Wrap(err, "tweet_delete")
	}
	return nil
}
