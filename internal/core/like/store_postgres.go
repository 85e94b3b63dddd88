package like

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/apperr"
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

// targetColumn maps a kind to its like-table column. Kinds are a closed set,
// so this never feeds user input into SQL.
func targetColumn(kind TargetKind) (string, error) {
	switch kind {
	case TargetVideo:
		return "videoid", nil
	case TargetComment:
		return "commentid", nil
	case TargetTweet:
		return "tweetid", nil
	default:
		return "", apperr.ValidationError(fmt.Sprintf("Unknown like target %q", kind))
	}
}

func (repository *PostgresRepository) Toggle(context context.Context, userID string, kind TargetKind, targetID string) (*ToggleResult, error) {
	column, err := targetColumn(kind)
	if err != nil {
		return nil, err
	}

	// Try to remove an existing like first; if none was there, add one.
	deleteQuery := fmt.Sprintf(
		`DELETE FROM core.entitylike WHERE likedby = $1 AND %s = $2 RETURNING id`, column)

	var deletedID string
	err = repository.db.QueryRow(context, deleteQuery, userID, targetID).Scan(&deletedID)

	liked := false
	switch {
	case err == nil:
		// Existing like removed
	case errors.Is(err, pgx.ErrNoRows):
		insertQuery := fmt.Sprintf(
			`INSERT INTO core.entitylike (id, likedby, %s, createdat) VALUES ($1, $2, $3, $4)`, column)
		if _, err := repository.db.Exec(context, insertQuery, uuid.New(), userID, targetID, time.Now()); err != nil {
			return nil, dberr.Wrap(err, "like_toggle_insert")
		}
		liked = true
	default:
		return nil, dberr.Wrap(err, "like_toggle_delete")
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM core.entitylike WHERE %s = $1`, column)
	var count int64
	if err := repository.db.QueryRow(context, countQuery, targetID).Scan(&count); err != nil {
		return nil, dberr.Wrap(err, "like_toggle_count")
	}

	return &ToggleResult{Liked: liked, TargetID: targetID, LikeCount: count}, nil
}

func (repository *PostgresRepository) ListLikedVideos(context context.Context, userID string, params pagination.Params) ([]LikedVideo, int64, error) {
	const countQuery = `
		SELECT COUNT(*)
		FROM core.entitylike l
		JOIN core.video v ON v.id = l.videoid AND v.ispublished = TRUE
		WHERE l.likedby = $1 AND l.videoid IS NOT NULL`

	var total int64
	if err := repository.db.QueryRow(context, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "like_list_count")
	}

	const query = `
		SELECT
			v.id, v.title, v.thumbnailurl, v.duration, v.views,
			o.id, o.username, o.fullname,
			l.createdat
		FROM core.entitylike l
		JOIN core.video v    ON v.id = l.videoid AND v.ispublished = TRUE
		JOIN users.account o ON o.id = v.ownerid
		WHERE l.likedby = $1 AND l.videoid IS NOT NULL
		ORDER BY l.createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.db.Query(context, query, userID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "like_list")
	}
	defer rows.Close()

	videos := make([]LikedVideo, 0, params.Limit)
	for rows.Next() {
		var v LikedVideo
		err := rows.Scan(
			&v.VideoID, &v.Title, &v.ThumbnailURL, &v.Duration, &v.Views,
			&v.OwnerID, &v.OwnerUsername, &v.OwnerFullName,
			&v.LikedAt,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "like_list_scan")
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "like_list_rows")
	}

	return videos, total, nil
}
