package dashboard

import (
	"context"

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

func (repository *PostgresRepository) GetStats(context context.Context, channelID string) (*Stats, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM core.video v WHERE v.ownerid = $1),
			(SELECT COALESCE(SUM(v.views), 0) FROM core.video v WHERE v.ownerid = $1),
			(SELECT COUNT(*) FROM core.subscription s WHERE s.channelid = $1),
			(SELECT COUNT(*)
			   FROM core.entitylike l
			   JOIN core.video v ON v.id = l.videoid
			  WHERE v.ownerid = $1)`

	stats := &Stats{}
	err := repository.db.QueryRow(context, query, channelID).Scan(
		&stats.TotalVideos, &stats.TotalViews, &stats.TotalSubscribers, &stats.TotalLikes,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "dashboard_stats")
	}
	return stats, nil
}

func (repository *PostgresRepository) ListChannelVideos(context context.Context, channelID string, params pagination.Params) ([]ChannelVideo, int64, error) {
	const countQuery = `SELECT COUNT(*) FROM core.video WHERE ownerid = $1`

	var total int64
	if err := repository.db.QueryRow(context, countQuery, channelID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "dashboard_videos_count")
	}

	const query = `
		SELECT
			v.id, v.title, v.thumbnailurl, v.duration, v.views, v.ispublished, v.createdat,
			(SELECT COUNT(*) FROM core.entitylike l WHERE l.videoid = v.id) AS likecount,
			(SELECT COUNT(*) FROM core.comment c WHERE c.videoid = v.id) AS commentcount
		FROM core.video v
		WHERE v.ownerid = $1
		ORDER BY v.createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.db.Query(context, query, channelID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "dashboard_videos")
	}
	defer rows.Close()

	videos := make([]ChannelVideo, 0, params.Limit)
	for rows.Next() {
		var v ChannelVideo
		err := rows.Scan(
			&v.ID, &v.Title, &v.ThumbnailURL, &v.Duration, &v.Views, &v.IsPublished, &v.CreatedAt,
			&v.LikeCount, &v.CommentCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "dashboard_videos_scan")
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "dashboard_videos_rows")
	}

	return videos, total, nil
}
