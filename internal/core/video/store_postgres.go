package video

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const videoColumns = `v.id, v.ownerid, v.title, v.description, v.videourl, v.thumbnailurl,
	v.duration, v.views, v.ispublished, v.createdat, v.updatedat,
	o.id, o.username, o.fullname, o.avatarurl`

const videoFrom = `FROM core.video v JOIN users.account o ON o.id = v.ownerid`

func scanVideo(row interface{ Scan(...any) error }) (*Video, error) {
	v := &Video{Owner: &Owner{}}
	err := row.Scan(
		&v.ID, &v.OwnerID, &v.Title, &v.Description, &v.VideoURL, &v.ThumbnailURL,
		&v.Duration, &v.Views, &v.IsPublished, &v.CreatedAt, &v.UpdatedAt,
		&v.Owner.ID, &v.Owner.Username, &v.Owner.FullName, &v.Owner.AvatarURL,
	)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (repository *PostgresRepository) Create(context context.Context, video *Video) error {
	const query = `
		INSERT INTO core.video (
			id, ownerid, title, description, videourl, thumbnailurl, duration, views, ispublished, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	now := time.Now()
	video.CreatedAt = now
	video.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		video.ID, video.OwnerID, video.Title, video.Description,
		video.VideoURL, video.ThumbnailURL, video.Duration,
		video.Views, video.IsPublished, video.CreatedAt, video.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "video_create")
	}
	return nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Video, error) {
	query := `SELECT ` + videoColumns + ` ` + videoFrom + ` WHERE v.id = $1`

	v, err := scanVideo(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "video_get_by_id")
	}
	return v, nil
}

func (repository *PostgresRepository) List(context context.Context, filter ListFilter) ([]*Video, int64, error) {
	conditions := []string{"v.ispublished = TRUE"}
	args := []any{}

	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		conditions = append(conditions, fmt.Sprintf("(v.title ILIKE $%d OR v.description ILIKE $%d)", len(args), len(args)))
	}
	if filter.OwnerID != "" {
		args = append(args, filter.OwnerID)
		conditions = append(conditions, fmt.Sprintf("v.ownerid = $%d", len(args)))
	}
	where := "WHERE " + strings.Join(conditions, " AND ")

	countQuery := `SELECT COUNT(*) FROM core.video v ` + where
	var total int64
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "video_list_count")
	}

	orderBy := sortColumn(filter.SortBy)
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}

	args = append(args, filter.Params.Limit, filter.Params.Offset())
	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		videoColumns, videoFrom, where, orderBy, direction, len(args)-1, len(args))

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "video_list")
	}
	defer rows.Close()

	videos := make([]*Video, 0, filter.Params.Limit)
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "video_list_scan")
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "video_list_rows")
	}

	return videos, total, nil
}

// sortColumn whitelists ORDER BY targets; anything unknown falls back to recency.
func sortColumn(sortBy string) string {
	switch sortBy {
	case SortByViews:
		return "v.views"
	case SortByDuration:
		return "v.duration"
	case SortByTitle:
		return "v.title"
	default:
		return "v.createdat"
	}
}

func (repository *PostgresRepository) Update(context context.Context, video *Video) error {
	const query = `
		UPDATE core.video
		SET title = $2, description = $3, thumbnailurl = $4, updatedat = $5
		WHERE id = $1`

	video.UpdatedAt = time.Now()
	_, err := repository.db.Exec(context, query,
		video.ID, video.Title, video.Description, video.ThumbnailURL, video.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "video_update")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM core.video WHERE id = $1`
	if _, err := repository.db.Exec(context, query, id); err != nil {
		return dberr.Wrap(err, "video_delete")
	}
	return nil
}

func (repository *PostgresRepository) SetPublished(context context.Context, id string, published bool) error {
	const query = `UPDATE core.video SET ispublished = $2, updatedat = $3 WHERE id = $1`
	if _, err := repository.db.Exec(context, query, id, published, time.Now()); err != nil {
		return dberr.Wrap(err, "video_set_published")
	}
	return nil
}

func (repository *PostgresRepository) IncrementViews(context context.Context, id string) error {
	const query = `UPDATE core.video SET views = views + 1 WHERE id = $1`
	if _, err := repository.db.Exec(context, query, id); err != nil {
		return dberr.Wrap(err, "video_increment_views")
	}
	return nil
}

func (repository *PostgresRepository) RecordWatch(context context.Context, userID, videoID string) error {
	// One history row per (user, video); repeat plays bump the timestamp.
	const query = `
		INSERT INTO users.watchhistory (userid, videoid, watchedat)
		VALUES ($1, $2, $3)
		ON CONFLICT (userid, videoid) DO UPDATE SET watchedat = EXCLUDED.watchedat`

	if _, err := repository.db.Exec(context, query, userID, videoID, time.Now()); err != nil {
		return dberr.Wrap(err, "video_record_watch")
	}
	return nil
}

func (repository *PostgresRepository) VideoExists(context context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM core.video WHERE id = $1 AND ispublished = TRUE)`
	var exists bool
	if err := repository.db.QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "video_exists")
	}
	return exists, nil
}
