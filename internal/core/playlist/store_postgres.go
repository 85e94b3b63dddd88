package playlist

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

func (repository *PostgresRepository) Create(context context.Context, playlist *Playlist) error {
	const query = `
		INSERT INTO core.playlist (id, ownerid, name, description, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6)`

	now := time.Now()
	playlist.CreatedAt = now
	playlist.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		playlist.ID, playlist.OwnerID, playlist.Name, playlist.Description,
		playlist.CreatedAt, playlist.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "playlist_create")
	}
	return nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Playlist, error) {
	const query = `
		SELECT id, ownerid, name, description, createdat, updatedat
		FROM core.playlist
		WHERE id = $1`

	playlist := &Playlist{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&playlist.ID, &playlist.OwnerID, &playlist.Name, &playlist.Description,
		&playlist.CreatedAt, &playlist.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "playlist_get_by_id")
	}

	const videoQuery = `
		SELECT v.id, v.title, v.thumbnailurl, v.duration, v.views, v.ownerid, pv.addedat
		FROM core.playlistvideo pv
		JOIN core.video v ON v.id = pv.videoid
		WHERE pv.playlistid = $1
		ORDER BY pv.addedat ASC`

	rows, err := repository.db.Query(context, videoQuery, id)
	if err != nil {
		return nil, dberr.Wrap(err, "playlist_videos")
	}
	defer rows.Close()

	for rows.Next() {
		var v PlaylistVideo
		err := rows.Scan(&v.VideoID, &v.Title, &v.ThumbnailURL, &v.Duration, &v.Views, &v.OwnerID, &v.AddedAt)
		if err != nil {
			return nil, dberr.Wrap(err, "playlist_videos_scan")
		}
		playlist.Videos = append(playlist.Videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "playlist_videos_rows")
	}

	playlist.VideoCount = int64(len(playlist.Videos))
	return playlist, nil
}

func (repository *PostgresRepository) ListByOwner(context context.Context, ownerID string, params pagination.Params) ([]*Playlist, int64, error) {
	const countQuery = `SELECT COUNT(*) FROM core.playlist WHERE ownerid = $1`

	var total int64
	if err := repository.db.QueryRow(context, countQuery, ownerID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "playlist_list_count")
	}

	const query = `
		SELECT
			p.id, p.ownerid, p.name, p.description, p.createdat, p.updatedat,
			(SELECT COUNT(*) FROM core.playlistvideo pv WHERE pv.playlistid = p.id) AS videocount
		FROM core.playlist p
		WHERE p.ownerid = $1
		ORDER BY p.updatedat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.db.Query(context, query, ownerID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "playlist_list")
	}
	defer rows.Close()

	playlists := make([]*Playlist, 0, params.Limit)
	for rows.Next() {
		playlist := &Playlist{}
		err := rows.Scan(
			&playlist.ID, &playlist.OwnerID, &playlist.Name, &playlist.Description,
			&playlist.CreatedAt, &playlist.UpdatedAt, &playlist.VideoCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "playlist_list_scan")
		}
		playlists = append(playlists, playlist)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "playlist_list_rows")
	}

	return playlists, total, nil
}

func (repository *PostgresRepository) Update(context context.Context, id, name, description string) error {
	const query = `UPDATE core.playlist SET name = $2, description = $3, updatedat = $4 WHERE id = $1`
	if _, err := repository.db.Exec(context, query, id, name, description, time.Now()); err != nil {
		return dberr.Wrap(err, "playlist_update")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM core.playlist WHERE id = $1`
	if _, err := repository.db.Exec(context, query, id); err != nil {
		return dberr.Wrap(err, "playlist_delete")
	}
	return nil
}

func (repository *PostgresRepository) AddVideo(context context.Context, playlistID, videoID string) error {
	const query = `
		INSERT INTO core.playlistvideo (playlistid, videoid, addedat)
		VALUES ($1, $2, $3)
		ON CONFLICT (playlistid, videoid) DO NOTHING`

	if _, err := repository.db.Exec(context, query, playlistID, videoID, time.Now()); err != nil {
		return dberr.Wrap(err, "playlist_add_video")
	}
	return nil
}

func (repository *PostgresRepository) RemoveVideo(context context.Context, playlistID, videoID string) error {
	const query = `DELETE FROM core.playlistvideo WHERE playlistid = $1 AND videoid = $2`
	if _, err := repository.db.Exec(context, query, playlistID, videoID); err != nil {
		return dberr.Wrap(err, "playlist_remove_video")
	}
	return nil
}
