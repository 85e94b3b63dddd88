package comment

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

func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	const query = `
		INSERT INTO core.comment (id, videoid, ownerid, content, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6)`

	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		comment.ID, comment.VideoID, comment.OwnerID, comment.Content,
		comment.CreatedAt, comment.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "comment_create")
	}
	return nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Comment, error) {
	const query = `
		SELECT id, videoid, ownerid, content, createdat, updatedat
		FROM core.comment
		WHERE id = $1`

	comment := &Comment{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&comment.ID, &comment.VideoID, &comment.OwnerID, &comment.Content,
		&comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "comment_get_by_id")
	}
	return comment, nil
}

func (repository *PostgresRepository) ListByVideo(context context.Context, videoID string, params pagination.Params) ([]*Comment, int64, error) {
	const countQuery = `SELECT COUNT(*) FROM core.comment WHERE videoid = $1`

	var total int64
	if err := repository.db.QueryRow(context, countQuery, videoID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "comment_list_count")
	}

	const query = `
		SELECT
			c.id, c.videoid, c.ownerid, c.content, c.createdat, c.updatedat,
			o.id, o.username, o.fullname, o.avatarurl,
			(SELECT COUNT(*) FROM core.entitylike l WHERE l.commentid = c.id) AS likecount
		FROM core.comment c
		JOIN users.account o ON o.id = c.ownerid
		WHERE c.videoid = $1
		ORDER BY c.createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.db.Query(context, query, videoID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "comment_list")
	}
	defer rows.Close()

	comments := make([]*Comment, 0, params.Limit)
	for rows.Next() {
		comment := &Comment{Owner: &Owner{}}
		err := rows.Scan(
			&comment.ID, &comment.VideoID, &comment.OwnerID, &comment.Content,
			&comment.CreatedAt, &comment.UpdatedAt,
			&comment.Owner.ID, &comment.Owner.Username, &comment.Owner.FullName, &comment.Owner.AvatarURL,
			&comment.LikeCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "comment_list_scan")
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "comment_list_rows")
	}

	return comments, total, nil
}

func (repository *PostgresRepository) Update(context context.Context, id, content string) error {
	const query = `UPDATE core.comment SET content = $2, updatedat = $3 WHERE id = $1`
	if _, err := repository.db.Exec(context, query, id, content, time.Now()); err != nil {
		return dberr.Wrap(err, "comment_update")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM core.comment WHERE id = $1`
	if _, err := repository.db.Exec(context, query, id); err != nil {
		return dberr.Wrap(err, "comment_delete")
	}
	return nil
}
