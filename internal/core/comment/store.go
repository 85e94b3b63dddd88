package comment

import (
	"context"

	"github.com/Monuyadav-01/vidoeshareapp/pkg/pagination"
)

type Repository interface {
	Create(context context.Context, comment *Comment) error
	GetByID(context context.Context, id string) (*Comment, error)
	ListByVideo(context context.Context, videoID string, params pagination.Params) ([]*Comment, int64, error)
	Update(context context.Context, id, content string) error
	Delete(context context.Context, id string) error
}

// VideoCatalog lets the comment domain confirm a target video is commentable
// without importing the video package.
type VideoCatalog interface {
	VideoExists(context context.Context, id string) (bool, error)
}
