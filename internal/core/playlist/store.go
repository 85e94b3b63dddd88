package playlist

import (
	"context"

	"github.com/Monuyadav-01/vidoeshareapp/pkg/pagination"
)

type Repository interface {
	Create(context context.Context, playlist *Playlist) error

	// GetByID loads the playlist together with its video entries, oldest
	// addition first.
	GetByID(context context.Context, id string) (*Playlist, error)

	ListByOwner(context context.Context, ownerID string, params pagination.Params) ([]*Playlist, int64, error)
	Update(context context.Context, id, name, description string) error
	Delete(context context.Context, id string) error

	// AddVideo is idempotent: adding a video already in the playlist is a no-op.
	AddVideo(context context.Context, playlistID, videoID string) error
	RemoveVideo(context context.Context, playlistID, videoID string) error
}

// VideoCatalog answers whether a published video exists.
type VideoCatalog interface {
	VideoExists(context context.Context, videoID string) (bool, error)
}
