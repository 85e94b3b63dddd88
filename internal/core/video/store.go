package video

import (
	"context"

	"github.com/Monuyadav-01/vidoeshareapp/pkg/pagination"
)

// ListFilter narrows and orders the catalog listing.
type ListFilter struct {
	Query    string // free-text match on title/description
	OwnerID  string // restrict to one channel
	SortBy   string // one of the SortBy* constants
	SortDesc bool
	Params   pagination.Params
}

type Repository interface {
	Create(context context.Context, video *Video) error
	GetByID(context context.Context, id string) (*Video, error)
	List(context context.Context, filter ListFilter) ([]*Video, int64, error)
	Update(context context.Context, video *Video) error
	Delete(context context.Context, id string) error
	SetPublished(context context.Context, id string, published bool) error
	IncrementViews(context context.Context, id string) error
	RecordWatch(context context.Context, userID, videoID string) error
	VideoExists(context context.Context, id string) (bool, error)
}

// ViewDeduper decides whether a playback should count as a new view.
type ViewDeduper interface {
	// MarkViewed returns true the first time viewerKey sees videoID within
	// the dedup window, false on repeats.
	MarkViewed(context context.Context, videoID, viewerKey string) (bool, error)
}
