package like

import (
	"context"

	"github.com/Monuyadav-01/vidoeshareapp/pkg/pagination"
)

type Repository interface {
	// Toggle flips the caller's like on one target. Returns the resulting
	// liked state and the target's like count after the flip.
	Toggle(context context.Context, userID string, kind TargetKind, targetID string) (*ToggleResult, error)

	// ListLikedVideos returns the published videos the user has liked,
	// newest like first.
	ListLikedVideos(context context.Context, userID string, params pagination.Params) ([]LikedVideo, int64, error)
}
