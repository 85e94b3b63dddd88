package playlist

import "time"

const (
	MaxNameLength        = 120
	MaxDescriptionLength = 1000
)

type Playlist struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	VideoCount int64           `json:"video_count"`
	Videos     []PlaylistVideo `json:"videos,omitempty"`
}

// PlaylistVideo is a video entry inside a playlist detail view.
type PlaylistVideo struct {
	VideoID      string    `json:"video_id"`
	Title        string    `json:"title"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Duration     float64   `json:"duration"`
	Views        int64     `json:"views"`
	OwnerID      string    `json:"owner_id"`
	AddedAt      time.Time `json:"added_at"`
}
