package video

import "time"

// Video is a published or draft upload in the catalog.
type Video struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	VideoURL     string    `json:"video_url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Duration     float64   `json:"duration"`
	Views        int64     `json:"views"`
	IsPublished  bool      `json:"is_published"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Owner is populated on reads that join the owning channel.
	Owner *Owner `json:"owner,omitempty"`
}

// Owner is the public identity of the channel that uploaded a video.
type Owner struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// SortField values accepted by the catalog listing.
const (
	SortByCreatedAt = "created_at"
	SortByViews     = "views"
	SortByDuration  = "duration"
	SortByTitle     = "title"
)
