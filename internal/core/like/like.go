package like

import "time"

// TargetKind names the entity a like points at. Exactly one target is set
// per like row.
type TargetKind string

const (
	TargetVideo   TargetKind = "video"
	TargetComment TargetKind = "comment"
	TargetTweet   TargetKind = "tweet"
)

// ToggleResult reports the state after a toggle operation.
type ToggleResult struct {
	Liked     bool   `json:"liked"`
	TargetID  string `json:"target_id"`
	LikeCount int64  `json:"like_count"`
}

// LikedVideo is one entry of the caller's liked-videos listing.
type LikedVideo struct {
	VideoID       string    `json:"video_id"`
	Title         string    `json:"title"`
	ThumbnailURL  string    `json:"thumbnail_url"`
	Duration      float64   `json:"duration"`
	Views         int64     `json:"views"`
	OwnerID       string    `json:"owner_id"`
	OwnerUsername string    `json:"owner_username"`
	OwnerFullName string    `json:"owner_full_name"`
	LikedAt       time.Time `json:"liked_at"`
}
