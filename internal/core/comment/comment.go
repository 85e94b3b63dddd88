package comment

import "time"

// Comment is a viewer remark attached to a video.
type Comment struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"video_id"`
	OwnerID   string    `json:"owner_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Owner is populated on reads that join the author.
	Owner *Owner `json:"owner,omitempty"`
	// LikeCount is populated on listing queries.
	LikeCount int64 `json:"like_count"`
}

// Owner is the public identity of a comment author.
type Owner struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// MaxContentLength caps a single comment body.
const MaxContentLength = 2000
