package subscription

import "time"

// ToggleResult reports the state after a subscribe toggle.
type ToggleResult struct {
	Subscribed      bool   `json:"subscribed"`
	ChannelID       string `json:"channel_id"`
	SubscriberCount int64  `json:"subscriber_count"`
}

// ChannelEntry is one row of a subscriber or subscribed-channel listing.
type ChannelEntry struct {
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name"`
	AvatarURL    string    `json:"avatar_url"`
	SubscribedAt time.Time `json:"subscribed_at"`
}
