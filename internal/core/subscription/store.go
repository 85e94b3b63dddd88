package subscription

import (
	"context"

	"github.com/Monuyadav-01/vidoeshareapp/pkg/pagination"
)

type Repository interface {
	// Toggle flips the subscriber's subscription to the channel and
	// returns the resulting state with the channel's subscriber count.
	Toggle(context context.Context, subscriberID, channelID string) (*ToggleResult, error)

	// ListSubscribers returns the accounts subscribed to the channel,
	// newest first.
	ListSubscribers(context context.Context, channelID string, params pagination.Params) ([]ChannelEntry, int64, error)

	// ListSubscribedChannels returns the channels the subscriber follows,
	// newest first.
	ListSubscribedChannels(context context.Context, subscriberID string, params pagination.Params) ([]ChannelEntry, int64, error)
}

// ChannelDirectory answers whether an account exists.
type ChannelDirectory interface {
	ChannelExists(context context.Context, channelID string) (bool, error)
}
