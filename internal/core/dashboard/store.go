package dashboard

import (
	"context"

	"github.com/Monuyadav-01/vidoeshareapp/pkg/pagination"
)

type Repository interface {
	GetStats(context context.Context, channelID string) (*Stats, error)
	ListChannelVideos(context context.Context, channelID string, params pagination.Params) ([]ChannelVideo, int64, error)
}
