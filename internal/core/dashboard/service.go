package dashboard

import (
	"context"
	"log/slog"

	"github.com/Monuyadav-01/vidoeshareapp/pkg/pagination"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) Stats(context context.Context, channelID string) (*Stats, error) {
	return service.repo.GetStats(context, channelID)
}

func (service *Service) Videos(context context.Context, channelID string, params pagination.Params) ([]ChannelVideo, pagination.Meta, error) {
	videos, total, err := service.repo.ListChannelVideos(context, channelID, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return videos, pagination.NewMeta(params.Page, params.Limit, int(total)), nil
}
