package subscription

import (
	"context"
	"log/slog"

	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/apperr"
	"github.com/Monuyadav-01/vidoeshareapp/pkg/pagination"
)

type Service struct {
	repo      Repository
	directory ChannelDirectory
	logger    *slog.Logger
}

func NewService(repo Repository, directory ChannelDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		directory: directory,
		logger:    logger,
	}
}

func (service *Service) Toggle(context context.Context, subscriberID, channelID string) (*ToggleResult, error) {
	if subscriberID == channelID {
		return nil, apperr.Unprocessable("You cannot subscribe to your own channel")
	}

	exists, err := service.directory.ChannelExists(context, channelID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Channel not found")
	}

	return service.repo.Toggle(context, subscriberID, channelID)
}

func (service *Service) ListSubscribers(context context.Context, channelID string, params pagination.Params) ([]ChannelEntry, pagination.Meta, error) {
	entries, total, err := service.repo.ListSubscribers(context, channelID, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return entries, pagination.NewMeta(params.Page, params.Limit, int(total)), nil
}

func (service *Service) ListSubscribedChannels(context context.Context, subscriberID string, params pagination.Params) ([]ChannelEntry, pagination.Meta, error) {
	entries, total, err := service.repo.ListSubscribedChannels(context, subscriberID, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return entries, pagination.NewMeta(params.Page, params.Limit, int(total)), nil
}
