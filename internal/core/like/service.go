package like

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

func (service *Service) Toggle(context context.Context, userID string, kind TargetKind, targetID string) (*ToggleResult, error) {
	return service.repo.Toggle(context, userID, kind, targetID)
}

func (service *Service) ListLikedVideos(context context.Context, userID string, params pagination.Params) ([]LikedVideo, pagination.Meta, error) {
	videos, total, err := service.repo.ListLikedVideos(context, userID, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return videos, pagination.NewMeta(params.Page, params.Limit, int(total)), nil
}
