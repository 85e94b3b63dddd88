package comment

import (
	"context"
	"log/slog"

	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/apperr"
	"github.com/Monuyadav-01/vidoeshareapp/pkg/pagination"
	"github.com/Monuyadav-01/vidoeshareapp/pkg/uuid"
)

type Service struct {
	repo    Repository
	catalog VideoCatalog
	logger  *slog.Logger
}

func NewService(repo Repository, catalog VideoCatalog, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		logger:  logger,
	}
}

func (service *Service) Add(context context.Context, videoID, ownerID, content string) (*Comment, error) {
	exists, err := service.catalog.VideoExists(context, videoID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Video not found")
	}

	comment := &Comment{
		ID:      uuid.New(),
		VideoID: videoID,
		OwnerID: ownerID,
		Content: content,
	}

	if err := service.repo.Create(context, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (service *Service) ListByVideo(context context.Context, videoID string, params pagination.Params) ([]*Comment, pagination.Meta, error) {
	comments, total, err := service.repo.ListByVideo(context, videoID, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return comments, pagination.NewMeta(params.Page, params.Limit, int(total)), nil
}

func (service *Service) Update(context context.Context, commentID, ownerID, content string) (*Comment, error) {
	comment, err := service.ownedComment(context, commentID, ownerID)
	if err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, commentID, content); err != nil {
		return nil, err
	}

	comment.Content = content
	return comment, nil
}

func (service *Service) Delete(context context.Context, commentID, ownerID string) error {
	if _, err := service.ownedComment(context, commentID, ownerID); err != nil {
		return err
	}
	return service.repo.Delete(context, commentID)
}

func (service *Service) ownedComment(context context.Context, commentID, ownerID string) (*Comment, error) {
	comment, err := service.repo.GetByID(context, commentID)
	if err != nil {
		return nil, err
	}
	if comment.OwnerID != ownerID {
		return nil, apperr.Forbidden("You do not own this comment")
	}
	return comment, nil
}
