package tweet

import (
	"context"
	"log/slog"

	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/apperr"
	"github.com/Monuyadav-01/vidoeshareapp/pkg/pagination"
	"github.com/Monuyadav-01/vidoeshareapp/pkg/uuid"
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

func (service *Service) Create(context context.Context, ownerID, content string) (*Tweet, error) {
	tweet := &Tweet{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Content: content,
	}

	if err := service.repo.Create(context, tweet); err != nil {
		return nil, err
	}

	return tweet, nil
}

func (service *Service) ListByOwner(context context.Context, ownerID string, params pagination.Params) ([]*Tweet, pagination.Meta, error) {
	tweets, total, err := service.repo.ListByOwner(context, ownerID, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return tweets, pagination.NewMeta(params.Page, params.Limit, int(total)), nil
}

func (service *Service) Update(context context.Context, tweetID, ownerID, content string) (*Tweet, error) {
	tweet, err := service.ownedTweet(context, tweetID, ownerID)
	if err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, tweetID, content); err != nil {
		return nil, err
	}

	tweet.Content = content
	return tweet, nil
}

func (service *Service) Delete(context context.Context, tweetID, ownerID string) error {
	if _, err := service.ownedTweet(context, tweetID, ownerID); err != nil {
		return err
	}
	return service.repo.Delete(context, tweetID)
}

func (service *Service) ownedTweet(context context.Context, tweetID, ownerID string) (*Tweet, error) {
	tweet, err := service.repo.GetByID(context, tweetID)
	if err != nil {
		return nil, err
	}
	if tweet.OwnerID != ownerID {
		return nil, apperr.Forbidden("You do not own this tweet")
	}
	return tweet, nil
}
