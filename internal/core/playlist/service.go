package playlist

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

func (service *Service) Create(context context.Context, ownerID, name, description string) (*Playlist, error) {
	playlist := &Playlist{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
	}

	if err := service.repo.Create(context, playlist); err != nil {
		return nil, err
	}

	return playlist, nil
}

func (service *Service) Get(context context.Context, playlistID string) (*Playlist, error) {
	return service.repo.GetByID(context, playlistID)
}

func (service *Service) ListByOwner(context context.Context, ownerID string, params pagination.Params) ([]*Playlist, pagination.Meta, error) {
	playlists, total, err := service.repo.ListByOwner(context, ownerID, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return playlists, pagination.NewMeta(params.Page, params.Limit, int(total)), nil
}

func (service *Service) Update(context context.Context, playlistID, ownerID, name, description string) (*Playlist, error) {
	playlist, err := service.ownedPlaylist(context, playlistID, ownerID)
	if err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, playlistID, name, description); err != nil {
		return nil, err
	}

	playlist.Name = name
	playlist.Description = description
	return playlist, nil
}

func (service *Service) Delete(context context.Context, playlistID, ownerID string) error {
	if _, err := service.ownedPlaylist(context, playlistID, ownerID); err != nil {
		return err
	}
	return service.repo.Delete(context, playlistID)
}

func (service *Service) AddVideo(context context.Context, playlistID, videoID, ownerID string) (*Playlist, error) {
	if _, err := service.ownedPlaylist(context, playlistID, ownerID); err != nil {
		return nil, err
	}

	exists, err := service.catalog.VideoExists(context, videoID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Video not found")
	}

	if err := service.repo.AddVideo(context, playlistID, videoID); err != nil {
		return nil, err
	}

	return service.repo.GetByID(context, playlistID)
}

func (service *Service) RemoveVideo(context context.Context, playlistID, videoID, ownerID string) (*Playlist, error) {
	if _, err := service.ownedPlaylist(context, playlistID, ownerID); err != nil {
		return nil, err
	}

	if err := service.repo.RemoveVideo(context, playlistID, videoID); err != nil {
		return nil, err
	}

	return service.repo.GetByID(context, playlistID)
}

func (service *Service) ownedPlaylist(context context.Context, playlistID, ownerID string) (*Playlist, error) {
	playlist, err := service.repo.GetByID(context, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist.OwnerID != ownerID {
		return nil, apperr.Forbidden("You do not own this playlist")
	}
	return playlist, nil
}
