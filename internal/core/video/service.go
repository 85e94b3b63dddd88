package video

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/apperr"
	"github.com/Monuyadav-01/vidoeshareapp/pkg/pagination"
	"github.com/Monuyadav-01/vidoeshareapp/pkg/uuid"
)

// MediaStore abstracts object storage for video streams and thumbnails.
type MediaStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, publicURL string) error
}

// KeyFunc derives a fresh object key under a media prefix.
type KeyFunc func(prefix string) string

type Service struct {
	repo    Repository
	media   MediaStore
	deduper ViewDeduper
	newKey  KeyFunc
	logger  *slog.Logger
}

func NewService(repo Repository, media MediaStore, deduper ViewDeduper, newKey KeyFunc, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		media:   media,
		deduper: deduper,
		newKey:  newKey,
		logger:  logger,
	}
}

// PublishInput carries the metadata and streams for a new upload.
type PublishInput struct {
	Title         string
	Description   string
	Duration      float64
	VideoFile     io.Reader
	VideoType     string
	ThumbnailFile io.Reader
	ThumbnailType string
}

func (service *Service) Publish(context context.Context, ownerID string, input PublishInput) (*Video, error) {
	videoURL, err := service.media.Upload(context, service.newKey("videos"), input.VideoType, input.VideoFile)
	if err != nil {
		return nil, fmt.Errorf("video_service_upload_failed: %w", err)
	}

	thumbnailURL, err := service.media.Upload(context, service.newKey("thumbnails"), input.ThumbnailType, input.ThumbnailFile)
	if err != nil {
		_ = service.media.Delete(context, videoURL)
		return nil, fmt.Errorf("video_service_thumbnail_upload_failed: %w", err)
	}

	video := &Video{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Title:        input.Title,
		Description:  input.Description,
		VideoURL:     videoURL,
		ThumbnailURL: thumbnailURL,
		Duration:     input.Duration,
		IsPublished:  true,
	}

	if err := service.repo.Create(context, video); err != nil {
		_ = service.media.Delete(context, videoURL)
		_ = service.media.Delete(context, thumbnailURL)
		return nil, err
	}

	service.logger.Info("video_published",
		slog.String("video_id", video.ID),
		slog.String("owner_id", ownerID),
	)

	return video, nil
}

// Get fetches one video for playback. Unpublished videos are only visible to
// their owner. Counting side effects only fire for published videos: the view
// counter increments at most once per viewer per dedup window, and an
// authenticated playback lands in the viewer's watch history.
func (service *Service) Get(context context.Context, videoID, viewerID, viewerKey string) (*Video, error) {
	video, err := service.repo.GetByID(context, videoID)
	if err != nil {
		return nil, err
	}

	if !video.IsPublished && video.OwnerID != viewerID {
		return nil, apperr.NotFound("Video not found")
	}

	if video.IsPublished {
		counted, err := service.deduper.MarkViewed(context, videoID, viewerKey)
		if err != nil {
			// Playback beats perfect counting: log and serve.
			service.logger.Warn("view_dedup_unavailable", slog.Any("error", err))
		} else if counted {
			if err := service.repo.IncrementViews(context, videoID); err == nil {
				video.Views++
			}
		}

		if viewerID != "" {
			_ = service.repo.RecordWatch(context, viewerID, videoID)
		}
	}

	return video, nil
}

func (service *Service) List(context context.Context, filter ListFilter) ([]*Video, pagination.Meta, error) {
	videos, total, err := service.repo.List(context, filter)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return videos, pagination.NewMeta(filter.Params.Page, filter.Params.Limit, int(total)), nil
}

// UpdateInput carries the mutable metadata of an existing video.
type UpdateInput struct {
	Title         *string
	Description   *string
	ThumbnailFile io.Reader
	ThumbnailType string
}

func (service *Service) Update(context context.Context, videoID, ownerID string, input UpdateInput) (*Video, error) {
	video, err := service.ownedVideo(context, videoID, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		video.Title = *input.Title
	}
	if input.Description != nil {
		video.Description = *input.Description
	}

	oldThumbnail := ""
	if input.ThumbnailFile != nil {
		url, err := service.media.Upload(context, service.newKey("thumbnails"), input.ThumbnailType, input.ThumbnailFile)
		if err != nil {
			return nil, fmt.Errorf("video_service_thumbnail_upload_failed: %w", err)
		}
		oldThumbnail = video.ThumbnailURL
		video.ThumbnailURL = url
	}

	if err := service.repo.Update(context, video); err != nil {
		if input.ThumbnailFile != nil {
			_ = service.media.Delete(context, video.ThumbnailURL)
		}
		return nil, err
	}

	if oldThumbnail != "" {
		_ = service.media.Delete(context, oldThumbnail)
	}

	return video, nil
}

func (service *Service) Delete(context context.Context, videoID, ownerID string) error {
	video, err := service.ownedVideo(context, videoID, ownerID)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, videoID); err != nil {
		return err
	}

	// Media cleanup is best effort; orphans can be reaped by prefix later.
	_ = service.media.Delete(context, video.VideoURL)
	_ = service.media.Delete(context, video.ThumbnailURL)

	service.logger.Info("video_deleted",
		slog.String("video_id", videoID),
		slog.String("owner_id", ownerID),
	)

	return nil
}

func (service *Service) TogglePublish(context context.Context, videoID, ownerID string) (*Video, error) {
	video, err := service.ownedVideo(context, videoID, ownerID)
	if err != nil {
		return nil, err
	}

	video.IsPublished = !video.IsPublished
	if err := service.repo.SetPublished(context, videoID, video.IsPublished); err != nil {
		return nil, err
	}

	return video, nil
}

// ownedVideo loads a video and enforces that ownerID owns it.
func (service *Service) ownedVideo(context context.Context, videoID, ownerID string) (*Video, error) {
	video, err := service.repo.GetByID(context, videoID)
	if err != nil {
		return nil, err
	}
	if video.OwnerID != ownerID {
		return nil, apperr.Forbidden("You do not own this video")
	}
	return video, nil
}
