package video_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Monuyadav-01/vidoeshareapp/internal/core/video"
	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/apperr"
	"github.com/Monuyadav-01/vidoeshareapp/pkg/pagination"
)

type fakeRepo struct {
	videos  map[string]*video.Video
	watches map[string]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{videos: map[string]*video.Video{}, watches: map[string]string{}}
}

func (r *fakeRepo) Create(_ context.Context, v *video.Video) error {
	clone := *v
	r.videos[v.ID] = &clone
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*video.Video, error) {
	v, ok := r.videos[id]
	if !ok {
		return nil, apperr.NotFound("Video not found")
	}
	clone := *v
	return &clone, nil
}

func (r *fakeRepo) List(_ context.Context, filter video.ListFilter) ([]*video.Video, int64, error) {
	out := []*video.Video{}
	for _, v := range r.videos {
		if v.IsPublished {
			clone := *v
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeRepo) Update(_ context.Context, v *video.Video) error {
	stored, ok := r.videos[v.ID]
	if !ok {
		return apperr.NotFound("Video not found")
	}
	stored.Title = v.Title
	stored.Description = v.Description
	stored.ThumbnailURL = v.ThumbnailURL
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	delete(r.videos, id)
	return nil
}

func (r *fakeRepo) SetPublished(_ context.Context, id string, published bool) error {
	if stored, ok := r.videos[id]; ok {
		stored.IsPublished = published
	}
	return nil
}

func (r *fakeRepo) IncrementViews(_ context.Context, id string) error {
	if stored, ok := r.videos[id]; ok {
		stored.Views++
	}
	return nil
}

func (r *fakeRepo) RecordWatch(_ context.Context, userID, videoID string) error {
	r.watches[userID] = videoID
	return nil
}

func (r *fakeRepo) VideoExists(_ context.Context, id string) (bool, error) {
	v, ok := r.videos[id]
	return ok && v.IsPublished, nil
}

type fakeMedia struct {
	uploads int
	deleted []string
}

func (m *fakeMedia) Upload(_ context.Context, key, _ string, _ io.Reader) (string, error) {
	m.uploads++
	return "https://cdn.test/" + key, nil
}

func (m *fakeMedia) Delete(_ context.Context, url string) error {
	m.deleted = append(m.deleted, url)
	return nil
}

type fakeDeduper struct {
	seen map[string]bool
}

func (d *fakeDeduper) MarkViewed(_ context.Context, videoID, viewerKey string) (bool, error) {
	key := videoID + ":" + viewerKey
	if d.seen[key] {
		return false, nil
	}
	d.seen[key] = true
	return true, nil
}

func newTestService() (*video.Service, *fakeRepo, *fakeMedia) {
	repo := newFakeRepo()
	media := &fakeMedia{}
	deduper := &fakeDeduper{seen: map[string]bool{}}

	keyCounter := 0
	newKey := func(prefix string) string {
		keyCounter++
		return fmt.Sprintf("%s/%d", prefix, keyCounter)
	}

	service := video.NewService(repo, media, deduper, newKey, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return service, repo, media
}

func publishTestVideo(t *testing.T, service *video.Service, ownerID string) *video.Video {
	t.Helper()

	v, err := service.Publish(context.Background(), ownerID, video.PublishInput{
		Title:         "Test upload",
		Description:   "A description",
		Duration:      120,
		VideoFile:     strings.NewReader("video-bytes"),
		VideoType:     "video/mp4",
		ThumbnailFile: strings.NewReader("thumb-bytes"),
		ThumbnailType: "image/png",
	})
	require.NoError(t, err)
	return v
}

func TestPublish_StoresMediaAndRecord(t *testing.T) {
	service, repo, media := newTestService()

	v := publishTestVideo(t, service, "owner-1")

	assert.Equal(t, 2, media.uploads)
	assert.True(t, v.IsPublished)
	assert.NotEmpty(t, v.VideoURL)
	assert.NotEmpty(t, v.ThumbnailURL)

	stored, err := repo.GetByID(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", stored.OwnerID)
}

func TestGet_CountsViewOncePerViewer(t *testing.T) {
	service, _, _ := newTestService()
	v := publishTestVideo(t, service, "owner-1")

	first, err := service.Get(context.Background(), v.ID, "", "ip-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Views)

	// Same viewer again: no new view
	second, err := service.Get(context.Background(), v.ID, "", "ip-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), second.Views)

	// Different viewer: counted
	third, err := service.Get(context.Background(), v.ID, "", "ip-2")
	require.NoError(t, err)
	assert.Equal(t, int64(2), third.Views)
}

func TestGet_RecordsWatchHistoryForAuthenticated(t *testing.T) {
	service, repo, _ := newTestService()
	v := publishTestVideo(t, service, "owner-1")

	_, err := service.Get(context.Background(), v.ID, "viewer-1", "viewer-1")
	require.NoError(t, err)
	assert.Equal(t, v.ID, repo.watches["viewer-1"])

	// Anonymous playback leaves no history
	_, err = service.Get(context.Background(), v.ID, "", "ip-9")
	require.NoError(t, err)
	_, recorded := repo.watches[""]
	assert.False(t, recorded)
}

func TestGet_UnpublishedHiddenFromOthers(t *testing.T) {
	service, _, _ := newTestService()
	v := publishTestVideo(t, service, "owner-1")

	_, err := service.TogglePublish(context.Background(), v.ID, "owner-1")
	require.NoError(t, err)

	// The owner still sees the draft
	_, err = service.Get(context.Background(), v.ID, "owner-1", "owner-1")
	require.NoError(t, err)

	// Everyone else gets NOT_FOUND, not FORBIDDEN, to avoid existence leaks
	_, err = service.Get(context.Background(), v.ID, "viewer-1", "viewer-1")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

func TestUpdate_OwnershipEnforced(t *testing.T) {
	service, _, _ := newTestService()
	v := publishTestVideo(t, service, "owner-1")

	title := "New title"
	_, err := service.Update(context.Background(), v.ID, "intruder", video.UpdateInput{Title: &title})
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)

	updated, err := service.Update(context.Background(), v.ID, "owner-1", video.UpdateInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)
}

func TestDelete_RemovesMedia(t *testing.T) {
	service, repo, media := newTestService()
	v := publishTestVideo(t, service, "owner-1")

	require.Error(t, service.Delete(context.Background(), v.ID, "intruder"))
	require.NoError(t, service.Delete(context.Background(), v.ID, "owner-1"))

	_, err := repo.GetByID(context.Background(), v.ID)
	require.Error(t, err)
	assert.Len(t, media.deleted, 2)
}

func TestList_OnlyPublished(t *testing.T) {
	service, _, _ := newTestService()
	published := publishTestVideo(t, service, "owner-1")
	draft := publishTestVideo(t, service, "owner-1")

	_, err := service.TogglePublish(context.Background(), draft.ID, "owner-1")
	require.NoError(t, err)

	videos, meta, err := service.List(context.Background(), video.ListFilter{
		Params: pagination.Params{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, published.ID, videos[0].ID)
	assert.Equal(t, 1, meta.Total)
}
