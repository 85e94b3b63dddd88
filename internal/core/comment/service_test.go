package comment_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Monuyadav-01/vidoeshareapp/internal/core/comment"
	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/apperr"
	"github.com/Monuyadav-01/vidoeshareapp/pkg/pagination"
)

type fakeRepo struct {
	comments map[string]*comment.Comment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{comments: map[string]*comment.Comment{}}
}

func (r *fakeRepo) Create(_ context.Context, c *comment.Comment) error {
	clone := *c
	r.comments[c.ID] = &clone
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*comment.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, apperr.NotFound("Comment")
	}
	clone := *c
	return &clone, nil
}

func (r *fakeRepo) ListByVideo(_ context.Context, videoID string, _ pagination.Params) ([]*comment.Comment, int64, error) {
	out := []*comment.Comment{}
	for _, c := range r.comments {
		if c.VideoID == videoID {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeRepo) Update(_ context.Context, id, content string) error {
	if stored, ok := r.comments[id]; ok {
		stored.Content = content
	}
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	delete(r.comments, id)
	return nil
}

type fakeCatalog struct {
	known map[string]bool
}

func (c *fakeCatalog) VideoExists(_ context.Context, videoID string) (bool, error) {
	return c.known[videoID], nil
}

func newTestService(knownVideos ...string) (*comment.Service, *fakeRepo) {
	repo := newFakeRepo()
	catalog := &fakeCatalog{known: map[string]bool{}}
	for _, id := range knownVideos {
		catalog.known[id] = true
	}
	return comment.NewService(repo, catalog, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

func TestAdd_StoresComment(t *testing.T) {
	service, repo := newTestService("video-1")

	created, err := service.Add(context.Background(), "video-1", "user-1", "nice upload")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "user-1", created.OwnerID)

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "nice upload", stored.Content)
}

func TestAdd_UnknownVideo(t *testing.T) {
	service, repo := newTestService("video-1")

	_, err := service.Add(context.Background(), "video-9", "user-1", "hello")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
	assert.Empty(t, repo.comments)
}

func TestUpdate_OwnerOnly(t *testing.T) {
	service, _ := newTestService("video-1")
	ctx := context.Background()

	created, err := service.Add(ctx, "video-1", "user-1", "original")
	require.NoError(t, err)

	_, err = service.Update(ctx, created.ID, "user-2", "hijacked")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)

	updated, err := service.Update(ctx, created.ID, "user-1", "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
}

func TestDelete_OwnerOnly(t *testing.T) {
	service, repo := newTestService("video-1")
	ctx := context.Background()

	created, err := service.Add(ctx, "video-1", "user-1", "to be removed")
	require.NoError(t, err)

	err = service.Delete(ctx, created.ID, "user-2")
	require.Error(t, err)
	require.Len(t, repo.comments, 1)

	require.NoError(t, service.Delete(ctx, created.ID, "user-1"))
	assert.Empty(t, repo.comments)
}
