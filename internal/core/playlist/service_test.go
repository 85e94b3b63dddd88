package playlist_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Monuyadav-01/vidoeshareapp/internal/core/playlist"
	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/apperr"
	"github.com/Monuyadav-01/vidoeshareapp/pkg/pagination"
)

type fakeRepo struct {
	playlists map[string]*playlist.Playlist
	// playlistID -> ordered videoIDs
	members map[string][]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		playlists: map[string]*playlist.Playlist{},
		members:   map[string][]string{},
	}
}

func (r *fakeRepo) Create(_ context.Context, p *playlist.Playlist) error {
	clone := *p
	r.playlists[p.ID] = &clone
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*playlist.Playlist, error) {
	p, ok := r.playlists[id]
	if !ok {
		return nil, apperr.NotFound("Playlist")
	}
	clone := *p
	for _, videoID := range r.members[id] {
		clone.Videos = append(clone.Videos, playlist.PlaylistVideo{VideoID: videoID, AddedAt: time.Now()})
	}
	clone.VideoCount = int64(len(clone.Videos))
	return &clone, nil
}

func (r *fakeRepo) ListByOwner(_ context.Context, ownerID string, _ pagination.Params) ([]*playlist.Playlist, int64, error) {
	out := []*playlist.Playlist{}
	for _, p := range r.playlists {
		if p.OwnerID == ownerID {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeRepo) Update(_ context.Context, id, name, description string) error {
	if stored, ok := r.playlists[id]; ok {
		stored.Name = name
		stored.Description = description
	}
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	delete(r.playlists, id)
	delete(r.members, id)
	return nil
}

func (r *fakeRepo) AddVideo(_ context.Context, playlistID, videoID string) error {
	for _, existing := range r.members[playlistID] {
		if existing == videoID {
			return nil
		}
	}
	r.members[playlistID] = append(r.members[playlistID], videoID)
	return nil
}

func (r *fakeRepo) RemoveVideo(_ context.Context, playlistID, videoID string) error {
	kept := r.members[playlistID][:0]
	for _, existing := range r.members[playlistID] {
		if existing != videoID {
			kept = append(kept, existing)
		}
	}
	r.members[playlistID] = kept
	return nil
}

type fakeCatalog struct {
	known map[string]bool
}

func (c *fakeCatalog) VideoExists(_ context.Context, videoID string) (bool, error) {
	return c.known[videoID], nil
}

func newTestService(knownVideos ...string) (*playlist.Service, *fakeRepo) {
	repo := newFakeRepo()
	catalog := &fakeCatalog{known: map[string]bool{}}
	for _, id := range knownVideos {
		catalog.known[id] = true
	}
	return playlist.NewService(repo, catalog, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

func TestAddVideo_IdempotentMembership(t *testing.T) {
	service, _ := newTestService("video-1")
	ctx := context.Background()

	created, err := service.Create(ctx, "user-1", "watch later", "")
	require.NoError(t, err)

	p, err := service.AddVideo(ctx, created.ID, "video-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.VideoCount)

	// Adding the same video again does not duplicate the entry.
	p, err = service.AddVideo(ctx, created.ID, "video-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.VideoCount)
}

func TestAddVideo_UnknownVideo(t *testing.T) {
	service, _ := newTestService("video-1")
	ctx := context.Background()

	created, err := service.Create(ctx, "user-1", "watch later", "")
	require.NoError(t, err)

	_, err = service.AddVideo(ctx, created.ID, "video-9", "user-1")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

func TestAddVideo_OwnerOnly(t *testing.T) {
	service, _ := newTestService("video-1")
	ctx := context.Background()

	created, err := service.Create(ctx, "user-1", "watch later", "")
	require.NoError(t, err)

	_, err = service.AddVideo(ctx, created.ID, "video-1", "user-2")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)
}

func TestRemoveVideo(t *testing.T) {
	service, _ := newTestService("video-1", "video-2")
	ctx := context.Background()

	created, err := service.Create(ctx, "user-1", "mix", "assorted")
	require.NoError(t, err)

	_, err = service.AddVideo(ctx, created.ID, "video-1", "user-1")
	require.NoError(t, err)
	_, err = service.AddVideo(ctx, created.ID, "video-2", "user-1")
	require.NoError(t, err)

	p, err := service.RemoveVideo(ctx, created.ID, "video-1", "user-1")
	require.NoError(t, err)
	require.Equal(t, int64(1), p.VideoCount)
	assert.Equal(t, "video-2", p.Videos[0].VideoID)
}
