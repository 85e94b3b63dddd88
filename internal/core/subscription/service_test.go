package subscription

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/apperr"
	"github.com/Monuyadav-01/vidoeshareapp/pkg/pagination"
)

type fakeRepo struct {
	mu sync.Mutex
	// subscriberID -> channelID set
	subs map[string]map[string]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{subs: map[string]map[string]bool{}}
}

func (f *fakeRepo) Toggle(_ context.Context, subscriberID, channelID string) (*ToggleResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.subs[subscriberID] == nil {
		f.subs[subscriberID] = map[string]bool{}
	}

	subscribed := !f.subs[subscriberID][channelID]
	if subscribed {
		f.subs[subscriberID][channelID] = true
	} else {
		delete(f.subs[subscriberID], channelID)
	}

	var count int64
	for _, channels := range f.subs {
		if channels[channelID] {
			count++
		}
	}

	return &ToggleResult{Subscribed: subscribed, ChannelID: channelID, SubscriberCount: count}, nil
}

func (f *fakeRepo) ListSubscribers(_ context.Context, channelID string, _ pagination.Params) ([]ChannelEntry, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries := []ChannelEntry{}
	for subscriberID, channels := range f.subs {
		if channels[channelID] {
			entries = append(entries, ChannelEntry{UserID: subscriberID})
		}
	}
	return entries, int64(len(entries)), nil
}

func (f *fakeRepo) ListSubscribedChannels(_ context.Context, subscriberID string, _ pagination.Params) ([]ChannelEntry, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries := []ChannelEntry{}
	for channelID := range f.subs[subscriberID] {
		entries = append(entries, ChannelEntry{UserID: channelID})
	}
	return entries, int64(len(entries)), nil
}

type fakeDirectory struct {
	known map[string]bool
}

func (f *fakeDirectory) ChannelExists(_ context.Context, channelID string) (bool, error) {
	return f.known[channelID], nil
}

func newTestService(known ...string) (*Service, *fakeRepo) {
	repo := newFakeRepo()
	directory := &fakeDirectory{known: map[string]bool{}}
	for _, id := range known {
		directory.known[id] = true
	}
	return NewService(repo, directory, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

func TestToggle_SubscribeAndUnsubscribe(t *testing.T) {
	service, _ := newTestService("channel-1")
	ctx := context.Background()

	result, err := service.Toggle(ctx, "user-1", "channel-1")
	require.NoError(t, err)
	assert.True(t, result.Subscribed)
	assert.Equal(t, int64(1), result.SubscriberCount)

	result, err = service.Toggle(ctx, "user-1", "channel-1")
	require.NoError(t, err)
	assert.False(t, result.Subscribed)
	assert.Equal(t, int64(0), result.SubscriberCount)
}

func TestToggle_SelfSubscribeRejected(t *testing.T) {
	service, repo := newTestService("user-1")

	_, err := service.Toggle(context.Background(), "user-1", "user-1")
	require.Error(t, err)

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, "UNPROCESSABLE", appError.Code)
	assert.Empty(t, repo.subs["user-1"])
}

func TestToggle_UnknownChannel(t *testing.T) {
	service, _ := newTestService("channel-1")

	_, err := service.Toggle(context.Background(), "user-1", "channel-9")
	require.Error(t, err)

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
}

func TestListSubscribers(t *testing.T) {
	service, _ := newTestService("channel-1")
	ctx := context.Background()

	_, err := service.Toggle(ctx, "user-1", "channel-1")
	require.NoError(t, err)
	_, err = service.Toggle(ctx, "user-2", "channel-1")
	require.NoError(t, err)

	entries, meta, err := service.ListSubscribers(ctx, "channel-1", pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, 2, meta.Total)
}
