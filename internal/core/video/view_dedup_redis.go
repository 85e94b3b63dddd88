package video

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/constants"
)

// ViewDedupWindow is how long a repeat play by the same viewer does not count
// as a new view.
const ViewDedupWindow = 6 * time.Hour

// RedisViewDeduper implements [ViewDeduper] using SETNX markers with a TTL.
type RedisViewDeduper struct {
	client *redis.Client
}

func NewRedisViewDeduper(client *redis.Client) *RedisViewDeduper {
	return &RedisViewDeduper{client: client}
}

func (deduper *RedisViewDeduper) MarkViewed(context context.Context, videoID, viewerKey string) (bool, error) {
	key := constants.RedisPrefixViewDedup + videoID + ":" + viewerKey

	created, err := deduper.client.SetNX(context, key, 1, ViewDedupWindow).Result()
	if err != nil {
		return false, fmt.Errorf("view_dedup_mark_failed: %w", err)
	}
	return created, nil
}
