// Copyright (c) 2026 Streamora. All rights reserved.
// Author: hai.phamduc.vn@gmail.com

package profile

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/haiphamduc/streamora/internal/platform/constants"
)

// ChannelProfileCacheTTL bounds the staleness of cached channel statistics.
const ChannelProfileCacheTTL = 60 * time.Second

// CachedProfileRepository decorates a [ProfileRepository] with a short-TTL
// Redis cache for channel profiles.
//
// # Semantics
//
// The cache key includes the viewer, because IsSubscribed is viewer-specific.
// Counts may lag the database by up to the TTL; watch history is never
// cached. The cache is best-effort: Redis failures degrade to the inner
// repository, they never fail the request.
type CachedProfileRepository struct {
	inner  ProfileRepository
	client *redis.Client
	logger *slog.Logger
}

// NewCachedProfileRepository wraps inner with the Redis read cache.
func NewCachedProfileRepository(inner ProfileRepository, client *redis.Client, logger *slog.Logger) *CachedProfileRepository {
	return &CachedProfileRepository{
		inner:  inner,
		client: client,
		logger: logger,
	}
}

/*
ChannelProfile returns the cached channel view, falling back to the inner
repository on a miss.

Parameters:
  - context: context.Context
  - username: string
  - viewerID: string

Returns:
  - *ChannelProfile: Cached or freshly loaded view
  - error: Propagated from the inner repository only
*/
func (repository *CachedProfileRepository) ChannelProfile(context context.Context, username, viewerID string) (*ChannelProfile, error) {
	key := cacheKey(username, viewerID)

	if cached, err := repository.client.Get(context, key).Bytes(); err == nil {
		channel := &ChannelProfile{}
		if err := json.Unmarshal(cached, channel); err == nil {
			return channel, nil
		}
		// Corrupt entry: drop it and fall through to the source of truth.
		_ = repository.client.Del(context, key).Err()
	} else if !errors.Is(err, redis.Nil) {
		repository.logger.Warn("channel_profile_cache_read_failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}

	channel, err := repository.inner.ChannelProfile(context, username, viewerID)
	if err != nil {
		// NotFound is deliberately not cached; a channel created moments
		// later should become visible immediately.
		return nil, err
	}

	if payload, err := json.Marshal(channel); err == nil {
		if err := repository.client.Set(context, key, payload, ChannelProfileCacheTTL).Err(); err != nil {
			repository.logger.Warn("channel_profile_cache_write_failed",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
	}

	return channel, nil
}

// WatchHistory passes through uncached; history must reflect the latest rows.
func (repository *CachedProfileRepository) WatchHistory(context context.Context, userID string) ([]WatchHistoryEntry, error) {
	return repository.inner.WatchHistory(context, userID)
}

// cacheKey builds the per-channel, per-viewer cache key.
func cacheKey(username, viewerID string) string {
	return constants.RedisPrefixChannelProfile + strings.ToLower(username) + ":" + viewerID
}
