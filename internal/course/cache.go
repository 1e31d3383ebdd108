package course

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/LeDuoc95/BE-FEDUU/internal/dto"
	"github.com/LeDuoc95/BE-FEDUU/internal/logger"
	"github.com/LeDuoc95/BE-FEDUU/pkg/database"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	listCachePrefix  = "course:list:"
	listCacheVersion = "course:list:version"
	listCacheTTL     = 5 * time.Minute
)

// ListCache caches pages of the public catalogue. Every course mutation
// bumps a version number, which retires all cached pages at once.
type ListCache struct {
	client *database.RedisClient
	ttl    time.Duration
}

// NewListCache accepts a nil client, in which case nothing is cached
func NewListCache(client *database.RedisClient) *ListCache {
	return &ListCache{client: client, ttl: listCacheTTL}
}

func (lc *ListCache) key(ctx context.Context, q ListQuery) (string, error) {
	version, err := lc.client.Get(ctx, listCacheVersion).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	raw, _ := json.Marshal(q)
	return fmt.Sprintf("%sv%d:%s", listCachePrefix, version, raw), nil
}

// Get returns a cached page, or nil on a miss
func (lc *ListCache) Get(ctx context.Context, q ListQuery) *dto.Page[CourseView] {
	if lc == nil || lc.client == nil {
		return nil
	}
	k, err := lc.key(ctx, q)
	if err != nil {
		return nil
	}
	val, err := lc.client.Get(ctx, k).Bytes()
	if err != nil {
		return nil
	}
	var page dto.Page[CourseView]
	if json.Unmarshal(val, &page) != nil {
		return nil
	}
	return &page
}

func (lc *ListCache) Set(ctx context.Context, q ListQuery, page *dto.Page[CourseView]) {
	if lc == nil || lc.client == nil {
		return
	}
	k, err := lc.key(ctx, q)
	if err != nil {
		return
	}
	if data, err := json.Marshal(page); err == nil {
		lc.client.Set(ctx, k, data, lc.ttl)
	}
}

// Invalidate retires every cached page
func (lc *ListCache) Invalidate(ctx context.Context) {
	if lc == nil || lc.client == nil {
		return
	}
	if err := lc.client.Incr(ctx, listCacheVersion).Err(); err != nil {
		logger.L().Warn("course list cache not invalidated", zap.Error(err))
	}
}
