package ratelimit

import (
	"fmt"
	"net/http"
	"time"

	"github.com/LeDuoc95/BE-FEDUU/internal/logger"
	"github.com/LeDuoc95/BE-FEDUU/pkg/database"
	"github.com/LeDuoc95/BE-FEDUU/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "rate_limit:"

// RateLimiter fixed-window request counter kept in Redis
type RateLimiter struct {
	client *database.RedisClient
}

// NewRateLimiter accepts a nil client; the limiter then lets everything through
func NewRateLimiter(client *database.RedisClient) *RateLimiter {
	return &RateLimiter{client: client}
}

func key(name, ip string) string {
	return fmt.Sprintf("%s%s:%s", keyPrefix, name, ip)
}

// Limit allows limit requests per client IP per window under name
func (rl *RateLimiter) Limit(name string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.client == nil || limit <= 0 {
			c.Next()
			return
		}

		k := key(name, c.ClientIP())
		ctx := c.Request.Context()

		var incr *redis.IntCmd
		var ttlCmd *redis.DurationCmd
		_, err := rl.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			incr = pipe.Incr(ctx, k)
			ttlCmd = pipe.TTL(ctx, k)
			return nil
		})
		if err != nil {
			logger.L().Warn("rate limiter unavailable", zap.String("key", k), zap.Error(err))
			c.Next()
			return
		}
		count, ttl := incr.Val(), ttlCmd.Val()

		// a counter without expiry opens the window, also after an earlier failed Expire
		if ttl < 0 {
			if err := rl.client.Expire(ctx, k, window).Err(); err != nil {
				logger.L().Warn("rate limiter expire failed", zap.String("key", k), zap.Error(err))
			}
			ttl = window
		}

		if count > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.New(
				response.WithCode(response.TooManyRequests),
				response.WithMessage("too many requests"),
				response.WithData(gin.H{"retry_after": int(ttl.Seconds())}),
			))
			return
		}
		c.Next()
	}
}
