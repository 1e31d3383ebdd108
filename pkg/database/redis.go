package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const pingTimeout = 5 * time.Second

// RedisConfig Redis connection settings. Zero values take the defaults of
// options.
type RedisConfig struct {
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	MaxConnAge   time.Duration
	Logger       *zap.Logger
}

// RedisClient wraps the go-redis client
type RedisClient struct {
	*redis.Client
}

func (c RedisConfig) options() *redis.Options {
	opts := &redis.Options{
		Addr:            "localhost:6379",
		Password:        c.Password,
		DB:              c.DB,
		PoolSize:        10,
		MinIdleConns:    5,
		ConnMaxLifetime: time.Hour,
	}
	if c.Host != "" || c.Port != 0 {
		host, port := c.Host, c.Port
		if host == "" {
			host = "localhost"
		}
		if port == 0 {
			port = 6379
		}
		opts.Addr = fmt.Sprintf("%s:%d", host, port)
	}
	if c.PoolSize > 0 {
		opts.PoolSize = c.PoolSize
	}
	if c.MinIdleConns > 0 {
		opts.MinIdleConns = c.MinIdleConns
	}
	if c.MaxConnAge > 0 {
		opts.ConnMaxLifetime = c.MaxConnAge
	}
	return opts
}

// InitRedis connects and pings Redis; a failed ping closes the client
func InitRedis(config *RedisConfig) (*RedisClient, error) {
	if config == nil {
		return nil, errors.New("redis config must not be nil")
	}
	opts := config.options()
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", opts.Addr, err)
	}

	orNop(config.Logger).Info("redis connected", zap.String("addr", opts.Addr), zap.Int("db", opts.DB))
	return &RedisClient{Client: client}, nil
}
