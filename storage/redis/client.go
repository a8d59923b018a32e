package redis

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"VendorHub/config"
)

const defaultPrefix = "vhub"

var (
	client  *redis.Client
	once    sync.Once
	initErr error
)

func options(cfg *config.Config) *redis.Options {
	return &redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisPoolSize / 4,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		MaxRetries:   3,
	}
}

// Init 连接 Redis 并挂载 tracing hook，只执行一次
func Init() error {
	once.Do(func() {
		cfg := &config.Cfg
		c := redis.NewClient(options(cfg))
		c.AddHook(NewTracingHook(cfg.ServiceName, cfg.RedisDB))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := c.Ping(ctx).Err(); err != nil {
			_ = c.Close()
			initErr = fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
			return
		}
		client = c
	})
	return initErr
}

// SetClient 替换全局客户端，测试中配合 miniredis 使用
func SetClient(c *redis.Client) {
	client = c
}

func Client() *redis.Client {
	if client == nil {
		panic("redis: client not initialized")
	}
	return client
}

func Close(ctx context.Context) error {
	if client == nil {
		return nil
	}
	c := client
	client = nil
	return c.Close()
}

// Key 拼接带前缀的 key，忽略空段，例如 vhub:vendor:profile:42
func Key(parts ...string) string {
	prefix := config.Cfg.RedisPrefix
	if prefix == "" {
		prefix = defaultPrefix
	}

	segments := make([]string, 0, len(parts)+1)
	segments = append(segments, prefix)
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return strings.Join(segments, ":")
}
