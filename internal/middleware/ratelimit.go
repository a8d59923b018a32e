package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"VendorHub/config"
	pkgerrors "VendorHub/pkg/errors"
	"VendorHub/pkg/logger"
	"VendorHub/pkg/response"
	"VendorHub/storage/redis"
)

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	// 时间窗口
	Window time.Duration
	// 时间窗口内最大请求数
	MaxRequests int
	// 限流键前缀
	KeyPrefix string
	// 已认证请求按商家限流，否则按 IP
	ByVendorID bool
	// 超限后禁止访问的时长，0 表示不封禁
	BlockDuration time.Duration
}

// AuthRateLimitConfig 登录注册等未认证接口，按 IP 限流
var AuthRateLimitConfig = RateLimitConfig{
	Window:        time.Minute,
	MaxRequests:   20,
	KeyPrefix:     "rate:auth",
	BlockDuration: 15 * time.Minute,
}

// APIRateLimitConfig 已认证接口的通用限流，每秒请求数取自配置
func APIRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Window:      time.Second,
		MaxRequests: config.Cfg.RateLimitRPS,
		KeyPrefix:   "rate:api",
		ByVendorID:  true,
	}
}

// RateLimiter 基于 Redis ZSET 的滑动窗口限流器
type RateLimiter struct {
	config RateLimitConfig
	now    func() time.Time
}

func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		config: config,
		now:    time.Now,
	}
}

func (rl *RateLimiter) identifier(ctx context.Context, c *app.RequestContext) string {
	if rl.config.ByVendorID {
		if vendorID, ok := GetVendorID(ctx, c); ok {
			return "vendor:" + vendorID
		}
	}
	return "ip:" + c.ClientIP()
}

// Allow 记录一次请求并返回窗口内的请求数
func (rl *RateLimiter) Allow(ctx context.Context, id string) (bool, int, error) {
	key := redis.Key(rl.config.KeyPrefix, id)
	now := rl.now()
	windowStart := now.Add(-rl.config.Window)

	pipe := redis.Client().TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart.UnixNano(), 10))
	// member 加随机后缀，同一纳秒的并发请求不会互相覆盖
	pipe.ZAdd(ctx, key, redislib.Z{
		Score:  float64(now.UnixNano()),
		Member: fmt.Sprintf("%d-%s", now.UnixNano(), uuid.NewString()),
	})
	card := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, rl.config.Window+10*time.Second)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("failed to execute rate limit pipeline: %w", err)
	}

	count := int(card.Val())
	return count <= rl.config.MaxRequests, count, nil
}

func (rl *RateLimiter) blockKey(id string) string {
	return redis.Key(rl.config.KeyPrefix, "block", id)
}

func (rl *RateLimiter) Block(ctx context.Context, id string) error {
	if rl.config.BlockDuration <= 0 {
		return nil
	}
	return redis.Client().Set(ctx, rl.blockKey(id), "1", rl.config.BlockDuration).Err()
}

func (rl *RateLimiter) IsBlocked(ctx context.Context, id string) (bool, error) {
	if rl.config.BlockDuration <= 0 {
		return false, nil
	}
	n, err := redis.Client().Exists(ctx, rl.blockKey(id)).Result()
	return n > 0, err
}

// RateLimitMiddleware Redis 异常时放行，只记录日志
func RateLimitMiddleware(cfg RateLimitConfig) app.HandlerFunc {
	limiter := NewRateLimiter(cfg)

	return func(ctx context.Context, c *app.RequestContext) {
		if !config.Cfg.RateLimitEnabled || cfg.MaxRequests <= 0 {
			c.Next(ctx)
			return
		}

		id := limiter.identifier(ctx, c)

		blocked, err := limiter.IsBlocked(ctx, id)
		if err != nil {
			logger.Logger.Warn("Failed to check rate limit block", zap.Error(err))
			c.Next(ctx)
			return
		}
		if blocked {
			c.Abort()
			response.Error(ctx, c, pkgerrors.RateLimited)
			return
		}

		allowed, count, err := limiter.Allow(ctx, id)
		if err != nil {
			logger.Logger.Warn("Failed to check rate limit", zap.Error(err))
			c.Next(ctx)
			return
		}

		remaining := cfg.MaxRequests - count
		if remaining < 0 {
			remaining = 0
		}
		c.Response.Header.Set("X-RateLimit-Limit", strconv.Itoa(cfg.MaxRequests))
		c.Response.Header.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			if err := limiter.Block(ctx, id); err != nil {
				logger.Logger.Warn("Failed to block client", zap.String("client", id), zap.Error(err))
			}
			logger.Logger.Info("Rate limit exceeded",
				zap.String("client", id),
				zap.String("path", string(c.Path())),
			)
			c.Abort()
			response.Error(ctx, c, pkgerrors.RateLimited)
			return
		}

		c.Next(ctx)
	}
}

// AuthRateLimitMiddleware 认证相关限流（登录、注册、刷新）
func AuthRateLimitMiddleware() app.HandlerFunc {
	return RateLimitMiddleware(AuthRateLimitConfig)
}

// APIRateLimitMiddleware 需放在 AuthMiddleware 之后才能按商家限流
func APIRateLimitMiddleware() app.HandlerFunc {
	return RateLimitMiddleware(APIRateLimitConfig())
}
