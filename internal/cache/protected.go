package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	ri "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"VendorHub/pkg/logger"
	"VendorHub/storage/redis"
)

const (
	// 空值标识，防止不存在的 key 反复穿透到数据库
	emptyValueFlag = "__EMPTY__"
	emptyValueTTL  = 5 * time.Minute
	// 防雪崩随机延迟上限
	breakerRandomDelayMax = 50 * time.Millisecond
)

// ProtectedCache 带空值保护、随机延迟和熔断的 JSON 缓存
type ProtectedCache struct {
	breaker   *CircuitBreaker
	keyPrefix string
	ttl       time.Duration
	emptyTTL  time.Duration
	jitter    time.Duration
}

func NewProtectedCache(keyPrefix string, ttl time.Duration, breaker *CircuitBreaker) *ProtectedCache {
	return &ProtectedCache{
		breaker:   breaker,
		keyPrefix: keyPrefix,
		ttl:       ttl,
		emptyTTL:  emptyValueTTL,
		jitter:    breakerRandomDelayMax,
	}
}

// WithJitter 修改随机延迟上限，0 表示不延迟
func (pc *ProtectedCache) WithJitter(d time.Duration) *ProtectedCache {
	pc.jitter = d
	return pc
}

// Set value 为 nil 时写入空值标识
func (pc *ProtectedCache) Set(ctx context.Context, key string, value interface{}) error {
	cacheKey := redis.Key(pc.keyPrefix, key)

	data := emptyValueFlag
	ttl := pc.emptyTTL
	if value != nil {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to marshal cache value: %w", err)
		}
		data = string(raw)
		ttl = pc.ttl
	}

	return pc.breaker.Call(ctx, func() error {
		return redis.Client().Set(ctx, cacheKey, data, ttl).Err()
	})
}

// Get 返回 (是否命中, 是否为空值, error)。熔断打开时按未命中处理。
func (pc *ProtectedCache) Get(ctx context.Context, key string, dest interface{}) (hit bool, empty bool, err error) {
	cacheKey := redis.Key(pc.keyPrefix, key)

	if err := pc.addJitter(ctx); err != nil {
		return false, false, err
	}

	var data string
	callErr := pc.breaker.Call(ctx, func() error {
		var getErr error
		data, getErr = redis.Client().Get(ctx, cacheKey).Result()
		if errors.Is(getErr, ri.Nil) {
			return nil
		}
		return getErr
	})
	if errors.Is(callErr, ErrBreakerOpen) {
		return false, false, nil
	}
	if callErr != nil {
		return false, false, fmt.Errorf("failed to get cache: %w", callErr)
	}
	if data == "" {
		return false, false, nil
	}
	if data == emptyValueFlag {
		return true, true, nil
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		logger.Logger.Warn("Dropping undecodable cache entry",
			zap.String("key", cacheKey),
			zap.Error(err),
		)
		_ = redis.Client().Del(ctx, cacheKey).Err()
		return false, false, nil
	}
	return true, false, nil
}

func (pc *ProtectedCache) Delete(ctx context.Context, key string) error {
	cacheKey := redis.Key(pc.keyPrefix, key)
	return pc.breaker.Call(ctx, func() error {
		return redis.Client().Del(ctx, cacheKey).Err()
	})
}

func (pc *ProtectedCache) addJitter(ctx context.Context) error {
	if pc.jitter <= 0 {
		return nil
	}
	delay := time.Duration(rand.Int63n(int64(pc.jitter)))

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}
