package cache

import (
	"context"
	"time"

	"VendorHub/storage/redis"
)

// 基于 SETNX 的分布式锁，注册和消息消费共用
const (
	lockPrefix      = "lock"
	processedPrefix = "processed"
)

func TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	fullKey := redis.Key(lockPrefix, key)
	return redis.Client().SetNX(ctx, fullKey, 1, ttl).Result()
}

func Unlock(ctx context.Context, key string) error {
	fullKey := redis.Key(lockPrefix, key)
	return redis.Client().Del(ctx, fullKey).Err()
}

// RegistrationLockKey 同一邮箱的注册互斥，emailHash 避免明文邮箱出现在 key 中
func RegistrationLockKey(emailHash string) string {
	return "register:" + emailHash
}

// MarkProcessed 标记消息已处理，返回 false 表示之前已经处理过
func MarkProcessed(ctx context.Context, messageID string, ttl time.Duration) (bool, error) {
	key := redis.Key(processedPrefix, messageID)
	return redis.Client().SetNX(ctx, key, time.Now().Unix(), ttl).Result()
}

// UnmarkProcessed 处理失败时撤销标记，允许重投后再次处理
func UnmarkProcessed(ctx context.Context, messageID string) error {
	key := redis.Key(processedPrefix, messageID)
	return redis.Client().Del(ctx, key).Err()
}
