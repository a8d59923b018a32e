package cache

import (
	"context"
	"time"

	"VendorHub/config"
	"VendorHub/storage/redis"
)

const (
	tokenPrefix = "token"
)

// SetRefreshToken 保存 refresh token，每个商家只保留最新一个
// Key: vhub:token:refresh:{vendor_id}
func SetRefreshToken(ctx context.Context, vendorID, refreshToken string) error {
	key := redis.Key(tokenPrefix, "refresh", vendorID)
	ttl := time.Duration(config.Cfg.JWTRefreshDays) * 24 * time.Hour

	return redis.Client().Set(ctx, key, refreshToken, ttl).Err()
}

func GetRefreshToken(ctx context.Context, vendorID string) (string, error) {
	key := redis.Key(tokenPrefix, "refresh", vendorID)
	return redis.Client().Get(ctx, key).Result()
}

// DeleteRefreshToken 登出或轮换失败时删除
func DeleteRefreshToken(ctx context.Context, vendorID string) error {
	key := redis.Key(tokenPrefix, "refresh", vendorID)
	return redis.Client().Del(ctx, key).Err()
}

// ValidateRefreshTokenExists refresh token 是否存在且与保存的一致
func ValidateRefreshTokenExists(ctx context.Context, vendorID, refreshToken string) bool {
	stored, err := GetRefreshToken(ctx, vendorID)
	if err != nil {
		return false
	}
	return stored == refreshToken
}
