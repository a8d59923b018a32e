package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"VendorHub/config"
)

// HashEmail 加盐哈希邮箱，用作 Redis 锁与限流 key，避免明文邮箱落入缓存
func HashEmail(email string) string {
	sum := sha256.Sum256([]byte(config.Cfg.EmailHashSalt + ":" + NormalizeEmail(email)))
	return hex.EncodeToString(sum[:])
}

// NormalizeEmail 去空白并转小写
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
