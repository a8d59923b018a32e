// Package localstore 是客户端本地键值存储，保存 token、商家资料和引导快照
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("localstore: key not found")

// 与控制台约定的 key
const (
	KeyAccessToken        = "access_token"
	KeyRefreshToken       = "refresh_token"
	KeyVendorProfile      = "vendor_profile"
	KeyOnboarding         = "vendorOnboarding"
	KeyVerificationStatus = "verificationStatus"
)

// verificationStatus 的取值
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

// SessionKeys 登出时需要清理的 key
var SessionKeys = []string{
	KeyAccessToken,
	KeyRefreshToken,
	KeyVendorProfile,
	KeyOnboarding,
	KeyVerificationStatus,
}

// Store 本地键值存储
type Store interface {
	// Get 不存在时返回 ErrNotFound
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// SetMany 原子写入多个 key
	SetMany(ctx context.Context, entries map[string]string) error
	Delete(ctx context.Context, keys ...string) error
}

// OnboardingRecord vendorOnboarding 快照
type OnboardingRecord struct {
	Email      string   `json:"email"`
	FullName   string   `json:"fullName"`
	Mobile     string   `json:"mobile"`
	Business   string   `json:"business"`
	Level      string   `json:"level,omitempty"`
	Services   []string `json:"services"`
	City       string   `json:"city"`
	State      string   `json:"state"`
	Pincode    string   `json:"pincode"`
	Location   string   `json:"location"`
	IsVerified bool     `json:"is_verified"`
}

// EncodeJSON 供 SetMany 组装 entries
func EncodeJSON(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("localstore: encode: %w", err)
	}
	return string(data), nil
}

// PutJSON 序列化后写入
func PutJSON(ctx context.Context, s Store, key string, v interface{}) error {
	data, err := EncodeJSON(v)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, data)
}

// GetJSON 读取并反序列化，不存在时返回 ErrNotFound
func GetJSON(ctx context.Context, s Store, key string, v interface{}) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("localstore: decode %s: %w", key, err)
	}
	return nil
}
