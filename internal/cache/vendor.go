package cache

import (
	"context"
	"strconv"
	"time"

	"VendorHub/internal/model/dto"
)

const (
	vendorProfilePrefix = "vendor:profile"
	vendorProfileTTL    = 30 * time.Minute
)

// VendorProfileCache 商家资料缓存，按 public_id 存放；资料更新、登录状态变化、审核完成时失效
var VendorProfileCache = NewProtectedCache(vendorProfilePrefix, vendorProfileTTL, ProfileBreaker)

// SetVendorProfile profile 为 nil 时缓存空值
func SetVendorProfile(ctx context.Context, publicID int64, profile *dto.VendorProfile) error {
	if profile == nil {
		return VendorProfileCache.Set(ctx, strconv.FormatInt(publicID, 10), nil)
	}
	return VendorProfileCache.Set(ctx, strconv.FormatInt(publicID, 10), profile)
}

// GetVendorProfile 命中空值时返回 (nil, true, nil)
func GetVendorProfile(ctx context.Context, publicID int64) (*dto.VendorProfile, bool, error) {
	var profile dto.VendorProfile
	hit, empty, err := VendorProfileCache.Get(ctx, strconv.FormatInt(publicID, 10), &profile)
	if err != nil || !hit {
		return nil, false, err
	}
	if empty {
		return nil, true, nil
	}
	return &profile, true, nil
}

func InvalidateVendorProfile(ctx context.Context, publicID int64) error {
	return VendorProfileCache.Delete(ctx, strconv.FormatInt(publicID, 10))
}
