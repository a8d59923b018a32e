package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VendorHub/internal/model/dto"
	pkgerrors "VendorHub/pkg/errors"
)

func registerVendor(t *testing.T, vendors *fakeVendors) *dto.AuthResponse {
	t.Helper()
	resp, err := NewAuthService(vendors).Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)
	return resp
}

func strPtr(s string) *string { return &s }

func TestProfile_CachesAfterFirstRead(t *testing.T) {
	setup(t)
	vendors := newFakeVendors()
	reg := registerVendor(t, vendors)
	svc := NewVendorService(vendors)
	ctx := context.Background()

	first, err := svc.Profile(ctx, reg.Vendor.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", first.FullName)
	assert.Equal(t, "Pune", first.City)

	finds := vendors.finds
	second, err := svc.Profile(ctx, reg.Vendor.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Email, second.Email)
	assert.Equal(t, finds, vendors.finds, "second read is served from cache")
}

func TestProfile_NotFoundIsCached(t *testing.T) {
	setup(t)
	vendors := newFakeVendors()
	svc := NewVendorService(vendors)
	ctx := context.Background()

	_, err := svc.Profile(ctx, "12345")
	assert.ErrorIs(t, err, pkgerrors.VendorNotFound)

	finds := vendors.finds
	_, err = svc.Profile(ctx, "12345")
	assert.ErrorIs(t, err, pkgerrors.VendorNotFound)
	assert.Equal(t, finds, vendors.finds)

	_, err = svc.Profile(ctx, "not-a-number")
	assert.ErrorIs(t, err, pkgerrors.Unauthorized)
}

func TestUpdateProfile(t *testing.T) {
	setup(t)
	vendors := newFakeVendors()
	reg := registerVendor(t, vendors)
	svc := NewVendorService(vendors)
	ctx := context.Background()

	_, err := svc.Profile(ctx, reg.Vendor.ID)
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, reg.Vendor.ID, dto.UpdateProfileRequest{
		City:            strPtr(" Mumbai "),
		ExperienceLevel: strPtr("Expert"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Mumbai", updated.City)
	assert.Equal(t, "Maharashtra", updated.State)
	assert.Equal(t, "Expert", updated.ExperienceLevel)
	assert.Equal(t, "Asha Rao", updated.FullName)

	// 缓存已失效，重新读取到新值
	fresh, err := svc.Profile(ctx, reg.Vendor.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mumbai", fresh.City)
}

func TestUpdateProfile_Validation(t *testing.T) {
	setup(t)
	vendors := newFakeVendors()
	reg := registerVendor(t, vendors)
	svc := NewVendorService(vendors)

	_, err := svc.UpdateProfile(context.Background(), reg.Vendor.ID, dto.UpdateProfileRequest{
		Mobile:          strPtr("123"),
		ExperienceLevel: strPtr("Master"),
		FullName:        strPtr("R2D2"),
	})
	var fieldErrs pkgerrors.FieldErrors
	require.True(t, errors.As(err, &fieldErrs))
	assert.Contains(t, fieldErrs, "mobile")
	assert.Contains(t, fieldErrs, "experience_level")
	assert.Contains(t, fieldErrs, "full_name")
}
