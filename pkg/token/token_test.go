package token

import (
	"testing"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VendorHub/config"
	"VendorHub/pkg/errors"
)

func setup(t *testing.T) {
	t.Helper()
	config.Cfg.JWTSecret = "test-secret"
	config.Cfg.JWTExpireMinutes = 30
	config.Cfg.JWTRefreshDays = 7
	require.NoError(t, Init())
}

func TestGenerateTokenPair(t *testing.T) {
	setup(t)

	access, refresh, expiresIn, err := GenerateTokenPair("42")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)
	assert.Equal(t, 30*60, expiresIn)

	uid, err := ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "42", uid)
}

func TestValidateRefreshTokenRejectsAccessToken(t *testing.T) {
	setup(t)

	access, _, _, err := GenerateTokenPair("42")
	require.NoError(t, err)

	_, err = ValidateRefreshToken(access)
	assert.ErrorIs(t, err, errors.ErrInvalidTokenType)
}

func TestValidateRefreshTokenRejectsForeignKey(t *testing.T) {
	setup(t)

	forged, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, jwtv5.MapClaims{
		IdentityKey: "42",
		TypeKey:     TypeRefresh,
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = ValidateRefreshToken(forged)
	assert.Error(t, err)
}

func TestIdentityFromClaims(t *testing.T) {
	uid, err := IdentityFromClaims(map[string]interface{}{IdentityKey: float64(1234567)})
	require.NoError(t, err)
	assert.Equal(t, "1234567", uid)

	_, err = IdentityFromClaims(map[string]interface{}{})
	assert.ErrorIs(t, err, errors.ErrUserIDNotFound)
}
