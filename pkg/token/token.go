package token

import (
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/hertz-contrib/jwt"

	"VendorHub/config"
	"VendorHub/pkg/errors"
)

const (
	IdentityKey = "uid"
	TypeKey     = "type"

	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	// 这个实例会被 middleware 和 token 包共同使用
	sharedGenerator *jwt.HertzJWTMiddleware
)

func Init() error {
	var err error
	sharedGenerator, err = jwt.New(&jwt.HertzJWTMiddleware{
		Key:         []byte(config.Cfg.JWTSecret),
		Timeout:     accessTTL(),
		MaxRefresh:  refreshTTL(),
		IdentityKey: IdentityKey,
		TimeFunc:    time.Now,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize token generator: %w", err)
	}

	return nil
}

// GetGenerator 获取共享的 token 生成器（供 middleware 使用）
func GetGenerator() *jwt.HertzJWTMiddleware {
	return sharedGenerator
}

func accessTTL() time.Duration {
	return time.Duration(config.Cfg.JWTExpireMinutes) * time.Minute
}

func refreshTTL() time.Duration {
	return time.Duration(config.Cfg.JWTRefreshDays) * 24 * time.Hour
}

// RefreshTTL refresh token 在 Redis 中的保存时长
func RefreshTTL() time.Duration {
	return refreshTTL()
}

// GenerateTokenPair 生成 access token 和 refresh token
func GenerateTokenPair(vendorID string) (accessToken, refreshToken string, expiresIn int, err error) {
	if sharedGenerator == nil {
		return "", "", 0, errors.ErrTokenGeneratorNotInitialized
	}

	now := sharedGenerator.TimeFunc()
	expiresAt := now.Add(accessTTL())

	accessClaims := jwtv5.MapClaims{
		IdentityKey: vendorID,
		TypeKey:     TypeAccess,
		"iat":       now.Unix(),
		"exp":       expiresAt.Unix(),
		"orig_iat":  now.Unix(),
	}
	accessToken, err = jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, accessClaims).SignedString(sharedGenerator.Key)
	if err != nil {
		return "", "", 0, fmt.Errorf("failed to generate access token: %w", err)
	}

	expiresIn = int(expiresAt.Sub(now).Seconds())

	// refresh token 带 jti，保证同一秒内轮换也不相同
	refreshClaims := jwtv5.MapClaims{
		IdentityKey: vendorID,
		TypeKey:     TypeRefresh,
		"iat":       now.Unix(),
		"exp":       now.Add(refreshTTL()).Unix(),
		"jti":       fmt.Sprintf("%s-%d", vendorID, now.UnixNano()),
	}
	refreshToken, err = jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, refreshClaims).SignedString(sharedGenerator.Key)
	if err != nil {
		return "", "", 0, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return accessToken, refreshToken, expiresIn, nil
}

// ValidateRefreshToken 验证 refresh token 并返回商家 ID
func ValidateRefreshToken(tokenString string) (string, error) {
	if sharedGenerator == nil {
		return "", errors.ErrTokenGeneratorNotInitialized
	}

	parsed, err := jwtv5.ParseWithClaims(tokenString, jwtv5.MapClaims{}, func(t *jwtv5.Token) (interface{}, error) {
		if t.Method != jwtv5.SigningMethodHS256 {
			return nil, fmt.Errorf("%w: %v, expected HS256", errors.ErrUnexpectedSigningMethod, t.Header["alg"])
		}
		return sharedGenerator.Key, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}
	if !parsed.Valid {
		return "", errors.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwtv5.MapClaims)
	if !ok {
		return "", errors.ErrInvalidTokenClaims
	}

	if tokenType, _ := claims[TypeKey].(string); tokenType != TypeRefresh {
		return "", errors.ErrInvalidTokenType
	}

	return IdentityFromClaims(claims)
}

// IdentityFromClaims 从 claims 中取出商家 ID
func IdentityFromClaims(claims map[string]interface{}) (string, error) {
	switch uid := claims[IdentityKey].(type) {
	case string:
		if uid == "" {
			return "", errors.ErrUserIDNotFound
		}
		return uid, nil
	case float64:
		return fmt.Sprintf("%.0f", uid), nil
	default:
		return "", errors.ErrUserIDNotFound
	}
}
