package middleware

import (
	"context"
	"fmt"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/jwt"

	pkgerrors "VendorHub/pkg/errors"
	"VendorHub/pkg/response"
	"VendorHub/pkg/token"
)

const (
	IdentityKey = token.IdentityKey
)

var (
	authMiddleware *jwt.HertzJWTMiddleware
)

func initAuthMiddleware() error {
	// 与 token 包共用密钥和时长，签发和校验保持一致
	sharedGenerator := token.GetGenerator()
	if sharedGenerator == nil {
		return fmt.Errorf("token generator not initialized, call token.Init() first")
	}

	mw, err := jwt.New(&jwt.HertzJWTMiddleware{
		Realm:       "VendorHub API",
		Key:         sharedGenerator.Key,
		Timeout:     sharedGenerator.Timeout,
		MaxRefresh:  sharedGenerator.MaxRefresh,
		IdentityKey: sharedGenerator.IdentityKey,
		TimeFunc:    sharedGenerator.TimeFunc,

		IdentityHandler: func(ctx context.Context, c *app.RequestContext) interface{} {
			uid, err := token.IdentityFromClaims(jwt.ExtractClaims(ctx, c))
			if err != nil {
				return nil
			}
			return uid
		},

		// refresh token 不能当 access token 使用
		Authorizator: func(data interface{}, ctx context.Context, c *app.RequestContext) bool {
			if uid, ok := data.(string); !ok || uid == "" {
				return false
			}
			tokenType, _ := jwt.ExtractClaims(ctx, c)[token.TypeKey].(string)
			return tokenType == token.TypeAccess
		},

		Unauthorized: func(ctx context.Context, c *app.RequestContext, code int, message string) {
			response.Error(ctx, c, pkgerrors.Unauthorized)
		},

		TokenLookup:   "header: Authorization",
		TokenHeadName: "Bearer",
	})
	if err != nil {
		return fmt.Errorf("failed to create auth middleware: %w", err)
	}

	authMiddleware = mw
	return nil
}

func AuthMiddleware() app.HandlerFunc {
	if authMiddleware == nil {
		panic("AuthMiddleware not initialized, call Init() first")
	}
	return authMiddleware.MiddlewareFunc()
}

// GetVendorID 从请求上下文中获取商家 public_id（字符串）
func GetVendorID(ctx context.Context, c *app.RequestContext) (string, bool) {
	vendorID, exists := c.Get(IdentityKey)
	if !exists {
		return "", false
	}

	id, ok := vendorID.(string)
	if !ok || id == "" {
		return "", false
	}

	return id, true
}
