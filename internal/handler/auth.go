package handler

import (
	"context"
	stdErrors "errors"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"go.uber.org/zap"

	"VendorHub/internal/middleware"
	"VendorHub/internal/model/dto"
	pkgerrors "VendorHub/pkg/errors"
	"VendorHub/pkg/logger"
	"VendorHub/pkg/response"
)

// EmailExists 邮箱是否已注册
// GET /v1/auth/email-exists?email=
func (h *Handler) EmailExists(ctx context.Context, c *app.RequestContext) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		response.Error(ctx, c, pkgerrors.FieldErrors{"email": "This field is required."})
		return
	}

	exists, err := h.auth.EmailExists(ctx, email)
	if err != nil {
		logError("email exists check", err)
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, dto.EmailExistsResponse{Exists: exists})
}

// Register 商家注册
// POST /v1/auth/register
func (h *Handler) Register(ctx context.Context, c *app.RequestContext) {
	var req dto.RegisterRequest
	if err := c.BindJSON(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	resp, err := h.auth.Register(ctx, req)
	if err != nil {
		logError("register", err)
		response.Error(ctx, c, err)
		return
	}

	response.Created(ctx, c, resp)
}

// Login 邮箱密码登录
// POST /v1/auth/login
func (h *Handler) Login(ctx context.Context, c *app.RequestContext) {
	var req dto.LoginRequest
	if err := c.BindJSON(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	resp, err := h.auth.Login(ctx, req)
	if err != nil {
		logError("login", err)
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, resp)
}

// Logout 登出
// POST /v1/auth/logout
func (h *Handler) Logout(ctx context.Context, c *app.RequestContext) {
	vendorID, ok := middleware.GetVendorID(ctx, c)
	if !ok {
		response.Error(ctx, c, pkgerrors.Unauthorized)
		return
	}

	if err := h.auth.Logout(ctx, vendorID); err != nil {
		logError("logout", err)
		response.Error(ctx, c, err)
		return
	}

	response.NoContent(ctx, c)
}

// RefreshToken 刷新访问令牌
// POST /v1/auth/token/refresh
func (h *Handler) RefreshToken(ctx context.Context, c *app.RequestContext) {
	var req dto.RefreshTokenRequest
	if err := c.BindJSON(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}
	if strings.TrimSpace(req.RefreshToken) == "" {
		response.Error(ctx, c, pkgerrors.FieldErrors{"refresh": "This field is required."})
		return
	}

	resp, err := h.auth.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		logError("refresh token", err)
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, resp)
}

// logError 业务错误只记 debug，未预期的错误记 error
func logError(op string, err error) {
	var def pkgerrors.Definition
	var fieldErrs pkgerrors.FieldErrors
	if stdErrors.As(err, &def) || stdErrors.As(err, &fieldErrs) {
		logger.Logger.Debug("Request rejected", zap.String("op", op), zap.Error(err))
		return
	}
	logger.Logger.Error("Request failed", zap.String("op", op), zap.Error(err))
}
