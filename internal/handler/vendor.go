package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"VendorHub/internal/middleware"
	"VendorHub/internal/model/dto"
	pkgerrors "VendorHub/pkg/errors"
	"VendorHub/pkg/response"
)

// GetProfile 当前商家资料
// GET /v1/vendors/me
func (h *Handler) GetProfile(ctx context.Context, c *app.RequestContext) {
	vendorID, ok := middleware.GetVendorID(ctx, c)
	if !ok {
		response.Error(ctx, c, pkgerrors.Unauthorized)
		return
	}

	profile, err := h.vendors.Profile(ctx, vendorID)
	if err != nil {
		logError("get profile", err)
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, profile)
}

// UpdateProfile 部分更新商家资料
// PATCH /v1/vendors/me
func (h *Handler) UpdateProfile(ctx context.Context, c *app.RequestContext) {
	vendorID, ok := middleware.GetVendorID(ctx, c)
	if !ok {
		response.Error(ctx, c, pkgerrors.Unauthorized)
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.BindJSON(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	profile, err := h.vendors.UpdateProfile(ctx, vendorID, req)
	if err != nil {
		logError("update profile", err)
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, profile)
}
