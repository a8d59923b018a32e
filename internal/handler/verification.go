package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"VendorHub/internal/middleware"
	"VendorHub/internal/model/dto"
	pkgerrors "VendorHub/pkg/errors"
	"VendorHub/pkg/response"
)

// SubmitVerification 提交证件，首次提交 201，重新提交 200
// POST /v1/verification
func (h *Handler) SubmitVerification(ctx context.Context, c *app.RequestContext) {
	vendorID, ok := middleware.GetVendorID(ctx, c)
	if !ok {
		response.Error(ctx, c, pkgerrors.Unauthorized)
		return
	}

	var req dto.SubmitVerificationRequest
	if err := c.BindJSON(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	resp, created, err := h.verification.Submit(ctx, vendorID, req)
	if err != nil {
		logError("submit verification", err)
		response.Error(ctx, c, err)
		return
	}

	if created {
		response.Created(ctx, c, resp)
		return
	}
	response.Success(ctx, c, resp)
}

// GetVerification 查询审核状态
// GET /v1/verification
func (h *Handler) GetVerification(ctx context.Context, c *app.RequestContext) {
	vendorID, ok := middleware.GetVendorID(ctx, c)
	if !ok {
		response.Error(ctx, c, pkgerrors.Unauthorized)
		return
	}

	resp, err := h.verification.Get(ctx, vendorID)
	if err != nil {
		logError("get verification", err)
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, resp)
}
