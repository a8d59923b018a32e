package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"VendorHub/internal/middleware"
	"VendorHub/internal/model/dto"
	pkgerrors "VendorHub/pkg/errors"
	"VendorHub/pkg/response"
)

// ListServices 当前商家的全部服务项
// GET /v1/services
func (h *Handler) ListServices(ctx context.Context, c *app.RequestContext) {
	vendorID, ok := middleware.GetVendorID(ctx, c)
	if !ok {
		response.Error(ctx, c, pkgerrors.Unauthorized)
		return
	}

	services, err := h.offerings.List(ctx, vendorID)
	if err != nil {
		logError("list services", err)
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, services)
}

// CreateService POST /v1/services
func (h *Handler) CreateService(ctx context.Context, c *app.RequestContext) {
	vendorID, ok := middleware.GetVendorID(ctx, c)
	if !ok {
		response.Error(ctx, c, pkgerrors.Unauthorized)
		return
	}

	var req dto.CreateServiceRequest
	if err := c.BindJSON(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	service, err := h.offerings.Create(ctx, vendorID, req)
	if err != nil {
		logError("create service", err)
		response.Error(ctx, c, err)
		return
	}

	response.Created(ctx, c, service)
}

// GetService GET /v1/services/:id
func (h *Handler) GetService(ctx context.Context, c *app.RequestContext) {
	vendorID, ok := middleware.GetVendorID(ctx, c)
	if !ok {
		response.Error(ctx, c, pkgerrors.Unauthorized)
		return
	}

	service, err := h.offerings.Get(ctx, vendorID, c.Param("id"))
	if err != nil {
		logError("get service", err)
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, service)
}

// UpdateService 部分更新服务项
// PATCH /v1/services/:id
func (h *Handler) UpdateService(ctx context.Context, c *app.RequestContext) {
	vendorID, ok := middleware.GetVendorID(ctx, c)
	if !ok {
		response.Error(ctx, c, pkgerrors.Unauthorized)
		return
	}

	var req dto.UpdateServiceRequest
	if err := c.BindJSON(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	service, err := h.offerings.Update(ctx, vendorID, c.Param("id"), req)
	if err != nil {
		logError("update service", err)
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, service)
}

// DeleteService DELETE /v1/services/:id
func (h *Handler) DeleteService(ctx context.Context, c *app.RequestContext) {
	vendorID, ok := middleware.GetVendorID(ctx, c)
	if !ok {
		response.Error(ctx, c, pkgerrors.Unauthorized)
		return
	}

	if err := h.offerings.Delete(ctx, vendorID, c.Param("id")); err != nil {
		logError("delete service", err)
		response.Error(ctx, c, err)
		return
	}

	response.NoContent(ctx, c)
}
