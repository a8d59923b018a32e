package response

import (
	"context"
	stdErrors "errors"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"

	"VendorHub/pkg/errors"
)

// ErrorResponse 统一的错误响应格式
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Details map[string]interface{} `json:"details,omitempty"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
}

// SuccessResponse 统一的成功响应格式
type SuccessResponse struct {
	Data interface{}            `json:"data"`
	Meta map[string]interface{} `json:"meta,omitempty"`
}

func errorToHTTPStatus(err error) int {
	var fieldErrs errors.FieldErrors
	if stdErrors.As(err, &fieldErrs) {
		return http.StatusBadRequest
	}

	var def errors.Definition
	if !stdErrors.As(err, &def) {
		return http.StatusInternalServerError
	}

	// 根据错误码映射 HTTP 状态码
	switch def.Code {
	case errors.RateLimited.Code:
		return http.StatusTooManyRequests // 429
	case errors.InvalidRequest.Code, errors.ValidationFailed.Code,
		errors.BusinessInvalid.Code, errors.ExperienceInvalid.Code,
		errors.ServiceListInvalid.Code:
		return http.StatusBadRequest // 400
	case errors.InvalidCredentials.Code, errors.Unauthorized.Code, errors.TokenInvalid.Code:
		return http.StatusUnauthorized // 401
	case errors.VendorNotFound.Code, errors.VerificationNotFound.Code, errors.ServiceNotFound.Code:
		return http.StatusNotFound // 404
	case errors.EmailAlreadyExists.Code, errors.RegistrationInProgress.Code,
		errors.VerificationFinalized.Code, errors.ServiceAlreadyExists.Code:
		return http.StatusConflict // 409
	default:
		return http.StatusInternalServerError // 500
	}
}

func describe(err error) (string, string, map[string]interface{}) {
	var fieldErrs errors.FieldErrors
	if stdErrors.As(err, &fieldErrs) {
		return errors.ValidationFailed.Code, errors.ValidationFailed.Message, fieldErrs.Details()
	}

	var def errors.Definition
	if stdErrors.As(err, &def) {
		return def.Code, def.Message, nil
	}

	return errors.Internal.Code, errors.Internal.Message, nil
}

// Error 返回错误响应
func Error(ctx context.Context, c *app.RequestContext, err error) {
	ErrorWithDetails(ctx, c, err, nil)
}

func ErrorWithDetails(ctx context.Context, c *app.RequestContext, err error, details map[string]interface{}) {
	code, message, derived := describe(err)
	if details == nil {
		details = derived
	}

	c.JSON(errorToHTTPStatus(err), ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func Success(ctx context.Context, c *app.RequestContext, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Data: data,
	})
}

// Created 返回 201
func Created(ctx context.Context, c *app.RequestContext, data interface{}) {
	c.JSON(http.StatusCreated, SuccessResponse{
		Data: data,
	})
}

func BindError(ctx context.Context, c *app.RequestContext, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: ErrorDetail{
			Code:    errors.InvalidRequest.Code,
			Message: err.Error(),
		},
	})
}

// NoContent 返回 204 No Content
func NoContent(ctx context.Context, c *app.RequestContext) {
	c.Status(http.StatusNoContent)
}
