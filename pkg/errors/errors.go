package errors

import (
	stdErrors "errors"
	"fmt"
	"sort"
	"strings"
)

func (d Definition) Error() string {
	return d.Message
}

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

// 通用错误。
var (
	InvalidRequest   = Definition{Code: "INVALID_REQUEST", Message: "Invalid request"}
	ValidationFailed = Definition{Code: "VALIDATION_FAILED", Message: "Validation failed"}
	RateLimited      = Definition{Code: "RATE_LIMITED", Message: "Too many requests"}
	Internal         = Definition{Code: "INTERNAL_ERROR", Message: "Internal server error"}
)

// 认证相关错误。
var (
	EmailAlreadyExists     = Definition{Code: "EMAIL_ALREADY_EXISTS", Message: "A vendor with this email already exists."}
	RegistrationInProgress = Definition{Code: "REGISTRATION_IN_PROGRESS", Message: "Registration already in progress"}
	InvalidCredentials     = Definition{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password"}
	Unauthorized           = Definition{Code: "UNAUTHORIZED", Message: "Unauthorized"}
	TokenInvalid           = Definition{Code: "TOKEN_INVALID", Message: "Token invalid or expired"}
)

// 商家资料错误。
var (
	VendorNotFound     = Definition{Code: "VENDOR_NOT_FOUND", Message: "Vendor not found"}
	BusinessInvalid    = Definition{Code: "BUSINESS_INVALID", Message: "Unknown business category"}
	ExperienceInvalid  = Definition{Code: "EXPERIENCE_LEVEL_INVALID", Message: "Unknown experience level"}
	ServiceListInvalid = Definition{Code: "SERVICE_LIST_INVALID", Message: "At least one service is required"}
)

// 资质审核错误。
var (
	VerificationNotFound  = Definition{Code: "VERIFICATION_NOT_FOUND", Message: "Verification not submitted"}
	VerificationFinalized = Definition{Code: "VERIFICATION_FINALIZED", Message: "Verification already approved"}
)

// 服务项错误。
var (
	ServiceNotFound      = Definition{Code: "SERVICE_NOT_FOUND", Message: "Service not found"}
	ServiceAlreadyExists = Definition{Code: "SERVICE_ALREADY_EXISTS", Message: "Service with this name already exists for your account"}
)

// Lookup 提供错误码查询能力。
var Lookup = map[string]Definition{
	InvalidRequest.Code:         InvalidRequest,
	ValidationFailed.Code:       ValidationFailed,
	RateLimited.Code:            RateLimited,
	Internal.Code:               Internal,
	EmailAlreadyExists.Code:     EmailAlreadyExists,
	RegistrationInProgress.Code: RegistrationInProgress,
	InvalidCredentials.Code:     InvalidCredentials,
	Unauthorized.Code:           Unauthorized,
	TokenInvalid.Code:           TokenInvalid,
	VendorNotFound.Code:         VendorNotFound,
	BusinessInvalid.Code:        BusinessInvalid,
	ExperienceInvalid.Code:      ExperienceInvalid,
	ServiceListInvalid.Code:     ServiceListInvalid,
	VerificationNotFound.Code:   VerificationNotFound,
	VerificationFinalized.Code:  VerificationFinalized,
	ServiceNotFound.Code:        ServiceNotFound,
	ServiceAlreadyExists.Code:   ServiceAlreadyExists,
}

// Get 根据错误码返回 Definition，若不存在则返回空 Definition。
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}

// FieldErrors 字段级校验错误，key 为字段名
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	if len(f) == 0 {
		return ValidationFailed.Message
	}
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+f[field])
	}
	return strings.Join(parts, "; ")
}

// Add 记录字段错误，同一字段只保留第一条
func (f FieldErrors) Add(field, message string) {
	if _, exists := f[field]; !exists {
		f[field] = message
	}
}

// Empty 是否没有错误
func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

// Details 转换为响应体 details
func (f FieldErrors) Details() map[string]interface{} {
	details := make(map[string]interface{}, len(f))
	for k, v := range f {
		details[k] = v
	}
	return details
}

// RemoteError API 返回的非 2xx 响应
type RemoteError struct {
	Details map[string]interface{}
	Code    string
	Message string
	Status  int
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("unexpected status %d", e.Status)
}

// Is 按错误码与 Definition 比较，便于 errors.Is(err, EmailAlreadyExists)
func (e *RemoteError) Is(target error) bool {
	def, ok := target.(Definition)
	return ok && def.Code == e.Code
}

// token 相关哨兵错误
var (
	ErrTokenGeneratorNotInitialized = stdErrors.New("token generator not initialized")
	ErrUnexpectedSigningMethod      = stdErrors.New("unexpected signing method")
	ErrInvalidToken                 = stdErrors.New("invalid token")
	ErrInvalidTokenClaims           = stdErrors.New("invalid token claims")
	ErrInvalidTokenType             = stdErrors.New("invalid token type")
	ErrUserIDNotFound               = stdErrors.New("user id not found in token")
)
