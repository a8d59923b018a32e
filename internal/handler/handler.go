// Package handler HTTP 接口层：参数绑定、调用 service、写统一响应
package handler

import (
	"context"

	"VendorHub/internal/model/dto"
	"VendorHub/internal/service"
)

// AuthService 认证相关接口依赖
type AuthService interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, vendorID string) error
	RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error)
}

// VendorService 商家资料接口依赖
type VendorService interface {
	Profile(ctx context.Context, vendorID string) (*dto.VendorProfile, error)
	UpdateProfile(ctx context.Context, vendorID string, req dto.UpdateProfileRequest) (*dto.VendorProfile, error)
}

// VerificationService 资质审核接口依赖
type VerificationService interface {
	Submit(ctx context.Context, vendorID string, req dto.SubmitVerificationRequest) (*dto.VerificationResponse, bool, error)
	Get(ctx context.Context, vendorID string) (*dto.VerificationResponse, error)
}

// OfferingService 商家服务项接口依赖
type OfferingService interface {
	List(ctx context.Context, vendorID string) ([]dto.ServiceResponse, error)
	Get(ctx context.Context, vendorID, serviceID string) (*dto.ServiceResponse, error)
	Create(ctx context.Context, vendorID string, req dto.CreateServiceRequest) (*dto.ServiceResponse, error)
	Update(ctx context.Context, vendorID, serviceID string, req dto.UpdateServiceRequest) (*dto.ServiceResponse, error)
	Delete(ctx context.Context, vendorID, serviceID string) error
}

type Handler struct {
	auth         AuthService
	vendors      VendorService
	verification VerificationService
	offerings    OfferingService
}

func New(auth AuthService, vendors VendorService, verification VerificationService, offerings OfferingService) *Handler {
	return &Handler{
		auth:         auth,
		vendors:      vendors,
		verification: verification,
		offerings:    offerings,
	}
}

// Default 使用全局 service 单例，需在 storage.Init() 之后调用
func Default() *Handler {
	return New(service.Auth(), service.Vendor(), service.Verification(), service.Offerings())
}
