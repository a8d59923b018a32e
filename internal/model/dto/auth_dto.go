package dto

import "time"

// ========== Auth 相关 DTO ==========

// RegisterRequest 注册请求，services 为逗号分隔的服务名
type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	FullName        string `json:"full_name"`
	Mobile          string `json:"mobile"`
	Business        string `json:"business"`
	ExperienceLevel string `json:"experience_level,omitempty"`
	Location        string `json:"location"`
	City            string `json:"city"`
	State           string `json:"state"`
	Pincode         string `json:"pincode"`
	Services        string `json:"services"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshTokenRequest 刷新 token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh"`
}

// AuthResponse 注册 / 登录 / 刷新的响应
type AuthResponse struct {
	Access    string        `json:"access"`
	Refresh   string        `json:"refresh"`
	ExpiresIn int           `json:"expires_in"`
	Vendor    VendorProfile `json:"vendor"`
}

// EmailExistsResponse 邮箱是否已注册
type EmailExistsResponse struct {
	Exists bool `json:"exists"`
}

// ========== Vendor 相关 DTO ==========

// ServiceItem 资料中的服务项
type ServiceItem struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	PricePaise  int64  `json:"price_paise"`
}

// VendorProfile 商家资料快照
type VendorProfile struct {
	ID              string        `json:"id"`
	Email           string        `json:"email"`
	FullName        string        `json:"full_name"`
	Mobile          string        `json:"mobile"`
	Business        string        `json:"business"`
	ExperienceLevel string        `json:"experience_level"`
	Location        string        `json:"location"`
	City            string        `json:"city"`
	State           string        `json:"state"`
	Pincode         string        `json:"pincode"`
	Services        []ServiceItem `json:"services"`
	IsOnline        bool          `json:"is_online"`
	IsVerified      bool          `json:"is_verified"`
	CreatedAt       time.Time     `json:"created_at"`
}

// ServiceNames 返回服务名列表
func (p VendorProfile) ServiceNames() []string {
	names := make([]string, 0, len(p.Services))
	for _, s := range p.Services {
		names = append(names, s.Name)
	}
	return names
}

// UpdateProfileRequest 部分更新，nil 表示不修改
type UpdateProfileRequest struct {
	FullName        *string `json:"full_name,omitempty"`
	Mobile          *string `json:"mobile,omitempty"`
	ExperienceLevel *string `json:"experience_level,omitempty"`
	Location        *string `json:"location,omitempty"`
	City            *string `json:"city,omitempty"`
	State           *string `json:"state,omitempty"`
	Pincode         *string `json:"pincode,omitempty"`
}
