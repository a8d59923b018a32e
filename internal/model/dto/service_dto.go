package dto

import "time"

// ServiceResponse 商家服务项
type ServiceResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	PricePaise    int64     `json:"price_paise"`
	MinimumPeople *int      `json:"minimum_people"`
	MaximumPeople *int      `json:"maximum_people"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateServiceRequest 新增服务项，category 为空时取商家的 business
type CreateServiceRequest struct {
	Name          string `json:"name"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	PricePaise    int64  `json:"price_paise"`
	MinimumPeople *int   `json:"minimum_people,omitempty"`
	MaximumPeople *int   `json:"maximum_people,omitempty"`
	IsActive      *bool  `json:"is_active,omitempty"`
}

// UpdateServiceRequest 部分更新，nil 表示不修改
type UpdateServiceRequest struct {
	Name          *string `json:"name,omitempty"`
	Category      *string `json:"category,omitempty"`
	Description   *string `json:"description,omitempty"`
	PricePaise    *int64  `json:"price_paise,omitempty"`
	MinimumPeople *int    `json:"minimum_people,omitempty"`
	MaximumPeople *int    `json:"maximum_people,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
}
