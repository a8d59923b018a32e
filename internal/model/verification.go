package model

import "time"

// VerificationStatus 资质审核状态
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// Verification 资质审核记录，每个商家一条，重复提交覆盖证件
type Verification struct {
	BaseModel
	VendorID     int64              `gorm:"uniqueIndex;not null" json:"vendor_id"`
	AadhaarRef   string             `gorm:"type:text;not null" json:"-"` // AES-GCM 密文
	PANRef       string             `gorm:"type:text;not null" json:"-"` // AES-GCM 密文
	AadhaarLast4 string             `gorm:"type:varchar(4);not null;default:''" json:"aadhaar_last4"`
	PANLast4     string             `gorm:"type:varchar(4);not null;default:''" json:"pan_last4"`
	Address      string             `gorm:"type:text;not null;default:''" json:"address"`
	Status       VerificationStatus `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	SubmittedAt  time.Time          `gorm:"not null;default:now()" json:"submitted_at"`
	ReviewedAt   *time.Time         `json:"reviewed_at,omitempty"`
}

func (Verification) TableName() string {
	return "verifications"
}
