package dto

import "time"

// SubmitVerificationRequest 提交资质审核，证件为号码或存储引用
type SubmitVerificationRequest struct {
	AadhaarDocument string `json:"aadhaar_document"`
	PANDocument     string `json:"pan_document"`
	Address         string `json:"address,omitempty"`
}

// VerificationResponse 审核记录，证件只返回末四位
type VerificationResponse struct {
	ID           int64      `json:"id"`
	AadhaarLast4 string     `json:"aadhaar_last4"`
	PANLast4     string     `json:"pan_last4"`
	Status       string     `json:"status"`
	IsVerified   bool       `json:"is_verified"`
	SubmittedAt  time.Time  `json:"submitted_at"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
}
