package model

// VerificationStatusMessage 审核状态变更事件，worker 消费后发送短信
type VerificationStatusMessage struct {
	MessageID  string             `json:"message_id"` // 幂等键
	VendorID   int64              `json:"vendor_id"`
	PublicID   string             `json:"public_id"`
	FullName   string             `json:"full_name"`
	Mobile     string             `json:"mobile"`
	Status     VerificationStatus `json:"status"`
	OccurredAt string             `json:"occurred_at"`
}
