package model

import (
	"encoding/json"
	"fmt"
)

// SMSMessage 短信消息接口
type SMSMessage interface {
	GetPhone() string
	GetTemplateParams() (string, error)
	GetMessageType() string
}

// VerificationStatusSMS 审核结果通知
// 模板内容：Hi ${name}, your vendor verification is ${status}.
type VerificationStatusSMS struct {
	Phone  string `json:"phone"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

func (m *VerificationStatusSMS) GetPhone() string {
	return m.Phone
}

func (m *VerificationStatusSMS) GetTemplateParams() (string, error) {
	data, err := json.Marshal(map[string]string{
		"name":   m.Name,
		"status": m.Status,
	})
	if err != nil {
		return "", fmt.Errorf("marshal template params: %w", err)
	}
	return string(data), nil
}

func (m *VerificationStatusSMS) GetMessageType() string {
	return "verification_status"
}

// NewVerificationStatusSMS 由队列消息构造短信
func NewVerificationStatusSMS(msg VerificationStatusMessage) *VerificationStatusSMS {
	return &VerificationStatusSMS{
		Phone:  msg.Mobile,
		Name:   msg.FullName,
		Status: string(msg.Status),
	}
}
