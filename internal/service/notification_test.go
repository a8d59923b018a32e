package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VendorHub/internal/model"
	"VendorHub/pkg/sms"
)

func TestNotifyVerificationStatus(t *testing.T) {
	client := sms.NewMockClient()
	svc := NewNotificationService(client, "VendorHub", "SMS_0001")

	err := svc.NotifyVerificationStatus(context.Background(), model.VerificationStatusMessage{
		PublicID: "42",
		FullName: "Asha Rao",
		Mobile:   "9876543210",
		Status:   model.VerificationApproved,
	})
	require.NoError(t, err)

	calls := client.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "9876543210", calls[0].Phone)
	assert.Equal(t, "VendorHub", calls[0].SignName)
	assert.Equal(t, "SMS_0001", calls[0].TemplateCode)
	assert.JSONEq(t, `{"name":"Asha Rao","status":"approved"}`, calls[0].TemplateParam)
}

func TestNotifyVerificationStatus_SendFailure(t *testing.T) {
	client := sms.NewMockClient()
	client.FailNext = true
	svc := NewNotificationService(client, "VendorHub", "SMS_0001")

	err := svc.NotifyVerificationStatus(context.Background(), model.VerificationStatusMessage{
		PublicID: "42",
		Mobile:   "9876543210",
		Status:   model.VerificationPending,
	})
	assert.Error(t, err)
}

func TestNotifyVerificationStatus_NoMobile(t *testing.T) {
	client := sms.NewMockClient()
	svc := NewNotificationService(client, "VendorHub", "SMS_0001")

	err := svc.NotifyVerificationStatus(context.Background(), model.VerificationStatusMessage{PublicID: "42"})
	require.NoError(t, err)
	assert.Empty(t, client.Calls())
}
