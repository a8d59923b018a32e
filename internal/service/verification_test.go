package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VendorHub/internal/model"
	"VendorHub/internal/model/dto"
	pkgerrors "VendorHub/pkg/errors"
	"VendorHub/utils"
)

func verificationFixture(t *testing.T, autoApprove bool) (*VerificationService, *fakeVendors, *fakeVerifications, *recordingPublisher, string) {
	t.Helper()
	setup(t)
	vendors := newFakeVendors()
	reg := registerVendor(t, vendors)
	records := newFakeVerifications()
	pub := &recordingPublisher{}
	return NewVerificationService(vendors, records, pub, autoApprove), vendors, records, pub, reg.Vendor.ID
}

var documents = dto.SubmitVerificationRequest{
	AadhaarDocument: "1234 5678 9012",
	PANDocument:     "ABCDE1234F",
	Address:         "12 MG Road, Pune",
}

func TestSubmitVerification_AutoApprove(t *testing.T) {
	svc, vendors, records, pub, vendorID := verificationFixture(t, true)
	ctx := context.Background()

	resp, created, err := svc.Submit(ctx, vendorID, documents)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "approved", resp.Status)
	assert.True(t, resp.IsVerified)
	assert.Equal(t, "9012", resp.AadhaarLast4)
	assert.Equal(t, "234F", resp.PANLast4)
	assert.NotNil(t, resp.ReviewedAt)

	assert.True(t, vendors.get(1).IsVerified)

	stored, err := records.FindByVendorID(ctx, 1)
	require.NoError(t, err)
	assert.NotContains(t, stored.AadhaarRef, "1234")
	plain, err := utils.DecryptField(stored.AadhaarRef)
	require.NoError(t, err)
	assert.Equal(t, "1234 5678 9012", plain)

	require.Len(t, pub.msgs, 1)
	assert.Equal(t, model.VerificationApproved, pub.msgs[0].Status)
	assert.Equal(t, vendorID, pub.msgs[0].PublicID)
	assert.Equal(t, "9876543210", pub.msgs[0].Mobile)

	// 自动审核模式允许重新提交，覆盖证件
	again, created, err := svc.Submit(ctx, vendorID, dto.SubmitVerificationRequest{
		AadhaarDocument: "999988887777",
		PANDocument:     "ZZZZZ9999Z",
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, resp.ID, again.ID)
	assert.Equal(t, "7777", again.AadhaarLast4)
}

func TestSubmitVerification_ManualReview(t *testing.T) {
	svc, vendors, records, pub, vendorID := verificationFixture(t, false)
	ctx := context.Background()

	resp, _, err := svc.Submit(ctx, vendorID, documents)
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.False(t, resp.IsVerified)
	assert.Nil(t, resp.ReviewedAt)
	assert.False(t, vendors.get(1).IsVerified)
	require.Len(t, pub.msgs, 1)
	assert.Equal(t, model.VerificationPending, pub.msgs[0].Status)

	// 审核通过后不再接受提交
	records.records[1].Status = model.VerificationApproved
	_, _, err = svc.Submit(ctx, vendorID, documents)
	assert.ErrorIs(t, err, pkgerrors.VerificationFinalized)
}

func TestSubmitVerification_PublishFailureIsNotFatal(t *testing.T) {
	svc, _, _, pub, vendorID := verificationFixture(t, true)
	pub.err = errors.New("broker down")

	resp, _, err := svc.Submit(context.Background(), vendorID, documents)
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)
}

func TestSubmitVerification_Validation(t *testing.T) {
	svc, _, _, pub, vendorID := verificationFixture(t, true)

	_, _, err := svc.Submit(context.Background(), vendorID, dto.SubmitVerificationRequest{PANDocument: "  "})
	var fieldErrs pkgerrors.FieldErrors
	require.True(t, errors.As(err, &fieldErrs))
	assert.Contains(t, fieldErrs, "aadhaar_document")
	assert.Contains(t, fieldErrs, "pan_document")
	assert.Empty(t, pub.msgs)
}

func TestGetVerification(t *testing.T) {
	svc, _, _, _, vendorID := verificationFixture(t, false)
	ctx := context.Background()

	_, err := svc.Get(ctx, vendorID)
	assert.ErrorIs(t, err, pkgerrors.VerificationNotFound)

	_, _, err = svc.Submit(ctx, vendorID, documents)
	require.NoError(t, err)

	got, err := svc.Get(ctx, vendorID)
	require.NoError(t, err)
	assert.Equal(t, "pending", got.Status)
	assert.Equal(t, "9012", got.AadhaarLast4)

	_, err = svc.Get(ctx, "424242")
	assert.ErrorIs(t, err, pkgerrors.VendorNotFound)
}
