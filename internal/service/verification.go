package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"VendorHub/config"
	"VendorHub/internal/cache"
	"VendorHub/internal/model"
	"VendorHub/internal/model/dto"
	"VendorHub/internal/queue"
	"VendorHub/internal/repository"
	pkgerrors "VendorHub/pkg/errors"
	"VendorHub/pkg/logger"
	"VendorHub/pkg/metrics"
	"VendorHub/storage/database"
	"VendorHub/utils"
)

var (
	verificationService *VerificationService
	verifyOnce          sync.Once
)

func Verification() *VerificationService {
	verifyOnce.Do(func() {
		db := database.DB()
		verificationService = NewVerificationService(
			repository.NewVendorRepository(db),
			repository.NewVerificationRepository(db),
			queue.MQPublisher{},
			config.Cfg.VerificationAutoApprove,
		)
	})
	return verificationService
}

// VerificationService 证件提交与审核状态查询
type VerificationService struct {
	vendors       repository.VendorRepository
	verifications repository.VerificationRepository
	publisher     queue.Publisher
	autoApprove   bool
	now           func() time.Time
}

func NewVerificationService(
	vendors repository.VendorRepository,
	verifications repository.VerificationRepository,
	publisher queue.Publisher,
	autoApprove bool,
) *VerificationService {
	return &VerificationService{
		vendors:       vendors,
		verifications: verifications,
		publisher:     publisher,
		autoApprove:   autoApprove,
		now:           time.Now,
	}
}

// Submit 保存证件（密文），created 表示首次提交。
// 自动审核开启时直接通过并标记商家已认证；人工审核模式下已通过的记录不可再提交。
func (s *VerificationService) Submit(
	ctx context.Context,
	vendorID string,
	req dto.SubmitVerificationRequest,
) (resp *dto.VerificationResponse, created bool, err error) {
	aadhaar := strings.TrimSpace(req.AadhaarDocument)
	pan := strings.TrimSpace(req.PANDocument)

	errs := pkgerrors.FieldErrors{}
	if aadhaar == "" {
		errs.Add("aadhaar_document", "This field is required.")
	}
	if pan == "" {
		errs.Add("pan_document", "This field is required.")
	}
	if !errs.Empty() {
		return nil, false, errs
	}

	vendor, err := s.findVendor(ctx, vendorID)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.verifications.FindByVendorID(ctx, vendor.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to query verification: %w", err)
	}
	if existing != nil && existing.Status == model.VerificationApproved && !s.autoApprove {
		return nil, false, pkgerrors.VerificationFinalized
	}

	aadhaarRef, err := utils.EncryptField(aadhaar)
	if err != nil {
		return nil, false, fmt.Errorf("failed to encrypt aadhaar document: %w", err)
	}
	panRef, err := utils.EncryptField(pan)
	if err != nil {
		return nil, false, fmt.Errorf("failed to encrypt pan document: %w", err)
	}

	now := s.now().UTC()
	record := &model.Verification{
		VendorID:     vendor.ID,
		AadhaarRef:   aadhaarRef,
		PANRef:       panRef,
		AadhaarLast4: lastN(aadhaar, 4),
		PANLast4:     lastN(pan, 4),
		Address:      strings.TrimSpace(req.Address),
		Status:       model.VerificationPending,
		SubmittedAt:  now,
	}
	if existing != nil {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
	}
	created = !record.Persisted()
	if s.autoApprove {
		record.Status = model.VerificationApproved
		record.ReviewedAt = &now
	}

	if err := s.verifications.Save(ctx, record); err != nil {
		return nil, false, fmt.Errorf("failed to save verification: %w", err)
	}

	if record.Status == model.VerificationApproved && !vendor.IsVerified {
		if err := s.vendors.SetVerified(ctx, vendor.ID, true); err != nil {
			return nil, false, fmt.Errorf("failed to mark vendor verified: %w", err)
		}
	}

	if err := cache.InvalidateVendorProfile(ctx, vendor.PublicID); err != nil {
		logger.Logger.Warn("Failed to invalidate vendor profile cache",
			zap.Int64("public_id", vendor.PublicID),
			zap.Error(err),
		)
	}

	// 记录已落库，通知失败不影响提交结果
	if err := s.publisher.PublishVerificationStatus(ctx, model.VerificationStatusMessage{
		VendorID: vendor.ID,
		PublicID: strconv.FormatInt(vendor.PublicID, 10),
		FullName: vendor.FullName,
		Mobile:   vendor.Mobile,
		Status:   record.Status,
	}); err != nil {
		logger.Logger.Warn("Failed to publish verification status",
			zap.Int64("public_id", vendor.PublicID),
			zap.Error(err),
		)
	}

	metrics.RecordVerification(ctx, string(record.Status))
	logger.Logger.Info("Verification submitted",
		zap.Int64("public_id", vendor.PublicID),
		zap.String("status", string(record.Status)),
		zap.Bool("resubmitted", !created),
	)

	out := toVerificationDTO(record)
	return &out, created, nil
}

// Get 查询当前商家的审核记录
func (s *VerificationService) Get(ctx context.Context, vendorID string) (*dto.VerificationResponse, error) {
	vendor, err := s.findVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	record, err := s.verifications.FindByVendorID(ctx, vendor.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, pkgerrors.VerificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query verification: %w", err)
	}

	out := toVerificationDTO(record)
	return &out, nil
}

func (s *VerificationService) findVendor(ctx context.Context, vendorID string) (*model.Vendor, error) {
	publicID, err := parsePublicID(vendorID)
	if err != nil {
		return nil, err
	}

	vendor, err := s.vendors.FindByPublicID(ctx, publicID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, pkgerrors.VendorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query vendor: %w", err)
	}
	return vendor, nil
}
