package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"VendorHub/internal/model"
)

// VerificationRepository 资质审核记录
type VerificationRepository interface {
	FindByVendorID(ctx context.Context, vendorID int64) (*model.Verification, error)
	// Save 按 vendor_id 插入或覆盖
	Save(ctx context.Context, v *model.Verification) error
}

type verificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &verificationRepository{db: db}
}

func (r *verificationRepository) FindByVendorID(ctx context.Context, vendorID int64) (*model.Verification, error) {
	var v model.Verification
	err := r.db.WithContext(ctx).Where("vendor_id = ?", vendorID).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query verification: %w", err)
	}
	return &v, nil
}

func (r *verificationRepository) Save(ctx context.Context, v *model.Verification) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "vendor_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"aadhaar_ref", "pan_ref", "aadhaar_last4", "pan_last4",
			"address", "status", "submitted_at", "reviewed_at", "updated_at",
		}),
	}).Create(v).Error
	if err != nil {
		return fmt.Errorf("failed to save verification: %w", err)
	}
	return nil
}
