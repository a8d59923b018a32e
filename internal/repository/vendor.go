// Package repository 商家与审核记录的数据访问，基于 gorm
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"

	"VendorHub/internal/model"
)

var (
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate 唯一索引冲突，例如并发注册同一邮箱
	ErrDuplicate = errors.New("duplicate record")
)

// VendorRepository 商家账号、地址与服务项
type VendorRepository interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	// Create 在一个事务中写入商家、地址和服务项
	Create(ctx context.Context, vendor *model.Vendor) error
	FindByEmail(ctx context.Context, email string) (*model.Vendor, error)
	FindByPublicID(ctx context.Context, publicID int64) (*model.Vendor, error)
	SetOnline(ctx context.Context, vendorID int64, online bool) error
	SetVerified(ctx context.Context, vendorID int64, verified bool) error
	// UpdateProfile 保存商家基础字段和地址
	UpdateProfile(ctx context.Context, vendor *model.Vendor) error
}

type vendorRepository struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) VendorRepository {
	return &vendorRepository{db: db}
}

func (r *vendorRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	// 注册前检查走主库，避免副本延迟导致重复注册
	err := r.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Model(&model.Vendor{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count vendors by email: %w", err)
	}
	return count > 0, nil
}

func (r *vendorRepository) Create(ctx context.Context, vendor *model.Vendor) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile := vendor.Profile
		services := vendor.Services
		vendor.Profile = nil
		vendor.Services = nil

		if err := tx.Create(vendor).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicate
			}
			return fmt.Errorf("failed to create vendor: %w", err)
		}

		if profile != nil {
			profile.VendorID = vendor.ID
			if err := tx.Create(profile).Error; err != nil {
				return fmt.Errorf("failed to create vendor profile: %w", err)
			}
		}

		for i := range services {
			services[i].VendorID = vendor.ID
		}
		if len(services) > 0 {
			if err := tx.CreateInBatches(services, 50).Error; err != nil {
				return fmt.Errorf("failed to create vendor services: %w", err)
			}
		}

		vendor.Profile = profile
		vendor.Services = services
		return nil
	})
}

func (r *vendorRepository) find(ctx context.Context, query string, arg interface{}) (*model.Vendor, error) {
	var vendor model.Vendor
	err := r.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Preload("Profile").
		Preload("Services", "is_active = ?", true).
		Where(query, arg).
		First(&vendor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query vendor: %w", err)
	}
	return &vendor, nil
}

func (r *vendorRepository) FindByEmail(ctx context.Context, email string) (*model.Vendor, error) {
	return r.find(ctx, "email = ?", email)
}

func (r *vendorRepository) FindByPublicID(ctx context.Context, publicID int64) (*model.Vendor, error) {
	return r.find(ctx, "public_id = ?", publicID)
}

func (r *vendorRepository) SetOnline(ctx context.Context, vendorID int64, online bool) error {
	return r.updateColumn(ctx, vendorID, "is_online", online)
}

func (r *vendorRepository) SetVerified(ctx context.Context, vendorID int64, verified bool) error {
	return r.updateColumn(ctx, vendorID, "is_verified", verified)
}

func (r *vendorRepository) updateColumn(ctx context.Context, vendorID int64, column string, value interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&model.Vendor{}).
		Where("id = ?", vendorID).
		Update(column, value)
	if result.Error != nil {
		return fmt.Errorf("failed to update vendor %s: %w", column, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *vendorRepository) UpdateProfile(ctx context.Context, vendor *model.Vendor) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Vendor{}).
			Where("id = ?", vendor.ID).
			Updates(map[string]interface{}{
				"full_name":        vendor.FullName,
				"mobile":           vendor.Mobile,
				"experience_level": vendor.ExperienceLevel,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to update vendor: %w", err)
		}

		if vendor.Profile == nil {
			return nil
		}
		vendor.Profile.VendorID = vendor.ID
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "vendor_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"location", "city", "state", "pincode", "updated_at"}),
		}).Create(vendor.Profile).Error
		if err != nil {
			return fmt.Errorf("failed to upsert vendor profile: %w", err)
		}
		return nil
	})
}
