package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	"VendorHub/internal/model"
)

// OfferingRepository 商家服务项的增删改查，所有操作都限定在 vendorID 下
type OfferingRepository interface {
	ListByVendor(ctx context.Context, vendorID int64) ([]model.VendorService, error)
	Find(ctx context.Context, vendorID, id int64) (*model.VendorService, error)
	Create(ctx context.Context, service *model.VendorService) error
	Update(ctx context.Context, service *model.VendorService) error
	Delete(ctx context.Context, vendorID, id int64) error
}

type offeringRepository struct {
	db *gorm.DB
}

func NewOfferingRepository(db *gorm.DB) OfferingRepository {
	return &offeringRepository{db: db}
}

func (r *offeringRepository) ListByVendor(ctx context.Context, vendorID int64) ([]model.VendorService, error) {
	var services []model.VendorService
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("id").
		Find(&services).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list vendor services: %w", err)
	}
	return services, nil
}

func (r *offeringRepository) Find(ctx context.Context, vendorID, id int64) (*model.VendorService, error) {
	var service model.VendorService
	// 修改前读取走主库
	err := r.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Where("vendor_id = ? AND id = ?", vendorID, id).
		First(&service).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query vendor service: %w", err)
	}
	return &service, nil
}

func (r *offeringRepository) Create(ctx context.Context, service *model.VendorService) error {
	err := r.db.WithContext(ctx).Create(service).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to create vendor service: %w", err)
	}
	return nil
}

func (r *offeringRepository) Update(ctx context.Context, service *model.VendorService) error {
	result := r.db.WithContext(ctx).
		Model(&model.VendorService{}).
		Where("vendor_id = ? AND id = ?", service.VendorID, service.ID).
		Updates(map[string]interface{}{
			"name":           service.Name,
			"category":       service.Category,
			"description":    service.Description,
			"price_paise":    service.PricePaise,
			"minimum_people": service.MinimumPeople,
			"maximum_people": service.MaximumPeople,
			"is_active":      service.IsActive,
		})
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	if result.Error != nil {
		return fmt.Errorf("failed to update vendor service: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete 物理删除，删除后同名服务可以重新创建
func (r *offeringRepository) Delete(ctx context.Context, vendorID, id int64) error {
	result := r.db.WithContext(ctx).
		Unscoped().
		Where("vendor_id = ? AND id = ?", vendorID, id).
		Delete(&model.VendorService{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete vendor service: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
