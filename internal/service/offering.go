package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"

	"VendorHub/internal/cache"
	"VendorHub/internal/model"
	"VendorHub/internal/model/dto"
	"VendorHub/internal/repository"
	pkgerrors "VendorHub/pkg/errors"
	"VendorHub/pkg/logger"
	"VendorHub/storage/database"
)

const (
	maxServiceNameLength     = 255
	maxServiceCategoryLength = 100
)

var (
	offeringService *OfferingService
	offeringOnce    sync.Once
)

func Offerings() *OfferingService {
	offeringOnce.Do(func() {
		db := database.DB()
		offeringService = NewOfferingService(
			repository.NewVendorRepository(db),
			repository.NewOfferingRepository(db),
		)
	})
	return offeringService
}

// OfferingService 登录商家管理自己的服务项
type OfferingService struct {
	vendors   repository.VendorRepository
	offerings repository.OfferingRepository
}

func NewOfferingService(vendors repository.VendorRepository, offerings repository.OfferingRepository) *OfferingService {
	return &OfferingService{vendors: vendors, offerings: offerings}
}

// List 返回商家全部服务项，包括已停用的
func (s *OfferingService) List(ctx context.Context, vendorID string) ([]dto.ServiceResponse, error) {
	vendor, err := s.findVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	services, err := s.offerings.ListByVendor(ctx, vendor.ID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ServiceResponse, 0, len(services))
	for i := range services {
		out = append(out, toServiceDTO(&services[i]))
	}
	return out, nil
}

func (s *OfferingService) Get(ctx context.Context, vendorID, serviceID string) (*dto.ServiceResponse, error) {
	vendor, err := s.findVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	service, err := s.findService(ctx, vendor.ID, serviceID)
	if err != nil {
		return nil, err
	}
	resp := toServiceDTO(service)
	return &resp, nil
}

// Create category 为空时使用商家的 business
func (s *OfferingService) Create(ctx context.Context, vendorID string, req dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	vendor, err := s.findVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	service := &model.VendorService{
		VendorID:      vendor.ID,
		Name:          strings.Join(strings.Fields(req.Name), " "),
		Category:      strings.TrimSpace(req.Category),
		Description:   strings.TrimSpace(req.Description),
		PricePaise:    req.PricePaise,
		MinimumPeople: req.MinimumPeople,
		MaximumPeople: req.MaximumPeople,
		IsActive:      true,
	}
	if service.Category == "" {
		service.Category = vendor.Business
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if errs := validateOffering(service); !errs.Empty() {
		return nil, errs
	}

	err = s.offerings.Create(ctx, service)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, pkgerrors.ServiceAlreadyExists
	}
	if err != nil {
		return nil, err
	}

	s.invalidateProfile(ctx, vendor.PublicID)
	logger.Logger.Info("Vendor service created",
		zap.Int64("public_id", vendor.PublicID),
		zap.Int64("service_id", service.ID),
	)
	resp := toServiceDTO(service)
	return &resp, nil
}

// Update 只修改请求中出现的字段
func (s *OfferingService) Update(ctx context.Context, vendorID, serviceID string, req dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	vendor, err := s.findVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	service, err := s.findService(ctx, vendor.ID, serviceID)
	if err != nil {
		return nil, err
	}

	applyOfferingUpdate(service, req)
	if errs := validateOffering(service); !errs.Empty() {
		return nil, errs
	}

	err = s.offerings.Update(ctx, service)
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return nil, pkgerrors.ServiceAlreadyExists
	case errors.Is(err, repository.ErrNotFound):
		return nil, pkgerrors.ServiceNotFound
	case err != nil:
		return nil, err
	}

	s.invalidateProfile(ctx, vendor.PublicID)
	resp := toServiceDTO(service)
	return &resp, nil
}

func (s *OfferingService) Delete(ctx context.Context, vendorID, serviceID string) error {
	vendor, err := s.findVendor(ctx, vendorID)
	if err != nil {
		return err
	}

	id, ok := parseServiceID(serviceID)
	if !ok {
		return pkgerrors.ServiceNotFound
	}
	err = s.offerings.Delete(ctx, vendor.ID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return pkgerrors.ServiceNotFound
	}
	if err != nil {
		return err
	}

	s.invalidateProfile(ctx, vendor.PublicID)
	logger.Logger.Info("Vendor service deleted",
		zap.Int64("public_id", vendor.PublicID),
		zap.Int64("service_id", id),
	)
	return nil
}

func (s *OfferingService) findVendor(ctx context.Context, vendorID string) (*model.Vendor, error) {
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

func (s *OfferingService) findService(ctx context.Context, vendorID int64, serviceID string) (*model.VendorService, error) {
	id, ok := parseServiceID(serviceID)
	if !ok {
		return nil, pkgerrors.ServiceNotFound
	}
	service, err := s.offerings.Find(ctx, vendorID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, pkgerrors.ServiceNotFound
	}
	if err != nil {
		return nil, err
	}
	return service, nil
}

// invalidateProfile 资料里带有启用中的服务项，服务变更后清掉缓存
func (s *OfferingService) invalidateProfile(ctx context.Context, publicID int64) {
	if err := cache.InvalidateVendorProfile(ctx, publicID); err != nil {
		logger.Logger.Warn("Failed to invalidate vendor profile cache",
			zap.Int64("public_id", publicID),
			zap.Error(err),
		)
	}
}

func parseServiceID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func validateOffering(s *model.VendorService) pkgerrors.FieldErrors {
	errs := pkgerrors.FieldErrors{}

	switch {
	case s.Name == "":
		errs.Add("name", "Service name is required.")
	case utf8.RuneCountInString(s.Name) > maxServiceNameLength:
		errs.Add("name", fmt.Sprintf("Service name must be at most %d characters.", maxServiceNameLength))
	}
	switch {
	case s.Category == "":
		errs.Add("category", "Category is required.")
	case utf8.RuneCountInString(s.Category) > maxServiceCategoryLength:
		errs.Add("category", fmt.Sprintf("Category must be at most %d characters.", maxServiceCategoryLength))
	}
	if s.PricePaise < 0 {
		errs.Add("price_paise", "Price cannot be negative.")
	}
	if s.MinimumPeople != nil && *s.MinimumPeople < 1 {
		errs.Add("minimum_people", "Minimum people must be at least 1.")
	}
	if s.MaximumPeople != nil && *s.MaximumPeople < 1 {
		errs.Add("maximum_people", "Maximum people must be at least 1.")
	}
	if s.MinimumPeople != nil && s.MaximumPeople != nil && *s.MinimumPeople > *s.MaximumPeople {
		errs.Add("maximum_people", "Maximum people must not be less than minimum people.")
	}

	return errs
}

func applyOfferingUpdate(s *model.VendorService, req dto.UpdateServiceRequest) {
	if req.Name != nil {
		s.Name = strings.Join(strings.Fields(*req.Name), " ")
	}
	if req.Category != nil {
		s.Category = strings.TrimSpace(*req.Category)
	}
	if req.Description != nil {
		s.Description = strings.TrimSpace(*req.Description)
	}
	if req.PricePaise != nil {
		s.PricePaise = *req.PricePaise
	}
	if req.MinimumPeople != nil {
		s.MinimumPeople = req.MinimumPeople
	}
	if req.MaximumPeople != nil {
		s.MaximumPeople = req.MaximumPeople
	}
	if req.IsActive != nil {
		s.IsActive = *req.IsActive
	}
}
