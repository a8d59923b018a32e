package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"VendorHub/internal/cache"
	"VendorHub/internal/model"
	"VendorHub/internal/model/dto"
	"VendorHub/internal/repository"
	pkgerrors "VendorHub/pkg/errors"
	"VendorHub/pkg/logger"
	"VendorHub/storage/database"
	"VendorHub/utils"
)

var (
	vendorService *VendorService
	vendorOnce    sync.Once
)

func Vendor() *VendorService {
	vendorOnce.Do(func() {
		vendorService = NewVendorService(repository.NewVendorRepository(database.DB()))
	})
	return vendorService
}

// VendorService 商家资料读取与部分更新
type VendorService struct {
	vendors repository.VendorRepository
}

func NewVendorService(vendors repository.VendorRepository) *VendorService {
	return &VendorService{vendors: vendors}
}

// Profile 优先读缓存，不存在的商家缓存空值防穿透
func (s *VendorService) Profile(ctx context.Context, vendorID string) (*dto.VendorProfile, error) {
	publicID, err := parsePublicID(vendorID)
	if err != nil {
		return nil, err
	}

	cached, hit, err := cache.GetVendorProfile(ctx, publicID)
	if err != nil {
		logger.Logger.Warn("Failed to read vendor profile cache",
			zap.Int64("public_id", publicID),
			zap.Error(err),
		)
	}
	if hit {
		if cached == nil {
			return nil, pkgerrors.VendorNotFound
		}
		return cached, nil
	}

	vendor, err := s.vendors.FindByPublicID(ctx, publicID)
	if errors.Is(err, repository.ErrNotFound) {
		s.storeProfile(ctx, publicID, nil)
		return nil, pkgerrors.VendorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query vendor: %w", err)
	}

	profile := toProfileDTO(vendor)
	s.storeProfile(ctx, publicID, &profile)
	return &profile, nil
}

// UpdateProfile 只修改请求中出现的字段
func (s *VendorService) UpdateProfile(ctx context.Context, vendorID string, req dto.UpdateProfileRequest) (*dto.VendorProfile, error) {
	publicID, err := parsePublicID(vendorID)
	if err != nil {
		return nil, err
	}

	if errs := validateProfileUpdate(req); !errs.Empty() {
		return nil, errs
	}

	vendor, err := s.vendors.FindByPublicID(ctx, publicID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, pkgerrors.VendorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query vendor: %w", err)
	}

	applyProfileUpdate(vendor, req)

	if err := s.vendors.UpdateProfile(ctx, vendor); err != nil {
		return nil, fmt.Errorf("failed to update vendor profile: %w", err)
	}

	if err := cache.InvalidateVendorProfile(ctx, publicID); err != nil {
		logger.Logger.Warn("Failed to invalidate vendor profile cache",
			zap.Int64("public_id", publicID),
			zap.Error(err),
		)
	}

	logger.Logger.Info("Vendor profile updated", zap.Int64("public_id", publicID))
	profile := toProfileDTO(vendor)
	return &profile, nil
}

func (s *VendorService) storeProfile(ctx context.Context, publicID int64, profile *dto.VendorProfile) {
	if err := cache.SetVendorProfile(ctx, publicID, profile); err != nil {
		logger.Logger.Warn("Failed to cache vendor profile",
			zap.Int64("public_id", publicID),
			zap.Error(err),
		)
	}
}

func validateProfileUpdate(req dto.UpdateProfileRequest) pkgerrors.FieldErrors {
	errs := pkgerrors.FieldErrors{}

	if req.FullName != nil && !utils.ValidateFullName(strings.Join(strings.Fields(*req.FullName), " ")) {
		errs.Add("full_name", "Full name must contain only letters and spaces.")
	}
	if req.Mobile != nil && !utils.ValidateMobile(utils.DigitsOnly(*req.Mobile)) {
		errs.Add("mobile", "Mobile number must be 10 digits.")
	}
	if req.ExperienceLevel != nil && !model.ExperienceLevel(strings.TrimSpace(*req.ExperienceLevel)).Valid() {
		errs.Add("experience_level", pkgerrors.ExperienceInvalid.Message)
	}
	if req.Pincode != nil && len(strings.TrimSpace(*req.Pincode)) > maxPincodeLength {
		errs.Add("pincode", fmt.Sprintf("Pincode must be at most %d characters.", maxPincodeLength))
	}
	if req.Location != nil && len(strings.TrimSpace(*req.Location)) > maxLocationLength {
		errs.Add("location", fmt.Sprintf("Location must be at most %d characters.", maxLocationLength))
	}

	return errs
}

func applyProfileUpdate(vendor *model.Vendor, req dto.UpdateProfileRequest) {
	if req.FullName != nil {
		vendor.FullName = strings.Join(strings.Fields(*req.FullName), " ")
	}
	if req.Mobile != nil {
		vendor.Mobile = utils.DigitsOnly(*req.Mobile)
	}
	if req.ExperienceLevel != nil {
		vendor.ExperienceLevel = model.ExperienceLevel(strings.TrimSpace(*req.ExperienceLevel))
	}

	if vendor.Profile == nil {
		vendor.Profile = &model.VendorProfile{VendorID: vendor.ID}
	}
	if req.Location != nil {
		vendor.Profile.Location = strings.TrimSpace(*req.Location)
	}
	if req.City != nil {
		vendor.Profile.City = strings.TrimSpace(*req.City)
	}
	if req.State != nil {
		vendor.Profile.State = strings.TrimSpace(*req.State)
	}
	if req.Pincode != nil {
		vendor.Profile.Pincode = strings.TrimSpace(*req.Pincode)
	}
}
