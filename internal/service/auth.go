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

	"VendorHub/internal/cache"
	"VendorHub/internal/model"
	"VendorHub/internal/model/dto"
	"VendorHub/internal/repository"
	pkgerrors "VendorHub/pkg/errors"
	"VendorHub/pkg/logger"
	"VendorHub/pkg/metrics"
	"VendorHub/pkg/password"
	"VendorHub/pkg/snowflake"
	"VendorHub/pkg/token"
	"VendorHub/storage/database"
	"VendorHub/utils"
)

const (
	registrationLockTTL = 30 * time.Second
	maxPincodeLength    = 10
	maxLocationLength   = 255
)

var (
	authService *AuthService
	authOnce    sync.Once
)

func Auth() *AuthService {
	authOnce.Do(func() {
		authService = NewAuthService(repository.NewVendorRepository(database.DB()))
	})
	return authService
}

// AuthService 注册、登录、登出与 token 轮换
type AuthService struct {
	vendors repository.VendorRepository
}

func NewAuthService(vendors repository.VendorRepository) *AuthService {
	return &AuthService{vendors: vendors}
}

// EmailExists 引导第一步的邮箱占用检查
func (s *AuthService) EmailExists(ctx context.Context, email string) (bool, error) {
	email = utils.NormalizeEmail(email)
	if !utils.ValidateEmail(email) {
		return false, pkgerrors.FieldErrors{"email": "Enter a valid email address."}
	}

	exists, err := s.vendors.EmailExists(ctx, email)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// Register 创建商家账号、地址与服务项并签发 token
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	vendor, fieldErrs := buildVendor(req)
	if !fieldErrs.Empty() {
		metrics.RecordRegistration(ctx, req.Business, "invalid")
		return nil, fieldErrs
	}

	// 同一邮箱并发注册互斥；Redis 不可用时退化为依赖唯一索引
	lockKey := cache.RegistrationLockKey(utils.HashEmail(vendor.Email))
	locked, err := cache.TryLock(ctx, lockKey, registrationLockTTL)
	if err != nil {
		logger.Logger.Warn("Failed to acquire registration lock", zap.Error(err))
	} else if !locked {
		return nil, pkgerrors.RegistrationInProgress
	} else {
		defer func() {
			if err := cache.Unlock(ctx, lockKey); err != nil {
				logger.Logger.Warn("Failed to release registration lock", zap.Error(err))
			}
		}()
	}

	exists, err := s.vendors.EmailExists(ctx, vendor.Email)
	if err != nil {
		metrics.RecordRegistration(ctx, vendor.Business, "error")
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		metrics.RecordRegistration(ctx, vendor.Business, "duplicate")
		return nil, pkgerrors.EmailAlreadyExists
	}

	vendor.PasswordHash, err = password.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	vendor.PublicID, err = snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate vendor ID: %w", err)
	}

	if err := s.vendors.Create(ctx, vendor); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			metrics.RecordRegistration(ctx, vendor.Business, "duplicate")
			return nil, pkgerrors.EmailAlreadyExists
		}
		metrics.RecordRegistration(ctx, vendor.Business, "error")
		return nil, fmt.Errorf("failed to create vendor: %w", err)
	}

	resp, err := s.issueTokens(ctx, vendor)
	if err != nil {
		return nil, err
	}

	metrics.RecordRegistration(ctx, vendor.Business, "success")
	logger.Logger.Info("Vendor registered",
		zap.Int64("public_id", vendor.PublicID),
		zap.String("business", vendor.Business),
		zap.Int("services", len(vendor.Services)),
	)
	return resp, nil
}

// Login 校验密码，标记在线并签发 token
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	email := utils.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		metrics.RecordLogin(ctx, "invalid")
		return nil, pkgerrors.InvalidCredentials
	}

	vendor, err := s.vendors.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		metrics.RecordLogin(ctx, "invalid")
		return nil, pkgerrors.InvalidCredentials
	}
	if err != nil {
		metrics.RecordLogin(ctx, "error")
		return nil, fmt.Errorf("failed to query vendor: %w", err)
	}

	ok, err := password.Verify(req.Password, vendor.PasswordHash)
	if err != nil {
		logger.Logger.Error("Stored password hash is unreadable",
			zap.Int64("public_id", vendor.PublicID),
			zap.Error(err),
		)
	}
	if !ok {
		metrics.RecordLogin(ctx, "invalid")
		return nil, pkgerrors.InvalidCredentials
	}

	if err := s.vendors.SetOnline(ctx, vendor.ID, true); err != nil {
		metrics.RecordLogin(ctx, "error")
		return nil, fmt.Errorf("failed to mark vendor online: %w", err)
	}
	vendor.IsOnline = true
	s.invalidateProfile(ctx, vendor.PublicID)

	resp, err := s.issueTokens(ctx, vendor)
	if err != nil {
		return nil, err
	}

	metrics.RecordLogin(ctx, "success")
	logger.Logger.Info("Vendor logged in", zap.Int64("public_id", vendor.PublicID))
	return resp, nil
}

// Logout 标记离线并删除 refresh token
func (s *AuthService) Logout(ctx context.Context, vendorID string) error {
	publicID, err := parsePublicID(vendorID)
	if err != nil {
		return err
	}

	vendor, err := s.vendors.FindByPublicID(ctx, publicID)
	if errors.Is(err, repository.ErrNotFound) {
		return pkgerrors.VendorNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query vendor: %w", err)
	}

	if err := s.vendors.SetOnline(ctx, vendor.ID, false); err != nil {
		return fmt.Errorf("failed to mark vendor offline: %w", err)
	}

	if err := cache.DeleteRefreshToken(ctx, vendorID); err != nil {
		logger.Logger.Warn("Failed to delete refresh token",
			zap.String("vendor_id", vendorID),
			zap.Error(err),
		)
	}
	s.invalidateProfile(ctx, publicID)

	logger.Logger.Info("Vendor logged out", zap.Int64("public_id", publicID))
	return nil
}

// RefreshToken 轮换 token 对，refresh token 必须与 Redis 中保存的一致
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	vendorID, err := token.ValidateRefreshToken(refreshToken)
	if err != nil {
		logger.Logger.Debug("Refresh token rejected", zap.Error(err))
		return nil, pkgerrors.TokenInvalid
	}

	if !cache.ValidateRefreshTokenExists(ctx, vendorID, refreshToken) {
		return nil, pkgerrors.TokenInvalid
	}

	publicID, err := parsePublicID(vendorID)
	if err != nil {
		return nil, pkgerrors.TokenInvalid
	}

	vendor, err := s.vendors.FindByPublicID(ctx, publicID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, pkgerrors.TokenInvalid
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query vendor: %w", err)
	}

	return s.issueTokens(ctx, vendor)
}

func (s *AuthService) issueTokens(ctx context.Context, vendor *model.Vendor) (*dto.AuthResponse, error) {
	vendorID := strconv.FormatInt(vendor.PublicID, 10)
	accessToken, refreshToken, expiresIn, err := token.GenerateTokenPair(vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	// token 已签发，写 Redis 失败只影响后续刷新
	if err := cache.SetRefreshToken(ctx, vendorID, refreshToken); err != nil {
		logger.Logger.Warn("Failed to store refresh token in Redis",
			zap.String("vendor_id", vendorID),
			zap.Error(err),
		)
	}

	return &dto.AuthResponse{
		Access:    accessToken,
		Refresh:   refreshToken,
		ExpiresIn: expiresIn,
		Vendor:    toProfileDTO(vendor),
	}, nil
}

func (s *AuthService) invalidateProfile(ctx context.Context, publicID int64) {
	if err := cache.InvalidateVendorProfile(ctx, publicID); err != nil {
		logger.Logger.Warn("Failed to invalidate vendor profile cache",
			zap.Int64("public_id", publicID),
			zap.Error(err),
		)
	}
}

// buildVendor 校验注册请求，返回待写入的商家（不含密码哈希和 public_id）
func buildVendor(req dto.RegisterRequest) (*model.Vendor, pkgerrors.FieldErrors) {
	errs := pkgerrors.FieldErrors{}

	email := utils.NormalizeEmail(req.Email)
	if !utils.ValidateEmail(email) {
		errs.Add("email", "Enter a valid email address.")
	}

	if len(req.Password) < password.MinLength {
		errs.Add("password", fmt.Sprintf("Password must be at least %d characters.", password.MinLength))
	}

	fullName := strings.Join(strings.Fields(req.FullName), " ")
	if !utils.ValidateFullName(fullName) {
		errs.Add("full_name", "Full name must contain only letters and spaces.")
	}

	mobile := utils.DigitsOnly(req.Mobile)
	if !utils.ValidateMobile(mobile) {
		errs.Add("mobile", "Mobile number must be 10 digits.")
	}

	profession, ok := model.FindProfession(req.Business)
	if !ok {
		errs.Add("business", pkgerrors.BusinessInvalid.Message)
	}

	level := model.ExperienceBeginner
	if raw := strings.TrimSpace(req.ExperienceLevel); raw != "" {
		level = model.ExperienceLevel(raw)
		if !level.Valid() {
			errs.Add("experience_level", pkgerrors.ExperienceInvalid.Message)
		}
	}

	serviceNames := splitServices(req.Services)
	if len(serviceNames) == 0 {
		errs.Add("services", pkgerrors.ServiceListInvalid.Message)
	}

	pincode := strings.TrimSpace(req.Pincode)
	if len(pincode) > maxPincodeLength {
		errs.Add("pincode", fmt.Sprintf("Pincode must be at most %d characters.", maxPincodeLength))
	}

	location := strings.TrimSpace(req.Location)
	if len(location) > maxLocationLength {
		errs.Add("location", fmt.Sprintf("Location must be at most %d characters.", maxLocationLength))
	}

	if !errs.Empty() {
		return nil, errs
	}

	services := make([]model.VendorService, 0, len(serviceNames))
	for _, name := range serviceNames {
		services = append(services, model.VendorService{
			Name:     name,
			Category: profession.Label,
			IsActive: true,
		})
	}

	return &model.Vendor{
		Email:           email,
		FullName:        fullName,
		Mobile:          mobile,
		Business:        profession.Label,
		ExperienceLevel: level,
		Profile: &model.VendorProfile{
			Location: location,
			City:     strings.TrimSpace(req.City),
			State:    strings.TrimSpace(req.State),
			Pincode:  pincode,
		},
		Services: services,
	}, nil
}

// splitServices 逗号分隔的服务名，去空白去重，保持顺序
func splitServices(raw string) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
