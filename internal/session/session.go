// Package session 管理本地登录态：登录、登出、读取当前会话
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"VendorHub/internal/localstore"
	"VendorHub/internal/model/dto"
	"VendorHub/internal/onboarding"
	pkgerrors "VendorHub/pkg/errors"
	"VendorHub/pkg/logger"
)

var (
	ErrMissingCredentials = errors.New("session: email and password are required")
	ErrNoSession          = errors.New("session: not logged in")
)

const (
	msgMissingCredentials = "Please enter both email and password"
	msgLoginSuccess       = "Login successful!"
	msgInvalidCredentials = "Invalid email or password"
	msgLoginFailed        = "Login failed: "
	msgBackendDown        = "Please check if backend server is running"
	msgLoggedOut          = "Logged out"
)

// API 会话依赖的远端接口
type API interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, accessToken, refreshToken string) error
	RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error)
	Profile(ctx context.Context, accessToken string) (*dto.VendorProfile, error)
}

// Session 本地保存的登录态
type Session struct {
	AccessToken        string
	RefreshToken       string
	VerificationStatus string
	Profile            dto.VendorProfile
	Onboarding         localstore.OnboardingRecord
}

// Verified 审核是否已通过
func (s *Session) Verified() bool {
	return s.VerificationStatus == localstore.StatusApproved
}

type Manager struct {
	api      API
	store    localstore.Store
	notifier onboarding.Notifier
	log      *zap.Logger
}

func NewManager(api API, store localstore.Store, notifier onboarding.Notifier) *Manager {
	m := &Manager{api: api, store: store, notifier: notifier, log: logger.Logger}
	if m.notifier == nil {
		m.notifier = onboarding.LogNotifier{Logger: m.log}
	}
	return m
}

// Login 登录并写入 token、资料和审核状态。审核状态优先取最新资料，取不到时用登录响应。
func (m *Manager) Login(ctx context.Context, email, password string) (*Session, error) {
	email = onboarding.SanitizeEmail(email)
	if email == "" || password == "" {
		m.notifier.Error(msgMissingCredentials)
		return nil, ErrMissingCredentials
	}

	resp, err := m.api.Login(ctx, dto.LoginRequest{Email: email, Password: password})
	if err != nil {
		m.notifyLoginError(err)
		return nil, err
	}

	if err := m.store.Delete(ctx, localstore.KeyVerificationStatus); err != nil {
		return nil, fmt.Errorf("session: clear verification status: %w", err)
	}

	record := recordFromProfile(resp.Vendor)
	profileJSON, err := localstore.EncodeJSON(resp.Vendor)
	if err != nil {
		return nil, err
	}
	recordJSON, err := localstore.EncodeJSON(record)
	if err != nil {
		return nil, err
	}

	entries := map[string]string{
		localstore.KeyVendorProfile: profileJSON,
		localstore.KeyOnboarding:    recordJSON,
	}
	if resp.Access != "" {
		entries[localstore.KeyAccessToken] = resp.Access
	}
	if resp.Refresh != "" {
		entries[localstore.KeyRefreshToken] = resp.Refresh
	}
	if err := m.store.SetMany(ctx, entries); err != nil {
		return nil, fmt.Errorf("session: save tokens: %w", err)
	}

	status := m.freshStatus(ctx, resp)
	if err := m.store.Set(ctx, localstore.KeyVerificationStatus, status); err != nil {
		return nil, fmt.Errorf("session: save verification status: %w", err)
	}

	m.log.Info("Vendor logged in",
		zap.String("vendor_id", resp.Vendor.ID),
		zap.String("verification_status", status),
	)
	m.notifier.Success(msgLoginSuccess)

	return &Session{
		AccessToken:        resp.Access,
		RefreshToken:       resp.Refresh,
		VerificationStatus: status,
		Profile:            resp.Vendor,
		Onboarding:         record,
	}, nil
}

func (m *Manager) notifyLoginError(err error) {
	var remote *pkgerrors.RemoteError
	switch {
	case errors.Is(err, pkgerrors.InvalidCredentials):
		m.notifier.Error(msgInvalidCredentials)
	case errors.As(err, &remote) && remote.Message != "":
		m.notifier.Error(msgLoginFailed + remote.Message)
	default:
		m.notifier.Error(msgLoginFailed + msgBackendDown)
	}
}

func (m *Manager) freshStatus(ctx context.Context, resp *dto.AuthResponse) string {
	profile, err := m.api.Profile(ctx, resp.Access)
	if err != nil {
		m.log.Warn("Profile fetch after login failed, using login data", zap.Error(err))
		return statusOf(resp.Vendor.IsVerified)
	}
	return statusOf(profile.IsVerified)
}

func statusOf(verified bool) string {
	if verified {
		return localstore.StatusApproved
	}
	return localstore.StatusPending
}

func recordFromProfile(p dto.VendorProfile) localstore.OnboardingRecord {
	return localstore.OnboardingRecord{
		Email:      p.Email,
		FullName:   p.FullName,
		Mobile:     p.Mobile,
		Business:   p.Business,
		Level:      p.ExperienceLevel,
		Services:   p.ServiceNames(),
		City:       p.City,
		State:      p.State,
		Pincode:    p.Pincode,
		Location:   p.Location,
		IsVerified: p.IsVerified,
	}
}

// Logout 尽力通知服务端，本地会话总是清除
func (m *Manager) Logout(ctx context.Context) error {
	access, _ := m.store.Get(ctx, localstore.KeyAccessToken)
	refresh, _ := m.store.Get(ctx, localstore.KeyRefreshToken)

	if access != "" {
		if err := m.api.Logout(ctx, access, refresh); err != nil {
			m.log.Warn("Server logout failed, clearing local session anyway", zap.Error(err))
		}
	}

	if err := m.store.Delete(ctx, localstore.SessionKeys...); err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	m.notifier.Success(msgLoggedOut)
	return nil
}

// Current 读取本地会话，没有 access token 时返回 ErrNoSession
func (m *Manager) Current(ctx context.Context) (*Session, error) {
	access, err := m.store.Get(ctx, localstore.KeyAccessToken)
	if err != nil && !errors.Is(err, localstore.ErrNotFound) {
		return nil, err
	}
	if strings.TrimSpace(access) == "" {
		return nil, ErrNoSession
	}

	s := &Session{AccessToken: access}
	if s.RefreshToken, err = m.store.Get(ctx, localstore.KeyRefreshToken); err != nil && !errors.Is(err, localstore.ErrNotFound) {
		return nil, err
	}
	if err := localstore.GetJSON(ctx, m.store, localstore.KeyVendorProfile, &s.Profile); err != nil && !errors.Is(err, localstore.ErrNotFound) {
		return nil, err
	}
	if err := localstore.GetJSON(ctx, m.store, localstore.KeyOnboarding, &s.Onboarding); err != nil && !errors.Is(err, localstore.ErrNotFound) {
		return nil, err
	}

	s.VerificationStatus, err = m.store.Get(ctx, localstore.KeyVerificationStatus)
	if errors.Is(err, localstore.ErrNotFound) {
		s.VerificationStatus = statusOf(s.Profile.IsVerified)
	} else if err != nil {
		return nil, err
	}
	return s, nil
}

// Refresh 用 refresh token 换新的 token 对
func (m *Manager) Refresh(ctx context.Context) (*Session, error) {
	refresh, err := m.store.Get(ctx, localstore.KeyRefreshToken)
	if errors.Is(err, localstore.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}

	resp, err := m.api.RefreshToken(ctx, refresh)
	if err != nil {
		if errors.Is(err, pkgerrors.TokenInvalid) {
			_ = m.store.Delete(ctx, localstore.SessionKeys...)
			return nil, ErrNoSession
		}
		return nil, err
	}

	if err := m.store.SetMany(ctx, map[string]string{
		localstore.KeyAccessToken:  resp.Access,
		localstore.KeyRefreshToken: resp.Refresh,
	}); err != nil {
		return nil, fmt.Errorf("session: save tokens: %w", err)
	}
	return m.Current(ctx)
}
