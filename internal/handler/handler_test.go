package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	ri "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VendorHub/config"
	"VendorHub/internal/handler"
	"VendorHub/internal/middleware"
	"VendorHub/internal/model/dto"
	"VendorHub/internal/router"
	pkgerrors "VendorHub/pkg/errors"
	"VendorHub/pkg/token"
	"VendorHub/storage/redis"
)

type fakeAuth struct {
	exists     bool
	registered dto.RegisterRequest
	loggedOut  string
	err        error
}

func (f *fakeAuth) EmailExists(ctx context.Context, email string) (bool, error) {
	return f.exists, f.err
}

func (f *fakeAuth) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	f.registered = req
	if f.err != nil {
		return nil, f.err
	}
	return &dto.AuthResponse{Access: "a", Refresh: "r", ExpiresIn: 1800, Vendor: dto.VendorProfile{ID: "42", Email: req.Email}}, nil
}

func (f *fakeAuth) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.AuthResponse{Access: "a", Refresh: "r"}, nil
}

func (f *fakeAuth) Logout(ctx context.Context, vendorID string) error {
	f.loggedOut = vendorID
	return f.err
}

func (f *fakeAuth) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.AuthResponse{Access: "a2", Refresh: "r2"}, nil
}

type fakeVendors struct {
	vendorID string
	update   dto.UpdateProfileRequest
}

func (f *fakeVendors) Profile(ctx context.Context, vendorID string) (*dto.VendorProfile, error) {
	f.vendorID = vendorID
	return &dto.VendorProfile{ID: vendorID, FullName: "Asha Rao"}, nil
}

func (f *fakeVendors) UpdateProfile(ctx context.Context, vendorID string, req dto.UpdateProfileRequest) (*dto.VendorProfile, error) {
	f.vendorID = vendorID
	f.update = req
	return &dto.VendorProfile{ID: vendorID, City: *req.City}, nil
}

type fakeVerification struct {
	created bool
	err     error
}

func (f *fakeVerification) Submit(ctx context.Context, vendorID string, req dto.SubmitVerificationRequest) (*dto.VerificationResponse, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	return &dto.VerificationResponse{ID: 1, Status: "approved", IsVerified: true, SubmittedAt: time.Now()}, f.created, nil
}

func (f *fakeVerification) Get(ctx context.Context, vendorID string) (*dto.VerificationResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.VerificationResponse{ID: 1, Status: "pending"}, nil
}

type fixture struct {
	h            *server.Hertz
	auth         *fakeAuth
	vendors      *fakeVendors
	verification *fakeVerification
	offerings    *fakeOfferings
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	config.Cfg.JWTSecret = "test-secret"
	config.Cfg.JWTExpireMinutes = 30
	config.Cfg.JWTRefreshDays = 7
	config.Cfg.RateLimitEnabled = true
	config.Cfg.RateLimitRPS = 100
	require.NoError(t, token.Init())
	require.NoError(t, middleware.Init())

	mr := miniredis.RunT(t)
	redis.SetClient(ri.NewClient(&ri.Options{Addr: mr.Addr()}))

	f := &fixture{
		h:            server.Default(),
		auth:         &fakeAuth{},
		vendors:      &fakeVendors{},
		verification: &fakeVerification{created: true},
		offerings:    &fakeOfferings{},
	}
	router.Register(f.h, handler.New(f.auth, f.vendors, f.verification, f.offerings))
	return f
}

func (f *fixture) do(t *testing.T, method, url string, body interface{}, headers ...ut.Header) (int, map[string]json.RawMessage) {
	t.Helper()

	var reqBody *ut.Body
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = &ut.Body{Body: bytes.NewReader(raw), Len: len(raw)}
		headers = append(headers, ut.Header{Key: "Content-Type", Value: "application/json"})
	}

	resp := ut.PerformRequest(f.h.Engine, method, url, reqBody, headers...).Result()
	out := map[string]json.RawMessage{}
	if len(resp.Body()) > 0 {
		require.NoError(t, json.Unmarshal(resp.Body(), &out))
	}
	return resp.StatusCode(), out
}

func bearer(t *testing.T, vendorID string) ut.Header {
	t.Helper()
	access, _, _, err := token.GenerateTokenPair(vendorID)
	require.NoError(t, err)
	return ut.Header{Key: "Authorization", Value: "Bearer " + access}
}

func errorCode(t *testing.T, body map[string]json.RawMessage) string {
	t.Helper()
	var detail struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(body["error"], &detail))
	return detail.Code
}

func TestEmailExists(t *testing.T) {
	f := newFixture(t)
	f.auth.exists = true

	status, body := f.do(t, http.MethodGet, "/v1/auth/email-exists?email=asha@example.com", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"exists":true}`, string(body["data"]))

	status, body = f.do(t, http.MethodGet, "/v1/auth/email-exists", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, pkgerrors.ValidationFailed.Code, errorCode(t, body))
}

func TestRegister(t *testing.T) {
	f := newFixture(t)

	status, body := f.do(t, http.MethodPost, "/v1/auth/register", dto.RegisterRequest{
		Email:    "asha@example.com",
		Services: "Bridal Makeup",
	})
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "asha@example.com", f.auth.registered.Email)

	var resp dto.AuthResponse
	require.NoError(t, json.Unmarshal(body["data"], &resp))
	assert.Equal(t, "42", resp.Vendor.ID)
}

func TestRegister_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"duplicate", pkgerrors.EmailAlreadyExists, http.StatusConflict, pkgerrors.EmailAlreadyExists.Code},
		{"in progress", pkgerrors.RegistrationInProgress, http.StatusConflict, pkgerrors.RegistrationInProgress.Code},
		{"fields", pkgerrors.FieldErrors{"email": "bad"}, http.StatusBadRequest, pkgerrors.ValidationFailed.Code},
		{"unexpected", assert.AnError, http.StatusInternalServerError, pkgerrors.Internal.Code},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.auth.err = tc.err

			status, body := f.do(t, http.MethodPost, "/v1/auth/register", dto.RegisterRequest{Email: "x@y.z"})
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, errorCode(t, body))
		})
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	f := newFixture(t)
	f.auth.err = pkgerrors.InvalidCredentials

	status, body := f.do(t, http.MethodPost, "/v1/auth/login", dto.LoginRequest{Email: "a@b.c", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, pkgerrors.InvalidCredentials.Code, errorCode(t, body))
}

func TestRefreshRequiresToken(t *testing.T) {
	f := newFixture(t)

	status, _ := f.do(t, http.MethodPost, "/v1/auth/token/refresh", dto.RefreshTokenRequest{})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := f.do(t, http.MethodPost, "/v1/auth/token/refresh", dto.RefreshTokenRequest{RefreshToken: "r"})
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body["data"]), "a2")
}

func TestLogout(t *testing.T) {
	f := newFixture(t)

	status, _ := f.do(t, http.MethodPost, "/v1/auth/logout", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = f.do(t, http.MethodPost, "/v1/auth/logout", nil, bearer(t, "42"))
	assert.Equal(t, http.StatusNoContent, status)
	assert.Equal(t, "42", f.auth.loggedOut)
}

func TestProfileRequiresAccessToken(t *testing.T) {
	f := newFixture(t)

	status, body := f.do(t, http.MethodGet, "/v1/vendors/me", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, pkgerrors.Unauthorized.Code, errorCode(t, body))

	// refresh token 不能访问业务接口
	_, refresh, _, err := token.GenerateTokenPair("42")
	require.NoError(t, err)
	status, _ = f.do(t, http.MethodGet, "/v1/vendors/me", nil, ut.Header{Key: "Authorization", Value: "Bearer " + refresh})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = f.do(t, http.MethodGet, "/v1/vendors/me", nil, bearer(t, "42"))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "42", f.vendors.vendorID)
	assert.Contains(t, string(body["data"]), "Asha Rao")
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	city := "Mumbai"

	status, body := f.do(t, http.MethodPatch, "/v1/vendors/me", dto.UpdateProfileRequest{City: &city}, bearer(t, "7"))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "7", f.vendors.vendorID)
	require.NotNil(t, f.vendors.update.City)
	assert.Nil(t, f.vendors.update.FullName)
	assert.Contains(t, string(body["data"]), "Mumbai")
}

func TestSubmitVerification(t *testing.T) {
	f := newFixture(t)
	req := dto.SubmitVerificationRequest{AadhaarDocument: "123456789012", PANDocument: "ABCDE1234F"}

	status, _ := f.do(t, http.MethodPost, "/v1/verification", req, bearer(t, "42"))
	assert.Equal(t, http.StatusCreated, status)

	f.verification.created = false
	status, _ = f.do(t, http.MethodPost, "/v1/verification", req, bearer(t, "42"))
	assert.Equal(t, http.StatusOK, status)

	f.verification.err = pkgerrors.VerificationFinalized
	status, body := f.do(t, http.MethodPost, "/v1/verification", req, bearer(t, "42"))
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, pkgerrors.VerificationFinalized.Code, errorCode(t, body))
}

func TestGetVerificationNotFound(t *testing.T) {
	f := newFixture(t)
	f.verification.err = pkgerrors.VerificationNotFound

	status, body := f.do(t, http.MethodGet, "/v1/verification", nil, bearer(t, "42"))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, pkgerrors.VerificationNotFound.Code, errorCode(t, body))
}

func TestAuthRateLimit(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < middleware.AuthRateLimitConfig.MaxRequests; i++ {
		status, _ := f.do(t, http.MethodPost, "/v1/auth/login", dto.LoginRequest{Email: "a@b.c", Password: "secret1"})
		require.Equal(t, http.StatusOK, status)
	}

	status, body := f.do(t, http.MethodPost, "/v1/auth/login", dto.LoginRequest{Email: "a@b.c", Password: "secret1"})
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, pkgerrors.RateLimited.Code, errorCode(t, body))
}
