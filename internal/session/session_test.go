package session

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VendorHub/internal/localstore"
	"VendorHub/internal/model/dto"
	pkgerrors "VendorHub/pkg/errors"
)

type fakeAPI struct {
	loginResp   *dto.AuthResponse
	loginErr    error
	profile     *dto.VendorProfile
	profileErr  error
	logoutErr   error
	refreshResp *dto.AuthResponse
	refreshErr  error
	logouts     []string
}

func (f *fakeAPI) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	return f.loginResp, f.loginErr
}

func (f *fakeAPI) Logout(ctx context.Context, access, refresh string) error {
	f.logouts = append(f.logouts, access+"|"+refresh)
	return f.logoutErr
}

func (f *fakeAPI) RefreshToken(ctx context.Context, refresh string) (*dto.AuthResponse, error) {
	return f.refreshResp, f.refreshErr
}

func (f *fakeAPI) Profile(ctx context.Context, access string) (*dto.VendorProfile, error) {
	return f.profile, f.profileErr
}

type notes struct {
	ok  []string
	bad []string
}

func (n *notes) Success(msg string) { n.ok = append(n.ok, msg) }
func (n *notes) Error(msg string)   { n.bad = append(n.bad, msg) }

func loginResponse(verified bool) *dto.AuthResponse {
	return &dto.AuthResponse{
		Access:  "acc",
		Refresh: "ref",
		Vendor: dto.VendorProfile{
			ID:              "9",
			Email:           "asha@example.com",
			FullName:        "Asha Rao",
			Business:        "Makeup Artist",
			ExperienceLevel: "Expert",
			Services:        []dto.ServiceItem{{Name: "Bridal Makeup"}, {Name: "HD Makeup"}},
			City:            "Pune",
			IsVerified:      verified,
		},
	}
}

func TestLogin_MissingCredentials(t *testing.T) {
	n := &notes{}
	m := NewManager(&fakeAPI{}, localstore.NewMemory(), n)

	_, err := m.Login(context.Background(), "  ", "secret")
	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.Equal(t, []string{"Please enter both email and password"}, n.bad)
}

func TestLogin_StoresSession(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewMemory()
	require.NoError(t, store.Set(ctx, localstore.KeyVerificationStatus, localstore.StatusApproved))

	api := &fakeAPI{loginResp: loginResponse(true), profile: &dto.VendorProfile{IsVerified: false}}
	n := &notes{}
	m := NewManager(api, store, n)

	s, err := m.Login(ctx, "Asha@Example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, localstore.StatusPending, s.VerificationStatus)
	assert.Equal(t, []string{"Login successful!"}, n.ok)

	access, err := store.Get(ctx, localstore.KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "acc", access)

	var rec localstore.OnboardingRecord
	require.NoError(t, localstore.GetJSON(ctx, store, localstore.KeyOnboarding, &rec))
	assert.Equal(t, "Expert", rec.Level)
	assert.Equal(t, []string{"Bridal Makeup", "HD Makeup"}, rec.Services)

	status, err := store.Get(ctx, localstore.KeyVerificationStatus)
	require.NoError(t, err)
	assert.Equal(t, localstore.StatusPending, status)
}

func TestLogin_ProfileFallback(t *testing.T) {
	api := &fakeAPI{loginResp: loginResponse(true), profileErr: errors.New("timeout")}
	m := NewManager(api, localstore.NewMemory(), &notes{})

	s, err := m.Login(context.Background(), "asha@example.com", "secret1")
	require.NoError(t, err)
	assert.True(t, s.Verified())
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "bad credentials",
			err: &pkgerrors.RemoteError{Status: http.StatusUnauthorized,
				Code: pkgerrors.InvalidCredentials.Code, Message: pkgerrors.InvalidCredentials.Message},
			want: "Invalid email or password",
		},
		{
			name: "server message",
			err:  &pkgerrors.RemoteError{Status: http.StatusTooManyRequests, Message: "Too many requests"},
			want: "Login failed: Too many requests",
		},
		{
			name: "network",
			err:  errors.New("connection refused"),
			want: "Login failed: Please check if backend server is running",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := localstore.NewMemory()
			n := &notes{}
			m := NewManager(&fakeAPI{loginErr: tt.err}, store, n)

			_, err := m.Login(context.Background(), "asha@example.com", "secret1")
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, []string{tt.want}, n.bad)
			assert.Zero(t, store.Len())
		})
	}
}

func TestLogout_ClearsEvenWhenServerFails(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewMemory()
	api := &fakeAPI{loginResp: loginResponse(false), profile: &dto.VendorProfile{}, logoutErr: errors.New("boom")}
	m := NewManager(api, store, &notes{})

	_, err := m.Login(ctx, "asha@example.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, m.Logout(ctx))
	assert.Equal(t, []string{"acc|ref"}, api.logouts)
	assert.Zero(t, store.Len())

	_, err = m.Current(ctx)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestCurrent(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewMemory()
	m := NewManager(&fakeAPI{}, store, &notes{})

	_, err := m.Current(ctx)
	assert.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, store.Set(ctx, localstore.KeyAccessToken, "acc"))
	require.NoError(t, localstore.PutJSON(ctx, store, localstore.KeyVendorProfile, dto.VendorProfile{ID: "9", IsVerified: true}))

	s, err := m.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "9", s.Profile.ID)
	assert.Equal(t, localstore.StatusApproved, s.VerificationStatus)
	assert.Empty(t, s.RefreshToken)
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewMemory()
	api := &fakeAPI{refreshResp: &dto.AuthResponse{Access: "acc2", Refresh: "ref2"}}
	m := NewManager(api, store, &notes{})

	_, err := m.Refresh(ctx)
	assert.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, store.SetMany(ctx, map[string]string{
		localstore.KeyAccessToken:  "acc",
		localstore.KeyRefreshToken: "ref",
	}))
	s, err := m.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, "acc2", s.AccessToken)
	assert.Equal(t, "ref2", s.RefreshToken)

	api.refreshErr = &pkgerrors.RemoteError{Status: http.StatusUnauthorized, Code: pkgerrors.TokenInvalid.Code}
	_, err = m.Refresh(ctx)
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Zero(t, store.Len())
}
