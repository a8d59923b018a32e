package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VendorHub/internal/model/dto"
	pkgerrors "VendorHub/pkg/errors"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/v1/", 2*time.Second)
	require.NoError(t, err)
	return c
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := New("not a url", time.Second)
	assert.Error(t, err)
}

func TestClient_EmailExists(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/auth/email-exists", r.URL.Path)
		exists := r.URL.Query().Get("email") == "taken+1@example.com"
		writeJSON(w, http.StatusOK, map[string]interface{}{"data": map[string]bool{"exists": exists}})
	})

	exists, err := c.EmailExists(context.Background(), "taken+1@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = c.EmailExists(context.Background(), "free@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestClient_Register(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/auth/register", r.URL.Path)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")

		var req dto.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Bridal Makeup,HD Makeup", req.Services)

		writeJSON(w, http.StatusCreated, map[string]interface{}{"data": dto.AuthResponse{
			Access:    "a",
			Refresh:   "r",
			ExpiresIn: 1800,
			Vendor:    dto.VendorProfile{ID: "42", Email: req.Email},
		}})
	})

	resp, err := c.Register(context.Background(), dto.RegisterRequest{
		Email:    "asha@example.com",
		Services: "Bridal Makeup,HD Makeup",
	})
	require.NoError(t, err)
	assert.Equal(t, "a", resp.Access)
	assert.Equal(t, "42", resp.Vendor.ID)
	assert.Equal(t, 1800, resp.ExpiresIn)
}

func TestClient_RemoteError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]interface{}{"error": map[string]interface{}{
			"code":    pkgerrors.EmailAlreadyExists.Code,
			"message": pkgerrors.EmailAlreadyExists.Message,
		}})
	})

	_, err := c.Register(context.Background(), dto.RegisterRequest{})
	require.Error(t, err)

	var remote *pkgerrors.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusConflict, remote.Status)
	assert.Equal(t, pkgerrors.EmailAlreadyExists.Message, remote.Error())
	assert.True(t, errors.Is(err, pkgerrors.EmailAlreadyExists))
}

func TestClient_RemoteErrorWithoutEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	})

	_, err := c.Login(context.Background(), dto.LoginRequest{Email: "a@b.co", Password: "x"})
	var remote *pkgerrors.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusBadGateway, remote.Status)
	assert.Empty(t, remote.Code)
	assert.Equal(t, "unexpected status 502", remote.Error())
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL + "/v1"
	srv.Close()

	c, err := New(base, 500*time.Millisecond)
	require.NoError(t, err)

	_, err = c.EmailExists(context.Background(), "a@b.co")
	require.Error(t, err)
	var remote *pkgerrors.RemoteError
	assert.False(t, errors.As(err, &remote))
}

func TestClient_AuthorizedCalls(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"error": map[string]string{
				"code": pkgerrors.Unauthorized.Code, "message": pkgerrors.Unauthorized.Message,
			}})
			return
		}
		switch r.URL.Path {
		case "/v1/vendors/me":
			writeJSON(w, http.StatusOK, map[string]interface{}{"data": dto.VendorProfile{ID: "7", IsVerified: true}})
		case "/v1/auth/logout":
			var body dto.RefreshTokenRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "ref", body.RefreshToken)
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	profile, err := c.Profile(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, profile.IsVerified)

	require.NoError(t, c.Logout(ctx, "tok", "ref"))

	_, err = c.Profile(ctx, "wrong")
	assert.ErrorIs(t, err, pkgerrors.Unauthorized)
}
