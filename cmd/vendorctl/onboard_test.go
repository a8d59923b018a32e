package main

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VendorHub/internal/localstore"
	"VendorHub/internal/model/dto"
	"VendorHub/internal/onboarding"
	pkgerrors "VendorHub/pkg/errors"
)

type scriptedRegistrar struct {
	mu       sync.Mutex
	taken    map[string]bool
	failures int
	requests []dto.RegisterRequest
}

func (r *scriptedRegistrar) EmailExists(ctx context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.taken[email], nil
}

func (r *scriptedRegistrar) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
	if r.failures > 0 {
		r.failures--
		return nil, &pkgerrors.RemoteError{Status: 409, Code: "EMAIL_ALREADY_EXISTS", Message: "Email already registered"}
	}
	return &dto.AuthResponse{
		Access:  "access",
		Refresh: "refresh",
		Vendor:  dto.VendorProfile{ID: "42", Email: req.Email, FullName: req.FullName, Business: req.Business},
	}, nil
}

func runScript(t *testing.T, reg *scriptedRegistrar, lines ...string) (string, *onboarding.Controller, *localstore.Memory) {
	t.Helper()
	var out bytes.Buffer
	store := localstore.NewMemory()
	con := newConsole(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	ctl := onboarding.New(reg, store, onboarding.WithNotifier(consoleNotifier{out: &out}))

	require.NoError(t, runOnboard(context.Background(), ctl, con))
	return out.String(), ctl, store
}

func TestRunOnboardCompletesRegistration(t *testing.T) {
	reg := &scriptedRegistrar{}
	out, ctl, store := runScript(t, reg,
		"bad-email", "abc", // 第一步校验失败
		"vendor@example.com", "secret1",
		"Asha Rao", "98765 43210",
		":back", // 回到第二步
		"", "",  // 保留已输入的值
		"1",
		"1,,3", // 空项忽略
		"",
		"Pune", "MH", "411001",
	)

	assert.Contains(t, out, "email: "+onboarding.MsgEmailInvalid)
	assert.Contains(t, out, "password: "+onboarding.MsgPasswordShort)
	assert.Contains(t, out, "Registration successful!")
	assert.Contains(t, out, "Welcome, Asha Rao! Vendor ID 42.")
	assert.True(t, ctl.Completed())

	require.Len(t, reg.requests, 1)
	req := reg.requests[0]
	assert.Equal(t, "vendor@example.com", req.Email)
	assert.Equal(t, "9876543210", req.Mobile)
	assert.Equal(t, "Photography", req.Business)
	assert.Equal(t, "Wedding Photography,Drone Photography", req.Services)
	assert.Equal(t, "Pune, MH - 411001", req.Location)

	access, err := store.Get(context.Background(), localstore.KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "access", access)
}

func TestRunOnboardEmailTaken(t *testing.T) {
	reg := &scriptedRegistrar{taken: map[string]bool{"taken@example.com": true}}
	out, ctl, _ := runScript(t, reg,
		"taken@example.com", "secret1",
	)

	assert.Contains(t, out, "email: "+onboarding.MsgEmailTaken)
	assert.Equal(t, onboarding.StepCredentials, ctl.Step())
	assert.Empty(t, reg.requests)
}

func TestRunOnboardRetriesAfterRejectedSubmit(t *testing.T) {
	reg := &scriptedRegistrar{failures: 1}
	out, ctl, _ := runScript(t, reg,
		"vendor@example.com", "secret1",
		"Asha Rao", "9876543210",
		"2",
		"3",
		"",
		"Pune", "MH", "411001",
		"", "", "", // 第五步保留输入重新提交
	)

	assert.Contains(t, out, "Registration failed: Email already registered")
	assert.True(t, ctl.Completed())
	assert.Len(t, reg.requests, 2)
	assert.Equal(t, "Catering", reg.requests[1].Business)
	assert.Equal(t, "Buffet Service", reg.requests[1].Services)
}

func TestRunOnboardQuit(t *testing.T) {
	reg := &scriptedRegistrar{}
	_, ctl, _ := runScript(t, reg, "vendor@example.com", "secret1", ":quit")

	assert.Equal(t, onboarding.StepContact, ctl.Step())
	assert.False(t, ctl.Completed())
}

func TestPick(t *testing.T) {
	options := []string{"a", "b"}
	assert.Equal(t, "b", pick(" 2 ", options))
	assert.Equal(t, "3", pick("3", options))
	assert.Equal(t, "custom", pick("custom", options))
}
