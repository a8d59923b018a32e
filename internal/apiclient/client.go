// Package apiclient 是 VendorHub API 的 HTTP 客户端，供 vendorctl 使用
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"go.uber.org/zap"

	"VendorHub/internal/model/dto"
	pkgerrors "VendorHub/pkg/errors"
	"VendorHub/pkg/logger"
	"VendorHub/pkg/response"
)

// Client 所有方法在非 2xx 响应时返回 *errors.RemoteError，其余错误视为网络错误
type Client struct {
	cli     *client.Client
	baseURL string
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("apiclient: invalid base url %q: %w", baseURL, err)
	}

	cli, err := client.NewClient(
		client.WithDialTimeout(timeout),
		client.WithClientReadTimeout(timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("apiclient: create client: %w", err)
	}

	return &Client{
		cli:     cli,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

type envelope struct {
	Error *response.ErrorDetail `json:"error"`
	Data  json.RawMessage       `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	req.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("apiclient: encode request: %w", err)
		}
		req.Header.SetContentTypeBytes([]byte("application/json"))
		req.SetBody(payload)
	}

	start := time.Now()
	if err := c.cli.Do(ctx, req, resp); err != nil {
		logger.Logger.Debug("API request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("apiclient: %s %s: %w", method, path, err)
	}

	status := resp.StatusCode()
	raw := append([]byte(nil), resp.Body()...)
	logger.Logger.Debug("API request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("duration", time.Since(start)),
	)

	if status < 200 || status >= 300 {
		return decodeRemoteError(status, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("apiclient: decode response: %w", err)
	}
	if len(env.Data) == 0 {
		return fmt.Errorf("apiclient: response has no data")
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("apiclient: decode data: %w", err)
	}
	return nil
}

func decodeRemoteError(status int, raw []byte) error {
	remote := &pkgerrors.RemoteError{Status: status}

	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Error != nil {
		remote.Code = env.Error.Code
		remote.Message = env.Error.Message
		remote.Details = env.Error.Details
	}
	return remote
}

// EmailExists 邮箱是否已注册
func (c *Client) EmailExists(ctx context.Context, email string) (bool, error) {
	var out dto.EmailExistsResponse
	path := "/auth/email-exists?email=" + url.QueryEscape(email)
	if err := c.do(ctx, consts.MethodGet, path, "", nil, &out); err != nil {
		return false, err
	}
	return out.Exists, nil
}

func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	if err := c.do(ctx, consts.MethodPost, "/auth/register", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	if err := c.do(ctx, consts.MethodPost, "/auth/login", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout 服务端删除 refresh token 并标记离线
func (c *Client) Logout(ctx context.Context, accessToken, refreshToken string) error {
	body := dto.RefreshTokenRequest{RefreshToken: refreshToken}
	return c.do(ctx, consts.MethodPost, "/auth/logout", accessToken, body, nil)
}

func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	body := dto.RefreshTokenRequest{RefreshToken: refreshToken}
	if err := c.do(ctx, consts.MethodPost, "/auth/token/refresh", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Profile(ctx context.Context, accessToken string) (*dto.VendorProfile, error) {
	var out dto.VendorProfile
	if err := c.do(ctx, consts.MethodGet, "/vendors/me", accessToken, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, accessToken string, req dto.UpdateProfileRequest) (*dto.VendorProfile, error) {
	var out dto.VendorProfile
	if err := c.do(ctx, consts.MethodPatch, "/vendors/me", accessToken, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SubmitVerification(ctx context.Context, accessToken string, req dto.SubmitVerificationRequest) (*dto.VerificationResponse, error) {
	var out dto.VerificationResponse
	if err := c.do(ctx, consts.MethodPost, "/verification", accessToken, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Verification(ctx context.Context, accessToken string) (*dto.VerificationResponse, error) {
	var out dto.VerificationResponse
	if err := c.do(ctx, consts.MethodGet, "/verification", accessToken, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
