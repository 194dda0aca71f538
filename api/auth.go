package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/elcafe/go-admin-client/session"
	"github.com/pkg/errors"
)

// AuthService calls the backend authentication endpoints. It deliberately
// uses a plain HTTP client with no bearer transport: the refresh call must
// never pass through the 401-retry interceptor, or a rejected refresh would
// recurse into another refresh.
type AuthService struct {
	baseURL string
	client  *http.Client
}

// AuthServiceOption defines a function type to modify the AuthService instance.
type AuthServiceOption func(*AuthService)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) AuthServiceOption {
	return func(s *AuthService) {
		s.client = client
	}
}

// NewAuthService creates an AuthService against the given API base URL
// (e.g., "https://api.elcafe.com/api/v1").
func NewAuthService(baseURL string, options ...AuthServiceOption) (*AuthService, error) {
	if baseURL == "" {
		return nil, errors.New("[NewAuthService] baseURL is required")
	}

	service := &AuthService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}

	for _, opt := range options {
		opt(service)
	}

	return service, nil
}

var _ session.AuthClient = (*AuthService)(nil)

// Login exchanges credentials for a token pair and the operator profile.
func (s *AuthService) Login(ctx context.Context, creds session.Credentials) (*session.TokenGrant, error) {
	var payload authPayload
	if err := s.post(ctx, "/auth/login", creds, &payload); err != nil {
		return nil, err
	}
	return payload.grant(), nil
}

// Register creates an operator account and returns its first token pair.
func (s *AuthService) Register(ctx context.Context, reg session.Registration) (*session.TokenGrant, error) {
	var payload authPayload
	if err := s.post(ctx, "/auth/register", reg, &payload); err != nil {
		return nil, err
	}
	return payload.grant(), nil
}

// Refresh exchanges a refresh token for a new access token. The returned
// grant's RefreshToken is empty when the backend did not rotate it.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*session.TokenGrant, error) {
	body := map[string]string{"refreshToken": refreshToken}
	var payload authPayload
	if err := s.post(ctx, "/auth/refresh", body, &payload); err != nil {
		return nil, err
	}
	return payload.grant(), nil
}

// ForgotPassword requests a password-reset email.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	return s.post(ctx, "/auth/forgot-password", map[string]string{"email": email}, nil)
}

// ResetPassword completes a password reset with the emailed token.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	body := map[string]string{"token": token, "newPassword": newPassword}
	return s.post(ctx, "/auth/reset-password", body, nil)
}

func (s *AuthService) post(ctx context.Context, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "[AuthService.post] marshal")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return errors.Wrap(err, "[AuthService.post] new request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "[AuthService.post] %s", path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "[AuthService.post] read body")
	}

	var env envelope
	_ = json.Unmarshal(data, &env)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &Error{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return errors.Wrap(err, "[AuthService.post] decode data")
		}
	}
	return nil
}
