package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shiftline/shiftline-backend/api/middleware"
	"github.com/shiftline/shiftline-backend/internal/auth"
	pkgerrors "github.com/shiftline/shiftline-backend/pkg/errors"
)

type testAuthService struct {
	loginFn   func(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error)
	refreshFn func(ctx context.Context, req auth.RefreshRequest) (*auth.RefreshResponse, error)
	logoutFn  func(ctx context.Context, accessID string) error
}

func (s *testAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	if s.loginFn != nil {
		return s.loginFn(ctx, req)
	}
	return &auth.LoginResponse{}, nil
}

func (s *testAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.RefreshResponse, error) {
	if s.refreshFn != nil {
		return s.refreshFn(ctx, req)
	}
	return &auth.RefreshResponse{}, nil
}

func (s *testAuthService) Logout(ctx context.Context, accessID string) error {
	if s.logoutFn != nil {
		return s.logoutFn(ctx, accessID)
	}
	return nil
}

func TestAuthLoginForwardsCredentials(t *testing.T) {
	var got *auth.LoginRequest
	svc := &testAuthService{
		loginFn: func(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
			got = &req
			return &auth.LoginResponse{AccessToken: "token"}, nil
		},
	}

	body := `{"email":"sam@shiftline.dev","password":"hunter22"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	resp := httptest.NewRecorder()
	AuthLogin(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if got == nil || got.Email != "sam@shiftline.dev" || got.Password != "hunter22" {
		t.Fatalf("credentials not forwarded: %+v", got)
	}
}

func TestAuthLoginRejectsInvalidBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"not-an-email"}`))
	resp := httptest.NewRecorder()
	AuthLogin(&testAuthService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAuthLoginSurfacesUnauthorized(t *testing.T) {
	svc := &testAuthService{
		loginFn: func(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		},
	}
	body := `{"email":"sam@shiftline.dev","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	resp := httptest.NewRecorder()
	AuthLogin(svc, testLogger())(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRefreshForwardsTokens(t *testing.T) {
	var got *auth.RefreshRequest
	svc := &testAuthService{
		refreshFn: func(ctx context.Context, req auth.RefreshRequest) (*auth.RefreshResponse, error) {
			got = &req
			return &auth.RefreshResponse{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil
		},
	}

	body := `{"access_token":"stale","refresh_token":"secret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", strings.NewReader(body))
	resp := httptest.NewRecorder()
	AuthRefresh(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if got == nil || got.AccessToken != "stale" || got.RefreshToken != "secret" {
		t.Fatalf("tokens not forwarded: %+v", got)
	}
}

func TestAuthLogoutUsesSessionFromContext(t *testing.T) {
	var got string
	svc := &testAuthService{
		logoutFn: func(ctx context.Context, accessID string) error {
			got = accessID
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req = req.WithContext(middleware.WithAccessID(req.Context(), "session-jti"))
	resp := httptest.NewRecorder()
	AuthLogout(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got != "session-jti" {
		t.Fatalf("unexpected access id %q", got)
	}
}
