package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/calebhawthorne/regenmarket-backend/api/middleware"
	"github.com/calebhawthorne/regenmarket-backend/internal/auth"
	"github.com/calebhawthorne/regenmarket-backend/internal/users"
	pkgAuth "github.com/calebhawthorne/regenmarket-backend/pkg/auth"
	"github.com/calebhawthorne/regenmarket-backend/pkg/config"
	"github.com/calebhawthorne/regenmarket-backend/pkg/enums"
	pkgerrors "github.com/calebhawthorne/regenmarket-backend/pkg/errors"
)

type stubAuthService struct {
	loginResp   *auth.LoginResponse
	refreshResp *auth.RefreshResponse
	user        *users.UserDTO
	err         error

	loggedOutAccessID string
}

func (s *stubAuthService) Register(_ context.Context, _ auth.RegisterRequest) (*auth.LoginResponse, error) {
	return s.loginResp, s.err
}

func (s *stubAuthService) Login(_ context.Context, _ auth.LoginRequest) (*auth.LoginResponse, error) {
	return s.loginResp, s.err
}

func (s *stubAuthService) Refresh(_ context.Context, claims *pkgAuth.AccessTokenClaims, _ auth.RefreshRequest) (*auth.RefreshResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.refreshResp, nil
}

func (s *stubAuthService) Logout(_ context.Context, accessID string) error {
	s.loggedOutAccessID = accessID
	return s.err
}

func (s *stubAuthService) Me(_ context.Context, _ uuid.UUID) (*users.UserDTO, error) {
	return s.user, s.err
}

func testAuthJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60}
}

func TestAuthRegisterSuccess(t *testing.T) {
	user := &users.UserDTO{ID: uuid.New(), Email: "grower@example.com", Role: enums.UserRoleCustomer}
	handler := AuthRegister(&stubAuthService{loginResp: &auth.LoginResponse{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		User:         user,
	}}, nil)

	body := []byte(`{"first_name":"Dana","last_name":"Greenfield","email":"grower@example.com","password":"longenough1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}

	var envelope struct {
		Data struct {
			AccessToken  string         `json:"access_token"`
			RefreshToken string         `json:"refresh_token"`
			User         *users.UserDTO `json:"user"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AccessToken != "access-token" {
		t.Fatalf("unexpected access token %q", envelope.Data.AccessToken)
	}
	if envelope.Data.User == nil || envelope.Data.User.Email != user.Email {
		t.Fatalf("expected user in payload got %+v", envelope.Data.User)
	}
}

func TestAuthRegisterInvalidPayload(t *testing.T) {
	handler := AuthRegister(&stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader([]byte(`{"password":"short"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAuthLoginMapsUnauthorized(t *testing.T) {
	handler := AuthLogin(&stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"email":"grower@example.com","password":"wrongpassword"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthLogoutRevokesSession(t *testing.T) {
	cfg := testAuthJWTConfig()
	jti := "session-jti"
	token, err := pkgAuth.MintAccessToken(cfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRoleCustomer,
		JTI:    jti,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	svc := &stubAuthService{}
	handler := AuthLogout(svc, cfg, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.loggedOutAccessID != jti {
		t.Fatalf("expected revoke for %q got %q", jti, svc.loggedOutAccessID)
	}
}

func TestAuthMeRequiresUserContext(t *testing.T) {
	handler := AuthMe(&stubAuthService{user: &users.UserDTO{ID: uuid.New()}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}

	userID := uuid.New()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
