package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mannager/pos-system/internal/core/domain"
	"github.com/mannager/pos-system/internal/core/ports"
)

type stubAuthService struct {
	loginFn func(ctx context.Context, username, password string) (*ports.LoginResult, error)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, username, password)
}

func newLoginContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*ports.LoginResult, error) {
			if username != "ADMIN" || password != "ADMIN123" {
				t.Fatalf("unexpected credentials: %s %s", username, password)
			}
			return &ports.LoginResult{
				Token: "signed-token",
				User:  domain.PublicUser{ID: 1, Username: "ADMIN", Role: domain.RoleAdmin, Name: "System Admin"},
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newLoginContext(t, `{"username":"ADMIN","password":"ADMIN123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "signed-token" {
		t.Fatalf("token missing from response: %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["username"] != "ADMIN" || user["role"] != domain.RoleAdmin {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("password must never appear in a response")
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*ports.LoginResult, error) {
			t.Fatalf("service must not be called on invalid payload")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newLoginContext(t, `{"username":"ADMIN"}`)
	err := h.Login(c)
	if err == nil {
		t.Fatalf("expected an error for missing password")
	}
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newLoginContext(t, `{"username":"ADMIN","password":"nope"}`)
	err := h.Login(c)
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("service errors must pass through untouched, got %v", err)
	}
}
