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

	"github.com/fieldgate/fieldgate/internal/core/domain"
)

type stubAuthService struct {
	signupFn func(ctx context.Context, email, password string) (string, *domain.Principal, error)
	loginFn  func(ctx context.Context, email, password string) (string, *domain.Principal, error)
}

func (s *stubAuthService) Signup(ctx context.Context, email, password string) (string, *domain.Principal, error) {
	return s.signupFn(ctx, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.Principal, error) {
	return s.loginFn(ctx, email, password)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, email, password string) (string, *domain.Principal, error) {
			if email != "a@x.com" || password != "longenough1" {
				t.Fatalf("unexpected args: %s", email)
			}
			return "tok", &domain.Principal{ID: "p1", Email: email, Roles: []string{domain.RoleUser}}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := postJSON(e, "/auth/signup", `{"email":"a@x.com","password":"longenough1"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "tok" {
		t.Fatalf("unexpected token: %v", resp["token"])
	}
	principal, ok := resp["principal"].(map[string]any)
	if !ok {
		t.Fatalf("expected principal in response")
	}
	if principal["id"] != "p1" || principal["email"] != "a@x.com" {
		t.Fatalf("unexpected principal payload: %+v", principal)
	}
	// Only id and email cross the boundary.
	if _, leaked := principal["roles"]; leaked {
		t.Fatalf("roles must not appear in the auth response")
	}
}

func TestAuthHandler_Signup_DuplicateEmail(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, email, password string) (string, *domain.Principal, error) {
			return "", nil, domain.ErrDuplicateEmail
		},
	}
	h := NewAuthHandler(stub)

	c, _ := postJSON(e, "/auth/signup", `{"email":"a@x.com","password":"longenough1"}`)
	if err := h.Signup(c); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthHandler_Signup_InvalidEmail(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAuthService{
		signupFn: func(ctx context.Context, email, password string) (string, *domain.Principal, error) {
			t.Fatalf("service must not be called for invalid payloads")
			return "", nil, nil
		},
	})

	c, _ := postJSON(e, "/auth/signup", `{"email":"not-an-email","password":"longenough1"}`)
	err := h.Signup(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Principal, error) {
			return "tok2", &domain.Principal{ID: "p1", Email: email}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := postJSON(e, "/auth/login", `{"email":"a@x.com","password":"longenough1"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Rejected(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Principal, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, _ := postJSON(e, "/auth/login", `{"email":"a@x.com","password":"wrong"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_MalformedPayloadUndifferentiated(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Principal, error) {
			t.Fatalf("service must not be called for invalid payloads")
			return "", nil, nil
		},
	})

	// A structurally invalid login yields the same error as a wrong password.
	c, _ := postJSON(e, "/auth/login", `{"email":"not-an-email"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
