package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/classifieds/ads-api/internal/core/domain"
)

const testHeader = "X-Token"

type stubAuthService struct {
	resolveFn func(ctx context.Context, value uuid.UUID) (*domain.Principal, error)
}

func (s *stubAuthService) Resolve(ctx context.Context, value uuid.UUID) (*domain.Principal, error) {
	return s.resolveFn(ctx, value)
}

func (s *stubAuthService) Authorize(*domain.Principal, *int64) error { return nil }

func (s *stubAuthService) Issue(context.Context, int64) (*domain.Token, error) { return nil, nil }

func (s *stubAuthService) Revoke(context.Context, *domain.Principal) error { return nil }

func (s *stubAuthService) ForgetUser(context.Context, int64) error { return nil }

func runAuth(t *testing.T, stub *stubAuthService, header string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(testHeader, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(stub, testHeader)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	value := uuid.New()
	want := &domain.Principal{Token: value, UserID: 3, Name: "alice", Role: domain.RoleUser}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(testHeader, value.String())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	stub := &stubAuthService{resolveFn: func(_ context.Context, v uuid.UUID) (*domain.Principal, error) {
		if v != value {
			t.Fatalf("unexpected token %s", v)
		}
		return want, nil
	}}

	called := false
	handler := Auth(stub, testHeader)(func(c echo.Context) error {
		called = true
		if c.Get(PrincipalKey) != want {
			t.Fatalf("principal not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	stub := &stubAuthService{resolveFn: func(context.Context, uuid.UUID) (*domain.Principal, error) {
		t.Fatalf("should not resolve")
		return nil, nil
	}}

	rec, called := runAuth(t, stub, "")
	if called {
		t.Fatalf("should not reach next")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MalformedToken(t *testing.T) {
	stub := &stubAuthService{resolveFn: func(context.Context, uuid.UUID) (*domain.Principal, error) {
		t.Fatalf("should not resolve a malformed token")
		return nil, nil
	}}

	rec, called := runAuth(t, stub, "not-a-uuid")
	if called {
		t.Fatalf("should not reach next")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_RejectedTokens(t *testing.T) {
	for _, resolveErr := range []error{domain.ErrInvalidToken, domain.ErrTokenExpired} {
		t.Run(resolveErr.Error(), func(t *testing.T) {
			stub := &stubAuthService{resolveFn: func(context.Context, uuid.UUID) (*domain.Principal, error) {
				return nil, resolveErr
			}}

			rec, called := runAuth(t, stub, uuid.NewString())
			if called {
				t.Fatalf("should not reach next")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestAuthMiddleware_StorageErrorPropagates(t *testing.T) {
	storageErr := errors.New("connection refused")
	stub := &stubAuthService{resolveFn: func(context.Context, uuid.UUID) (*domain.Principal, error) {
		return nil, storageErr
	}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(testHeader, uuid.NewString())
	c := e.NewContext(req, httptest.NewRecorder())

	err := Auth(stub, testHeader)(func(echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})(c)
	if !errors.Is(err, storageErr) {
		t.Fatalf("expected storage error, got %v", err)
	}
}
