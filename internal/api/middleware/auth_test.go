package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/chronoworks/timetrack-system/internal/core/domain"
	"github.com/chronoworks/timetrack-system/internal/core/ports"
)

type stubResolver struct {
	principals map[string]domain.Principal
}

func (s *stubResolver) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (s *stubResolver) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return "", nil, errors.New("not implemented")
}

func (s *stubResolver) Resolve(ctx context.Context, token string) (domain.Principal, error) {
	p, ok := s.principals[token]
	if !ok {
		return domain.Principal{}, domain.ErrInvalidToken
	}
	return p, nil
}

func newAuthContext(t *testing.T, header string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthenticateStoresPrincipal(t *testing.T) {
	resolver := &stubResolver{principals: map[string]domain.Principal{
		"good-token": {ID: "user-1", Role: domain.RoleUser},
	}}

	c, _ := newAuthContext(t, "Bearer good-token")

	var got domain.Principal
	handler := Authenticate(resolver)(func(c echo.Context) error {
		p, ok := PrincipalFrom(c)
		if !ok {
			t.Fatal("principal missing from context")
		}
		got = p
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if got.ID != "user-1" || got.Role != domain.RoleUser {
		t.Fatalf("unexpected principal %+v", got)
	}
}

func TestAuthenticateRejectsMissingHeader(t *testing.T) {
	resolver := &stubResolver{}
	c, _ := newAuthContext(t, "")

	handler := Authenticate(resolver)(func(c echo.Context) error { return nil })

	if err := handler(c); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthenticateRejectsUnknownToken(t *testing.T) {
	resolver := &stubResolver{principals: map[string]domain.Principal{}}
	c, _ := newAuthContext(t, "Bearer stale-token")

	handler := Authenticate(resolver)(func(c echo.Context) error { return nil })

	if err := handler(c); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc123", "abc123", true},
		{"bearer abc123", "abc123", true},
		{"Basic abc123", "", false},
		{"Bearer", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		token, ok := bearerToken(tc.header)
		if ok != tc.ok || token != tc.token {
			t.Errorf("bearerToken(%q) = (%q, %v), want (%q, %v)", tc.header, token, ok, tc.token, tc.ok)
		}
	}
}
