package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func runMiddleware(mw echo.MiddlewareFunc, req *http.Request, handler echo.HandlerFunc) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := mw(handler)(c)
	return rec, err
}

func TestJWTMiddlewareAcceptsValidToken(t *testing.T) {
	claims := Claims{
		Roles: []string{"scheduler"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, claims))

	var gotUser string
	var gotRoles []string
	_, err := runMiddleware(JWTMiddleware(testSecret), req, func(c echo.Context) error {
		gotUser = UserIDFromContext(c.Request().Context())
		gotRoles = RolesFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})
	if err != nil {
		t.Fatalf("middleware: %v", err)
	}
	if gotUser != "user-123" {
		t.Errorf("expected subject on context, got %q", gotUser)
	}
	if len(gotRoles) != 1 || gotRoles[0] != "scheduler" {
		t.Errorf("expected scheduler role, got %v", gotRoles)
	}
}

func TestJWTMiddlewareRejectsMissingToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := runMiddleware(JWTMiddleware(testSecret), req, func(c echo.Context) error {
		t.Fatal("handler must not run without a token")
		return nil
	})
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestJWTMiddlewareRejectsWrongSecret(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "another-secret-another-secret-00", claims))

	_, err := runMiddleware(JWTMiddleware(testSecret), req, func(c echo.Context) error {
		t.Fatal("handler must not run with a bad signature")
		return nil
	})
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestJWTMiddlewareRejectsExpiredToken(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, claims))

	_, err := runMiddleware(JWTMiddleware(testSecret), req, func(c echo.Context) error {
		t.Fatal("handler must not run with an expired token")
		return nil
	})
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	cases := []struct {
		name     string
		roles    []string
		required []string
		allowed  bool
	}{
		{"matching role passes", []string{"scheduler"}, []string{"scheduler", "lead"}, true},
		{"admin always passes", []string{"admin"}, []string{"lead"}, true},
		{"missing role forbidden", []string{"clinician"}, []string{"lead"}, false},
		{"no roles forbidden", nil, []string{"scheduler"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(WithIdentity(req.Context(), "u", tc.roles))
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := RequireRole(tc.required...)(handler)(c)
			if tc.allowed {
				if err != nil {
					t.Fatalf("expected access, got %v", err)
				}
				return
			}
			httpErr, ok := err.(*echo.HTTPError)
			if !ok || httpErr.Code != http.StatusForbidden {
				t.Fatalf("expected 403, got %v", err)
			}
		})
	}
}

func TestDevAuthMiddlewareGrantsAdmin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	var roles []string
	_, err := runMiddleware(DevAuthMiddleware(), req, func(c echo.Context) error {
		roles = RolesFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})
	if err != nil {
		t.Fatalf("middleware: %v", err)
	}
	if len(roles) != 1 || roles[0] != "admin" {
		t.Errorf("expected the admin role, got %v", roles)
	}
}
