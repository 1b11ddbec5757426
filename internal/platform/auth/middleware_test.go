package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var testSigningKey = []byte("test-secret-key-for-unit-tests-only")

func testConfig() JWTConfig {
	return JWTConfig{Issuer: DefaultIssuer, SigningKey: testSigningKey}
}

func createTestToken(t *testing.T, claims Claims, key []byte) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return tokenStr
}

func runMiddleware(t *testing.T, cfg JWTConfig, header string, handler echo.HandlerFunc) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/pages", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/pages")
	return JWTMiddleware(cfg)(handler)(c)
}

func expectUnauthorized(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", httpErr.Code)
	}
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	expectUnauthorized(t, runMiddleware(t, testConfig(), "", okHandler))
}

func TestJWTMiddleware_InvalidFormat(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"no bearer prefix", "Token abc123"},
		{"missing token", "Bearer"},
		{"empty value", "Bearer "},
		{"basic auth", "Basic dXNlcjpwYXNz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectUnauthorized(t, runMiddleware(t, testConfig(), tt.header, okHandler))
		})
	}
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	tok, err := IssueToken(testConfig(), "analyst", []string{"viewer"}, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	var gotUser string
	var gotRoles []string
	err = runMiddleware(t, testConfig(), "Bearer "+tok, func(c echo.Context) error {
		gotUser = UserIDFromContext(c.Request().Context())
		gotRoles = RolesFromContext(c.Request().Context())
		return c.String(http.StatusOK, "ok")
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUser != "analyst" {
		t.Errorf("expected subject analyst, got %q", gotUser)
	}
	if len(gotRoles) != 1 || gotRoles[0] != "viewer" {
		t.Errorf("expected roles [viewer], got %v", gotRoles)
	}
}

func TestJWTMiddleware_ExpiredToken(t *testing.T) {
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "analyst",
		Issuer:    DefaultIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}}
	tok := createTestToken(t, claims, testSigningKey)
	expectUnauthorized(t, runMiddleware(t, testConfig(), "Bearer "+tok, okHandler))
}

func TestJWTMiddleware_NoExpiry(t *testing.T) {
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "analyst", Issuer: DefaultIssuer}}
	tok := createTestToken(t, claims, testSigningKey)
	expectUnauthorized(t, runMiddleware(t, testConfig(), "Bearer "+tok, okHandler))
}

func TestJWTMiddleware_WrongKey(t *testing.T) {
	cfg := testConfig()
	cfg.SigningKey = []byte("another-key")
	tok, err := IssueToken(cfg, "analyst", nil, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	expectUnauthorized(t, runMiddleware(t, testConfig(), "Bearer "+tok, okHandler))
}

func TestJWTMiddleware_WrongIssuer(t *testing.T) {
	cfg := testConfig()
	cfg.Issuer = "someone-else"
	tok, err := IssueToken(cfg, "analyst", nil, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	expectUnauthorized(t, runMiddleware(t, testConfig(), "Bearer "+tok, okHandler))
}

func TestJWTMiddleware_Skipper(t *testing.T) {
	cfg := testConfig()
	cfg.Skipper = func(c echo.Context) bool { return true }
	if err := runMiddleware(t, cfg, "", okHandler); err != nil {
		t.Fatalf("expected skipped request to pass, got %v", err)
	}
}

func TestIssueToken_NoKey(t *testing.T) {
	_, err := IssueToken(JWTConfig{}, "analyst", nil, time.Hour)
	if !errors.Is(err, ErrNoSigningKey) {
		t.Errorf("expected ErrNoSigningKey, got %v", err)
	}
}

func TestAuthSkipper(t *testing.T) {
	e := echo.New()
	for path, want := range map[string]bool{
		"/health":             true,
		"/metrics":            true,
		"/api/v1/pages":       false,
		"/api/v1/patients/:id": false,
	} {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.SetPath(path)
		if got := AuthSkipper(c); got != want {
			t.Errorf("AuthSkipper(%s) = %v, want %v", path, got, want)
		}
	}
	if !IsPublicPath("/health/db") {
		t.Error("expected /health/db to be public")
	}
}
