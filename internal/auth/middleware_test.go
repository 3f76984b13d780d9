package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_NoToken(t *testing.T) {
	secret := []byte("test-secret")
	mw := NewMiddleware(secret, NewDefaultPolicy(nil, nil))
	handler := mw.Wrap(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/circuits", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthMiddleware_ViewerCanRead(t *testing.T) {
	secret := []byte("test-secret")
	token := mustToken(t, secret, "viewer")
	mw := NewMiddleware(secret, NewDefaultPolicy(nil, nil))
	handler := mw.Wrap(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/circuits", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestAuthMiddleware_ViewerForbiddenCircuitCreate(t *testing.T) {
	secret := []byte("test-secret")
	token := mustToken(t, secret, "viewer")
	mw := NewMiddleware(secret, NewDefaultPolicy(nil, nil))
	handler := mw.Wrap(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/circuits", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
}

func TestAuthMiddleware_OperatorCanDeleteDevice(t *testing.T) {
	secret := []byte("test-secret")
	token, err := IssueToken(secret, "user-1", RoleOperator, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	mw := NewMiddleware(secret, NewDefaultPolicy(nil, nil))
	var subject string
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject = SubjectFromContext(r.Context())
		if RoleFromContext(r.Context()) != RoleOperator {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/circuits/c-1/devices/d-1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
	if subject != "user-1" {
		t.Fatalf("expected subject user-1, got %q", subject)
	}
}

func TestAuthMiddleware_ExemptAndDisabled(t *testing.T) {
	secret := []byte("test-secret")
	mw := NewMiddleware(secret, NewDefaultPolicy([]string{"/healthz", "/metrics"}, nil))
	handler := mw.Wrap(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for exempt path, got %d", resp.Code)
	}

	disabled := NewMiddleware(nil, NewDefaultPolicy(nil, nil)).Wrap(okHandler())
	req = httptest.NewRequest(http.MethodPost, "/api/v1/circuits", nil)
	resp = httptest.NewRecorder()
	disabled.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected pass-through without secret, got %d", resp.Code)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	secret := []byte("test-secret")
	claims := Claims{
		Role: "operator",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	handler := NewMiddleware(secret, NewDefaultPolicy(nil, nil)).Wrap(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/circuits", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func mustToken(t *testing.T, secret []byte, role string) string {
	t.Helper()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestRoleAllows(t *testing.T) {
	cases := []struct {
		role     Role
		required Role
		want     bool
	}{
		{RoleOperator, RoleViewer, true},
		{RoleOperator, RoleOperator, true},
		{RoleViewer, RoleViewer, true},
		{RoleViewer, RoleOperator, false},
		{Role("admin"), RoleViewer, false},
	}
	for _, tc := range cases {
		if got := tc.role.Allows(tc.required); got != tc.want {
			t.Fatalf("%s allows %s: expected %v, got %v", tc.role, tc.required, tc.want, got)
		}
	}
}

func TestBearerToken(t *testing.T) {
	if got := bearerToken("bearer abc"); got != "abc" {
		t.Fatalf("expected abc, got %q", got)
	}
	for _, header := range []string{"", "abc", "Basic abc"} {
		if got := bearerToken(header); got != "" {
			t.Fatalf("expected empty token for %q, got %q", header, got)
		}
	}
}
