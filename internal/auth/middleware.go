package auth

import (
	"errors"
	"net/http"
	"strings"
)

// Middleware authenticates bearer tokens and applies the role policy to
// the load calculator API.
type Middleware struct {
	secret []byte
	policy Policy
}

// NewMiddleware constructs an auth middleware. With an empty secret the
// middleware is disabled and requests pass through unauthenticated.
func NewMiddleware(secret []byte, policy Policy) *Middleware {
	return &Middleware{secret: secret, policy: policy}
}

// Enabled reports whether tokens are checked.
func (m *Middleware) Enabled() bool {
	return m != nil && len(m.secret) > 0
}

// Wrap applies auth and RBAC to the handler.
func (m *Middleware) Wrap(next http.Handler) http.Handler {
	if !m.Enabled() {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.policy.IsExempt(r) {
			next.ServeHTTP(w, r)
			return
		}
		required, ok := m.policy.RequiredRole(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		claims, err := m.authorize(r, required)
		switch {
		case errors.Is(err, ErrForbidden):
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		case err != nil:
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		ctx := WithIdentity(r.Context(), Role(claims.Role), claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middleware) authorize(r *http.Request, required Role) (*Claims, error) {
	claims, err := ParseJWT(bearerToken(r.Header.Get("Authorization")), m.secret)
	if err != nil {
		return nil, err
	}
	if !Role(claims.Role).Allows(required) {
		return nil, ErrForbidden
	}
	return claims, nil
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
