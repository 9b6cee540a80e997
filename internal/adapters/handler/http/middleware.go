package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/threedblog/api/internal/core/domain"
	"github.com/threedblog/api/internal/core/ports"
)

type contextKey string

const UserKey contextKey = "user"

// AuthMiddleware validates bearer access tokens on protected routes.
type AuthMiddleware struct {
	authService ports.AuthService
}

func NewAuthMiddleware(authService ports.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// RequireAuth rejects the request with a uniform 401 unless a valid
// access token resolves to an existing account. The resolved account is
// attached to the request context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		user, err := m.authService.Authenticate(r.Context(), token)
		if err != nil {
			// A directory outage is not an auth failure; only token
			// problems get the uniform 401.
			if errors.Is(err, domain.ErrUnauthorized) {
				respondError(w, http.StatusUnauthorized, "Unauthorized")
			} else {
				respondError(w, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), UserKey, user)))
	})
}

// OptionalAuth attaches the account when a valid token is present and
// proceeds anonymously otherwise; it never rejects a request.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.authService.Authenticate(r.Context(), token)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), UserKey, user)))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(header, "Bearer ")
	return token, token != ""
}

// UserFromContext returns the account attached by the middleware, nil
// when the request is anonymous.
func UserFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(UserKey).(*domain.User)
	return user
}
