package middleware

import (
	"context"
	"net/http"
	"strings"

	jwtinfra "github.com/nakliye-kontrol-api/internal/infrastructure/jwt"
)

type contextKey string

const subjectKey contextKey = "subject"

// Auth returns middleware that validates the Bearer JWT and injects the token
// subject (the user's login identifier) into the request context.
func Auth(provider *jwtinfra.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeJSONError(w, http.StatusUnauthorized, "kimlik doğrulama bilgileri geçersiz")
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			subject, err := provider.Verify(tokenStr)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "kimlik doğrulama bilgileri geçersiz")
				return
			}
			ctx := context.WithValue(r.Context(), subjectKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SubjectFromContext extracts the authenticated token subject from the request context.
func SubjectFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(subjectKey).(string)
	return s, ok
}
