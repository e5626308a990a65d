package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type contextKey struct{}

// IdentityFromContext returns the identity attached by Middleware.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}

// Middleware requires a valid API key on every request. The credential is
// read from the Authorization bearer header, falling back to the api_key
// query parameter because EventSource clients cannot set request headers.
// The core behind this middleware never sees the credential, only the
// identity in the request context.
func Middleware(svc *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			secret := credentialFrom(r)
			if secret == "" {
				unauthorized(w)
				return
			}

			identity, err := svc.Validate(r.Context(), secret)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), contextKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func credentialFrom(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, found := strings.CutPrefix(header, "Bearer "); found {
			return token
		}
		return ""
	}
	return r.URL.Query().Get("api_key")
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid or missing token"})
}
